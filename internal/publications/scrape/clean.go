package scrape

import "strings"

// navigationPaths mark links to site navigation picked up as entries.
var navigationPaths = []string{
	"history-and-background",
	"proposal-preparation-and-submission",
	"for-researchers-of-approved-projects",
	"data-warehouse",
	"index.php",
	"project-policy-briefs",
	"faculty-staff",
}

// Clean drops navigation links and untitled entries, trims titles, and
// removes duplicates by title, authors and URL, keeping the first.
func Clean(entries []Entry) []Entry {
	type key struct{ title, authors, url string }
	seen := make(map[key]bool, len(entries))

	cleaned := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if isNavigation(e.URL) {
			continue
		}
		e.Title = strings.TrimSpace(e.Title)
		if e.Title == "" {
			continue
		}

		k := key{e.Title, e.Authors, e.URL}
		if seen[k] {
			continue
		}
		seen[k] = true
		cleaned = append(cleaned, e)
	}
	return cleaned
}

func isNavigation(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, path := range navigationPaths {
		if strings.Contains(lower, path) {
			return true
		}
	}
	return false
}
