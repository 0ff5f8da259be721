package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Citation shapes found on the UT Dallas pages, after quotes are normalized.
var (
	// Last, First and Other. 2020. "Title" ...
	listedAuthorsCitation = regexp.MustCompile(`^([^,]+),\s*([^.]+?)\.\s*(?:\d{4}\.)?\s*"([^"]+)"`)
	// Authors. 2020. "Title" ...
	authorsCitation = regexp.MustCompile(`^([^.]+)\.\s*(?:\d{4}\.)?\s*"([^"]+)"`)
	// Authors. In Progress. "Title"
	inProgressCitation = regexp.MustCompile(`^([^.]+)\.\s*In Progress\.\s*"?([^"]+)"?`)
	// Journal, 12(3) continuation lines carry no publication of their own.
	journalOnly = regexp.MustCompile(`^[^,]+,\s*\d+\(\d+\)`)
	// Last, First. (no quoted title)
	leadingAuthor = regexp.MustCompile(`^([^,]+),\s*([^.]+?)\s*\.`)
	quotedTitle   = regexp.MustCompile(`"([^"]+)"`)
	authorList    = regexp.MustCompile(`,\s*(?:and\s+)?|\s+and\s+`)
)

const (
	dallasGeneralArea = "General"
	toTheTop          = "To the top"
)

// ParseDallas reads a UT Dallas TSP listing. The research areas page groups
// citations under one h2 per area; the other pages are a flat run of
// citation paragraphs.
func ParseDallas(doc *goquery.Selection, src Source) []Entry {
	content := doc.Find("main.site-main").First()
	if content.Length() == 0 {
		content = doc
	}

	var entries []Entry
	add := func(item *goquery.Selection, area string) {
		if e, ok := parseCitation(item, src.URL); ok {
			e.ResearchArea = area
			entries = append(entries, e)
		}
	}

	if strings.Contains(src.URL, "research-areas") {
		content.Find("h2").Each(func(_ int, heading *goquery.Selection) {
			area := text(heading)
			eachSectionItem(heading, func(item *goquery.Selection) {
				add(item, area)
			})
		})
		return entries
	}

	content.Find("p").Each(func(_ int, p *goquery.Selection) {
		if p.ParentsFiltered("nav").Length() > 0 {
			return
		}
		add(p, dallasGeneralArea)
	})
	return entries
}

// parseCitation extracts authors, title and year from a free-text citation.
func parseCitation(item *goquery.Selection, pageURL string) (Entry, bool) {
	raw := text(item)
	if raw == "" || strings.Contains(raw, toTheTop) {
		return Entry{}, false
	}

	t := strings.ReplaceAll(raw, "()", "")
	t = repeatedDot.ReplaceAllString(t, ".")
	t = cleanText(t)

	e := Entry{URL: firstLink(item, pageURL), Year: yearPattern.FindString(t)}

	if m := listedAuthorsCitation.FindStringSubmatch(t); m != nil {
		authors := []string{strings.TrimSpace(m[1])}
		for _, a := range authorList.Split(strings.TrimPrefix(strings.TrimSpace(m[2]), "and "), -1) {
			if a = strings.TrimSpace(a); a != "" {
				authors = append(authors, a)
			}
		}
		e.Authors = strings.Join(authors, ", ")
		e.Title = CleanTitle(m[3])
		return e, true
	}
	if m := authorsCitation.FindStringSubmatch(t); m != nil {
		e.Authors = strings.TrimSpace(m[1])
		e.Title = CleanTitle(m[2])
		return e, true
	}
	if journalOnly.MatchString(t) {
		return Entry{}, false
	}
	if strings.Contains(t, "In Progress") {
		if m := inProgressCitation.FindStringSubmatch(t); m != nil {
			e.Authors = strings.TrimSpace(m[1])
			e.Title = CleanTitle(m[2])
			e.Year = "In Progress"
			return e, true
		}
	}

	if m := leadingAuthor.FindStringSubmatch(t); m != nil {
		first, second := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if strings.Contains(second, ",") {
			e.Authors = first + ", " + second
		} else {
			e.Authors = second + " " + first
		}
	}

	if m := quotedTitle.FindStringSubmatch(t); m != nil {
		e.Title = strings.TrimSpace(m[1])
	} else {
		rest := t
		if e.Authors != "" {
			rest = strings.ReplaceAll(rest, e.Authors, "")
		}
		if e.Year != "" {
			rest = strings.ReplaceAll(rest, e.Year, "")
		}
		e.Title = strings.Trim(rest, " .,")
	}
	e.Title = CleanTitle(e.Title)

	return e, e.Title != "" || e.Authors != ""
}
