package scrape

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const months = `January|February|March|April|May|June|July|August|September|October|November|December`

var (
	whitespace  = regexp.MustCompile(`\s+`)
	repeatedDot = regexp.MustCompile(`\.{2,}`)
	yearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	monthYear   = regexp.MustCompile(`(?:` + months + `)\s+(\d{4})`)
	byline      = regexp.MustCompile(`(?i)^(.*\S)\s+by\s+(.+)$`)
)

// typography maps typographic quotes, dashes and spaces to plain ASCII.
var typography = strings.NewReplacer(
	"\u201c", `"`, "\u201d", `"`, "\u2018", "'", "\u2019", "'",
	"\u2013", "-", "\u2014", "-", "\u00a0", " ",
)

// abbreviations keep their final period when a title ends with them.
var abbreviations = []string{"Ph.D", "U.S", "M.S", "B.A", "M.A", "Ed.D"}

func cleanText(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(typography.Replace(s), " "))
}

func text(s *goquery.Selection) string {
	return cleanText(s.Text())
}

// CleanTitle trims whitespace and trailing periods. A trailing abbreviation
// such as "Ph.D." keeps its period.
func CleanTitle(title string) string {
	title = strings.TrimSpace(title)
	for strings.HasSuffix(title, ".") {
		title = strings.TrimSpace(strings.TrimSuffix(title, "."))
	}
	for _, abbrev := range abbreviations {
		if strings.HasSuffix(title, abbrev) {
			return title + "."
		}
	}
	return title
}

// AbsoluteURL resolves href against the listing page it was found on.
// Absolute and unparseable hrefs are returned unchanged.
func AbsoluteURL(pageURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() {
		return href
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func firstLink(s *goquery.Selection, pageURL string) string {
	href, ok := s.Find("a[href]").First().Attr("href")
	if !ok {
		return ""
	}
	return AbsoluteURL(pageURL, href)
}

// splitByline splits "Title by Authors" at the last "by".
func splitByline(s string) (title, authors string) {
	m := byline.FindStringSubmatch(s)
	if m == nil {
		return CleanTitle(s), ""
	}

	title = CleanTitle(m[1])
	if isUpper(title) {
		title = cases.Title(language.English).String(title)
	}
	return title, strings.Trim(m[2], ".: ")
}

func isUpper(s string) bool {
	return strings.ToUpper(s) == s && strings.ToLower(s) != s
}

// eachSectionItem calls fn for the list items and non-empty paragraphs
// between heading and the next h2.
func eachSectionItem(heading *goquery.Selection, fn func(item *goquery.Selection)) {
	heading.NextUntil("h2").Each(func(_ int, el *goquery.Selection) {
		switch goquery.NodeName(el) {
		case "ul":
			el.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
				fn(li)
			})
		case "p":
			if text(el) != "" {
				fn(el)
			}
		}
	})
}
