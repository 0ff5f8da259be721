package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	bareURL          = regexp.MustCompile(`https?://\S+`)
	institutionSplit = regexp.MustCompile(`\s+-\s+(?:Rice|University|Urban|Texas)`)
	commaMonthYear   = regexp.MustCompile(`,\s*(?:` + months + `)\s+\d{4}`)
	yearRange        = regexp.MustCompile(`(\d{4})-(\d{4})`)
	parenYear        = regexp.MustCompile(`\((\d{4})\)`)
	reportSuffix     = regexp.MustCompile(`(?:Appendix [A-Z]|Executive Summary).*$`)
	pdfReference     = regexp.MustCompile(`(?:https?://\S+\.pdf|[^"\s]+\.pdf)`)
	fileReference    = regexp.MustCompile(`(?:https?://\S+|\S+\.(?:pdf|docx|doc|xlsx|xls))`)
	joinedInitials   = regexp.MustCompile(`(\w)\.(\w)`)
	commaNoSpace     = regexp.MustCompile(`,(\S)`)
	andSpacing       = regexp.MustCompile(`\s+and\s+`)

	houstonTitleSuffixes = []*regexp.Regexp{
		regexp.MustCompile(`Executive\s*Summary$`),
		regexp.MustCompile(`Appendix\s+[A-Z]$`),
		regexp.MustCompile(`,\s*(?:` + months + `)\s+\d{4}$`),
		regexp.MustCompile(`\s*\(\d{4}\)$`),
		regexp.MustCompile(`(?:Vol\.|Volume)\s*\d+.*$`),
		regexp.MustCompile(`Manuscript submitted for publication$`),
	}
)

const (
	houstonBriefType = "Policy Brief"
	// maxSupplements is the number of supporting documents kept per publication.
	maxSupplements = 2
)

// ParseHouston reads a University of Houston ERC listing: the project policy
// brief table, or the reports and publications page where entries are
// grouped under one h2 per section.
func ParseHouston(doc *goquery.Selection, src Source) []Entry {
	content := doc.Find("section#content-well").First()
	if content.Length() == 0 {
		content = doc
	}

	if strings.Contains(src.URL, "policy-briefs") {
		return parseHoustonBriefs(content.Find("table").First(), src.URL)
	}

	var entries []Entry
	content.Find("h2").Each(func(_ int, heading *goquery.Selection) {
		area := text(heading)
		eachSectionItem(heading, func(item *goquery.Selection) {
			e, ok := parseHoustonPublication(item, area, src.URL)
			if !ok {
				return
			}
			if goquery.NodeName(item) == "li" {
				e.Supplements = houstonSupplements(item, src.URL)
			}
			entries = append(entries, e)
		})
	})
	return entries
}

// parseHoustonBriefs reads rows of project number and "Title. Authors -
// Institution, Month Year".
func parseHoustonBriefs(table *goquery.Selection, pageURL string) []Entry {
	var entries []Entry

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}

		cell := cells.Eq(1)
		t := text(cell)
		if t == "" || t == houstonBriefType {
			return
		}

		e := Entry{
			Type:          houstonBriefType,
			ProjectNumber: text(cells.Eq(0)),
			URL:           firstLink(cell, pageURL),
		}

		t = cleanText(bareURL.ReplaceAllString(t, ""))
		titlePart, rest, _ := strings.Cut(t, ".")
		e.Title = cleanHoustonTitle(titlePart)

		if rest = strings.TrimSpace(rest); rest != "" {
			if loc := institutionSplit.FindStringIndex(rest); loc != nil {
				e.Authors = rest[:loc[0]]
				e.Institution = institutionOf(rest)
			} else {
				e.Authors = rest
			}
		}

		if m := monthYear.FindStringSubmatch(t); m != nil {
			e.Year = m[1]
			e.Title = strings.TrimSpace(commaMonthYear.ReplaceAllString(e.Title, ""))
		}
		e.Authors = cleanHoustonAuthors(e.Authors)

		if fix, ok := houstonBriefFixes[e.ProjectNumber]; ok {
			fix.apply(&e)
		}
		if e.Title != "" {
			entries = append(entries, e)
		}
	})

	return entries
}

// parseHoustonPublication reads one entry of the reports and publications
// page. Nested lists of supporting documents are not part of the entry text.
func parseHoustonPublication(item *goquery.Selection, area, pageURL string) (Entry, bool) {
	body := item.Clone()
	body.Find("ul").Remove()

	t := text(body)
	if t == "" {
		return Entry{}, false
	}

	e := Entry{ResearchArea: area, URL: firstLink(body, pageURL)}
	if e.URL == "" {
		if ref := pdfReference.FindString(t); ref != "" {
			e.URL = AbsoluteURL(pageURL, ref)
		}
	}

	for _, fix := range houstonPublicationFixes {
		if strings.Contains(t, fix.match) {
			fix.apply(&e)
			return e, true
		}
	}

	if strings.Contains(area, "Reports") {
		title := t
		switch {
		case strings.Contains(t, "Charter Authorizer"):
			if m := yearRange.FindStringSubmatch(t); m != nil {
				e.Year = m[2]
			}
			title = reportSuffix.ReplaceAllString(title, "")
		case strings.Contains(t, "Workforce"):
			if m := monthYear.FindStringSubmatch(t); m != nil {
				e.Year = m[1]
			}
		}
		e.Title = strings.Trim(title, ` ."`)
		return e, true
	}

	if m := parenYear.FindStringSubmatch(t); m != nil {
		e.Year = m[1]
		t = cleanText(strings.Replace(t, m[0], "", 1))
	}

	authors, rest, found := strings.Cut(t, ". ")
	if found && strings.ContainsAny(authors, ",&") {
		e.Authors = strings.TrimSpace(authors)
		e.Title = strings.Trim(rest, ` ."`)
	} else {
		e.Title = strings.Trim(t, ` ."`)
	}

	return e, e.Title != ""
}

// houstonSupplements returns up to two supporting documents listed in a
// nested list under li.
func houstonSupplements(li *goquery.Selection, pageURL string) []Supplement {
	var supplements []Supplement

	li.Find("ul").First().ChildrenFiltered("li").EachWithBreak(func(_ int, sub *goquery.Selection) bool {
		link := sub.Find("a").First()

		var title string
		switch em := sub.Find("em").First(); {
		case em.Length() > 0:
			title = text(em)
		case link.Length() > 0:
			title = text(link)
		default:
			title = text(sub)
		}

		href, _ := link.Attr("href")
		if href == "" {
			href = fileReference.FindString(text(sub))
		}

		supplements = append(supplements, Supplement{
			Title: strings.Trim(title, " ."),
			URL:   AbsoluteURL(pageURL, href),
		})
		return len(supplements) < maxSupplements
	})

	return supplements
}

func cleanHoustonTitle(title string) string {
	for _, suffix := range houstonTitleSuffixes {
		title = suffix.ReplaceAllString(title, "")
	}
	return strings.Trim(title, ` ".`)
}

func cleanHoustonAuthors(authors string) string {
	if authors == "" {
		return ""
	}
	for spaced := joinedInitials.ReplaceAllString(authors, "$1. $2"); spaced != authors; {
		authors = spaced
		spaced = joinedInitials.ReplaceAllString(authors, "$1. $2")
	}
	authors = commaNoSpace.ReplaceAllString(authors, ", $1")
	authors = strings.Trim(authors, ".")
	authors = andSpacing.ReplaceAllString(authors, " and ")
	return cleanText(authors)
}

func institutionOf(s string) string {
	switch {
	case strings.Contains(s, "Rice"):
		return "Rice University"
	case strings.Contains(s, "Urban"):
		return "Urban Institute"
	case strings.Contains(s, "University of Houston"):
		return "University of Houston"
	case strings.Contains(s, "Texas State"):
		return "Texas State University"
	default:
		return ""
	}
}
