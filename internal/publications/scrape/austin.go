package scrape

import "github.com/PuerkitoBio/goquery"

// UT Austin publishes its listings as TablePress tables.
const (
	austinBriefsTable = "table#tablepress-20"
	austinOtherTable  = "table#tablepress-21"
)

// ParseAustin reads a UT Austin listing. The policy brief table has the
// columns project, THECB number, "title by authors", project name and date;
// the other publications table has "title by authors" and year.
func ParseAustin(doc *goquery.Selection, src Source) []Entry {
	table := doc.Find(austinBriefsTable).First()
	briefs := table.Length() > 0
	if !briefs {
		table = doc.Find(austinOtherTable).First()
	}

	var entries []Entry
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")

		var e Entry
		switch {
		case briefs && cells.Length() >= 5:
			e = austinEntry(cells.Eq(2), src.URL)
			e.ProjectNumber = text(cells.Eq(0))
			e.THECBNumber = text(cells.Eq(1))
			e.ProjectName = text(cells.Eq(3))
			e.Date = text(cells.Eq(4))
		case !briefs && cells.Length() >= 2:
			e = austinEntry(cells.Eq(0), src.URL)
			e.Year = text(cells.Eq(1))
		default:
			return
		}

		if e.Title != "" {
			entries = append(entries, e)
		}
	})

	return entries
}

func austinEntry(cell *goquery.Selection, pageURL string) Entry {
	title, authors := splitByline(text(cell))
	return Entry{Title: title, Authors: authors, URL: firstLink(cell, pageURL)}
}
