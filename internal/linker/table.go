package linker

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	minHeaderCells = 3
	wideTableWidth = "1200"
)

// cellText returns the visible text of s with whitespace collapsed.
func cellText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

func lowerTexts(s *goquery.Selection) []string {
	texts := make([]string, 0, s.Length())
	s.Each(func(_ int, c *goquery.Selection) {
		texts = append(texts, strings.ToLower(cellText(c)))
	})
	return texts
}

func containsText(texts []string, want string) bool {
	for _, t := range texts {
		if t == want {
			return true
		}
	}
	return false
}

// FindVariablesTable locates the table listing a dataset's variables. It tries,
// in order: a table whose header cells name the variable columns, the first
// table following a "Variables" heading, and the largest table when it has a
// header row. It returns nil when none qualifies.
func FindVariablesTable(doc *Document) *goquery.Selection {
	var found *goquery.Selection

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		headers := table.Find("th")
		if headers.Length() < minHeaderCells {
			return true
		}
		texts := lowerTexts(headers)
		if (containsText(texts, "erc variable") && containsText(texts, "item name")) ||
			containsText(texts, "utd-erc variable") ||
			containsText(texts, "variables") {
			found = table
			return false
		}
		return true
	})
	if found != nil {
		return found
	}

	doc.Find("h1, h2").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		if strings.ToLower(cellText(heading)) != "variables" {
			return true
		}
		if next := heading.NextAllFiltered("table").First(); next.Length() > 0 {
			found = next
		}
		return false
	})
	if found != nil {
		return found
	}

	largestRows := -1
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		if rows := table.Find("tr").Length(); rows > largestRows {
			largestRows = rows
			found = table
		}
	})
	if found != nil && found.Find("th").Length() >= minHeaderCells {
		return found
	}

	return nil
}

// headerRow returns the first row of table and its th cells.
func headerRow(table *goquery.Selection) (*goquery.Selection, *goquery.Selection) {
	row := table.Find("tr").First()
	return row, row.ChildrenFiltered("th")
}

// dataRows returns every row after the header row.
func dataRows(table *goquery.Selection) *goquery.Selection {
	rows := table.Find("tr")
	if rows.Length() < 2 {
		return rows.Slice(0, 0)
	}
	return rows.Slice(1, goquery.ToEnd)
}

// WidenTable makes the table use the full page width: a large
// data-table-width, a default data-layout, and no width rules on the table
// or its columns.
func WidenTable(table *goquery.Selection) {
	table.SetAttr("data-table-width", wideTableWidth)
	if _, ok := table.Attr("data-layout"); !ok {
		table.SetAttr("data-layout", "default")
	}

	stripWidth(table)
	table.Find("colgroup col").Each(func(_ int, col *goquery.Selection) {
		stripWidth(col)
	})
}

func stripWidth(s *goquery.Selection) {
	style, ok := s.Attr("style")
	if !ok || !strings.Contains(style, "width") {
		return
	}

	kept := make([]string, 0)
	for _, rule := range strings.Split(style, ";") {
		if strings.TrimSpace(rule) == "" || strings.Contains(rule, "width") {
			continue
		}
		kept = append(kept, strings.TrimSpace(rule))
	}

	if len(kept) == 0 {
		s.RemoveAttr("style")
		return
	}
	s.SetAttr("style", strings.Join(kept, "; "))
}

// ResetLinks replaces every hyperlink in table with its visible text and
// returns how many were removed.
func ResetLinks(table *goquery.Selection) int {
	links := table.Find("a")
	count := links.Length()
	links.Each(func(_ int, a *goquery.Selection) {
		a.ReplaceWithHtml(html.EscapeString(a.Text()))
	})
	return count
}

// setLink replaces the cell content with a single hyperlink.
func setLink(cell *goquery.Selection, href, text string) {
	cell.SetHtml(`<a href="` + html.EscapeString(href) + `">` + html.EscapeString(text) + `</a>`)
}
