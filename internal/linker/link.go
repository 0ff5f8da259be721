package linker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/matcher"
)

const (
	itemNameHeader       = "Item name"
	matchedHeadingHeader = "Matched Heading"
	noMatchText          = "No match found"
	defaultTHECBColumn   = 2
	defaultUTDColumn     = 1
	minSBECCells         = 3
)

var headingDash = regexp.MustCompile(`[-–—]\s*`)

// RowOutcome records what happened to one data row of the variables table.
type RowOutcome struct {
	// Row is the 1-based data row, header excluded.
	Row int
	// Text is the text of the linked cell.
	Text string
	// Name is the text that was matched; it differs from Text when the
	// variable name was used as a fallback.
	Name    string
	Heading string
	Anchor  string
	Score   float64
	Matched bool
}

// linkContext is the state shared by the rows of one run. The pool makes sure
// no heading is linked twice.
type linkContext struct {
	pool      *matcher.Pool
	headings  []Heading
	targetURL string
}

func newLinkContext(m matcher.Matcher, headings []Heading, targetURL string) *linkContext {
	return &linkContext{
		pool:      m.NewPool(headingTexts(headings)),
		headings:  headings,
		targetURL: targetURL,
	}
}

// claim tries each non-empty name in order and returns the first accepted
// match. When none is accepted the best score seen is kept.
func (lc *linkContext) claim(out *RowOutcome, names ...string) bool {
	for _, name := range names {
		if name == "" {
			continue
		}
		res := lc.pool.Claim(name)
		if res.Matched {
			out.Name = name
			out.Heading = lc.headings[res.Index].Text
			out.Anchor = lc.headings[res.Index].Anchor
			out.Score = res.Score
			out.Matched = true
			return true
		}
		out.Score = max(out.Score, res.Score)
		if out.Name == "" {
			out.Name = name
		}
	}
	return false
}

func (lc *linkContext) href(anchor string) string {
	return lc.targetURL + "#" + anchor
}

// Apply rewrites the variables table according to profile, linking cells to
// the given headings of the page at targetURL. The table is widened first.
func Apply(
	table *goquery.Selection,
	profile Profile,
	m matcher.Matcher,
	headings []Heading,
	targetURL string,
) ([]RowOutcome, error) {
	lc := newLinkContext(m, headings, targetURL)

	switch profile {
	case ProfileTHECB:
		WidenTable(table)
		return linkTHECB(table, lc)
	case ProfileSBEC:
		WidenTable(table)
		return linkSBEC(table, lc), nil
	case ProfileTEA:
		WidenTable(table)
		return linkTEA(table, lc), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, profile)
	}
}

func columnContaining(texts []string, needles ...string) int {
	for _, needle := range needles {
		for i, t := range texts {
			if strings.Contains(t, needle) {
				return i
			}
		}
	}
	return -1
}

// linkTHECB links the "Item name" column (or "Description", or the third
// column), falling back to the first column's variable name for matching.
func linkTHECB(table *goquery.Selection, lc *linkContext) ([]RowOutcome, error) {
	_, headers := headerRow(table)
	texts := lowerTexts(headers)

	col := columnContaining(texts, "item name")
	if col < 0 {
		col = columnContaining(texts, "description")
	}
	if col < 0 {
		if len(texts) <= defaultTHECBColumn {
			return nil, fmt.Errorf("%w: %d header cells", ErrTooFewColumns, len(texts))
		}
		col = defaultTHECBColumn
	}

	var outcomes []RowOutcome
	dataRows(table).Each(func(i int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("th, td")
		if cells.Length() <= col {
			return
		}

		cell := cells.Eq(col)
		text := cellText(cell)
		if text == "" {
			return
		}

		out := RowOutcome{Row: i + 1, Text: text}
		variable := ""
		if col != 0 {
			variable = cellText(cells.First())
		}

		if lc.claim(&out, text, variable) {
			setLink(cell, lc.href(out.Anchor), text)
		} else {
			cell.SetText(text)
		}
		outcomes = append(outcomes, out)
	})

	return outcomes, nil
}

// linkSBEC links the second td of every row with at least three td cells.
func linkSBEC(table *goquery.Selection, lc *linkContext) []RowOutcome {
	var outcomes []RowOutcome
	dataRows(table).Each(func(i int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		if cells.Length() < minSBECCells {
			return
		}

		cell := cells.Eq(1)
		text := cellText(cell)
		out := RowOutcome{Row: i + 1, Text: text}

		if lc.claim(&out, text) {
			setLink(cell, lc.href(out.Anchor), text)
		} else {
			cell.SetText(text)
		}
		outcomes = append(outcomes, out)
	})
	return outcomes
}

// linkTEA matches each row's th variable, links the "Item name" cell with the
// heading description and records the heading in a "Matched Heading" column.
// Both columns are added when missing.
func linkTEA(table *goquery.Selection, lc *linkContext) []RowOutcome {
	itemCol := ensureItemNameColumn(table)
	headingCol := ensureMatchedHeadingColumn(table)

	var outcomes []RowOutcome
	dataRows(table).Each(func(i int, row *goquery.Selection) {
		variableCell := row.ChildrenFiltered("th").First()
		if variableCell.Length() == 0 {
			return
		}
		variable := cellText(variableCell)
		if variable == "" {
			return
		}

		thCount := row.ChildrenFiltered("th").Length()
		itemIdx := itemCol - thCount
		headingIdx := headingCol - thCount
		if itemIdx < 0 || headingIdx < 0 {
			return
		}
		cells := padCells(row, max(itemIdx, headingIdx)+1)

		out := RowOutcome{Row: i + 1, Text: variable}
		if lc.claim(&out, variable) {
			display := teaDisplayText(out.Heading)
			out.Text = display
			setLink(cells.Eq(itemIdx), lc.href(out.Anchor), display)
			cells.Eq(headingIdx).SetText(out.Heading)
		} else {
			cells.Eq(headingIdx).SetText(noMatchText)
		}
		outcomes = append(outcomes, out)
	})
	return outcomes
}

// teaDisplayText returns the part of a heading after its first dash, for
// example "Fiscal Year" for "E0974 - Fiscal Year".
func teaDisplayText(heading string) string {
	parts := headingDash.Split(heading, 2)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return heading
	}
	return strings.TrimSpace(parts[1])
}

// ensureItemNameColumn returns the index of the "Item name" header, inserting
// the column after the "UTD-ERC Variable" column (default the second column)
// when it is missing.
func ensureItemNameColumn(table *goquery.Selection) int {
	_, headers := headerRow(table)
	texts := lowerTexts(headers)

	if col := columnContaining(texts, "item name"); col >= 0 {
		return col
	}

	after := columnContaining(texts, "utd-erc", "utd erc")
	if after < 0 {
		after = min(defaultUTDColumn, headers.Length()-1)
	}
	if after < 0 {
		return -1
	}

	headers.Eq(after).AfterHtml("<th>" + itemNameHeader + "</th>")

	dataRows(table).Each(func(_ int, row *goquery.Selection) {
		ths := row.ChildrenFiltered("th")
		tds := row.ChildrenFiltered("td")

		if idx := after - ths.Length(); idx >= 0 {
			if idx < tds.Length() {
				tds.Eq(idx).AfterHtml("<td></td>")
			}
			return
		}
		ths.Last().AfterHtml("<td></td>")
	})

	return after + 1
}

// ensureMatchedHeadingColumn returns the index of the "Matched Heading" header,
// appending the column when it is missing.
func ensureMatchedHeadingColumn(table *goquery.Selection) int {
	_, headers := headerRow(table)
	texts := lowerTexts(headers)

	if col := columnContaining(texts, "matched heading"); col >= 0 {
		return col
	}
	if headers.Length() == 0 {
		return -1
	}

	headers.Last().AfterHtml("<th>" + matchedHeadingHeader + "</th>")
	dataRows(table).Each(func(_ int, row *goquery.Selection) {
		if tds := row.ChildrenFiltered("td"); tds.Length() > 0 {
			tds.Last().AfterHtml("<td></td>")
		}
	})

	return headers.Length()
}

// padCells appends empty td cells until row has at least n of them.
func padCells(row *goquery.Selection, n int) *goquery.Selection {
	for {
		tds := row.ChildrenFiltered("td")
		if tds.Length() >= n {
			return tds
		}
		row.AppendHtml("<td></td>")
	}
}
