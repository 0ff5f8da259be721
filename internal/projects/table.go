// Package projects mirrors the public research-project listings into the
// wiki: each listing table is scraped, snapshotted to CSV and published as a
// page whose publication column lists the matching publication pages by label.
package projects

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Column names after normalisation.
const (
	ColumnProjectNumber = "ERC Proj No"
	ColumnApprovalDate  = "Approval Date"
	ColumnTHECBNumber   = "THECB Number"
	ColumnProjectName   = "Texas ERC Project Name"
	ColumnAbbreviated   = "Project Abbreviated Name"
	ColumnPublications  = "Publications Associated with Project"
)

// EmptyValue stands in for missing cells and THECB numbers.
const EmptyValue = "---"

// briefMarker separates a project name from its policy brief links.
const briefMarker = "\nBrief 1"

var headerRenames = map[string]string{
	"ERCProjNo.":                ColumnProjectNumber,
	"ERCProj #":                 ColumnProjectNumber,
	"Original Approval Date":    ColumnApprovalDate,
	"THECB #":                   ColumnTHECBNumber,
	"THECBNo.":                  ColumnTHECBNumber,
	"Project  Abbreviated Name": ColumnAbbreviated,
}

// Table is a normalised project listing.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Column returns the index of the named column, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Hyperlink is a link found in a project name cell.
type Hyperlink struct {
	THECBNumber string
	ProjectName string
	URL         string
}

// ParseOptions tunes ParseTable.
type ParseOptions struct {
	// SkipRows drops rows whose first cell equals one of these values.
	SkipRows []string
}

// NormalizeHeader maps the listing's header spellings to stable column names.
func NormalizeHeader(h string) string {
	if renamed, ok := headerRenames[h]; ok {
		return renamed
	}
	if strings.Contains(h, "Texas ERC Project") && strings.Contains(h, "Click Project Name to see available policy brief") {
		return ColumnProjectName
	}
	return h
}

// ParseTable reads the first table in doc. Headers are normalised, a
// publications column is appended, and project-name hyperlinks are collected.
func ParseTable(doc *goquery.Selection, opts ParseOptions) (*Table, []Hyperlink, error) {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, nil, ErrNoTable
	}

	t := &Table{}
	table.Find("th").Each(func(_ int, th *goquery.Selection) {
		t.Headers = append(t.Headers, NormalizeHeader(strings.TrimSpace(th.Text())))
	})
	t.Headers = append(t.Headers, ColumnPublications)

	skip := make(map[string]bool, len(opts.SkipRows))
	for _, s := range opts.SkipRows {
		skip[s] = true
	}

	dateCol := t.Column(ColumnApprovalDate)
	nameCol := t.Column(ColumnProjectName)
	thecbCol := t.Column(ColumnTHECBNumber)

	var links []Hyperlink
	table.Find("tr").Slice(1, goquery.ToEnd).Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td")
		cells := make([]string, 0, tds.Length()+1)
		tds.Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(td.Text()))
		})

		if dateCol >= 0 && dateCol < len(cells) {
			cells[dateCol] = expandYear(cells[dateCol])
		}
		if len(cells) > 0 && skip[cells[0]] {
			return
		}

		publications := "N"
		if nameCol >= 0 && nameCol < len(cells) {
			if idx := strings.Index(cells[nameCol], briefMarker); idx >= 0 {
				cells[nameCol] = strings.TrimSpace(cells[nameCol][:idx])
				publications = "Y"
			}

			thecb := ""
			if thecbCol >= 0 && thecbCol < len(cells) {
				thecb = cells[thecbCol]
			}
			tds.Eq(nameCol).Find("a").Each(func(_ int, a *goquery.Selection) {
				href, _ := a.Attr("href")
				links = append(links, Hyperlink{THECBNumber: thecb, ProjectName: cells[nameCol], URL: href})
			})
		}

		if thecbCol >= 0 && thecbCol < len(cells) {
			publications = PublicationsMacro(cells[thecbCol])
		}
		t.Rows = append(t.Rows, append(cells, publications))
	})

	return t, links, nil
}

// expandYear turns a dd.mm.yy date into dd.mm.20yy.
func expandYear(date string) string {
	parts := strings.Split(date, ".")
	if len(parts) == 3 && len(parts[2]) == 2 {
		return fmt.Sprintf("%s.%s.20%s", parts[0], parts[1], parts[2])
	}
	return date
}

// PublicationsMacro renders a content-by-label macro listing the publication
// pages labelled for thecbNumber. Blank and placeholder numbers yield EmptyValue.
func PublicationsMacro(thecbNumber string) string {
	n := strings.TrimSpace(thecbNumber)
	if n == "" || n == EmptyValue {
		return EmptyValue
	}
	return `<ac:structured-macro ac:name="contentbylabel" ac:schema-version="1">` +
		`<ac:parameter ac:name="label">thecb-id-` + n + `</ac:parameter>` +
		`<ac:parameter ac:name="max">10</ac:parameter>` +
		`<ac:parameter ac:name="showSpace">false</ac:parameter>` +
		`<ac:parameter ac:name="showLabels">false</ac:parameter>` +
		`</ac:structured-macro>`
}
