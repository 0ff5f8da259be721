package projects

import (
	"html"
	"strings"
)

// RenderPage renders t as a wiki table under an h2 title. Empty cells show
// EmptyValue. Cells of the publications column are markup and kept as is.
func RenderPage(title string, t *Table) string {
	var b strings.Builder
	b.WriteString("<h2>" + html.EscapeString(title) + "</h2>")
	b.WriteString(`<table class="confluenceTable"><thead><tr>`)
	for _, h := range t.Headers {
		b.WriteString(`<th class="confluenceTh">` + html.EscapeString(h) + `</th>`)
	}
	b.WriteString(`</tr></thead><tbody>`)

	pubCol := t.Column(ColumnPublications)
	for _, row := range t.Rows {
		b.WriteString("<tr>")
		for i := range t.Headers {
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			switch {
			case value == "":
				value = EmptyValue
			case i != pubCol:
				value = html.EscapeString(value)
			}
			b.WriteString(`<td class="confluenceTd">` + value + `</td>`)
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}
