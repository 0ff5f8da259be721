package projects_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/projects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `<html><body>
<h1>Current Research Projects</h1>
<table>
<tr><th>ERCProjNo.</th><th>Original Approval Date</th><th>THECB #</th>
<th>Texas ERC Project Name (Click Project Name to see available policy brief)</th>
<th>Project  Abbreviated Name</th></tr>
<tr><td>101</td><td>01.02.23</td><td>12</td><td><a href="https://example.org/brief-12.pdf">Educator Pipelines
Brief 1</a></td><td>Pipelines</td></tr>
<tr><td>149</td><td>05.06.2019</td><td>---</td><td>Retired Project</td><td>Retired</td></tr>
<tr><td>102</td><td>3.4.21</td><td></td><td>Early Literacy &amp; Reading</td><td>Literacy</td></tr>
</table>
<table><tr><th>Ignored</th></tr></table>
</body></html>`

func parseListing(t *testing.T, src string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	require.NoError(t, err)
	return doc.Selection
}

func TestParseTable(t *testing.T) {
	t.Parallel()

	table, links, err := projects.ParseTable(parseListing(t, listingHTML), projects.ParseOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		projects.ColumnProjectNumber,
		projects.ColumnApprovalDate,
		projects.ColumnTHECBNumber,
		projects.ColumnProjectName,
		projects.ColumnAbbreviated,
		projects.ColumnPublications,
	}, table.Headers)
	require.Len(t, table.Rows, 3)

	first := table.Rows[0]
	assert.Equal(t, "01.02.2023", first[1])
	assert.Equal(t, "Educator Pipelines", first[3])
	assert.Contains(t, first[5], `<ac:parameter ac:name="label">thecb-id-12</ac:parameter>`)

	assert.Equal(t, projects.EmptyValue, table.Rows[1][5])
	assert.Equal(t, "05.06.2019", table.Rows[1][1])

	third := table.Rows[2]
	assert.Equal(t, "3.4.2021", third[1])
	assert.Equal(t, "Early Literacy & Reading", third[3])
	assert.Equal(t, projects.EmptyValue, third[5])

	require.Len(t, links, 1)
	assert.Equal(t, projects.Hyperlink{
		THECBNumber: "12",
		ProjectName: "Educator Pipelines",
		URL:         "https://example.org/brief-12.pdf",
	}, links[0])
}

func TestParseTable_SkipRows(t *testing.T) {
	t.Parallel()

	table, _, err := projects.ParseTable(parseListing(t, listingHTML), projects.ParseOptions{SkipRows: []string{"149"}})
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "102", table.Rows[1][0])
}

func TestParseTable_WithoutTHECBColumn(t *testing.T) {
	t.Parallel()

	src := `<table><tr><th>Texas ERC Project Full Name(Click Project Name to see available policy brief)</th></tr>
<tr><td>Plain</td></tr><tr><td>Briefed
Brief 1 Brief 2</td></tr></table>`

	table, links, err := projects.ParseTable(parseListing(t, src), projects.ParseOptions{})
	require.NoError(t, err)
	assert.Empty(t, links)
	assert.Equal(t, [][]string{{"Plain", "N"}, {"Briefed", "Y"}}, table.Rows)
}

func TestParseTable_NoTable(t *testing.T) {
	t.Parallel()

	_, _, err := projects.ParseTable(parseListing(t, "<p>nothing here</p>"), projects.ParseOptions{})
	require.ErrorIs(t, err, projects.ErrNoTable)
}

func TestNormalizeHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"ERCProj #", projects.ColumnProjectNumber},
		{"THECBNo.", projects.ColumnTHECBNumber},
		{"Texas ERC Project Name (Click Project Name to see available policy brief)", projects.ColumnProjectName},
		{"Texas ERC Project Name", "Texas ERC Project Name"},
		{"Principal Investigator", "Principal Investigator"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, projects.NormalizeHeader(tt.in))
		})
	}
}

func TestPublicationsMacro(t *testing.T) {
	t.Parallel()

	assert.Equal(t, projects.EmptyValue, projects.PublicationsMacro(""))
	assert.Equal(t, projects.EmptyValue, projects.PublicationsMacro(" --- "))
	macro := projects.PublicationsMacro("7")
	assert.True(t, strings.HasPrefix(macro, `<ac:structured-macro ac:name="contentbylabel"`))
	assert.Contains(t, macro, "thecb-id-7")
}
