package publications_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonesrussell/north-cloud/ercwiki/internal/publications"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = "\ufeffTitle,Authors,Type,URL,Source URL,Date,Abstract,Key Terms,Topic,THECB #,Publishing ERC,Project Abbreviated Name,Research Area,Notes\n" +
	"Educator Pipelines, A. Smith ,Report,https://example.org/a.pdf,https://erc.example.org,2023,\"Long, quoted abstract\",pipelines,Workforce,12,UT Austin,Pipelines,Education,ignored\n" +
	",,,,,,,,,,,,,\n" +
	"Second Paper,B. Jones,Article,,,,,,,,,,,\n"

func TestParseCSV(t *testing.T) {
	t.Parallel()

	records, err := publications.ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, 1, first.Row)
	assert.Equal(t, "Educator Pipelines", first.Title)
	assert.Equal(t, "A. Smith", first.Authors)
	assert.Equal(t, "Report", first.Type)
	assert.Equal(t, "https://example.org/a.pdf", first.URL)
	assert.Equal(t, "https://erc.example.org", first.SourceURL)
	assert.Equal(t, "Long, quoted abstract", first.Abstract)
	assert.Equal(t, "12", first.THECBNumber)
	assert.Equal(t, "UT Austin", first.PublishingERC)
	assert.Equal(t, "Pipelines", first.ProjectName)
	assert.Equal(t, "Education", first.ResearchArea)

	second := records[1]
	assert.Equal(t, 3, second.Row)
	assert.Equal(t, "Second Paper", second.Title)
	assert.Empty(t, second.URL)
}

func TestParseCSV_HeaderAliases(t *testing.T) {
	t.Parallel()

	in := "title,AUTHORS,Type,THECB Number,Publication Date\nX,Y,Report,7,2021\n"
	records, err := publications.ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "7", records[0].THECBNumber)
	assert.Equal(t, "2021", records[0].Date)
}

func TestParseCSV_MissingColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		missing string
	}{
		{"no type", "Title,Authors\nX,Y\n", "Type"},
		{"no authors", "Title,Type\nX,Report\n", "Authors"},
		{"empty", "", "Title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := publications.ParseCSV(strings.NewReader(tt.input))
			require.ErrorIs(t, err, publications.ErrMissingColumn)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func createTestWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestParseXLSX(t *testing.T) {
	t.Parallel()

	data := createTestWorkbook(t, [][]string{
		{"Title", "Authors", "Type", "URL"},
		{"Workbook Paper", "C. Lee", "Brief", "not a url"},
		{"Short Row", "D. Kim", "Brief"},
	})

	records, err := publications.ParseXLSX(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Workbook Paper", records[0].Title)
	assert.Equal(t, "not a url", records[0].URL)
	assert.Equal(t, "Short Row", records[1].Title)
	assert.Empty(t, records[1].URL)
}

func TestParseXLSX_MissingColumn(t *testing.T) {
	t.Parallel()

	data := createTestWorkbook(t, [][]string{{"Title", "Type"}, {"X", "Y"}})
	_, err := publications.ParseXLSX(bytes.NewReader(data))
	require.ErrorIs(t, err, publications.ErrMissingColumn)
}

func TestReadRecords(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	csvPath := filepath.Join(dir, "pubs.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o600))
	records, err := publications.ReadRecords(csvPath)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	xlsxPath := filepath.Join(dir, "pubs.xlsx")
	require.NoError(t, os.WriteFile(xlsxPath, createTestWorkbook(t, [][]string{
		{"Title", "Authors", "Type"}, {"A", "B", "C"},
	}), 0o600))
	records, err = publications.ReadRecords(xlsxPath)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	txtPath := filepath.Join(dir, "pubs.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("x"), 0o600))
	_, err = publications.ReadRecords(txtPath)
	require.ErrorIs(t, err, publications.ErrUnsupportedFormat)

	_, err = publications.ReadRecords(filepath.Join(dir, "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRecord_Validate(t *testing.T) {
	t.Parallel()

	ok := publications.Record{Row: 1, Title: "T", Authors: "A", Type: "Report"}
	require.NoError(t, ok.Validate())

	missing := publications.Record{Row: 4, Title: "T", Type: "Report"}
	err := missing.Validate()
	require.ErrorIs(t, err, publications.ErrMissingField)
	assert.Contains(t, err.Error(), "row 4")
	assert.Contains(t, err.Error(), "Authors")
}
