// Package publications publishes ERC publication records to Confluence: one
// detail page per record, grouped under a page per publication type.
package publications

import (
	"fmt"
	"strings"
)

// Column names recognised in the input header. Matching ignores case and
// surrounding whitespace.
const (
	ColumnTitle         = "Title"
	ColumnAuthors       = "Authors"
	ColumnType          = "Type"
	ColumnURL           = "URL"
	ColumnSourceURL     = "Source URL"
	ColumnDate          = "Date"
	ColumnAbstract      = "Abstract"
	ColumnKeyTerms      = "Key Terms"
	ColumnTopic         = "Topic"
	ColumnTHECBNumber   = "THECB #"
	ColumnPublishingERC = "Publishing ERC"
	ColumnProjectName   = "Project Abbreviated Name"
	ColumnResearchArea  = "Research Area"
)

// RequiredColumns must be present in every input file.
var RequiredColumns = []string{ColumnTitle, ColumnAuthors, ColumnType}

// columnAliases maps alternative header spellings to their column.
var columnAliases = map[string]string{
	"thecb number":     ColumnTHECBNumber,
	"thecb no":         ColumnTHECBNumber,
	"thecb project id": ColumnTHECBNumber,
	"publication date": ColumnDate,
	"link":             ColumnURL,
}

// Record is one publication row.
type Record struct {
	// Row is the 1-based data row, header excluded, for error reporting.
	Row int

	Title   string
	Authors string
	Type    string

	URL           string
	SourceURL     string
	Date          string
	Abstract      string
	KeyTerms      string
	Topic         string
	THECBNumber   string
	PublishingERC string
	ProjectName   string
	ResearchArea  string
}

// Validate reports the first empty required field.
func (r *Record) Validate() error {
	for _, f := range []struct {
		name  string
		value string
	}{
		{ColumnTitle, r.Title},
		{ColumnAuthors, r.Authors},
		{ColumnType, r.Type},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: row %d: %s", ErrMissingField, r.Row, f.name)
		}
	}
	return nil
}

// set stores value in the field for column.
func (r *Record) set(column, value string) {
	switch column {
	case ColumnTitle:
		r.Title = value
	case ColumnAuthors:
		r.Authors = value
	case ColumnType:
		r.Type = value
	case ColumnURL:
		r.URL = value
	case ColumnSourceURL:
		r.SourceURL = value
	case ColumnDate:
		r.Date = value
	case ColumnAbstract:
		r.Abstract = value
	case ColumnKeyTerms:
		r.KeyTerms = value
	case ColumnTopic:
		r.Topic = value
	case ColumnTHECBNumber:
		r.THECBNumber = value
	case ColumnPublishingERC:
		r.PublishingERC = value
	case ColumnProjectName:
		r.ProjectName = value
	case ColumnResearchArea:
		r.ResearchArea = value
	}
}

var knownColumns = []string{
	ColumnTitle, ColumnAuthors, ColumnType, ColumnURL, ColumnSourceURL, ColumnDate,
	ColumnAbstract, ColumnKeyTerms, ColumnTopic, ColumnTHECBNumber, ColumnPublishingERC,
	ColumnProjectName, ColumnResearchArea,
}

// canonicalColumn resolves a header cell to a known column name, or "".
func canonicalColumn(header string) string {
	h := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
	for _, c := range knownColumns {
		if strings.ToLower(c) == h {
			return c
		}
	}
	return columnAliases[strings.TrimSuffix(h, ".")]
}
