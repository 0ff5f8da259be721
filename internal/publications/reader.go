package publications

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadRecords reads publication records from a .csv or .xlsx file.
func ReadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParseCSV(f)
	case ".xlsx":
		return ParseXLSX(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ParseCSV parses records from CSV with a header row.
func ParseCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s (empty input)", ErrMissingColumn, ColumnTitle)
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	columns, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	for row := 1; ; row++ {
		fields, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			return records, nil
		}
		if readErr != nil {
			return nil, fmt.Errorf("read csv row %d: %w", row, readErr)
		}
		if rec, ok := toRecord(row, columns, fields); ok {
			records = append(records, rec)
		}
	}
}

// ParseXLSX parses records from the first sheet of an XLSX workbook.
func ParseXLSX(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s (workbook has no sheets)", ErrMissingColumn, ColumnTitle)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s (empty sheet)", ErrMissingColumn, ColumnTitle)
	}

	columns, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	var records []Record
	for i, fields := range rows[1:] {
		if rec, ok := toRecord(i+1, columns, fields); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// mapHeader returns the column name for each header position ("" for
// unknown columns) and fails when a required column is missing.
func mapHeader(header []string) ([]string, error) {
	columns := make([]string, len(header))
	present := make(map[string]bool, len(header))
	for i, h := range header {
		if c := canonicalColumn(h); c != "" && !present[c] {
			columns[i] = c
			present[c] = true
		}
	}

	for _, required := range RequiredColumns {
		if !present[required] {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}
	return columns, nil
}

// toRecord builds a record from one row. Blank rows are dropped.
func toRecord(row int, columns, fields []string) (Record, bool) {
	rec := Record{Row: row}
	blank := true
	for i, value := range fields {
		if i >= len(columns) || columns[i] == "" {
			continue
		}
		value = strings.TrimSpace(value)
		if value != "" {
			blank = false
		}
		rec.set(columns[i], value)
	}
	return rec, !blank
}
