package projects

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// HyperlinkHeader is the header of the combined hyperlinks file.
var HyperlinkHeader = []string{ColumnTHECBNumber, ColumnProjectName, "Hyperlink"}

// WriteCSV writes t to path, replacing any previous snapshot.
func WriteCSV(path string, t *Table) error {
	rows := make([][]string, 0, len(t.Rows)+1)
	rows = append(rows, t.Headers)
	rows = append(rows, t.Rows...)
	return writeRows(path, rows)
}

// WriteHyperlinks writes links to path with HyperlinkHeader.
func WriteHyperlinks(path string, links []Hyperlink) error {
	rows := make([][]string, 0, len(links)+1)
	rows = append(rows, HyperlinkHeader)
	for _, l := range links {
		rows = append(rows, []string{l.THECBNumber, l.ProjectName, l.URL})
	}
	return writeRows(path, rows)
}

func writeRows(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err = w.WriteAll(rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// ReadCSV loads a snapshot written by WriteCSV.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s", ErrEmptySnapshot, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	t := &Table{Headers: header}
	for {
		row, readErr := r.Read()
		if errors.Is(readErr, io.EOF) {
			return t, nil
		}
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		t.Rows = append(t.Rows, row)
	}
}
