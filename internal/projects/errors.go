package projects

import "errors"

var (
	// ErrNoTable is returned when a scraped page contains no table.
	ErrNoTable = errors.New("no table found")
	// ErrEmptySnapshot is returned when a CSV snapshot has no header row.
	ErrEmptySnapshot = errors.New("empty snapshot")
)
