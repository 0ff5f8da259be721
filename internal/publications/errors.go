package publications

import "errors"

var (
	// ErrMissingColumn is returned when the input lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrMissingField is returned for a record with an empty required field.
	ErrMissingField = errors.New("missing required field")
	// ErrUnsupportedFormat is returned for input files that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported input format")
	// ErrNoTypePage is returned when a record's type page was not prepared.
	ErrNoTypePage = errors.New("no type page for record type")
	// ErrLinkUnreachable is returned by link checks for non-2xx/3xx responses.
	ErrLinkUnreachable = errors.New("link unreachable")
)
