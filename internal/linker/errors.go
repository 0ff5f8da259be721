package linker

import "errors"

var (
	// ErrTitleMismatch is returned when the dataset page is not titled
	// "Datasets: <report title>".
	ErrTitleMismatch = errors.New("page titles do not match")
	// ErrTooFewColumns is returned when the variables table has no usable link column.
	ErrTooFewColumns = errors.New("variables table has too few columns")
	// ErrUnknownProfile is returned for an unsupported --link-type.
	ErrUnknownProfile = errors.New("unknown link type")
)
