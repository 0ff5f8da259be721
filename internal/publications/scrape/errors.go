package scrape

import "errors"

var (
	// ErrUnknownERC is returned for a source whose ERC has no listing parser.
	ErrUnknownERC = errors.New("no parser for ERC")
	// ErrNoEntries is returned when no source yielded a publication.
	ErrNoEntries = errors.New("no publications scraped")
)
