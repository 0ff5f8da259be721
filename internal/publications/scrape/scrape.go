// Package scrape collects the publication listings of the ERC websites into
// the CSV read by the publish command. Each ERC lays its listings out
// differently, so every ERC has its own Parser.
package scrape

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// ERC names with a listing parser.
const (
	ERCAustin  = "UT Austin"
	ERCDallas  = "UT Dallas"
	ERCHouston = "University of Houston"
)

// Source is one publication listing page.
type Source struct {
	URL     string
	Title   string
	ERC     string
	CSVFile string
	Type    string
}

// Supplement is a supporting document listed under a publication.
type Supplement struct {
	Title string
	URL   string
}

// Entry is one scraped publication.
type Entry struct {
	Title   string
	Authors string
	Year    string
	Date    string
	URL     string
	Type    string

	ResearchArea  string
	ProjectNumber string
	THECBNumber   string
	ProjectName   string
	Institution   string
	Supporting    bool
	Supplements   []Supplement

	PublishingERC string
	SourceURL     string
}

// Parser extracts the entries of one listing page.
type Parser interface {
	Parse(doc *goquery.Selection, src Source) []Entry
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(doc *goquery.Selection, src Source) []Entry

// Parse calls f.
func (f ParserFunc) Parse(doc *goquery.Selection, src Source) []Entry {
	return f(doc, src)
}

// ParserFor returns the listing parser for erc.
func ParserFor(erc string) (Parser, error) {
	switch erc {
	case ERCAustin:
		return ParserFunc(ParseAustin), nil
	case ERCDallas:
		return ParserFunc(ParseDallas), nil
	case ERCHouston:
		return ParserFunc(ParseHouston), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownERC, erc)
	}
}
