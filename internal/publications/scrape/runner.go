package scrape

import (
	"context"
	"fmt"

	"github.com/jonesrussell/north-cloud/ercwiki/internal/logger"
)

// PageScraper fetches and parses one listing.
type PageScraper interface {
	Scrape(ctx context.Context, src Source) ([]Entry, error)
}

// Summary counts the outcome of a scrape run.
type Summary struct {
	Sources int
	Failed  int
	Scraped int
	Written int
}

// Runner scrapes every source into one publications CSV.
type Runner struct {
	scraper PageScraper
	log     logger.Interface
}

// NewRunner creates a Runner.
func NewRunner(scraper PageScraper, log logger.Interface) *Runner {
	return &Runner{scraper: scraper, log: log}
}

// Run scrapes sources in order and writes the cleaned, merged entries to
// output. A failing or empty source is logged and skipped. With sourceFiles
// set, each listing is also saved to its own CSVFile before cleaning.
func (r *Runner) Run(ctx context.Context, sources []Source, output string, sourceFiles bool) (*Summary, error) {
	summary := &Summary{Sources: len(sources)}

	var all []Entry
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		entries, err := r.scraper.Scrape(ctx, src)
		if err != nil {
			r.log.Error("Failed to scrape listing", "url", src.URL, "erc", src.ERC, "error", err)
			summary.Failed++
			continue
		}
		if len(entries) == 0 {
			r.log.Warn("No publications found", "url", src.URL, "erc", src.ERC)
			continue
		}

		summary.Scraped += len(entries)
		all = append(all, entries...)

		if sourceFiles && src.CSVFile != "" {
			if err = WriteCSV(src.CSVFile, entries); err != nil {
				return summary, err
			}
			r.log.Info("Saved listing", "file", src.CSVFile, "entries", len(entries))
		}
	}

	cleaned := Clean(all)
	if len(cleaned) == 0 {
		return summary, ErrNoEntries
	}

	if err := WriteCSV(output, cleaned); err != nil {
		return summary, fmt.Errorf("write publications: %w", err)
	}
	summary.Written = len(cleaned)

	r.log.Info("Saved publications", "file", output, "entries", summary.Written, "dropped", summary.Scraped-summary.Written)
	return summary, nil
}
