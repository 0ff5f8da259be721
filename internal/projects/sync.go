package projects

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonesrussell/north-cloud/ercwiki/internal/confluence"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/logger"
)

// Target is one listing to mirror.
type Target struct {
	URL      string
	Title    string
	CSVFile  string
	SkipRows []string
}

// TableScraper fetches a listing table.
type TableScraper interface {
	Scrape(ctx context.Context, url string, opts ParseOptions) (*Table, []Hyperlink, error)
}

// Syncer runs the two phases of a project sync: scraping every target to its
// CSV snapshot, then publishing the snapshots.
type Syncer struct {
	scraper   TableScraper
	publisher *Publisher
	log       logger.Interface
}

// NewSyncer creates a Syncer. publisher may be nil when only scraping.
func NewSyncer(scraper TableScraper, publisher *Publisher, log logger.Interface) *Syncer {
	return &Syncer{scraper: scraper, publisher: publisher, log: log}
}

// ScrapeAll scrapes every target into its snapshot and writes the combined
// hyperlinks to hyperlinksFile when any were found. A target that fails is
// logged and skipped. It returns the number of snapshots written.
func (s *Syncer) ScrapeAll(ctx context.Context, targets []Target, hyperlinksFile string) (int, error) {
	var (
		written int
		all     []Hyperlink
	)
	for _, target := range targets {
		table, links, err := s.scraper.Scrape(ctx, target.URL, ParseOptions{SkipRows: target.SkipRows})
		if err != nil {
			if ctx.Err() != nil {
				return written, ctx.Err()
			}
			s.log.Warn("No table scraped", "url", target.URL, "error", err)
			continue
		}
		if err = WriteCSV(target.CSVFile, table); err != nil {
			return written, err
		}
		s.log.Info("Saved snapshot", "url", target.URL, "csv_file", target.CSVFile)
		written++
		all = append(all, links...)
	}

	if len(all) > 0 {
		if err := WriteHyperlinks(hyperlinksFile, all); err != nil {
			return written, err
		}
		s.log.Info("Saved hyperlinks", "file", hyperlinksFile, "count", len(all))
	}
	return written, nil
}

// PublishAll publishes each target's snapshot. Missing snapshots are skipped;
// an authentication failure stops the run.
func (s *Syncer) PublishAll(ctx context.Context, targets []Target) (int, error) {
	if s.publisher == nil {
		return 0, errors.New("no publisher configured")
	}

	published := 0
	for _, target := range targets {
		table, err := ReadCSV(target.CSVFile)
		if err != nil {
			s.log.Warn("No snapshot to publish", "csv_file", target.CSVFile, "error", err)
			continue
		}
		if _, err = s.publisher.Publish(ctx, target.Title, table); err != nil {
			if confluence.IsAuthError(err) {
				return published, fmt.Errorf("authentication failed: %w", err)
			}
			s.log.Error("Failed to publish listing", "title", target.Title, "error", err)
			continue
		}
		published++
	}
	return published, nil
}
