package projects

import (
	"context"
	"fmt"
	"time"

	colly "github.com/gocolly/colly/v2"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/logger"
)

// Scraper defaults.
const (
	DefaultScrapeTimeout = 30 * time.Second
	DefaultUserAgent     = "ercwiki/1.0 (+project-sync)"
)

// Scraper fetches listing pages and parses their project table.
type Scraper struct {
	log       logger.Interface
	timeout   time.Duration
	userAgent string
}

// ScraperOption configures a Scraper.
type ScraperOption func(*Scraper)

// WithScrapeTimeout sets the per-request timeout.
func WithScrapeTimeout(d time.Duration) ScraperOption {
	return func(s *Scraper) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent sent with each request.
func WithUserAgent(ua string) ScraperOption {
	return func(s *Scraper) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// NewScraper creates a Scraper.
func NewScraper(log logger.Interface, opts ...ScraperOption) *Scraper {
	s := &Scraper{log: log, timeout: DefaultScrapeTimeout, userAgent: DefaultUserAgent}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape fetches url and parses the first table on it.
func (s *Scraper) Scrape(ctx context.Context, url string, opts ParseOptions) (*Table, []Hyperlink, error) {
	collector := colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.IgnoreRobotsTxt(),
		colly.AllowURLRevisit(),
		colly.UserAgent(s.userAgent),
	)
	collector.SetRequestTimeout(s.timeout)

	var (
		table    *Table
		links    []Hyperlink
		parseErr error
		fetchErr error
	)

	collector.OnRequest(func(r *colly.Request) {
		s.log.Debug("Visiting", "url", r.URL.String())
	})

	collector.OnHTML("html", func(e *colly.HTMLElement) {
		table, links, parseErr = ParseTable(e.DOM, opts)
	})

	collector.OnError(func(r *colly.Response, err error) {
		s.log.Error("Error while scraping",
			"url", r.Request.URL.String(),
			"status", r.StatusCode,
			"error", err)
		fetchErr = fmt.Errorf("fetch %s: status %d: %w", url, r.StatusCode, err)
	})

	if err := collector.Visit(url); err != nil && fetchErr == nil {
		return nil, nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if fetchErr != nil {
		return nil, nil, fetchErr
	}
	if parseErr != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", url, parseErr)
	}
	if table == nil {
		return nil, nil, fmt.Errorf("parse %s: %w", url, ErrNoTable)
	}

	s.log.Info("Scraped project table", "url", url, "rows", len(table.Rows), "hyperlinks", len(links))
	return table, links, nil
}
