package scrape

import (
	"context"
	"fmt"
	"time"

	colly "github.com/gocolly/colly/v2"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/logger"
)

// Scraper defaults. Some ERC sites reject non-browser user agents.
const (
	DefaultScrapeTimeout = 30 * time.Second
	DefaultUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Scraper fetches publication listing pages.
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

// Scrape fetches src and parses it with its ERC's parser. Every entry is
// stamped with the publishing ERC and the listing URL, and gets the source
// type unless the parser set one.
func (s *Scraper) Scrape(ctx context.Context, src Source) ([]Entry, error) {
	parser, err := ParserFor(src.ERC)
	if err != nil {
		return nil, err
	}

	collector := colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.IgnoreRobotsTxt(),
		colly.AllowURLRevisit(),
		colly.UserAgent(s.userAgent),
	)
	collector.SetRequestTimeout(s.timeout)

	var (
		entries  []Entry
		fetchErr error
	)

	collector.OnRequest(func(r *colly.Request) {
		s.log.Debug("Visiting", "url", r.URL.String(), "erc", src.ERC)
	})

	collector.OnHTML("html", func(e *colly.HTMLElement) {
		entries = parser.Parse(e.DOM, src)
	})

	collector.OnError(func(r *colly.Response, err error) {
		s.log.Error("Error while scraping",
			"url", r.Request.URL.String(),
			"status", r.StatusCode,
			"error", err)
		fetchErr = fmt.Errorf("fetch %s: status %d: %w", src.URL, r.StatusCode, err)
	})

	if visitErr := collector.Visit(src.URL); visitErr != nil && fetchErr == nil {
		return nil, fmt.Errorf("fetch %s: %w", src.URL, visitErr)
	}
	if fetchErr != nil {
		return nil, fetchErr
	}

	for i := range entries {
		entries[i].PublishingERC = src.ERC
		entries[i].SourceURL = src.URL
		if entries[i].Type == "" {
			entries[i].Type = src.Type
		}
	}

	s.log.Info("Scraped publication listing", "url", src.URL, "erc", src.ERC, "entries", len(entries))
	return entries, nil
}
