// Package linker rewrites the variables table of a dataset page so that each
// variable links to the matching heading of its report page.
package linker

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonesrussell/north-cloud/ercwiki/internal/confluence"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/logger"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/matcher"
)

// DatasetTitlePrefix prefixes the title of every dataset page.
const DatasetTitlePrefix = "Datasets: "

// Wiki is the part of the Confluence API the updater uses.
type Wiki interface {
	GetPage(ctx context.Context, id string, expand ...string) (*confluence.Page, error)
	UpdatePage(ctx context.Context, req confluence.UpdatePageRequest) (*confluence.Page, error)
	PageURL(page *confluence.Page) string
}

// Options configures one run.
type Options struct {
	DatasetPageID  string
	ReportPageID   string
	Profile        Profile
	Reset          bool
	Threshold      float64
	SkipTitleCheck bool
}

// Updater links dataset pages to report pages.
type Updater struct {
	wiki Wiki
	log  logger.Interface
}

// NewUpdater creates an Updater.
func NewUpdater(wiki Wiki, log logger.Interface) *Updater {
	return &Updater{wiki: wiki, log: log}
}

// ValidateTitles checks that source is titled "Datasets: " + target.
func ValidateTitles(source, target string) error {
	if !strings.HasPrefix(source, DatasetTitlePrefix) ||
		strings.TrimSpace(strings.TrimPrefix(source, DatasetTitlePrefix)) != strings.TrimSpace(target) {
		return fmt.Errorf("%w: source %q, target %q, expected source %q",
			ErrTitleMismatch, source, target, DatasetTitlePrefix+target)
	}
	return nil
}

// Run fetches both pages, rewrites the dataset page's variables table and
// publishes the result as a minor edit.
func (u *Updater) Run(ctx context.Context, opts Options) (*Report, error) {
	source, err := u.wiki.GetPage(ctx, opts.DatasetPageID, "body.storage", "version", "space")
	if err != nil {
		return nil, fmt.Errorf("fetch dataset page: %w", err)
	}
	target, err := u.wiki.GetPage(ctx, opts.ReportPageID, "body.storage", "space")
	if err != nil {
		return nil, fmt.Errorf("fetch report page: %w", err)
	}

	report := &Report{
		SourceTitle: source.Title,
		TargetTitle: target.Title,
		Profile:     opts.Profile,
		Reset:       opts.Reset,
	}

	if titleErr := ValidateTitles(source.Title, target.Title); titleErr != nil {
		if !opts.SkipTitleCheck {
			return nil, titleErr
		}
		u.log.Warn("Ignoring title mismatch", "source", source.Title, "target", target.Title)
	}

	doc, err := ParseStorage(source.StorageValue())
	if err != nil {
		return nil, fmt.Errorf("dataset page %s: %w", source.ID, err)
	}

	table := FindVariablesTable(doc)
	if table == nil {
		u.log.Warn("Variables table not found, page left unchanged",
			"page_id", source.ID,
			"title", source.Title,
			"tables", doc.Find("table").Length(),
		)
		return report, nil
	}
	report.TableFound = true

	var message string
	if opts.Reset {
		report.LinksRemoved = ResetLinks(table)
		message = ResetMessage
	} else {
		targetDoc, parseErr := ParseStorage(target.StorageValue())
		if parseErr != nil {
			return nil, fmt.Errorf("report page %s: %w", target.ID, parseErr)
		}

		headings := ExtractHeadings(targetDoc)
		u.log.Debug("Report headings", "count", len(headings), "target", target.Title)

		rows, applyErr := Apply(table, opts.Profile, matcher.New(opts.Threshold), headings, u.wiki.PageURL(target))
		if applyErr != nil {
			return nil, applyErr
		}
		report.Rows = rows
		message = opts.Profile.Message()

		for _, row := range rows {
			if row.Matched {
				u.log.Debug("Linked row", "row", row.Row, "text", row.Text, "heading", row.Heading, "score", row.Score)
			} else {
				u.log.Info("No match found", "row", row.Row, "text", row.Text, "best_score", row.Score)
			}
		}
	}

	body, err := doc.Render()
	if err != nil {
		return nil, err
	}

	if _, err = u.wiki.UpdatePage(ctx, confluence.UpdatePageRequest{
		ID:        source.ID,
		Title:     source.Title,
		Body:      body,
		Message:   message,
		MinorEdit: true,
		FullWidth: true,
	}); err != nil {
		return nil, fmt.Errorf("update dataset page: %w", err)
	}
	report.Updated = true

	u.log.Info("Dataset page updated",
		"title", source.Title,
		"message", message,
		"matched", report.Matched(),
		"rows", len(report.Rows),
	)

	return report, nil
}
