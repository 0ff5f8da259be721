package publications

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/confluence"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/logger"
)

// DeletionEntry is a page scheduled for deletion.
type DeletionEntry struct {
	Page confluence.Page
	// Level is the depth below the root, 0 for direct children.
	Level int
	// Group is the title of the level-0 ancestor (the type page).
	Group string
}

// DeleteSummary counts the outcome of a deletion run.
type DeleteSummary struct {
	Deleted int
	Failed  int
}

// Deleter removes every page below a root page.
type Deleter struct {
	wiki Wiki
	log  logger.Interface
}

// NewDeleter creates a Deleter.
func NewDeleter(wiki Wiki, log logger.Interface) *Deleter {
	return &Deleter{wiki: wiki, log: log}
}

// Collect returns all descendants of rootID in depth-first order, parents
// before their children.
func (d *Deleter) Collect(ctx context.Context, rootID string) ([]DeletionEntry, error) {
	var entries []DeletionEntry
	if err := d.collect(ctx, rootID, 0, "", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (d *Deleter) collect(ctx context.Context, parentID string, level int, group string, out *[]DeletionEntry) error {
	children, err := d.wiki.ChildPages(ctx, parentID)
	if err != nil {
		return fmt.Errorf("list children of %s: %w", parentID, err)
	}

	for _, child := range children {
		g := group
		if level == 0 {
			g = child.Title
		}
		*out = append(*out, DeletionEntry{Page: child, Level: level, Group: g})
		if err = d.collect(ctx, child.ID, level+1, g, out); err != nil {
			return err
		}
	}
	return nil
}

// RenderPreview writes the pages in deletion order followed by a per-group summary.
func RenderPreview(w io.Writer, entries []DeletionEntry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Pages to be deleted (in deletion order)")
	t.AppendHeader(table.Row{"#", "Page", "ID"})

	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		t.AppendRow(table.Row{len(entries) - i, strings.Repeat("  ", e.Level) + "• " + e.Page.Title, e.Page.ID})
	}
	t.Render()

	counts := make(map[string]int)
	var groups []string
	for _, e := range entries {
		if _, ok := counts[e.Group]; !ok {
			groups = append(groups, e.Group)
		}
		counts[e.Group]++
	}

	s := table.NewWriter()
	s.SetOutputMirror(w)
	s.SetStyle(table.StyleLight)
	s.SetTitle("Summary")
	s.AppendHeader(table.Row{"Type Page", "Pages"})
	for _, g := range groups {
		s.AppendRow(table.Row{g, counts[g]})
	}
	s.AppendFooter(table.Row{"Total", len(entries)})
	s.Render()
}

// Delete removes the collected pages, children before parents. Failures are
// logged and counted; the run continues. With dryRun nothing is deleted.
func (d *Deleter) Delete(ctx context.Context, entries []DeletionEntry, dryRun bool) DeleteSummary {
	var summary DeleteSummary

	if dryRun {
		for i := len(entries) - 1; i >= 0; i-- {
			d.log.Info("[DRY RUN] Would delete page", "title", entries[i].Page.Title, "page_id", entries[i].Page.ID)
		}
		d.log.Info("[DRY RUN] No pages were deleted", "pages", len(entries))
		return summary
	}

	for i := len(entries) - 1; i >= 0; i-- {
		page := entries[i].Page
		if err := d.wiki.DeletePage(ctx, page.ID); err != nil {
			d.log.Error("Failed to delete page", "title", page.Title, "page_id", page.ID, "error", err)
			summary.Failed++
			continue
		}
		d.log.Info("Deleted page", "title", page.Title, "page_id", page.ID)
		summary.Deleted++
	}

	d.log.Info("Deletion finished", "deleted", summary.Deleted, "failed", summary.Failed)
	return summary
}
