package publications

import (
	"context"
	"fmt"
	"sort"

	"github.com/jonesrussell/north-cloud/ercwiki/internal/confluence"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/logger"
)

// Wiki is the part of the Confluence API used to publish and delete pages.
type Wiki interface {
	FindPageByTitle(ctx context.Context, spaceKey, title string, expand ...string) (*confluence.Page, error)
	FindChildByTitle(ctx context.Context, spaceKey, parentID, title string) (*confluence.Page, error)
	ChildPages(ctx context.Context, parentID string) ([]confluence.Page, error)
	CreatePage(ctx context.Context, req confluence.CreatePageRequest) (*confluence.Page, error)
	UpdatePage(ctx context.Context, req confluence.UpdatePageRequest) (*confluence.Page, error)
	DeletePage(ctx context.Context, id string) error
	AddLabels(ctx context.Context, id string, labels ...string) error
}

// Summary counts the outcome of a publish run.
type Summary struct {
	Created  int
	Updated  int
	Skipped  int
	Failed   int
	Warnings int
}

// Result is the outcome of publishing one record.
type Result struct {
	Page     *confluence.Page
	Created  bool
	Warnings []string
}

// Organizer places publication pages under per-type parent pages.
type Organizer struct {
	wiki     Wiki
	log      logger.Interface
	spaceKey string
	parentID string
	checker  LinkChecker

	typePages map[string]string
}

// OrganizerOption configures an Organizer.
type OrganizerOption func(*Organizer)

// WithLinkChecker checks every well-formed publication URL.
func WithLinkChecker(checker LinkChecker) OrganizerOption {
	return func(o *Organizer) {
		o.checker = checker
	}
}

// NewOrganizer creates an Organizer that publishes into spaceKey under parentID.
func NewOrganizer(wiki Wiki, log logger.Interface, spaceKey, parentID string, opts ...OrganizerOption) *Organizer {
	o := &Organizer{
		wiki:      wiki,
		log:       log,
		spaceKey:  spaceKey,
		parentID:  parentID,
		typePages: make(map[string]string),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// DistinctTypes returns the sorted, distinct non-empty types of records.
func DistinctTypes(records []Record) []string {
	seen := make(map[string]bool)
	var types []string
	for _, rec := range records {
		if rec.Type == "" || seen[rec.Type] {
			continue
		}
		seen[rec.Type] = true
		types = append(types, rec.Type)
	}
	sort.Strings(types)
	return types
}

// EnsureTypePages makes sure every type has its page: an existing page with
// the type page title is reused and its body refreshed, otherwise one is
// created under the parent page.
func (o *Organizer) EnsureTypePages(ctx context.Context, types []string) error {
	for _, typeName := range types {
		title := TypePageTitle(typeName)
		body := TypePageBody(title, o.spaceKey)

		page, err := o.wiki.FindPageByTitle(ctx, o.spaceKey, title)
		switch {
		case err == nil:
			page, err = o.wiki.UpdatePage(ctx, confluence.UpdatePageRequest{
				ID:        page.ID,
				Title:     title,
				Body:      body,
				FullWidth: true,
			})
			if err != nil {
				return fmt.Errorf("update type page %q: %w", title, err)
			}
			o.log.Info("Type page updated", "type", typeName, "title", title, "page_id", page.ID)
		case confluence.IsNotFound(err):
			page, err = o.wiki.CreatePage(ctx, confluence.CreatePageRequest{
				SpaceKey:  o.spaceKey,
				ParentID:  o.parentID,
				Title:     title,
				Body:      body,
				FullWidth: true,
			})
			if err != nil {
				return fmt.Errorf("create type page %q: %w", title, err)
			}
			o.log.Info("Type page created", "type", typeName, "title", title, "page_id", page.ID)
		default:
			return fmt.Errorf("find type page %q: %w", title, err)
		}

		o.typePages[typeName] = page.ID
	}
	return nil
}

// PublishRecord creates or updates the record's page under its type page and
// attaches its labels. Rendering warnings never stop the page from being
// published.
func (o *Organizer) PublishRecord(ctx context.Context, rec Record) (*Result, error) {
	content := RenderPage(rec)
	result := &Result{Warnings: content.Warnings}

	if o.checker != nil && rec.URL != "" && IsWellFormedURL(rec.URL) {
		if err := o.checker.Check(ctx, rec.URL); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("publication URL check failed: %v", err))
		}
	}
	for _, w := range result.Warnings {
		o.log.Warn("Publication warning", "title", rec.Title, "row", rec.Row, "warning", w)
	}

	parentID, ok := o.typePages[rec.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoTypePage, rec.Type)
	}

	existing, moved, err := o.findRecordPage(ctx, parentID, content.Title)
	switch {
	case err == nil:
		req := confluence.UpdatePageRequest{
			ID:        existing.ID,
			Title:     content.Title,
			Body:      content.Body,
			FullWidth: true,
		}
		if moved {
			req.ParentID = parentID
			o.log.Info("Moving page under its type page",
				"title", content.Title, "page_id", existing.ID, "type", rec.Type)
		}
		result.Page, err = o.wiki.UpdatePage(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("update page %q: %w", content.Title, err)
		}
	case confluence.IsNotFound(err):
		result.Page, err = o.wiki.CreatePage(ctx, confluence.CreatePageRequest{
			SpaceKey:  o.spaceKey,
			ParentID:  parentID,
			Title:     content.Title,
			Body:      content.Body,
			FullWidth: true,
		})
		if err != nil {
			return nil, fmt.Errorf("create page %q: %w", content.Title, err)
		}
		result.Created = true
	default:
		return nil, fmt.Errorf("find page %q: %w", content.Title, err)
	}

	if err = o.wiki.AddLabels(ctx, result.Page.ID, content.Labels...); err != nil {
		return nil, fmt.Errorf("label page %q: %w", content.Title, err)
	}

	return result, nil
}

// findRecordPage looks for the record page under its type page, then anywhere
// in the space. Titles are unique per space, so a page found elsewhere (its
// type changed or it was moved by hand) is reported as moved and must be
// updated rather than created.
func (o *Organizer) findRecordPage(ctx context.Context, parentID, title string) (*confluence.Page, bool, error) {
	page, err := o.wiki.FindChildByTitle(ctx, o.spaceKey, parentID, title)
	if err == nil || !confluence.IsNotFound(err) {
		return page, false, err
	}

	page, err = o.wiki.FindPageByTitle(ctx, o.spaceKey, title)
	if err != nil {
		return nil, false, err
	}
	return page, true, nil
}

// Publish ensures the type pages and publishes every record. Records failing
// validation are skipped; other per-record failures are logged and counted.
// An authentication failure stops the run.
func (o *Organizer) Publish(ctx context.Context, records []Record) (*Summary, error) {
	summary := &Summary{}

	if err := o.EnsureTypePages(ctx, DistinctTypes(records)); err != nil {
		return summary, err
	}

	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			o.log.Warn("Skipping record", "row", rec.Row, "title", rec.Title, "error", err)
			summary.Skipped++
			continue
		}

		res, err := o.PublishRecord(ctx, rec)
		if err != nil {
			if confluence.IsAuthError(err) {
				return summary, fmt.Errorf("authentication failed: %w", err)
			}
			o.log.Error("Failed to publish record", "row", rec.Row, "title", rec.Title, "error", err)
			summary.Failed++
			continue
		}

		summary.Warnings += len(res.Warnings)
		if res.Created {
			summary.Created++
			o.log.Info("Created page", "title", rec.Title, "page_id", res.Page.ID)
		} else {
			summary.Updated++
			o.log.Info("Updated page", "title", rec.Title, "page_id", res.Page.ID)
		}
	}

	return summary, nil
}
