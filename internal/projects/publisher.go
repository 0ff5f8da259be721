package projects

import (
	"context"
	"fmt"

	"github.com/jonesrussell/north-cloud/ercwiki/internal/confluence"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/logger"
)

// Wiki is the part of the Confluence API used to publish listings.
type Wiki interface {
	FindPageByTitle(ctx context.Context, spaceKey, title string, expand ...string) (*confluence.Page, error)
	CreatePage(ctx context.Context, req confluence.CreatePageRequest) (*confluence.Page, error)
	UpdatePage(ctx context.Context, req confluence.UpdatePageRequest) (*confluence.Page, error)
}

// Publisher writes listing tables to wiki pages.
type Publisher struct {
	wiki     Wiki
	log      logger.Interface
	spaceKey string
	parentID string
}

// NewPublisher creates a Publisher placing new pages under parentID.
func NewPublisher(wiki Wiki, log logger.Interface, spaceKey, parentID string) *Publisher {
	return &Publisher{wiki: wiki, log: log, spaceKey: spaceKey, parentID: parentID}
}

// Publish updates the page titled title in the space, or creates it under the
// parent page. It reports whether a page was created.
func (p *Publisher) Publish(ctx context.Context, title string, t *Table) (bool, error) {
	body := RenderPage(title, t)

	existing, err := p.wiki.FindPageByTitle(ctx, p.spaceKey, title)
	switch {
	case err == nil:
		if _, err = p.wiki.UpdatePage(ctx, confluence.UpdatePageRequest{
			ID:        existing.ID,
			Title:     title,
			Body:      body,
			FullWidth: true,
		}); err != nil {
			return false, fmt.Errorf("update page %q: %w", title, err)
		}
		p.log.Info("Updated page", "title", title, "page_id", existing.ID)
		return false, nil
	case confluence.IsNotFound(err):
		page, createErr := p.wiki.CreatePage(ctx, confluence.CreatePageRequest{
			SpaceKey:  p.spaceKey,
			ParentID:  p.parentID,
			Title:     title,
			Body:      body,
			FullWidth: true,
		})
		if createErr != nil {
			return false, fmt.Errorf("create page %q: %w", title, createErr)
		}
		p.log.Info("Created page", "title", title, "page_id", page.ID)
		return true, nil
	default:
		return false, fmt.Errorf("find page %q: %w", title, err)
	}
}
