// Package testutils provides shared testing utilities across the application.
package testutils

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonesrussell/north-cloud/ercwiki/internal/confluence"
	"github.com/stretchr/testify/mock"
)

// MockWiki is a mock implementation of the Confluence client. Variadic
// arguments are passed to Called as a single slice.
type MockWiki struct {
	mock.Mock
	// BaseURL is used by PageURL.
	BaseURL string
}

// NewMockWiki creates a new mock wiki.
func NewMockWiki() *MockWiki {
	return &MockWiki{BaseURL: "https://wiki.example.org"}
}

// GetPage fetches a page by id.
func (m *MockWiki) GetPage(ctx context.Context, id string, expand ...string) (*confluence.Page, error) {
	args := m.Called(ctx, id, expand)
	return pageOrNil(args.Get(0)), args.Error(1)
}

// FindPageByTitle looks up a page by title in a space.
func (m *MockWiki) FindPageByTitle(
	ctx context.Context,
	spaceKey, title string,
	expand ...string,
) (*confluence.Page, error) {
	args := m.Called(ctx, spaceKey, title, expand)
	return pageOrNil(args.Get(0)), args.Error(1)
}

// FindChildByTitle looks up a page by title under a parent.
func (m *MockWiki) FindChildByTitle(ctx context.Context, spaceKey, parentID, title string) (*confluence.Page, error) {
	args := m.Called(ctx, spaceKey, parentID, title)
	return pageOrNil(args.Get(0)), args.Error(1)
}

// ChildPages lists the children of a page.
func (m *MockWiki) ChildPages(ctx context.Context, parentID string) ([]confluence.Page, error) {
	args := m.Called(ctx, parentID)
	if pages, ok := args.Get(0).([]confluence.Page); ok {
		return pages, args.Error(1)
	}
	return nil, args.Error(1)
}

// CreatePage creates a page.
func (m *MockWiki) CreatePage(ctx context.Context, req confluence.CreatePageRequest) (*confluence.Page, error) {
	args := m.Called(ctx, req)
	return pageOrNil(args.Get(0)), args.Error(1)
}

// UpdatePage updates a page.
func (m *MockWiki) UpdatePage(ctx context.Context, req confluence.UpdatePageRequest) (*confluence.Page, error) {
	args := m.Called(ctx, req)
	return pageOrNil(args.Get(0)), args.Error(1)
}

// DeletePage deletes a page.
func (m *MockWiki) DeletePage(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// AddLabels attaches labels to a page.
func (m *MockWiki) AddLabels(ctx context.Context, id string, labels ...string) error {
	args := m.Called(ctx, id, labels)
	return args.Error(0)
}

// PageURL builds a display URL without recording a call.
func (m *MockWiki) PageURL(page *confluence.Page) string {
	space := "ERC"
	if page.Space != nil {
		space = page.Space.Key
	}
	return fmt.Sprintf("%s/display/%s/%s", m.BaseURL, space, strings.ReplaceAll(page.Title, " ", "+"))
}

func pageOrNil(v any) *confluence.Page {
	if page, ok := v.(*confluence.Page); ok {
		return page
	}
	return nil
}

// StoragePage returns a page with a storage body, as returned by GetPage.
func StoragePage(id, title, body string) *confluence.Page {
	return &confluence.Page{
		ID:      id,
		Type:    "page",
		Title:   title,
		Space:   &confluence.Space{Key: "ERC"},
		Version: &confluence.Version{Number: 1},
		Body:    &confluence.Body{Storage: &confluence.Storage{Value: body, Representation: "storage"}},
	}
}
