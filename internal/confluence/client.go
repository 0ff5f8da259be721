// Package confluence is a small client for the Confluence REST v1 content API.
package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonesrussell/north-cloud/ercwiki/internal/httpclient"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/logger"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/retry"
)

const (
	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 30 * time.Second

	contentPath      = "rest/api/content"
	childPageLimit   = 50
	storageFormat    = "storage"
	appearanceFull   = "full-width"
	appearanceDraft  = "content-appearance-draft"
	appearancePublic = "content-appearance-published"
)

// Client is an HTTP client for the Confluence content API.
type Client struct {
	baseURL    string
	username   string
	apiToken   string
	spaceKey   string
	httpClient *http.Client
	timeout    time.Duration
	retry      retry.Config
	log        logger.Interface
}

// Option is a function that configures a Client.
type Option func(*Client)

// WithBaseURL sets the site URL, for example https://example.atlassian.net/wiki.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithCredentials sets the basic auth username and API token.
func WithCredentials(username, apiToken string) Option {
	return func(c *Client) {
		c.username = username
		c.apiToken = apiToken
	}
}

// WithSpaceKey sets the default space used by PageURL.
func WithSpaceKey(key string) Option {
	return func(c *Client) {
		c.spaceKey = key
	}
}

// WithHTTPClient sets a custom HTTP client. The client is never modified;
// WithTimeout applies to a copy of it.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the timeout for API requests.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithMaxAttempts enables retries of idempotent requests. 1 disables them.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		c.retry.MaxAttempts = n
	}
}

// WithRetryConfig replaces the retry policy.
func WithRetryConfig(cfg retry.Config) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log logger.Interface) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a new Confluence API client.
func NewClient(opts ...Option) *Client {
	cfg := retry.DefaultConfig()
	cfg.MaxAttempts = 1

	client := &Client{
		retry: cfg,
		log:   logger.NewNoOp(),
	}

	for _, opt := range opts {
		opt(client)
	}

	switch {
	case client.httpClient == nil:
		timeout := client.timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client.httpClient = httpclient.NewClient(&httpclient.ClientConfig{Timeout: timeout})
	case client.timeout > 0:
		hc := *client.httpClient
		hc.Timeout = client.timeout
		client.httpClient = &hc
	}

	return client
}

// BaseURL returns the configured site URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetPage fetches a page by id.
func (c *Client) GetPage(ctx context.Context, id string, expand ...string) (*Page, error) {
	query := url.Values{}
	if len(expand) > 0 {
		query.Set("expand", strings.Join(expand, ","))
	}

	var page Page
	if err := c.doRequest(ctx, http.MethodGet, []string{id}, query, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to get page %s: %w", id, err)
	}

	return &page, nil
}

// FindPageByTitle looks up a page by exact title within a space. It returns
// ErrPageNotFound when no page has that title.
func (c *Client) FindPageByTitle(ctx context.Context, spaceKey, title string, expand ...string) (*Page, error) {
	pages, err := c.findByTitle(ctx, spaceKey, title, expand)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: %q in space %s", ErrPageNotFound, title, spaceKey)
	}
	return &pages[0], nil
}

// FindChildByTitle looks up a page by title whose direct parent is parentID.
// Titles are unique per space, so a page with that title elsewhere in the
// space is reported as not found here.
func (c *Client) FindChildByTitle(ctx context.Context, spaceKey, parentID, title string) (*Page, error) {
	pages, err := c.findByTitle(ctx, spaceKey, title, []string{"ancestors", "version"})
	if err != nil {
		return nil, err
	}
	for i := range pages {
		if pages[i].ParentID() == parentID {
			return &pages[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q under page %s", ErrPageNotFound, title, parentID)
}

func (c *Client) findByTitle(ctx context.Context, spaceKey, title string, expand []string) ([]Page, error) {
	query := url.Values{}
	query.Set("type", "page")
	query.Set("spaceKey", spaceKey)
	query.Set("title", title)
	if len(expand) > 0 {
		query.Set("expand", strings.Join(expand, ","))
	}

	var list pageList
	if err := c.doRequest(ctx, http.MethodGet, nil, query, nil, &list); err != nil {
		return nil, fmt.Errorf("failed to find page %q: %w", title, err)
	}
	return list.Results, nil
}

// ChildPages returns all direct child pages of parentID, following pagination.
func (c *Client) ChildPages(ctx context.Context, parentID string) ([]Page, error) {
	var pages []Page
	start := 0
	for {
		query := url.Values{}
		query.Set("start", fmt.Sprint(start))
		query.Set("limit", fmt.Sprint(childPageLimit))

		var list pageList
		if err := c.doRequest(ctx, http.MethodGet, []string{parentID, "child", "page"}, query, nil, &list); err != nil {
			return nil, fmt.Errorf("failed to list children of %s: %w", parentID, err)
		}

		pages = append(pages, list.Results...)
		if list.Links.Next == "" || len(list.Results) == 0 {
			return pages, nil
		}
		start += len(list.Results)
	}
}

// CreatePage creates a page in req.SpaceKey, under req.ParentID when set.
func (c *Client) CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error) {
	if req.SpaceKey == "" || req.Title == "" {
		return nil, fmt.Errorf("%w: space key and title are required", ErrInvalidRequest)
	}

	payload := contentPayload{
		Type:  "page",
		Title: req.Title,
		Space: &Space{Key: req.SpaceKey},
		Body:  storageBody(req.Body),
	}
	if req.ParentID != "" {
		payload.Ancestors = []Ancestor{{ID: req.ParentID}}
	}
	if req.FullWidth {
		payload.Metadata = fullWidthMetadata()
	}

	var page Page
	if err := c.doRequest(ctx, http.MethodPost, nil, nil, payload, &page); err != nil {
		return nil, fmt.Errorf("failed to create page %q: %w", req.Title, err)
	}

	c.log.Debug("Created page", "page_id", page.ID, "title", page.Title)
	return &page, nil
}

// UpdatePage publishes a new version of an existing page. The current version
// number is read first and incremented.
func (c *Client) UpdatePage(ctx context.Context, req UpdatePageRequest) (*Page, error) {
	if req.ID == "" || req.Title == "" {
		return nil, fmt.Errorf("%w: page id and title are required", ErrInvalidRequest)
	}

	current, err := c.GetPage(ctx, req.ID, "version")
	if err != nil {
		return nil, fmt.Errorf("failed to read current version: %w", err)
	}

	payload := contentPayload{
		ID:    req.ID,
		Type:  "page",
		Title: req.Title,
		Body:  storageBody(req.Body),
		Version: &Version{
			Number:    current.VersionNumber() + 1,
			MinorEdit: req.MinorEdit,
			Message:   req.Message,
		},
	}
	if req.ParentID != "" {
		payload.Ancestors = []Ancestor{{ID: req.ParentID}}
	}
	if req.FullWidth {
		payload.Metadata = fullWidthMetadata()
	}

	var page Page
	if doErr := c.doRequest(ctx, http.MethodPut, []string{req.ID}, nil, payload, &page); doErr != nil {
		return nil, fmt.Errorf("failed to update page %s: %w", req.ID, doErr)
	}

	c.log.Debug("Updated page", "page_id", page.ID, "version", page.VersionNumber())
	return &page, nil
}

// DeletePage moves a page to the trash.
func (c *Client) DeletePage(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, []string{id}, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete page %s: %w", id, err)
	}
	return nil
}

// AddLabels attaches global labels to a page. Existing labels are kept.
func (c *Client) AddLabels(ctx context.Context, id string, labels ...string) error {
	if len(labels) == 0 {
		return nil
	}

	payload := make([]Label, 0, len(labels))
	for _, name := range labels {
		payload = append(payload, Label{Prefix: "global", Name: name})
	}

	if err := c.doRequest(ctx, http.MethodPost, []string{id, "label"}, nil, payload, nil); err != nil {
		return fmt.Errorf("failed to add labels to page %s: %w", id, err)
	}
	return nil
}

// PageURL returns the display URL of a page:
// {base}/display/{space}/{title with spaces as '+'}.
func (c *Client) PageURL(page *Page) string {
	spaceKey := c.spaceKey
	if page.Space != nil && page.Space.Key != "" {
		spaceKey = page.Space.Key
	}

	words := strings.Split(page.Title, " ")
	for i, w := range words {
		words[i] = url.PathEscape(w)
	}

	return fmt.Sprintf("%s/display/%s/%s", c.baseURL, url.PathEscape(spaceKey), strings.Join(words, "+"))
}

func storageBody(value string) Body {
	return Body{Storage: &Storage{Value: value, Representation: storageFormat}}
}

func fullWidthMetadata() *metadata {
	return &metadata{Properties: map[string]property{
		appearanceDraft:  {Key: appearanceDraft, Value: appearanceFull},
		appearancePublic: {Key: appearancePublic, Value: appearanceFull},
	}}
}

// doRequest sends one API call. GET, PUT and DELETE are retried according to
// the retry policy; POST is sent once.
func (c *Client) doRequest(
	ctx context.Context,
	method string,
	path []string,
	query url.Values,
	payload any,
	out any,
) error {
	endpoint, err := url.JoinPath(c.baseURL, append([]string{contentPath}, path...)...)
	if err != nil {
		return fmt.Errorf("failed to construct URL: %w", err)
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body []byte
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	policy := c.retry
	if method == http.MethodPost {
		policy.MaxAttempts = 1
	}

	return retry.Do(ctx, policy, func() error {
		return c.send(ctx, method, endpoint, body, out)
	})
}

func (c *Client) send(ctx context.Context, method, endpoint string, body []byte, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.apiToken)
	}

	c.log.Debug("Confluence request", "method", method, "url", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return parseAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
		return fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	return nil
}
