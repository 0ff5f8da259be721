package publications

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jonesrussell/north-cloud/ercwiki/internal/httpclient"
)

// DefaultLinkCheckTimeout bounds each link check.
const DefaultLinkCheckTimeout = 5 * time.Second

// LinkChecker checks publication URLs.
type LinkChecker interface {
	Check(ctx context.Context, rawURL string) error
}

// HTTPLinkChecker checks URLs with a HEAD request, following redirects.
type HTTPLinkChecker struct {
	client *http.Client
}

// NewHTTPLinkChecker creates a link checker. A nil client gets a default one.
func NewHTTPLinkChecker(client *http.Client) *HTTPLinkChecker {
	if client == nil {
		client = httpclient.NewClient(&httpclient.ClientConfig{Timeout: DefaultLinkCheckTimeout})
	}
	return &HTTPLinkChecker{client: client}
}

// Check returns nil when the URL answers with a 2xx or 3xx status.
func (c *HTTPLinkChecker) Check(ctx context.Context, rawURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLinkUnreachable, err)
	}
	_ = resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: status %d", ErrLinkUnreachable, resp.StatusCode)
	}
	return nil
}
