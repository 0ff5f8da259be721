// Package httpclient builds the HTTP clients used to talk to Confluence and to
// check publication links.
package httpclient

import (
	"net/http"
	"time"
)

const (
	// DefaultTimeout is the default timeout for HTTP requests.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxIdleConnsPerHost is the default maximum number of idle connections per host.
	DefaultMaxIdleConnsPerHost = 2

	// DefaultIdleConnTimeout is the default idle connection timeout.
	DefaultIdleConnTimeout = 90 * time.Second

	// DefaultTLSHandshakeTimeout is the default TLS handshake timeout.
	DefaultTLSHandshakeTimeout = 10 * time.Second

	// DefaultUserAgent identifies ercwiki to remote services.
	DefaultUserAgent = "ercwiki/1.0"
)

// ClientConfig configures an HTTP client.
type ClientConfig struct {
	// Timeout is a time limit for requests made by this client. Zero uses DefaultTimeout.
	Timeout time.Duration

	// UserAgent is set on every request that does not carry one already.
	UserAgent string

	// Transport overrides the base round tripper.
	Transport http.RoundTripper
}

// NewClient creates a new HTTP client with standardized configuration.
// If cfg is nil, default values are used.
func NewClient(cfg *ClientConfig) *http.Client {
	if cfg == nil {
		cfg = &ClientConfig{}
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	base := cfg.Transport
	if base == nil {
		base = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
			IdleConnTimeout:     DefaultIdleConnTimeout,
			TLSHandshakeTimeout: DefaultTLSHandshakeTimeout,
		}
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &headerTransport{
			base:      base,
			userAgent: userAgent,
		},
	}
}

// headerTransport sets a default User-Agent on outgoing requests.
type headerTransport struct {
	base      http.RoundTripper
	userAgent string
}

// RoundTrip implements http.RoundTripper. The request is cloned before
// headers are added, as the RoundTripper contract requires.
func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if clone.Header.Get("User-Agent") == "" {
		clone.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(clone)
}
