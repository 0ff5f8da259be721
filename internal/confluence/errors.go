package confluence

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	// ErrPageNotFound is returned when a lookup by title finds nothing.
	ErrPageNotFound = errors.New("page not found")
	// ErrInvalidRequest is returned for requests missing required fields.
	ErrInvalidRequest = errors.New("invalid request")
)

const maxErrorBody = 4096

// APIError is a non-2xx response from Confluence.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("confluence API error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("confluence API error: %s", e.Status)
}

// HTTPStatus returns the response status code.
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

// parseAPIError reads resp into an *APIError. Confluence reports errors as
// {"statusCode":..,"message":".."}; other bodies are kept verbatim.
func parseAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Status: resp.Status}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		apiErr.Message = fmt.Sprintf("failed to read error response body: %v", err)
		return apiErr
	}
	apiErr.Body = string(data)

	var payload struct {
		Message string `json:"message"`
		Reason  string `json:"reason"`
	}
	if json.Unmarshal(data, &payload) == nil {
		apiErr.Message = payload.Message
		if apiErr.Message == "" {
			apiErr.Message = payload.Reason
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(apiErr.Body)
	}

	return apiErr
}

// IsAuthError reports whether err is a 401 or 403 response.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether err is a 404 response or ErrPageNotFound.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrPageNotFound) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
