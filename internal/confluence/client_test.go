package confluence_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonesrussell/north-cloud/ercwiki/internal/confluence"
	"github.com/jonesrussell/north-cloud/ercwiki/internal/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...confluence.Option) *confluence.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	base := []confluence.Option{
		confluence.WithBaseURL(srv.URL + "/wiki/"),
		confluence.WithCredentials("bot@example.org", "secret"),
		confluence.WithSpaceKey("ERC"),
	}
	return confluence.NewClient(append(base, opts...)...)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestGetPage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/wiki/rest/api/content/123", r.URL.Path)
		assert.Equal(t, "body.storage,version", r.URL.Query().Get("expand"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "bot@example.org", user)
		assert.Equal(t, "secret", pass)

		writeJSON(t, w, map[string]any{
			"id":      "123",
			"type":    "page",
			"title":   "Datasets: CBM001",
			"version": map[string]any{"number": 4},
			"body":    map[string]any{"storage": map[string]any{"value": "<p>hi</p>", "representation": "storage"}},
		})
	})

	page, err := client.GetPage(context.Background(), "123", "body.storage", "version")
	require.NoError(t, err)
	assert.Equal(t, "Datasets: CBM001", page.Title)
	assert.Equal(t, 4, page.VersionNumber())
	assert.Equal(t, "<p>hi</p>", page.StorageValue())
}

func TestGetPage_ErrorStatuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		auth     bool
		notFound bool
	}{
		{"unauthorized", http.StatusUnauthorized, true, false},
		{"forbidden", http.StatusForbidden, true, false},
		{"not found", http.StatusNotFound, false, true},
		{"server error", http.StatusInternalServerError, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = fmt.Fprintf(w, `{"statusCode":%d,"message":"nope"}`, tt.status)
			})

			_, err := client.GetPage(context.Background(), "1")
			require.Error(t, err)
			assert.Equal(t, tt.auth, confluence.IsAuthError(err))
			assert.Equal(t, tt.notFound, confluence.IsNotFound(err))

			var apiErr *confluence.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "nope", apiErr.Message)
		})
	}
}

func TestFindPageByTitle(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/wiki/rest/api/content", r.URL.Path)
		assert.Equal(t, "ERC", q.Get("spaceKey"))
		if q.Get("title") == "Reports" {
			writeJSON(t, w, map[string]any{"results": []any{map[string]any{"id": "9", "title": "Reports"}}})
			return
		}
		writeJSON(t, w, map[string]any{"results": []any{}})
	})

	page, err := client.FindPageByTitle(context.Background(), "ERC", "Reports")
	require.NoError(t, err)
	assert.Equal(t, "9", page.ID)

	_, err = client.FindPageByTitle(context.Background(), "ERC", "Missing")
	require.ErrorIs(t, err, confluence.ErrPageNotFound)
	assert.True(t, confluence.IsNotFound(err))
}

func TestFindChildByTitle_MatchesDirectParent(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{"results": []any{
			map[string]any{"id": "1", "title": "Paper", "ancestors": []any{
				map[string]any{"id": "100"}, map[string]any{"id": "200"},
			}},
		}})
	})

	page, err := client.FindChildByTitle(context.Background(), "ERC", "200", "Paper")
	require.NoError(t, err)
	assert.Equal(t, "1", page.ID)

	_, err = client.FindChildByTitle(context.Background(), "ERC", "100", "Paper")
	assert.True(t, confluence.IsNotFound(err))
}

func TestChildPages_FollowsPagination(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wiki/rest/api/content/42/child/page", r.URL.Path)
		switch r.URL.Query().Get("start") {
		case "0":
			writeJSON(t, w, map[string]any{
				"results": []any{map[string]any{"id": "a"}, map[string]any{"id": "b"}},
				"_links":  map[string]any{"next": "/rest/api/content/42/child/page?start=2"},
			})
		default:
			writeJSON(t, w, map[string]any{"results": []any{map[string]any{"id": "c"}}})
		}
	})

	pages, err := client.ChildPages(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, "c", pages[2].ID)
}

func TestCreatePage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "page", body["type"])
		assert.Equal(t, "Articles", body["title"])
		assert.Equal(t, map[string]any{"key": "ERC"}, body["space"])
		assert.Equal(t, []any{map[string]any{"id": "7"}}, body["ancestors"])

		storage := body["body"].(map[string]any)["storage"].(map[string]any)
		assert.Equal(t, "<p>x</p>", storage["value"])
		assert.Equal(t, "storage", storage["representation"])

		writeJSON(t, w, map[string]any{"id": "55", "title": "Articles"})
	})

	page, err := client.CreatePage(context.Background(), confluence.CreatePageRequest{
		SpaceKey: "ERC",
		ParentID: "7",
		Title:    "Articles",
		Body:     "<p>x</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "55", page.ID)
}

func TestCreatePage_RequiresTitle(t *testing.T) {
	t.Parallel()

	client := confluence.NewClient(confluence.WithBaseURL("http://unused.invalid"))
	_, err := client.CreatePage(context.Background(), confluence.CreatePageRequest{SpaceKey: "ERC"})
	require.ErrorIs(t, err, confluence.ErrInvalidRequest)
}

func TestUpdatePage_IncrementsVersion(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(t, w, map[string]any{"id": "5", "version": map[string]any{"number": 7}})
		case http.MethodPut:
			var body struct {
				Version struct {
					Number    int    `json:"number"`
					MinorEdit bool   `json:"minorEdit"`
					Message   string `json:"message"`
				} `json:"version"`
				Metadata struct {
					Properties map[string]struct {
						Value string `json:"value"`
					} `json:"properties"`
				} `json:"metadata"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, 8, body.Version.Number)
			assert.True(t, body.Version.MinorEdit)
			assert.Equal(t, "Updated THECB links", body.Version.Message)
			assert.Equal(t, "full-width", body.Metadata.Properties["content-appearance-published"].Value)
			writeJSON(t, w, map[string]any{"id": "5", "version": map[string]any{"number": 8}})
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})

	page, err := client.UpdatePage(context.Background(), confluence.UpdatePageRequest{
		ID:        "5",
		Title:     "Datasets: X",
		Body:      "<p/>",
		Message:   "Updated THECB links",
		MinorEdit: true,
		FullWidth: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, page.VersionNumber())
}

func TestUpdatePage_MovesToParent(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(t, w, map[string]any{"id": "5", "version": map[string]any{"number": 1}})
		case http.MethodPut:
			var body struct {
				Ancestors []struct {
					ID string `json:"id"`
				} `json:"ancestors"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Len(t, body.Ancestors, 1)
			assert.Equal(t, "42", body.Ancestors[0].ID)
			writeJSON(t, w, map[string]any{"id": "5", "version": map[string]any{"number": 2}})
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})

	_, err := client.UpdatePage(context.Background(), confluence.UpdatePageRequest{
		ID:       "5",
		Title:    "Paper",
		Body:     "<p/>",
		ParentID: "42",
	})
	require.NoError(t, err)
}

func TestDeletePage(t *testing.T) {
	t.Parallel()

	var called atomic.Bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/wiki/rest/api/content/77", r.URL.Path)
		called.Store(true)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeletePage(context.Background(), "77"))
	assert.True(t, called.Load())
}

func TestAddLabels(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wiki/rest/api/content/3/label", r.URL.Path)
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"prefix":"global","name":"erc-publication"},{"prefix":"global","name":"type-Article"}]`, string(data))
		writeJSON(t, w, map[string]any{"results": []any{}})
	})

	require.NoError(t, client.AddLabels(context.Background(), "3", "erc-publication", "type-Article"))
}

func TestAddLabels_NoneIsNoop(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	})
	require.NoError(t, client.AddLabels(context.Background(), "3"))
}

func TestRetry_IdempotentOnly(t *testing.T) {
	t.Parallel()

	var gets, posts atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			posts.Add(1)
		} else {
			gets.Add(1)
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}, confluence.WithRetryConfig(retry.Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
	}))

	_, err := client.GetPage(context.Background(), "1")
	require.ErrorIs(t, err, retry.ErrMaxAttemptsExceeded)
	assert.Equal(t, int32(3), gets.Load())

	_, err = client.CreatePage(context.Background(), confluence.CreatePageRequest{SpaceKey: "ERC", Title: "T"})
	require.Error(t, err)
	assert.Equal(t, int32(1), posts.Load())
}

func TestWithTimeout_DoesNotModifyCustomClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		writeJSON(t, w, map[string]any{"id": "1"})
	}, confluence.WithHTTPClient(custom), confluence.WithTimeout(20*time.Millisecond))

	_, err := client.GetPage(context.Background(), "1")
	require.Error(t, err)
	assert.Zero(t, custom.Timeout)
}

func TestPageURL(t *testing.T) {
	t.Parallel()

	client := confluence.NewClient(
		confluence.WithBaseURL("https://erc.atlassian.net/wiki/"),
		confluence.WithSpaceKey("ERC"),
	)

	tests := []struct {
		name string
		page confluence.Page
		want string
	}{
		{
			name: "default space",
			page: confluence.Page{Title: "CBM001 Report"},
			want: "https://erc.atlassian.net/wiki/display/ERC/CBM001+Report",
		},
		{
			name: "page space and escaping",
			page: confluence.Page{Title: "Student Data: 2020/21", Space: &confluence.Space{Key: "DOC"}},
			want: "https://erc.atlassian.net/wiki/display/DOC/Student+Data:+2020%2F21",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, client.PageURL(&tt.page))
		})
	}
}
