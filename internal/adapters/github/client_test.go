package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-gallery/internal/domain/entity"
	"portfolio-gallery/internal/ports"
)

func testConfig(server *httptest.Server) *entity.Config {
	return &entity.Config{
		GitHub: entity.GitHubConfig{
			GraphQLURL: server.URL + "/graphql",
			APIBaseURL: server.URL,
			UserAgent:  "portfolio-gallery-test",
		},
	}
}

const pinnedBody = `{
  "data": {"user": {"pinnedItems": {"nodes": [
    {"name": "gallery", "description": "Portfolio", "url": "https://github.com/octo/gallery",
     "stargazerCount": 120, "createdAt": "2021-03-04T05:06:07Z",
     "primaryLanguage": {"name": "Go"},
     "repositoryTopics": {"nodes": [{"topic": {"name": "portfolio"}}, {"topic": {"name": "go"}}]}},
    {},
    {"name": "bare", "stargazerCount": 3, "createdAt": "2020-01-01T00:00:00Z",
     "primaryLanguage": null, "repositoryTopics": {"nodes": []}}
  ]}}}
}`

func TestClient_PinnedItems(t *testing.T) {
	var gotAuth, gotAgent string
	var gotBody graphQLRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("X-RateLimit-Remaining", "4999")
		fmt.Fprint(w, pinnedBody)
	}))
	defer server.Close()

	c := NewClient("secret", testConfig(server), nil)

	items, err := c.PinnedItems(context.Background(), "octo")
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "portfolio-gallery-test", gotAgent)
	assert.Equal(t, "octo", gotBody.Variables["login"])
	assert.Contains(t, gotBody.Query, "pinnedItems(first:6, types: REPOSITORY)")

	want := []ports.PinnedItem{
		{
			Name:            "gallery",
			Description:     "Portfolio",
			URL:             "https://github.com/octo/gallery",
			Stars:           120,
			CreatedAt:       time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC),
			PrimaryLanguage: ports.PrimaryLanguage{Name: "Go"},
			Topics:          []string{"portfolio", "go"},
		},
		{
			Name:      "bare",
			Stars:     3,
			CreatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			Topics:    []string{},
		},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("PinnedItems() mismatch (-want +got):\n%s", diff)
	}

	stats := c.Stats()
	assert.Equal(t, 1, stats.APICalls)
	assert.Equal(t, 4999, stats.RemainingQuota)
}

func TestClient_PinnedItemsFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"graphql errors", http.StatusOK, `{"errors":[{"message":"Could not resolve to a User"}]}`, "Could not resolve"},
		{"bad status", http.StatusUnauthorized, `{"message":"Bad credentials"}`, "status 401"},
		{"bad json", http.StatusOK, `{`, "error decoding response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			c := NewClient("secret", testConfig(server), nil)
			_, err := c.PinnedItems(context.Background(), "octo")

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, 1, c.Stats().Errors)
		})
	}
}

func TestClient_PinnedItemsWithoutToken(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	c := NewClient("", testConfig(server), nil)
	_, err := c.PinnedItems(context.Background(), "octo")

	assert.ErrorIs(t, err, ErrMissingToken)
	assert.Zero(t, atomic.LoadInt32(&calls))
	assert.False(t, c.HasToken())
}

func TestClient_TopStarred(t *testing.T) {
	type repo struct {
		Name      string `json:"name"`
		HTMLURL   string `json:"html_url"`
		Stars     int    `json:"stargazers_count"`
		Language  string `json:"language,omitempty"`
		CreatedAt string `json:"created_at"`
	}
	repos := []repo{
		{"one", "https://github.com/octo/one", 5, "Go", "2019-05-01T00:00:00Z"},
		{"two", "https://github.com/octo/two", 300, "TypeScript", "2020-05-01T00:00:00Z"},
		{"three", "https://github.com/octo/three", 5, "", "2021-05-01T00:00:00Z"},
		{"four", "https://github.com/octo/four", 60, "Rust", "2022-05-01T00:00:00Z"},
		{"five", "https://github.com/octo/five", 1, "C", "2023-05-01T00:00:00Z"},
		{"six", "https://github.com/octo/six", 0, "Go", "2023-06-01T00:00:00Z"},
		{"seven", "https://github.com/octo/seven", 2, "Go", "2024-05-01T00:00:00Z"},
	}

	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octo/repos", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		require.NoError(t, json.NewEncoder(w).Encode(repos))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := NewClient("", testConfig(server), nil)

	entries, err := c.TopStarred(context.Background(), "octo", 6)
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "sort=updated")
	assert.Contains(t, gotQuery, "per_page=100")

	var titles []string
	for _, e := range entries {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"two", "four", "one", "three", "seven", "five"}, titles)

	assert.Equal(t, []string{"TypeScript"}, entries[0].Tags)
	assert.Empty(t, entries[3].Tags, "missing language yields no tags")
	assert.Equal(t, 2020, entries[0].Year)
	assert.Equal(t, entity.RoleOwner, entries[0].Role)
	assert.Equal(t, entity.OriginRemote, entries[0].Origin)
	assert.Equal(t, "https://github.com/octo/two", entries[0].Link)
}

func TestClient_TopStarredError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient("", testConfig(server), nil)
	_, err := c.TopStarred(context.Background(), "ghost", 6)

	require.Error(t, err)
	assert.Equal(t, 1, c.Stats().Errors)
}

func TestClient_CachesResponses(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.Method == http.MethodPost {
			fmt.Fprint(w, pinnedBody)
			return
		}
		fmt.Fprint(w, `[{"name":"only","stargazers_count":1,"created_at":"2024-01-01T00:00:00Z"}]`)
	}))
	defer server.Close()

	config := testConfig(server)
	config.Performance.CacheEnabled = true
	c := NewClient("secret", config, nil)

	for i := 0; i < 3; i++ {
		_, err := c.PinnedItems(context.Background(), "octo")
		require.NoError(t, err)
		_, err = c.TopStarred(context.Background(), "octo", 6)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	stats := c.Stats()
	assert.Equal(t, 2, stats.APICalls)
	assert.Equal(t, 4, stats.CacheHits)
}
