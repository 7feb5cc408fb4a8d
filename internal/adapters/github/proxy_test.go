package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinnedProxyClient(t *testing.T) {
	var gotUser string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = r.URL.Query().Get("user")
		fmt.Fprint(w, `{"items":[{"name":"gallery","url":"https://github.com/octo/gallery","stars":7,
"createdAt":"2022-02-02T00:00:00Z","primaryLanguage":{"name":"Go"},"topics":[]}]}`)
	}))
	defer server.Close()

	p := NewPinnedProxyClient(server.URL+"/api/github-pinned", time.Second, nil)

	items, err := p.PinnedItems(context.Background(), "octo cat")
	require.NoError(t, err)

	assert.Equal(t, "octo cat", gotUser)
	require.Len(t, items, 1)
	assert.Equal(t, "gallery", items[0].Name)
	assert.Equal(t, 7, items[0].Stars)
	assert.Equal(t, 2022, items[0].CreatedAt.Year())
	assert.Equal(t, "Go", items[0].PrimaryLanguage.Name)
}

func TestPinnedProxyClient_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewPinnedProxyClient(server.URL, time.Second, nil).PinnedItems(context.Background(), "octo")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}
