package ports

import (
	"context"
	"time"

	"portfolio-gallery/internal/domain/entity"
)

// PinnedItem is a pinned repository as returned by the pinned-items endpoint
type PinnedItem struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	URL             string          `json:"url"`
	Stars           int             `json:"stars"`
	CreatedAt       time.Time       `json:"createdAt"`
	PrimaryLanguage PrimaryLanguage `json:"primaryLanguage"`
	Topics          []string        `json:"topics"`
}

// PrimaryLanguage names a repository's dominant language
type PrimaryLanguage struct {
	Name string `json:"name,omitempty"`
}

// PinnedSource retrieves a user's pinned repositories
type PinnedSource interface {
	PinnedItems(ctx context.Context, user string) ([]PinnedItem, error)
}

// RepositoryLister retrieves a user's public repositories as project entries,
// ranked by star count and capped to limit
type RepositoryLister interface {
	TopStarred(ctx context.Context, user string, limit int) ([]entity.ProjectEntry, error)
}

// RetrievalStrategy is one way of obtaining remote project entries
type RetrievalStrategy interface {
	Name() string
	Fetch(ctx context.Context, user string) ([]entity.ProjectEntry, error)
}

// RemoteFetcher resolves a user's remote project entries.
// It never fails: unavailable data is an empty list.
type RemoteFetcher interface {
	Fetch(ctx context.Context, user string) []entity.ProjectEntry
}
