package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"portfolio-gallery/internal/domain/entity"
	"portfolio-gallery/internal/ports"
)

// DefaultRemoteLimit caps the number of entries a retrieval strategy returns
const DefaultRemoteLimit = 6

var _ ports.RemoteFetcher = (*FetchService)(nil)

// FetchService tries retrieval strategies in order until one yields entries
type FetchService struct {
	strategies []ports.RetrievalStrategy
	logger     *zap.Logger
}

// NewFetchService creates a fetch service over an ordered strategy list
func NewFetchService(logger *zap.Logger, strategies ...ports.RetrievalStrategy) *FetchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FetchService{
		strategies: strategies,
		logger:     logger,
	}
}

// Fetch returns the first non-empty strategy result, or an empty list.
// Strategy errors are logged and never returned.
func (s *FetchService) Fetch(ctx context.Context, user string) []entity.ProjectEntry {
	user = strings.TrimSpace(user)
	if user == "" {
		s.logger.Debug("No GitHub username configured, skipping remote fetch")
		return []entity.ProjectEntry{}
	}

	for _, strategy := range s.strategies {
		if ctx.Err() != nil {
			break
		}

		entries, err := strategy.Fetch(ctx, user)
		if err != nil {
			s.logger.Warn("Retrieval strategy failed",
				zap.String("strategy", strategy.Name()),
				zap.String("user", user),
				zap.Error(err))
			continue
		}
		if len(entries) == 0 {
			s.logger.Debug("Retrieval strategy returned no entries",
				zap.String("strategy", strategy.Name()),
				zap.String("user", user))
			continue
		}

		s.logger.Info("Fetched remote projects",
			zap.String("strategy", strategy.Name()),
			zap.String("user", user),
			zap.Int("count", len(entries)))
		return entries
	}

	return []entity.ProjectEntry{}
}

// PinnedStrategy maps a user's pinned repositories to project entries
type PinnedStrategy struct {
	source ports.PinnedSource
	limit  int
}

// NewPinnedStrategy creates the pinned-items strategy
func NewPinnedStrategy(source ports.PinnedSource, limit int) *PinnedStrategy {
	if limit <= 0 {
		limit = DefaultRemoteLimit
	}
	return &PinnedStrategy{source: source, limit: limit}
}

// Name identifies the strategy in logs
func (s *PinnedStrategy) Name() string {
	return "pinned"
}

// Fetch retrieves and normalizes the pinned items
func (s *PinnedStrategy) Fetch(ctx context.Context, user string) ([]entity.ProjectEntry, error) {
	items, err := s.source.PinnedItems(ctx, user)
	if err != nil {
		return nil, err
	}

	entries := make([]entity.ProjectEntry, 0, len(items))
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		entries = append(entries, PinnedToEntry(item))
		if len(entries) == s.limit {
			break
		}
	}
	return entries, nil
}

// PinnedToEntry converts a pinned item; topics win over the primary language as tags
func PinnedToEntry(item ports.PinnedItem) entity.ProjectEntry {
	tags := item.Topics
	if len(tags) == 0 {
		tags = []string{item.PrimaryLanguage.Name}
	}
	return entity.NewRemoteEntry(item.Name, item.Description, item.URL, item.Stars, item.CreatedAt, tags)
}

// TopStarredStrategy ranks a user's repositories by star count
type TopStarredStrategy struct {
	lister ports.RepositoryLister
	limit  int
}

// NewTopStarredStrategy creates the top-starred fallback strategy
func NewTopStarredStrategy(lister ports.RepositoryLister, limit int) *TopStarredStrategy {
	if limit <= 0 {
		limit = DefaultRemoteLimit
	}
	return &TopStarredStrategy{lister: lister, limit: limit}
}

// Name identifies the strategy in logs
func (s *TopStarredStrategy) Name() string {
	return "top-starred"
}

// Fetch retrieves the top repositories
func (s *TopStarredStrategy) Fetch(ctx context.Context, user string) ([]entity.ProjectEntry, error) {
	return s.lister.TopStarred(ctx, user, s.limit)
}
