package github

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/go-github/v58/github"
	"go.uber.org/zap"

	"portfolio-gallery/internal/domain/entity"
)

// TopStarred lists a user's public repositories (most recently updated first,
// one page) and returns the limit most starred as project entries
func (c *Client) TopStarred(ctx context.Context, user string, limit int) ([]entity.ProjectEntry, error) {
	cacheKey := fmt.Sprintf("top:%s:%d", user, limit)
	if cached, found := c.cache.Get(cacheKey); found {
		if entries, ok := cached.([]entity.ProjectEntry); ok {
			c.stats.IncrementCacheHit()
			return entries, nil
		}
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	opt := &github.RepositoryListByUserOptions{
		Sort: "updated",
		ListOptions: github.ListOptions{
			PerPage: c.pageSize,
		},
	}

	c.stats.IncrementAPICall()
	repos, resp, err := c.rest.Repositories.ListByUser(ctx, user, opt)
	if resp != nil {
		c.updateRateLimitStats(resp.Response)
	}
	if err != nil {
		c.stats.IncrementError()
		var rateErr *github.RateLimitError
		if errors.As(err, &rateErr) {
			c.stats.IncrementRateLimitHit()
		}
		return nil, fmt.Errorf("error listing repositories for %s: %w", user, err)
	}

	entries := rankByStars(repos, limit)

	c.cache.Set(cacheKey, entries, c.cacheTTL)
	c.logger.Debug("Fetched top starred repositories",
		zap.String("user", user),
		zap.Int("listed", len(repos)),
		zap.Int("kept", len(entries)))
	return entries, nil
}

// rankByStars converts repositories to entries, most starred first
func rankByStars(repos []*github.Repository, limit int) []entity.ProjectEntry {
	ranked := make([]*github.Repository, 0, len(repos))
	for _, repo := range repos {
		if repo != nil && repo.GetName() != "" {
			ranked = append(ranked, repo)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].GetStargazersCount() > ranked[j].GetStargazersCount()
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	entries := make([]entity.ProjectEntry, 0, len(ranked))
	for _, repo := range ranked {
		entries = append(entries, entity.NewRemoteEntry(
			repo.GetName(),
			repo.GetDescription(),
			repo.GetHTMLURL(),
			repo.GetStargazersCount(),
			repo.GetCreatedAt().Time,
			[]string{repo.GetLanguage()},
		))
	}
	return entries
}
