package github

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v58/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"portfolio-gallery/internal/domain/entity"
	"portfolio-gallery/internal/ports"
)

// ErrMissingToken is returned by calls that need an authenticated client
var ErrMissingToken = errors.New("GitHub token not configured")

var (
	_ ports.PinnedSource     = (*Client)(nil)
	_ ports.RepositoryLister = (*Client)(nil)
	_ ports.PinnedSource     = (*PinnedProxyClient)(nil)
)

// Client provides access to the GitHub REST and GraphQL APIs.
// It implements ports.PinnedSource and ports.RepositoryLister.
type Client struct {
	rest        *github.Client
	httpClient  *http.Client
	token       string
	graphqlURL  string
	userAgent   string
	pageSize    int
	rateLimiter *RateLimiter
	cache       *APICache
	cacheTTL    time.Duration
	stats       *ClientStats
	logger      *zap.Logger
}

// NewClient creates a GitHub client. An empty token yields an
// unauthenticated REST client and disables GraphQL calls.
func NewClient(token string, config *entity.Config, logger *zap.Logger) *Client {
	if config == nil {
		config = &entity.Config{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := config.Timeout()
	httpClient := &http.Client{Timeout: timeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = timeout
	}

	rest := github.NewClient(httpClient)
	if config.GitHub.APIBaseURL != "" {
		if u, err := url.Parse(withTrailingSlash(config.GitHub.APIBaseURL)); err == nil {
			rest.BaseURL = u
		} else {
			logger.Warn("Ignoring invalid GitHub API base URL",
				zap.String("url", config.GitHub.APIBaseURL), zap.Error(err))
		}
	}

	userAgent := config.GitHub.UserAgent
	if userAgent != "" {
		rest.UserAgent = userAgent
	}

	graphqlURL := config.GitHub.GraphQLURL
	if graphqlURL == "" {
		graphqlURL = "https://api.github.com/graphql"
	}

	pageSize := config.GitHub.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	var cache *APICache
	if config.Performance.CacheEnabled {
		cache = NewAPICache()
	}

	return &Client{
		rest:        rest,
		httpClient:  httpClient,
		token:       token,
		graphqlURL:  graphqlURL,
		userAgent:   userAgent,
		pageSize:    pageSize,
		rateLimiter: NewRateLimiter(config.GitHub.RateLimit),
		cache:       cache,
		cacheTTL:    config.CacheTTL(),
		stats:       &ClientStats{},
		logger:      logger,
	}
}

// HasToken returns true if the client can call authenticated endpoints
func (c *Client) HasToken() bool {
	return c.token != ""
}

// Stats returns a copy of the current client statistics
func (c *Client) Stats() StatsSnapshot {
	return c.stats.Snapshot()
}

// updateRateLimitStats updates rate limit statistics from HTTP response headers
func (c *Client) updateRateLimitStats(resp *http.Response) {
	if resp == nil {
		return
	}

	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			var resetTime time.Time
			if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
				if resetVal, err := strconv.ParseInt(reset, 10, 64); err == nil {
					resetTime = time.Unix(resetVal, 0)
				}
			}
			c.stats.UpdateQuota(val, resetTime)
		}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		c.stats.IncrementRateLimitHit()
	}
}

func withTrailingSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}
