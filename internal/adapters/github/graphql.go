package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"portfolio-gallery/internal/ports"
)

const maxPinnedItems = 6

const pinnedItemsQuery = `query($login:String!) {
  user(login:$login) {
    pinnedItems(first:6, types: REPOSITORY) {
      nodes {
        ... on Repository {
          name description url stargazerCount createdAt
          primaryLanguage { name }
          repositoryTopics(first:10) { nodes { topic { name } } }
        }
      }
    }
  }
}`

// graphQLRequest is the body posted to the GraphQL endpoint
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// pinnedResponse mirrors the GraphQL response for pinnedItemsQuery
type pinnedResponse struct {
	Data struct {
		User *struct {
			PinnedItems struct {
				Nodes []pinnedNode `json:"nodes"`
			} `json:"pinnedItems"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type pinnedNode struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	URL             string `json:"url"`
	StargazerCount  int    `json:"stargazerCount"`
	CreatedAt       string `json:"createdAt"`
	PrimaryLanguage *struct {
		Name string `json:"name"`
	} `json:"primaryLanguage"`
	RepositoryTopics struct {
		Nodes []struct {
			Topic *struct {
				Name string `json:"name"`
			} `json:"topic"`
		} `json:"nodes"`
	} `json:"repositoryTopics"`
}

// PinnedItems fetches a user's pinned repositories through the GraphQL API
func (c *Client) PinnedItems(ctx context.Context, user string) ([]ports.PinnedItem, error) {
	if !c.HasToken() {
		return nil, ErrMissingToken
	}

	cacheKey := "pinned:" + user
	if cached, found := c.cache.Get(cacheKey); found {
		if items, ok := cached.([]ports.PinnedItem); ok {
			c.stats.IncrementCacheHit()
			return items, nil
		}
	}

	resp, err := c.executeGraphQL(ctx, pinnedItemsQuery, map[string]any{"login": user})
	if err != nil {
		c.stats.IncrementError()
		return nil, err
	}

	var items []ports.PinnedItem
	if resp.Data.User != nil {
		for _, node := range resp.Data.User.PinnedItems.Nodes {
			if node.Name == "" {
				continue
			}
			items = append(items, node.toPinnedItem())
			if len(items) == maxPinnedItems {
				break
			}
		}
	}

	c.cache.Set(cacheKey, items, c.cacheTTL)
	c.logger.Debug("Fetched pinned repositories", zap.String("user", user), zap.Int("count", len(items)))
	return items, nil
}

// executeGraphQL posts a query and decodes the pinned-items response shape
func (c *Client) executeGraphQL(ctx context.Context, query string, variables map[string]any) (*pinnedResponse, error) {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	c.stats.IncrementAPICall()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing request: %w", err)
	}
	defer resp.Body.Close()

	c.updateRateLimitStats(resp)

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("GraphQL request failed with status %d: %s", resp.StatusCode, snippet)
	}

	var out pinnedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("GraphQL errors: %s", out.Errors[0].Message)
	}

	return &out, nil
}

func (n pinnedNode) toPinnedItem() ports.PinnedItem {
	item := ports.PinnedItem{
		Name:        n.Name,
		Description: n.Description,
		URL:         n.URL,
		Stars:       n.StargazerCount,
		Topics:      []string{},
	}
	if t, err := time.Parse(time.RFC3339, n.CreatedAt); err == nil {
		item.CreatedAt = t
	}
	if n.PrimaryLanguage != nil {
		item.PrimaryLanguage.Name = n.PrimaryLanguage.Name
	}
	for _, tn := range n.RepositoryTopics.Nodes {
		if tn.Topic != nil && tn.Topic.Name != "" {
			item.Topics = append(item.Topics, tn.Topic.Name)
		}
	}
	return item
}
