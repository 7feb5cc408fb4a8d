package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"portfolio-gallery/internal/ports"
)

// PinnedProxyClient reads pinned repositories from a deployed
// /api/github-pinned endpoint, so the token stays on that server
type PinnedProxyClient struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// pinnedEnvelope is the body served by the pinned-items endpoint
type pinnedEnvelope struct {
	Items []ports.PinnedItem `json:"items"`
}

// NewPinnedProxyClient creates a client for the given endpoint URL
func NewPinnedProxyClient(endpoint string, timeout time.Duration, logger *zap.Logger) *PinnedProxyClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PinnedProxyClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// PinnedItems fetches the pinned items for user from the endpoint
func (p *PinnedProxyClient) PinnedItems(ctx context.Context, user string) ([]ports.PinnedItem, error) {
	u, err := url.Parse(p.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid pinned endpoint %q: %w", p.endpoint, err)
	}
	q := u.Query()
	q.Set("user", user)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pinned endpoint returned status %d", resp.StatusCode)
	}

	var envelope pinnedEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("error decoding pinned items: %w", err)
	}

	p.logger.Debug("Fetched pinned items from proxy",
		zap.String("endpoint", p.endpoint),
		zap.Int("count", len(envelope.Items)))
	return envelope.Items, nil
}
