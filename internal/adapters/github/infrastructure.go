package github

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ClientStats tracks API usage statistics
type ClientStats struct {
	mu             sync.RWMutex
	apiCalls       int
	cacheHits      int
	errors         int
	rateLimitHits  int
	lastAPICall    time.Time
	remainingQuota int
	quotaResetTime time.Time
}

// StatsSnapshot is a point-in-time copy of ClientStats
type StatsSnapshot struct {
	APICalls       int       `json:"api_calls"`
	CacheHits      int       `json:"cache_hits"`
	Errors         int       `json:"errors"`
	RateLimitHits  int       `json:"rate_limit_hits"`
	LastAPICall    time.Time `json:"last_api_call,omitempty"`
	RemainingQuota int       `json:"remaining_quota"`
	QuotaResetTime time.Time `json:"quota_reset_time,omitempty"`
}

// Snapshot returns a copy of the current client statistics
func (s *ClientStats) Snapshot() StatsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StatsSnapshot{
		APICalls:       s.apiCalls,
		CacheHits:      s.cacheHits,
		Errors:         s.errors,
		RateLimitHits:  s.rateLimitHits,
		LastAPICall:    s.lastAPICall,
		RemainingQuota: s.remainingQuota,
		QuotaResetTime: s.quotaResetTime,
	}
}

// IncrementAPICall safely increments the API call counter
func (s *ClientStats) IncrementAPICall() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiCalls++
	s.lastAPICall = time.Now()
}

// IncrementError safely increments the error counter
func (s *ClientStats) IncrementError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors++
}

// IncrementCacheHit safely increments the cache hit counter
func (s *ClientStats) IncrementCacheHit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cacheHits++
}

// IncrementRateLimitHit safely increments the rate limit hit counter
func (s *ClientStats) IncrementRateLimitHit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rateLimitHits++
}

// UpdateQuota updates the rate limit quota information
func (s *ClientStats) UpdateQuota(remaining int, resetTime time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remainingQuota = remaining
	s.quotaResetTime = resetTime
}

// APICache provides simple in-memory caching for API responses.
// A nil *APICache is a valid, always-missing cache.
type APICache struct {
	data map[string]cacheEntry
	mu   sync.Mutex
	now  func() time.Time
}

type cacheEntry struct {
	data      any
	expiresAt time.Time
}

// NewAPICache creates a new API cache
func NewAPICache() *APICache {
	return &APICache{
		data: make(map[string]cacheEntry),
		now:  time.Now,
	}
}

// Get retrieves an unexpired item from the cache
func (c *APICache) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.data[key]
	if !exists {
		return nil, false
	}

	if c.now().After(entry.expiresAt) {
		delete(c.data, key)
		return nil, false
	}

	return entry.data, true
}

// Set stores an item in the cache with TTL
func (c *APICache) Set(key string, data any, ttl time.Duration) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = cacheEntry{
		data:      data,
		expiresAt: c.now().Add(ttl),
	}
}

// ClearExpired removes expired entries from the cache
func (c *APICache) ClearExpired() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.data {
		if now.After(entry.expiresAt) {
			delete(c.data, key)
		}
	}
}

// Len returns the number of cached entries, expired ones included
func (c *APICache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// RateLimiter spreads GitHub requests over the hourly quota
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(requestsPerHour int) *RateLimiter {
	if requestsPerHour <= 0 {
		requestsPerHour = 5000 // Default GitHub rate limit
	}

	// Convert to requests per second with burst capacity
	rps := rate.Limit(float64(requestsPerHour) / 3600)

	return &RateLimiter{
		limiter: rate.NewLimiter(rps, 10),
	}
}

// Wait waits for the rate limiter to allow the request
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
