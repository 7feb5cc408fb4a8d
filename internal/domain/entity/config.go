package entity

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config represents the application configuration
type Config struct {
	GitHub      GitHubConfig      `json:"github" yaml:"github"`
	Server      ServerConfig      `json:"server" yaml:"server"`
	Output      OutputConfig      `json:"output" yaml:"output"`
	Performance PerformanceConfig `json:"performance" yaml:"performance"`
	Log         LogConfig         `json:"log" yaml:"log"`
}

// GitHubConfig contains GitHub-related configuration
// Note: GitHub token must be provided via GITHUB_TOKEN (or GH_TOKEN) environment variable
type GitHubConfig struct {
	Username       string `json:"username" yaml:"username"`
	PinnedEndpoint string `json:"pinned_endpoint,omitempty" yaml:"pinned_endpoint,omitempty"`
	GraphQLURL     string `json:"graphql_url,omitempty" yaml:"graphql_url,omitempty"`
	APIBaseURL     string `json:"api_base_url,omitempty" yaml:"api_base_url,omitempty"`
	TimeoutSec     int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
	RateLimit      int    `json:"rate_limit_per_hour,omitempty" yaml:"rate_limit_per_hour,omitempty"`
	PageSize       int    `json:"page_size,omitempty" yaml:"page_size,omitempty"`
	TopLimit       int    `json:"top_limit,omitempty" yaml:"top_limit,omitempty"`
	UserAgent      string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Addr            string `json:"addr" yaml:"addr"`
	ShutdownTimeout int    `json:"shutdown_timeout_seconds,omitempty" yaml:"shutdown_timeout_seconds,omitempty"`
}

// OutputConfig contains output formatting configuration
type OutputConfig struct {
	Format string `json:"format" yaml:"format"` // "markdown" or "json"
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
	Title  string `json:"title,omitempty" yaml:"title,omitempty"`
}

// PerformanceConfig contains caching settings for GitHub responses
type PerformanceConfig struct {
	CacheEnabled bool `json:"cache_enabled,omitempty" yaml:"cache_enabled,omitempty"`
	CacheTTLMin  int  `json:"cache_ttl_minutes,omitempty" yaml:"cache_ttl_minutes,omitempty"`
}

// LogConfig contains logger settings
type LogConfig struct {
	Level       string `json:"level,omitempty" yaml:"level,omitempty"`
	Development bool   `json:"development,omitempty" yaml:"development,omitempty"`
}

// HasRemoteIdentity returns true if a GitHub username is configured
func (c *Config) HasRemoteIdentity() bool {
	return c.GitHub.Username != ""
}

// Timeout returns the HTTP timeout for GitHub requests
func (c *Config) Timeout() time.Duration {
	if c.GitHub.TimeoutSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.GitHub.TimeoutSec) * time.Second
}

// CacheTTL returns how long GitHub responses stay cached
func (c *Config) CacheTTL() time.Duration {
	if c.Performance.CacheTTLMin <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.Performance.CacheTTLMin) * time.Minute
}

// NewLogger builds a zap logger from the log section
func (c *Config) NewLogger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	if c.Log.Level != "" {
		level, err := zapcore.ParseLevel(c.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}
	return zc.Build()
}
