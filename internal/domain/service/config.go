package service

import (
	"fmt"
	"os"
	"strings"

	"portfolio-gallery/internal/domain/entity"
	"portfolio-gallery/internal/ports"
)

// Environment variables read by the configuration layer
const (
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvGitHubTokenAlt = "GH_TOKEN"
	EnvGitHubUsername = "GH_USERNAME"
	EnvServerAddr     = "SERVER_ADDR"
	EnvLogLevel       = "LOG_LEVEL"
)

var _ ports.ConfigService = (*ConfigService)(nil)

// ConfigService implements configuration management business logic
type ConfigService struct {
	configRepo ports.ConfigRepository
	getenv     func(string) string
}

// NewConfigService creates a new configuration service
func NewConfigService(configRepo ports.ConfigRepository) *ConfigService {
	return &ConfigService{
		configRepo: configRepo,
		getenv:     os.Getenv,
	}
}

// GetConfig retrieves configuration with fallbacks and validation
func (s *ConfigService) GetConfig(configPath string) (*entity.Config, error) {
	// Find config file if path not provided
	if configPath == "" {
		configPath = s.configRepo.FindConfigFile()
	}

	config := &entity.Config{}
	if configPath != "" {
		loaded, err := s.configRepo.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		config = loaded
	}

	config = s.ApplyEnvironment(config)
	config = s.SetDefaults(config)

	if err := s.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// ApplyEnvironment overrides file values with environment variables
func (s *ConfigService) ApplyEnvironment(config *entity.Config) *entity.Config {
	if user := strings.TrimSpace(s.getenv(EnvGitHubUsername)); user != "" {
		config.GitHub.Username = user
	}
	if addr := s.getenv(EnvServerAddr); addr != "" {
		config.Server.Addr = addr
	}
	if level := s.getenv(EnvLogLevel); level != "" {
		config.Log.Level = level
	}
	return config
}

// Token returns the GitHub token from the environment, if any
func (s *ConfigService) Token() string {
	if token := s.getenv(EnvGitHubToken); token != "" {
		return token
	}
	return s.getenv(EnvGitHubTokenAlt)
}

// ValidateConfig validates configuration values
func (s *ConfigService) ValidateConfig(config *entity.Config) error {
	switch config.Output.Format {
	case "markdown", "json":
	default:
		return fmt.Errorf("output.format must be markdown or json, got %q", config.Output.Format)
	}

	if config.GitHub.TimeoutSec < 0 {
		return fmt.Errorf("github.timeout_seconds must not be negative")
	}
	if config.GitHub.TopLimit < 0 || config.GitHub.PageSize < 0 {
		return fmt.Errorf("github.top_limit and github.page_size must not be negative")
	}
	if strings.ContainsAny(config.GitHub.Username, " /") {
		return fmt.Errorf("github.username %q is not a valid login", config.GitHub.Username)
	}

	return nil
}

// SetDefaults applies default values to configuration
func (s *ConfigService) SetDefaults(config *entity.Config) *entity.Config {
	if config.Output.Format == "" {
		config.Output.Format = "markdown"
	}

	if config.Output.Title == "" {
		config.Output.Title = "Projects"
	}

	if config.Server.Addr == "" {
		config.Server.Addr = ":8080"
	}

	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = 10
	}

	if config.GitHub.GraphQLURL == "" {
		config.GitHub.GraphQLURL = "https://api.github.com/graphql"
	}

	if config.GitHub.RateLimit == 0 {
		config.GitHub.RateLimit = 5000
	}

	if config.GitHub.PageSize == 0 {
		config.GitHub.PageSize = 100
	}

	if config.GitHub.TopLimit == 0 {
		config.GitHub.TopLimit = DefaultRemoteLimit
	}

	if config.GitHub.UserAgent == "" {
		config.GitHub.UserAgent = "portfolio-gallery/1.0"
	}

	return config
}
