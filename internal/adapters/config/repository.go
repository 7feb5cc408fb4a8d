package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"portfolio-gallery/internal/domain/entity"
	"portfolio-gallery/internal/ports"
)

var _ ports.ConfigRepository = (*Repository)(nil)

// Repository implements the ConfigRepository interface
type Repository struct {
	home string
}

// NewRepository creates a new config repository
func NewRepository() *Repository {
	return &Repository{home: os.Getenv("HOME")}
}

// LoadEnvFile loads variables from a .env file without overriding the environment.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading env file %s: %w", path, err)
	}
	return nil
}

// LoadConfig loads configuration from a JSON or YAML file
func (r *Repository) LoadConfig(configPath string) (*entity.Config, error) {
	// Default config path if not provided
	if configPath == "" {
		configPath = "config.json"
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config entity.Config
	if isYAML(configPath) {
		err = yaml.Unmarshal(data, &config)
	} else {
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	config.GitHub.Username = strings.TrimPrefix(strings.TrimSpace(config.GitHub.Username), "@")

	return &config, nil
}

// GenerateExampleConfig generates an example configuration file
func (r *Repository) GenerateExampleConfig(filePath string) error {
	config := entity.Config{}
	config.GitHub.Username = "your-github-login"
	config.GitHub.PinnedEndpoint = "https://your-site.example/api/github-pinned"
	config.GitHub.TimeoutSec = 30
	config.GitHub.TopLimit = 6
	config.Server.Addr = ":8080"
	config.Output.Format = "markdown"
	config.Output.Title = "Projects"
	config.Performance.CacheEnabled = true
	config.Performance.CacheTTLMin = 10
	config.Log.Level = "info"

	var (
		data []byte
		err  error
	)
	if isYAML(filePath) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("error marshaling example config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing example config: %w", err)
	}

	return nil
}

// FindConfigFile looks for config files in standard locations
func (r *Repository) FindConfigFile() string {
	candidates := []string{
		"config.json",
		"config.yaml",
		"config.yml",
		".portfolio-gallery.json",
	}
	if r.home != "" {
		candidates = append(candidates,
			filepath.Join(r.home, ".portfolio-gallery.json"),
			filepath.Join(r.home, ".portfolio-gallery.yaml"),
		)
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
