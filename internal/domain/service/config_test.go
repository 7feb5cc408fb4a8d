package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-gallery/internal/domain/entity"
)

type fakeConfigRepo struct {
	found    string
	config   *entity.Config
	err      error
	loadedAt string
}

func (f *fakeConfigRepo) LoadConfig(configPath string) (*entity.Config, error) {
	f.loadedAt = configPath
	if f.err != nil {
		return nil, f.err
	}
	return f.config, nil
}

func (f *fakeConfigRepo) GenerateExampleConfig(filePath string) error { return nil }

func (f *fakeConfigRepo) FindConfigFile() string { return f.found }

func newTestConfigService(repo *fakeConfigRepo, env map[string]string) *ConfigService {
	s := NewConfigService(repo)
	s.getenv = func(key string) string { return env[key] }
	return s
}

func TestConfigService_DefaultsWithoutFile(t *testing.T) {
	s := newTestConfigService(&fakeConfigRepo{}, nil)

	config, err := s.GetConfig("")
	require.NoError(t, err)

	assert.Equal(t, "markdown", config.Output.Format)
	assert.Equal(t, "Projects", config.Output.Title)
	assert.Equal(t, ":8080", config.Server.Addr)
	assert.Equal(t, 10, config.Server.ShutdownTimeout)
	assert.Equal(t, "https://api.github.com/graphql", config.GitHub.GraphQLURL)
	assert.Equal(t, 100, config.GitHub.PageSize)
	assert.Equal(t, DefaultRemoteLimit, config.GitHub.TopLimit)
	assert.False(t, config.HasRemoteIdentity())
}

func TestConfigService_UsesFoundFile(t *testing.T) {
	repo := &fakeConfigRepo{found: "config.yaml", config: &entity.Config{
		GitHub: entity.GitHubConfig{Username: "octocat"},
		Output: entity.OutputConfig{Format: "json"},
	}}

	config, err := newTestConfigService(repo, nil).GetConfig("")
	require.NoError(t, err)

	assert.Equal(t, "config.yaml", repo.loadedAt)
	assert.Equal(t, "octocat", config.GitHub.Username)
	assert.Equal(t, "json", config.Output.Format)
}

func TestConfigService_EnvironmentOverridesFile(t *testing.T) {
	repo := &fakeConfigRepo{config: &entity.Config{
		GitHub: entity.GitHubConfig{Username: "from-file"},
		Server: entity.ServerConfig{Addr: ":9000"},
	}}
	env := map[string]string{
		EnvGitHubUsername: " from-env ",
		EnvServerAddr:     ":7000",
		EnvLogLevel:       "debug",
	}

	config, err := newTestConfigService(repo, env).GetConfig("custom.json")
	require.NoError(t, err)

	assert.Equal(t, "custom.json", repo.loadedAt)
	assert.Equal(t, "from-env", config.GitHub.Username)
	assert.Equal(t, ":7000", config.Server.Addr)
	assert.Equal(t, "debug", config.Log.Level)
}

func TestConfigService_LoadError(t *testing.T) {
	repo := &fakeConfigRepo{err: errors.New("broken")}

	_, err := newTestConfigService(repo, nil).GetConfig("config.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestConfigService_Token(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"none", nil, ""},
		{"primary", map[string]string{EnvGitHubToken: "a", EnvGitHubTokenAlt: "b"}, "a"},
		{"fallback", map[string]string{EnvGitHubTokenAlt: "b"}, "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newTestConfigService(&fakeConfigRepo{}, tt.env).Token())
		})
	}
}

func TestConfigService_ValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *entity.Config)
	}{
		{"format", func(c *entity.Config) { c.Output.Format = "html" }},
		{"timeout", func(c *entity.Config) { c.GitHub.TimeoutSec = -1 }},
		{"top limit", func(c *entity.Config) { c.GitHub.TopLimit = -3 }},
		{"username", func(c *entity.Config) { c.GitHub.Username = "octo/cat" }},
	}

	s := newTestConfigService(&fakeConfigRepo{}, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := s.SetDefaults(&entity.Config{})
			tt.mutate(config)
			assert.Error(t, s.ValidateConfig(config))
		})
	}

	assert.NoError(t, s.ValidateConfig(s.SetDefaults(&entity.Config{})))
}
