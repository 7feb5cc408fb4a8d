package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"portfolio-gallery/internal/adapters/config"
	"portfolio-gallery/internal/adapters/github"
	"portfolio-gallery/internal/domain/entity"
	"portfolio-gallery/internal/domain/service"
	"portfolio-gallery/internal/ports"
)

// app bundles the wired components shared by the commands
type app struct {
	config  *entity.Config
	logger  *zap.Logger
	client  *github.Client
	fetcher *service.FetchService
	gallery *service.Gallery
}

// newApp loads configuration and wires the GitHub adapters into a gallery
func newApp() (*app, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, err
	}

	configRepo := config.NewRepository()
	configService := service.NewConfigService(configRepo)

	appConfig, err := configService.GetConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}

	// Flags override file and environment
	if githubUser != "" {
		appConfig.GitHub.Username = githubUser
	}
	if logLevel != "" {
		appConfig.Log.Level = logLevel
	}

	logger, err := appConfig.NewLogger()
	if err != nil {
		return nil, err
	}

	token := configService.Token()
	client := github.NewClient(token, appConfig, logger.Named("github"))

	strategies := []ports.RetrievalStrategy{}
	switch {
	case appConfig.GitHub.PinnedEndpoint != "":
		proxy := github.NewPinnedProxyClient(appConfig.GitHub.PinnedEndpoint, appConfig.Timeout(), logger.Named("pinned-proxy"))
		strategies = append(strategies, service.NewPinnedStrategy(proxy, appConfig.GitHub.TopLimit))
	case client.HasToken():
		strategies = append(strategies, service.NewPinnedStrategy(client, appConfig.GitHub.TopLimit))
	default:
		logger.Debug("No pinned source configured, using top starred repositories only")
	}
	strategies = append(strategies, service.NewTopStarredStrategy(client, appConfig.GitHub.TopLimit))

	fetcher := service.NewFetchService(logger.Named("fetch"), strategies...)
	gallery := service.NewGallery(entity.LocalCatalog(), appConfig.GitHub.Username, fetcher, logger.Named("gallery"))

	return &app{
		config:  appConfig,
		logger:  logger,
		client:  client,
		fetcher: fetcher,
		gallery: gallery,
	}, nil
}

// Close releases the gallery and flushes the logger
func (a *app) Close() {
	a.gallery.Close()
	_ = a.logger.Sync()
}
