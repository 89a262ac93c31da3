// Package app wires configuration, storage, clients, and services together.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/folium-app/folium/internal/clients/stocksfeed"
	"github.com/folium-app/folium/internal/common"
	"github.com/folium-app/folium/internal/interfaces"
	"github.com/folium-app/folium/internal/services/assets"
	"github.com/folium-app/folium/internal/services/portfolio"
	"github.com/folium-app/folium/internal/storage"
)

// App holds all initialized services, clients, and storage. It is the shared
// core used by cmd/folium-server and by the server tests.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	FeedClient       interfaces.AssetFeedClient
	AssetService     interfaces.AssetService
	PortfolioService interfaces.PortfolioService
	StartupTime      time.Time
}

// NewApp initializes storage, clients, and services from config.
// configPath may be empty, in which case FOLIUM_CONFIG and the default
// config/folium.toml location are tried.
func NewApp(configPath string) (*App, error) {
	if configPath == "" {
		configPath = os.Getenv("FOLIUM_CONFIG")
	}
	if configPath == "" {
		configPath = "config/folium.toml"
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	feedClient := stocksfeed.NewClient(
		stocksfeed.WithBaseURL(config.Feed.BaseURL),
		stocksfeed.WithTimeout(config.Feed.GetTimeout()),
		stocksfeed.WithRateLimit(config.Feed.RateLimit),
		stocksfeed.WithLogger(logger),
	)

	assetService := assets.NewService(feedClient, logger,
		assets.WithTTL(config.Feed.GetCacheTTL()),
	)

	portfolioService := portfolio.NewService(
		storageManager.PositionStore(),
		assetService,
		logger,
	)

	return &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		FeedClient:       feedClient,
		AssetService:     assetService,
		PortfolioService: portfolioService,
		StartupTime:      time.Now(),
	}, nil
}

// Close releases all resources held by the app.
func (a *App) Close() {
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("Failed to close storage")
		}
	}
}
