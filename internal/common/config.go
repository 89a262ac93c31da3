// Package common provides shared utilities for Folium
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Folium
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Feed        FeedConfig    `toml:"feed"`
	Auth        AuthConfig    `toml:"auth"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds paths for the two storage areas.
type StorageConfig struct {
	User      AreaConfig `toml:"user"`      // User accounts (BadgerHold)
	Portfolio AreaConfig `toml:"portfolio"` // Portfolio positions (BadgerHold)
}

// AreaConfig holds path configuration for a storage area.
type AreaConfig struct {
	Path string `toml:"path"`
}

// FeedConfig holds asset feed client configuration
type FeedConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
	CacheTTL  string `toml:"cache_ttl"`
}

// GetTimeout parses and returns the feed request timeout
func (c *FeedConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GetCacheTTL parses and returns the asset cache staleness window
func (c *FeedConfig) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 5 * time.Minute
	}
	return d
}

// AuthConfig holds JWT authentication configuration.
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret"`
	TokenExpiry string `toml:"token_expiry"` // duration string, default "24h"
}

// GetTokenExpiry parses and returns the token expiry duration.
func (c *AuthConfig) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			User:      AreaConfig{Path: "data/user"},
			Portfolio: AreaConfig{Path: "data/portfolio"},
		},
		Feed: FeedConfig{
			BaseURL:   "https://woxa-stocks-test-data.yuttanar.workers.dev",
			RateLimit: 10,
			Timeout:   "10s",
			CacheTTL:  "5m",
		},
		Auth: AuthConfig{
			JWTSecret:   "dev-jwt-secret-change-in-production",
			TokenExpiry: "24h",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FOLIUM_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FOLIUM_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FOLIUM_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("FOLIUM_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("FOLIUM_DATA_PATH"); path != "" {
		config.Storage.User.Path = filepath.Join(path, "user")
		config.Storage.Portfolio.Path = filepath.Join(path, "portfolio")
	}

	if url := os.Getenv("FOLIUM_FEED_URL"); url != "" {
		config.Feed.BaseURL = url
	}
	if ttl := os.Getenv("FOLIUM_FEED_CACHE_TTL"); ttl != "" {
		config.Feed.CacheTTL = ttl
	}

	if v := os.Getenv("FOLIUM_AUTH_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("FOLIUM_AUTH_TOKEN_EXPIRY"); v != "" {
		config.Auth.TokenExpiry = v
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}
