// Package common provides shared utilities for Sentinel
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// DefaultAPIURL is the backend base URL baked in at link time
// (-ldflags "-X github.com/bobmcallan/sentinel/internal/common.DefaultAPIURL=...").
var DefaultAPIURL = "http://localhost:8000"

// Config holds all configuration for Sentinel
type Config struct {
	Environment string          `toml:"environment"`
	API         APIConfig       `toml:"api"`
	Session     SessionConfig   `toml:"session"`
	Dashboard   DashboardConfig `toml:"dashboard"`
	Logging     LoggingConfig   `toml:"logging"`
}

// APIConfig holds backend API client configuration
type APIConfig struct {
	BaseURL   string `toml:"base_url"`
	Timeout   string `toml:"timeout"`    // empty = transport default, no client deadline
	RateLimit int    `toml:"rate_limit"` // requests per second, 0 = unlimited
}

// GetTimeout parses the timeout duration. Zero means no client-side timeout.
func (c *APIConfig) GetTimeout() time.Duration {
	if strings.TrimSpace(c.Timeout) == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// SessionConfig holds token persistence configuration
type SessionConfig struct {
	TokenPath string `toml:"token_path"` // "-" disables durable storage
	Disabled  bool   `toml:"disabled"`
}

// DashboardConfig holds display configuration
type DashboardConfig struct {
	NewsLimit int    `toml:"news_limit"`
	Greeting  string `toml:"greeting"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // console or json
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		API: APIConfig{
			BaseURL: DefaultAPIURL,
		},
		Session: SessionConfig{
			TokenPath: DefaultTokenPath(),
		},
		Dashboard: DashboardConfig{
			NewsLimit: 3,
			Greeting:  "John",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// DefaultTokenPath returns the per-user credentials file location.
func DefaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(".sentinel", "credentials.toml")
	}
	return filepath.Join(dir, "sentinel", "credentials.toml")
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

	// .env never overrides variables already set in the process
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	applyEnvOverrides(config)
	normalize(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SENTINEL_ENV"); env != "" {
		config.Environment = env
	}

	if u := os.Getenv("SENTINEL_API_URL"); u != "" {
		config.API.BaseURL = u
	}

	if t := os.Getenv("SENTINEL_API_TIMEOUT"); t != "" {
		config.API.Timeout = t
	}

	if rl := os.Getenv("SENTINEL_API_RATE_LIMIT"); rl != "" {
		if n, err := strconv.Atoi(rl); err == nil {
			config.API.RateLimit = n
		}
	}

	if p := os.Getenv("SENTINEL_TOKEN_PATH"); p != "" {
		config.Session.TokenPath = p
	}

	if level := os.Getenv("SENTINEL_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if n := os.Getenv("SENTINEL_NEWS_LIMIT"); n != "" {
		if v, err := strconv.Atoi(n); err == nil {
			config.Dashboard.NewsLimit = v
		}
	}
}

// normalize fills empty values back in after file and env merging.
func normalize(config *Config) {
	config.API.BaseURL = strings.TrimRight(strings.TrimSpace(config.API.BaseURL), "/")
	if config.API.BaseURL == "" {
		config.API.BaseURL = strings.TrimRight(DefaultAPIURL, "/")
	}
	if config.API.RateLimit < 0 {
		config.API.RateLimit = 0
	}
	if config.Dashboard.NewsLimit <= 0 {
		config.Dashboard.NewsLimit = 3
	}
	if config.Session.TokenPath == "-" {
		config.Session.Disabled = true
	}
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
