// Package common provides shared utilities for Ardex
package common

import (
	"fmt"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the Ardex wallet client
type Config struct {
	Environment string              `toml:"environment"`
	Backend     BackendConfig       `toml:"backend"`
	WalletLink  WalletConnectConfig `toml:"walletconnect"`
	Storage     StorageConfig       `toml:"storage"`
	Logging     LoggingConfig       `toml:"logging"`
}

// BackendConfig holds the remote API configuration
type BackendConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *BackendConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 12 * time.Second
	}
	return d
}

// WalletConnectConfig holds external wallet pairing configuration
type WalletConnectConfig struct {
	ProjectID string `toml:"project_id"`
	RelayURL  string `toml:"relay_url"`
	Chain     string `toml:"chain"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the pairing timeout duration
func (c *WalletConnectConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// StorageConfig holds local vault storage configuration
type StorageConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Backend: BackendConfig{
			BaseURL:   "https://api.ardex.io",
			RateLimit: 5,
			Timeout:   "12s",
		},
		WalletLink: WalletConnectConfig{
			RelayURL: "wss://relay.walletconnect.com",
			Chain:    "hedera:testnet",
			Timeout:  "60s",
		},
		Storage: StorageConfig{
			Path: "data/vault",
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
	if env := os.Getenv("ARDEX_ENV"); env != "" {
		config.Environment = env
	}

	if url := os.Getenv("ARDEX_BACKEND_URL"); url != "" {
		config.Backend.BaseURL = url
	}

	if timeout := os.Getenv("ARDEX_BACKEND_TIMEOUT"); timeout != "" {
		config.Backend.Timeout = timeout
	}

	if id := os.Getenv("ARDEX_WC_PROJECT_ID"); id != "" {
		config.WalletLink.ProjectID = id
	}

	if relay := os.Getenv("ARDEX_WC_RELAY_URL"); relay != "" {
		config.WalletLink.RelayURL = relay
	}

	if path := os.Getenv("ARDEX_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if level := os.Getenv("ARDEX_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
