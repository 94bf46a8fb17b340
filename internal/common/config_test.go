package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Environment != "development" {
		t.Errorf("expected development, got %s", cfg.Environment)
	}
	if cfg.Backend.BaseURL == "" {
		t.Error("expected default backend URL")
	}
	if cfg.Backend.GetTimeout() != 12*time.Second {
		t.Errorf("expected 12s default timeout, got %v", cfg.Backend.GetTimeout())
	}
	if cfg.WalletLink.Chain != "hedera:testnet" {
		t.Errorf("unexpected default chain: %s", cfg.WalletLink.Chain)
	}
}

func TestLoadConfig_FileMerge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ardex.toml")
	content := `
environment = "production"

[backend]
base_url = "https://backend.example.com"
timeout = "8s"

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Environment != "production" {
		t.Errorf("expected production, got %s", cfg.Environment)
	}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction true")
	}
	if cfg.Backend.BaseURL != "https://backend.example.com" {
		t.Errorf("unexpected base URL: %s", cfg.Backend.BaseURL)
	}
	if cfg.Backend.GetTimeout() != 8*time.Second {
		t.Errorf("expected 8s timeout, got %v", cfg.Backend.GetTimeout())
	}
	// Unset sections keep defaults
	if cfg.WalletLink.RelayURL == "" {
		t.Error("expected default relay URL to survive merge")
	}
}

func TestLoadConfig_MissingFileSkipped(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/ardex.toml")
	if err != nil {
		t.Fatalf("missing file should be skipped: %v", err)
	}
	if cfg.Backend.BaseURL == "" {
		t.Error("expected defaults when file missing")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ARDEX_BACKEND_URL", "https://override.example.com")
	t.Setenv("ARDEX_WC_PROJECT_ID", "proj-123")
	t.Setenv("ARDEX_LOG_LEVEL", "error")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Backend.BaseURL != "https://override.example.com" {
		t.Errorf("env override not applied: %s", cfg.Backend.BaseURL)
	}
	if cfg.WalletLink.ProjectID != "proj-123" {
		t.Errorf("project id override not applied: %s", cfg.WalletLink.ProjectID)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("log level override not applied: %s", cfg.Logging.Level)
	}
}

func TestGetTimeout_Invalid(t *testing.T) {
	c := BackendConfig{Timeout: "not-a-duration"}
	if c.GetTimeout() != 12*time.Second {
		t.Errorf("expected fallback 12s, got %v", c.GetTimeout())
	}
	w := WalletConnectConfig{Timeout: ""}
	if w.GetTimeout() != 60*time.Second {
		t.Errorf("expected fallback 60s, got %v", w.GetTimeout())
	}
}
