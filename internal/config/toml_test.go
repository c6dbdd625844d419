package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.API.BaseURL != nil || cfg.Refresh.Interval != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigDecodesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[api]
base-url = "http://localhost:5000"
timeout = "5s"

[refresh]
interval = "30s"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.API.BaseURL == nil || *cfg.API.BaseURL != "http://localhost:5000" {
		t.Fatalf("unexpected base url: %v", cfg.API.BaseURL)
	}
	if cfg.API.Timeout == nil || *cfg.API.Timeout != "5s" {
		t.Fatalf("unexpected timeout: %v", cfg.API.Timeout)
	}
	if cfg.Refresh.Interval == nil || *cfg.Refresh.Interval != "30s" {
		t.Fatalf("unexpected interval: %v", cfg.Refresh.Interval)
	}
	if cfg.Log.File != nil {
		t.Fatalf("expected unset log file, got %q", *cfg.Log.File)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected level: %v", cfg.Log.Level)
	}
}

func TestApplyEnvOverridesBaseURL(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte(BaseURLEnv+"=http://from-dotenv:5000\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv(BaseURLEnv, "")
	if err := os.Unsetenv(BaseURLEnv); err != nil {
		t.Fatalf("unset env: %v", err)
	}

	fileURL := "http://from-file:5000"
	cfg := FileConfig{API: APIConfig{BaseURL: &fileURL}}
	ApplyEnv(&cfg, envPath, filepath.Join(dir, "missing.env"))
	if cfg.API.BaseURL == nil || *cfg.API.BaseURL != "http://from-dotenv:5000" {
		t.Fatalf("expected dotenv override, got %v", cfg.API.BaseURL)
	}
}

func TestApplyEnvKeepsFileValueWithoutOverride(t *testing.T) {
	t.Setenv(BaseURLEnv, "")
	fileURL := "http://from-file:5000"
	cfg := FileConfig{API: APIConfig{BaseURL: &fileURL}}
	ApplyEnv(&cfg)
	if *cfg.API.BaseURL != fileURL {
		t.Fatalf("expected file value to survive, got %q", *cfg.API.BaseURL)
	}
}
