// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// BaseURLEnv overrides the API base URL from the environment or a .env file.
const BaseURLEnv = "FITLIFE_BASE_URL"

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	API     APIConfig     `toml:"api"`
	Refresh RefreshConfig `toml:"refresh"`
	Log     LogConfig     `toml:"log"`
}

// APIConfig maps API connection settings.
type APIConfig struct {
	BaseURL *string `toml:"base-url"`
	Timeout *string `toml:"timeout"`
}

// RefreshConfig maps progress polling settings.
type RefreshConfig struct {
	Interval *string `toml:"interval"`
}

// LogConfig maps diagnostic log settings.
type LogConfig struct {
	File  *string `toml:"file"`
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv loads envFiles (missing files are ignored) and lets the
// environment override the base URL from the config file.
func ApplyEnv(cfg *FileConfig, envFiles ...string) {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		// Load never overwrites variables that are already set.
		_ = godotenv.Load(path)
	}
	if v := strings.TrimSpace(os.Getenv(BaseURLEnv)); v != "" {
		cfg.API.BaseURL = &v
	}
}
