// ABOUTME: Client configuration loading
// ABOUTME: Merges .env, the XDG config file, and environment overrides
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// BackendURL is the project base URL, e.g. https://acme.example.co.
	BackendURL string `yaml:"backend_url"`
	// APIKey is the anonymous project key sent with every request.
	APIKey string `yaml:"api_key"`

	// Offline switches the gateway to the local SQLite store.
	Offline bool   `yaml:"offline"`
	DBPath  string `yaml:"db_path"`

	// Realtime subscribes the TUI to the backend change feed.
	Realtime bool `yaml:"realtime"`

	LogLevel string `yaml:"log_level"`
}

// Load reads configuration lowest-precedence first: a .env in the working
// directory, then the config file, then VENDORDESK_* environment
// variables.
func Load() (*Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:   filepath.Join(xdg.DataHome, "vendordesk", "vendordesk.db"),
		LogLevel: "info",
	}

	if err := readFile(configFilePath(), cfg); err != nil {
		return nil, err
	}

	if v := os.Getenv("VENDORDESK_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("VENDORDESK_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("VENDORDESK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("VENDORDESK_LOG"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("VENDORDESK_OFFLINE"); v != "" {
		cfg.Offline, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("VENDORDESK_REALTIME"); v != "" {
		cfg.Realtime, _ = strconv.ParseBool(v)
	}

	return cfg, nil
}

// Validate checks that remote mode has somewhere to go.
func (c *Config) Validate() error {
	if c.Offline {
		return nil
	}
	if c.BackendURL == "" {
		return fmt.Errorf("backend URL is not configured (set VENDORDESK_URL or backend_url in %s)", configFilePath())
	}
	if c.APIKey == "" {
		return fmt.Errorf("API key is not configured (set VENDORDESK_API_KEY or api_key in %s)", configFilePath())
	}
	return nil
}

func configFilePath() string {
	return filepath.Join(xdg.ConfigHome, "vendordesk", "config.yaml")
}

func readFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
