// Package config loads and saves the tracker's TOML configuration at
// ~/.decklist-tracker/config.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Daemon  DaemonConfig  `toml:"daemon"`
	Decks   DecksConfig   `toml:"decks"`
	Craft   CraftConfig   `toml:"craft"`
	App     AppConfig     `toml:"app"`
}

// StorageConfig contains database settings.
type StorageConfig struct {
	Path      string `toml:"path"`       // SQLite database path (default under the config dir)
	BackupDir string `toml:"backup_dir"` // Directory for `detr backup` output
}

// DaemonConfig contains mtga-tracker-daemon connection settings.
type DaemonConfig struct {
	Port    int    `toml:"port"`
	Timeout string `toml:"timeout"` // Request timeout (e.g. "10s")
}

// DecksConfig contains decklist directory settings for `detr watch`.
type DecksConfig struct {
	Dir string `toml:"dir"` // Directory of exported decklists
}

// CraftConfig contains crafting recommendation defaults.
type CraftConfig struct {
	RaresLimit      int  `toml:"rares_limit"`      // Budget of rare wildcards to plan around
	MythicsLimit    int  `toml:"mythics_limit"`    // Budget of mythic wildcards to plan around
	IgnoreSideboard bool `toml:"ignore_sideboard"` // Plan mainboards (plus wishboards) only
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:      "",
			BackupDir: "",
		},
		Daemon: DaemonConfig{
			Port:    6842,
			Timeout: "10s",
		},
		Decks: DecksConfig{
			Dir: "",
		},
		Craft: CraftConfig{
			RaresLimit:      10,
			MythicsLimit:    5,
			IgnoreSideboard: false,
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// Dir returns the tracker's configuration directory, creating it when
// missing.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".decklist-tracker")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return configDir, nil
}

func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns default config if
// the file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Daemon.Port <= 0 || c.Daemon.Port > 65535 {
		return fmt.Errorf("invalid daemon port: %d", c.Daemon.Port)
	}
	if _, err := time.ParseDuration(c.Daemon.Timeout); err != nil {
		return fmt.Errorf("invalid daemon timeout %q: %w", c.Daemon.Timeout, err)
	}
	if c.Craft.RaresLimit < 0 {
		return fmt.Errorf("rares limit cannot be negative: %d", c.Craft.RaresLimit)
	}
	if c.Craft.MythicsLimit < 0 {
		return fmt.Errorf("mythics limit cannot be negative: %d", c.Craft.MythicsLimit)
	}
	return nil
}

// DatabasePath returns the configured database path, defaulting to
// tracker.db under the config directory.
func (c *Config) DatabasePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tracker.db"), nil
}

// DaemonTimeout returns the daemon request timeout as a duration.
func (c *Config) DaemonTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Daemon.Timeout)
}
