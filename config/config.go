// Package config loads orbitsave configuration: defaults, then a YAML
// file, then ORBITX_* environment overrides, each layer only touching the
// keys it names.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full orbitsave configuration.
type Config struct {
	// Root is the simulator install root; saves live under
	// <root>/data/saves. Empty means detect from the executable
	// location at startup.
	Root string `yaml:"root"`

	Catalog CatalogConfig `yaml:"catalog"`
	Watch   WatchConfig   `yaml:"watch"`
	Log     LogConfig     `yaml:"log"`
}

// CatalogConfig configures the save catalog database.
type CatalogConfig struct {
	// Path of the SQLite file. Empty means <root>/data/catalog.db.
	Path string `yaml:"path"`
}

// WatchConfig tunes the saves-directory watcher.
type WatchConfig struct {
	Interval time.Duration `yaml:"interval"`
	Debounce time.Duration `yaml:"debounce"`
}

// LogConfig configures the logger stack.
type LogConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
	File  string `yaml:"file"`  // optional JSON-lines sink
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Watch: WatchConfig{
			Interval: 2 * time.Second,
			Debounce: 500 * time.Millisecond,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds the effective configuration. The YAML layer is skipped when
// path is empty, so `Load("")` gives defaults plus environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("ORBITX_ROOT"); v != "" {
		c.Root = v
	}
	if v := os.Getenv("ORBITX_CATALOG_DB"); v != "" {
		c.Catalog.Path = v
	}
	if v := os.Getenv("ORBITX_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ORBITX_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("ORBITX_WATCH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: ORBITX_WATCH_INTERVAL: %w", err)
		}
		c.Watch.Interval = d
	}
	if v := os.Getenv("ORBITX_WATCH_DEBOUNCE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: ORBITX_WATCH_DEBOUNCE: %w", err)
		}
		c.Watch.Debounce = d
	}
	return nil
}

func (c *Config) validate() error {
	if c.Watch.Interval <= 0 {
		return fmt.Errorf("config: watch interval must be positive, got %s", c.Watch.Interval)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("config: watch debounce must not be negative, got %s", c.Watch.Debounce)
	}
	return nil
}

// CatalogPath returns the effective catalog database path under root.
func (c *Config) CatalogPath(root string) string {
	if c.Catalog.Path != "" {
		return c.Catalog.Path
	}
	return filepath.Join(root, "data", "catalog.db")
}
