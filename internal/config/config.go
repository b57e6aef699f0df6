// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Catalog CatalogConfig `toml:"catalog"`
	Search  SearchConfig  `toml:"search"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// CatalogConfig holds lecture catalog settings.
type CatalogConfig struct {
	URL          string `toml:"url"`           // base URL serving <resource>.json
	Resource     string `toml:"resource"`      // e.g. "2026-2" (academic term)
	SnapshotPath string `toml:"snapshot_path"` // local sqlite snapshot of the last fetch
	Snapshot     bool   `toml:"snapshot"`      // keep a snapshot for offline starts
}

// SearchConfig holds search dialog settings.
type SearchConfig struct {
	DebounceMillis int `toml:"debounce_millis"` // quiet time before the query applies
	PageSize       int `toml:"page_size"`       // results per page
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// LogConfig holds process log settings.
type LogConfig struct {
	Level string `toml:"level"` // zap level name, e.g. "info"
	Path  string `toml:"path"`  // log file; the TUI owns the terminal
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			URL:          "https://catalog.example.ac.kr/lectures",
			Resource:     "2026-2",
			SnapshotPath: defaultDataPath("catalog.db"),
			Snapshot:     true,
		},
		Search: SearchConfig{
			DebounceMillis: 250,
			PageSize:       8,
		},
		UI: UIConfig{
			Theme: "mocha",
		},
		Log: LogConfig{
			Level: "info",
			Path:  defaultDataPath("siganpyo.log"),
		},
	}
}

// defaultDataPath returns a path under the app's data directory.
func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".local", "share", "siganpyo", name)
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "siganpyo", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Catalog.SnapshotPath = expandPath(cfg.Catalog.SnapshotPath)
	cfg.Log.Path = expandPath(cfg.Log.Path)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SIGANPYO_CATALOG_URL"); v != "" {
		cfg.Catalog.URL = v
	}
	if v := os.Getenv("SIGANPYO_CATALOG_RESOURCE"); v != "" {
		cfg.Catalog.Resource = v
	}
	if v := os.Getenv("SIGANPYO_SNAPSHOT_PATH"); v != "" {
		cfg.Catalog.SnapshotPath = v
	}
	if v := os.Getenv("SIGANPYO_SEARCH_DEBOUNCE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.DebounceMillis = n
		}
	}
	if v := os.Getenv("SIGANPYO_SEARCH_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.PageSize = n
		}
	}
	if v := os.Getenv("SIGANPYO_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("SIGANPYO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SIGANPYO_LOG_PATH"); v != "" {
		cfg.Log.Path = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Catalog.URL == "" {
		return errors.New("catalog url must be set")
	}
	if c.Catalog.Resource == "" {
		return errors.New("catalog resource must be set")
	}
	if c.Catalog.Snapshot && c.Catalog.SnapshotPath == "" {
		return errors.New("snapshot_path must be set when snapshots are enabled")
	}
	if c.Search.DebounceMillis < 0 {
		return errors.New("debounce_millis cannot be negative")
	}
	if c.Search.PageSize <= 0 {
		return errors.New("page_size must be positive")
	}
	if c.Log.Path == "" {
		return errors.New("log path must be set")
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
