// Package config loads inventario settings from the YAML config file,
// environment variables (optionally from a .env file) and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/bekirdag/inventario/internal/inventory"
	"github.com/bekirdag/inventario/internal/storage"
)

const appDirName = "inventario"

// Config is the merged application configuration.
type Config struct {
	DBPath           string   `yaml:"db_path,omitempty"`
	StorageKey       string   `yaml:"storage_key,omitempty"`
	ThemeKey         string   `yaml:"theme_key,omitempty"`
	QuotaBytes       int64    `yaml:"quota_bytes,omitempty"`
	Compress         *bool    `yaml:"compress,omitempty"`
	KeepEmptySheets  bool     `yaml:"keep_empty_sheets,omitempty"`
	ExcludedSheets   []string `yaml:"excluded_sheets,omitempty"`
	SearchDebounceMs int      `yaml:"search_debounce_ms,omitempty"`
	Language         string   `yaml:"language,omitempty"`
	TelemetryPath    string   `yaml:"telemetry_path,omitempty"`
	LogPath          string   `yaml:"log_path,omitempty"`
	LastImportDir    string   `yaml:"last_import_dir,omitempty"`

	path string
}

// Load reads path (or the default location when empty), then applies
// INVENTARIO_* environment overrides and fills defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if strings.TrimSpace(path) == "" {
		path = filepath.Join(ResolveDir(), "config.yaml")
	}
	cfg := &Config{path: path}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		cfg.path = path
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config back to the file it was loaded from.
func (c *Config) Save() error {
	if c == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}

// Path is the config file location.
func (c *Config) Path() string { return c.path }

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("INVENTARIO_DB")); v != "" {
		c.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("INVENTARIO_STORAGE_KEY")); v != "" {
		c.StorageKey = v
	}
	if v := strings.TrimSpace(os.Getenv("INVENTARIO_LANG")); v != "" {
		c.Language = v
	}
	if v := strings.TrimSpace(os.Getenv("INVENTARIO_EXCLUDED_SHEETS")); v != "" {
		c.ExcludedSheets = splitList(v)
	}
	if v := strings.TrimSpace(os.Getenv("INVENTARIO_QUOTA_BYTES")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("INVENTARIO_QUOTA_BYTES: %w", err)
		}
		c.QuotaBytes = n
	}
	if v := strings.TrimSpace(os.Getenv("INVENTARIO_DEBOUNCE_MS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("INVENTARIO_DEBOUNCE_MS: %w", err)
		}
		c.SearchDebounceMs = n
	}
	if v, ok := getEnvBool("INVENTARIO_COMPRESS"); ok {
		c.Compress = &v
	}
	if v, ok := getEnvBool("INVENTARIO_KEEP_EMPTY_SHEETS"); ok {
		c.KeepEmptySheets = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	dir := ResolveDir()
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dir, "inventario.sqlite")
	}
	if c.StorageKey == "" {
		c.StorageKey = inventory.DefaultDataKey
	}
	if c.ThemeKey == "" {
		c.ThemeKey = inventory.DefaultThemeKey
	}
	if c.QuotaBytes == 0 {
		c.QuotaBytes = storage.DefaultQuota
	}
	if c.Compress == nil {
		on := true
		c.Compress = &on
	}
	if c.ExcludedSheets == nil {
		c.ExcludedSheets = append([]string(nil), inventory.DefaultExcludedSheets...)
	}
	if c.SearchDebounceMs <= 0 {
		c.SearchDebounceMs = 250
	}
	if c.Language == "" {
		c.Language = "pt"
	}
	if c.TelemetryPath == "" {
		c.TelemetryPath = filepath.Join(dir, "ui-events.ndjson")
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(dir, "inventario.log")
	}
}

// StoreOptions translates the config into inventory store options.
func (c *Config) StoreOptions() inventory.Options {
	return inventory.Options{
		DataKey:         c.StorageKey,
		ThemeKey:        c.ThemeKey,
		Compress:        c.Compress != nil && *c.Compress,
		KeepEmptySheets: c.KeepEmptySheets,
		Excluded:        inventory.NewExcludedSet(c.ExcludedSheets...),
	}
}

// SearchDebounce is the quiet period before a search runs.
func (c *Config) SearchDebounce() time.Duration {
	return time.Duration(c.SearchDebounceMs) * time.Millisecond
}

// Labels returns the label set for the configured language.
func (c *Config) Labels() inventory.Labels {
	return inventory.LabelsFor(c.Language)
}

// ResolveDir is the per-user directory for config, data and logs.
func ResolveDir() string {
	if dir := strings.TrimSpace(os.Getenv("INVENTARIO_HOME")); dir != "" {
		return dir
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, appDirName)
}

func getEnvBool(key string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false, false
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
