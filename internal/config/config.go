// Package config loads RwaDealTracker configuration from an optional YAML
// file, applies environment variable overrides, and owns logger setup.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables recognized as overrides.
const (
	EnvCacheDir         = "RWADEAL_CACHE_DIR"
	EnvCacheEnabled     = "RWADEAL_CACHE_ENABLED"
	EnvSearchTTLSeconds = "RWADEAL_CACHE_SEARCH_TTL_SECONDS"
	EnvDetailTTLSeconds = "RWADEAL_CACHE_DETAIL_TTL_SECONDS"
	EnvLogLevel         = "RWADEAL_LOG_LEVEL"
	EnvLogFile          = "RWADEAL_LOG_FILE"
)

// TTL defaults and bounds. Search results go stale quickly; per-property
// detail pages change rarely.
const (
	DefaultSearchTTLSeconds = 3600
	DefaultDetailTTLSeconds = 86400
	MinTTLSeconds           = 60
	MaxTTLSeconds           = 604800
)

// ErrInvalidTTL is returned when a configured TTL is outside the valid range.
var ErrInvalidTTL = fmt.Errorf("TTL must be between %d and %d seconds", MinTTLSeconds, MaxTTLSeconds)

// CacheConfig controls both cache tiers.
type CacheConfig struct {
	// Dir is the persistent tier directory. Empty means <user cache dir>/rwadealtracker.
	Dir string `yaml:"dir"`

	// Enabled toggles both tiers. Disabled caches behave as permanent misses.
	Enabled bool `yaml:"enabled"`

	// SearchTTLSeconds is the TTL for source search results.
	SearchTTLSeconds int `yaml:"search_ttl_seconds"`

	// DetailTTLSeconds is the TTL for per-property detail fetches.
	DetailTTLSeconds int `yaml:"detail_ttl_seconds"`
}

// LoggingConfig controls zerolog output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	File   string `yaml:"file"`
	ToFile bool   `yaml:"to_file"`
}

// SourceConfig configures one feed adapter.
type SourceConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Config is the root configuration document.
type Config struct {
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`

	Sources struct {
		Residential SourceConfig `yaml:"residential"`
		Commercial  SourceConfig `yaml:"commercial"`
	} `yaml:"sources"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{
		Cache: CacheConfig{
			Enabled:          true,
			SearchTTLSeconds: DefaultSearchTTLSeconds,
			DetailTTLSeconds: DefaultDetailTTLSeconds,
		},
		Logging: LoggingConfig{Level: "info"},
	}
	cfg.Sources.Residential.TimeoutSeconds = 10
	cfg.Sources.Commercial.TimeoutSeconds = 10
	return cfg
}

// Load reads configuration from path (optional), layering environment
// variable overrides on top of file values and defaults. A missing file is
// not an error; a malformed file is.
func Load(path string) (*Config, error) {
	// Best-effort .env loading for local development.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path is operator-supplied config
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks TTL bounds.
func (c *Config) Validate() error {
	for _, ttl := range []int{c.Cache.SearchTTLSeconds, c.Cache.DetailTTLSeconds} {
		if ttl < MinTTLSeconds || ttl > MaxTTLSeconds {
			return fmt.Errorf("%w: got %d", ErrInvalidTTL, ttl)
		}
	}
	return nil
}

// CacheDir resolves the persistent cache directory, falling back to the
// platform user cache dir when unset.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user cache dir: %w", err)
	}
	return filepath.Join(base, "rwadealtracker"), nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvCacheDir); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv(EnvCacheEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Cache.Enabled = enabled
		}
	}
	if ttl := ttlFromEnv(EnvSearchTTLSeconds); ttl > 0 {
		cfg.Cache.SearchTTLSeconds = ttl
	}
	if ttl := ttlFromEnv(EnvDetailTTLSeconds); ttl > 0 {
		cfg.Cache.DetailTTLSeconds = ttl
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Logging.File = v
		cfg.Logging.ToFile = true
	}
}

// ttlFromEnv reads a TTL override, returning 0 when unset or out of range.
func ttlFromEnv(name string) int {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	ttl, err := strconv.Atoi(v)
	if err != nil || ttl < MinTTLSeconds || ttl > MaxTTLSeconds {
		return 0
	}
	return ttl
}
