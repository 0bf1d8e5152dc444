// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/webcheck/internal/cache"
)

// Config represents the CLI configuration. Values come from a JSON file,
// then environment variables, then CLI flags; later sources win.
// All fields are optional and fall back to defaults.
type Config struct {
	// Cache
	CacheDir           string `json:"cache_dir,omitempty"`            // Directory for persistent cache entries
	MemoryCapacity     int    `json:"memory_capacity,omitempty" validate:"gte=0"`      // Max in-memory cache entries
	MemoryTTLMinutes   int    `json:"memory_ttl_minutes,omitempty" validate:"gte=0"`   // In-memory entry lifetime
	PersistentTTLHours int    `json:"persistent_ttl_hours,omitempty" validate:"gte=0"` // Persistent entry lifetime

	// Scanning
	BatchSize int `json:"batch_size,omitempty" validate:"gte=0"` // Files per directory-scan batch

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Environment variable names recognized by ApplyEnv.
const (
	envCacheDir           = "WEBCHECK_CACHE_DIR"
	envMemoryCapacity     = "WEBCHECK_MEMORY_CAPACITY"
	envMemoryTTLMinutes   = "WEBCHECK_MEMORY_TTL_MINUTES"
	envPersistentTTLHours = "WEBCHECK_PERSISTENT_TTL_HOURS"
	envBatchSize          = "WEBCHECK_BATCH_SIZE"
	envVerbose            = "WEBCHECK_VERBOSE"
)

// Load builds a Config from an optional JSON file plus environment
// variables. An empty path skips the file and uses env values only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		loaded, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func loadFile(path string) (*Config, error) {
	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from WEBCHECK_* environment variables.
// Unset or malformed values leave the field untouched.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(envCacheDir); v != "" {
		c.CacheDir = v
	}
	if v, ok := envInt(envMemoryCapacity); ok {
		c.MemoryCapacity = v
	}
	if v, ok := envInt(envMemoryTTLMinutes); ok {
		c.MemoryTTLMinutes = v
	}
	if v, ok := envInt(envPersistentTTLHours); ok {
		c.PersistentTTLHours = v
	}
	if v, ok := envInt(envBatchSize); ok {
		c.BatchSize = v
	}
	if v := os.Getenv(envVerbose); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Verbose = b
		}
	}
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// ResolvedCacheDir returns the configured cache directory, falling back
// to <user cache dir>/webcheck.
func (c *Config) ResolvedCacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine user cache directory: %w", err)
	}
	return filepath.Join(base, "webcheck"), nil
}

// CacheOptions converts the configuration into cache options. Zero
// values defer to the cache package defaults.
func (c *Config) CacheOptions() (cache.Options, error) {
	dir, err := c.ResolvedCacheDir()
	if err != nil {
		return cache.Options{}, err
	}
	return cache.Options{
		Dir:            dir,
		MemoryCapacity: c.MemoryCapacity,
		MemoryTTL:      time.Duration(c.MemoryTTLMinutes) * time.Minute,
		PersistentTTL:  time.Duration(c.PersistentTTLHours) * time.Hour,
	}, nil
}
