// Package config loads the application configuration from TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/stageside/bracketeer/pkg/layout"
)

// Config represents the application configuration.
type Config struct {
	// Layout geometry overrides
	Layout LayoutConfig `toml:"layout"`

	// Cache configuration
	Cache CacheConfig `toml:"cache"`

	// HTTP server configuration
	Server ServerConfig `toml:"server"`

	// MongoDB match source configuration
	Mongo MongoConfig `toml:"mongo"`
}

// LayoutConfig overrides the design-resolution layout geometry.
// Zero values fall back to the built-in defaults.
type LayoutConfig struct {
	RoundWidth       float64 `toml:"round_width"`
	RoundGap         float64 `toml:"round_gap"`
	MatchHeight      float64 `toml:"match_height"`
	MatchVerticalGap float64 `toml:"match_vertical_gap"`
	MinScale         float64 `toml:"min_scale"`
}

// CacheConfig contains caching settings.
type CacheConfig struct {
	Dir string `toml:"dir"` // Artifact cache directory ("" = XDG default)
	TTL string `toml:"ttl"` // Cache TTL (e.g., "24h")

	// RedisAddr enables the Redis cache backend when non-empty;
	// otherwise the file cache is used.
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// ServerConfig contains HTTP API settings.
type ServerConfig struct {
	Addr            string `toml:"addr"`             // Listen address (e.g., ":8080")
	ReadTimeout     string `toml:"read_timeout"`     // Request read timeout
	ShutdownTimeout string `toml:"shutdown_timeout"` // Graceful shutdown window
}

// MongoConfig contains the MongoDB match source settings.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			RoundWidth:       layout.DefaultRoundWidth,
			RoundGap:         layout.DefaultRoundGap,
			MatchHeight:      layout.DefaultMatchHeight,
			MatchVerticalGap: layout.DefaultMatchVerticalGap,
			MinScale:         layout.MinScaleFactor,
		},
		Cache: CacheConfig{
			TTL: "24h",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     "10s",
			ShutdownTimeout: "15s",
		},
	}
}

// DefaultPath returns the default config file location
// (~/.bracketeer/config.toml).
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".bracketeer", "config.toml"), nil
}

// Load reads the configuration at path, layering it over the defaults.
// An empty path means the default location; a missing file returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
		return fmt.Errorf("invalid cache TTL %q: %w", c.Cache.TTL, err)
	}

	if _, err := time.ParseDuration(c.Server.ReadTimeout); err != nil {
		return fmt.Errorf("invalid read timeout %q: %w", c.Server.ReadTimeout, err)
	}

	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown timeout %q: %w", c.Server.ShutdownTimeout, err)
	}

	if c.Layout.MinScale < 0 || c.Layout.MinScale > layout.MaxScaleFactor {
		return fmt.Errorf("min scale %g outside [0, %g]", c.Layout.MinScale, layout.MaxScaleFactor)
	}

	for name, v := range map[string]float64{
		"round_width":        c.Layout.RoundWidth,
		"round_gap":          c.Layout.RoundGap,
		"match_height":       c.Layout.MatchHeight,
		"match_vertical_gap": c.Layout.MatchVerticalGap,
	} {
		if v < 0 {
			return fmt.Errorf("layout %s cannot be negative: %g", name, v)
		}
	}

	return nil
}

// CacheTTL returns the parsed cache TTL. Validate must have passed.
func (c *Config) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// ReadTimeout returns the parsed server read timeout. Validate must
// have passed.
func (c *Config) ReadTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ReadTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// ShutdownTimeout returns the parsed graceful shutdown window. Validate
// must have passed.
func (c *Config) ShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// Dimensions builds the layout dimensions for a container, applying any
// configured overrides on top of the defaults.
func (c *Config) Dimensions(container layout.Size) layout.Dimensions {
	dims := layout.DefaultDimensions(container)
	if c.Layout.RoundWidth > 0 {
		dims.RoundWidth = c.Layout.RoundWidth
	}
	if c.Layout.RoundGap > 0 {
		dims.RoundGap = c.Layout.RoundGap
	}
	if c.Layout.MatchHeight > 0 {
		dims.MatchHeight = c.Layout.MatchHeight
	}
	if c.Layout.MatchVerticalGap > 0 {
		dims.MatchVerticalGap = c.Layout.MatchVerticalGap
	}
	return dims
}
