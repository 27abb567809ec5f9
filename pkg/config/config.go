// Package config loads tabsmith settings from a TOML file.
//
// Every field has a default, so a missing file is not an error when the
// default location is used. Command-line flags override file values; the
// CLI applies them after Load.
//
//	[canvas]
//	width = 1300
//	height = 300
//
//	[layout]
//	max_per_row = 59
//
//	[storage]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tabsmith/pkg/errors"
	"github.com/matzehuels/tabsmith/pkg/tab"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNone   = "none"
)

// Config is the root of the configuration file.
type Config struct {
	Canvas    Canvas    `toml:"canvas"`
	Layout    Layout    `toml:"layout"`
	Theme     tab.Theme `toml:"theme"`
	Storage   Storage   `toml:"storage"`
	Cache     Cache     `toml:"cache"`
	Server    Server    `toml:"server"`
	Fretboard Fretboard `toml:"fretboard"`
}

// Canvas is the pixel size of the tab surface.
type Canvas struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Layout tunes row wrapping.
type Layout struct {
	MaxPerRow int `toml:"max_per_row"`
}

// Storage selects where tab documents are kept.
type Storage struct {
	Backend         string `toml:"backend"`
	Dir             string `toml:"dir"`
	RedisURL        string `toml:"redis_url"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Cache selects where rendered artifacts are cached.
type Cache struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

// Server configures the HTTP editing API.
type Server struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
	ReadTimeout    Duration `toml:"read_timeout"`
	WriteTimeout   Duration `toml:"write_timeout"`
}

// Fretboard configures the scale visualizer.
type Fretboard struct {
	Width  float64  `toml:"width"`
	Height float64  `toml:"height"`
	Flash  Duration `toml:"flash"`
}

// Duration is a time.Duration written as a string ("300ms", "24h").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: Canvas{Width: tab.ReferenceWidth, Height: tab.ReferenceHeight},
		Layout: Layout{MaxPerRow: tab.DefaultMaxPerRow},
		Theme:  tab.DefaultTheme(),
		Storage: Storage{
			Backend:         BackendFile,
			MongoDatabase:   "tabsmith",
			MongoCollection: "tabs",
		},
		Cache: Cache{
			Backend: BackendFile,
			TTL:     Duration{24 * time.Hour},
		},
		Server: Server{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			ReadTimeout:    Duration{15 * time.Second},
			WriteTimeout:   Duration{30 * time.Second},
		},
		Fretboard: Fretboard{
			Width:  tab.ReferenceWidth,
			Height: tab.ReferenceHeight,
			Flash:  Duration{300 * time.Millisecond},
		},
	}
}

// Load reads the file at path on top of the defaults. An empty path means
// DefaultPath, and a missing default file yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidFormat, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "canvas size must be positive, got %vx%v", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Layout.MaxPerRow < 2 {
		return errors.New(errors.ErrCodeInvalidInput, "layout.max_per_row must be at least 2, got %d", c.Layout.MaxPerRow)
	}
	if c.Theme.HighlightAlpha < 0 || c.Theme.HighlightAlpha > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "theme.highlight_alpha must be within 0..1")
	}
	storage := []string{BackendMemory, BackendFile, BackendRedis, BackendMongo}
	if !slices.Contains(storage, c.Storage.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "storage.backend %q not one of %s", c.Storage.Backend, strings.Join(storage, ", "))
	}
	if c.Storage.Backend == BackendRedis && c.Storage.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidInput, "storage.redis_url is required for the redis backend")
	}
	if c.Storage.Backend == BackendMongo && c.Storage.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidInput, "storage.mongo_uri is required for the mongo backend")
	}
	caches := []string{BackendFile, BackendRedis, BackendNone}
	if !slices.Contains(caches, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend %q not one of %s", c.Cache.Backend, strings.Join(caches, ", "))
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache.redis_url is required for the redis backend")
	}
	if c.Fretboard.Width <= 0 || c.Fretboard.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "fretboard size must be positive")
	}
	return nil
}

// Metrics returns tab layout metrics for the configured canvas.
func (c Config) Metrics() tab.Metrics {
	m := tab.ForSurface(c.Canvas.Width, c.Canvas.Height)
	m.MaxPerRow = c.Layout.MaxPerRow
	return m
}

// DefaultPath returns $XDG_CONFIG_HOME/tabsmith/config.toml, falling back
// to ~/.config/tabsmith/config.toml.
func DefaultPath() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir returns the artifact cache directory (~/.cache/tabsmith).
func CacheDir() (string, error) { return xdgDir("XDG_CACHE_HOME", ".cache") }

// DataDir returns the document directory (~/.local/share/tabsmith/tabs).
func DataDir() (string, error) {
	dir, err := xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tabs"), nil
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, "tabsmith"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, "tabsmith"), nil
}
