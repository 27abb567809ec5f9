// Package cache provides the byte-level caches used for rendered tab
// artifacts, together with the key scheme that addresses them.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: raw artifacts behind an expiry header on local disk, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: never stores anything, for tests and --no-cache
//
// Keys are produced by a [Keyer] so that every layer agrees on how a grid
// and its render options map to a cache entry.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered artifacts are kept.
const DefaultTTL = 24 * time.Hour

// Cache stores opaque byte values under string keys.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A zero ttl means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts are the options that change element geometry.
type LayoutKeyOpts struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	MaxPerRow int     `json:"max_per_row"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	MaxPerRow int     `json:"max_per_row"`
	Theme     string  `json:"theme,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey addresses the computed geometry of a grid.
	LayoutKey(gridHash string, opts LayoutKeyOpts) string
	// ArtifactKey addresses one rendered output of a grid.
	ArtifactKey(gridHash string, opts ArtifactKeyOpts) string
	// DocumentKey addresses a stored tab document.
	DocumentKey(id string) string
}

// DefaultKeyer is the key scheme used by the CLI and the server.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(gridHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", gridHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(gridHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", gridHash, opts)
}

// DocumentKey returns "doc:<id>".
func (DefaultKeyer) DocumentKey(id string) string { return "doc:" + id }

var _ Keyer = DefaultKeyer{}

// NullCache never stores anything. Every Get is a miss.
type NullCache struct{}

// NewNullCache returns a cache for --no-cache runs and tests.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Close() error { return nil }
