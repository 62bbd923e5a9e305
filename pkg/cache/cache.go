// Package cache stores computed layouts and rendered artifacts.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per key under a local directory (CLI)
//   - [RedisCache]: shared cache with native key expiry (server)
//   - [MongoCache]: shared cache with a TTL index (server)
//
// # Keys
//
// A [Keyer] derives keys from content hashes plus the options that affect
// the result, so a changed width or style never serves a stale entry:
//
//	graphHash := cache.Hash(graphJSON)
//	key := keyer.LayoutKey(graphHash, cache.LayoutKeyOpts{VizType: "sankey", Width: 800, Height: 600})
//
// [ScopedKeyer] prefixes every key, giving each API tenant its own namespace.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache is a byte store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); an error means the backend itself
// failed. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default time-to-live per entry kind.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// keyVersion is bumped whenever the layout algorithm changes output for the
// same input, orphaning old entries.
const keyVersion = "v1"

// LayoutKeyOpts are the options that change a computed layout. Style,
// curvature and currency are recorded in exported layouts, so they take
// part in the key too.
type LayoutKeyOpts struct {
	VizType   string  `json:"viz_type"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Style     string  `json:"style,omitempty"`
	Curvature float64 `json:"curvature,omitempty"`
	Currency  string  `json:"currency,omitempty"`
	Detailed  bool    `json:"detailed,omitempty"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Style     string  `json:"style,omitempty"`
	Curvature float64 `json:"curvature,omitempty"`
	Labels    bool    `json:"labels,omitempty"`
	Tooltips  bool    `json:"tooltips,omitempty"`
	Currency  string  `json:"currency,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the content hash together with its options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", keyVersion, graphHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", keyVersion, layoutHash, opts)
}

// DefaultDir returns the per-user cache directory for app, honouring
// XDG_CACHE_HOME and falling back to ~/.cache.
func DefaultDir(app string) (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, app), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", app), nil
}
