// Package cache provides byte caching with pluggable backends.
//
// Flowgrid uses the cache for one thing only: probed intrinsic media
// dimensions, which are immutable facts about a media file. Layouts are
// deliberately never cached; every layout request is a fresh, pure
// computation.
//
// # Backends
//
//   - [FileCache]: directory-backed, for CLI usage
//   - [RedisCache]: Redis-backed, for multi-instance server deployments
//   - [NullCache]: no-op, for tests or --no-cache
//
// Keys are produced by a [Keyer] so that all backends share one
// namespace scheme, and a [ScopedKeyer] can isolate tenants on shared
// backends.
package cache

import (
	"context"
	"time"
)

// TTL values for cached entries.
const (
	// TTLProbe is the lifetime of a probed dimension entry. Entries are
	// additionally keyed by file size and modification time, so a long
	// TTL is safe.
	TTLProbe = 30 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ProbeKeyOpts carries the file attributes that invalidate a probe
// entry when the underlying media changes.
type ProbeKeyOpts struct {
	Size    int64
	ModTime int64 // Unix seconds
}

// Keyer generates cache keys.
type Keyer interface {
	// ProbeKey generates a key for a probed media dimension entry.
	ProbeKey(source string, opts ProbeKeyOpts) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ProbeKey generates a key for a probed media dimension entry.
func (k *DefaultKeyer) ProbeKey(source string, opts ProbeKeyOpts) string {
	return hashKey("probe", source, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation on
// shared backends (e.g. one Redis instance serving several galleries).
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ProbeKey generates a prefixed probe key.
func (k *ScopedKeyer) ProbeKey(source string, opts ProbeKeyOpts) string {
	return k.prefix + k.inner.ProbeKey(source, opts)
}
