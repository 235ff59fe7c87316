// Package cache provides extraction-result caching for vuegraph.
//
// Extracting a large mind map is cheap, but downstream consumers (tables,
// rendering, store loads) often run several times against the same document.
// The cache stores the serialized graph keyed by a hash of the document
// bytes, so repeat commands skip parsing and extraction entirely.
//
// Three backends are provided:
//   - FileCache: XDG cache directory, for CLI usage
//   - RedisCache: shared cache for the HTTP server
//   - NullCache: no-op, for tests and --no-cache
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by helpers that treat a miss as an error.
// The Cache interface itself signals misses via its boolean return.
var ErrCacheMiss = errors.New("cache miss")

// TTLGraph is how long extracted graphs stay cached. Source documents are
// keyed by content hash, so stale entries are only ever dead weight, never
// wrong answers.
const TTLGraph = 7 * 24 * time.Hour

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The boolean reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys for the extraction pipeline.
type Keyer interface {
	// GraphKey returns the key for an extracted graph, given the content
	// hash of the source document and whether strict resolution was on
	// (strict mode changes what the pipeline returns, so it keys separately).
	GraphKey(contentHash string, strict bool) string
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey implements Keyer.
func (DefaultKeyer) GraphKey(contentHash string, strict bool) string {
	return hashKey("graph", contentHash, strict)
}

// ScopedKeyer wraps a Keyer with a prefix so independent consumers (e.g.
// HTTP clients of the serve endpoint) get isolated namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// GraphKey implements Keyer.
func (k *ScopedKeyer) GraphKey(contentHash string, strict bool) string {
	return k.prefix + k.inner.GraphKey(contentHash, strict)
}

// NullCache is a no-op cache that never stores anything.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return &NullCache{} }

// Get always returns a cache miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error { return nil }

// Close does nothing.
func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
