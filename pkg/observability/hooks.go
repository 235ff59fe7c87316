// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about extraction runs, graph-store
// operations, and cache activity.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetExtractHooks(&myExtractHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Extract().OnExtractStart(ctx, source)
//	// ... run extraction ...
//	observability.Extract().OnExtractComplete(ctx, source, nodes, links, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// ExtractHooks receives events from the extraction pipeline.
type ExtractHooks interface {
	// OnExtractStart records the beginning of an extraction run.
	OnExtractStart(ctx context.Context, source string)

	// OnExtractComplete records the end of an extraction run.
	OnExtractComplete(ctx context.Context, source string, nodes, links int, duration time.Duration, err error)

	// OnUnresolved records link ids left unresolved at the fixed point.
	OnUnresolved(ctx context.Context, source string, ids []int)
}

// StoreHooks receives events from graph-store and archive operations.
type StoreHooks interface {
	// OnMergeStart records the beginning of a store merge.
	OnMergeStart(ctx context.Context, target string, nodes, links int)

	// OnMergeComplete records the end of a store merge.
	OnMergeComplete(ctx context.Context, target string, duration time.Duration, err error)

	// OnVerify records the outcome of a post-merge count verification.
	OnVerify(ctx context.Context, target string, ok bool)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopExtractHooks is a no-op implementation of ExtractHooks.
type NoopExtractHooks struct{}

func (NoopExtractHooks) OnExtractStart(context.Context, string) {}
func (NoopExtractHooks) OnExtractComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopExtractHooks) OnUnresolved(context.Context, string, []int) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnMergeStart(context.Context, string, int, int)              {}
func (NoopStoreHooks) OnMergeComplete(context.Context, string, time.Duration, error) {}
func (NoopStoreHooks) OnVerify(context.Context, string, bool)                      {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	extractHooks ExtractHooks = NoopExtractHooks{}
	storeHooks   StoreHooks   = NoopStoreHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetExtractHooks registers custom extraction hooks.
// Call once at application startup before running extractions.
func SetExtractHooks(h ExtractHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		extractHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Extract returns the registered extraction hooks.
func Extract() ExtractHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return extractHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	extractHooks = NoopExtractHooks{}
	storeHooks = NoopStoreHooks{}
	cacheHooks = NoopCacheHooks{}
}
