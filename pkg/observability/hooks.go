// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about conversions, per-node degradations and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetConvertHooks(&myConvertHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnExportStart(ctx, len(roots))
//	// ... export ...
//	observability.Pipeline().OnExportComplete(ctx, nodeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the top-level entry points.
type PipelineHooks interface {
	// Export events
	OnExportStart(ctx context.Context, roots int)
	OnExportComplete(ctx context.Context, nodeCount int, duration time.Duration, err error)

	// Create events
	OnCreateStart(ctx context.Context, roots int)
	OnCreateComplete(ctx context.Context, nodeCount int, duration time.Duration, err error)
}

// =============================================================================
// Convert Hooks
// =============================================================================

// ConvertHooks receives per-node events from the exporter and creator.
type ConvertHooks interface {
	// OnNodeSkipped records a node whose export failed.
	OnNodeSkipped(ctx context.Context, path, nodeType string, err error)

	// OnFallback records a node that was built in a degraded form. Code is
	// the error code of the degradation.
	OnFallback(ctx context.Context, path, nodeType, code string)

	// OnFontLoad records a font load attempt.
	OnFontLoad(ctx context.Context, font string, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnExportStart(context.Context, int)                          {}
func (NoopPipelineHooks) OnExportComplete(context.Context, int, time.Duration, error) {}
func (NoopPipelineHooks) OnCreateStart(context.Context, int)                          {}
func (NoopPipelineHooks) OnCreateComplete(context.Context, int, time.Duration, error) {}

// NoopConvertHooks is a no-op implementation of ConvertHooks.
type NoopConvertHooks struct{}

func (NoopConvertHooks) OnNodeSkipped(context.Context, string, string, error) {}
func (NoopConvertHooks) OnFallback(context.Context, string, string, string)   {}
func (NoopConvertHooks) OnFontLoad(context.Context, string, error)            {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	convertHooks  ConvertHooks  = NoopConvertHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any conversion.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetConvertHooks registers custom per-node hooks.
func SetConvertHooks(h ConvertHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		convertHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Convert returns the registered per-node hooks.
func Convert() ConvertHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return convertHooks
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
	pipelineHooks = NoopPipelineHooks{}
	convertHooks = NoopConvertHooks{}
	cacheHooks = NoopCacheHooks{}
}
