// Package cache stores normalized documents and rendered outlines between runs.
//
// A [Cache] is a byte store with per-entry TTLs. [FileCache] backs the CLI,
// [NullCache] disables caching. Keys come from a [Keyer], which hashes the
// input together with every option that affects the output, so entries made
// under different settings never collide.
//
//	c, err := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().DocumentKey(cache.Hash(input), opts)
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache is a key/value byte store.
//
// A miss is reported as hit == false with a nil error. Errors are reserved for
// storage failures; callers treat them as misses.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes.
const (
	// TTLDocument is the lifetime of a normalized document.
	TTLDocument = 7 * 24 * time.Hour

	// TTLOutline is the lifetime of a rendered outline.
	TTLOutline = 30 * 24 * time.Hour
)

// Key types reported to observability hooks.
const (
	KeyTypeDocument = "document"
	KeyTypeOutline  = "outline"
)
