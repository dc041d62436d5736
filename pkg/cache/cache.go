// Package cache stores rendered export artifacts keyed by the content that
// produced them.
//
// Rendering through Graphviz or rsvg-convert is slow compared to settling a
// layout, so the CLI caches artifact bytes under a key derived from the
// settled snapshot and the render options. A layout that settles to the same
// snapshot is exported from the cache.
//
// Two implementations are provided: [FileCache] for the CLI (one file per
// entry under the user's cache directory) and [NullCache] when caching is
// disabled.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Removing a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}
