// Package cache provides pluggable byte caches for pipeline artifacts.
//
// Chart layout is cheap and deterministic, so geometry is never cached.
// The expensive step is format conversion through rsvg-convert, an
// external process; the pipeline caches converted PNG and PDF bytes keyed
// by the hash of the SVG they were produced from. Animated runs convert
// one artifact per frame, so repeated renders of the same document hit
// the cache frame by frame.
//
// Three implementations are provided:
//
//   - FileCache persists entries under a directory, for CLI runs
//   - MemoryCache holds entries in process, for previews and tests
//   - NullCache stores nothing, for disabling caching
package cache

import (
	"context"
	"time"
)

// TTLArtifact bounds how long converted artifacts stay valid. Conversions
// are deterministic for a given librsvg install, so the TTL mainly caps
// disk usage.
const TTLArtifact = 30 * 24 * time.Hour

// Cache stores byte values under string keys with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero or less means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
