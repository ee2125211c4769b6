// Package cache stores rendered artifacts between runs.
//
// # Overview
//
// Rendering is deterministic: the same payload, error correction level,
// style and output options always produce the same bytes. The pipeline
// therefore keys artifacts by a hash of those inputs and keeps them in a
// [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared cache backed by github.com/redis/go-redis/v9
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// # Keys
//
// A [Keyer] builds keys. [DefaultKeyer] hashes the inputs with SHA-256;
// [ScopedKeyer] prefixes another keyer's keys so several tenants or
// versions can share one backend.
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(cache.ArtifactKeyOpts{
//	    Payload: "HELLO", ECC: "H", StyleHash: h, Format: "svg",
//	})
//	if data, hit, err := c.Get(ctx, key); err == nil && hit {
//	    return data
//	}
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry type.
const (
	// TTLArtifact is how long rendered SVG and PNG bytes are kept.
	TTLArtifact = 30 * 24 * time.Hour

	// TTLMatrix is how long encoded module grids are kept.
	TTLMatrix = 30 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero keeps the entry forever.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
