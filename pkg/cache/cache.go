// Package cache memoizes layouts and rendered artifacts.
//
// # Backends
//
//   - [NullCache]: stores nothing; used with --no-cache
//   - [MemoryCache]: in-process map with TTL, for tests and long-running callers
//   - [FileCache]: zstd-compressed entries under a directory, the CLI default
//   - [RedisCache]: a shared Redis instance, for teams rendering the same docs
//
// All backends are safe for concurrent use. A miss is reported with
// ok == false and a nil error; errors are reserved for backend failures.
//
// # Keys
//
// A [Keyer] derives keys from content hashes, never from file names, so
// editing a definition invalidates its entries and identical definitions
// share them:
//
//	defHash := cache.Hash(doc.Source)
//	key := keyer.LayoutKey(defHash, cache.LayoutKeyOpts{VizType: "flow", Geometry: geo})
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value for key. ok is false on a miss or expiry.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Backend names a cache implementation.
type Backend string

const (
	BackendNone   Backend = "none"
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendRedis  Backend = "redis"
)

// Backends lists every backend name in the order they are documented.
var Backends = []Backend{BackendNone, BackendMemory, BackendFile, BackendRedis}
