// Package cache provides the layout result cache and its backends.
//
// Layout computation is pure and deterministic, so the cache is purely an
// optimization: a lost entry or a lost write race only costs recomputation,
// never correctness. Backends therefore need nothing beyond atomic get/set/
// delete on a single keyspace.
//
// Backends:
//   - memory: bounded in-process cache with TTL and oldest-first eviction
//   - file: directory-backed cache for CLI usage
//   - redis: shared cache for multi-instance deployments
//   - mongo: shared cache where a document store is already provisioned
//   - null: caching disabled
//
// Keys are built by a Keyer so every input that affects output (content
// identity, preset/template, display configuration, context, currency) is
// part of the key and any change invalidates stale entries automatically.
package cache

import (
	"context"
	"errors"
	"time"
)

// Default TTLs. Layout geometry and rendered artifacts age out on the order
// of an hour; content changes invalidate earlier via the content hash in the
// key.
const (
	TTLLayout   = time.Hour
	TTLArtifact = time.Hour
)

// DefaultCapacity bounds the in-memory backend when the host does not
// configure one.
const DefaultCapacity = 1024

// ErrCacheMiss is returned by helpers that treat a miss as an error.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the minimal backend contract.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present
	// and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
