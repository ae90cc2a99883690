// Package cache stores rendered snapshot artifacts between runs.
//
// Snapshots are deterministic for a given seed, configuration and set of
// options, so the CLI can skip the frame loop entirely when the same
// snapshot was rendered before. Keys are derived with [Key] from everything
// that influences the output.
//
// Two backends are provided: [FileCache] for the CLI and [NullCache] when
// caching is disabled.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}
