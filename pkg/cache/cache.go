// Package cache provides caching for layout computation and rendered
// artifacts.
//
// Two layers coexist:
//
//   - Memo: the in-process memoization arena used directly by the layout
//     pipeline. It holds computed Go values (round groupings, position
//     slices, scaling results) keyed by content fingerprints, bounded to
//     a fixed capacity with oldest-first eviction.
//   - Cache: byte-oriented storage for serialized layouts and rendered
//     artifacts across process boundaries, with file, Redis, and null
//     backends. Used by the pipeline Runner in CLI and server modes.
//
// Keys for the byte layer are produced by a Keyer so that CLI, server,
// and tests agree on key construction.
package cache

import (
	"context"
	"time"
)

// Cache is the byte-oriented storage interface for serialized layouts
// and rendered artifacts.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLs for the byte cache layers. Layouts are pure functions of their
// inputs, so these bound storage growth rather than staleness.
const (
	// TTLLayout is how long serialized layout results are kept.
	TTLLayout = 24 * time.Hour

	// TTLArtifact is how long rendered artifacts (SVG, PNG, DOT) are kept.
	TTLArtifact = 24 * time.Hour
)
