// Package cache stores extracted archive metadata between runs.
//
// Reading PKGINFO and BUILDINFO out of a compressed archive means
// decompressing a tar stream, which dominates run time on large package
// directories. The cache keys each archive by its path, size, and
// modification time so unchanged archives are served without touching the
// archive itself.
//
// Two implementations are provided:
//   - [FileCache] stores entries as JSON files under a directory
//   - [NullCache] never stores anything (used with --no-cache)
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was present.
	// Expired and corrupt entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// RecordsKey returns the key for the metadata records of an archive.
	RecordsKey(path string, size int64, modTime time.Time) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RecordsKey hashes the archive's path, size, and modification time.
// Touching or replacing an archive therefore invalidates its entry.
func (DefaultKeyer) RecordsKey(path string, size int64, modTime time.Time) string {
	return hashKey("records", path, size, modTime.UnixNano())
}
