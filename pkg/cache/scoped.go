package cache

import "time"

// ScopedKeyer wraps a Keyer with a prefix.
// The CLI scopes keys by record format so entries written by an older
// release are never decoded by a newer one.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RecordsKey generates a prefixed records key.
func (k *ScopedKeyer) RecordsKey(path string, size int64, modTime time.Time) string {
	return k.prefix + k.inner.RecordsKey(path, size, modTime)
}
