package index

import (
	"maps"
	"slices"

	"github.com/matzehuels/archdeps/pkg/pkgid"
	"github.com/matzehuels/archdeps/pkg/set"
)

// Granularity selects which identifier form keys an index.
type Granularity int

const (
	// Name keys by bare package name.
	Name Granularity = iota
	// NameVersion keys by name-version-build.
	NameVersion
	// Full keys by name-version-build-arch.
	Full
)

// Granularities lists every granularity, coarsest first.
var Granularities = []Granularity{Name, NameVersion, Full}

// Key renders id at granularity g.
func (g Granularity) Key(id pkgid.ID) string {
	switch g {
	case NameVersion:
		return id.NameVersion()
	case Full:
		return id.String()
	default:
		return id.Name
	}
}

// String returns the granularity's short label.
func (g Granularity) String() string {
	switch g {
	case NameVersion:
		return "pkg-ver"
	case Full:
		return "pkg-ver-pfm"
	default:
		return "pkg"
	}
}

// Index maps a package name to a set of related package names. As a
// reverse index the values are the dependents of the key; as a forward
// index they are the key's own dependencies.
//
// Index is not safe for concurrent mutation.
type Index map[string]set.Set

// New returns an empty index.
func New() Index { return make(Index) }

// AddEdge records that dependent depends on dependedUpon. Adding the same
// pair twice leaves the index unchanged.
func (ix Index) AddEdge(dependedUpon, dependent string) {
	s, ok := ix[dependedUpon]
	if !ok {
		s = set.New()
		ix[dependedUpon] = s
	}
	s.Add(dependent)
}

// Put replaces the values stored under key.
func (ix Index) Put(key string, values set.Set) {
	ix[key] = values.Clone()
}

// Get returns the values under key, or nil.
func (ix Index) Get(key string) set.Set { return ix[key] }

// Keys returns the keys in lexical order.
func (ix Index) Keys() []string {
	return slices.Sorted(maps.Keys(ix))
}

// EdgeCount returns the total number of key/value pairs.
func (ix Index) EdgeCount() int {
	n := 0
	for _, s := range ix {
		n += s.Len()
	}
	return n
}

// Clone returns a deep copy.
func (ix Index) Clone() Index {
	out := make(Index, len(ix))
	for k, s := range ix {
		out[k] = s.Clone()
	}
	return out
}

// Merge unions every edge of other into ix.
func (ix Index) Merge(other Index) {
	for k, s := range other {
		for v := range s {
			ix.AddEdge(k, v)
		}
	}
}

// Invert returns the index with every edge reversed. Keys with no values
// are dropped.
func (ix Index) Invert() Index {
	out := New()
	for k, s := range ix {
		for v := range s {
			out.AddEdge(v, k)
		}
	}
	return out
}

// ExpandOneHop returns a copy in which each key K also lists the direct
// values of every value V of K that is itself a key.
//
// This is a single pass, not a fixed point: chains longer than two hops are
// not followed. Every lookup reads the unexpanded index, so the result does
// not depend on iteration order. See [Index.Closure] for full reachability.
func (ix Index) ExpandOneHop() Index {
	out := ix.Clone()
	for k, values := range ix {
		for v := range values {
			if next, ok := ix[v]; ok {
				out[k].AddAll(next)
			}
		}
	}
	return out
}
