// Package set provides a string set used for dependency names.
//
// Sets marshal to sorted JSON arrays, so snapshots written from the same
// facts are byte-identical regardless of the order archives were read in.
package set

import (
	"encoding/json"
	"maps"
	"slices"
)

// Set is an unordered collection of unique strings.
// The zero value (nil) is an empty set that can be read but not written.
type Set map[string]struct{}

// New returns a set holding items.
func New(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Add inserts item and reports whether it was not already present.
func (s Set) Add(item string) bool {
	if _, ok := s[item]; ok {
		return false
	}
	s[item] = struct{}{}
	return true
}

// Has reports whether item is in the set.
func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Len returns the number of items.
func (s Set) Len() int { return len(s) }

// AddAll inserts every item of other.
func (s Set) AddAll(other Set) {
	for item := range other {
		s[item] = struct{}{}
	}
}

// Union returns a new set with the items of s and other.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	out.AddAll(s)
	out.AddAll(other)
	return out
}

// Difference returns a new set with the items of s that are not in other.
func (s Set) Difference(other Set) Set {
	out := make(Set)
	for item := range s {
		if !other.Has(item) {
			out[item] = struct{}{}
		}
	}
	return out
}

// Clone returns a shallow copy. Cloning nil yields an empty, writable set.
func (s Set) Clone() Set {
	if s == nil {
		return make(Set)
	}
	return maps.Clone(s)
}

// Sorted returns the items in lexical order.
func (s Set) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// MarshalJSON encodes the set as a sorted array.
func (s Set) MarshalJSON() ([]byte, error) {
	items := s.Sorted()
	if items == nil {
		items = []string{}
	}
	return json.Marshal(items)
}

// UnmarshalJSON decodes an array, dropping duplicates.
func (s *Set) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = New(items...)
	return nil
}
