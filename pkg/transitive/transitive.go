// Package transitive computes the dependencies a package pulled in at build
// time without declaring them.
//
// Given the explicit set E (declared in the package-info record) and the
// installed set I (listed in the build-info record), the transitive set is
// I - E. The result is always a subset of I, never intersects E, and is
// empty whenever I is a subset of E.
//
// All functions are pure: inputs are never modified.
package transitive

import "github.com/matzehuels/archdeps/pkg/set"

// Compute returns installed - explicit.
func Compute(explicit, installed set.Set) set.Set {
	return installed.Difference(explicit)
}

// Count returns the cardinality of [Compute].
func Count(explicit, installed set.Set) int {
	n := 0
	for name := range installed {
		if !explicit.Has(name) {
			n++
		}
	}
	return n
}

// Counts is the count-only result shape.
type Counts struct {
	Explicit   int `json:"explicit_dependencies"`
	Transitive int `json:"transitive_dependencies"`
}

// NewCounts builds the count-only result for one package.
func NewCounts(explicit, installed set.Set) Counts {
	return Counts{
		Explicit:   explicit.Len(),
		Transitive: Count(explicit, installed),
	}
}

// Listing is the full result shape.
type Listing struct {
	Explicit   set.Set `json:"explicit_dependencies"`
	Transitive set.Set `json:"transitive_dependencies"`
}

// NewListing builds the full result for one package.
func NewListing(explicit, installed set.Set) Listing {
	return Listing{
		Explicit:   explicit.Clone(),
		Transitive: Compute(explicit, installed),
	}
}
