// Package index builds reverse dependency indexes.
//
// A reverse index maps each depended-upon package to the set of packages
// that depend on it:
//
//	ix := index.New()
//	ix.AddEdge("glibc", "bash")   // bash depends on glibc
//	ix.AddEdge("glibc", "bash")   // idempotent
//
// Keys can be rendered at three [Granularity] levels (bare name,
// name-version-build, or the full identifier) via [Granularity.Key].
//
// # Expansion
//
// [Index.ExpandOneHop] folds the direct dependents of each dependent into a
// key's set. It looks exactly one hop further, which is what existing
// snapshots contain; chains of three or more hops are not closed.
// [Index.Closure] computes real reachability with a depth-first search over
// a [github.com/dominikbraun/graph] graph and is opt-in.
package index
