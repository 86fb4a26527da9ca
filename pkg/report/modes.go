package report

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/matzehuels/archdeps/pkg/archive"
	"github.com/matzehuels/archdeps/pkg/index"
	"github.com/matzehuels/archdeps/pkg/pkgid"
	"github.com/matzehuels/archdeps/pkg/snapshot"
	"github.com/matzehuels/archdeps/pkg/transitive"
)

// Dependencies builds the "who was installed when I was built" reverse
// indexes from .BUILDINFO at all three granularities and writes
// data_<date>_pkg.json, data_<date>_pkg-ver.json and
// data_<date>_pkg-ver-pfm.json, plus the plain-text list of every
// full identifier that appears as a key.
//
// Installed identifiers are parsed with the grammar first; identifiers it
// rejects are looked up among the archives of the same run.
func (r *Runner) Dependencies(ctx context.Context, opts Options) (*Summary, error) {
	rn, err := r.begin(ModeDependencies, opts)
	if err != nil {
		return nil, err
	}
	paths, err := rn.discover()
	if err != nil {
		return nil, err
	}

	u := uses{
		Parser:  pkgid.Chain(pkgid.Grammar, pkgid.NewSiblings(paths)),
		Entries: []string{archive.BuildInfoEntry},
	}
	records, err := r.scan(ctx, rn, paths, u)
	if err != nil {
		return nil, err
	}

	files := make(map[index.Granularity]string, len(index.Granularities))
	indexes := make(map[index.Granularity]index.Index, len(index.Granularities))
	for _, g := range index.Granularities {
		files[g] = rn.opts.path("data", "_"+g.String())
		indexes[g] = loadMap[index.Index](rn, files[g])
	}

	for _, rec := range rn.keyed(records) {
		self := rec.ID()
		for _, dep := range rec.Build.Installed {
			for _, g := range index.Granularities {
				indexes[g].AddEdge(g.Key(dep), g.Key(self))
			}
		}
	}

	for _, g := range index.Granularities {
		if err := rn.save(files[g], indexes[g]); err != nil {
			return nil, err
		}
	}

	list := filepath.Join(rn.opts.Output, DependencyListFile)
	if err := snapshot.WriteLines(list, indexes[index.Full].Keys()); err != nil {
		return nil, fmt.Errorf("write %s: %w", DependencyListFile, err)
	}
	rn.sum.Files = append(rn.sum.Files, list)
	return rn.finish(), nil
}

// MakeDepends records each package's build-time dependencies and the
// reverse "who needs me to build" index, writing
// packages_makedepends_<date>.json and makedepends_packages_<date>.json.
//
// The reverse index is expanded before it is written: one hop by default,
// or to full reachability with ClosureFull.
func (r *Runner) MakeDepends(ctx context.Context, opts Options) (*Summary, error) {
	rn, err := r.begin(ModeMakeDepends, opts)
	if err != nil {
		return nil, err
	}
	paths, err := rn.discover()
	if err != nil {
		return nil, err
	}
	records, err := r.scan(ctx, rn, paths, usesPkgInfo)
	if err != nil {
		return nil, err
	}

	forwardPath := rn.opts.path("packages_makedepends", "")
	reversePath := rn.opts.path("makedepends_packages", "")
	forward := loadMap[index.Index](rn, forwardPath)
	reverse := loadMap[index.Index](rn, reversePath)

	for _, rec := range rn.keyed(records) {
		name := rec.Name()
		forward.Put(name, rec.Info.MakeDepends)
		for _, dep := range rec.Info.MakeDepends.Sorted() {
			reverse.AddEdge(dep, name)
		}
	}

	expanded, err := expand(reverse, rn.opts.Closure)
	if err != nil {
		return nil, err
	}
	rn.logger.Debug("expanded makedepends index", "closure", rn.opts.Closure,
		"edges_before", reverse.EdgeCount(), "edges_after", expanded.EdgeCount())

	if err := rn.save(forwardPath, forward); err != nil {
		return nil, err
	}
	if err := rn.save(reversePath, expanded); err != nil {
		return nil, err
	}
	return rn.finish(), nil
}

func expand(ix index.Index, c Closure) (index.Index, error) {
	if c == ClosureFull {
		out, err := ix.Closure()
		if err != nil {
			return nil, fmt.Errorf("closure: %w", err)
		}
		return out, nil
	}
	return ix.ExpandOneHop(), nil
}

// TransitiveCount writes transitive_count_<date>.json: per package, the
// number of declared dependencies and the number of packages installed at
// build time without being declared.
func (r *Runner) TransitiveCount(ctx context.Context, opts Options) (*Summary, error) {
	rn, err := r.begin(ModeTransitiveCount, opts)
	if err != nil {
		return nil, err
	}
	records, err := r.scanAll(ctx, rn)
	if err != nil {
		return nil, err
	}

	path := rn.opts.path("transitive_count", "")
	counts := loadMap[map[string]transitive.Counts](rn, path)
	for _, rec := range rn.keyed(records) {
		counts[rec.Name()] = transitive.NewCounts(rec.Explicit(), rec.Installed())
	}

	if err := rn.save(path, counts); err != nil {
		return nil, err
	}
	return rn.finish(), nil
}

// Transitive writes transitive_explicit_dependencies_<date>.json: per
// package, the declared dependencies and the undeclared ones installed at
// build time.
func (r *Runner) Transitive(ctx context.Context, opts Options) (*Summary, error) {
	rn, err := r.begin(ModeTransitive, opts)
	if err != nil {
		return nil, err
	}
	records, err := r.scanAll(ctx, rn)
	if err != nil {
		return nil, err
	}

	path := rn.opts.path("transitive_explicit_dependencies", "")
	listings := loadMap[map[string]transitive.Listing](rn, path)
	for _, rec := range rn.keyed(records) {
		listings[rec.Name()] = transitive.NewListing(rec.Explicit(), rec.Installed())
	}

	if err := rn.save(path, listings); err != nil {
		return nil, err
	}
	return rn.finish(), nil
}

// scanAll discovers and scans both records with the grammar parser.
func (r *Runner) scanAll(ctx context.Context, rn *run) ([]Record, error) {
	paths, err := rn.discover()
	if err != nil {
		return nil, err
	}
	return r.scan(ctx, rn, paths, usesBoth)
}
