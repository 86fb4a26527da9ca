package report

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/matzehuels/archdeps/pkg/errors"
	"github.com/matzehuels/archdeps/pkg/index"
	"github.com/matzehuels/archdeps/pkg/render"
	"github.com/matzehuels/archdeps/pkg/snapshot"
)

// GraphSource selects which dependency relation is drawn.
type GraphSource string

const (
	// SourceMakeDepends draws the build-time dependencies from .PKGINFO.
	SourceMakeDepends GraphSource = "makedepends"
	// SourceInstalled draws the packages installed at build time from .BUILDINFO.
	SourceInstalled GraphSource = "installed"
)

// GraphOptions configures the graph report.
type GraphOptions struct {
	Source  GraphSource
	Package string   // draw only what is reachable from this package
	Formats []string // render.FormatDOT, render.FormatSVG, render.FormatPNG
}

func (o *GraphOptions) validate() error {
	switch o.Source {
	case "":
		o.Source = SourceMakeDepends
	case SourceMakeDepends, SourceInstalled:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown graph source %q (want %s or %s)", o.Source, SourceMakeDepends, SourceInstalled)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatSVG}
	}
	return render.ValidateFormats(o.Formats)
}

// Graph draws the direct reverse dependency index of the scanned archives
// and writes <source>_<date>.<format> for each requested format. Unlike the
// other reports it does not merge with earlier snapshots.
func (r *Runner) Graph(ctx context.Context, opts Options, gopts GraphOptions) (*Summary, error) {
	if err := gopts.validate(); err != nil {
		return nil, err
	}
	rn, err := r.begin(ModeGraph, opts)
	if err != nil {
		return nil, err
	}
	paths, err := rn.discover()
	if err != nil {
		return nil, err
	}

	u := usesPkgInfo
	if gopts.Source == SourceInstalled {
		u = usesInstalled
	}
	records, err := r.scan(ctx, rn, paths, u)
	if err != nil {
		return nil, err
	}

	ix := index.New()
	for _, rec := range rn.keyed(records) {
		name := rec.Name()
		deps := rec.Info.MakeDepends
		if gopts.Source == SourceInstalled {
			deps = rec.Installed()
		}
		for _, dep := range deps.Sorted() {
			if dep != name {
				ix.AddEdge(dep, name)
			}
		}
	}

	if gopts.Package != "" {
		ix, err = ix.Invert().Reachable(gopts.Package)
		if err != nil {
			return nil, err
		}
		if len(ix) == 0 {
			rn.logger.Warn("package has no dependencies in this mirror", "package", gopts.Package)
		}
		ix = ix.Invert()
	}
	rn.logger.Debug("built graph", "source", gopts.Source, "nodes", len(ix), "edges", ix.EdgeCount())
	cycles := ix.BackEdges()
	if len(cycles) > 0 {
		rn.logger.Info("dependency cycles", "back_edges", len(cycles))
		for _, e := range cycles {
			rn.logger.Debug("cycle", "dependency", e.From, "dependent", e.To)
		}
	}

	dot := render.ToDOT(ix, render.Options{
		Title:     fmt.Sprintf("%s %s", gopts.Source, snapshot.Date(rn.opts.Now)),
		Highlight: gopts.Package,
		Cycles:    cycles,
	})
	for _, format := range gopts.Formats {
		data, err := render.Render(ctx, dot, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		path := filepath.Join(rn.opts.Output, snapshot.StampExt(string(gopts.Source), rn.opts.Now, "", "."+format))
		if err := snapshot.WriteFile(path, data); err != nil {
			return nil, err
		}
		rn.sum.Files = append(rn.sum.Files, path)
	}
	return rn.finish(), nil
}
