// Package report turns a directory of package archives into dependency
// snapshots.
//
// A [Runner] drives one analysis run: it discovers archives, reads and
// decodes their metadata records in parallel, merges the per-package
// results into today's snapshots and writes them back. Each report mode
// corresponds to one method:
//
//	runner := report.NewRunner(reader, logger)
//	sum, err := runner.Transitive(ctx, report.Options{Input: "/srv/pkgs", Output: "out"})
//
// Problems with individual archives or metadata lines never abort a run;
// they are logged and counted in [Summary.Issues]. Only an unusable input
// path is fatal.
package report

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/archdeps/pkg/archive"
	"github.com/matzehuels/archdeps/pkg/errors"
	"github.com/matzehuels/archdeps/pkg/snapshot"
)

// Mode names a report.
type Mode string

const (
	ModeDependencies    Mode = "dependencies"
	ModeMakeDepends     Mode = "makedepends"
	ModeTransitiveCount Mode = "transitive-count"
	ModeTransitive      Mode = "transitive"
	ModeGraph           Mode = "graph"
)

// Closure selects how the makedepends reverse index is expanded.
type Closure string

const (
	// ClosureOneHop folds in the dependents of each direct dependent once.
	ClosureOneHop Closure = "one-hop"
	// ClosureFull folds in every dependent reachable through any chain.
	ClosureFull Closure = "full"
)

// ParseClosure validates a closure name. The empty string is one-hop.
func ParseClosure(s string) (Closure, error) {
	switch Closure(s) {
	case "", ClosureOneHop:
		return ClosureOneHop, nil
	case ClosureFull:
		return ClosureFull, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown closure %q (want %s or %s)", s, ClosureOneHop, ClosureFull)
}

// DependencyListFile is the plain-text export written by the dependencies
// report. It is overwritten on every run.
const DependencyListFile = "package-dependencies.txt"

// Options configures a run.
type Options struct {
	Input      string    // directory holding the archives
	Output     string    // directory receiving the snapshots
	Workers    int       // concurrent archive reads; 0 means one per CPU
	Extensions []string  // archive suffixes; empty means archive.DefaultExtensions
	Closure    Closure   // makedepends expansion
	Now        time.Time // snapshot date; zero means time.Now()
}

func (o *Options) setDefaults() error {
	if o.Input == "" {
		o.Input = "."
	}
	if o.Output == "" {
		o.Output = "."
	}
	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must not be negative, got %d", o.Workers)
	}
	if o.Workers == 0 {
		o.Workers = runtime.NumCPU()
	}
	c, err := ParseClosure(string(o.Closure))
	if err != nil {
		return err
	}
	o.Closure = c
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return nil
}

func (o *Options) path(prefix, suffix string) string {
	return filepath.Join(o.Output, snapshot.Stamp(prefix, o.Now, suffix))
}

// Summary describes a finished run.
type Summary struct {
	RunID    string
	Mode     Mode
	Archives int
	Packages int
	Skipped  int
	Issues   map[errors.Code]int
	Files    []string
	Duration time.Duration
}

// IssueCount returns the total number of issues.
func (s *Summary) IssueCount() int {
	n := 0
	for _, c := range s.Issues {
		n += c
	}
	return n
}

// Runner executes reports. It holds no per-run state, so one Runner may
// serve several runs.
type Runner struct {
	Reader archive.RecordReader
	Logger *log.Logger
}

// NewRunner creates a runner. A nil reader reads archives directly
// without caching; a nil logger uses the default logger.
func NewRunner(reader archive.RecordReader, logger *log.Logger) *Runner {
	if reader == nil {
		reader = archive.NewReader()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Reader: reader, Logger: logger}
}

// run is the state owned by a single report invocation.
type run struct {
	id     string
	mode   Mode
	opts   Options
	start  time.Time
	logger *log.Logger
	sum    *Summary
}

func (r *Runner) begin(mode Mode, opts Options) (*run, error) {
	if err := opts.setDefaults(); err != nil {
		return nil, err
	}
	if err := errors.ValidateDirectory(opts.Input); err != nil {
		return nil, err
	}
	id := uuid.NewString()
	logger := r.Logger.With("run", id[:8])
	logger.Debug("starting run", "mode", mode, "input", opts.Input, "output", opts.Output,
		"workers", opts.Workers, "date", snapshot.Date(opts.Now))
	return &run{
		id:     id,
		mode:   mode,
		opts:   opts,
		start:  time.Now(),
		logger: logger,
		sum:    &Summary{RunID: id, Mode: mode, Issues: map[errors.Code]int{}},
	}, nil
}

// loadMap reads a map snapshot. An absent or unreadable file yields an
// empty map.
func loadMap[M ~map[string]V, V any](rn *run, path string) M {
	m, err := snapshot.Load[M](path)
	if err != nil {
		rn.logger.Warn("ignoring unreadable snapshot", "path", path, "error", err)
	}
	if m == nil {
		return make(M)
	}
	rn.logger.Debug("loaded snapshot", "path", path, "entries", len(m))
	return m
}

func (rn *run) save(path string, v any) error {
	if err := snapshot.Save(path, v); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	rn.sum.Files = append(rn.sum.Files, path)
	return nil
}

func (rn *run) finish() *Summary {
	rn.sum.Duration = time.Since(rn.start)
	rn.logger.Info("run complete",
		"mode", rn.mode,
		"archives", rn.sum.Archives,
		"packages", rn.sum.Packages,
		"issues", rn.sum.IssueCount(),
		"duration", rn.sum.Duration)
	return rn.sum
}
