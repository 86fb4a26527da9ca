package cli

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archdeps/pkg/observability"
	"github.com/matzehuels/archdeps/pkg/render"
	"github.com/matzehuels/archdeps/pkg/report"
)

// reportFlags holds the flags shared by all report commands.
type reportFlags struct {
	workers    int    // concurrent archive reads (0 = one per CPU)
	extensions string // comma-separated archive suffixes
	noCache    bool   // bypass the metadata cache
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.workers, "workers", "j", 0, "concurrent archive reads (0 = one per CPU)")
	cmd.Flags().StringVar(&f.extensions, "ext", "", "archive suffixes to scan, comma-separated (default .xz,.zst)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the metadata cache")
}

// reportOptions merges positional arguments, flags and the config file.
// Flags that were set explicitly win over the config file.
func (c *CLI) reportOptions(cmd *cobra.Command, args []string, f *reportFlags) report.Options {
	opts := report.Options{
		Input:      ".",
		Output:     ".",
		Workers:    c.Config.Workers,
		Extensions: c.Config.Extensions,
		Closure:    report.Closure(c.Config.Closure),
	}
	if len(args) > 0 {
		opts.Input = args[0]
	}
	if len(args) > 1 {
		opts.Output = args[1]
	}
	if cmd.Flags().Changed("workers") {
		opts.Workers = f.workers
	}
	opts.Extensions = parseList(f.extensions, opts.Extensions)
	return opts
}

const positionalUsage = `
Both directories default to the current directory. Snapshots for the same
day are merged; the first run of a new day starts fresh snapshots.`

// dependenciesCommand creates the dependencies report command.
func (c *CLI) dependenciesCommand() *cobra.Command {
	var flags reportFlags
	cmd := &cobra.Command{
		Use:   "dependencies [input] [output]",
		Short: "Index which packages were installed when each package was built",
		Long: `Read .BUILDINFO from every archive in input and write reverse dependency
indexes keyed by name (data_<date>_pkg.json), name-version
(data_<date>_pkg-ver.json) and full identifier (data_<date>_pkg-ver-pfm.json),
plus package-dependencies.txt listing every full identifier.
` + positionalUsage,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.reportOptions(cmd, args, &flags)
			return c.runReport(cmd.Context(), flags.noCache, func(ctx context.Context, r *report.Runner) (*report.Summary, error) {
				return r.Dependencies(ctx, opts)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

// makedependsCommand creates the makedepends report command.
func (c *CLI) makedependsCommand() *cobra.Command {
	var (
		flags   reportFlags
		closure string
	)
	cmd := &cobra.Command{
		Use:   "makedepends [input] [output]",
		Short: "Index build-time dependencies declared in .PKGINFO",
		Long: `Read the makedepend entries of .PKGINFO from every archive in input and write
packages_makedepends_<date>.json (package to its makedepends) and
makedepends_packages_<date>.json (makedepend to the packages needing it).

The reverse index is expanded one hop by default: each entry also lists the
packages that need its direct dependents. Use --closure=full to follow
chains of any length.
` + positionalUsage,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.reportOptions(cmd, args, &flags)
			if cmd.Flags().Changed("closure") {
				opts.Closure = report.Closure(closure)
			}
			return c.runReport(cmd.Context(), flags.noCache, func(ctx context.Context, r *report.Runner) (*report.Summary, error) {
				return r.MakeDepends(ctx, opts)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&closure, "closure", string(report.ClosureOneHop), "reverse index expansion: one-hop, full")
	_ = cmd.RegisterFlagCompletionFunc("closure", fixedCompletion(string(report.ClosureOneHop), string(report.ClosureFull)))
	return cmd
}

// transitiveCountCommand creates the transitive-count report command.
func (c *CLI) transitiveCountCommand() *cobra.Command {
	var flags reportFlags
	cmd := &cobra.Command{
		Use:   "transitive-count [input] [output]",
		Short: "Count declared and undeclared build dependencies per package",
		Long: `For every archive in input, count the dependencies declared in .PKGINFO
(depend, makedepend, optdepend) and the packages installed at build time
(.BUILDINFO) that were not declared. Writes transitive_count_<date>.json.
` + positionalUsage,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.reportOptions(cmd, args, &flags)
			return c.runReport(cmd.Context(), flags.noCache, func(ctx context.Context, r *report.Runner) (*report.Summary, error) {
				return r.TransitiveCount(ctx, opts)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

// transitiveCommand creates the transitive report command.
func (c *CLI) transitiveCommand() *cobra.Command {
	var flags reportFlags
	cmd := &cobra.Command{
		Use:   "transitive [input] [output]",
		Short: "List declared and undeclared build dependencies per package",
		Long: `Like transitive-count, but writes the dependency names instead of counts
to transitive_explicit_dependencies_<date>.json.
` + positionalUsage,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.reportOptions(cmd, args, &flags)
			return c.runReport(cmd.Context(), flags.noCache, func(ctx context.Context, r *report.Runner) (*report.Summary, error) {
				return r.Transitive(ctx, opts)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		flags      reportFlags
		formatsStr string
		gopts      report.GraphOptions
		source     string
	)
	cmd := &cobra.Command{
		Use:   "graph [input] [output]",
		Short: "Draw the dependency graph of a mirror",
		Long: `Draw the dependencies of the archives in input as a Graphviz diagram and
write <source>_<date>.<format> to output.

--source=makedepends draws the makedepend entries of .PKGINFO;
--source=installed draws the packages installed at build time.
Use --package to draw only what one package depends on.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.reportOptions(cmd, args, &flags)
			gopts.Source = report.GraphSource(source)
			gopts.Formats = parseList(formatsStr, []string{render.FormatSVG})
			if err := render.ValidateFormats(gopts.Formats); err != nil {
				return err
			}
			return c.runReport(cmd.Context(), flags.noCache, func(ctx context.Context, r *report.Runner) (*report.Summary, error) {
				return r.Graph(ctx, opts, gopts)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png (comma-separated)")
	cmd.Flags().StringVar(&source, "source", string(report.SourceMakeDepends), "dependency relation: makedepends, installed")
	cmd.Flags().StringVarP(&gopts.Package, "package", "p", "", "only draw what this package depends on")
	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(render.Formats...))
	_ = cmd.RegisterFlagCompletionFunc("source", fixedCompletion(string(report.SourceMakeDepends), string(report.SourceInstalled)))
	return cmd
}

// runReport runs fn with a spinner showing scan progress and prints the
// summary afterwards.
func (c *CLI) runReport(ctx context.Context, noCache bool, fn func(context.Context, *report.Runner) (*report.Summary, error)) error {
	runner, closeFn, err := c.newRunner(loggerFromContext(ctx), noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer closeFn()

	spinner := newSpinnerWithContext(ctx, "Discovering archives...")
	progress := &scanProgress{spinner: spinner}
	observability.SetScanHooks(progress)
	observability.SetCacheHooks(progress)
	defer observability.Reset()

	spinner.Start()
	sum, err := fn(ctx, runner)
	if err != nil {
		spinner.StopWithError("Report failed")
		return err
	}
	spinner.Stop()

	printSummary(sum, int(progress.hits.Load()))
	return nil
}

// scanProgress feeds scan and cache events into the spinner.
type scanProgress struct {
	spinner *Spinner
	total   atomic.Int64
	done    atomic.Int64
	hits    atomic.Int64
}

func (p *scanProgress) OnScanStart(_ context.Context, _ string, archives int) {
	p.total.Store(int64(archives))
	p.done.Store(0)
	p.spinner.SetMessage(fmt.Sprintf("Reading %d archives...", archives))
}

func (p *scanProgress) OnArchiveComplete(context.Context, string, time.Duration, int, error) {
	n := p.done.Add(1)
	p.spinner.SetMessage(fmt.Sprintf("Reading archives %d/%d", n, p.total.Load()))
}

func (p *scanProgress) OnScanComplete(context.Context, string, int, time.Duration, error) {
	p.spinner.SetMessage("Writing results...")
}

func (p *scanProgress) OnCacheHit(context.Context, string)      { p.hits.Add(1) }
func (p *scanProgress) OnCacheMiss(context.Context, string)     {}
func (p *scanProgress) OnCacheSet(context.Context, string, int) {}
