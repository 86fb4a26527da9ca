package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archdeps/pkg/archive"
	"github.com/matzehuels/archdeps/pkg/cache"
	"github.com/matzehuels/archdeps/pkg/report"
	"github.com/matzehuels/archdeps/pkg/version"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "archdeps"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configFile string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Before any subcommand runs, --verbose is applied, the logger is attached to
// the command context and the config file is loaded.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "archdeps reports dependency facts from a package archive mirror",
		Long: `archdeps reads the .PKGINFO and .BUILDINFO records of every package archive
in a directory and writes date-stamped JSON snapshots: reverse dependency
indexes, build-time dependency indexes, and the dependencies that were
installed at build time without being declared.`,
		Version:      version.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(version.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/archdeps/config.toml)")

	// Register all subcommands
	root.AddCommand(c.dependenciesCommand())
	root.AddCommand(c.makedependsCommand())
	root.AddCommand(c.transitiveCountCommand())
	root.AddCommand(c.transitiveCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	path, explicit := c.configFile, c.configFile != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			c.Logger.Debug("no config directory", "error", err)
			return nil
		}
		path = p
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("configuration", "path", path, "workers", cfg.Workers, "closure", cfg.Closure, "no_cache", cfg.NoCache)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a report runner reading archives through the metadata
// cache unless caching is disabled.
func (c *CLI) newRunner(logger *log.Logger, noCache bool) (*report.Runner, func(), error) {
	ch, err := newCache(noCache || c.Config.NoCache)
	if err != nil {
		return nil, nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), version.RecordFormat+":")
	reader := archive.NewCachedReader(archive.NewReader(), ch, keyer, c.Config.TTL(), logger)
	return report.NewRunner(reader, logger), func() { ch.Close() }, nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/archdeps/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseList parses a comma-separated flag value into a slice, dropping
// empty items. An empty value yields def.
func parseList(s string, def []string) []string {
	if s == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
