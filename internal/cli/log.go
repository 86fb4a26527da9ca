// Package cli implements the archdeps command-line interface.
//
// Every report command takes an input directory holding package archives
// and an output directory receiving the snapshots; both default to the
// current directory. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - dependencies: reverse index of packages installed at build time
//   - makedepends: forward and reverse index of declared makedepends
//   - transitive-count: per package counts of declared and undeclared dependencies
//   - transitive: per package lists of declared and undeclared dependencies
//   - graph: Graphviz drawing of a dependency relation
//   - cache: manage the archive metadata cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context before any subcommand runs.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
