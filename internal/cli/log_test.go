package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line written at info level: %q", buf.String())
	}
	logger.Info("scanned archives", "count", 3)
	if !strings.Contains(buf.String(), "scanned archives") || !strings.Contains(buf.String(), "count=3") {
		t.Errorf("info line = %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("bare context should yield log.Default()")
	}
	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("attached logger not returned")
	}
}

// runWithLogger executes args against a root command that has an extra
// subcommand recording the logger found in its context.
func runWithLogger(t *testing.T, args ...string) (*CLI, *log.Logger, string) {
	t.Helper()
	isolate(t)
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	root := c.RootCommand()

	var seen *log.Logger
	root.AddCommand(&cobra.Command{
		Use: "whoami",
		RunE: func(cmd *cobra.Command, args []string) error {
			seen = loggerFromContext(cmd.Context())
			seen.Debug("debug visible")
			return nil
		},
	})
	root.SetArgs(append(args, "whoami"))
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return c, seen, buf.String()
}

func TestVerboseFlag(t *testing.T) {
	tests := []struct {
		args      []string
		wantLevel log.Level
		wantDebug bool
	}{
		{nil, log.InfoLevel, false},
		{[]string{"--verbose"}, log.DebugLevel, true},
		{[]string{"-v"}, log.DebugLevel, true},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			c, seen, out := runWithLogger(t, tt.args...)
			if seen != c.Logger {
				t.Error("command context does not carry the CLI logger")
			}
			if got := c.Logger.GetLevel(); got != tt.wantLevel {
				t.Errorf("level = %v, want %v", got, tt.wantLevel)
			}
			if got := strings.Contains(out, "debug visible"); got != tt.wantDebug {
				t.Errorf("debug output present = %v, want %v: %q", got, tt.wantDebug, out)
			}
		})
	}
}
