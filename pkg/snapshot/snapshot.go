// Package snapshot persists report results as date-stamped JSON files.
//
// A snapshot is named after the day it was produced, so every run on the
// same day merges into the same file and the first run of a new day starts
// a fresh one:
//
//	snapshot.Stamp("data", now, "_pkg")  // data_2024-3-7_pkg.json
//
// Month and day are not zero-padded. Loading tolerates absent and corrupt
// files; saving replaces the file atomically.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Date formats t as <year>-<month>-<day> without zero padding.
func Date(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day())
}

// Stamp returns the snapshot file name <prefix>_<date><suffix>.json.
func Stamp(prefix string, t time.Time, suffix string) string {
	return StampExt(prefix, t, suffix, ".json")
}

// StampExt is [Stamp] with a custom extension.
func StampExt(prefix string, t time.Time, suffix, ext string) string {
	return prefix + "_" + Date(t) + suffix + ext
}

// Load decodes the JSON file at path.
//
// A missing file yields the zero value and no error. A file that cannot be
// read or decoded yields the zero value and an error describing why; the
// caller is expected to log it and continue with an empty snapshot.
func Load[T any](path string) (T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return zero, nil
	}
	if err != nil {
		return zero, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return v, nil
}

// Save encodes v as JSON and atomically replaces the file at path.
func Save(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", path, err)
	}
	return WriteFile(path, data)
}

// WriteLines writes lines to path, one per line, replacing the file.
func WriteLines(path string, lines []string) error {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return WriteFile(path, []byte(b.String()))
}

// WriteFile atomically replaces the file at path with data, creating
// parent directories as needed.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
