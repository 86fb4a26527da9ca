package archive

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/archdeps/pkg/errors"
)

// DefaultExtensions are the archive suffixes scanned when none are configured.
var DefaultExtensions = []string{".xz", ".zst"}

// Discover returns the regular files directly inside dir whose names end
// in one of exts, sorted by path. Symlinks are followed, so a repository
// directory linking into a shared pool is scanned. Subdirectories are not
// descended and dangling links are skipped.
// An empty exts uses [DefaultExtensions].
func Discover(dir string, exts []string) ([]string, error) {
	if err := errors.ValidateDirectory(dir); err != nil {
		return nil, err
	}
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read directory %s", dir)
	}

	var paths []string
	for _, e := range entries {
		if !hasSuffix(e.Name(), exts) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths, nil
}

func hasSuffix(name string, exts []string) bool {
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
