// Package version provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/archdeps/pkg/version.Version=v1.0.0 \
//	    -X github.com/matzehuels/archdeps/pkg/version.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/archdeps/pkg/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package version

import "fmt"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// RecordFormat versions the cached archive records. Bump it whenever the
// cached JSON changes shape so stale entries are ignored.
const RecordFormat = "r1"

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
