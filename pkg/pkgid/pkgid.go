package pkgid

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/matzehuels/archdeps/pkg/errors"
)

// Known architectures. Identifiers without a recognizable architecture
// suffix are normalized to [DefaultArch].
const (
	ArchX86_64 = "x86_64"
	ArchAny    = "any"

	DefaultArch = ArchX86_64
)

// Architectures lists the architecture tokens accepted by the grammar.
var Architectures = []string{ArchX86_64, ArchAny}

// ID is a decoded compound identifier.
type ID struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Build   string `json:"build"`
	Arch    string `json:"arch"`
}

// NameVersion returns the name-version-build form.
func (id ID) NameVersion() string {
	return id.Name + "-" + id.Version + "-" + id.Build
}

// String returns the full name-version-build-arch form.
func (id ID) String() string {
	return id.NameVersion() + "-" + id.Arch
}

// IsZero reports whether id carries no name.
func (id ID) IsZero() bool { return id.Name == "" }

// KnownArch reports whether arch is one of [Architectures].
func KnownArch(arch string) bool {
	return arch == ArchX86_64 || arch == ArchAny
}

var (
	fullRE  = regexp.MustCompile(`^([a-z0-9_-]+)-([0-9A-Za-z.+:_]+)-([0-9]+)-(any|x86_64)$`)
	shortRE = regexp.MustCompile(`^([a-z0-9_-]+)-([0-9A-Za-z.+:_]+)-([0-9]+)$`)
)

// Parse decodes raw against the identifier grammar. The full form
// name-version-build-arch is tried first, then name-version-build with
// [DefaultArch] appended.
//
// Identifiers with fewer than three hyphen-separated components fail with
// [errors.ErrCodeInvalidIdentifier]; anything else the grammar rejects fails
// with [errors.ErrCodeUnparseableIdentifier].
func Parse(raw string) (ID, error) {
	if strings.Count(raw, "-") < 2 {
		return ID{}, errors.New(errors.ErrCodeInvalidIdentifier, "%q has fewer than 3 components", raw)
	}
	if m := fullRE.FindStringSubmatch(raw); m != nil {
		return ID{Name: m[1], Version: m[2], Build: m[3], Arch: m[4]}, nil
	}
	if m := shortRE.FindStringSubmatch(raw); m != nil {
		return ID{Name: m[1], Version: m[2], Build: m[3], Arch: DefaultArch}, nil
	}
	return ID{}, errors.New(errors.ErrCodeUnparseableIdentifier, "%q does not match name-version-build[-arch]", raw)
}

// Loose splits raw from the right on "-" into at most four fields without
// checking the grammar. A missing fourth field, or one that is not a known
// architecture, becomes [DefaultArch].
//
// Loose misreads names that contain hyphens when the architecture suffix is
// absent ("foo-bar-1.0-1" becomes name "foo"). Prefer [Parse]; Loose exists
// as the fallback behind sibling cross-referencing.
func Loose(raw string) (ID, error) {
	parts, err := splitLoose(raw)
	if err != nil {
		return ID{}, err
	}
	id := ID{Name: parts[0], Version: parts[1], Build: parts[2], Arch: DefaultArch}
	if len(parts) == 4 && KnownArch(parts[3]) {
		id.Arch = parts[3]
	}
	return id, nil
}

// splitLoose returns three or four fields, or an invalid-identifier error.
func splitLoose(raw string) ([]string, error) {
	parts := rsplit(raw, "-", 3)
	if len(parts) < 3 {
		return nil, errors.New(errors.ErrCodeInvalidIdentifier, "%q has fewer than 3 components", raw)
	}
	for _, p := range parts {
		if p == "" {
			return nil, errors.New(errors.ErrCodeInvalidIdentifier, "%q has an empty component", raw)
		}
	}
	return parts, nil
}

// FromFileName derives an identifier from an archive file name such as
// "bash-5.2.026-2-x86_64.pkg.tar.zst". The last three dot-separated suffixes
// are dropped, then the remainder is parsed with [Parse], falling back to
// [Loose].
func FromFileName(path string) (ID, error) {
	base := filepath.Base(path)
	stem := rsplit(base, ".", 3)[0]
	if id, err := Parse(stem); err == nil {
		return id, nil
	}
	return Loose(stem)
}

// rsplit splits s on sep from the right, producing at most n+1 fields.
func rsplit(s, sep string, n int) []string {
	var tail []string
	for range n {
		i := strings.LastIndex(s, sep)
		if i < 0 {
			break
		}
		tail = append(tail, s[i+len(sep):])
		s = s[:i]
	}
	out := make([]string, 0, len(tail)+1)
	out = append(out, s)
	for i := len(tail) - 1; i >= 0; i-- {
		out = append(out, tail[i])
	}
	return out
}
