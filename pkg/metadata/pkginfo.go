package metadata

import (
	"strings"

	"github.com/matzehuels/archdeps/pkg/errors"
	"github.com/matzehuels/archdeps/pkg/set"
)

// Record keys understood by [DecodePackageInfo].
const (
	keyPkgName     = "pkgname"
	keyPkgBase     = "pkgbase"
	keyPkgVer      = "pkgver"
	keyArch        = "arch"
	keyDepend      = "depend"
	keyMakeDepend  = "makedepend"
	keyCheckDepend = "checkdepend"
	keyOptDepend   = "optdepend"
)

// VersionOperators are the constraint operators stripped from dependency
// values, in the order they are checked. The first operator present wins.
var VersionOperators = []string{">", ">=", "==", "<=", "<"}

// PackageInfo is the decoded package-info record.
type PackageInfo struct {
	Name    string `json:"pkgname"`
	Base    string `json:"pkgbase,omitempty"`
	Version string `json:"pkgver"`
	Arch    string `json:"arch"`

	Depends      set.Set `json:"depends"`
	MakeDepends  set.Set `json:"makedepends"`
	CheckDepends set.Set `json:"checkdepends"`
	OptDepends   set.Set `json:"optdepends"`

	// Issues lists recognized lines that could not be decoded.
	Issues []error `json:"-"`
}

// Explicit returns the union of runtime, build-time and optional
// dependency names. Check dependencies are not part of it.
func (p *PackageInfo) Explicit() set.Set {
	out := p.Depends.Union(p.MakeDepends)
	out.AddAll(p.OptDepends)
	return out
}

// DecodePackageInfo parses package-info text of "key = value" lines.
//
// The first pkgname wins; later pkgver and arch lines overwrite earlier
// ones. Dependency values are reduced to bare names with [StripConstraint];
// optdepend values first lose their ": description". Unknown keys, blank
// lines and comments are ignored. Empty text yields an empty result.
func DecodePackageInfo(text string) PackageInfo {
	info := PackageInfo{
		Depends:      set.New(),
		MakeDepends:  set.New(),
		CheckDepends: set.New(),
		OptDepends:   set.New(),
	}

	tooLong := forEachLine(text, func(n int, key, value string, ok bool) {
		if !ok {
			if isPackageInfoKey(key) {
				info.Issues = append(info.Issues,
					errors.New(errors.ErrCodeUnparseableLine, "line %d: %q has no value", n, key))
			}
			return
		}

		switch key {
		case keyPkgName:
			if info.Name == "" {
				info.Name = value
			}
		case keyPkgBase:
			info.Base = value
		case keyPkgVer:
			info.Version = value
		case keyArch:
			info.Arch = value
		case keyDepend:
			addName(info.Depends, StripConstraint(value))
		case keyMakeDepend:
			addName(info.MakeDepends, StripConstraint(value))
		case keyCheckDepend:
			addName(info.CheckDepends, StripConstraint(value))
		case keyOptDepend:
			addName(info.OptDepends, StripOptional(value))
		}
	})
	info.Issues = append(info.Issues, tooLong...)

	return info
}

// StripConstraint returns the dependency name without a trailing version
// constraint: "libfoo>=2.0" becomes "libfoo".
func StripConstraint(value string) string {
	for _, op := range VersionOperators {
		if i := strings.Index(value, op); i >= 0 {
			return strings.TrimSpace(value[:i])
		}
	}
	return strings.TrimSpace(value)
}

// StripOptional drops an optional dependency's ": description" and then any
// version constraint: "libbar: needed for X" becomes "libbar".
func StripOptional(value string) string {
	name, _, _ := strings.Cut(value, ":")
	return StripConstraint(name)
}

func isPackageInfoKey(key string) bool {
	switch key {
	case keyPkgName, keyPkgBase, keyPkgVer, keyArch, keyDepend, keyMakeDepend, keyCheckDepend, keyOptDepend:
		return true
	}
	return false
}

func addName(s set.Set, name string) {
	if name != "" {
		s.Add(name)
	}
}

// maxLineLength bounds a single record line. Longer lines are reported
// and skipped.
const maxLineLength = 1 << 20

// forEachLine calls fn for each non-blank, non-comment line. ok is false
// when the line has no " = " separator; key is then the trimmed line.
// Lines over maxLineLength are skipped and returned as issues; the lines
// after them are still visited.
func forEachLine(text string, fn func(n int, key, value string, ok bool)) []error {
	var issues []error
	n := 0
	for raw := range strings.Lines(text) {
		n++
		if len(raw) > maxLineLength {
			issues = append(issues,
				errors.New(errors.ErrCodeUnparseableLine, "line %d: %d bytes exceeds the %d byte line limit", n, len(raw), maxLineLength))
			continue
		}
		line := strings.TrimSpace(raw)
		if line == "" || line[0] == '#' {
			continue
		}
		key, value, ok := strings.Cut(line, " = ")
		fn(n, strings.TrimSpace(key), strings.TrimSpace(value), ok)
	}
	return issues
}
