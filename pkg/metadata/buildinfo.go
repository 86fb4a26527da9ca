package metadata

import (
	"github.com/matzehuels/archdeps/pkg/errors"
	"github.com/matzehuels/archdeps/pkg/pkgid"
	"github.com/matzehuels/archdeps/pkg/set"
)

const keyInstalled = "installed"

// BuildInfo is the decoded build-info record.
type BuildInfo struct {
	// Installed holds every identifier that parsed, in record order.
	Installed []pkgid.ID `json:"installed"`

	// Issues lists identifiers and lines that were excluded.
	Issues []error `json:"-"`
}

// Names returns the deduplicated names of the installed packages.
func (b *BuildInfo) Names() set.Set {
	out := set.New()
	for _, id := range b.Installed {
		out.Add(id.Name)
	}
	return out
}

// BuildInfoDecoder parses build-info text.
// The zero value uses [pkgid.Grammar].
type BuildInfoDecoder struct {
	Parser pkgid.Parser
}

// DecodeBuildInfo parses text with the default grammar parser.
func DecodeBuildInfo(text string) BuildInfo {
	return BuildInfoDecoder{}.Decode(text)
}

// Decode parses every "installed = <identifier>" line. Identifiers the
// parser rejects are recorded in Issues and excluded.
func (d BuildInfoDecoder) Decode(text string) BuildInfo {
	parser := d.Parser
	if parser == nil {
		parser = pkgid.Grammar
	}

	var info BuildInfo
	tooLong := forEachLine(text, func(n int, key, value string, ok bool) {
		if key != keyInstalled {
			return
		}
		if !ok || value == "" {
			info.Issues = append(info.Issues,
				errors.New(errors.ErrCodeUnparseableLine, "line %d: installed has no value", n))
			return
		}
		id, err := parser.Parse(value)
		if err != nil {
			info.Issues = append(info.Issues, err)
			return
		}
		info.Installed = append(info.Installed, id)
	})
	info.Issues = append(info.Issues, tooLong...)
	return info
}
