package pkgid

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/archdeps/pkg/errors"
)

// Parser decodes a compound identifier.
type Parser interface {
	Parse(raw string) (ID, error)
}

// ParserFunc adapts a function to [Parser].
type ParserFunc func(raw string) (ID, error)

// Parse calls f(raw).
func (f ParserFunc) Parse(raw string) (ID, error) { return f(raw) }

var (
	// Grammar is the default parser, backed by [Parse].
	Grammar Parser = ParserFunc(Parse)

	// LooseParser is backed by [Loose].
	LooseParser Parser = ParserFunc(Loose)
)

// Chain tries each parser in order and returns the first success. When all
// fail, the error of the first parser is returned: it is the most specific.
func Chain(parsers ...Parser) Parser {
	return ParserFunc(func(raw string) (ID, error) {
		var first error
		for _, p := range parsers {
			id, err := p.Parse(raw)
			if err == nil {
				return id, nil
			}
			if first == nil {
				first = err
			}
		}
		if first == nil {
			first = errors.New(errors.ErrCodeUnparseableIdentifier, "no parser for %q", raw)
		}
		return ID{}, first
	})
}

// Siblings cross-references identifiers against the archive file names of
// the current run. Build records sometimes list an identifier without its
// architecture; when the matching package is part of the same mirror, its
// file name supplies the missing field.
type Siblings struct {
	names []string
}

// NewSiblings indexes the base names of paths.
func NewSiblings(paths []string) *Siblings {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	slices.Sort(names)
	return &Siblings{names: names}
}

// Len returns the number of indexed archives.
func (s *Siblings) Len() int { return len(s.names) }

// Lookup returns the identifier of the first archive (in lexical order)
// whose file name contains raw.
func (s *Siblings) Lookup(raw string) (ID, bool) {
	if raw == "" {
		return ID{}, false
	}
	for _, name := range s.names {
		if strings.Contains(name, raw) {
			id, err := FromFileName(name)
			if err != nil {
				continue
			}
			return id, true
		}
	}
	return ID{}, false
}

// Parse splits raw from the right. If it does not end in a known
// architecture, the sibling archives are consulted; a miss is an
// unparseable identifier.
func (s *Siblings) Parse(raw string) (ID, error) {
	parts, err := splitLoose(raw)
	if err != nil {
		return ID{}, err
	}
	if len(parts) == 4 && KnownArch(parts[3]) {
		return ID{Name: parts[0], Version: parts[1], Build: parts[2], Arch: parts[3]}, nil
	}
	if id, ok := s.Lookup(raw); ok {
		return id, nil
	}
	return ID{}, errors.New(errors.ErrCodeUnparseableIdentifier, "%q has no architecture and no sibling archive", raw)
}
