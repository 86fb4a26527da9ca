package pkgid

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/archdeps/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want ID
	}{
		{"foo-1.2.3-4-x86_64", ID{"foo", "1.2.3", "4", "x86_64"}},
		{"foo-bar-1.0-1", ID{"foo-bar", "1.0", "1", "x86_64"}},
		{"python-3.11.8-1-any", ID{"python", "3.11.8", "1", "any"}},
		{"lib32-glibc-2.39+r52-1-x86_64", ID{"lib32-glibc", "2.39+r52", "1", "x86_64"}},
		{"go-2:1.22.1-1-x86_64", ID{"go", "2:1.22.1", "1", "x86_64"}},
		{"foo_bar-1.0_beta-12", ID{"foo_bar", "1.0_beta", "12", "x86_64"}},
		{"perl-x-1-2", ID{"perl-x", "1", "2", "x86_64"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	raw := "foo-1.2.3-4-x86_64"
	id, err := Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	joined := strings.Join([]string{id.Name, id.Version, id.Build, id.Arch}, "-")
	if joined != raw {
		t.Errorf("join = %q, want %q", joined, raw)
	}
	if id.String() != raw {
		t.Errorf("String() = %q, want %q", id.String(), raw)
	}
	if id.NameVersion() != "foo-1.2.3-4" {
		t.Errorf("NameVersion() = %q", id.NameVersion())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		raw  string
		code errors.Code
	}{
		{"foo", errors.ErrCodeInvalidIdentifier},
		{"foo-1.0", errors.ErrCodeInvalidIdentifier},
		{"", errors.ErrCodeInvalidIdentifier},
		{"Foo-1.0-1-x86_64", errors.ErrCodeUnparseableIdentifier},
		{"foo-1.0-1-i686", errors.ErrCodeUnparseableIdentifier},
		{"foo-1.0-rc1", errors.ErrCodeUnparseableIdentifier},
		{"foo-1.0-1-x86_64-extra", errors.ErrCodeUnparseableIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, err := Parse(tt.raw)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.raw)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse(%q) code = %v, want %v", tt.raw, errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestParseArchInvariant(t *testing.T) {
	for _, raw := range []string{"a-1-1", "a-1-1-any", "a-b-c-1-1-x86_64"} {
		id, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q): %v", raw, err)
		}
		if !slices.Contains(Architectures, id.Arch) {
			t.Errorf("Parse(%q).Arch = %q, not a known architecture", raw, id.Arch)
		}
	}
}

func TestLoose(t *testing.T) {
	tests := []struct {
		raw  string
		want ID
	}{
		{"foo-1.2.3-4-x86_64", ID{"foo", "1.2.3", "4", "x86_64"}},
		{"foo-1.0-1", ID{"foo", "1.0", "1", "x86_64"}},
		{"foo-1.0-1-any", ID{"foo", "1.0", "1", "any"}},
		// Hyphenated name without architecture: the naive split misreads it.
		{"foo-bar-1.0-1", ID{"foo", "bar", "1.0", "x86_64"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Loose(tt.raw)
			if err != nil {
				t.Fatalf("Loose(%q) error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("Loose(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}

	if _, err := Loose("foo-1"); !errors.Is(err, errors.ErrCodeInvalidIdentifier) {
		t.Errorf("Loose(foo-1) error = %v, want INVALID_IDENTIFIER", err)
	}
	if _, err := Loose("foo--1"); !errors.Is(err, errors.ErrCodeInvalidIdentifier) {
		t.Errorf("Loose(foo--1) error = %v, want INVALID_IDENTIFIER", err)
	}
}

func TestFromFileName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/mirror/bash-5.2.026-2-x86_64.pkg.tar.zst", "bash-5.2.026-2-x86_64"},
		{"python-3.11.8-1-any.pkg.tar.xz", "python-3.11.8-1-any"},
		{"./foo-bar-1.0-1-x86_64.pkg.tar.zst", "foo-bar-1.0-1-x86_64"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			id, err := FromFileName(tt.path)
			if err != nil {
				t.Fatalf("FromFileName(%q) error: %v", tt.path, err)
			}
			if id.String() != tt.want {
				t.Errorf("FromFileName(%q) = %q, want %q", tt.path, id.String(), tt.want)
			}
		})
	}
}

func TestSiblings(t *testing.T) {
	s := NewSiblings([]string{
		"/mirror/foo-bar-1.0-1-x86_64.pkg.tar.zst",
		"/mirror/baz-2.0-3-any.pkg.tar.xz",
	})

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}

	t.Run("lookup by substring", func(t *testing.T) {
		id, ok := s.Lookup("foo-bar-1.0-1")
		if !ok {
			t.Fatal("Lookup should find foo-bar")
		}
		if id != (ID{"foo-bar", "1.0", "1", "x86_64"}) {
			t.Errorf("Lookup = %+v", id)
		}
	})

	t.Run("parse with known arch skips lookup", func(t *testing.T) {
		id, err := s.Parse("qux-1-1-any")
		if err != nil {
			t.Fatal(err)
		}
		if id.Name != "qux" || id.Arch != "any" {
			t.Errorf("Parse = %+v", id)
		}
	})

	t.Run("parse falls back to sibling", func(t *testing.T) {
		id, err := s.Parse("baz-2.0-3")
		if err != nil {
			t.Fatal(err)
		}
		if id.String() != "baz-2.0-3-any" {
			t.Errorf("Parse = %q, want baz-2.0-3-any", id.String())
		}
	})

	t.Run("miss is unparseable", func(t *testing.T) {
		_, err := s.Parse("nothere-1.0-1")
		if !errors.Is(err, errors.ErrCodeUnparseableIdentifier) {
			t.Errorf("Parse error = %v, want UNPARSEABLE_IDENTIFIER", err)
		}
	})
}

func TestChain(t *testing.T) {
	s := NewSiblings([]string{"weird-1.0-1-x86_64.pkg.tar.zst"})
	p := Chain(Grammar, s)

	id, err := p.Parse("foo-1.0-1-x86_64")
	if err != nil || id.Name != "foo" {
		t.Errorf("Chain grammar path = %+v, %v", id, err)
	}

	_, err = p.Parse("nope")
	if !errors.Is(err, errors.ErrCodeInvalidIdentifier) {
		t.Errorf("Chain error = %v, want first parser's INVALID_IDENTIFIER", err)
	}

	if _, err := Chain().Parse("x-1-1"); !errors.Is(err, errors.ErrCodeUnparseableIdentifier) {
		t.Errorf("empty Chain error = %v", err)
	}
}
