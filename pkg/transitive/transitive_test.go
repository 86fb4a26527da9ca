package transitive

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/matzehuels/archdeps/pkg/set"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		explicit  set.Set
		installed set.Set
		want      []string
	}{
		{"overlapping", set.New("glibc"), set.New("glibc", "bash", "coreutils"), []string{"bash", "coreutils"}},
		{"disjoint", set.New("zlib"), set.New("glibc", "bash"), []string{"bash", "glibc"}},
		{"same set", set.New("a", "b"), set.New("a", "b"), []string{}},
		{"empty explicit", set.New(), set.New("a", "b"), []string{"a", "b"}},
		{"nil explicit", nil, set.New("a"), []string{"a"}},
		{"installed subset of explicit", set.New("a", "b", "c"), set.New("a"), []string{}},
		{"empty installed", set.New("a"), set.New(), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.explicit, tt.installed)
			if sorted := got.Sorted(); !slices.Equal(sorted, tt.want) {
				t.Errorf("Compute = %v, want %v", sorted, tt.want)
			}
			if n := Count(tt.explicit, tt.installed); n != len(tt.want) {
				t.Errorf("Count = %d, want %d", n, len(tt.want))
			}
			for name := range got {
				if !tt.installed.Has(name) {
					t.Errorf("%q not in installed", name)
				}
				if tt.explicit.Has(name) {
					t.Errorf("%q is explicit", name)
				}
			}
		})
	}
}

func TestComputeDoesNotModifyInputs(t *testing.T) {
	explicit := set.New("a")
	installed := set.New("a", "b")
	_ = Compute(explicit, installed)
	if explicit.Len() != 1 || installed.Len() != 2 {
		t.Error("inputs were modified")
	}
}

func TestNewCounts(t *testing.T) {
	got := NewCounts(set.New("glibc"), set.New("glibc", "bash", "coreutils"))
	if got != (Counts{Explicit: 1, Transitive: 2}) {
		t.Errorf("NewCounts = %+v, want {1 2}", got)
	}

	data, err := json.Marshal(got)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"explicit_dependencies":1,"transitive_dependencies":2}` {
		t.Errorf("json = %s", data)
	}
}

func TestNewListing(t *testing.T) {
	explicit := set.New("glibc")
	got := NewListing(explicit, set.New("glibc", "bash", "coreutils"))

	data, err := json.Marshal(got)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"explicit_dependencies":["glibc"],"transitive_dependencies":["bash","coreutils"]}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}

	got.Explicit.Add("other")
	if explicit.Has("other") {
		t.Error("listing must not alias the explicit input")
	}
}
