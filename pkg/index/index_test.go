package index

import (
	"slices"
	"testing"

	"github.com/matzehuels/archdeps/pkg/pkgid"
	"github.com/matzehuels/archdeps/pkg/set"
)

func TestAddEdgeIdempotent(t *testing.T) {
	ix := New()
	ix.AddEdge("libc", "bash")
	ix.AddEdge("libc", "bash")

	if got := ix.Get("libc").Sorted(); !slices.Equal(got, []string{"bash"}) {
		t.Errorf("index[libc] = %v, want [bash]", got)
	}
	if ix.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", ix.EdgeCount())
	}
}

func TestGranularityKey(t *testing.T) {
	id := pkgid.ID{Name: "bash", Version: "5.2", Build: "1", Arch: "x86_64"}
	tests := []struct {
		g    Granularity
		key  string
		name string
	}{
		{Name, "bash", "pkg"},
		{NameVersion, "bash-5.2-1", "pkg-ver"},
		{Full, "bash-5.2-1-x86_64", "pkg-ver-pfm"},
	}
	for _, tt := range tests {
		if got := tt.g.Key(id); got != tt.key {
			t.Errorf("%v.Key = %q, want %q", tt.g, got, tt.key)
		}
		if tt.g.String() != tt.name {
			t.Errorf("String = %q, want %q", tt.g.String(), tt.name)
		}
	}
}

func TestMergeAndInvert(t *testing.T) {
	a := New()
	a.AddEdge("glibc", "bash")
	b := New()
	b.AddEdge("glibc", "coreutils")
	b.AddEdge("zlib", "bash")

	a.Merge(b)
	if got := a.Get("glibc").Sorted(); !slices.Equal(got, []string{"bash", "coreutils"}) {
		t.Errorf("merged glibc = %v", got)
	}

	inv := a.Invert()
	if got := inv.Get("bash").Sorted(); !slices.Equal(got, []string{"glibc", "zlib"}) {
		t.Errorf("inverted bash = %v", got)
	}
}

// chain builds d <- c <- b <- a (a depends on b, b on c, c on d) as a
// reverse index: each key lists its direct dependents.
func chain() Index {
	ix := New()
	ix.AddEdge("d", "c")
	ix.AddEdge("c", "b")
	ix.AddEdge("b", "a")
	return ix
}

func TestExpandOneHop(t *testing.T) {
	ix := chain()
	out := ix.ExpandOneHop()

	tests := []struct {
		key  string
		want []string
	}{
		// Only one hop beyond direct dependents: "a" is three hops from d.
		{"d", []string{"b", "c"}},
		{"c", []string{"a", "b"}},
		{"b", []string{"a"}},
	}
	for _, tt := range tests {
		if got := out.Get(tt.key).Sorted(); !slices.Equal(got, tt.want) {
			t.Errorf("ExpandOneHop[%s] = %v, want %v", tt.key, got, tt.want)
		}
	}

	if got := ix.Get("d").Sorted(); !slices.Equal(got, []string{"c"}) {
		t.Errorf("ExpandOneHop modified its receiver: d = %v", got)
	}
}

func TestExpandOneHopOrderIndependent(t *testing.T) {
	want := chain().ExpandOneHop()
	for range 20 {
		got := chain().ExpandOneHop()
		for _, k := range want.Keys() {
			if !slices.Equal(got.Get(k).Sorted(), want.Get(k).Sorted()) {
				t.Fatalf("ExpandOneHop not deterministic for %s", k)
			}
		}
	}
}

func TestClosure(t *testing.T) {
	out, err := chain().Closure()
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Get("d").Sorted(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Closure[d] = %v, want [a b c]", got)
	}
	if got := out.Get("b").Sorted(); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Closure[b] = %v, want [a]", got)
	}
}

func TestClosureCycle(t *testing.T) {
	ix := New()
	ix.AddEdge("x", "y")
	ix.AddEdge("y", "x")

	out, err := ix.Closure()
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Get("x").Sorted(); !slices.Equal(got, []string{"x", "y"}) {
		t.Errorf("Closure[x] = %v, want [x y]", got)
	}
}

func TestReachable(t *testing.T) {
	ix := chain()
	ix.AddEdge("zlib", "curl")

	sub, err := ix.Reachable("c")
	if err != nil {
		t.Fatal(err)
	}
	if got := sub.Keys(); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("Reachable(c) keys = %v, want [b c]", got)
	}

	empty, err := ix.Reachable("missing")
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("Reachable(missing) = %v, want empty", empty)
	}
}

func TestPutClones(t *testing.T) {
	values := set.New("a")
	ix := New()
	ix.Put("k", values)
	values.Add("b")
	if ix.Get("k").Has("b") {
		t.Error("Put must copy its values")
	}
}

func TestBackEdges(t *testing.T) {
	ix := New()
	ix.AddEdge("gcc", "glibc")
	ix.AddEdge("glibc", "gcc")
	ix.AddEdge("glibc", "bash")
	ix.AddEdge("bash", "readline")

	got := ix.BackEdges()
	want := []Edge{{From: "glibc", To: "gcc"}}
	if !slices.Equal(got, want) {
		t.Errorf("BackEdges() = %v, want %v", got, want)
	}

	ix.AddEdge("readline", "readline")
	if n := len(ix.BackEdges()); n != 2 {
		t.Errorf("self loop: got %d back edges, want 2", n)
	}
}

func TestBackEdgesAcyclic(t *testing.T) {
	ix := New()
	ix.AddEdge("glibc", "bash")
	ix.AddEdge("glibc", "coreutils")
	ix.AddEdge("bash", "coreutils")
	if got := ix.BackEdges(); len(got) != 0 {
		t.Errorf("BackEdges() = %v, want none", got)
	}
}
