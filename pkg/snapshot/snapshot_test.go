package snapshot

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/archdeps/pkg/index"
)

func TestStamp(t *testing.T) {
	day := time.Date(2024, time.March, 7, 23, 59, 0, 0, time.UTC)
	tests := []struct {
		prefix, suffix, want string
	}{
		{"data", "_pkg", "data_2024-3-7_pkg.json"},
		{"data", "_pkg-ver-pfm", "data_2024-3-7_pkg-ver-pfm.json"},
		{"transitive_count", "", "transitive_count_2024-3-7.json"},
	}
	for _, tt := range tests {
		if got := Stamp(tt.prefix, day, tt.suffix); got != tt.want {
			t.Errorf("Stamp(%q, %q) = %q, want %q", tt.prefix, tt.suffix, got, tt.want)
		}
	}

	if got := Date(time.Date(2024, time.November, 21, 0, 0, 0, 0, time.UTC)); got != "2024-11-21" {
		t.Errorf("Date = %q", got)
	}
}

func TestStampExt(t *testing.T) {
	day := time.Date(2024, time.November, 12, 0, 0, 0, 0, time.UTC)
	if got, want := StampExt("makedepends", day, "", ".svg"), "makedepends_2024-11-12.svg"; got != want {
		t.Errorf("StampExt = %q, want %q", got, want)
	}
}

func TestLoadMissing(t *testing.T) {
	ix, err := Load[index.Index](filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing snapshot should not error: %v", err)
	}
	if ix != nil {
		t.Errorf("Load = %v, want zero value", ix)
	}
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"glibc": [`), 0644); err != nil {
		t.Fatal(err)
	}
	ix, err := Load[index.Index](path)
	if err == nil {
		t.Fatal("corrupt snapshot should report an error")
	}
	if ix != nil {
		t.Errorf("Load = %v, want zero value", ix)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "data.json")
	ix := index.New()
	ix.AddEdge("glibc", "bash")
	ix.AddEdge("glibc", "coreutils")

	if err := Save(path, ix); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"glibc":["bash","coreutils"]}` {
		t.Errorf("file = %s", data)
	}

	got, err := Load[index.Index](path)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got.Get("glibc").Sorted(), []string{"bash", "coreutils"}) {
		t.Errorf("loaded = %v", got)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestWriteLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package-dependencies.txt")
	if err := os.WriteFile(path, []byte("stale\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := WriteLines(path, []string{"a-1-1-any", "b-2-1-x86_64"}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a-1-1-any\nb-2-1-x86_64\n" {
		t.Errorf("file = %q", data)
	}
}
