package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func relPaths(files []File) []string {
	var out []string
	for _, f := range files {
		out = append(out, f.RelPath)
	}
	return out
}

func TestWalkDefaults(t *testing.T) {
	root := writeTree(t, map[string]string{
		"iran.yml":                   "title: a",
		"nested/deep/venezuela.yaml": "title: b",
		"notes.md":                   "# no",
		".git/config.yml":            "x: y",
		"node_modules/pkg/a.yml":     "x: y",
	})

	files, err := Walk(Config{Root: root})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want := []string{"iran.yml", "nested/deep/venezuela.yaml"}
	if diff := cmp.Diff(want, relPaths(files)); diff != "" {
		t.Errorf("files (-want +got):\n%s", diff)
	}
	if files[0].Size != int64(len("title: a")) || len(files[0].Hash) != 64 {
		t.Errorf("file = %+v", files[0])
	}
}

func TestWalkIncludeExclude(t *testing.T) {
	root := writeTree(t, map[string]string{
		"graphs/iran.yml":       "a",
		"graphs/draft/iran.yml": "b",
		"other/x.yml":           "c",
	})

	files, err := Walk(Config{
		Root:    root,
		Include: []string{"graphs/**/*.yml"},
		Exclude: []string{"**/draft/**"},
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if diff := cmp.Diff([]string{"graphs/iran.yml"}, relPaths(files)); diff != "" {
		t.Errorf("files (-want +got):\n%s", diff)
	}
}

func TestWalkSizeLimit(t *testing.T) {
	root := writeTree(t, map[string]string{
		"small.yml": "a",
		"big.yml":   "0123456789",
	})
	files, err := Walk(Config{Root: root, MaxFileSize: 5})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if diff := cmp.Diff([]string{"small.yml"}, relPaths(files)); diff != "" {
		t.Errorf("files (-want +got):\n%s", diff)
	}
}

func TestWalkInvalidGlob(t *testing.T) {
	if _, err := Walk(Config{Root: t.TempDir(), Include: []string{"[unclosed"}}); err == nil {
		t.Error("expected error for bad glob")
	}
}

func TestWalkMissingRoot(t *testing.T) {
	if _, err := Walk(Config{Root: filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		path             string
		include, exclude []string
		want             bool
	}{
		{"a/b/c.yml", []string{"**/*.yml"}, nil, true},
		{"c.yml", []string{"*.yml"}, nil, true},
		{"a/c.yml", []string{"*.yml"}, nil, true},
		{"a/c.json", []string{"*.yml"}, nil, false},
		{"a/c.yml", nil, nil, true},
		{"a/c.yml", nil, []string{"a/**"}, false},
	}
	for _, tt := range tests {
		if got := Match(tt.path, tt.include, tt.exclude); got != tt.want {
			t.Errorf("Match(%q, %v, %v) = %v, want %v", tt.path, tt.include, tt.exclude, got, tt.want)
		}
	}
}
