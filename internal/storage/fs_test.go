package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/dossier/internal/apperr"
)

func tempRoot(t *testing.T) (string, *FS) {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return dir, fs
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRead(t *testing.T) {
	dir, s := tempRoot(t)
	writeFile(t, dir, "writeups/hackthebox/meow.md", "# Meow\n")
	got, err := s.Read("writeups/hackthebox/meow.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "# Meow\n" {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestReadMissing(t *testing.T) {
	_, s := tempRoot(t)
	_, err := s.Read("nope.md")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestList(t *testing.T) {
	dir, s := tempRoot(t)
	writeFile(t, dir, "a.md", "a")
	writeFile(t, dir, "sub/b.md", "b")
	writeFile(t, dir, "sub/image.png", "png")

	entries, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	paths := map[string]bool{}
	for _, e := range entries {
		paths[e.Path] = true
		if e.Checksum == "" {
			t.Errorf("missing checksum for %s", e.Path)
		}
	}
	if !paths["a.md"] || !paths["sub/b.md"] {
		t.Errorf("paths = %v", paths)
	}

	sub, err := s.List("sub")
	if err != nil {
		t.Fatalf("List(sub): %v", err)
	}
	if len(sub) != 1 || sub[0].Path != "sub/b.md" {
		t.Errorf("sub = %v", sub)
	}
}

func TestPathTraversal(t *testing.T) {
	_, s := tempRoot(t)
	if _, err := s.Read("../../../etc/passwd"); err == nil {
		t.Error("expected error for path traversal")
	}
	if _, err := s.Read("/etc/passwd"); err == nil {
		t.Error("expected error for absolute path")
	}
	if _, err := s.List("../"); err == nil {
		t.Error("expected error listing outside root")
	}
}

func TestNewFS_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "file")
	if err := os.WriteFile(f, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFS(f); err == nil {
		t.Error("expected error for file root")
	}
}
