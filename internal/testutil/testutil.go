// Package testutil provides shared test helpers for content trees, catalogs
// and the search index.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/dossier/internal/catalog"
	"github.com/starford/dossier/internal/index"
	"github.com/starford/dossier/internal/storage"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDB creates a temporary SQLite index that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "dossier-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ContentTree creates a temporary content root holding files (slash
// separated relative path → content).
func ContentTree(t *testing.T, files map[string]string) (string, storage.Provider) {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		WriteFile(t, root, rel, body)
	}
	store, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	return root, store
}

// WriteFile writes content to rel under root, creating parent directories.
func WriteFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// DefaultCatalog loads the built-in data set.
func DefaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	return c
}

// DefaultContent is a content tree matching the built-in catalog's content paths.
func DefaultContent() map[string]string {
	return map[string]string{
		"writeups/hackthebox/meow.md": "---\ntitle: Meow\n---\n# Meow\n\nTelnet with a blank root password.\n",
		"writeups/tryhackme/blue.md":  "# Blue\n\nEternalBlue.\n",
		"writeups/vulnhub/kioptrix-1.md": "# Kioptrix Level 1\n\nSamba trans2open.\n",
		"ctf/baby-rsa.md":             "# Baby RSA\n\nCube root.\n",
		"blog/methodology.md":         "# My Box Methodology\n\nRecon first.\n",
		"projects/browsint.md":        "# Browsint\n\nOSINT toolkit.\n",
	}
}
