//go:build sqlite_fts5

package index

import "testing"

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM documents_fts`).Scan(&count); err != nil {
		t.Fatalf("documents_fts table missing: %v", err)
	}
}

func TestFTS5_SearchWithSnippet(t *testing.T) {
	db := testDB(t)
	d := Document{Path: "/blog/fts", Kind: "blog", Title: "FTS Post", Checksum: "f1", Tags: []string{"search"}}
	if err := db.UpsertDocument(d, "Dossier provides powerful full-text search capabilities."); err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}

	results, err := db.Search("powerful", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Path != "/blog/fts" {
		t.Errorf("path = %q", results[0].Path)
	}
	if results[0].Snippet == "" {
		t.Error("expected non-empty snippet")
	}
}

func TestFTS5_DeleteRemovesEntry(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDocument(Document{Path: "/blog/gone", Kind: "blog", Checksum: "1"}, "ephemeral")
	_ = db.DeleteDocument("/blog/gone")

	results, err := db.Search("ephemeral", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("deleted document still searchable: %+v", results)
	}
}
