package index

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/dossier/internal/apperr"
	"github.com/starford/dossier/internal/catalog"
	"github.com/starford/dossier/internal/content"
	"github.com/starford/dossier/internal/models"
	"github.com/starford/dossier/internal/storage"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "dossier-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testContent(t *testing.T, files map[string]string) (string, storage.Provider) {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		writeFile(t, root, rel, body)
	}
	store, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	return root, store
}

func writeFile(t *testing.T, root, rel, body string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testCatalog() *catalog.Catalog {
	return catalog.New(catalog.Data{
		Projects: []models.Project{
			{ID: "browsint", Title: "Browsint", Summary: "OSINT toolkit", Tags: []string{"osint"}, ContentPath: "browsint.md"},
			{ID: "lab", Title: "Lab", Summary: "No long-form page"},
		},
		Writeups: []models.Writeup{
			{ID: "meow", Title: "Meow", Platform: models.PlatformHackTheBox, Tags: []string{"telnet"}, ContentPath: "hackthebox/meow.md"},
		},
		CTF:  []models.CTFWriteup{{ID: "baby-rsa", Title: "Baby RSA", ContentPath: "baby-rsa.md"}},
		Blog: []models.BlogPost{{ID: "methodology", Title: "Methodology", ContentPath: "methodology.md"}},
	})
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	n, err := db.Count()
	if err != nil {
		t.Fatalf("documents table missing: %v", err)
	}
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}

func TestUpsertAndGetDocument(t *testing.T) {
	db := testDB(t)
	d := Document{
		Path:      "/ctf/baby-rsa",
		Kind:      "ctf",
		Title:     "Baby RSA",
		Tags:      []string{"rsa"},
		Source:    "ctf/baby-rsa.md",
		Checksum:  "abc123",
		UpdatedAt: time.Now(),
	}
	if err := db.UpsertDocument(d, "cube root of the ciphertext"); err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}

	got, err := db.GetDocument("/ctf/baby-rsa")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if got.Title != "Baby RSA" || got.Kind != "ctf" || got.Source != "ctf/baby-rsa.md" {
		t.Errorf("document = %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "rsa" {
		t.Errorf("tags = %v", got.Tags)
	}
	cs, err := db.GetChecksum("/ctf/baby-rsa")
	if err != nil {
		t.Fatalf("GetChecksum: %v", err)
	}
	if cs != "abc123" {
		t.Errorf("checksum = %q, want %q", cs, "abc123")
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	db := testDB(t)
	_, err := db.GetDocument("/blog/nope")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpsertUpdatesExisting(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDocument(Document{Path: "/blog/a", Kind: "blog", Title: "Old", Checksum: "1"}, "old body")
	_ = db.UpsertDocument(Document{Path: "/blog/a", Kind: "blog", Title: "New", Checksum: "2"}, "new body")

	got, err := db.GetDocument("/blog/a")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "New" || got.Checksum != "2" {
		t.Errorf("document = %+v", got)
	}
	if n, _ := db.Count(); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestDeleteDocument(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDocument(Document{Path: "/blog/del", Kind: "blog", Checksum: "x"}, "body")

	if err := db.DeleteDocument("/blog/del"); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	cs, _ := db.GetChecksum("/blog/del")
	if cs != "" {
		t.Errorf("deleted document still has checksum %q", cs)
	}
}

func TestGetChecksum_NotFound(t *testing.T) {
	db := testDB(t)
	cs, err := db.GetChecksum("/projects/nonexistent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs != "" {
		t.Errorf("expected empty checksum, got %q", cs)
	}
}

func TestSearch_Basic(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDocument(Document{Path: "/blog/s", Kind: "blog", Title: "Search Me", Checksum: "1"}, "uniqueword appears here")
	_ = db.UpsertDocument(Document{Path: "/blog/t", Kind: "blog", Title: "Other", Checksum: "2"}, "nothing to see")

	results, err := db.Search("uniqueword", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Path != "/blog/s" || results[0].Kind != "blog" {
		t.Errorf("search results = %+v, want 1 hit for /blog/s", results)
	}
}

func TestDocuments(t *testing.T) {
	docs := Documents(testCatalog(), content.DefaultBases())

	want := map[string]string{
		"/projects/browsint":     "projects/browsint.md",
		"/projects/lab":          "",
		"/boxes/hackthebox/meow": "writeups/hackthebox/meow.md",
		"/ctf/baby-rsa":          "ctf/baby-rsa.md",
		"/blog/methodology":      "blog/methodology.md",
	}
	if len(docs) != len(want) {
		t.Fatalf("got %d documents, want %d", len(docs), len(want))
	}
	for _, d := range docs {
		src, ok := want[d.Path]
		if !ok {
			t.Errorf("unexpected document %s", d.Path)
			continue
		}
		if d.Source != src {
			t.Errorf("%s: source = %q, want %q", d.Path, d.Source, src)
		}
	}
}

func TestSync(t *testing.T) {
	db := testDB(t)
	root, store := testContent(t, map[string]string{
		"projects/browsint.md":        "# Browsint\n\nRecon automation.",
		"writeups/hackthebox/meow.md": "---\ntags: [blank-password]\n---\n# Meow\n\nTelnet as root.",
		"ctf/baby-rsa.md":             "# Baby RSA\n\nCube root.",
		"notes/orphan.md":             "# Orphan",
	})
	c := testCatalog()
	bases := content.DefaultBases()

	res, err := Sync(db, c, store, bases, quietLogger())
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(res.Updated) != 5 {
		t.Errorf("updated = %v, want 5 documents", res.Updated)
	}
	if len(res.Orphans) != 1 || res.Orphans[0] != "notes/orphan.md" {
		t.Errorf("orphans = %v", res.Orphans)
	}

	// The blog post has no markdown file but is still searchable by title.
	if hits, _ := db.Search("Methodology", 10); len(hits) != 1 {
		t.Errorf("blog hits = %+v", hits)
	}
	// Frontmatter tags are merged, frontmatter itself is not indexed.
	meow, err := db.GetDocument("/boxes/hackthebox/meow")
	if err != nil {
		t.Fatal(err)
	}
	if len(meow.Tags) != 2 || meow.Tags[1] != "blank-password" {
		t.Errorf("tags = %v", meow.Tags)
	}
	if hits, _ := db.Search("Telnet as root", 10); len(hits) != 1 {
		t.Errorf("body hits = %+v", hits)
	}

	// Second run with no changes is a no-op.
	res, err = Sync(db, c, store, bases, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed() {
		t.Errorf("unchanged sync reported %+v", res)
	}

	// Editing one file re-indexes only that document.
	writeFile(t, root, "ctf/baby-rsa.md", "# Baby RSA\n\nHastad broadcast.")
	res, _ = Sync(db, c, store, bases, quietLogger())
	if len(res.Updated) != 1 || res.Updated[0] != "/ctf/baby-rsa" {
		t.Errorf("updated = %v, want [/ctf/baby-rsa]", res.Updated)
	}

	// Entities dropped from the catalog are removed.
	smaller := catalog.New(catalog.Data{Projects: c.Projects()})
	res, _ = Sync(db, smaller, store, bases, quietLogger())
	if len(res.Removed) != 3 {
		t.Errorf("removed = %v, want 3 documents", res.Removed)
	}
	if n, _ := db.Count(); n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

func TestRefresher_ReloadCatalog(t *testing.T) {
	db := testDB(t)
	_, store := testContent(t, nil)
	catalogs := catalog.NewStore(catalog.New(catalog.Data{}))

	var events []string
	next := testCatalog()
	r := NewRefresher(db, catalogs, store, content.DefaultBases(),
		func() (*catalog.Catalog, error) { return next, nil },
		quietLogger(),
		func(kind, path string) { events = append(events, kind+":"+path) })

	if _, err := r.ReloadCatalog(); err != nil {
		t.Fatalf("ReloadCatalog: %v", err)
	}
	if catalogs.Get() != next {
		t.Error("catalog not swapped")
	}
	if n, _ := db.Count(); n != 5 {
		t.Errorf("count = %d, want 5", n)
	}
	if len(events) != 1 || events[0] != EventCatalogReloaded+":" {
		t.Errorf("events = %v", events)
	}
}

func TestRefresher_FailedReloadKeepsCatalog(t *testing.T) {
	db := testDB(t)
	_, store := testContent(t, nil)
	old := testCatalog()
	catalogs := catalog.NewStore(old)

	r := NewRefresher(db, catalogs, store, content.DefaultBases(),
		func() (*catalog.Catalog, error) { return nil, errors.New("bad yaml") },
		quietLogger(), nil)

	if _, err := r.ReloadCatalog(); err == nil {
		t.Fatal("expected error")
	}
	if catalogs.Get() != old {
		t.Error("catalog replaced after failed load")
	}
}

func TestRefresher_ReloadNotConfigured(t *testing.T) {
	_, store := testContent(t, nil)
	r := NewRefresher(testDB(t), catalog.NewStore(testCatalog()), store, content.DefaultBases(), nil, quietLogger(), nil)
	if _, err := r.ReloadCatalog(); err == nil {
		t.Fatal("expected error")
	}
}

func TestRefresher_SyncContentEvents(t *testing.T) {
	db := testDB(t)
	_, store := testContent(t, map[string]string{"ctf/baby-rsa.md": "# Baby RSA"})

	var events []string
	r := NewRefresher(db, catalog.NewStore(testCatalog()), store, content.DefaultBases(), nil, quietLogger(),
		func(kind, path string) { events = append(events, kind+":"+path) })

	if _, err := r.SyncContent(); err != nil {
		t.Fatal(err)
	}
	if len(events) != 5 {
		t.Fatalf("events = %v", events)
	}
	for _, e := range events {
		if e[:len(EventContentUpdated)] != EventContentUpdated {
			t.Errorf("unexpected event %s", e)
		}
	}
}
