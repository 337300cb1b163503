package index

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/starford/dossier/internal/apperr"
	"github.com/starford/dossier/internal/catalog"
	"github.com/starford/dossier/internal/checksum"
	"github.com/starford/dossier/internal/content"
	"github.com/starford/dossier/internal/parser"
	"github.com/starford/dossier/internal/route"
	"github.com/starford/dossier/internal/storage"
)

// SyncResult lists the document paths a Sync changed.
type SyncResult struct {
	Updated []string `json:"updated"`
	Removed []string `json:"removed"`
	// Orphans are markdown files no catalog entry points at.
	Orphans []string `json:"orphans,omitempty"`
}

// Changed reports whether the sync touched the index.
func (r SyncResult) Changed() bool {
	return len(r.Updated) > 0 || len(r.Removed) > 0
}

type pending struct {
	doc  Document
	kind content.Kind
	path string
	meta any
}

// Documents lists the searchable entities of c with their content sources,
// resolved against bases. Checksums and bodies are filled in by Sync.
func Documents(c *catalog.Catalog, bases content.Bases) []Document {
	items := pendingDocuments(c, bases)
	out := make([]Document, len(items))
	for i, p := range items {
		out[i] = p.doc
	}
	return out
}

func pendingDocuments(c *catalog.Catalog, bases content.Bases) []pending {
	var out []pending
	add := func(v route.View, k content.Kind, title, summary string, tags []string, contentPath string, meta any) {
		d := Document{
			Path:    v.Path(),
			Kind:    string(v.Kind),
			Title:   title,
			Summary: summary,
			Tags:    tags,
		}
		if contentPath != "" {
			d.Source = strings.TrimPrefix(bases.Join(k, contentPath), "/")
		}
		out = append(out, pending{doc: d, kind: k, path: contentPath, meta: meta})
	}

	for _, p := range c.Projects() {
		add(route.View{Kind: route.KindProject, ID: p.ID}, content.KindProject, p.Title, p.Summary, p.Tags, p.ContentPath, p)
	}
	for _, w := range c.Writeups() {
		v := route.View{Kind: route.KindWriteup, Platform: strings.ToLower(string(w.Platform)), ID: w.ID}
		add(v, content.KindWriteup, w.Title, w.Summary, w.Tags, w.ContentPath, w)
	}
	for _, w := range c.CTF() {
		add(route.View{Kind: route.KindCTF, ID: w.ID}, content.KindCTF, w.Title, w.Summary, w.Tags, w.ContentPath, w)
	}
	for _, b := range c.Blog() {
		add(route.View{Kind: route.KindBlog, ID: b.ID}, content.KindBlog, b.Title, b.Summary, b.Tags, b.ContentPath, b)
	}
	return out
}

// Sync brings the index up to date with the catalog and the content tree:
//   - new/changed entities (metadata or markdown) are parsed and upserted
//   - entities no longer in the catalog are deleted from the index
//
// A missing or unreadable markdown file is logged and indexed with an empty
// body; it never fails the sync.
func Sync(db DocumentIndex, c *catalog.Catalog, store storage.Provider, bases content.Bases, logger *slog.Logger) (SyncResult, error) {
	var res SyncResult

	checksums, err := db.AllChecksums()
	if err != nil {
		return res, err
	}

	items := pendingDocuments(c, bases)
	wanted := make(map[string]struct{}, len(items))
	sources := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, dup := wanted[it.doc.Path]; dup {
			continue
		}
		wanted[it.doc.Path] = struct{}{}

		var raw []byte
		if it.doc.Source != "" {
			sources[it.doc.Source] = struct{}{}
			raw, err = store.Read(it.doc.Source)
			if err != nil {
				level := slog.LevelWarn
				if errors.Is(err, apperr.ErrNotFound) {
					level = slog.LevelDebug
				}
				logger.Log(context.Background(), level, "sync: read content failed",
					slog.String("path", it.doc.Path),
					slog.String("source", it.doc.Source),
					slog.String("error", err.Error()))
				raw = nil
			}
		}

		cs := documentChecksum(it.meta, raw)
		if checksums[it.doc.Path] == cs {
			continue
		}
		if err := indexDocument(db, it.doc, cs, raw); err != nil {
			logger.Warn("sync: index failed", slog.String("path", it.doc.Path), slog.String("error", err.Error()))
			continue
		}
		logger.Debug("sync: indexed", slog.String("path", it.doc.Path))
		res.Updated = append(res.Updated, it.doc.Path)
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := wanted[p]; ok {
			continue
		}
		if err := db.DeleteDocument(p); err != nil {
			logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			continue
		}
		logger.Debug("sync: removed stale", slog.String("path", p))
		res.Removed = append(res.Removed, p)
	}

	if entries, err := store.List(""); err == nil {
		for _, e := range entries {
			if _, ok := sources[e.Path]; !ok {
				res.Orphans = append(res.Orphans, e.Path)
			}
		}
	}

	return res, nil
}

func documentChecksum(meta any, raw []byte) string {
	b, _ := json.Marshal(meta)
	b = append(b, 0)
	return checksum.Sum(append(b, raw...))
}

// indexDocument parses raw and upserts d with its body. Frontmatter tags are
// merged into the entity's tags.
func indexDocument(db DocumentIndex, d Document, cs string, raw []byte) error {
	parsed := parser.Parse(raw)
	d.Checksum = cs
	d.Tags = mergeTags(d.Tags, parsed.Tags)
	if d.Title == "" {
		d.Title = parsed.Title
	}
	return db.UpsertDocument(d, parsed.Body)
}

func mergeTags(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, t := range append(append([]string{}, a...), b...) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
