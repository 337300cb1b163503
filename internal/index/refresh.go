package index

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/starford/dossier/internal/catalog"
	"github.com/starford/dossier/internal/content"
	"github.com/starford/dossier/internal/storage"
)

// Event kinds passed to an EventCallback.
const (
	EventContentUpdated  = "content.updated"
	EventCatalogReloaded = "catalog.reloaded"
)

// EventCallback is called after a refresh changed what readers see.
// path is the document's view path for content events and empty for
// catalog reloads.
type EventCallback func(kind, path string)

// CatalogLoader produces a fresh catalog snapshot.
type CatalogLoader func() (*catalog.Catalog, error)

// Refresher keeps the catalog store and the index in step with the files on
// disk. Refreshes are serialised.
type Refresher struct {
	db       DocumentIndex
	catalogs *catalog.Store
	store    storage.Provider
	bases    content.Bases
	load     CatalogLoader
	logger   *slog.Logger
	cb       EventCallback

	mu sync.Mutex
}

// NewRefresher creates a refresher. load may be nil when the catalog cannot
// change at runtime; cb may be nil.
func NewRefresher(db DocumentIndex, catalogs *catalog.Store, store storage.Provider, bases content.Bases, load CatalogLoader, logger *slog.Logger, cb EventCallback) *Refresher {
	return &Refresher{
		db:       db,
		catalogs: catalogs,
		store:    store,
		bases:    bases,
		load:     load,
		logger:   logger,
		cb:       cb,
	}
}

// SyncContent re-indexes the current catalog and reports every changed
// document as content.updated.
func (r *Refresher) SyncContent() (SyncResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := Sync(r.db, r.catalogs.Get(), r.store, r.bases, r.logger)
	if err != nil {
		return res, err
	}
	for _, p := range res.Updated {
		r.emit(EventContentUpdated, p)
	}
	for _, p := range res.Removed {
		r.emit(EventContentUpdated, p)
	}
	return res, nil
}

// ReloadCatalog loads a new catalog, installs it and re-indexes. When the
// load fails the current catalog stays in place.
func (r *Refresher) ReloadCatalog() (SyncResult, error) {
	if r.load == nil {
		return SyncResult{}, errors.New("index: catalog reload not configured")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.load()
	if err != nil {
		return SyncResult{}, err
	}
	for _, d := range c.Duplicates() {
		r.logger.Warn("catalog: duplicate id ignored", slog.String("entry", d))
	}
	r.catalogs.Swap(c)
	r.logger.Info("catalog: reloaded", slog.Any("summary", c.Summary()))

	res, err := Sync(r.db, c, r.store, r.bases, r.logger)
	r.emit(EventCatalogReloaded, "")
	return res, err
}

func (r *Refresher) emit(kind, path string) {
	if r.cb != nil {
		r.cb(kind, path)
	}
}
