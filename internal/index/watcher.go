package index

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/dossier/internal/catalog"
)

const settleDelay = 200 * time.Millisecond

// Watch starts an fsnotify watcher on the content root and, when dataDir is
// not empty, on the catalog data directory. It processes change events until
// ctx is cancelled:
//   - markdown changes under contentRoot re-sync the index
//   - changes to catalog files in dataDir reload the catalog
//
// Bursts of events are collapsed into one refresh per kind. New directories
// created at runtime are automatically added to the watch list.
func Watch(ctx context.Context, r *Refresher, contentRoot, dataDir string, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, contentRoot); err != nil {
		return err
	}
	if dataDir != "" {
		if dataDir, err = filepath.Abs(dataDir); err != nil {
			return err
		}
		if err := w.Add(dataDir); err != nil {
			return err
		}
	}

	logger.Info("watcher: started",
		slog.String("content_root", contentRoot),
		slog.String("data_dir", dataDir))

	var contentTimer, catalogTimer debounce
	defer contentTimer.stop()
	defer catalogTimer.stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case <-contentTimer.c:
			contentTimer.fired()
			if _, err := r.SyncContent(); err != nil {
				logger.Warn("watcher: sync failed", slog.String("error", err.Error()))
			}

		case <-catalogTimer.c:
			catalogTimer.fired()
			if _, err := r.ReloadCatalog(); err != nil {
				logger.Warn("watcher: catalog reload failed", slog.String("error", err.Error()))
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			absPath := ev.Name

			if dataDir != "" && filepath.Dir(absPath) == dataDir && isCatalogFile(absPath) {
				logger.Debug("watcher: catalog change", slog.String("path", absPath), slog.String("op", ev.Op.String()))
				catalogTimer.schedule(settleDelay)
				continue
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, absPath); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", absPath),
							slog.String("error", addErr.Error()))
					} else {
						logger.Debug("watcher: watching new dir", slog.String("path", absPath))
					}
					// The new directory may already hold markdown files.
					contentTimer.schedule(settleDelay)
					continue
				}
			}

			if !strings.HasSuffix(absPath, ".md") {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				logger.Debug("watcher: content change", slog.String("path", absPath), slog.String("op", ev.Op.String()))
				contentTimer.schedule(settleDelay)
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// debounce is a resettable one-shot timer whose channel is nil while idle.
type debounce struct {
	t *time.Timer
	c <-chan time.Time
}

func (d *debounce) schedule(delay time.Duration) {
	if d.t == nil {
		d.t = time.NewTimer(delay)
	} else {
		d.t.Reset(delay)
	}
	d.c = d.t.C
}

func (d *debounce) fired() {
	d.c = nil
}

func (d *debounce) stop() {
	if d.t != nil {
		d.t.Stop()
	}
}

// isCatalogFile reports whether path names one of the catalog collections.
// Editor swap files and unrelated YAML in the data dir are ignored.
func isCatalogFile(path string) bool {
	return slices.Contains(catalog.Files(), filepath.Base(path))
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
