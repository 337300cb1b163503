package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/dossier/internal/apperr"
	"github.com/starford/dossier/internal/storage"
)

// RawHandler serves markdown files from the content root and images from
// the assets directory, read-only.
type RawHandler struct {
	store     storage.Provider
	assetsDir string
}

// NewRawHandler creates a handler over store. assetsDir may be empty, in
// which case every asset request is 404.
func NewRawHandler(store storage.Provider, assetsDir string) *RawHandler {
	return &RawHandler{store: store, assetsDir: assetsDir}
}

// ServeMarkdown handles GET /raw/*. Only .md files are served.
func (h *RawHandler) ServeMarkdown(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if decoded, err := url.PathUnescape(rel); err == nil {
		rel = decoded
	}
	if rel == "" || !strings.HasSuffix(rel, ".md") {
		http.NotFound(w, r)
		return
	}
	data, err := h.store.Read(rel)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	writeMarkdown(w, r, data)
}

// safeName validates that the filename is a plain name (no path separators,
// no traversal) and returns the absolute path under the assets dir.
func (h *RawHandler) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	return filepath.Join(h.assetsDir, cleaned), nil
}

// ServeAsset handles GET /assets/{filename}.
func (h *RawHandler) ServeAsset(w http.ResponseWriter, r *http.Request) {
	if h.assetsDir == "" {
		http.NotFound(w, r)
		return
	}
	abs, err := h.safeName(chi.URLParam(r, "filename"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	info, statErr := os.Stat(abs)
	if statErr != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, abs)
}
