package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/dossier/internal/catalog"
	"github.com/starford/dossier/internal/checksum"
	"github.com/starford/dossier/internal/index"
	"github.com/starford/dossier/internal/models"
	"github.com/starford/dossier/internal/route"
	"github.com/starford/dossier/internal/site"
)

// Reloader reloads the catalog from disk.
type Reloader interface {
	ReloadCatalog() (index.SyncResult, error)
}

// Searcher runs full-text queries.
type Searcher interface {
	Search(query string, limit int) ([]index.SearchResult, error)
}

// Handler holds API route handlers.
type Handler struct {
	svc      *site.Service
	search   Searcher
	reloader Reloader
}

// NewHandler creates a new Handler. search and reloader may be nil; the
// matching endpoints then answer 503.
func NewHandler(svc *site.Service, search Searcher, reloader Reloader) *Handler {
	return &Handler{svc: svc, search: search, reloader: reloader}
}

// Resolve handles GET /api/resolve?path=.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = "/"
	}
	writeJSON(w, http.StatusOK, h.svc.Resolve(path))
}

// Catalog handles GET /api/catalog.
func (h *Handler) Catalog(w http.ResponseWriter, _ *http.Request) {
	c := h.svc.Catalog()
	writeJSON(w, http.StatusOK, CatalogResponse{
		Counts:     c.Summary(),
		Duplicates: nonNil(c.Duplicates()),
	})
}

// ListProjects handles GET /api/projects?category=&status=.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	c := h.svc.Catalog()
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, ProjectListResponse{
		Projects:     c.FilterProjects(q.Get("category"), q.Get("status")),
		Categories:   nonNil(c.ProjectCategories()),
		Statuses:     nonNil(c.ProjectStatuses()),
		StatusCounts: c.ProjectStatusCounts(),
	})
}

// GetProject handles GET /api/projects/{id}.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, ok := h.svc.Catalog().Project(chi.URLParam(r, "id"))
	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ProjectContent handles GET /api/projects/{id}/content.
func (h *Handler) ProjectContent(w http.ResponseWriter, r *http.Request) {
	h.writeContent(w, r, route.View{Kind: route.KindProject, ID: chi.URLParam(r, "id")})
}

// GetPlatform handles GET /api/boxes/{platform}. Unknown platforms answer
// with four empty groups, like the platform page.
func (h *Handler) GetPlatform(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "platform")
	p := models.Platform(strings.ToLower(raw))
	writeJSON(w, http.StatusOK, PlatformResponse{
		Platform:    p,
		DisplayName: p.DisplayName(),
		Description: p.Description(),
		Groups:      h.svc.Catalog().GroupByDifficulty(raw),
	})
}

// GetWriteup handles GET /api/boxes/{platform}/{id}.
func (h *Handler) GetWriteup(w http.ResponseWriter, r *http.Request) {
	wu, ok := h.svc.Catalog().Writeup(chi.URLParam(r, "platform"), chi.URLParam(r, "id"))
	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, wu)
}

// WriteupContent handles GET /api/boxes/{platform}/{id}/content.
func (h *Handler) WriteupContent(w http.ResponseWriter, r *http.Request) {
	h.writeContent(w, r, route.View{
		Kind:     route.KindWriteup,
		Platform: chi.URLParam(r, "platform"),
		ID:       chi.URLParam(r, "id"),
	})
}

// ListCTF handles GET /api/ctf?category=&difficulty=.
func (h *Handler) ListCTF(w http.ResponseWriter, r *http.Request) {
	c := h.svc.Catalog()
	q := r.URL.Query()
	items := c.CTF()
	if v := q.Get("category"); v != "" && v != catalog.FilterAll {
		items = c.CTFByCategory(v)
	}
	if v := q.Get("difficulty"); v != "" && v != catalog.FilterAll {
		items = intersectCTF(items, c.CTFByDifficulty(v))
	}
	writeJSON(w, http.StatusOK, CTFListResponse{CTF: nonNil(items)})
}

func intersectCTF(a, b []models.CTFWriteup) []models.CTFWriteup {
	keep := make(map[string]struct{}, len(b))
	for _, w := range b {
		keep[w.ID] = struct{}{}
	}
	var out []models.CTFWriteup
	for _, w := range a {
		if _, ok := keep[w.ID]; ok {
			out = append(out, w)
		}
	}
	return out
}

// GetCTF handles GET /api/ctf/{id}.
func (h *Handler) GetCTF(w http.ResponseWriter, r *http.Request) {
	wu, ok := h.svc.Catalog().CTFWriteup(chi.URLParam(r, "id"))
	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, wu)
}

// CTFContent handles GET /api/ctf/{id}/content.
func (h *Handler) CTFContent(w http.ResponseWriter, r *http.Request) {
	h.writeContent(w, r, route.View{Kind: route.KindCTF, ID: chi.URLParam(r, "id")})
}

// ListBlog handles GET /api/blog?category=.
func (h *Handler) ListBlog(w http.ResponseWriter, r *http.Request) {
	c := h.svc.Catalog()
	posts := c.Blog()
	if v := r.URL.Query().Get("category"); v != "" && v != catalog.FilterAll {
		posts = c.BlogByCategory(v)
	}
	writeJSON(w, http.StatusOK, BlogListResponse{Posts: nonNil(posts)})
}

// GetBlogPost handles GET /api/blog/{id}.
func (h *Handler) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	p, ok := h.svc.Catalog().BlogPost(chi.URLParam(r, "id"))
	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// BlogContent handles GET /api/blog/{id}/content.
func (h *Handler) BlogContent(w http.ResponseWriter, r *http.Request) {
	h.writeContent(w, r, route.View{Kind: route.KindBlog, ID: chi.URLParam(r, "id")})
}

// Skills handles GET /api/skills.
func (h *Handler) Skills(w http.ResponseWriter, _ *http.Request) {
	c := h.svc.Catalog()
	writeJSON(w, http.StatusOK, SkillsResponse{Groups: c.SkillGroups(), Skills: nonNil(c.Skills())})
}

// Certifications handles GET /api/certifications.
func (h *Handler) Certifications(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Catalog().CertificationsByStatus())
}

// Search handles GET /api/search?q=&limit=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if h.search == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("search unavailable"))
		return
	}
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid limit"))
			return
		}
		limit = n
	}
	results, err := h.search.Search(q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// Reload handles POST /api/reload.
func (h *Handler) Reload(w http.ResponseWriter, _ *http.Request) {
	if h.reloader == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("reload unavailable"))
		return
	}
	res, err := h.reloader.ReloadCatalog()
	if err != nil {
		slog.Error("reload failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, ReloadResponse{
		Counts:  h.svc.Catalog().Summary(),
		Updated: len(res.Updated),
		Removed: len(res.Removed),
	})
}

// writeContent answers with the view's markdown, or the fallback document
// when loading fails. Unknown entities and projects without long-form
// content are 404.
func (h *Handler) writeContent(w http.ResponseWriter, r *http.Request, v route.View) {
	page := h.svc.ResolveView(v)
	if !page.Found() || page.Content == nil {
		writeNotFound(w)
		return
	}
	text := []byte(h.svc.Content(r.Context(), page))
	writeMarkdown(w, r, text)
}

func writeMarkdown(w http.ResponseWriter, r *http.Request, text []byte) {
	etag := checksum.ETag(text)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
