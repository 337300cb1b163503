package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced on POST /reload;
// read endpoints are public.
// sseHandler, if non-nil, is mounted at GET /events.
func NewRouter(h *Handler, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/resolve", h.Resolve)
	r.Get("/catalog", h.Catalog)

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", h.ListProjects)
		r.Get("/{id}", h.GetProject)
		r.Get("/{id}/content", h.ProjectContent)
	})

	r.Route("/boxes/{platform}", func(r chi.Router) {
		r.Get("/", h.GetPlatform)
		r.Get("/{id}", h.GetWriteup)
		r.Get("/{id}/content", h.WriteupContent)
	})

	r.Route("/ctf", func(r chi.Router) {
		r.Get("/", h.ListCTF)
		r.Get("/{id}", h.GetCTF)
		r.Get("/{id}/content", h.CTFContent)
	})

	r.Route("/blog", func(r chi.Router) {
		r.Get("/", h.ListBlog)
		r.Get("/{id}", h.GetBlogPost)
		r.Get("/{id}/content", h.BlogContent)
	})

	r.Get("/skills", h.Skills)
	r.Get("/certifications", h.Certifications)
	r.Get("/search", h.Search)

	r.With(AuthMiddleware(authEnabled, token)).Post("/reload", h.Reload)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeNotFound(w)
	})

	return r
}
