// Package web renders the site's HTML views.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/starford/dossier/internal/catalog"
	"github.com/starford/dossier/internal/markdown"
	"github.com/starford/dossier/internal/models"
	"github.com/starford/dossier/internal/route"
	"github.com/starford/dossier/internal/site"
)

// templateFS contains the HTML templates bundled with the binary.
//
//go:embed templates/*.gohtml
var templateFS embed.FS

var viewTemplates = map[route.Kind]string{
	route.KindMain:           "main.gohtml",
	route.KindProjects:       "projects.gohtml",
	route.KindProject:        "project.gohtml",
	route.KindPlatform:       "platform.gohtml",
	route.KindWriteup:        "writeup.gohtml",
	route.KindCTF:            "ctf.gohtml",
	route.KindBlog:           "blog.gohtml",
	route.KindSkills:         "skills.gohtml",
	route.KindCertifications: "certifications.gohtml",
}

// Handler serves every view kind. It resolves the request path, so it is
// mounted as the router's catch-all.
type Handler struct {
	svc    *site.Service
	md     *markdown.Renderer
	views  map[route.Kind]*template.Template
	logger *slog.Logger
}

// NewHandler parses the embedded templates.
func NewHandler(svc *site.Service, md *markdown.Renderer, logger *slog.Logger) (*Handler, error) {
	base, err := template.New("layout.gohtml").Funcs(template.FuncMap{
		"upper": strings.ToUpper,
		"join":  strings.Join,
	}).ParseFS(templateFS, "templates/layout.gohtml")
	if err != nil {
		return nil, fmt.Errorf("web: parse layout: %w", err)
	}

	views := make(map[route.Kind]*template.Template, len(viewTemplates))
	for kind, name := range viewTemplates {
		t, err := template.Must(base.Clone()).ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("web: parse %s: %w", name, err)
		}
		views[kind] = t
	}
	return &Handler{svc: svc, md: md, views: views, logger: logger}, nil
}

// viewData is the template context. Only the fields of the current view
// kind are populated.
type viewData struct {
	Title   string
	Path    string
	Page    site.Page
	Catalog *catalog.Catalog
	Body    template.HTML

	// main
	Section   string
	Platforms []platformCard

	// projects
	Category     string
	Status       string
	Projects     []models.Project
	Categories   []models.ProjectCategory
	Statuses     []models.ProjectStatus
	StatusCounts map[models.ProjectStatus]int

	// platform
	Platform models.Platform
	Groups   []catalog.DifficultyGroup

	SkillGroups []catalog.SkillGroup
	Roadmap     catalog.Roadmap
}

type platformCard struct {
	Platform models.Platform
	Count    int
}

// ServeHTTP renders the view for r.URL.Path. A path naming a missing entity
// renders the main page with status 404.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	page := h.svc.Resolve(r.URL.Path)
	data := h.build(r, page)

	var buf bytes.Buffer
	if err := h.views[page.View.Kind].ExecuteTemplate(&buf, "layout.gohtml", data); err != nil {
		h.logger.Error("web: render failed",
			slog.String("path", r.URL.Path),
			slog.String("view", string(page.View.Kind)),
			slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if !page.Found() {
		status = http.StatusNotFound
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) build(r *http.Request, page site.Page) viewData {
	c := h.svc.Catalog()
	d := viewData{
		Title:   page.Title(),
		Path:    page.View.Path(),
		Page:    page,
		Catalog: c,
	}

	if page.Content != nil {
		text := h.svc.Content(r.Context(), page)
		body, err := h.md.Render(text)
		if err != nil {
			h.logger.Warn("web: markdown failed", slog.String("path", d.Path), slog.String("error", err.Error()))
			body = template.HTML("<pre>" + template.HTMLEscapeString(text) + "</pre>") //nolint:gosec // escaped above
		}
		d.Body = body
	}

	switch page.View.Kind {
	case route.KindMain:
		d.Section = page.View.Section
		for _, p := range models.Platforms() {
			d.Platforms = append(d.Platforms, platformCard{Platform: p, Count: len(c.WriteupsByPlatform(string(p)))})
		}
	case route.KindProjects:
		q := r.URL.Query()
		d.Title = "Projects"
		d.Category = filterValue(q, "category")
		d.Status = filterValue(q, "status")
		d.Projects = c.FilterProjects(d.Category, d.Status)
		d.Categories = c.ProjectCategories()
		d.Statuses = c.ProjectStatuses()
		d.StatusCounts = c.ProjectStatusCounts()
	case route.KindPlatform:
		d.Platform = models.Platform(strings.ToLower(page.View.Platform))
		d.Title = d.Platform.DisplayName()
		d.Groups = c.GroupByDifficulty(page.View.Platform)
	case route.KindSkills:
		d.Title = "Skills"
		d.SkillGroups = c.SkillGroups()
	case route.KindCertifications:
		d.Title = "Certifications"
		d.Roadmap = c.CertificationsByStatus()
	}
	return d
}

func filterValue(q url.Values, key string) string {
	if v := q.Get(key); v != "" {
		return v
	}
	return catalog.FilterAll
}
