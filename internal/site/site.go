// Package site assembles pages: a path is resolved to a view, the view's
// entity is looked up in the current catalog, and long-form content is
// fetched on demand.
package site

import (
	"context"

	"github.com/starford/dossier/internal/catalog"
	"github.com/starford/dossier/internal/content"
	"github.com/starford/dossier/internal/models"
	"github.com/starford/dossier/internal/route"
)

// ContentRef names the markdown document a page displays.
type ContentRef struct {
	Kind content.Kind `json:"kind"`
	Path string       `json:"path"`
}

// Page is the resolved, entity-backed form of a view. At most one of the
// entity fields is set, matching View.Kind.
type Page struct {
	// Requested is what the path resolved to.
	Requested route.View `json:"requested"`
	// View is what will be shown: Requested, or the main view when
	// Requested needs an entity that does not exist.
	View route.View `json:"view"`

	Project *models.Project    `json:"project,omitempty"`
	Writeup *models.Writeup    `json:"writeup,omitempty"`
	CTF     *models.CTFWriteup `json:"ctf,omitempty"`
	Post    *models.BlogPost   `json:"post,omitempty"`

	Content *ContentRef `json:"content,omitempty"`
}

// Found reports whether the requested view is the one being shown.
func (p Page) Found() bool {
	return p.Requested == p.View
}

// Title returns the entity title, if any.
func (p Page) Title() string {
	switch {
	case p.Project != nil:
		return p.Project.Title
	case p.Writeup != nil:
		return p.Writeup.Title
	case p.CTF != nil:
		return p.CTF.Title
	case p.Post != nil:
		return p.Post.Title
	}
	return ""
}

// Service resolves pages against the current catalog snapshot.
type Service struct {
	store  *catalog.Store
	loader *content.Loader
}

// NewService creates a page service.
func NewService(store *catalog.Store, loader *content.Loader) *Service {
	return &Service{store: store, loader: loader}
}

// Catalog returns the current catalog snapshot.
func (s *Service) Catalog() *catalog.Catalog {
	return s.store.Get()
}

// Resolve resolves path into a page.
func (s *Service) Resolve(path string) Page {
	return s.ResolveView(route.Resolve(path))
}

// ResolveView looks up the entity v needs. A miss degrades to the main view.
func (s *Service) ResolveView(v route.View) Page {
	return Lookup(s.store.Get(), v)
}

// Lookup resolves v against c. It never fails.
func Lookup(c *catalog.Catalog, v route.View) Page {
	p := Page{Requested: v, View: v}
	switch v.Kind {
	case route.KindProject:
		if e, ok := c.Project(v.ID); ok {
			p.Project = &e
			if e.ContentPath != "" {
				p.Content = &ContentRef{Kind: content.KindProject, Path: e.ContentPath}
			}
			return p
		}
	case route.KindWriteup:
		if e, ok := c.Writeup(v.Platform, v.ID); ok {
			p.Writeup = &e
			p.Content = &ContentRef{Kind: content.KindWriteup, Path: e.ContentPath}
			return p
		}
	case route.KindCTF:
		if e, ok := c.CTFWriteup(v.ID); ok {
			p.CTF = &e
			p.Content = &ContentRef{Kind: content.KindCTF, Path: e.ContentPath}
			return p
		}
	case route.KindBlog:
		if e, ok := c.BlogPost(v.ID); ok {
			p.Post = &e
			p.Content = &ContentRef{Kind: content.KindBlog, Path: e.ContentPath}
			return p
		}
	default:
		return p
	}
	p.View = route.Main(route.DefaultSection)
	return p
}

// Content fetches the page's long-form content, or returns "" when the page
// has none.
func (s *Service) Content(ctx context.Context, p Page) string {
	if p.Content == nil {
		return ""
	}
	return s.loader.Load(ctx, p.Content.Kind, p.Content.Path)
}
