package site

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/dossier/internal/catalog"
	"github.com/starford/dossier/internal/content"
	"github.com/starford/dossier/internal/models"
	"github.com/starford/dossier/internal/route"
	"github.com/starford/dossier/internal/testutil"
)

type mapFetcher map[string]string

func (m mapFetcher) Fetch(_ context.Context, location string) ([]byte, error) {
	body, ok := m[location]
	if !ok {
		return nil, errors.New("missing")
	}
	return []byte(body), nil
}

func newService(t *testing.T, f content.Fetcher) *Service {
	t.Helper()
	c := catalog.New(catalog.Data{
		Projects: []models.Project{
			{ID: "browsint", Title: "Browsint", ContentPath: "browsint.md"},
			{ID: "notes", Title: "Notes"},
		},
		Writeups: []models.Writeup{
			{ID: "meow", Title: "Meow", Platform: models.PlatformHackTheBox, ContentPath: "hackthebox/meow.md"},
		},
		CTF:  []models.CTFWriteup{{ID: "baby-rsa", Title: "Baby RSA", ContentPath: "baby-rsa.md"}},
		Blog: []models.BlogPost{{ID: "methodology", Title: "Methodology", ContentPath: "methodology.md"}},
	})
	return NewService(catalog.NewStore(c), content.NewLoader(f, nil, testutil.Logger()))
}

func TestResolve_EntityViews(t *testing.T) {
	s := newService(t, mapFetcher{})

	tests := []struct {
		path  string
		title string
		ref   *ContentRef
	}{
		{"/projects/browsint", "Browsint", &ContentRef{Kind: content.KindProject, Path: "browsint.md"}},
		{"/boxes/hackthebox/meow", "Meow", &ContentRef{Kind: content.KindWriteup, Path: "hackthebox/meow.md"}},
		{"/boxes/HackTheBox/meow", "Meow", &ContentRef{Kind: content.KindWriteup, Path: "hackthebox/meow.md"}},
		{"/ctf/baby-rsa", "Baby RSA", &ContentRef{Kind: content.KindCTF, Path: "baby-rsa.md"}},
		{"/blog/methodology", "Methodology", &ContentRef{Kind: content.KindBlog, Path: "methodology.md"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p := s.Resolve(tt.path)
			assert.True(t, p.Found())
			assert.Equal(t, tt.title, p.Title())
			assert.Equal(t, tt.ref, p.Content)
		})
	}
}

func TestResolve_MissDegradesToAbout(t *testing.T) {
	s := newService(t, mapFetcher{})

	for _, path := range []string{
		"/projects/nope",
		"/boxes/tryhackme/meow",
		"/boxes/hackthebox/MEOW",
		"/ctf/nope",
		"/blog/nope",
	} {
		t.Run(path, func(t *testing.T) {
			p := s.Resolve(path)
			assert.False(t, p.Found())
			assert.Equal(t, route.Main("about"), p.View)
			assert.Equal(t, route.Resolve(path), p.Requested)
			assert.Nil(t, p.Content)
			assert.Empty(t, p.Title())
		})
	}
}

func TestResolve_NonEntityViewsPassThrough(t *testing.T) {
	s := newService(t, mapFetcher{})

	for _, path := range []string{"/", "/projects", "/skills", "/certifications", "/boxes/unknown", "/contact"} {
		p := s.Resolve(path)
		assert.True(t, p.Found(), path)
		assert.Nil(t, p.Content, path)
	}
}

func TestResolve_ProjectWithoutContentPath(t *testing.T) {
	s := newService(t, mapFetcher{})

	p := s.Resolve("/projects/notes")
	require.NotNil(t, p.Project)
	assert.Nil(t, p.Content)
	assert.Empty(t, s.Content(context.Background(), p))
}

func TestContent(t *testing.T) {
	s := newService(t, mapFetcher{"/writeups/hackthebox/meow.md": "# Meow"})

	assert.Equal(t, "# Meow", s.Content(context.Background(), s.Resolve("/boxes/hackthebox/meow")))
	assert.Equal(t, content.Fallback(content.KindCTF), s.Content(context.Background(), s.Resolve("/ctf/baby-rsa")))
}

func TestResolveView_UsesCurrentSnapshot(t *testing.T) {
	store := catalog.NewStore(catalog.New(catalog.Data{}))
	s := NewService(store, content.NewLoader(mapFetcher{}, nil, testutil.Logger()))

	assert.False(t, s.Resolve("/ctf/baby-rsa").Found())

	store.Swap(catalog.New(catalog.Data{CTF: []models.CTFWriteup{{ID: "baby-rsa", Title: "Baby RSA", ContentPath: "baby-rsa.md"}}}))
	assert.True(t, s.Resolve("/ctf/baby-rsa").Found())
}
