// Package catalog holds the read-only entity collections and the lookups
// every view depends on.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/starford/dossier/internal/models"
)

// Data is the raw content of the catalog in declaration order.
type Data struct {
	Projects       []models.Project       `yaml:"projects"`
	Writeups       []models.Writeup       `yaml:"writeups"`
	CTF            []models.CTFWriteup    `yaml:"ctf"`
	Blog           []models.BlogPost      `yaml:"blog"`
	Skills         []models.Skill         `yaml:"skills"`
	Certifications []models.Certification `yaml:"certifications"`
}

// Catalog is an immutable snapshot of every collection, indexed by id.
// When a collection declares the same id twice the first declaration wins.
type Catalog struct {
	data Data

	projects map[string]int
	writeups map[writeupKey]int
	ctf      map[string]int
	blog     map[string]int
	skills   map[string]int
	certs    map[string]int

	duplicates []string
}

type writeupKey struct {
	platform string
	id       string
}

func newWriteupKey(platform, id string) writeupKey {
	return writeupKey{platform: strings.ToLower(platform), id: id}
}

// New indexes d. d must not be modified afterwards.
func New(d Data) *Catalog {
	c := &Catalog{data: d}
	c.projects = indexBy(d.Projects, func(p models.Project) string { return p.ID }, "projects", &c.duplicates)
	c.ctf = indexBy(d.CTF, func(w models.CTFWriteup) string { return w.ID }, "ctf", &c.duplicates)
	c.blog = indexBy(d.Blog, func(b models.BlogPost) string { return b.ID }, "blog", &c.duplicates)
	c.skills = indexBy(d.Skills, func(s models.Skill) string { return s.ID }, "skills", &c.duplicates)
	c.certs = indexBy(d.Certifications, func(s models.Certification) string { return s.ID }, "certifications", &c.duplicates)

	c.writeups = make(map[writeupKey]int, len(d.Writeups))
	for i, w := range d.Writeups {
		k := newWriteupKey(string(w.Platform), w.ID)
		if _, dup := c.writeups[k]; dup {
			c.duplicates = append(c.duplicates, fmt.Sprintf("writeups: %s/%s", k.platform, k.id))
			continue
		}
		c.writeups[k] = i
	}
	return c
}

func indexBy[T any](items []T, id func(T) string, name string, dups *[]string) map[string]int {
	m := make(map[string]int, len(items))
	for i, it := range items {
		k := id(it)
		if _, dup := m[k]; dup {
			*dups = append(*dups, name+": "+k)
			continue
		}
		m[k] = i
	}
	return m
}

// Duplicates lists ids declared more than once, as "collection: id".
func (c *Catalog) Duplicates() []string {
	return slices.Clone(c.duplicates)
}

// Projects returns every project in declaration order.
func (c *Catalog) Projects() []models.Project { return slices.Clone(c.data.Projects) }

// Writeups returns every box write-up in declaration order.
func (c *Catalog) Writeups() []models.Writeup { return slices.Clone(c.data.Writeups) }

// CTF returns every CTF write-up in declaration order.
func (c *Catalog) CTF() []models.CTFWriteup { return slices.Clone(c.data.CTF) }

// Blog returns every blog post in declaration order.
func (c *Catalog) Blog() []models.BlogPost { return slices.Clone(c.data.Blog) }

// Skills returns every skill in declaration order.
func (c *Catalog) Skills() []models.Skill { return slices.Clone(c.data.Skills) }

// Certifications returns every certification in declaration order.
func (c *Catalog) Certifications() []models.Certification {
	return slices.Clone(c.data.Certifications)
}

// Project finds a project by exact id.
func (c *Catalog) Project(id string) (models.Project, bool) {
	return lookup(c.data.Projects, c.projects, id)
}

// CTFWriteup finds a CTF write-up by exact id.
func (c *Catalog) CTFWriteup(id string) (models.CTFWriteup, bool) {
	return lookup(c.data.CTF, c.ctf, id)
}

// BlogPost finds a blog post by exact id.
func (c *Catalog) BlogPost(id string) (models.BlogPost, bool) {
	return lookup(c.data.Blog, c.blog, id)
}

// Skill finds a skill by exact id.
func (c *Catalog) Skill(id string) (models.Skill, bool) {
	return lookup(c.data.Skills, c.skills, id)
}

// Certification finds a certification by exact id.
func (c *Catalog) Certification(id string) (models.Certification, bool) {
	return lookup(c.data.Certifications, c.certs, id)
}

// Writeup finds a box write-up within platform. The platform is matched
// case-insensitively, the id exactly; an id that only exists under another
// platform is not found.
func (c *Catalog) Writeup(platform, id string) (models.Writeup, bool) {
	i, ok := c.writeups[newWriteupKey(platform, id)]
	if !ok {
		return models.Writeup{}, false
	}
	return c.data.Writeups[i], true
}

func lookup[T any](items []T, idx map[string]int, id string) (T, bool) {
	i, ok := idx[id]
	if !ok {
		var zero T
		return zero, false
	}
	return items[i], true
}

// Summary returns the number of entities per collection.
func (c *Catalog) Summary() map[string]int {
	return map[string]int{
		"projects":       len(c.data.Projects),
		"writeups":       len(c.data.Writeups),
		"ctf":            len(c.data.CTF),
		"blog":           len(c.data.Blog),
		"skills":         len(c.data.Skills),
		"certifications": len(c.data.Certifications),
	}
}
