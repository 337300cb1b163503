// Package content resolves an entity's content path into its markdown body.
//
// Every kind of entity has its own base path, so blog posts, CTF write-ups,
// box write-ups and project pages never share a namespace. A failed fetch is
// not an error for the caller: the loader substitutes a fixed markdown
// document that renders like any other content.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Kind selects the namespace a content path is resolved in.
type Kind string

// Content kinds.
const (
	KindBlog    Kind = "blog"
	KindCTF     Kind = "ctf"
	KindWriteup Kind = "writeup"
	KindProject Kind = "project"
)

// Kinds lists every content kind.
func Kinds() []Kind {
	return []Kind{KindBlog, KindCTF, KindWriteup, KindProject}
}

func (k Kind) noun() string {
	switch k {
	case KindBlog:
		return "blog post"
	case KindCTF:
		return "ctf post"
	case KindWriteup:
		return "writeup"
	case KindProject:
		return "project"
	}
	return string(k)
}

// Placeholder is shown while content is being fetched.
const Placeholder = "Loading..."

// Fallback returns the markdown substituted when content for k cannot be loaded.
func Fallback(k Kind) string {
	return fmt.Sprintf("# Error\n\nFailed to load %s content.", k.noun())
}

// IsFallback reports whether text is a fallback document.
func IsFallback(text string) bool {
	return strings.HasPrefix(text, "# Error\n\nFailed to load ")
}

// Bases maps each kind to the base path its content lives under.
type Bases map[Kind]string

// DefaultBases returns the standard per-kind base paths.
func DefaultBases() Bases {
	return Bases{
		KindBlog:    "/blog",
		KindCTF:     "/ctf",
		KindWriteup: "/writeups",
		KindProject: "/projects",
	}
}

// Join returns "{base}/{contentPath}" for kind k.
func (b Bases) Join(k Kind, contentPath string) string {
	base := strings.TrimRight(b[k], "/")
	return base + "/" + strings.TrimLeft(contentPath, "/")
}

// Fetcher performs a single fetch of the resource at location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// Loader turns content paths into markdown text.
type Loader struct {
	fetcher Fetcher
	bases   Bases
	logger  *slog.Logger
}

// NewLoader creates a loader. Missing entries in bases fall back to
// DefaultBases.
func NewLoader(f Fetcher, bases Bases, logger *slog.Logger) *Loader {
	merged := DefaultBases()
	for k, v := range bases {
		if v != "" {
			merged[k] = v
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{fetcher: f, bases: merged, logger: logger}
}

// Bases returns the effective base paths.
func (l *Loader) Bases() Bases {
	out := make(Bases, len(l.bases))
	for k, v := range l.bases {
		out[k] = v
	}
	return out
}

// Load fetches the content for contentPath under kind k exactly once. On any
// failure it returns Fallback(k); on success the body is returned unmodified.
func (l *Loader) Load(ctx context.Context, k Kind, contentPath string) string {
	location := l.bases.Join(k, contentPath)
	data, err := l.fetcher.Fetch(ctx, location)
	if err != nil {
		l.logger.Warn("content: load failed",
			slog.String("kind", string(k)),
			slog.String("location", location),
			slog.String("error", err.Error()))
		return Fallback(k)
	}
	return string(data)
}
