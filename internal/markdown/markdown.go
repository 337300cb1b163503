// Package markdown renders content documents to HTML.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	gmparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/starford/dossier/internal/parser"
)

// DefaultAssetPrefix is where relative image references are served from.
const DefaultAssetPrefix = "/assets/"

// Renderer converts GitHub-flavoured markdown to HTML. Raw HTML in the
// source is dropped. Fenced code blocks keep their language as a
// "language-<lang>" class for client-side highlighting.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a renderer that rewrites relative image references to
// assetPrefix + file name. An empty assetPrefix uses DefaultAssetPrefix.
func New(assetPrefix string) *Renderer {
	if assetPrefix == "" {
		assetPrefix = DefaultAssetPrefix
	}
	if !strings.HasSuffix(assetPrefix, "/") {
		assetPrefix += "/"
	}
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			gmparser.WithAutoHeadingID(),
			gmparser.WithASTTransformers(util.Prioritized(assetImages{prefix: assetPrefix}, 100)),
		),
	)
	return &Renderer{md: md}
}

// Render converts src to HTML. Frontmatter is stripped first.
func (r *Renderer) Render(src string) (template.HTML, error) {
	body := parser.Body([]byte(src))
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("markdown: render: %w", err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // goldmark escapes raw HTML unless WithUnsafe is set
}

type assetImages struct {
	prefix string
}

func (t assetImages) Transform(doc *ast.Document, _ text.Reader, _ gmparser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if img, ok := n.(*ast.Image); ok && isRelative(string(img.Destination)) {
			img.Destination = []byte(t.prefix + path.Base(string(img.Destination)))
		}
		return ast.WalkContinue, nil
	})
}

func isRelative(dest string) bool {
	if dest == "" || strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "#") {
		return false
	}
	return !strings.Contains(dest, "://") && !strings.HasPrefix(dest, "data:")
}
