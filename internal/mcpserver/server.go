// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the dossier catalog and content for LLM integration via
// stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/dossier/internal/catalog"
	"github.com/starford/dossier/internal/content"
	"github.com/starford/dossier/internal/index"
	"github.com/starford/dossier/internal/models"
	"github.com/starford/dossier/internal/navigator"
	"github.com/starford/dossier/internal/site"
)

const (
	catalogURI  = "dossier://catalog"
	contractURI = "dossier://content-format"

	defaultSearchLimit = 20
)

// Searcher runs full-text queries over indexed content.
type Searcher interface {
	Search(query string, limit int) ([]index.SearchResult, error)
}

// Server wraps the MCP server with dossier tools.
type Server struct {
	mcp    *server.MCPServer
	svc    *site.Service
	search Searcher
	nav    *navigator.Navigator
}

// New creates a new MCP server with all dossier tools registered. search may
// be nil, in which case search_content reports an error. nav backs the
// session's navigate and current_view tools.
func New(svc *site.Service, search Searcher, nav *navigator.Navigator) *Server {
	s := &Server{svc: svc, search: search, nav: nav}

	s.mcp = server.NewMCPServer(
		"Dossier",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("resolve_route",
		mcp.WithDescription("Resolve a site path (e.g. /boxes/hackthebox/meow) to the view it shows "+
			"and the catalog entity behind it. Unknown entities resolve to the about section."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Site path, e.g. /ctf/baby-rsa or /skills")),
	), s.resolveRoute)

	s.mcp.AddTool(mcp.NewTool("navigate",
		mcp.WithDescription("Move this session to a site path. Returns the new view immediately; "+
			"long-form content loads in the background, read it with current_view."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Site path to navigate to")),
	), s.navigate)

	s.mcp.AddTool(mcp.NewTool("current_view",
		mcp.WithDescription("Return the session's current view and its content, or the loading placeholder."),
	), s.currentView)

	s.mcp.AddTool(mcp.NewTool("read_content",
		mcp.WithDescription("Fetch the Markdown content of the page at a site path."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Site path of a project, writeup, CTF or blog page")),
	), s.readContent)

	s.mcp.AddTool(mcp.NewTool("search_content",
		mcp.WithDescription("Full-text search across write-ups, CTF solves, blog posts and projects."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 20)")),
	), s.searchContent)

	s.mcp.AddTool(mcp.NewTool("list_writeups",
		mcp.WithDescription("List box write-ups grouped by difficulty, for one platform or all of them."),
		mcp.WithString("platform", mcp.Description("hackthebox, tryhackme or vulnhub (empty for all)")),
	), s.listWriteups)

	s.mcp.AddTool(mcp.NewTool("get_content_contract",
		mcp.WithDescription("Returns the content format contract. Read it before drafting new write-ups."),
	), s.getContentContract)

	s.mcp.AddResource(
		mcp.NewResource(catalogURI, "Catalog",
			mcp.WithResourceDescription("Summary of every catalog collection with paths to each entry."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readCatalogResource,
	)

	s.mcp.AddResource(
		mcp.NewResource(contractURI, "Content Format",
			mcp.WithResourceDescription("Layout and conventions of long-form Markdown content."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readContractResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) resolveRoute(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.svc.Resolve(path))
}

type viewState struct {
	Path    string    `json:"path"`
	Page    site.Page `json:"page"`
	Loading bool      `json:"loading"`
	Content string    `json:"content,omitempty"`
}

func toViewState(st navigator.State) viewState {
	return viewState{
		Path:    st.Page.View.Path(),
		Page:    st.Page,
		Loading: st.Loading,
		Content: st.Content,
	}
}

func (s *Server) navigate(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.nav == nil {
		return mcp.NewToolResultError("navigation unavailable"), nil
	}
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(toViewState(s.nav.Navigate(path)))
}

func (s *Server) currentView(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.nav == nil {
		return mcp.NewToolResultError("navigation unavailable"), nil
	}
	return jsonResult(toViewState(s.nav.Current()))
}

func (s *Server) readContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	page := s.svc.Resolve(path)
	if !page.Found() {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	if page.Content == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no content: %s", path)), nil
	}
	text := s.svc.Content(ctx, page)
	res := mcp.NewToolResultText(text)
	res.IsError = content.IsFallback(text)
	return res, nil
}

func (s *Server) searchContent(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.search == nil {
		return mcp.NewToolResultError("search unavailable"), nil
	}
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.search.Search(query, req.GetInt("limit", defaultSearchLimit))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(results)
}

type platformWriteups struct {
	Platform    models.Platform           `json:"platform"`
	DisplayName string                    `json:"displayName"`
	Groups      []catalog.DifficultyGroup `json:"groups"`
}

func (s *Server) listWriteups(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := s.svc.Catalog()
	platforms := models.Platforms()
	if p := strings.ToLower(req.GetString("platform", "")); p != "" {
		platforms = []models.Platform{models.Platform(p)}
	}
	out := make([]platformWriteups, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, platformWriteups{
			Platform:    p,
			DisplayName: p.DisplayName(),
			Groups:      c.GroupByDifficulty(string(p)),
		})
	}
	return jsonResult(out)
}

func (s *Server) getContentContract(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(ContentFormatContract), nil
}

func (s *Server) readCatalogResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      catalogURI,
			MIMEType: "text/markdown",
			Text:     CatalogSummary(s.svc.Catalog()),
		},
	}, nil
}

func (s *Server) readContractResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      contractURI,
			MIMEType: "text/markdown",
			Text:     ContentFormatContract,
		},
	}, nil
}

// CatalogSummary renders c as a Markdown overview listing every entry with
// its site path.
func CatalogSummary(c *catalog.Catalog) string {
	var b strings.Builder
	b.WriteString("# Catalog\n\n")

	counts := c.Summary()
	names := make([]string, 0, len(counts))
	for k := range counts {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(&b, "- %s: %d\n", k, counts[k])
	}

	b.WriteString("\n## Projects\n\n")
	for _, p := range c.Projects() {
		fmt.Fprintf(&b, "- [%s](/projects/%s) %s, %s\n", p.Title, p.ID, p.Category, p.Status.Label())
	}

	b.WriteString("\n## Write-ups\n\n")
	for _, w := range c.Writeups() {
		fmt.Fprintf(&b, "- [%s](/boxes/%s/%s) %s, %s\n",
			w.Title, strings.ToLower(string(w.Platform)), w.ID, w.Platform.DisplayName(), w.Difficulty.Title())
	}

	b.WriteString("\n## CTF\n\n")
	for _, w := range c.CTF() {
		fmt.Fprintf(&b, "- [%s](/ctf/%s) %s, %s\n", w.Title, w.ID, w.Category, w.Competition)
	}

	b.WriteString("\n## Blog\n\n")
	for _, p := range c.Blog() {
		fmt.Fprintf(&b, "- [%s](/blog/%s) %s\n", p.Title, p.ID, p.Date)
	}

	if dups := c.Duplicates(); len(dups) > 0 {
		b.WriteString("\n## Duplicate ids\n\n")
		for _, d := range dups {
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}
	return b.String()
}
