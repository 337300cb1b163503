package api

import (
	"github.com/starford/dossier/internal/catalog"
	"github.com/starford/dossier/internal/index"
	"github.com/starford/dossier/internal/models"
)

// ProjectListResponse is returned by GET /projects.
type ProjectListResponse struct {
	Projects     []models.Project             `json:"projects"`
	Categories   []models.ProjectCategory     `json:"categories"`
	Statuses     []models.ProjectStatus       `json:"statuses"`
	StatusCounts map[models.ProjectStatus]int `json:"statusCounts"`
}

// PlatformResponse is returned by GET /boxes/{platform}.
type PlatformResponse struct {
	Platform    models.Platform           `json:"platform"`
	DisplayName string                    `json:"displayName"`
	Description string                    `json:"description"`
	Groups      []catalog.DifficultyGroup `json:"groups"`
}

// CTFListResponse is returned by GET /ctf.
type CTFListResponse struct {
	CTF []models.CTFWriteup `json:"ctf"`
}

// BlogListResponse is returned by GET /blog.
type BlogListResponse struct {
	Posts []models.BlogPost `json:"posts"`
}

// SkillsResponse is returned by GET /skills.
type SkillsResponse struct {
	Groups []catalog.SkillGroup `json:"groups"`
	Skills []models.Skill       `json:"skills"`
}

// CatalogResponse is returned by GET /catalog.
type CatalogResponse struct {
	Counts     map[string]int `json:"counts"`
	Duplicates []string       `json:"duplicates"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []index.SearchResult `json:"results"`
}

// ReloadResponse is returned by POST /reload.
type ReloadResponse struct {
	Counts  map[string]int `json:"counts"`
	Updated int            `json:"updated"`
	Removed int            `json:"removed"`
}
