// Package models defines the portfolio entities. Every entity is loaded once
// at startup and treated as read-only afterwards.
package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ProjectCategory classifies a project.
type ProjectCategory string

// Project categories.
const (
	CategoryTool     ProjectCategory = "tool"
	CategoryWebapp   ProjectCategory = "webapp"
	CategoryLibrary  ProjectCategory = "library"
	CategorySecurity ProjectCategory = "security"
	CategoryDevops   ProjectCategory = "devops"
	CategoryOther    ProjectCategory = "other"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

// Project statuses.
const (
	StatusActive     ProjectStatus = "active"
	StatusCompleted  ProjectStatus = "completed"
	StatusArchived   ProjectStatus = "archived"
	StatusInProgress ProjectStatus = "in-progress"
)

// Project is a portfolio project. ContentPath, when set, names a markdown
// document with the long-form description.
type Project struct {
	ID           string          `json:"id" yaml:"id"`
	Title        string          `json:"title" yaml:"title"`
	Category     ProjectCategory `json:"category" yaml:"category"`
	Status       ProjectStatus   `json:"status" yaml:"status"`
	Technologies []string        `json:"technologies" yaml:"technologies"`
	Tags         []string        `json:"tags" yaml:"tags"`
	Date         string          `json:"date" yaml:"date"`
	Summary      string          `json:"summary" yaml:"summary"`
	Description  string          `json:"description" yaml:"description"`
	Features     []string        `json:"features" yaml:"features"`
	GithubURL    string          `json:"githubUrl,omitempty" yaml:"githubUrl,omitempty"`
	LiveURL      string          `json:"liveUrl,omitempty" yaml:"liveUrl,omitempty"`
	ContentPath  string          `json:"contentPath,omitempty" yaml:"contentPath,omitempty"`
}

// Validate checks required fields and enum membership.
func (p Project) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Category, validation.Required, validation.In(
			CategoryTool, CategoryWebapp, CategoryLibrary, CategorySecurity, CategoryDevops, CategoryOther)),
		validation.Field(&p.Status, validation.Required, validation.In(
			StatusActive, StatusCompleted, StatusArchived, StatusInProgress)),
		validation.Field(&p.Date, validation.Date(DateLayout)),
		validation.Field(&p.GithubURL, is.URL),
		validation.Field(&p.LiveURL, is.URL),
	)
}

// Label renders the status for display ("in-progress" → "in progress").
func (s ProjectStatus) Label() string {
	if s == StatusInProgress {
		return "in progress"
	}
	return string(s)
}
