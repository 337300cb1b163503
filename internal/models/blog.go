package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BlogPost is a long-form article. Category is free text.
type BlogPost struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Category    string   `json:"category" yaml:"category"`
	Tags        []string `json:"tags" yaml:"tags"`
	Date        string   `json:"date" yaml:"date"`
	ReadTime    string   `json:"readTime" yaml:"readTime"`
	Summary     string   `json:"summary" yaml:"summary"`
	ContentPath string   `json:"contentPath" yaml:"contentPath"`
}

// Validate checks required fields.
func (b BlogPost) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.ID, validation.Required),
		validation.Field(&b.Title, validation.Required),
		validation.Field(&b.Date, validation.Date(DateLayout)),
		validation.Field(&b.ContentPath, validation.Required),
	)
}
