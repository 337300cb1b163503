package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CertStatus is a certification's place on the roadmap.
type CertStatus string

// Certification statuses.
const (
	CertTaken      CertStatus = "taken"
	CertInProgress CertStatus = "in-progress"
	CertTodo       CertStatus = "todo"
)

// Certification is an entry on the certification roadmap.
// Progress is only meaningful while Status is in-progress.
type Certification struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Issuer      string     `json:"issuer" yaml:"issuer"`
	Year        string     `json:"year,omitempty" yaml:"year,omitempty"`
	Status      CertStatus `json:"status" yaml:"status"`
	Description string     `json:"description" yaml:"description"`
	Link        string     `json:"link,omitempty" yaml:"link,omitempty"`
	Progress    *int       `json:"progress,omitempty" yaml:"progress,omitempty"`
}

// Validate checks status, link and a non-negative progress.
func (c Certification) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Issuer, validation.Required),
		validation.Field(&c.Status, validation.Required, validation.In(CertTaken, CertInProgress, CertTodo)),
		validation.Field(&c.Link, is.URL),
		validation.Field(&c.Progress, validation.Min(0)),
	)
}

// ProgressPercent returns the clamped progress, or 0 when the certification
// is not in progress or has no progress recorded.
func (c Certification) ProgressPercent() int {
	if c.Status != CertInProgress || c.Progress == nil {
		return 0
	}
	return clampPercent(*c.Progress)
}
