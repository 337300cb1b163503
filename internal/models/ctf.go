package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CTFCategory is the challenge category of a CTF solve.
type CTFCategory string

// CTF categories.
const (
	CTFWeb       CTFCategory = "web"
	CTFPwn       CTFCategory = "pwn"
	CTFCrypto    CTFCategory = "crypto"
	CTFForensics CTFCategory = "forensics"
	CTFReversing CTFCategory = "reversing"
	CTFMisc      CTFCategory = "misc"
	CTFOsint     CTFCategory = "osint"
)

// CTFWriteup is a write-up for a single CTF challenge.
type CTFWriteup struct {
	ID          string      `json:"id" yaml:"id"`
	Title       string      `json:"title" yaml:"title"`
	Competition string      `json:"competition" yaml:"competition"`
	Category    CTFCategory `json:"category" yaml:"category"`
	Difficulty  Difficulty  `json:"difficulty" yaml:"difficulty"`
	Points      int         `json:"points" yaml:"points"`
	Tags        []string    `json:"tags" yaml:"tags"`
	Date        string      `json:"date" yaml:"date"`
	Summary     string      `json:"summary" yaml:"summary"`
	ContentPath string      `json:"contentPath" yaml:"contentPath"`
}

// Validate checks required fields, enum membership and point range.
func (c CTFWriteup) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Category, validation.Required, validation.In(
			CTFWeb, CTFPwn, CTFCrypto, CTFForensics, CTFReversing, CTFMisc, CTFOsint)),
		validation.Field(&c.Difficulty, validation.Required, validation.In(difficultyRule()...)),
		validation.Field(&c.Points, validation.Min(0)),
		validation.Field(&c.Date, validation.Date(DateLayout)),
		validation.Field(&c.ContentPath, validation.Required),
	)
}
