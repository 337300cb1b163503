package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Variant is a presentational colour hint.
type Variant string

// Variants.
const (
	VariantPrimary     Variant = "primary"
	VariantSecondary   Variant = "secondary"
	VariantAccent      Variant = "accent"
	VariantWarning     Variant = "warning"
	VariantSuccess     Variant = "success"
	VariantDestructive Variant = "destructive"
)

// Skill is a self-assessed skill level, shown as a percentage.
type Skill struct {
	ID      string  `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Level   int     `json:"level" yaml:"level"`
	Variant Variant `json:"variant,omitempty" yaml:"variant,omitempty"`
}

// Validate checks required fields, a non-negative level and the variant.
// Levels above 100 are accepted and clamped by Percent.
func (s Skill) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ID, validation.Required),
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Level, validation.Min(0)),
		validation.Field(&s.Variant, validation.In(
			VariantPrimary, VariantSecondary, VariantAccent, VariantWarning, VariantSuccess, VariantDestructive)),
	)
}

// Percent returns Level clamped to [0,100].
func (s Skill) Percent() int {
	return clampPercent(s.Level)
}

func clampPercent(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
