package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Platform is a write-up source.
type Platform string

// Known platforms.
const (
	PlatformHackTheBox Platform = "hackthebox"
	PlatformTryHackMe  Platform = "tryhackme"
	PlatformVulnHub    Platform = "vulnhub"
)

// Platforms lists the known platforms in display order.
func Platforms() []Platform {
	return []Platform{PlatformHackTheBox, PlatformTryHackMe, PlatformVulnHub}
}

// DisplayName returns the brand spelling of the platform.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformHackTheBox:
		return "HackTheBox"
	case PlatformTryHackMe:
		return "TryHackMe"
	case PlatformVulnHub:
		return "VulnHub"
	}
	return string(p)
}

// Description is the blurb shown on the platform page.
func (p Platform) Description() string {
	switch p {
	case PlatformHackTheBox:
		return "Retired HackTheBox machines with detailed exploitation methodologies"
	case PlatformTryHackMe:
		return "TryHackMe room walkthroughs and learning paths"
	case PlatformVulnHub:
		return "VulnHub boot-to-root challenges and vulnerable machines"
	}
	return "Security challenge writeups"
}

// OS is the operating system of a box.
type OS string

// Operating systems.
const (
	OSLinux   OS = "linux"
	OSWindows OS = "windows"
	OSOther   OS = "other"
)

// Writeup is a box write-up from one of the platforms.
type Writeup struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Platform    Platform   `json:"platform" yaml:"platform"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty"`
	OS          OS         `json:"os" yaml:"os"`
	Tags        []string   `json:"tags" yaml:"tags"`
	Date        string     `json:"date" yaml:"date"`
	Summary     string     `json:"summary" yaml:"summary"`
	ContentPath string     `json:"contentPath" yaml:"contentPath"`
}

// Validate checks required fields and enum membership.
func (w Writeup) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.ID, validation.Required),
		validation.Field(&w.Title, validation.Required),
		validation.Field(&w.Platform, validation.Required, validation.In(
			PlatformHackTheBox, PlatformTryHackMe, PlatformVulnHub)),
		validation.Field(&w.Difficulty, validation.Required, validation.In(difficultyRule()...)),
		validation.Field(&w.OS, validation.Required, validation.In(OSLinux, OSWindows, OSOther)),
		validation.Field(&w.Date, validation.Date(DateLayout)),
		validation.Field(&w.ContentPath, validation.Required),
	)
}
