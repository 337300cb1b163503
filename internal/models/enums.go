package models

import "strings"

// DateLayout is the layout of every date field in the catalog.
const DateLayout = "2006-01-02"

// Difficulty is shared by box write-ups and CTF write-ups.
type Difficulty string

// Difficulty tiers, easiest first.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyInsane Difficulty = "insane"
)

// Difficulties lists every tier in display order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyInsane}
}

// Title returns the capitalised tier name.
func (d Difficulty) Title() string {
	if d == "" {
		return ""
	}
	s := string(d)
	return strings.ToUpper(s[:1]) + s[1:]
}

func difficultyRule() []any {
	return []any{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyInsane}
}
