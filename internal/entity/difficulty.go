package entity

import "strings"

// Difficulty is the user's judgement after seeing a flashcard.
// Any value other than DifficultyEasy and DifficultyHard schedules like DifficultyNormal.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps user input onto a Difficulty. Short forms e/n/h are accepted.
func ParseDifficulty(raw string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "easy", "e":
		return DifficultyEasy
	case "hard", "h":
		return DifficultyHard
	case "normal", "n", "":
		return DifficultyNormal
	default:
		return Difficulty(strings.ToLower(strings.TrimSpace(raw)))
	}
}

func (d Difficulty) String() string { return string(d) }
