package entity

import (
	"errors"
	"fmt"
)

// Error classes. Callers match them with errors.Is.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("word entry not found")
	ErrParse       = errors.New("malformed snapshot")
	ErrPersistence = errors.New("snapshot not saved")
)

// Validation failures.
var (
	ErrBlankWord    = fmt.Errorf("%w: word is required", ErrValidation)
	ErrBlankMeaning = fmt.Errorf("%w: meaning is required", ErrValidation)
	ErrInvalidGoal  = fmt.Errorf("%w: daily goal must be positive", ErrValidation)
)

// ErrUnreadableStore marks a stored notebook that exists but cannot be decoded.
var ErrUnreadableStore = fmt.Errorf("%w: stored notebook is unreadable", ErrParse)

// Invariant violations found in a loaded snapshot.
var (
	ErrMissingID        = errors.New("entry id is missing")
	ErrDuplicateID      = errors.New("entry id is duplicated")
	ErrMasteryRange     = errors.New("mastery out of range")
	ErrReviewCountRange = errors.New("review count out of range")
)

// NotFound wraps ErrNotFound with the missing id.
func NotFound(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}
