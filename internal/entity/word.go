package entity

import (
	"strings"
	"time"
)

// MasteredThreshold is the mastery score from which a word counts as mastered.
const MasteredThreshold = 80

// MaxMastery caps the mastery score of a word.
const MaxMastery = 100

// WordEntry is a single vocabulary item recorded by the user.
type WordEntry struct {
	ID           string     `json:"id"`
	Word         string     `json:"word"`
	Meaning      string     `json:"meaning"`
	Example      string     `json:"example"`
	Tags         []string   `json:"tags"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	Mastery      int        `json:"mastery"`
	LastReviewed *time.Time `json:"lastReviewed"`
	NextReview   *time.Time `json:"nextReview"`
	ReviewCount  int        `json:"reviewCount"`
}

// WordDraft holds the user supplied fields of a new entry.
type WordDraft struct {
	Word    string
	Meaning string
	Example string
	Tags    []string
}

// WordPatch lists the fields an update may overwrite. Nil fields are left untouched.
type WordPatch struct {
	Word    *string
	Meaning *string
	Example *string
	Tags    *[]string
}

// Validate checks the required fields of a draft.
func (d WordDraft) Validate() error {
	if strings.TrimSpace(d.Word) == "" {
		return ErrBlankWord
	}
	if strings.TrimSpace(d.Meaning) == "" {
		return ErrBlankMeaning
	}
	return nil
}

// Validate checks that the provided fields keep the entry valid.
func (p WordPatch) Validate() error {
	if p.Word != nil && strings.TrimSpace(*p.Word) == "" {
		return ErrBlankWord
	}
	if p.Meaning != nil && strings.TrimSpace(*p.Meaning) == "" {
		return ErrBlankMeaning
	}
	return nil
}

// IsEmpty reports whether the patch carries no field at all.
func (p WordPatch) IsEmpty() bool {
	return p.Word == nil && p.Meaning == nil && p.Example == nil && p.Tags == nil
}

// Apply merges the provided fields into the entry and refreshes UpdatedAt.
func (w *WordEntry) Apply(p WordPatch, now time.Time) {
	if p.Word != nil {
		w.Word = strings.TrimSpace(*p.Word)
	}
	if p.Meaning != nil {
		w.Meaning = strings.TrimSpace(*p.Meaning)
	}
	if p.Example != nil {
		w.Example = strings.TrimSpace(*p.Example)
	}
	if p.Tags != nil {
		w.Tags = NormalizeTags(*p.Tags)
	}
	w.UpdatedAt = now
}

// IsDue reports whether the entry should be reviewed at now.
func (w *WordEntry) IsDue(now time.Time) bool {
	return w.NextReview == nil || !w.NextReview.After(now)
}

// IsMastered reports whether the entry reached MasteredThreshold.
func (w *WordEntry) IsMastered() bool {
	return w.Mastery >= MasteredThreshold
}

// HasTag reports whether any tag matches, ignoring case.
func (w *WordEntry) HasTag(tag string) bool {
	for _, t := range w.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Check verifies the invariants of a loaded entry.
func (w *WordEntry) Check() error {
	switch {
	case strings.TrimSpace(w.ID) == "":
		return ErrMissingID
	case strings.TrimSpace(w.Word) == "":
		return ErrBlankWord
	case strings.TrimSpace(w.Meaning) == "":
		return ErrBlankMeaning
	case w.Mastery < 0 || w.Mastery > MaxMastery:
		return ErrMasteryRange
	case w.ReviewCount < 0:
		return ErrReviewCountRange
	case w.LastReviewed != nil && w.ReviewCount < 1:
		return ErrReviewCountRange
	}
	return nil
}

// Normalize ensures defaults before the entry is handed out or persisted.
func (w *WordEntry) Normalize() {
	if w.Tags == nil {
		w.Tags = []string{}
	}
}

// Clone returns a deep copy of the entry.
func (w WordEntry) Clone() WordEntry {
	copy := w
	copy.Tags = append([]string{}, w.Tags...)
	if w.LastReviewed != nil {
		last := *w.LastReviewed
		copy.LastReviewed = &last
	}
	if w.NextReview != nil {
		next := *w.NextReview
		copy.NextReview = &next
	}
	return copy
}

// ParseTags splits a comma separated tag list, trimming and dropping blanks.
func ParseTags(raw string) []string {
	return NormalizeTags(strings.Split(raw, ","))
}

// NormalizeTags trims every tag and drops blanks. Duplicates are kept.
func NormalizeTags(in []string) []string {
	result := make([]string, 0, len(in))
	for _, tag := range in {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
