package usecase

import (
	"math"
	"time"

	"github.com/eslsoft/vocnote/internal/entity"
)

var reviewLadder = [...]int{1, 3, 7, 14, 30}

const (
	maxIntervalDays = 365
	easyFactor      = 1.5
	hardFactor      = 0.7
	easyBonus       = 25
	defaultBonus    = 10
)

// ReviewOutcome holds the scheduling fields produced by one completed review.
type ReviewOutcome struct {
	LastReviewed time.Time
	NextReview   time.Time
	ReviewCount  int
	Mastery      int
	IntervalDays int
}

// Apply copies the outcome onto entry and refreshes its update time.
func (o ReviewOutcome) Apply(entry *entity.WordEntry) {
	last, next := o.LastReviewed, o.NextReview
	entry.LastReviewed = &last
	entry.NextReview = &next
	entry.ReviewCount = o.ReviewCount
	entry.Mastery = o.Mastery
	entry.UpdatedAt = o.LastReviewed
}

// ComputeReview schedules the next review of entry. The interval comes from a fixed ladder
// indexed by the review count and is stretched for easy cards and shortened for hard ones.
// Every review grants a mastery bonus, larger for easy cards, capped at entity.MaxMastery.
func ComputeReview(entry entity.WordEntry, difficulty entity.Difficulty, now time.Time, loc *time.Location) ReviewOutcome {
	if loc == nil {
		loc = time.Local
	}
	days := IntervalDays(entry.ReviewCount, difficulty)

	bonus := defaultBonus
	if difficulty == entity.DifficultyEasy {
		bonus = easyBonus
	}

	return ReviewOutcome{
		LastReviewed: now,
		NextReview:   now.In(loc).AddDate(0, 0, days),
		ReviewCount:  entry.ReviewCount + 1,
		Mastery:      min(entry.Mastery+bonus, entity.MaxMastery),
		IntervalDays: days,
	}
}

// IntervalDays returns the whole number of days until the next review.
// Fractional easy intervals are truncated.
func IntervalDays(reviewCount int, difficulty entity.Difficulty) int {
	idx := min(max(reviewCount, 0), len(reviewLadder)-1)
	base := float64(reviewLadder[idx])

	switch difficulty {
	case entity.DifficultyEasy:
		return int(math.Min(base*easyFactor, maxIntervalDays))
	case entity.DifficultyHard:
		return int(math.Max(math.Floor(base*hardFactor), 1))
	default:
		return int(base)
	}
}
