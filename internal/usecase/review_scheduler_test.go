package usecase

import (
	"testing"
	"time"

	"github.com/eslsoft/vocnote/internal/entity"
)

var t0 = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

func TestIntervalDaysLadder(t *testing.T) {
	cases := []struct {
		name        string
		reviewCount int
		difficulty  entity.Difficulty
		want        int
	}{
		{"first hard", 0, entity.DifficultyHard, 1},
		{"first normal", 0, entity.DifficultyNormal, 1},
		{"first easy truncates", 0, entity.DifficultyEasy, 1},
		{"second easy truncates", 1, entity.DifficultyEasy, 4},
		{"second hard", 1, entity.DifficultyHard, 2},
		{"third normal", 2, entity.DifficultyNormal, 7},
		{"third easy", 2, entity.DifficultyEasy, 10},
		{"fourth hard", 3, entity.DifficultyHard, 9},
		{"fifth easy", 4, entity.DifficultyEasy, 45},
		{"capped ladder", 12, entity.DifficultyNormal, 30},
		{"capped ladder hard", 12, entity.DifficultyHard, 21},
		{"unknown difficulty", 2, entity.Difficulty("meh"), 7},
		{"negative count", -3, entity.DifficultyNormal, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IntervalDays(tc.reviewCount, tc.difficulty); got != tc.want {
				t.Fatalf("IntervalDays(%d, %q) = %d, want %d", tc.reviewCount, tc.difficulty, got, tc.want)
			}
		})
	}
}

func TestComputeReviewSchedulesFromNow(t *testing.T) {
	entry := entity.WordEntry{ID: "a", Word: "w", Meaning: "m", ReviewCount: 4, Mastery: 40}

	got := ComputeReview(entry, entity.DifficultyEasy, t0, time.UTC)

	if !got.LastReviewed.Equal(t0) {
		t.Fatalf("expected lastReviewed %v, got %v", t0, got.LastReviewed)
	}
	if want := t0.AddDate(0, 0, 45); !got.NextReview.Equal(want) {
		t.Fatalf("expected nextReview %v, got %v", want, got.NextReview)
	}
	if got.ReviewCount != 5 || got.Mastery != 65 || got.IntervalDays != 45 {
		t.Fatalf("unexpected outcome %+v", got)
	}
	if entry.ReviewCount != 4 || entry.Mastery != 40 {
		t.Fatalf("input entry mutated: %+v", entry)
	}
}

func TestComputeReviewMasteryBonus(t *testing.T) {
	for _, d := range []entity.Difficulty{entity.DifficultyHard, entity.DifficultyNormal, "other"} {
		got := ComputeReview(entity.WordEntry{Mastery: 30}, d, t0, time.UTC)
		if got.Mastery != 40 {
			t.Fatalf("difficulty %q: expected mastery 40, got %d", d, got.Mastery)
		}
	}
}

func TestComputeReviewMasteryCap(t *testing.T) {
	entry := entity.WordEntry{ID: "a", Mastery: 90}
	now := t0
	for i := 0; i < 5; i++ {
		out := ComputeReview(entry, entity.DifficultyEasy, now, time.UTC)
		out.Apply(&entry)
		if entry.Mastery != entity.MaxMastery {
			t.Fatalf("review %d: expected mastery %d, got %d", i+1, entity.MaxMastery, entry.Mastery)
		}
		now = *entry.NextReview
	}
	if entry.ReviewCount != 5 {
		t.Fatalf("expected 5 reviews, got %d", entry.ReviewCount)
	}
}

func TestComputeReviewKeepsWallClockAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	// The night of 2025-03-09 is 23 hours long in New York.
	now := time.Date(2025, time.March, 8, 20, 0, 0, 0, loc)
	got := ComputeReview(entity.WordEntry{ReviewCount: 0}, entity.DifficultyNormal, now, loc)
	if got.NextReview.Hour() != 20 || got.NextReview.Day() != 9 {
		t.Fatalf("expected 2025-03-09 20:00 local, got %v", got.NextReview)
	}
}

func TestReviewOutcomeApply(t *testing.T) {
	entry := entity.WordEntry{ID: "a", Word: "w", Meaning: "m", CreatedAt: t0.Add(-time.Hour)}
	out := ComputeReview(entry, entity.DifficultyNormal, t0, time.UTC)
	out.Apply(&entry)

	if entry.LastReviewed == nil || !entry.LastReviewed.Equal(t0) {
		t.Fatalf("lastReviewed not applied: %v", entry.LastReviewed)
	}
	if entry.NextReview == nil || !entry.NextReview.Equal(t0.AddDate(0, 0, 1)) {
		t.Fatalf("nextReview not applied: %v", entry.NextReview)
	}
	if !entry.UpdatedAt.Equal(t0) {
		t.Fatalf("updatedAt not refreshed: %v", entry.UpdatedAt)
	}
	if err := entry.Check(); err != nil {
		t.Fatalf("reviewed entry should be valid: %v", err)
	}
}
