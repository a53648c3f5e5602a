package usecase

import (
	"testing"
	"time"

	"github.com/eslsoft/vocnote/internal/entity"
)

func TestAggregateStatsCounts(t *testing.T) {
	yesterday := t0.AddDate(0, 0, -1)
	reviewedToday := t0.Add(-time.Hour)
	words := []entity.WordEntry{
		{ID: "a", CreatedAt: t0.Add(-2 * time.Hour), Mastery: 80},
		{ID: "b", CreatedAt: yesterday, Mastery: 79, LastReviewed: &reviewedToday, ReviewCount: 1},
		{ID: "c", CreatedAt: t0, Mastery: 100},
	}

	got := AggregateStats(words, entity.DefaultStats(), t0, time.UTC)

	if got.TotalWords != 3 || got.MasteredWords != 2 || got.TodayAdded != 2 {
		t.Fatalf("unexpected counts %+v", got)
	}
	if got.StreakDays != 1 {
		t.Fatalf("expected first streak of 1, got %d", got.StreakDays)
	}
	if got.LastStudyDate == nil || !got.LastStudyDate.Equal(t0) {
		t.Fatalf("expected lastStudyDate %v, got %v", t0, got.LastStudyDate)
	}
	want := entity.DailyRecord{Date: "2025-03-10", WordsAdded: 2}
	if len(got.LearningHistory) != 1 || got.LearningHistory[0] != want {
		t.Fatalf("unexpected history %+v", got.LearningHistory)
	}
}

func TestAggregateStatsOverwritesTodayRecord(t *testing.T) {
	reviewed := t0.Add(-time.Minute)
	words := []entity.WordEntry{
		{ID: "a", CreatedAt: t0, LastReviewed: &reviewed, ReviewCount: 1},
		{ID: "b", CreatedAt: t0.AddDate(0, 0, -4), LastReviewed: &reviewed, ReviewCount: 3},
	}
	prev := entity.Stats{
		StreakDays:      4,
		LastStudyDate:   &t0,
		LearningHistory: []entity.DailyRecord{{Date: "2025-03-09", WordsAdded: 7}, {Date: "2025-03-10", WordsAdded: 9, WordsReviewed: 9}},
	}

	got := AggregateStats(words, prev, t0.Add(time.Hour), time.UTC)

	if len(got.LearningHistory) != 2 {
		t.Fatalf("expected 2 history records, got %+v", got.LearningHistory)
	}
	if rec := got.LearningHistory[1]; rec.WordsAdded != 1 || rec.WordsReviewed != 2 {
		t.Fatalf("today's record not overwritten: %+v", rec)
	}
	if got.StreakDays != 4 {
		t.Fatalf("same-day recompute changed streak to %d", got.StreakDays)
	}
	if prev.LearningHistory[1].WordsAdded != 9 {
		t.Fatalf("previous snapshot mutated: %+v", prev.LearningHistory)
	}
}

func TestAggregateStatsIdempotentWithinDay(t *testing.T) {
	words := []entity.WordEntry{{ID: "a", CreatedAt: t0}}
	first := AggregateStats(words, entity.DefaultStats(), t0, time.UTC)
	second := AggregateStats(words, first, t0.Add(3*time.Hour), time.UTC)

	if second.TotalWords != first.TotalWords || second.TodayAdded != first.TodayAdded || second.MasteredWords != first.MasteredWords {
		t.Fatalf("recompute double counted: first %+v second %+v", first, second)
	}
	if len(second.LearningHistory) != 1 {
		t.Fatalf("expected a single history record, got %+v", second.LearningHistory)
	}
}

func TestAggregateStatsStreak(t *testing.T) {
	cases := []struct {
		name string
		last *time.Time
		prev int
		want int
	}{
		{"first study", nil, 0, 1},
		{"yesterday", ptrTime(t0.AddDate(0, 0, -1)), 5, 6},
		{"late yesterday", ptrTime(time.Date(2025, time.March, 9, 23, 59, 0, 0, time.UTC)), 2, 3},
		{"three days ago", ptrTime(t0.AddDate(0, 0, -3)), 5, 1},
		{"same day", ptrTime(t0.Add(-time.Hour)), 5, 5},
		{"future clock skew", ptrTime(t0.AddDate(0, 0, 2)), 5, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prev := entity.Stats{StreakDays: tc.prev, LastStudyDate: tc.last}
			got := AggregateStats(nil, prev, t0, time.UTC)
			if got.StreakDays != tc.want {
				t.Fatalf("expected streak %d, got %d", tc.want, got.StreakDays)
			}
		})
	}
}

func TestAggregateStatsUsesLocationForDayBoundary(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2025-03-09 16:00 UTC is already 2025-03-10 in Tokyo.
	created := time.Date(2025, time.March, 9, 16, 0, 0, 0, time.UTC)
	words := []entity.WordEntry{{ID: "a", CreatedAt: created}}

	if got := AggregateStats(words, entity.DefaultStats(), t0, tokyo); got.TodayAdded != 1 {
		t.Fatalf("expected word added today in Tokyo, got %d", got.TodayAdded)
	}
	if got := AggregateStats(words, entity.DefaultStats(), t0, time.UTC); got.TodayAdded != 0 {
		t.Fatalf("expected word added yesterday in UTC, got %d", got.TodayAdded)
	}
}

func TestAggregateStatsHistoryCap(t *testing.T) {
	stats := entity.DefaultStats()
	for day := 0; day < 31; day++ {
		stats = AggregateStats(nil, stats, t0.AddDate(0, 0, day), time.UTC)
	}

	if len(stats.LearningHistory) != entity.HistoryLimit {
		t.Fatalf("expected %d records, got %d", entity.HistoryLimit, len(stats.LearningHistory))
	}
	oldest := entity.DayKey(t0, time.UTC)
	for _, rec := range stats.LearningHistory {
		if rec.Date == oldest {
			t.Fatalf("oldest day %s should have been dropped", oldest)
		}
	}
	if first := stats.LearningHistory[0].Date; first != entity.DayKey(t0.AddDate(0, 0, 1), time.UTC) {
		t.Fatalf("unexpected first record %s", first)
	}
	if stats.StreakDays != 31 {
		t.Fatalf("expected a 31 day streak, got %d", stats.StreakDays)
	}
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
