package usecase

import (
	"time"

	"github.com/eslsoft/vocnote/internal/entity"
)

// AggregateStats derives a fresh stats snapshot from the word collection and the previous snapshot.
//
// Day comparisons use the calendar date in loc. The streak grows when the previous study day was
// yesterday, resets after a gap, and is left alone when it was today (or in the future).
// The gap counts calendar dates, not elapsed 24h periods: 23:59 to 09:30 the next morning
// is one day and extends the streak.
func AggregateStats(words []entity.WordEntry, prev entity.Stats, now time.Time, loc *time.Location) entity.Stats {
	if loc == nil {
		loc = time.Local
	}
	today := entity.DayKey(now, loc)

	var todayAdded, todayReviewed, mastered int
	for i := range words {
		w := &words[i]
		if entity.DayKey(w.CreatedAt, loc) == today {
			todayAdded++
		}
		if w.LastReviewed != nil && entity.DayKey(*w.LastReviewed, loc) == today {
			todayReviewed++
		}
		if w.IsMastered() {
			mastered++
		}
	}

	next := prev.Clone()
	next.TotalWords = len(words)
	next.MasteredWords = mastered
	next.TodayAdded = todayAdded
	next.StreakDays = nextStreak(prev, now, loc)
	last := now
	next.LastStudyDate = &last
	next.LearningHistory = updateHistory(next.LearningHistory, today, todayAdded, todayReviewed)
	return next
}

func nextStreak(prev entity.Stats, now time.Time, loc *time.Location) int {
	if prev.LastStudyDate == nil {
		return 1
	}
	switch diff := entity.DaysBetween(*prev.LastStudyDate, now, loc); {
	case diff == 1:
		return prev.StreakDays + 1
	case diff > 1:
		return 1
	default:
		return prev.StreakDays
	}
}

func updateHistory(history []entity.DailyRecord, today string, added, reviewed int) []entity.DailyRecord {
	for i := range history {
		if history[i].Date == today {
			history[i].WordsAdded = added
			history[i].WordsReviewed = reviewed
			return history
		}
	}
	history = append(history, entity.DailyRecord{Date: today, WordsAdded: added})
	if over := len(history) - entity.HistoryLimit; over > 0 {
		history = append([]entity.DailyRecord{}, history[over:]...)
	}
	return history
}
