package mapping

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/vocnote/internal/entity"
)

// WordHeader labels the columns of WordRow.
var WordHeader = []string{"ID", "Word", "Meaning", "Tags", "Mastery", "Reviews", "Next review"}

// WordRow renders an entry as a table row. Review times are shown as calendar days in loc.
func WordRow(w entity.WordEntry, now time.Time, loc *time.Location) []string {
	return []string{
		ShortID(w.ID),
		w.Word,
		Truncate(w.Meaning, 40),
		strings.Join(w.Tags, ", "),
		fmt.Sprintf("%d%%", w.Mastery),
		strconv.Itoa(w.ReviewCount),
		NextReviewLabel(w, now, loc),
	}
}

// WordRows renders a collection for tablewriter.
func WordRows(words []entity.WordEntry, now time.Time, loc *time.Location) [][]string {
	return lo.Map(words, func(w entity.WordEntry, _ int) []string { return WordRow(w, now, loc) })
}

// WordDetail lists every field of an entry as label/value pairs.
func WordDetail(w entity.WordEntry, now time.Time, loc *time.Location) [][]string {
	rows := [][]string{
		{"ID", w.ID},
		{"Word", w.Word},
		{"Meaning", w.Meaning},
		{"Example", w.Example},
		{"Tags", strings.Join(w.Tags, ", ")},
		{"Mastery", fmt.Sprintf("%d%%", w.Mastery)},
		{"Reviews", strconv.Itoa(w.ReviewCount)},
		{"Last reviewed", timeLabel(w.LastReviewed, loc)},
		{"Next review", NextReviewLabel(w, now, loc)},
		{"Added", w.CreatedAt.In(loc).Format(time.DateTime)},
		{"Updated", w.UpdatedAt.In(loc).Format(time.DateTime)},
	}
	return rows
}

// StatsDetail lists the aggregate figures as label/value pairs.
func StatsDetail(s entity.Stats, goal int, loc *time.Location) [][]string {
	return [][]string{
		{"Total words", strconv.Itoa(s.TotalWords)},
		{"Mastered", strconv.Itoa(s.MasteredWords)},
		{"Added today", fmt.Sprintf("%d / %d", s.TodayAdded, goal)},
		{"Streak", fmt.Sprintf("%d day(s)", s.StreakDays)},
		{"Last study", timeLabel(s.LastStudyDate, loc)},
	}
}

// HistoryRows renders the learning history, newest day first.
func HistoryRows(history []entity.DailyRecord) [][]string {
	rows := make([][]string, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		rec := history[i]
		rows = append(rows, []string{rec.Date, strconv.Itoa(rec.WordsAdded), strconv.Itoa(rec.WordsReviewed)})
	}
	return rows
}

// NextReviewLabel describes when the entry is due relative to now.
func NextReviewLabel(w entity.WordEntry, now time.Time, loc *time.Location) string {
	if w.IsDue(now) {
		return "due"
	}
	switch days := entity.DaysBetween(now, *w.NextReview, loc); days {
	case 0:
		return "later today"
	case 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

// ShortID keeps the first eight characters of an id for display.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func timeLabel(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "never"
	}
	return t.In(loc).Format(time.DateTime)
}
