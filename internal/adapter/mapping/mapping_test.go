package mapping

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/eslsoft/vocnote/internal/entity"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{entity.ErrBlankWord, "Please enter the word."},
		{fmt.Errorf("add: %w", entity.ErrBlankMeaning), "Please enter the meaning."},
		{fmt.Errorf("%w: bad filter", entity.ErrValidation), "That input is not valid."},
		{entity.NotFound("abc"), "That word is not in your notebook."},
		{fmt.Errorf("%w: eof", entity.ErrParse), "The file could not be read. Nothing was imported."},
		{fmt.Errorf("%w: version 2", entity.ErrUnreadableStore), "Your saved notebook could not be read and was left untouched. Run `vocnote import --replace-unreadable` to restore a backup."},
		{fmt.Errorf("%w: disk full", entity.ErrPersistence), "Your changes could not be saved. They are kept for this session only."},
		{errors.New("sql: connection refused"), "Something went wrong."},
	}
	for _, tc := range tests {
		if got := UserMessage(tc.err); got != tc.want {
			t.Fatalf("UserMessage(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestWordRow(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	next := now.AddDate(0, 0, 3)
	w := entity.WordEntry{
		ID:          "0123456789abcdef",
		Word:        "ephemeral",
		Meaning:     "lasting a very short time",
		Tags:        []string{"adj", "literary"},
		Mastery:     35,
		ReviewCount: 2,
		NextReview:  &next,
	}
	want := []string{"01234567", "ephemeral", "lasting a very short time", "adj, literary", "35%", "2", "in 3 days"}
	if got := WordRow(w, now, time.UTC); !reflect.DeepEqual(got, want) {
		t.Fatalf("WordRow = %v, want %v", got, want)
	}
}

func TestNextReviewLabel(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	at := func(d time.Duration) entity.WordEntry {
		next := now.Add(d)
		return entity.WordEntry{NextReview: &next}
	}
	tests := []struct {
		entry entity.WordEntry
		want  string
	}{
		{entity.WordEntry{}, "due"},
		{at(-time.Hour), "due"},
		{at(time.Hour), "later today"},
		{at(20 * time.Hour), "tomorrow"},
		{at(72 * time.Hour), "in 3 days"},
	}
	for _, tc := range tests {
		if got := NextReviewLabel(tc.entry, now, time.UTC); got != tc.want {
			t.Fatalf("NextReviewLabel = %q, want %q", got, tc.want)
		}
	}
}

func TestHistoryRowsNewestFirst(t *testing.T) {
	rows := HistoryRows([]entity.DailyRecord{{Date: "2025-04-30", WordsAdded: 1}, {Date: "2025-05-01", WordsReviewed: 4}})
	want := [][]string{{"2025-05-01", "0", "4"}, {"2025-04-30", "1", "0"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("HistoryRows = %v, want %v", rows, want)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Truncate("意外发现珍奇事物的本领", 5); got != "意外发现…" {
		t.Fatalf("unexpected %q", got)
	}
}
