package entity

import "time"

// HistoryLimit is the number of daily records kept in the learning history.
const HistoryLimit = 30

// DailyRecord summarises the activity of one calendar day.
type DailyRecord struct {
	Date          string `json:"date"`
	WordsAdded    int    `json:"wordsAdded"`
	WordsReviewed int    `json:"wordsReviewed"`
}

// Stats is the aggregate derived from the word collection.
type Stats struct {
	TotalWords      int           `json:"totalWords"`
	MasteredWords   int           `json:"masteredWords"`
	TodayAdded      int           `json:"todayAdded"`
	StreakDays      int           `json:"streakDays"`
	LastStudyDate   *time.Time    `json:"lastStudyDate"`
	LearningHistory []DailyRecord `json:"learningHistory"`
}

// Clone returns a deep copy of the stats.
func (s Stats) Clone() Stats {
	copy := s
	if s.LastStudyDate != nil {
		last := *s.LastStudyDate
		copy.LastStudyDate = &last
	}
	copy.LearningHistory = append([]DailyRecord{}, s.LearningHistory...)
	return copy
}

// DefaultStats returns the stats of an empty notebook.
func DefaultStats() Stats {
	return Stats{LearningHistory: []DailyRecord{}}
}
