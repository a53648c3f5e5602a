package backup

import (
	"fmt"
	"time"

	"github.com/eslsoft/vocnote/internal/entity"
)

// legacyDayLayout is the day key format of untagged (version 0) snapshots.
const legacyDayLayout = "Mon Jan 02 2006"

func defaultMigrations() map[int]Migration {
	return map[int]Migration{
		0: migrateLegacyHistoryDates,
	}
}

// migrateLegacyHistoryDates rewrites "Sun Oct 18 2026" history dates to "2026-10-18".
func migrateLegacyHistoryDates(doc map[string]any) error {
	stats, ok := doc["stats"].(map[string]any)
	if !ok {
		return nil
	}
	history, ok := stats["learningHistory"].([]any)
	if !ok {
		return nil
	}
	for i, item := range history {
		rec, ok := item.(map[string]any)
		if !ok {
			return fmt.Errorf("learning history %d is not an object", i)
		}
		date, ok := rec["date"].(string)
		if !ok {
			continue
		}
		if _, err := time.Parse(entity.DayLayout, date); err == nil {
			continue
		}
		parsed, err := time.Parse(legacyDayLayout, date)
		if err != nil {
			return fmt.Errorf("learning history %d: unrecognised date %q", i, date)
		}
		rec["date"] = parsed.Format(entity.DayLayout)
	}
	return nil
}
