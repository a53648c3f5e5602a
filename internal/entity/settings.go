package entity

// Settings is the flat user configuration stored with the notebook.
type Settings struct {
	Theme         string `json:"theme"`
	ReviewMode    string `json:"reviewMode"`
	DailyGoal     int    `json:"dailyGoal"`
	Notifications bool   `json:"notifications"`
}

// SettingsPatch lists the settings an update may overwrite.
type SettingsPatch struct {
	Theme         *string
	ReviewMode    *string
	DailyGoal     *int
	Notifications *bool
}

// DefaultSettings returns the settings of a fresh notebook.
func DefaultSettings() Settings {
	return Settings{
		Theme:         "auto",
		ReviewMode:    "spaced",
		DailyGoal:     10,
		Notifications: true,
	}
}

// Validate rejects values that would break the daily goal display.
func (p SettingsPatch) Validate() error {
	if p.DailyGoal != nil && *p.DailyGoal <= 0 {
		return ErrInvalidGoal
	}
	return nil
}

// Merge shallow-merges the provided fields into s.
func (s Settings) Merge(p SettingsPatch) Settings {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.ReviewMode != nil {
		s.ReviewMode = *p.ReviewMode
	}
	if p.DailyGoal != nil {
		s.DailyGoal = *p.DailyGoal
	}
	if p.Notifications != nil {
		s.Notifications = *p.Notifications
	}
	return s
}
