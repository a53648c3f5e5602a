package entity

import (
	"encoding/json"
	"fmt"
)

// SnapshotVersion is the format version written by this build.
const SnapshotVersion = 1

// Snapshot is the persisted state of a notebook.
type Snapshot struct {
	Version      int               `json:"version"`
	Words        []WordEntry       `json:"words"`
	Settings     Settings          `json:"settings"`
	Stats        Stats             `json:"stats"`
	Achievements []json.RawMessage `json:"achievements"`
}

// DefaultSnapshot returns the state of an empty notebook.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		Version:      SnapshotVersion,
		Words:        []WordEntry{},
		Settings:     DefaultSettings(),
		Stats:        DefaultStats(),
		Achievements: []json.RawMessage{},
	}
}

// Normalize replaces nil collections with empty ones.
func (s *Snapshot) Normalize() {
	if s.Words == nil {
		s.Words = []WordEntry{}
	}
	for i := range s.Words {
		s.Words[i].Normalize()
	}
	if s.Stats.LearningHistory == nil {
		s.Stats.LearningHistory = []DailyRecord{}
	}
	if s.Achievements == nil {
		s.Achievements = []json.RawMessage{}
	}
}

// Check verifies the invariants of every entry.
func (s *Snapshot) Check() error {
	seen := make(map[string]struct{}, len(s.Words))
	for i := range s.Words {
		w := &s.Words[i]
		if err := w.Check(); err != nil {
			return fmt.Errorf("word %d (%q): %w", i, w.Word, err)
		}
		if _, dup := seen[w.ID]; dup {
			return fmt.Errorf("word %d (%q): %w", i, w.Word, ErrDuplicateID)
		}
		seen[w.ID] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	copy := &Snapshot{
		Version:      s.Version,
		Words:        make([]WordEntry, len(s.Words)),
		Settings:     s.Settings,
		Stats:        s.Stats.Clone(),
		Achievements: make([]json.RawMessage, len(s.Achievements)),
	}
	for i, w := range s.Words {
		copy.Words[i] = w.Clone()
	}
	for i, a := range s.Achievements {
		copy.Achievements[i] = append(json.RawMessage(nil), a...)
	}
	return copy
}
