package entity

// EventKind names a change published to observers.
type EventKind string

const (
	EventEntryAdded    EventKind = "entryAdded"
	EventEntryUpdated  EventKind = "entryUpdated"
	EventEntryDeleted  EventKind = "entryDeleted"
	EventDataImported  EventKind = "dataImported"
	EventDataCleared   EventKind = "dataCleared"
	EventStatsComputed EventKind = "statsComputed"
	EventSettingsSaved EventKind = "settingsSaved"
)

// Event carries the affected entry or snapshot of a change.
type Event struct {
	Kind     EventKind
	Entry    *WordEntry
	Snapshot *Snapshot
}
