package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/vocnote/internal/entity"
	"github.com/eslsoft/vocnote/internal/repository"
)

// SnapshotCodec converts notebook snapshots to and from text.
type SnapshotCodec interface {
	Encode(snap *entity.Snapshot) ([]byte, error)
	Decode(data []byte) (*entity.Snapshot, error)
	Export(ctx context.Context, w io.Writer, snap *entity.Snapshot) error
	Import(ctx context.Context, r io.Reader) (*entity.Snapshot, error)
}

// Config tunes the notebook behaviour.
type Config struct {
	// Location decides where calendar days begin. Nil means time.Local.
	Location *time.Location
	// SeedExamples adds a few example words when the notebook starts empty.
	SeedExamples bool
	// ReplaceUnreadable starts from an empty notebook when the stored one cannot be decoded.
	// The unreadable data is overwritten by the next save. Otherwise startup fails.
	ReplaceUnreadable bool
}

// Change describes the result of a mutating command.
type Change struct {
	Kind   entity.EventKind
	Entry  *entity.WordEntry
	Review *ReviewOutcome
	Stats  entity.Stats
}

// VocabularyUsecase owns the word collection together with its stats and settings.
//
// Mutations that fail to persist stay applied in memory. They return the Change and an
// error wrapping entity.ErrPersistence.
type VocabularyUsecase interface {
	Add(ctx context.Context, draft entity.WordDraft) (*Change, error)
	Update(ctx context.Context, id string, patch entity.WordPatch) (*Change, error)
	Delete(ctx context.Context, id string) (*Change, error)
	Review(ctx context.Context, id string, difficulty entity.Difficulty) (*Change, error)

	Get(id string) (*entity.WordEntry, error)
	List() []entity.WordEntry
	Search(query string) []entity.WordEntry
	FilterByTag(tag string) []entity.WordEntry
	AllTags() []string
	DueForReview(now time.Time) []entity.WordEntry
	Query(ctx context.Context, query *repository.ListWordQuery) ([]entity.WordEntry, int, error)

	Stats() entity.Stats
	RecomputeStats(ctx context.Context) (*Change, error)
	Settings() entity.Settings
	UpdateSettings(ctx context.Context, patch entity.SettingsPatch) (entity.Settings, error)

	Save(ctx context.Context) error
	Snapshot() *entity.Snapshot
	Export(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, r io.Reader) (*Change, error)
	Clear(ctx context.Context) (*Change, error)

	Subscribe(o Observer)
}

// NewVocabularyUsecase loads the saved notebook from repo. A stored notebook that cannot be
// decoded fails with entity.ErrUnreadableStore and is left untouched, unless
// cfg.ReplaceUnreadable is set.
func NewVocabularyUsecase(ctx context.Context, repo repository.SnapshotRepository, codec SnapshotCodec, logger logrus.FieldLogger, cfg Config) (VocabularyUsecase, error) {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	u := &vocabularyUsecase{
		repo:   repo,
		codec:  codec,
		logger: logger,
		loc:    loc,
		clock:  time.Now,
		newID:  uuid.NewString,
	}

	snap, unreadable, err := u.load(ctx)
	if err != nil {
		return nil, err
	}
	if unreadable != nil {
		if !cfg.ReplaceUnreadable {
			return nil, fmt.Errorf("%w: %w", entity.ErrUnreadableStore, unreadable)
		}
		logger.WithError(unreadable).Warn("saved notebook is unreadable, starting empty")
	}
	u.replace(snap)

	// never seed over data that is still in the store
	if cfg.SeedExamples && unreadable == nil && len(u.words) == 0 {
		u.seedExamples()
		if err := u.save(ctx); err != nil {
			logger.WithError(err).Warn("example words were not saved")
		}
	}
	return u, nil
}

type vocabularyUsecase struct {
	repo   repository.SnapshotRepository
	codec  SnapshotCodec
	logger logrus.FieldLogger
	loc    *time.Location
	clock  func() time.Time
	newID  func() string

	mu           sync.RWMutex
	words        []entity.WordEntry
	settings     entity.Settings
	stats        entity.Stats
	achievements []json.RawMessage
	observers    []Observer
}

func (u *vocabularyUsecase) Add(ctx context.Context, draft entity.WordDraft) (*Change, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	u.mu.Lock()
	now := u.clock()
	entry := entity.WordEntry{
		ID:        u.newID(),
		Word:      strings.TrimSpace(draft.Word),
		Meaning:   strings.TrimSpace(draft.Meaning),
		Example:   strings.TrimSpace(draft.Example),
		Tags:      entity.NormalizeTags(draft.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	u.words = slices.Insert(u.words, 0, entry)
	u.stats = AggregateStats(u.words, u.stats, now, u.loc)
	change := u.changeLocked(entity.EventEntryAdded, &entry)
	err := u.save(ctx)
	u.mu.Unlock()

	u.logger.WithFields(logrus.Fields{"word_id": entry.ID, "word": entry.Word}).Debug("word added")
	u.emit(entity.Event{Kind: entity.EventEntryAdded, Entry: change.Entry})
	return change, err
}

func (u *vocabularyUsecase) Update(ctx context.Context, id string, patch entity.WordPatch) (*Change, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	u.mu.Lock()
	idx := u.indexLocked(id)
	if idx < 0 {
		u.mu.Unlock()
		return nil, entity.NotFound(id)
	}
	u.words[idx].Apply(patch, u.clock())
	change := u.changeLocked(entity.EventEntryUpdated, &u.words[idx])
	err := u.save(ctx)
	u.mu.Unlock()

	u.emit(entity.Event{Kind: entity.EventEntryUpdated, Entry: change.Entry})
	return change, err
}

func (u *vocabularyUsecase) Delete(ctx context.Context, id string) (*Change, error) {
	u.mu.Lock()
	idx := u.indexLocked(id)
	if idx < 0 {
		u.mu.Unlock()
		return nil, entity.NotFound(id)
	}
	removed := u.words[idx]
	u.words = slices.Delete(u.words, idx, idx+1)
	u.stats = AggregateStats(u.words, u.stats, u.clock(), u.loc)
	change := u.changeLocked(entity.EventEntryDeleted, &removed)
	err := u.save(ctx)
	u.mu.Unlock()

	u.logger.WithFields(logrus.Fields{"word_id": removed.ID, "word": removed.Word}).Debug("word deleted")
	u.emit(entity.Event{Kind: entity.EventEntryDeleted, Entry: change.Entry})
	return change, err
}

func (u *vocabularyUsecase) Review(ctx context.Context, id string, difficulty entity.Difficulty) (*Change, error) {
	u.mu.Lock()
	idx := u.indexLocked(id)
	if idx < 0 {
		u.mu.Unlock()
		return nil, entity.NotFound(id)
	}
	now := u.clock()
	outcome := ComputeReview(u.words[idx], difficulty, now, u.loc)
	outcome.Apply(&u.words[idx])
	u.stats = AggregateStats(u.words, u.stats, now, u.loc)
	change := u.changeLocked(entity.EventEntryUpdated, &u.words[idx])
	change.Review = &outcome
	err := u.save(ctx)
	u.mu.Unlock()

	u.logger.WithFields(logrus.Fields{
		"word_id":    id,
		"difficulty": difficulty,
		"interval":   outcome.IntervalDays,
		"mastery":    outcome.Mastery,
	}).Debug("word reviewed")
	u.emit(entity.Event{Kind: entity.EventEntryUpdated, Entry: change.Entry})
	return change, err
}

func (u *vocabularyUsecase) Get(id string) (*entity.WordEntry, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	idx := u.indexLocked(id)
	if idx < 0 {
		return nil, entity.NotFound(id)
	}
	entry := u.words[idx].Clone()
	return &entry, nil
}

func (u *vocabularyUsecase) List() []entity.WordEntry {
	return u.selectWords(func(entity.WordEntry) bool { return true })
}

func (u *vocabularyUsecase) Search(query string) []entity.WordEntry {
	query = strings.TrimSpace(query)
	if query == "" {
		return u.List()
	}
	return u.selectWords(func(w entity.WordEntry) bool { return matchesKeyword(w, query) })
}

func (u *vocabularyUsecase) FilterByTag(tag string) []entity.WordEntry {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return u.List()
	}
	return u.selectWords(func(w entity.WordEntry) bool { return w.HasTag(tag) })
}

func (u *vocabularyUsecase) AllTags() []string {
	u.mu.RLock()
	tags := lo.Uniq(lo.FlatMap(u.words, func(w entity.WordEntry, _ int) []string { return w.Tags }))
	u.mu.RUnlock()
	slices.Sort(tags)
	return tags
}

func (u *vocabularyUsecase) DueForReview(now time.Time) []entity.WordEntry {
	return u.selectWords(func(w entity.WordEntry) bool { return w.IsDue(now) })
}

func (u *vocabularyUsecase) Stats() entity.Stats {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.stats.Clone()
}

func (u *vocabularyUsecase) RecomputeStats(ctx context.Context) (*Change, error) {
	u.mu.Lock()
	u.stats = AggregateStats(u.words, u.stats, u.clock(), u.loc)
	change := u.changeLocked(entity.EventStatsComputed, nil)
	err := u.save(ctx)
	u.mu.Unlock()

	u.emit(entity.Event{Kind: entity.EventStatsComputed})
	return change, err
}

func (u *vocabularyUsecase) Settings() entity.Settings {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.settings
}

func (u *vocabularyUsecase) UpdateSettings(ctx context.Context, patch entity.SettingsPatch) (entity.Settings, error) {
	if err := patch.Validate(); err != nil {
		return u.Settings(), err
	}

	u.mu.Lock()
	u.settings = u.settings.Merge(patch)
	settings := u.settings
	err := u.save(ctx)
	u.mu.Unlock()

	u.emit(entity.Event{Kind: entity.EventSettingsSaved})
	return settings, err
}

func (u *vocabularyUsecase) Save(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.save(ctx)
}

func (u *vocabularyUsecase) Snapshot() *entity.Snapshot {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.snapshotLocked()
}

func (u *vocabularyUsecase) Export(ctx context.Context, w io.Writer) error {
	return u.codec.Export(ctx, w, u.Snapshot())
}

func (u *vocabularyUsecase) Import(ctx context.Context, r io.Reader) (*Change, error) {
	snap, err := u.codec.Import(ctx, r)
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	u.replace(snap)
	change := u.changeLocked(entity.EventDataImported, nil)
	imported := u.snapshotLocked()
	err = u.save(ctx)
	u.mu.Unlock()

	u.logger.WithField("words", len(imported.Words)).Info("notebook imported")
	u.emit(entity.Event{Kind: entity.EventDataImported, Snapshot: imported})
	return change, err
}

func (u *vocabularyUsecase) Clear(ctx context.Context) (*Change, error) {
	u.mu.Lock()
	u.replace(entity.DefaultSnapshot())
	change := u.changeLocked(entity.EventDataCleared, nil)
	err := persistenceError(u.repo.Clear(ctx))
	u.mu.Unlock()

	u.logger.Info("notebook cleared")
	u.emit(entity.Event{Kind: entity.EventDataCleared, Snapshot: entity.DefaultSnapshot()})
	return change, err
}

func (u *vocabularyUsecase) Subscribe(o Observer) {
	if o == nil {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.observers = append(u.observers, o)
}

// load returns the stored snapshot. A payload that fails to decode is reported through
// unreadable together with an empty snapshot.
func (u *vocabularyUsecase) load(ctx context.Context) (snap *entity.Snapshot, unreadable, err error) {
	data, err := u.repo.Load(ctx)
	if err != nil {
		return nil, nil, persistenceError(err)
	}
	if len(data) == 0 {
		return entity.DefaultSnapshot(), nil, nil
	}
	snap, decodeErr := u.codec.Decode(data)
	if decodeErr != nil {
		return entity.DefaultSnapshot(), decodeErr, nil
	}
	return snap, nil, nil
}

// save persists the current state. Callers hold u.mu.
func (u *vocabularyUsecase) save(ctx context.Context) error {
	data, err := u.codec.Encode(u.snapshotLocked())
	if err != nil {
		return fmt.Errorf("%w: encode: %w", entity.ErrPersistence, err)
	}
	if err := u.repo.Save(ctx, data); err != nil {
		u.logger.WithError(err).Warn("notebook not saved, changes kept in memory")
		return persistenceError(err)
	}
	return nil
}

func persistenceError(err error) error {
	if err == nil || errors.Is(err, entity.ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %w", entity.ErrPersistence, err)
}

func (u *vocabularyUsecase) replace(snap *entity.Snapshot) {
	snap = snap.Clone()
	snap.Normalize()
	u.words = snap.Words
	u.settings = snap.Settings
	u.stats = snap.Stats
	u.achievements = snap.Achievements
}

func (u *vocabularyUsecase) snapshotLocked() *entity.Snapshot {
	snap := &entity.Snapshot{
		Version:      entity.SnapshotVersion,
		Words:        u.words,
		Settings:     u.settings,
		Stats:        u.stats,
		Achievements: u.achievements,
	}
	return snap.Clone()
}

func (u *vocabularyUsecase) changeLocked(kind entity.EventKind, entry *entity.WordEntry) *Change {
	change := &Change{Kind: kind, Stats: u.stats.Clone()}
	if entry != nil {
		clone := entry.Clone()
		change.Entry = &clone
	}
	return change
}

func (u *vocabularyUsecase) indexLocked(id string) int {
	return slices.IndexFunc(u.words, func(w entity.WordEntry) bool { return w.ID == id })
}

func (u *vocabularyUsecase) selectWords(keep func(entity.WordEntry) bool) []entity.WordEntry {
	u.mu.RLock()
	defer u.mu.RUnlock()
	result := make([]entity.WordEntry, 0, len(u.words))
	for _, w := range u.words {
		if keep(w) {
			result = append(result, w.Clone())
		}
	}
	return result
}

func (u *vocabularyUsecase) emit(evt entity.Event) {
	u.mu.RLock()
	observers := slices.Clone(u.observers)
	u.mu.RUnlock()
	notifyAll(observers, evt, u.logger)
}

func (u *vocabularyUsecase) seedExamples() {
	now := u.clock()
	for _, draft := range exampleWords {
		u.words = append(u.words, entity.WordEntry{
			ID:        u.newID(),
			Word:      draft.Word,
			Meaning:   draft.Meaning,
			Example:   draft.Example,
			Tags:      slices.Clone(draft.Tags),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	u.stats = AggregateStats(u.words, u.stats, now, u.loc)
	u.logger.WithField("words", len(exampleWords)).Info("seeded example words")
}

var exampleWords = []entity.WordDraft{
	{
		Word:    "serendipity",
		Meaning: "the knack of finding valuable things by chance",
		Example: "Finding this book was a real serendipity.",
		Tags:    []string{"noun", "advanced"},
	},
	{
		Word:    "ephemeral",
		Meaning: "lasting for a very short time",
		Example: "The beauty of cherry blossoms is ephemeral.",
		Tags:    []string{"adjective", "literary"},
	},
	{
		Word:    "resilient",
		Meaning: "able to recover quickly from difficulty",
		Example: "Children are often more resilient than adults.",
		Tags:    []string{"adjective", "psychology"},
	},
}

func matchesKeyword(w entity.WordEntry, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(w.Word), q) ||
		strings.Contains(strings.ToLower(w.Meaning), q) ||
		strings.Contains(strings.ToLower(w.Example), q) ||
		lo.SomeBy(w.Tags, func(tag string) bool { return strings.Contains(strings.ToLower(tag), q) })
}
