package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultAutosaveInterval is used when no interval is configured.
const DefaultAutosaveInterval = 5 * time.Minute

// Saver persists in-memory state.
type Saver interface {
	Save(ctx context.Context) error
}

// Autosaver saves periodically while a long running command is active.
type Autosaver struct {
	saver    Saver
	interval time.Duration
	logger   logrus.FieldLogger
	OnError  func(error)
}

// NewAutosaver creates an autosaver. A non-positive interval falls back to DefaultAutosaveInterval.
func NewAutosaver(saver Saver, interval time.Duration, logger logrus.FieldLogger) *Autosaver {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	return &Autosaver{saver: saver, interval: interval, logger: logger}
}

// Run saves on every tick until ctx is done, then saves one last time.
// Save failures are logged and do not stop the loop.
func (a *Autosaver) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.save(ctx)
		case <-ctx.Done():
			a.save(context.WithoutCancel(ctx))
			return
		}
	}
}

func (a *Autosaver) save(ctx context.Context) {
	if err := a.saver.Save(ctx); err != nil {
		a.logger.WithError(err).Warn("autosave failed")
		if a.OnError != nil {
			a.OnError(err)
		}
		return
	}
	a.logger.Debug("autosaved")
}
