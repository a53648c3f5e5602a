package usecase

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/vocnote/internal/entity"
)

// Observer receives notifications after a command has been applied.
// Notify must not block; the notebook does not wait on observers.
type Observer interface {
	Notify(evt entity.Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(evt entity.Event)

func (f ObserverFunc) Notify(evt entity.Event) { f(evt) }

// Bus is an in-process observer backed by a buffered channel.
type Bus struct {
	ch chan entity.Event
}

// NewBus creates a bus with the given buffer size.
func NewBus(buffer int) *Bus {
	return &Bus{ch: make(chan entity.Event, max(buffer, 0))}
}

// Notify enqueues the event without blocking and drops it when the buffer is full.
func (b *Bus) Notify(evt entity.Event) {
	b.Publish(evt)
}

// Publish attempts to enqueue the event without blocking.
// Returns true if published, false if the buffer is full.
func (b *Bus) Publish(evt entity.Event) bool {
	select {
	case b.ch <- evt:
		return true
	default:
		return false
	}
}

// Subscribe returns a read-only channel for consumers.
func (b *Bus) Subscribe() <-chan entity.Event {
	return b.ch
}

// Drain returns the queued events without waiting for more.
func (b *Bus) Drain() []entity.Event {
	var events []entity.Event
	for {
		select {
		case evt := <-b.ch:
			events = append(events, evt)
		default:
			return events
		}
	}
}

// LogObserver writes every event to logger at debug level.
func LogObserver(logger logrus.FieldLogger) Observer {
	return ObserverFunc(func(evt entity.Event) {
		fields := logrus.Fields{"event": evt.Kind}
		if evt.Entry != nil {
			fields["word_id"] = evt.Entry.ID
			fields["word"] = evt.Entry.Word
		}
		if evt.Snapshot != nil {
			fields["words"] = len(evt.Snapshot.Words)
		}
		logger.WithFields(fields).Debug("notebook event")
	})
}

// notifyAll delivers evt to every observer. A panicking observer is logged and skipped.
func notifyAll(observers []Observer, evt entity.Event, logger logrus.FieldLogger) {
	for _, o := range observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.WithField("event", evt.Kind).Warnf("observer panicked: %v", r)
				}
			}()
			o.Notify(evt)
		}()
	}
}
