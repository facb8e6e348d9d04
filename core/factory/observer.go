package factory

import (
	"errors"
	"time"
)

// Op identifies the creation step an Event describes.
type Op string

const (
	OpCreate  Op = "create"
	OpMake    Op = "make"
	OpCompose Op = "compose"
)

// Outcome labels.
const (
	OutcomeOK          = "ok"
	OutcomeUnsupported = "unsupported"
	OutcomeFailed      = "failed"
)

// Event describes one creation step. Scope is the registry, family or
// composition name; Key is the discriminator or role.
type Event struct {
	Op       Op
	Scope    string
	Key      string
	Start    time.Time
	Duration time.Duration
	Err      error
}

// Outcome classifies the event for metrics and audit records.
func (e Event) Outcome() string {
	switch {
	case e.Err == nil:
		return OutcomeOK
	case errors.Is(e.Err, ErrUnsupportedDiscriminator):
		return OutcomeUnsupported
	default:
		return OutcomeFailed
	}
}

// Observer receives creation events. Implementations must be safe for
// concurrent use and must not block for long: they run on the caller's path.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(ev Event) { f(ev) }

// NopObserver discards events.
type NopObserver struct{}

func (NopObserver) Observe(Event) {}

// MultiObserver fans out events to several observers.
type MultiObserver struct {
	Observers []Observer
}

// NewMultiObserver creates a MultiObserver with the provided observers.
func NewMultiObserver(obs ...Observer) *MultiObserver {
	return &MultiObserver{Observers: obs}
}

// Observe forwards the event to every observer in order.
func (m *MultiObserver) Observe(ev Event) {
	for _, o := range m.Observers {
		o.Observe(ev)
	}
}
