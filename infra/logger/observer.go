package logger

import (
	"github.com/kilianp07/foundry/core/factory"
)

// Observer logs creation events: debug for successes, warn for failures.
type Observer struct {
	log Logger
}

// NewObserver returns an Observer writing to log.
func NewObserver(log Logger) *Observer {
	if log == nil {
		log = NopLogger{}
	}
	return &Observer{log: log}
}

// Observe logs ev.
func (o *Observer) Observe(ev factory.Event) {
	fields := map[string]any{
		"op":          string(ev.Op),
		"scope":       ev.Scope,
		"key":         ev.Key,
		"outcome":     ev.Outcome(),
		"duration_ms": float64(ev.Duration.Microseconds()) / 1000,
	}
	if ev.Err == nil {
		o.log.Debugw("creation", fields)
		return
	}
	fields["error"] = ev.Err.Error()
	o.log.Warnw("creation failed", fields)
}
