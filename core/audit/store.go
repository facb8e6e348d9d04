// Package audit persists creation events so they can be queried after the
// fact.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/foundry/core/factory"
)

// Backends accepted by NewStore.
const (
	BackendJSONL    = "jsonl"
	BackendRotating = "rotating"
	BackendSQLite   = "sqlite"
)

// Record captures one creation step and its outcome.
type Record struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Op         string    `json:"op"`
	Scope      string    `json:"scope"`
	Key        string    `json:"key"`
	Outcome    string    `json:"outcome"`
	Error      string    `json:"error,omitempty"`
	DurationMS float64   `json:"duration_ms"`
}

// NewRecord converts ev into a Record with a fresh id.
func NewRecord(ev factory.Event) Record {
	ts := ev.Start
	if ts.IsZero() {
		ts = time.Now()
	}
	r := Record{
		ID:         uuid.NewString(),
		Timestamp:  ts.UTC(),
		Op:         string(ev.Op),
		Scope:      ev.Scope,
		Key:        ev.Key,
		Outcome:    ev.Outcome(),
		DurationMS: float64(ev.Duration.Microseconds()) / 1000,
	}
	if ev.Err != nil {
		r.Error = ev.Err.Error()
	}
	return r
}

// Query defines filters for retrieving records. Zero fields match everything.
type Query struct {
	Start   time.Time
	End     time.Time
	Scope   string
	Key     string
	Outcome string
}

// Match reports whether r passes every filter of q.
func (q Query) Match(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Scope != "" && r.Scope != q.Scope {
		return false
	}
	if q.Key != "" && r.Key != q.Key {
		return false
	}
	return q.Outcome == "" || r.Outcome == q.Outcome
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// NewStore opens the store for backend at path.
func NewStore(backend, path string) (Store, error) {
	switch backend {
	case BackendJSONL, "":
		return NewJSONLStore(path)
	case BackendRotating:
		return NewRotatingJSONLStore(path, 10, 3, 7)
	case BackendSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("audit: unknown backend %q", backend)
	}
}
