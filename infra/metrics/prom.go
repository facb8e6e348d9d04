package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/foundry/core/factory"
)

// PromObserver records creation events in Prometheus metrics.
type PromObserver struct {
	creations *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewPromObserver registers creation metrics on reg. A nil registerer
// defaults to the global Prometheus registerer. If the collectors are already
// registered, the existing ones are reused.
func NewPromObserver(reg prometheus.Registerer) (*PromObserver, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	creations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "foundry_creations_total",
		Help: "Total number of creation steps by outcome",
	}, []string{"op", "scope", "key", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "foundry_creation_duration_seconds",
		Help:    "Time spent in producers and compositions",
		Buckets: prometheus.DefBuckets,
	}, []string{"op", "scope"})

	if err := reg.Register(creations); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		creations = are.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := reg.Register(duration); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		duration = are.ExistingCollector.(*prometheus.HistogramVec)
	}
	return &PromObserver{creations: creations, duration: duration}, nil
}

// Observe counts the event and records its duration. Only make events carry
// a key label: roles are bounded by their schema, while create keys are raw
// discriminators (file paths) and compose keys are per-instance ids.
func (p *PromObserver) Observe(ev factory.Event) {
	var key string
	if ev.Op == factory.OpMake {
		key = ev.Key
	}
	p.creations.WithLabelValues(string(ev.Op), ev.Scope, key, ev.Outcome()).Inc()
	p.duration.WithLabelValues(string(ev.Op), ev.Scope).Observe(ev.Duration.Seconds())
}
