// Package plugins builds observers from configuration.
package plugins

import (
	"errors"
	"io"

	"github.com/kilianp07/foundry/core/factory"
	"github.com/kilianp07/foundry/infra/logger"
	inframetrics "github.com/kilianp07/foundry/infra/metrics"
	"github.com/kilianp07/foundry/infra/mqtt"
)

// ObserverRegistry maps an observer type to its constructor.
type ObserverRegistry = factory.Registry[string, map[string]any, factory.Observer]

// Built-in observer types.
const (
	ObserverNop        = "nop"
	ObserverLog        = "log"
	ObserverPrometheus = "prometheus"
	ObserverInflux     = "influx"
	ObserverMQTT       = "mqtt"
)

// Observers returns a registry holding the built-in observer types. Every
// call returns a fresh registry, so callers may add their own types without
// affecting others.
func Observers(log logger.Logger) *ObserverRegistry {
	if log == nil {
		log = logger.NopLogger{}
	}
	reg := factory.NewRegistry[string, map[string]any, factory.Observer](factory.WithName("observers"))
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(reg.Register(ObserverNop, func(map[string]any) (factory.Observer, error) {
		return factory.NopObserver{}, nil
	}))
	must(reg.Register(ObserverLog, func(map[string]any) (factory.Observer, error) {
		return logger.NewObserver(log), nil
	}))
	must(reg.Register(ObserverPrometheus, func(map[string]any) (factory.Observer, error) {
		return inframetrics.NewPromObserver(nil)
	}))
	must(reg.Register(ObserverInflux, func(conf map[string]any) (factory.Observer, error) {
		var ic inframetrics.InfluxConfig
		if err := factory.Decode(conf, &ic); err != nil {
			return nil, err
		}
		if ic.URL == "" {
			return nil, errors.New("influx: url is required")
		}
		return inframetrics.NewInfluxObserverWithFallback(ic), nil
	}))
	must(reg.Register(ObserverMQTT, func(conf map[string]any) (factory.Observer, error) {
		var mc mqtt.Config
		if err := factory.Decode(conf, &mc); err != nil {
			return nil, err
		}
		return mqtt.NewPublisher(mc)
	}))
	return reg
}

// NewObserver builds one observer per config. No configs yields a
// NopObserver, a single config its observer, several a MultiObserver in
// configuration order. Observers built before a failure are closed.
func NewObserver(reg *ObserverRegistry, cfgs []factory.ModuleConfig) (factory.Observer, error) {
	if len(cfgs) == 0 {
		return factory.NopObserver{}, nil
	}
	obs := make([]factory.Observer, 0, len(cfgs))
	for _, c := range cfgs {
		o, err := factory.CreateModule(reg, c)
		if err != nil {
			_ = Close(factory.NewMultiObserver(obs...))
			return nil, err
		}
		obs = append(obs, o)
	}
	if len(obs) == 1 {
		return obs[0], nil
	}
	return factory.NewMultiObserver(obs...), nil
}

// Close releases obs and, for a MultiObserver, each of its members that
// holds resources.
func Close(obs factory.Observer) error {
	switch o := obs.(type) {
	case *factory.MultiObserver:
		var errs []error
		for _, m := range o.Observers {
			errs = append(errs, Close(m))
		}
		return errors.Join(errs...)
	case io.Closer:
		return o.Close()
	default:
		return nil
	}
}
