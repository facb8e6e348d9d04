package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	auditapi "github.com/kilianp07/foundry/api/audit"
	playapi "github.com/kilianp07/foundry/api/play"
	"github.com/kilianp07/foundry/app/plugins"
	"github.com/kilianp07/foundry/config"
	"github.com/kilianp07/foundry/connectors"
	connfactory "github.com/kilianp07/foundry/connectors/factory"
	"github.com/kilianp07/foundry/core/audit"
	"github.com/kilianp07/foundry/core/compose"
	"github.com/kilianp07/foundry/core/factory"
	"github.com/kilianp07/foundry/core/family"
	"github.com/kilianp07/foundry/infra/logger"
	"github.com/kilianp07/foundry/infra/metrics"
	"github.com/kilianp07/foundry/internal/eventbus"
	"github.com/kilianp07/foundry/world"
)

// Service wires the connector registry and world catalog to the configured
// observers and audit store.
type Service struct {
	Connectors *connfactory.Registry
	Catalog    *family.Catalog
	Store      audit.Store

	cfg      *config.Config
	sinks    factory.Observer
	async    *eventbus.AsyncObserver
	observer factory.Observer
	log      logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	logg := logger.New("service")
	sinks, err := plugins.NewObserver(plugins.Observers(logger.New("creation")), cfg.Observers)
	if err != nil {
		return nil, fmt.Errorf("observers: %w", err)
	}
	svc := &Service{cfg: cfg, sinks: sinks, observer: sinks, log: logg}
	if cfg.ObserverBuffer > 0 {
		svc.async = eventbus.NewAsyncObserver(sinks, cfg.ObserverBuffer)
		svc.observer = svc.async
	}
	if cfg.Audit.Enabled {
		store, err := audit.NewStore(cfg.Audit.Backend, cfg.Audit.Path)
		if err != nil {
			_ = svc.Close()
			return nil, fmt.Errorf("audit store: %w", err)
		}
		svc.Store = store
		svc.observer = factory.NewMultiObserver(svc.observer, audit.NewObserver(store, logg))
	}

	opts := append(cfg.Registry.Apply(), factory.WithObserver(svc.observer))
	if svc.Connectors, err = connfactory.NewRegistry(opts...); err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("connector registry: %w", err)
	}
	worlds, err := world.NewCatalog(opts...)
	if err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("world catalog: %w", err)
	}
	svc.Catalog = worlds
	return svc, nil
}

// Connect opens the payload at path with the connector matching its suffix.
func (s *Service) Connect(path string) (connectors.Connector, error) {
	return connfactory.Connect(s.Connectors, path)
}

// Play composes and plays one round of the named world. Empty arguments
// fall back to the configured game.
func (s *Service) Play(name, player string) (world.Round, error) {
	if name == "" {
		name = s.cfg.Game.World
	}
	if player == "" {
		player = s.cfg.Game.Player
	}
	return world.Play(s.Catalog, name, player, compose.WithObserver(s.observer))
}

// Worlds lists the registered worlds in registration order.
func (s *Service) Worlds() []string { return s.Catalog.Names() }

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/play", playapi.NewPlayHandler(s))
	if s.Store != nil {
		mux.Handle("/api/audit", auditapi.NewAuditHandler(s.Store, s.cfg.Server.Token))
	}
	return mux
}

// Run serves the HTTP API, and the metrics endpoint when enabled, until ctx
// is cancelled.
func (s *Service) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	srv := &http.Server{Addr: s.cfg.Server.Address, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	g.Go(func() error {
		s.log.Infof("api listening on %s", s.cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if s.cfg.Server.MetricsEnabled {
		g.Go(func() error {
			s.log.Infof("metrics listening on %s", s.cfg.Server.MetricsAddress)
			return metrics.StartPromServer(ctx, s.cfg.Server.MetricsAddress, nil)
		})
	}
	return g.Wait()
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	var errs []error
	if s.async != nil {
		errs = append(errs, s.async.Close())
	}
	errs = append(errs, plugins.Close(s.sinks))
	if s.Store != nil {
		errs = append(errs, s.Store.Close())
	}
	return errors.Join(errs...)
}
