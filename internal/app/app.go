package app

import (
	"context"
	"errors"
	"net/http"

	crerr "github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/dragon-lineup/internal/config"
	"github.com/riskibarqy/dragon-lineup/internal/infrastructure/account/jwtauth"
	"github.com/riskibarqy/dragon-lineup/internal/interfaces/httpapi"
	"github.com/riskibarqy/dragon-lineup/internal/observability"
	"github.com/riskibarqy/dragon-lineup/internal/platform/logging"
	"github.com/riskibarqy/dragon-lineup/internal/platform/metrics"
	"github.com/riskibarqy/dragon-lineup/internal/usecase"
	"github.com/sourcegraph/conc/pool"
)

// App owns the storage, the HTTP server and the optional pprof server.
type App struct {
	cfg     config.Config
	logger  *logging.Logger
	handler http.Handler
	server  *http.Server
	pprof   *http.Server
	storage storage
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	lineupSvc := usecase.NewLineupService(store.lineups, store.trainings, cfg.SeatEnrichWorkers, logger)
	seatSvc := usecase.NewSeatService(lineupSvc, store.seats, store.persons, cfg.SeatEnrichWorkers, logger)

	routerCfg := httpapi.RouterConfig{
		Logger:             logger,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := metrics.New(reg)
		lineupSvc.SetObserver(m)
		seatSvc.SetObserver(m)
		routerCfg.Metrics = m
		routerCfg.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	}

	if cfg.AuthEnabled {
		verifier, err := jwtauth.NewVerifier(cfg.AuthJWTSecret, cfg.AuthJWTIssuer)
		if err != nil {
			_ = store.close()
			return nil, crerr.Wrap(err, "build token verifier")
		}
		routerCfg.Verifier = verifier
	} else {
		logger.Warn("bearer token verification disabled", "env", cfg.AppEnv)
	}

	handler := httpapi.NewRouter(httpapi.NewHandler(lineupSvc, seatSvc, store.health, logger), routerCfg)

	return &App{
		cfg:     cfg,
		logger:  logger,
		handler: handler,
		server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		pprof:   observability.NewPprofServer(cfg),
		storage: store,
	}, nil
}

func (a *App) Handler() http.Handler {
	return a.handler
}

// Run serves until ctx is cancelled or a server fails, then shuts every
// server down within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		return a.serve(ctx, "http", a.server)
	})
	if a.pprof != nil {
		p.Go(func(ctx context.Context) error {
			return a.serve(ctx, "pprof", a.pprof)
		})
	}
	return p.Wait()
}

func (a *App) Close() error {
	if err := a.storage.close(); err != nil {
		return crerr.Wrap(err, "close storage")
	}
	return nil
}

func (a *App) serve(ctx context.Context, name string, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info(name+" server starting", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return crerr.Wrapf(err, "%s server", name)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return crerr.Wrapf(err, "shutdown %s server", name)
	}
	a.logger.Info(name + " server stopped")
	return nil
}
