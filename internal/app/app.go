package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"ReviewAnalyzer/internal/config"
	"ReviewAnalyzer/internal/infrastructure/csvsource"
	"ReviewAnalyzer/internal/infrastructure/httpapi"
	"ReviewAnalyzer/internal/infrastructure/storage"
	"ReviewAnalyzer/internal/infrastructure/textclean"
	"ReviewAnalyzer/internal/logging"
	"ReviewAnalyzer/internal/metrics"
	"ReviewAnalyzer/internal/ports"
	"ReviewAnalyzer/internal/seed"
	"ReviewAnalyzer/internal/sentiment"
	"ReviewAnalyzer/internal/store"
	"ReviewAnalyzer/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg     config.Config
	logger  *slog.Logger
	seed    ports.SeedSource
	store   *store.Store
	service *usecase.ReviewService
	server  *httpapi.Server
}

// Option customizes an Application, mostly for tests.
type Option func(*options)

type options struct {
	seed     ports.SeedSource
	clock    clockwork.Clock
	registry *prometheus.Registry
}

// WithSeedSource replaces the configured seed loader.
func WithSeedSource(src ports.SeedSource) Option {
	return func(o *options) { o.seed = src }
}

// WithClock sets the clock used for submission timestamps.
func WithClock(c clockwork.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithRegistry sets the metrics registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// New builds a runnable application instance. The store is empty until Load runs.
func New(cfg config.Config, baseLogger *slog.Logger, opts ...Option) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	o := options{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = metrics.NewRegistry()
	}

	cleaner := textclean.NewCleaner()
	if o.seed == nil {
		registry := seed.NewRegistry(csvsource.NewLoader(), storage.NewSQLiteLoader(nil))

		o.seed = seed.NewSource(registry, seed.SourceConfig{
			Loader:   cfg.Seed.Source,
			Path:     cfg.Seed.Path,
			Table:    cfg.Seed.Table,
			Location: cfg.Location(),
		}, cleaner, o.clock, baseLogger.With("component", "seed"))
	}

	analyzer := sentiment.NewAnalyzer()
	reviews := store.New(analyzer,
		store.WithObserver(metrics.NewStoreMetrics(o.registry)),
		store.WithLogger(baseLogger.With("component", "store")),
	)

	service := usecase.NewReviewService(usecase.ReviewServiceDeps{
		Store:    reviews,
		Scorer:   analyzer,
		Clock:    o.clock,
		Location: cfg.Location(),
		Logger:   baseLogger.With("component", "reviews"),
	})

	server := httpapi.NewServer(httpapi.Deps{
		Service:        service,
		Logger:         baseLogger.With("component", "http"),
		Metrics:        metrics.NewHTTPMetrics(o.registry),
		MetricsHandler: metrics.Handler(o.registry),
		Clock:          o.clock,
	})

	return &Application{
		cfg:     cfg,
		logger:  baseLogger,
		seed:    o.seed,
		store:   reviews,
		service: service,
		server:  server,
	}
}

// Load reads the seed dataset into the store. The store is not queryable before it succeeds.
func (a *Application) Load(ctx context.Context) error {
	rows, err := a.seed.LoadSeed(ctx)
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}
	if err := a.store.Initialize(rows); err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	a.logger.Info("reviews loaded", "count", a.store.Len(), "locations", len(a.store.KnownLocations()))
	return nil
}

// ImportSQLite copies the configured seed dataset into a SQLite database at path,
// so a later run can seed from it with the sqlite loader.
func (a *Application) ImportSQLite(ctx context.Context, path string) (int, error) {
	rows, err := a.seed.LoadSeed(ctx)
	if err != nil {
		return 0, fmt.Errorf("load seed: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	defer db.Close()

	if err := storage.NewSQLiteLoader(db).Import(ctx, a.cfg.Seed.Table, rows); err != nil {
		return 0, fmt.Errorf("import seed into %s: %w", path, err)
	}
	a.logger.Info("seed imported", "path", path, "table", a.cfg.Seed.Table, "count", len(rows))
	return len(rows), nil
}

// Service exposes the review service.
func (a *Application) Service() *usecase.ReviewService {
	return a.service
}

// Server exposes the HTTP server.
func (a *Application) Server() *httpapi.Server {
	return a.server
}

// Run loads the seed, then serves HTTP until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if err := a.Load(ctx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start(":" + a.cfg.Server.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return <-errCh
}
