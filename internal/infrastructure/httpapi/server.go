package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"

	"ReviewAnalyzer/internal/domain"
	"ReviewAnalyzer/internal/metrics"
)

type reviewService interface {
	Submit(ctx context.Context, fields map[string][]string) (domain.Review, error)
	Query(ctx context.Context, values url.Values) ([]domain.Review, error)
	Locations() []string
	Count() int
}

// Deps wires the server collaborators. Metrics, MetricsHandler and Clock may be nil.
type Deps struct {
	Service        reviewService
	Logger         *slog.Logger
	Metrics        *metrics.HTTPMetrics
	MetricsHandler http.Handler
	Clock          clockwork.Clock
}

// Server exposes the review service over HTTP.
type Server struct {
	echo      *echo.Echo
	service   reviewService
	logger    *slog.Logger
	metrics   *metrics.HTTPMetrics
	promHTTP  http.Handler
	clock     clockwork.Clock
	startTime time.Time
}

// NewServer builds the echo instance and registers routes.
func NewServer(deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	srv := &Server{
		echo:      e,
		service:   deps.Service,
		logger:    logger,
		metrics:   deps.Metrics,
		promHTTP:  deps.MetricsHandler,
		clock:     clock,
		startTime: clock.Now(),
	}
	srv.registerRoutes()
	return srv
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}

// Shutdown stops the listener and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
