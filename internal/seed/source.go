package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"ReviewAnalyzer/internal/domain"
	"ReviewAnalyzer/internal/ports"
)

// SourceConfig selects the loader and its arguments.
type SourceConfig struct {
	Loader   string
	Path     string
	Table    string
	Location *time.Location
}

// Source implements ports.SeedSource via registered loaders.
type Source struct {
	registry *Registry
	cfg      SourceConfig
	cleaner  ports.TextCleaner
	clock    clockwork.Clock
	logger   *slog.Logger
}

var _ ports.SeedSource = (*Source)(nil)

// NewSource wires a loader registry with the configured seed source.
// cleaner and clock may be nil.
func NewSource(reg *Registry, cfg SourceConfig, cleaner ports.TextCleaner, clock clockwork.Clock, log *slog.Logger) *Source {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Source{
		registry: reg,
		cfg:      cfg,
		cleaner:  cleaner,
		clock:    clock,
		logger:   log,
	}
}

// LoadSeed runs the configured loader and cleans every review body.
func (s *Source) LoadSeed(ctx context.Context) ([]domain.RawReview, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("seed registry is not configured")
	}

	loader, err := s.registry.Resolve(s.cfg.Loader)
	if err != nil {
		return nil, err
	}

	loc := s.cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	s.debug("load seed", "loader", loader.Name(), "path", s.cfg.Path)
	rows, err := loader.Load(ctx, Request{
		Path:     s.cfg.Path,
		Table:    s.cfg.Table,
		Location: loc,
		LoadedAt: s.clock.Now().In(loc).Truncate(time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("load seed with %s: %w", loader.Name(), err)
	}

	if s.cleaner != nil {
		for i := range rows {
			rows[i].Body = s.cleaner.Clean(rows[i].Body)
		}
	}

	s.debug("seed rows loaded", "loader", loader.Name(), "count", len(rows))
	return rows, nil
}

func (s *Source) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
