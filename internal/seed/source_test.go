package seed

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ReviewAnalyzer/internal/domain"
)

type stubLoader struct {
	name string
	rows []domain.RawReview
	err  error
	got  Request
}

func (s *stubLoader) Name() string { return s.name }

func (s *stubLoader) Load(_ context.Context, req Request) ([]domain.RawReview, error) {
	s.got = req
	return s.rows, s.err
}

type upperCleaner struct{}

func (upperCleaner) Clean(text string) string { return strings.ToUpper(text) }

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(&stubLoader{name: "sqlite"}, &stubLoader{name: "csv"})

	l, err := reg.Resolve("csv")
	require.NoError(t, err)
	assert.Equal(t, "csv", l.Name())
	assert.Equal(t, []string{"csv", "sqlite"}, reg.Names())

	_, err = reg.Resolve("xml")
	var unknown *UnknownLoaderError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "xml", unknown.Name)
	assert.Equal(t, []string{"csv", "sqlite"}, unknown.Available)
	assert.EqualError(t, err, `seed loader "xml" is not registered; available: csv, sqlite`)

	var zero Registry
	_, err = zero.Resolve("late")
	assert.EqualError(t, err, `seed loader "late" is not registered; no loaders available`)
	zero.Register(&stubLoader{name: "late"})
	_, err = zero.Resolve("late")
	assert.NoError(t, err)
}

func TestRegistryReplacesByName(t *testing.T) {
	t.Parallel()

	first := &stubLoader{name: "csv"}
	second := &stubLoader{name: "csv"}
	reg := NewRegistry(first)
	reg.Register(second)

	l, err := reg.Resolve("csv")
	require.NoError(t, err)
	assert.Same(t, second, l)
	assert.Equal(t, []string{"csv"}, reg.Names())
}

func TestSourceLoadSeed(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, time.July, 1, 9, 0, 0, 123, time.UTC)
	loader := &stubLoader{name: "csv", rows: []domain.RawReview{
		{Location: "Paris", Body: "nice", HasBody: true},
		{Location: "Rome", Body: "bad", HasBody: true},
	}}
	reg := NewRegistry()
	reg.Register(loader)

	src := NewSource(reg, SourceConfig{Loader: "csv", Path: "data.csv", Table: "t"}, upperCleaner{}, clockwork.NewFakeClockAt(at), nil)
	rows, err := src.LoadSeed(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "NICE", rows[0].Body)
	assert.Equal(t, "BAD", rows[1].Body)
	assert.Equal(t, "data.csv", loader.got.Path)
	assert.Equal(t, "t", loader.got.Table)
	assert.Equal(t, time.UTC, loader.got.Location)
	assert.Equal(t, at.Truncate(time.Second), loader.got.LoadedAt)
}

func TestSourceLoadSeedErrors(t *testing.T) {
	t.Parallel()

	_, err := NewSource(nil, SourceConfig{}, nil, nil, nil).LoadSeed(context.Background())
	assert.Error(t, err)

	reg := NewRegistry()
	reg.Register(&stubLoader{name: "csv", err: errors.New("disk on fire")})
	_, err = NewSource(reg, SourceConfig{Loader: "csv"}, nil, nil, nil).LoadSeed(context.Background())
	assert.ErrorContains(t, err, "load seed with csv: disk on fire")
}
