package app

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ReviewAnalyzer/internal/config"
	"ReviewAnalyzer/internal/domain"
	"ReviewAnalyzer/internal/seed"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T, source, path string) config.Config {
	t.Helper()
	t.Setenv("REVIEW_ANALYZER_CONFIG", "")
	t.Setenv("SEED_SOURCE", source)
	t.Setenv("SEED_PATH", path)
	t.Setenv("PORT", "0")
	return config.Load()
}

func TestLoadFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	csv := "ReviewId,Location,Timestamp,ReviewBody\n" +
		"1,Paris,2024-01-01 10:00:00,<p>Great <b>stay</b></p>\n" +
		"2,Berlin,2024-01-02 10:00:00,Awful noise\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	application := New(testConfig(t, "csv", path), quietLogger())
	require.NoError(t, application.Load(context.Background()))

	reviews, err := application.Service().Query(context.Background(), url.Values{})
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "1", reviews[0].ID)
	assert.Equal(t, "Great stay", reviews[0].Body)
	assert.Equal(t, []string{"Berlin", "Paris"}, application.Service().Locations())
}

func TestImportSQLiteThenSeedFromIt(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "reviews.csv")
	csv := "ReviewId,Location,Timestamp,ReviewBody\n" +
		"1,Paris,2024-01-01 10:00:00,Lovely garden\n" +
		"2,Rome,2024-01-02 11:30:00,Noisy street\n" +
		"3,Paris,2024-01-03 12:00:00,\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(csv), 0o600))
	dbPath := filepath.Join(dir, "reviews.db")

	n, err := New(testConfig(t, "csv", csvPath), quietLogger()).ImportSQLite(context.Background(), dbPath)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	fromCSV := New(testConfig(t, "csv", csvPath), quietLogger())
	require.NoError(t, fromCSV.Load(context.Background()))
	fromDB := New(testConfig(t, "sqlite", dbPath), quietLogger())
	require.NoError(t, fromDB.Load(context.Background()))

	want, err := fromCSV.Service().Query(context.Background(), url.Values{})
	require.NoError(t, err)
	got, err := fromDB.Service().Query(context.Background(), url.Values{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestImportSQLiteFailsOnSeedError(t *testing.T) {
	application := New(testConfig(t, "parquet", "x"), quietLogger())
	_, err := application.ImportSQLite(context.Background(), filepath.Join(t.TempDir(), "out.db"))
	assert.ErrorContains(t, err, "load seed")
}

func TestLoadFailsOnMalformedSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	require.NoError(t, os.WriteFile(path, []byte("Location,ReviewBody\n,orphan\n"), 0o600))

	application := New(testConfig(t, "csv", path), quietLogger())
	err := application.Load(context.Background())

	var loadErr *domain.DataLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "Location", loadErr.Field)
}

func TestLoadUnknownSource(t *testing.T) {
	application := New(testConfig(t, "parquet", "x"), quietLogger())
	err := application.Load(context.Background())

	var unknown *seed.UnknownLoaderError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []string{"csv", "sqlite"}, unknown.Available)
}

type staticSeed []domain.RawReview

func (s staticSeed) LoadSeed(context.Context) ([]domain.RawReview, error) {
	return s, nil
}

func TestRunServesUntilCancelled(t *testing.T) {
	cfg := testConfig(t, "csv", "")
	application := New(cfg, quietLogger(), WithSeedSource(staticSeed{
		{ID: "1", Location: "Paris", Body: "fine", HasBody: true, Timestamp: time.Now()},
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Run(ctx) }()

	require.Eventually(t, func() bool {
		return application.Service().Count() == 1
	}, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
