package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{configPathEnv, portEnv, seedSourceEnv, seedPathEnv, seedTableEnv, logLevelEnv, logFormatEnv, timezoneEnv} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "csv", cfg.Seed.Source)
	assert.Equal(t, "data/reviews.csv", cfg.Seed.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, time.UTC.String(), cfg.Location().String())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
server:
  port: "9000"
  shutdownTimeout: 3s
seed:
  source: sqlite
  path: seed.db
logging:
  level: debug
  format: json
timezone: Europe/Paris
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	clearEnv(t)
	t.Setenv(configPathEnv, path)
	t.Setenv(portEnv, "7000")
	t.Setenv(seedTableEnv, "hotel_reviews")

	cfg := Load()
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, SeedConfig{Source: "sqlite", Path: "seed.db", Table: "hotel_reviews"}, cfg.Seed)
	assert.Equal(t, LoggingConfig{Level: "debug", Format: "json"}, cfg.Logging)
	assert.Equal(t, "Europe/Paris", cfg.Location().String())
}

func TestLoadFallsBackOnBadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))

	clearEnv(t)
	t.Setenv(configPathEnv, path)
	t.Setenv(portEnv, "")
	t.Setenv(timezoneEnv, "Mars/Olympus")

	cfg := Load()
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "UTC", cfg.Location().String())
}
