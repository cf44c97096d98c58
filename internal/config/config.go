package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "UTC"
	configPathEnv   = "REVIEW_ANALYZER_CONFIG"
	portEnv         = "PORT"
	seedSourceEnv   = "SEED_SOURCE"
	seedPathEnv     = "SEED_PATH"
	seedTableEnv    = "SEED_TABLE"
	logLevelEnv     = "LOG_LEVEL"
	logFormatEnv    = "LOG_FORMAT"
	timezoneEnv     = "TIMEZONE"
)

// Config holds high-level settings required across the application.
type Config struct {
	Server   ServerConfig  `yaml:"server"`
	Seed     SeedConfig    `yaml:"seed"`
	Logging  LoggingConfig `yaml:"logging"`
	Timezone string        `yaml:"timezone"`

	location *time.Location `yaml:"-"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Port            string        `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// SeedConfig selects where the initial reviews come from.
type SeedConfig struct {
	// Source is the registered loader name: "csv" or "sqlite".
	Source string `yaml:"source"`
	Path   string `yaml:"path"`
	Table  string `yaml:"table"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Location resolves the timezone used for review timestamps and query dates.
func (c Config) Location() *time.Location {
	if c.location != nil {
		return c.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(portEnv); v != "" {
		c.Server.Port = v
	}

	if v := os.Getenv(seedSourceEnv); v != "" {
		c.Seed.Source = v
	}
	if v := os.Getenv(seedPathEnv); v != "" {
		c.Seed.Path = v
	}
	if v := os.Getenv(seedTableEnv); v != "" {
		c.Seed.Table = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(logFormatEnv); v != "" {
		c.Logging.Format = v
	}

	if v := os.Getenv(timezoneEnv); v != "" {
		c.Timezone = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		tz = defaultTimezone
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Timezone = tz
	c.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Server.Port != "" {
		base.Server.Port = override.Server.Port
	}
	if override.Server.ShutdownTimeout > 0 {
		base.Server.ShutdownTimeout = override.Server.ShutdownTimeout
	}

	if override.Seed.Source != "" {
		base.Seed.Source = override.Seed.Source
	}
	if override.Seed.Path != "" {
		base.Seed.Path = override.Seed.Path
	}
	if override.Seed.Table != "" {
		base.Seed.Table = override.Seed.Table
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Timezone != "" {
		base.Timezone = override.Timezone
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Server:   ServerConfig{Port: "8000", ShutdownTimeout: 10 * time.Second},
		Seed:     SeedConfig{Source: "csv", Path: "data/reviews.csv", Table: "reviews"},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
		Timezone: defaultTimezone,
		location: tz,
	}
}
