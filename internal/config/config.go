// Package config loads process settings for the tracker binary from the environment
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
)

// StoreKind selects the snapshot backend
type StoreKind string

// Snapshot backends
const (
	StoreMemory StoreKind = "memory"
	StoreRedis  StoreKind = "redis"
	StoreSQLite StoreKind = "sqlite"
)

// Config holds the tracker's process settings
type Config struct {
	Store     StoreKind `env:"TRACKER_STORE"   envDefault:"sqlite"`
	SessionID string    `env:"TRACKER_SESSION" envDefault:"default"`

	RedisAddr     string `env:"TRACKER_REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string `env:"TRACKER_REDIS_PASSWORD"`
	RedisDB       int    `env:"TRACKER_REDIS_DB"       envDefault:"0"`

	SQLitePath string `env:"TRACKER_SQLITE_PATH" envDefault:"tracker.db"`

	// Redis only; zero keeps snapshots until the combat ends
	SnapshotTTL time.Duration `env:"TRACKER_SNAPSHOT_TTL" envDefault:"0s"`

	// Zero rolls with the toolkit's default roller
	Seed int64 `env:"TRACKER_SEED"`

	LogLevel string `env:"TRACKER_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config and validates it
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse env")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings are usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("SessionID", c.SessionID, vb)
	errors.ValidateEnum("Store", string(c.Store),
		[]string{string(StoreMemory), string(StoreRedis), string(StoreSQLite)}, vb)

	switch c.Store {
	case StoreRedis:
		errors.ValidateRequired("RedisAddr", c.RedisAddr, vb)
	case StoreSQLite:
		errors.ValidateRequired("SQLitePath", c.SQLitePath, vb)
	}

	if c.SnapshotTTL < 0 {
		vb.InvalidField("SnapshotTTL", "must not be negative")
	}
	errors.ValidateRange("RedisDB", c.RedisDB, 0, 15, vb)

	return vb.Build()
}

// SlogLevel maps LogLevel onto slog; unknown values fall back to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
