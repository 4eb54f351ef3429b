package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/config"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestLoadDefaults() {
	cfg, err := config.Load()
	s.Require().NoError(err)

	s.Equal(config.StoreSQLite, cfg.Store)
	s.Equal("default", cfg.SessionID)
	s.Equal("tracker.db", cfg.SQLitePath)
	s.Equal(time.Duration(0), cfg.SnapshotTTL)
	s.Zero(cfg.Seed)
}

func (s *ConfigTestSuite) TestLoadFromEnv() {
	s.T().Setenv("TRACKER_STORE", "redis")
	s.T().Setenv("TRACKER_SESSION", "table-7")
	s.T().Setenv("TRACKER_REDIS_ADDR", "cache:6380")
	s.T().Setenv("TRACKER_SNAPSHOT_TTL", "12h")
	s.T().Setenv("TRACKER_SEED", "42")

	cfg, err := config.Load()
	s.Require().NoError(err)

	s.Equal(config.StoreRedis, cfg.Store)
	s.Equal("table-7", cfg.SessionID)
	s.Equal("cache:6380", cfg.RedisAddr)
	s.Equal(12*time.Hour, cfg.SnapshotTTL)
	s.Equal(int64(42), cfg.Seed)
}

func (s *ConfigTestSuite) TestLoadBadValue() {
	s.T().Setenv("TRACKER_SNAPSHOT_TTL", "forever")

	_, err := config.Load()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "parse env")
}

func (s *ConfigTestSuite) TestValidate() {
	valid := func() *config.Config {
		return &config.Config{
			Store:      config.StoreSQLite,
			SessionID:  "s",
			SQLitePath: "x.db",
		}
	}

	testCases := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{name: "unknown store", mutate: func(c *config.Config) { c.Store = "postgres" }, wantErr: "Store"},
		{name: "blank session", mutate: func(c *config.Config) { c.SessionID = " " }, wantErr: "SessionID"},
		{name: "sqlite without path", mutate: func(c *config.Config) { c.SQLitePath = "" }, wantErr: "SQLitePath"},
		{
			name: "redis without address",
			mutate: func(c *config.Config) {
				c.Store = config.StoreRedis
				c.RedisAddr = ""
			},
			wantErr: "RedisAddr",
		},
		{name: "negative ttl", mutate: func(c *config.Config) { c.SnapshotTTL = -time.Second }, wantErr: "SnapshotTTL"},
		{name: "redis db out of range", mutate: func(c *config.Config) { c.RedisDB = 99 }, wantErr: "RedisDB"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg := valid()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				s.NoError(err)
				return
			}
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.wantErr)
		})
	}
}

func (s *ConfigTestSuite) TestSlogLevel() {
	s.Equal(slog.LevelDebug, (&config.Config{LogLevel: "DEBUG"}).SlogLevel())
	s.Equal(slog.LevelWarn, (&config.Config{LogLevel: "warn"}).SlogLevel())
	s.Equal(slog.LevelInfo, (&config.Config{LogLevel: "loud"}).SlogLevel())
}
