package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) TestDefaults() {
	cfg, err := Load()
	s.Require().NoError(err)

	s.Equal(":3000", cfg.Addr)
	s.Equal(StorageMemory, cfg.StorageType)
	s.Equal("info", cfg.LogLevel)
	s.Equal(3*time.Second, cfg.LivenessInterval)
}

func (s *ConfigSuite) TestEnvOverrides() {
	s.T().Setenv("ADDR", ":8081")
	s.T().Setenv("STORAGE_TYPE", StorageRedis)
	s.T().Setenv("REDIS_URL", "redis://example:6380")
	s.T().Setenv("LIVENESS_INTERVAL", "500ms")

	cfg, err := Load()
	s.Require().NoError(err)

	s.Equal(":8081", cfg.Addr)
	s.Equal(StorageRedis, cfg.StorageType)
	s.Equal("redis://example:6380", cfg.RedisURL)
	s.Equal(500*time.Millisecond, cfg.LivenessInterval)
}

func (s *ConfigSuite) TestRejectsUnknownStorageType() {
	s.T().Setenv("STORAGE_TYPE", "postgres")

	_, err := Load()
	s.Error(err)
}

func (s *ConfigSuite) TestRejectsBadLivenessInterval() {
	s.T().Setenv("LIVENESS_INTERVAL", "soon")

	_, err := Load()
	s.Error(err)
}

func (s *ConfigSuite) TestSlogLevel() {
	s.Equal(slog.LevelDebug, Config{LogLevel: "debug"}.SlogLevel())
	s.Equal(slog.LevelWarn, Config{LogLevel: "warn"}.SlogLevel())
	s.Equal(slog.LevelError, Config{LogLevel: "error"}.SlogLevel())
	s.Equal(slog.LevelInfo, Config{LogLevel: "chatty"}.SlogLevel())
}
