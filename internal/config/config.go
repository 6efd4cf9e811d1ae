package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend selectors.
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config carries the server's runtime settings, sourced from a .env file
// when present and the process environment otherwise.
type Config struct {
	// Addr is the listen address for the websocket server.
	Addr string
	// StorageType selects the storage backend, memory or redis.
	StorageType string
	// RedisURL is the redis connection string, used when StorageType is redis.
	RedisURL string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LivenessInterval is the period of the connection probe loop.
	LivenessInterval time.Duration
}

// Load reads configuration. A missing .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:             getEnv("ADDR", ":3000"),
		StorageType:      getEnv("STORAGE_TYPE", StorageMemory),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LivenessInterval: 3 * time.Second,
	}

	if raw := os.Getenv("LIVENESS_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LIVENESS_INTERVAL: %w", err)
		}
		cfg.LivenessInterval = d
	}

	if cfg.StorageType != StorageMemory && cfg.StorageType != StorageRedis {
		return Config{}, fmt.Errorf("unknown STORAGE_TYPE %q", cfg.StorageType)
	}

	return cfg, nil
}

// SlogLevel maps the configured level name to a slog level. Unknown names
// fall back to info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
