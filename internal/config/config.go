package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

var validEnvs = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

type Config struct {
	ServerPort     string
	AppEnv         string
	LogLevel       string
	AllowedOrigins []string
	Mongo          MongoConfig
}

type MongoConfig struct {
	URI      string
	Database string
}

func (c Config) ParseLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
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

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid PORT %q: %w", c.ServerPort, err)
	}
	if !validEnvs[c.AppEnv] {
		return fmt.Errorf("invalid APP_ENV %q: must be one of development, staging, production", c.AppEnv)
	}
	// Refuse to serve without a store: every piece of state lives there.
	if c.Mongo.URI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	return nil
}

func Load() Config {
	return Config{
		ServerPort:     envOrDefault("PORT", "5000"),
		AppEnv:         envOrDefault("APP_ENV", "development"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		AllowedOrigins: splitAndTrim(envOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		Mongo: MongoConfig{
			URI:      os.Getenv("MONGODB_URI"),
			Database: envOrDefault("MONGODB_DB", "crudtodo"),
		},
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
