package config

import (
	"log/slog"
	"os"

	"github.com/lk16/reversi/internal/search"
)

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost        string
	ServerPort        string
	RedisURL          string
	PostgresURL       string
	BasicAuthUsername string
	BasicAuthPassword string
	Token             string
	DefaultDifficulty search.Difficulty
}

// LoadServerConfig loads configuration from environment variables.
// Redis, Postgres and authentication are only used when configured.
func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerHost:        getEnvMust("REVERSI_SERVER_HOST"),
		ServerPort:        getEnvMust("REVERSI_SERVER_PORT"),
		RedisURL:          os.Getenv("REVERSI_REDIS_URL"),
		PostgresURL:       os.Getenv("REVERSI_POSTGRES_URL"),
		BasicAuthUsername: os.Getenv("REVERSI_BASIC_AUTH_USER"),
		BasicAuthPassword: os.Getenv("REVERSI_BASIC_AUTH_PASS"),
		Token:             os.Getenv("REVERSI_TOKEN"),
		DefaultDifficulty: getEnvDifficulty("REVERSI_DEFAULT_DIFFICULTY", search.Medium),
	}
}

// AuthEnabled returns whether the API requires a token or basic auth credentials.
func (cfg *ServerConfig) AuthEnabled() bool {
	return cfg.Token != "" || cfg.BasicAuthUsername != ""
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvDifficulty(key string, fallback search.Difficulty) search.Difficulty {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	difficulty, err := search.ParseDifficulty(value)
	if err != nil {
		slog.Error("Cannot load environment variable", "key", key, "value", value, "error", err)
		os.Exit(1)
	}

	return difficulty
}
