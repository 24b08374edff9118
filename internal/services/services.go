package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/repository"
	"github.com/lk16/reversi/internal/session"
	"github.com/redis/go-redis/v9"
)

// Services contains the connections to the external services and the game sessions.
// Postgres and Redis are nil when they are not configured.
type Services struct {
	Postgres *sqlx.DB
	Redis    *redis.Client
	Games    *session.Manager
}

func InitServices(ctx context.Context, cfg *config.ServerConfig) (*Services, error) {
	services := &Services{}
	opts := make([]session.Option, 0)

	if cfg.PostgresURL != "" {
		postgres, err := InitPostgres(cfg.PostgresURL)
		if err != nil {
			return nil, err
		}

		games, err := repository.NewGameRepository(ctx, postgres)
		if err != nil {
			return nil, fmt.Errorf("error initializing game repository: %w", err)
		}

		services.Postgres = postgres
		opts = append(opts, session.WithStore(games))
	} else {
		slog.Info("Postgres is not configured, games are kept in memory only")
	}

	if cfg.RedisURL != "" {
		redis, err := InitRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}

		services.Redis = redis
		opts = append(opts, session.WithMoveCache(repository.NewMoveCache(redis)))
	} else {
		slog.Info("Redis is not configured, computer moves are not cached")
	}

	services.Games = session.NewManager(opts...)
	return services, nil
}

// Close closes the connections to the external services.
func (s *Services) Close() {
	if s.Postgres != nil {
		if err := s.Postgres.Close(); err != nil {
			slog.Error("Failed to close postgres connection", "error", err)
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			slog.Error("Failed to close redis connection", "error", err)
		}
	}
}
