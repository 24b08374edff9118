package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/search"
	"github.com/redis/go-redis/v9"
)

const (
	moveCachePrefix = "best_move"
	moveCacheTTL    = 24 * time.Hour
)

// MoveCache caches the best move of searched positions in redis.
type MoveCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewMoveCache creates a new MoveCache.
func NewMoveCache(client *redis.Client) *MoveCache {
	return &MoveCache{redis: client, ttl: moveCacheTTL}
}

// moveCacheKey returns the redis key of a position, for example
// "best_move:00000008100000000000001008000000:black:4".
func moveCacheKey(board othello.Board, player othello.Player, difficulty search.Difficulty) string {
	return fmt.Sprintf("%s:%s:%s:%d", moveCachePrefix, board, player, difficulty.Depth())
}

// Get returns the cached move. The bool is false if nothing was cached.
func (cache *MoveCache) Get(
	ctx context.Context,
	board othello.Board,
	player othello.Player,
	difficulty search.Difficulty,
) (othello.Position, bool, error) {
	value, err := cache.redis.Get(ctx, moveCacheKey(board, player, difficulty)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return othello.Position{}, false, nil
		}

		return othello.Position{}, false, fmt.Errorf("error getting cached move: %w", err)
	}

	move, err := othello.ParseField(value)
	if err != nil {
		return othello.Position{}, false, fmt.Errorf("error parsing cached move: %w", err)
	}

	return move, true, nil
}

// Set caches a move in field notation.
func (cache *MoveCache) Set(
	ctx context.Context,
	board othello.Board,
	player othello.Player,
	difficulty search.Difficulty,
	move othello.Position,
) error {
	if !othello.InBounds(move.Row, move.Col) {
		return fmt.Errorf("cannot cache move %s", move)
	}

	err := cache.redis.Set(ctx, moveCacheKey(board, player, difficulty), move.String(), cache.ttl).Err()
	if err != nil {
		return fmt.Errorf("error caching move: %w", err)
	}

	return nil
}
