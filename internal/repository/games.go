package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/search"
	"github.com/lk16/reversi/internal/session"
)

const createGamesTable = `
	CREATE TABLE IF NOT EXISTS games (
		id UUID PRIMARY KEY,
		mode TEXT NOT NULL,
		computer SMALLINT NOT NULL,
		difficulty INTEGER NOT NULL,
		board CHAR(32) NOT NULL,
		turn SMALLINT NOT NULL,
		outcome TEXT NOT NULL,
		created TIMESTAMPTZ NOT NULL,
		updated TIMESTAMPTZ NOT NULL
	)
`

// gameRow is a row of the games table.
type gameRow struct {
	ID         uuid.UUID `db:"id"`
	Mode       string    `db:"mode"`
	Computer   int       `db:"computer"`
	Difficulty int       `db:"difficulty"`
	Board      string    `db:"board"`
	Turn       int       `db:"turn"`
	Outcome    string    `db:"outcome"`
	Created    time.Time `db:"created"`
	Updated    time.Time `db:"updated"`
}

func newGameRow(rec session.Record) gameRow {
	return gameRow{
		ID:         rec.ID,
		Mode:       string(rec.Mode),
		Computer:   int(rec.Computer),
		Difficulty: int(rec.Difficulty),
		Board:      rec.Board.String(),
		Turn:       int(rec.Turn),
		Outcome:    rec.Outcome.String(),
		Created:    rec.Created,
		Updated:    rec.Updated,
	}
}

func (row gameRow) record() (session.Record, error) {
	mode, err := session.ParseMode(row.Mode)
	if err != nil {
		return session.Record{}, fmt.Errorf("error parsing mode of game %s: %w", row.ID, err)
	}

	board, err := othello.NewBoardFromString(row.Board)
	if err != nil {
		return session.Record{}, fmt.Errorf("error parsing board of game %s: %w", row.ID, err)
	}

	turn := othello.Player(row.Turn)
	if turn != othello.Black && turn != othello.White {
		return session.Record{}, fmt.Errorf("invalid turn %d of game %s", row.Turn, row.ID)
	}

	computer := othello.Player(row.Computer)
	if computer != othello.Black && computer != othello.White {
		return session.Record{}, fmt.Errorf("invalid computer player %d of game %s", row.Computer, row.ID)
	}

	outcome, err := othello.ParseOutcome(row.Outcome)
	if err != nil {
		return session.Record{}, fmt.Errorf("error parsing outcome of game %s: %w", row.ID, err)
	}

	return session.Record{
		ID:         row.ID,
		Mode:       mode,
		Computer:   computer,
		Difficulty: search.Difficulty(row.Difficulty),
		Board:      board,
		Turn:       turn,
		Outcome:    outcome,
		Created:    row.Created,
		Updated:    row.Updated,
	}, nil
}

// GameRepository stores the current position of game sessions in postgres.
type GameRepository struct {
	db *sqlx.DB
}

// NewGameRepository creates a GameRepository and makes sure the games table exists.
func NewGameRepository(ctx context.Context, db *sqlx.DB) (*GameRepository, error) {
	if _, err := db.ExecContext(ctx, createGamesTable); err != nil {
		return nil, fmt.Errorf("error creating games table: %w", err)
	}

	return &GameRepository{db: db}, nil
}

// Save inserts or updates a game.
func (repo *GameRepository) Save(ctx context.Context, rec session.Record) error {
	query := `
		INSERT INTO games (id, mode, computer, difficulty, board, turn, outcome, created, updated)
		VALUES (:id, :mode, :computer, :difficulty, :board, :turn, :outcome, :created, :updated)
		ON CONFLICT (id)
		DO UPDATE SET
			difficulty = EXCLUDED.difficulty,
			board = EXCLUDED.board,
			turn = EXCLUDED.turn,
			outcome = EXCLUDED.outcome,
			updated = EXCLUDED.updated
	`

	if _, err := repo.db.NamedExecContext(ctx, query, newGameRow(rec)); err != nil {
		return fmt.Errorf("error saving game: %w", err)
	}

	return nil
}

// Load loads a game, it returns session.ErrNotFound if there is none with the given id.
func (repo *GameRepository) Load(ctx context.Context, id uuid.UUID) (session.Record, error) {
	query := `
		SELECT id, mode, computer, difficulty, board, turn, outcome, created, updated
		FROM games
		WHERE id = $1
	`

	var row gameRow
	if err := repo.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Record{}, session.ErrNotFound
		}

		return session.Record{}, fmt.Errorf("error loading game: %w", err)
	}

	return row.record()
}

// Delete deletes a game. Deleting a missing game is not an error.
func (repo *GameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error deleting game: %w", err)
	}

	return nil
}
