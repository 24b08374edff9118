package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/search"
	"github.com/lk16/reversi/internal/session"
)

// Difficulty is a difficulty in a request. It accepts a name ("easy",
// "medium", "hard") or a search depth, as a JSON string or number.
type Difficulty search.Difficulty

// UnmarshalJSON implements json.Unmarshaler.
func (d *Difficulty) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var value string

	if err := json.Unmarshal(data, &value); err != nil {
		var depth int
		if err = json.Unmarshal(data, &depth); err != nil {
			return fmt.Errorf("difficulty must be a string or a number: %w", err)
		}
		value = strconv.Itoa(depth)
	}

	difficulty, err := search.ParseDifficulty(value)
	if err != nil {
		return err
	}

	*d = Difficulty(difficulty)
	return nil
}

// CreateGameRequest is the payload to start a game. All fields are optional.
type CreateGameRequest struct {
	Mode       string     `json:"mode"`
	Difficulty Difficulty `json:"difficulty"`
	Computer   string     `json:"computer"`
}

// Options converts the request into session options. Difficulty falls back to the given default.
func (req CreateGameRequest) Options(defaultDifficulty search.Difficulty) (session.Options, error) {
	mode, err := session.ParseMode(req.Mode)
	if err != nil {
		return session.Options{}, err
	}

	opts := session.Options{
		Mode:       mode,
		Difficulty: search.Difficulty(req.Difficulty),
	}

	if opts.Difficulty == 0 {
		opts.Difficulty = defaultDifficulty
	}

	if req.Computer != "" {
		opts.Computer, err = othello.ParsePlayer(req.Computer)
		if err != nil {
			return session.Options{}, fmt.Errorf("%w: %w", session.ErrInvalidInput, err)
		}
	}

	return opts, nil
}

// MoveRequest is a move, either in field notation or as coordinates.
type MoveRequest struct {
	Field string `json:"field,omitempty"`
	Row   *int   `json:"row,omitempty"`
	Col   *int   `json:"col,omitempty"`
}

// Position returns the requested square. It does not check whether it is on the board.
func (req MoveRequest) Position() (othello.Position, error) {
	if req.Field != "" {
		return othello.ParseField(req.Field)
	}

	if req.Row == nil || req.Col == nil {
		return othello.Position{}, errors.New("either field or both row and col are required")
	}

	return othello.Position{Row: *req.Row, Col: *req.Col}, nil
}

// DifficultyRequest is the payload to change the difficulty of a game.
type DifficultyRequest struct {
	Difficulty Difficulty `json:"difficulty"`
}

// MoveResponse is a move played in a game.
type MoveResponse struct {
	Player   string `json:"player"`
	Field    string `json:"field"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Computer bool   `json:"computer"`
}

// GameResponse is the state of a game as returned by the API.
type GameResponse struct {
	ID            string         `json:"id"`
	Mode          string         `json:"mode"`
	Computer      string         `json:"computer,omitempty"`
	Difficulty    int            `json:"difficulty"`
	Board         string         `json:"board"`
	Rows          []string       `json:"rows"`
	CurrentPlayer string         `json:"current_player"`
	BlackCount    int            `json:"black_count"`
	WhiteCount    int            `json:"white_count"`
	GameOver      bool           `json:"game_over"`
	Outcome       string         `json:"outcome"`
	Winner        string         `json:"winner,omitempty"`
	ValidMoves    []string       `json:"valid_moves"`
	Moves         []MoveResponse `json:"moves"`
	Created       time.Time      `json:"created"`
	Updated       time.Time      `json:"updated"`
}

// boardRows returns one string per row, with 'B' for black, 'W' for white and '.' for empty squares.
func boardRows(board othello.Board) []string {
	rows := make([]string, othello.MaxY)

	for row := range othello.MaxY {
		line := make([]byte, othello.MaxX)
		for col := range othello.MaxX {
			switch board[row][col] {
			case othello.BlackDisc:
				line[col] = 'B'
			case othello.WhiteDisc:
				line[col] = 'W'
			case othello.Empty:
				line[col] = '.'
			}
		}
		rows[row] = string(line)
	}

	return rows
}

// NewGameResponse converts a session snapshot into a GameResponse.
func NewGameResponse(snapshot session.Snapshot) GameResponse {
	state := snapshot.State

	resp := GameResponse{
		ID:            snapshot.ID.String(),
		Mode:          string(snapshot.Mode),
		Difficulty:    int(snapshot.Difficulty),
		Board:         state.Board.String(),
		Rows:          boardRows(state.Board),
		CurrentPlayer: state.CurrentPlayer.String(),
		BlackCount:    state.BlackCount,
		WhiteCount:    state.WhiteCount,
		GameOver:      state.GameOver,
		Outcome:       state.Outcome.String(),
		ValidMoves:    make([]string, 0, len(state.ValidMoves)),
		Moves:         make([]MoveResponse, 0, len(snapshot.Moves)),
		Created:       snapshot.Created,
		Updated:       snapshot.Updated,
	}

	if snapshot.Computer != 0 {
		resp.Computer = snapshot.Computer.String()
	}

	if winner, ok := state.Winner(); ok {
		resp.Winner = winner.String()
	}

	for _, move := range state.ValidMoves {
		resp.ValidMoves = append(resp.ValidMoves, move.String())
	}

	for _, move := range snapshot.Moves {
		resp.Moves = append(resp.Moves, MoveResponse{
			Player:   move.Player.String(),
			Field:    move.Position.String(),
			Row:      move.Position.Row,
			Col:      move.Position.Col,
			Computer: move.Computer,
		})
	}

	return resp
}

// VersionResponse is the response of the version endpoint.
type VersionResponse struct {
	Commit string `json:"commit"`
}
