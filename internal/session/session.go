package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/search"
)

// Errors exposed by the session layer.
var (
	ErrNotFound     = errors.New("game not found")
	ErrInvalidMove  = errors.New("invalid move")
	ErrGameOver     = errors.New("game is over")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrNoComputer   = errors.New("game has no computer player")
	ErrInvalidInput = errors.New("invalid input")
)

// Mode describes who controls the two sides of a game.
type Mode string

const (
	HumanVsComputer    Mode = "human_vs_computer"
	HumanVsHuman       Mode = "human_vs_human"
	ComputerVsComputer Mode = "computer_vs_computer"
)

// ParseMode parses a mode, defaulting to HumanVsComputer for an empty string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", HumanVsComputer:
		return HumanVsComputer, nil
	case HumanVsHuman:
		return HumanVsHuman, nil
	case ComputerVsComputer:
		return ComputerVsComputer, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, s)
}

// Options configures a new session.
type Options struct {
	Mode Mode

	// Difficulty of the computer players. Zero means Medium.
	Difficulty search.Difficulty

	// Computer is the side played by the computer in HumanVsComputer. Zero means White.
	Computer othello.Player
}

// Move is a move played in a session.
type Move struct {
	Player   othello.Player
	Position othello.Position
	Computer bool
}

// Snapshot is an immutable view of a session.
type Snapshot struct {
	ID         uuid.UUID
	Mode       Mode
	Computer   othello.Player
	Difficulty search.Difficulty
	State      othello.GameState

	// Moves contains the moves played by the call that returned the snapshot.
	Moves []Move

	Created time.Time
	Updated time.Time
}

// Record is the persisted form of a session. Only the current position is
// stored, not the moves that led to it.
type Record struct {
	ID         uuid.UUID
	Mode       Mode
	Computer   othello.Player
	Difficulty search.Difficulty
	Board      othello.Board
	Turn       othello.Player
	Outcome    othello.Outcome
	Created    time.Time
	Updated    time.Time
}

// session is a single game with its computer players.
type session struct {
	// mu serializes all access to the game and bots
	mu sync.Mutex

	id         uuid.UUID
	mode       Mode
	computer   othello.Player
	difficulty search.Difficulty
	game       *othello.Game
	bots       map[othello.Player]*search.Bot
	created    time.Time
	updated    time.Time

	// deleted is set by Manager.Delete, a deleted session is never saved again
	deleted bool
}

func newSession(id uuid.UUID, mode Mode, computer othello.Player, difficulty search.Difficulty, game *othello.Game) *session {
	s := &session{
		id:         id,
		mode:       mode,
		computer:   computer,
		difficulty: difficulty,
		game:       game,
		bots:       make(map[othello.Player]*search.Bot),
	}

	switch mode {
	case HumanVsComputer:
		s.bots[computer] = search.NewBot(computer, difficulty)
	case ComputerVsComputer:
		s.bots[othello.Black] = search.NewBot(othello.Black, difficulty)
		s.bots[othello.White] = search.NewBot(othello.White, difficulty)
	case HumanVsHuman:
	}

	return s
}

func restoreSession(rec Record) *session {
	game := othello.NewGameFromBoard(rec.Board, rec.Turn)

	s := newSession(rec.ID, rec.Mode, rec.Computer, rec.Difficulty, game)
	s.created = rec.Created
	s.updated = rec.Updated
	return s
}

// setDifficulty assumes mu is locked.
func (s *session) setDifficulty(difficulty search.Difficulty) {
	s.difficulty = difficulty
	for _, bot := range s.bots {
		bot.SetDifficulty(difficulty)
	}
}

// rollback puts the session back in the state of rec. It assumes mu is locked.
func (s *session) rollback(rec Record) {
	s.game = othello.NewGameFromBoard(rec.Board, rec.Turn)
	s.setDifficulty(rec.Difficulty)
	s.updated = rec.Updated
}

// isComputerTurn checks if the computer replies on its own. It assumes mu is locked.
func (s *session) isComputerTurn() bool {
	return s.mode == HumanVsComputer && !s.game.IsGameOver() && s.game.CurrentPlayer() == s.computer
}

// snapshot assumes mu is locked.
func (s *session) snapshot(moves []Move) Snapshot {
	if moves == nil {
		moves = []Move{}
	}

	computer := s.computer
	if s.mode != HumanVsComputer {
		computer = 0
	}

	return Snapshot{
		ID:         s.id,
		Mode:       s.mode,
		Computer:   computer,
		Difficulty: s.difficulty,
		State:      s.game.GetGameState(),
		Moves:      moves,
		Created:    s.created,
		Updated:    s.updated,
	}
}

// record assumes mu is locked.
func (s *session) record() Record {
	state := s.game.GetGameState()

	return Record{
		ID:         s.id,
		Mode:       s.mode,
		Computer:   s.computer,
		Difficulty: s.difficulty,
		Board:      state.Board,
		Turn:       state.CurrentPlayer,
		Outcome:    state.Outcome,
		Created:    s.created,
		Updated:    s.updated,
	}
}
