package othello

import "fmt"

// Outcome is the status of a game.
type Outcome uint8

const (
	InProgress Outcome = iota
	BlackWins
	WhiteWins
	Tie
)

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in_progress"
	case BlackWins:
		return "black_wins"
	case WhiteWins:
		return "white_wins"
	case Tie:
		return "tie"
	}
	return fmt.Sprintf("Outcome(%d)", o)
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, error) {
	for _, o := range []Outcome{InProgress, BlackWins, WhiteWins, Tie} {
		if o.String() == s {
			return o, nil
		}
	}
	return InProgress, fmt.Errorf("unknown outcome %q", s)
}

// outcomeOf computes the final outcome of a board where nobody can move.
func outcomeOf(b Board) Outcome {
	black := b.Count(Black)
	white := b.Count(White)

	switch {
	case black > white:
		return BlackWins
	case white > black:
		return WhiteWins
	default:
		return Tie
	}
}

// GameState is an immutable snapshot of a game.
type GameState struct {
	Board         Board
	CurrentPlayer Player
	BlackCount    int
	WhiteCount    int
	GameOver      bool
	Outcome       Outcome
	ValidMoves    []Position
}

// Winner returns the winner of a finished game. The second return value is
// false while the game is in progress or when it ended in a tie.
func (s GameState) Winner() (Player, bool) {
	switch s.Outcome {
	case BlackWins:
		return Black, true
	case WhiteWins:
		return White, true
	case InProgress, Tie:
		return 0, false
	}
	panic(fmt.Sprintf("invalid outcome: %d", s.Outcome))
}

// IsValidMove checks if pos is among the valid moves of the snapshot.
func (s GameState) IsValidMove(pos Position) bool {
	for _, move := range s.ValidMoves {
		if move == pos {
			return true
		}
	}
	return false
}
