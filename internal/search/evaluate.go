package search

import (
	"math/bits"

	"github.com/lk16/reversi/internal/othello"
)

// Weights of the evaluation terms.
const (
	PieceWeight     = 1
	CornerWeight    = 25
	EdgeWeight      = 5
	MobilityWeight  = 10
	StabilityWeight = 15
)

// Terms holds the unweighted evaluation terms of a board, each computed as
// the value for the searching player minus the value for its opponent.
type Terms struct {
	Piece     int
	Corner    int
	Edge      int
	Mobility  int
	Stability int
}

// Score returns the weighted sum of the terms.
func (t Terms) Score() int {
	return t.Piece*PieceWeight +
		t.Corner*CornerWeight +
		t.Edge*EdgeWeight +
		t.Mobility*MobilityWeight +
		t.Stability*StabilityWeight
}

// Evaluate returns the static evaluation of a board for player self.
// Higher is better for self.
func Evaluate(board othello.Board, self othello.Player) int {
	return evaluate(newDiscs(board, self))
}

// EvaluateTerms returns the individual evaluation terms of a board for player self.
func EvaluateTerms(board othello.Board, self othello.Player) Terms {
	return terms(newDiscs(board, self))
}

func evaluate(d discs) int {
	return terms(d).Score()
}

func terms(d discs) Terms {
	return Terms{
		Piece:     bits.OnesCount64(d.self) - bits.OnesCount64(d.opp),
		Corner:    bits.OnesCount64(d.self&cornerMask) - bits.OnesCount64(d.opp&cornerMask),
		Edge:      edgeCount(d.self) - edgeCount(d.opp),
		Mobility:  bits.OnesCount64(moves(d.self, d.opp)) - bits.OnesCount64(moves(d.opp, d.self)),
		Stability: bits.OnesCount64(stable(d.self, d.opp)) - bits.OnesCount64(stable(d.opp, d.self)),
	}
}

// edgeCount counts discs on row 0, row 7, col 0 and col 7 separately.
// Corners lie on a row and a column and are therefore counted twice.
// The evaluation weights were tuned with this double count in place.
func edgeCount(x uint64) int {
	return bits.OnesCount64(x&row0Mask) +
		bits.OnesCount64(x&row7Mask) +
		bits.OnesCount64(x&col0Mask) +
		bits.OnesCount64(x&col7Mask)
}

// stable returns the border discs of player that have no opponent disc next
// to them. This only approximates stability: such discs can still be flipped.
func stable(player, opponent uint64) uint64 {
	return player & borderMask &^ adjacent(opponent)
}
