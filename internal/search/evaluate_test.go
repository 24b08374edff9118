package search

import (
	"testing"

	"github.com/lk16/reversi/internal/othello"
	"github.com/stretchr/testify/require"
)

// cornerBoard gives white two moves: e4 in the center and h8 in the corner.
func cornerBoard() othello.Board {
	board := othello.NewBoardEmpty()
	board[3][2] = othello.WhiteDisc
	board[3][3] = othello.BlackDisc
	board[7][5] = othello.WhiteDisc
	board[7][6] = othello.BlackDisc
	return board
}

func TestEvaluateStart(t *testing.T) {
	board := othello.NewBoardStart()

	require.Equal(t, Terms{}, EvaluateTerms(board, othello.Black))
	require.Zero(t, Evaluate(board, othello.Black))
	require.Zero(t, Evaluate(board, othello.White))
}

func TestEvaluateTerms(t *testing.T) {
	board := cornerBoard().Apply(7, 7, othello.White)

	terms := EvaluateTerms(board, othello.White)
	require.Equal(t, Terms{
		Piece:     3,
		Corner:    1,
		Edge:      4,
		Mobility:  0,
		Stability: 3,
	}, terms)
	require.Equal(t, 93, terms.Score())
	require.Equal(t, 93, Evaluate(board, othello.White))

	// The evaluation is symmetric between the players.
	require.Equal(t, -93, Evaluate(board, othello.Black))
}

func TestEvaluateEdgeCountsCornersTwice(t *testing.T) {
	board := othello.NewBoardEmpty()
	board[0][0] = othello.BlackDisc

	terms := EvaluateTerms(board, othello.Black)
	require.Equal(t, 1, terms.Corner)
	require.Equal(t, 2, terms.Edge)
	require.Equal(t, 1, terms.Stability)
	require.Equal(t, 1, terms.Piece)
	require.Equal(t, 1*PieceWeight+1*CornerWeight+2*EdgeWeight+1*StabilityWeight, terms.Score())
}

func TestEvaluateStability(t *testing.T) {
	tests := []struct {
		name  string
		setup func(b *othello.Board)
		want  int
	}{
		{
			name: "lone edge disc",
			setup: func(b *othello.Board) {
				b[0][3] = othello.BlackDisc
			},
			want: 1,
		},
		{
			name: "center disc is never stable",
			setup: func(b *othello.Board) {
				b[3][3] = othello.BlackDisc
			},
			want: 0,
		},
		{
			name: "opponent neighbour on the diagonal",
			setup: func(b *othello.Board) {
				b[0][3] = othello.BlackDisc
				b[1][4] = othello.WhiteDisc
			},
			want: 0,
		},
		{
			name: "opponent neighbour on the edge",
			setup: func(b *othello.Board) {
				b[0][3] = othello.BlackDisc
				b[0][4] = othello.WhiteDisc
			},
			want: 0,
		},
		{
			name: "own neighbours",
			setup: func(b *othello.Board) {
				b[7][0] = othello.BlackDisc
				b[6][0] = othello.BlackDisc
				b[6][1] = othello.BlackDisc
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := othello.NewBoardEmpty()
			tt.setup(&board)

			require.Equal(t, tt.want, EvaluateTerms(board, othello.Black).Stability)
		})
	}
}
