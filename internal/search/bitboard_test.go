package search

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/lk16/reversi/internal/othello"
	"github.com/stretchr/testify/require"
)

// randomBoards plays random games and returns every board on the way together
// with the player to move.
func randomBoards(t *testing.T, games int) ([]othello.Board, []othello.Player) {
	t.Helper()

	rng := rand.New(rand.NewSource(16)) //nolint:gosec

	boards := make([]othello.Board, 0)
	players := make([]othello.Player, 0)

	for range games {
		game := othello.NewGame()
		for !game.IsGameOver() {
			state := game.GetGameState()
			boards = append(boards, state.Board)
			players = append(players, state.CurrentPlayer)

			move := state.ValidMoves[rng.Intn(len(state.ValidMoves))]
			require.True(t, game.MakeMove(move.Row, move.Col))
		}
	}

	return boards, players
}

func movesToPositions(set uint64) []othello.Position {
	positions := make([]othello.Position, 0)
	forEachMove(set, func(move int) bool {
		positions = append(positions, othello.Position{Row: move / 8, Col: move % 8})
		return true
	})
	return positions
}

func TestMovesMatchesRules(t *testing.T) {
	boards, _ := randomBoards(t, 20)

	for _, board := range boards {
		for _, player := range []othello.Player{othello.Black, othello.White} {
			d := newDiscs(board, player)

			want := othello.ValidMoves(board, player)
			got := movesToPositions(moves(d.self, d.opp))
			require.Equal(t, want, got, "board %s player %s", board, player)
		}
	}
}

func TestPlayMatchesRules(t *testing.T) {
	boards, players := randomBoards(t, 20)

	for i, board := range boards {
		player := players[i]
		d := newDiscs(board, player)

		for _, move := range othello.ValidMoves(board, player) {
			self, opp := play(d.self, d.opp, move.Index())

			want := newDiscs(board.Apply(move.Row, move.Col, player), player)
			require.Equal(t, want, discs{self: self, opp: opp}, "board %s move %s", board, move)
		}
	}
}

func TestPlayInvalidMove(t *testing.T) {
	d := newDiscs(othello.NewBoardStart(), othello.Black)

	// occupied
	self, opp := play(d.self, d.opp, 27)
	require.Equal(t, d, discs{self: self, opp: opp})

	// no flips
	self, opp = play(d.self, d.opp, 0)
	require.Equal(t, d, discs{self: self, opp: opp})
}

func TestForEachMoveStops(t *testing.T) {
	visited := 0
	forEachMove(0xFF, func(move int) bool {
		visited++
		return move < 3
	})
	require.Equal(t, 4, visited)
}

func TestAdjacent(t *testing.T) {
	for index := range 64 {
		row, col := index/8, index%8

		want := uint64(0)
		for _, dir := range othello.Directions {
			r, c := row+dir.DRow, col+dir.DCol
			if othello.InBounds(r, c) {
				want |= uint64(1) << (8*r + c)
			}
		}

		require.Equal(t, want, adjacent(uint64(1)<<index), "index %d", index)
	}
}

func TestMasks(t *testing.T) {
	require.Equal(t, 4, bits.OnesCount64(cornerMask))
	require.Equal(t, 28, bits.OnesCount64(borderMask))

	for _, corner := range othello.Corners {
		require.NotZero(t, uint64(cornerMask)&(uint64(1)<<corner.Index()))
	}
}
