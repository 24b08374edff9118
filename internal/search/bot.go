package search

import (
	"log/slog"
	"math"
	"time"

	"github.com/lk16/reversi/internal/othello"
)

// Bot picks moves for one fixed player with a depth-limited alpha-beta search.
// A Bot is not safe for concurrent use.
type Bot struct {
	player     othello.Player
	difficulty Difficulty

	// nodes counts visited nodes during the last search
	nodes uint64
}

// NewBot creates a new bot playing for player.
func NewBot(player othello.Player, difficulty Difficulty) *Bot {
	return &Bot{
		player:     player,
		difficulty: difficulty,
	}
}

// SetDifficulty changes the search depth of subsequent searches.
func (b *Bot) SetDifficulty(difficulty Difficulty) {
	b.difficulty = difficulty
}

// Difficulty returns the configured difficulty.
func (b *Bot) Difficulty() Difficulty {
	return b.difficulty
}

// Player returns the player the bot searches for.
func (b *Bot) Player() othello.Player {
	return b.player
}

// Nodes returns the number of nodes visited by the last search.
func (b *Bot) Nodes() uint64 {
	return b.nodes
}

// BestMove returns the best of the candidate moves for the bot's player.
// It returns false if there are no candidates. The first candidate wins ties,
// so the order of legal matters.
func (b *Bot) BestMove(board othello.Board, legal []othello.Position) (othello.Position, bool) {
	if len(legal) == 0 {
		return othello.Position{}, false
	}

	startTime := time.Now()
	b.nodes = 0

	root := newDiscs(board, b.player)
	depth := b.difficulty.Depth()

	var best othello.Position
	bestScore := math.MinInt
	found := false

	for _, move := range legal {
		child := root
		if othello.InBounds(move.Row, move.Col) {
			child.self, child.opp = play(root.self, root.opp, move.Index())
		}

		score := b.alphaBeta(child, depth-1, false, math.MinInt, math.MaxInt)

		if !found || score > bestScore {
			best = move
			bestScore = score
			found = true
		}
	}

	b.logStats(startTime, best, bestScore)
	return best, true
}

// alphaBeta returns the minimax value of d for the bot's player. The mover is
// the bot when maximizing and its opponent otherwise.
func (b *Bot) alphaBeta(d discs, depth int, maximizing bool, alpha, beta int) int {
	b.nodes++

	if depth <= 0 {
		return evaluate(d)
	}

	selfMoves := moves(d.self, d.opp)
	oppMoves := moves(d.opp, d.self)

	if selfMoves == 0 && oppMoves == 0 {
		return evaluate(d)
	}

	mover := oppMoves
	if maximizing {
		mover = selfMoves
	}

	if mover == 0 {
		// Pass: the other side moves on the same board, which costs a ply.
		return b.alphaBeta(d, depth-1, !maximizing, alpha, beta)
	}

	if maximizing {
		best := math.MinInt
		forEachMove(mover, func(move int) bool {
			var child discs
			child.self, child.opp = play(d.self, d.opp, move)

			score := b.alphaBeta(child, depth-1, false, alpha, beta)
			best = max(best, score)
			alpha = max(alpha, score)
			return beta > alpha
		})
		return best
	}

	best := math.MaxInt
	forEachMove(mover, func(move int) bool {
		var child discs
		child.opp, child.self = play(d.opp, d.self, move)

		score := b.alphaBeta(child, depth-1, true, alpha, beta)
		best = min(best, score)
		beta = min(beta, score)
		return beta > alpha
	})
	return best
}

func (b *Bot) logStats(startTime time.Time, best othello.Position, score int) {
	elapsed := time.Since(startTime)

	nodesPerSecond := int64(0)
	if elapsed.Seconds() > 0.000001 {
		nodesPerSecond = int64(float64(b.nodes) / elapsed.Seconds())
	}

	slog.Debug("search done",
		"player", b.player,
		"difficulty", b.difficulty,
		"move", best,
		"score", score,
		"nodes", b.nodes,
		"elapsed", elapsed,
		"nodes_per_second", nodesPerSecond,
	)
}
