package othello

// Game is the authoritative state of a single Othello game.
// A Game is not safe for concurrent use.
type Game struct {
	// board is the only copy of the live board, never handed out by reference
	board Board

	// turn is the player to move
	turn Player

	// outcome is InProgress until neither player can move
	outcome Outcome
}

// NewGame creates a new game in the starting position with black to move.
func NewGame() *Game {
	g := &Game{}
	g.ResetGame()
	return g
}

// NewGameFromBoard creates a game with a custom start board. The status is
// settled right away: if toMove cannot move the opponent moves, and if neither
// can move the game is over.
func NewGameFromBoard(board Board, toMove Player) *Game {
	g := &Game{
		board:   board,
		turn:    toMove,
		outcome: InProgress,
	}

	if !HasMoves(g.board, g.turn) {
		g.advanceTurn()
	}

	return g
}

// ResetGame puts the game back in the starting position.
func (g *Game) ResetGame() {
	g.board = NewBoardStart()
	g.turn = Black
	g.outcome = InProgress
}

// CurrentPlayer returns the player to move.
func (g *Game) CurrentPlayer() Player {
	return g.turn
}

// IsGameOver returns whether neither player can move anymore.
func (g *Game) IsGameOver() bool {
	return g.outcome != InProgress
}

// Outcome returns the outcome of the game.
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// IsValidMove checks if p may place a disc on (row, col) on the live board.
func (g *Game) IsValidMove(row, col int, p Player) bool {
	return IsValidMove(g.board, row, col, p)
}

// GetValidMoves returns the valid moves of p in row-major order.
func (g *Game) GetValidMoves(p Player) []Position {
	return ValidMoves(g.board, p)
}

// MakeMove plays a move for the current player. It returns false without
// changing anything if the game is over or the move is invalid.
func (g *Game) MakeMove(row, col int) bool {
	if g.IsGameOver() || !g.IsValidMove(row, col, g.turn) {
		return false
	}

	g.board = g.board.Apply(row, col, g.turn)
	g.advanceTurn()
	return true
}

// advanceTurn hands the turn to the opponent if it can move. Otherwise the
// current player moves again, or the game ends when neither side can move.
func (g *Game) advanceTurn() {
	opponent := g.turn.Opponent()

	if HasMoves(g.board, opponent) {
		g.turn = opponent
		return
	}

	if HasMoves(g.board, g.turn) {
		return
	}

	g.outcome = outcomeOf(g.board)
}

// SimulateMove returns the board after p plays on (row, col), without
// touching the game. Invalid moves return an unmodified copy.
func (g *Game) SimulateMove(row, col int, p Player) Board {
	return g.board.Apply(row, col, p)
}

// GetBoardCopy returns a copy of the live board.
func (g *Game) GetBoardCopy() Board {
	return g.board
}

// GetGameState returns a snapshot of the game.
func (g *Game) GetGameState() GameState {
	return GameState{
		Board:         g.board,
		CurrentPlayer: g.turn,
		BlackCount:    g.board.Count(Black),
		WhiteCount:    g.board.Count(White),
		GameOver:      g.IsGameOver(),
		Outcome:       g.outcome,
		ValidMoves:    g.GetValidMoves(g.turn),
	}
}
