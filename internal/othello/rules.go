package othello

// flipsInDirection returns how many opponent discs are bracketed when p
// places a disc on (row, col), scanning in direction d. Zero means nothing flips.
func flipsInDirection(b *Board, row, col int, d Direction, p Player) int {
	own := p.Disc()
	r, c := row+d.DRow, col+d.DCol
	count := 0

	for InBounds(r, c) {
		switch b[r][c] {
		case Empty:
			return 0
		case own:
			return count
		default:
			count++
		}
		r += d.DRow
		c += d.DCol
	}

	return 0
}

// IsValidMove checks if p may place a disc on (row, col).
func IsValidMove(b Board, row, col int, p Player) bool {
	if !InBounds(row, col) || b[row][col] != Empty {
		return false
	}

	for _, d := range Directions {
		if flipsInDirection(&b, row, col, d, p) > 0 {
			return true
		}
	}

	return false
}

// ValidMoves returns all valid moves of p in row-major order.
func ValidMoves(b Board, p Player) []Position {
	moves := make([]Position, 0)
	for row := range MaxY {
		for col := range MaxX {
			if IsValidMove(b, row, col, p) {
				moves = append(moves, Position{Row: row, Col: col})
			}
		}
	}
	return moves
}

// HasMoves checks if p has at least one valid move.
func HasMoves(b Board, p Player) bool {
	for row := range MaxY {
		for col := range MaxX {
			if IsValidMove(b, row, col, p) {
				return true
			}
		}
	}
	return false
}

// Apply places a disc of p on (row, col), flips all bracketed discs and
// returns the new board. If the move is invalid, the board is returned unchanged.
func (b Board) Apply(row, col int, p Player) Board {
	if !IsValidMove(b, row, col, p) {
		return b
	}

	own := p.Disc()
	b[row][col] = own

	for _, d := range Directions {
		n := flipsInDirection(&b, row, col, d, p)
		for dist := 1; dist <= n; dist++ {
			b[row+dist*d.DRow][col+dist*d.DCol] = own
		}
	}

	return b
}
