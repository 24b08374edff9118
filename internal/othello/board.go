package othello

import (
	"fmt"
	"strconv"
)

// Board is an 8x8 grid of cells, indexed [row][col].
// It is a value type: assigning a Board copies it.
type Board [MaxY][MaxX]Cell

// NewBoardStart creates a new board with the starting position.
func NewBoardStart() Board {
	var b Board
	b[3][3] = WhiteDisc
	b[3][4] = BlackDisc
	b[4][3] = BlackDisc
	b[4][4] = WhiteDisc
	return b
}

// NewBoardEmpty creates a new board without any discs.
func NewBoardEmpty() Board {
	return Board{}
}

// NewBoardFromString creates a new board from a string representation.
func NewBoardFromString(s string) (Board, error) {
	if len(s) != 32 {
		return Board{}, fmt.Errorf("board string must be 32 characters long, got %d", len(s))
	}

	black, err := strconv.ParseUint(s[:16], 16, 64)
	if err != nil {
		return Board{}, fmt.Errorf("invalid black discs: %w", err)
	}

	white, err := strconv.ParseUint(s[16:], 16, 64)
	if err != nil {
		return Board{}, fmt.Errorf("invalid white discs: %w", err)
	}

	if black&white != 0 {
		return Board{}, fmt.Errorf("invalid board: black and white discs cannot overlap")
	}

	return NewBoardFromBits(black, white), nil
}

// NewBoardFromBits creates a board from a black and white bitboard.
// Bit index row*8+col corresponds to square (row, col).
func NewBoardFromBits(black, white uint64) Board {
	var b Board
	for index := range MaxX * MaxY {
		mask := uint64(1) << index
		switch {
		case black&mask != 0:
			b[index/MaxX][index%MaxX] = BlackDisc
		case white&mask != 0:
			b[index/MaxX][index%MaxX] = WhiteDisc
		}
	}
	return b
}

// Bits returns the bitboards of the black and white discs.
func (b Board) Bits() (black, white uint64) {
	for row := range MaxY {
		for col := range MaxX {
			mask := uint64(1) << (row*MaxX + col)
			switch b[row][col] {
			case BlackDisc:
				black |= mask
			case WhiteDisc:
				white |= mask
			case Empty:
			}
		}
	}
	return black, white
}

// At returns the cell at the given position.
func (b Board) At(pos Position) Cell {
	return b[pos.Row][pos.Col]
}

// Count returns the number of discs of a player.
func (b Board) Count(p Player) int {
	disc := p.Disc()
	count := 0
	for row := range MaxY {
		for col := range MaxX {
			if b[row][col] == disc {
				count++
			}
		}
	}
	return count
}

// CountDiscs returns the number of discs on the board.
func (b Board) CountDiscs() int {
	return b.Count(Black) + b.Count(White)
}

// ASCIIArtLines returns the ascii art lines for the board.
// Valid moves of the given player are marked with a dot.
func (b Board) ASCIIArtLines(toMove Player) []string {
	moves := make(map[Position]bool)
	for _, move := range ValidMoves(b, toMove) {
		moves[move] = true
	}

	lines := make([]string, MaxY+2)

	lines[0] = "+-a-b-c-d-e-f-g-h-+"
	for row := range MaxY {
		line := fmt.Sprintf("%d ", row+1)

		for col := range MaxX {
			switch {
			case b[row][col] == WhiteDisc:
				line += "○ "
			case b[row][col] == BlackDisc:
				line += "● "
			case moves[Position{Row: row, Col: col}]:
				line += "· "
			default:
				line += "  "
			}
		}

		lines[row+1] = line + "|"
	}

	lines[9] = "+-----------------+"

	return lines
}

// Print prints the board to the console. This is used for debugging.
func (b Board) Print(toMove Player) {
	for _, line := range b.ASCIIArtLines(toMove) {
		fmt.Println(line)
	}
}

// String returns the string representation of the board.
func (b Board) String() string {
	black, white := b.Bits()
	return fmt.Sprintf("%016x%016x", black, white)
}
