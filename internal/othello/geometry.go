package othello

import (
	"fmt"
	"strings"
)

const (
	MaxX = 8
	MaxY = 8
)

// Player is one of the two sides of a game.
type Player uint8

const (
	Black Player = iota + 1
	White
)

// Opponent returns the other player.
func (p Player) Opponent() Player {
	switch p {
	case Black:
		return White
	case White:
		return Black
	}
	panic(fmt.Sprintf("invalid player: %d", p))
}

// Disc returns the cell value of a disc of this player.
func (p Player) Disc() Cell {
	switch p {
	case Black:
		return BlackDisc
	case White:
		return WhiteDisc
	}
	panic(fmt.Sprintf("invalid player: %d", p))
}

func (p Player) String() string {
	switch p {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return fmt.Sprintf("Player(%d)", p)
}

// ParsePlayer parses "black" or "white", case insensitive.
func ParsePlayer(s string) (Player, error) {
	switch strings.ToLower(s) {
	case "black", "b":
		return Black, nil
	case "white", "w":
		return White, nil
	default:
		return 0, fmt.Errorf("invalid player: %q", s)
	}
}

// Cell is the content of a square. The zero value is Empty.
type Cell uint8

const (
	Empty Cell = iota
	BlackDisc
	WhiteDisc
)

// Owner returns the player owning the disc in the cell, if any.
func (c Cell) Owner() (Player, bool) {
	switch c {
	case Empty:
		return 0, false
	case BlackDisc:
		return Black, true
	case WhiteDisc:
		return White, true
	}
	panic(fmt.Sprintf("invalid cell: %d", c))
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case BlackDisc:
		return "black"
	case WhiteDisc:
		return "white"
	}
	return fmt.Sprintf("Cell(%d)", c)
}

// Position is a square on the board, both coordinates in [0,7].
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Index returns the bit index of the position, as used in board strings.
func (p Position) Index() int {
	return p.Row*MaxX + p.Col
}

// String returns the field notation, e.g. "d3" for row 2, col 3.
func (p Position) String() string {
	if !InBounds(p.Row, p.Col) {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col, p.Row+1)
}

// ParseField converts a field notation (e.g. "a1", "h8") to a Position.
func ParseField(field string) (Position, error) {
	if len(field) != 2 {
		return Position{}, fmt.Errorf("invalid field length: %q", field)
	}

	field = strings.ToLower(field)

	if !('a' <= field[0] && field[0] <= 'h' && '1' <= field[1] && field[1] <= '8') {
		return Position{}, fmt.Errorf("invalid field: %q", field)
	}

	return Position{
		Row: int(field[1] - '1'),
		Col: int(field[0] - 'a'),
	}, nil
}

// Direction is a step on the board.
type Direction struct {
	DRow, DCol int
}

// Directions contains the 8 compass directions.
var Directions = [8]Direction{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Corners contains the 4 corner squares.
var Corners = [4]Position{
	{0, 0}, {0, 7}, {7, 0}, {7, 7},
}

// InBounds checks if a coordinate pair is on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < MaxY && col >= 0 && col < MaxX
}

// IsBorder checks if a square lies on the outer ring of the board.
func IsBorder(row, col int) bool {
	return row == 0 || row == MaxY-1 || col == 0 || col == MaxX-1
}
