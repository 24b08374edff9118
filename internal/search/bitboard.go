package search

import (
	"math/bits"

	"github.com/lk16/reversi/internal/othello"
)

const (
	cornerMask = 0x8100000000000081
	row0Mask   = 0x00000000000000FF
	row7Mask   = 0xFF00000000000000
	col0Mask   = 0x0101010101010101
	col7Mask   = 0x8080808080808080
	borderMask = row0Mask | row7Mask | col0Mask | col7Mask
	notCol0    = 0xFEFEFEFEFEFEFEFE
	notCol7    = 0x7F7F7F7F7F7F7F7F
)

// discs is a board seen from the searching player: self holds the discs of
// the bot, opp those of its opponent. Bit index row*8+col is square (row, col).
type discs struct {
	self uint64
	opp  uint64
}

func newDiscs(board othello.Board, self othello.Player) discs {
	black, white := board.Bits()
	if self == othello.Black {
		return discs{self: black, opp: white}
	}
	return discs{self: white, opp: black}
}

// moves returns a bitset with all valid moves for the player owning player,
// playing against opponent. This code is adapted from Edax.
func moves(player, opponent uint64) uint64 {
	mask := opponent & 0x7E7E7E7E7E7E7E7E

	flipL := mask & (player << 1)
	flipL |= mask & (flipL << 1)
	maskL := mask & (mask << 1)
	flipL |= maskL & (flipL << (2 * 1))
	flipL |= maskL & (flipL << (2 * 1))
	flipR := mask & (player >> 1)
	flipR |= mask & (flipR >> 1)
	maskR := mask & (mask >> 1)
	flipR |= maskR & (flipR >> (2 * 1))
	flipR |= maskR & (flipR >> (2 * 1))
	movesSet := (flipL << 1) | (flipR >> 1)

	flipL = mask & (player << 7)
	flipL |= mask & (flipL << 7)
	maskL = mask & (mask << 7)
	flipL |= maskL & (flipL << (2 * 7))
	flipL |= maskL & (flipL << (2 * 7))
	flipR = mask & (player >> 7)
	flipR |= mask & (flipR >> 7)
	maskR = mask & (mask >> 7)
	flipR |= maskR & (flipR >> (2 * 7))
	flipR |= maskR & (flipR >> (2 * 7))
	movesSet |= (flipL << 7) | (flipR >> 7)

	flipL = mask & (player << 9)
	flipL |= mask & (flipL << 9)
	maskL = mask & (mask << 9)
	flipL |= maskL & (flipL << (2 * 9))
	flipL |= maskL & (flipL << (2 * 9))
	flipR = mask & (player >> 9)
	flipR |= mask & (flipR >> 9)
	maskR = mask & (mask >> 9)
	flipR |= maskR & (flipR >> (2 * 9))
	flipR |= maskR & (flipR >> (2 * 9))
	movesSet |= (flipL << 9) | (flipR >> 9)

	flipL = opponent & (player << 8)
	flipL |= opponent & (flipL << 8)
	maskL = opponent & (opponent << 8)
	flipL |= maskL & (flipL << (2 * 8))
	flipL |= maskL & (flipL << (2 * 8))
	flipR = opponent & (player >> 8)
	flipR |= opponent & (flipR >> 8)
	maskR = opponent & (opponent >> 8)
	flipR |= maskR & (flipR >> (2 * 8))
	flipR |= maskR & (flipR >> (2 * 8))
	movesSet |= (flipL << 8) | (flipR >> 8)

	movesSet &^= player | opponent
	return movesSet
}

// flipped returns a bitset with all the opponent discs that would be flipped
// if player played on the given move.
func flipped(player, opponent uint64, move int) uint64 {
	flipped := uint64(0)

	// If we try to play on an occupied square, this is an invalid move
	if (player|opponent)&(uint64(1)<<move) != 0 {
		return 0
	}

	for _, dir := range othello.Directions {
		s := 1
		for {
			row := (move / 8) + (dir.DRow * s)
			col := (move % 8) + (dir.DCol * s)
			if !othello.InBounds(row, col) {
				break
			}

			curBit := uint64(1) << (8*row + col)

			if opponent&curBit != 0 {
				s++
				continue
			}

			if player&curBit != 0 && s >= 2 {
				for dist := 1; dist < s; dist++ {
					f := move + dist*(8*dir.DRow+dir.DCol)
					flipped |= uint64(1) << f
				}
			}
			break
		}
	}

	return flipped
}

// play returns the new player and opponent bitboards after player plays move.
// Moves that flip nothing leave both unchanged.
func play(player, opponent uint64, move int) (uint64, uint64) {
	flips := flipped(player, opponent, move)
	if flips == 0 {
		return player, opponent
	}

	return player | flips | uint64(1)<<move, opponent &^ flips
}

// forEachMove calls f for every bit in set, lowest index first. Lowest index
// first is row-major order on the board. Iteration stops when f returns false.
func forEachMove(set uint64, f func(move int) bool) {
	for set != 0 {
		move := bits.TrailingZeros64(set)
		if !f(move) {
			return
		}
		set &= set - 1
	}
}

// adjacent returns all squares next to any square in x, in any of the 8 directions.
func adjacent(x uint64) uint64 {
	return (x<<1)&notCol0 | (x>>1)&notCol7 |
		x<<8 | x>>8 |
		(x<<9)&notCol0 | (x>>9)&notCol7 |
		(x<<7)&notCol7 | (x>>7)&notCol0
}
