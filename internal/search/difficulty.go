package search

import (
	"fmt"
	"strconv"
	"strings"
)

// Difficulty is the search depth in plies.
type Difficulty int

const (
	Easy   Difficulty = 2
	Medium Difficulty = 4
	Hard   Difficulty = 6
)

// ParseDifficulty parses "easy", "medium", "hard" or a positive depth.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(s) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}

	depth, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid difficulty %q: %w", s, err)
	}

	if depth < 1 {
		return 0, fmt.Errorf("invalid difficulty %q: depth must be positive", s)
	}

	return Difficulty(depth), nil
}

// Depth returns the search depth, which is at least 1.
func (d Difficulty) Depth() int {
	return max(int(d), 1)
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return strconv.Itoa(int(d))
}
