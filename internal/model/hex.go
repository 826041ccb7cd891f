package model

import "fmt"

// Position identifies a cell on the board
type Position struct {
	X int `json:"x"` // Column, 0-indexed from left
	Y int `json:"y"` // Row, 0-indexed from bottom
}

func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Neighbors returns the positions adjacent to pos on a flat-top hex grid where
// odd columns sit half a row below even columns. Results are not bounds-checked.
//
// Order is fixed: same column (below, above), then the left column, then the
// right column. Merge discovery relies on this order being deterministic.
func Neighbors(pos Position) []Position {
	// Rows touched in the adjacent columns
	lo, hi := pos.Y, pos.Y+1
	if pos.X%2 != 0 {
		lo, hi = pos.Y-1, pos.Y
	}

	return []Position{
		{X: pos.X, Y: pos.Y - 1},
		{X: pos.X, Y: pos.Y + 1},
		{X: pos.X - 1, Y: lo},
		{X: pos.X - 1, Y: hi},
		{X: pos.X + 1, Y: lo},
		{X: pos.X + 1, Y: hi},
	}
}

// IsAdjacent returns true if a and b are neighbors
func IsAdjacent(a, b Position) bool {
	for _, n := range Neighbors(a) {
		if n == b {
			return true
		}
	}
	return false
}
