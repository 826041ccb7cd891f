package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeighborsEvenColumn(t *testing.T) {
	assert.Equal(t, []Position{
		{2, 2}, {2, 4},
		{1, 3}, {1, 4},
		{3, 3}, {3, 4},
	}, Neighbors(Position{X: 2, Y: 3}))
}

func TestNeighborsOddColumn(t *testing.T) {
	assert.Equal(t, []Position{
		{1, 2}, {1, 4},
		{0, 2}, {0, 3},
		{2, 2}, {2, 3},
	}, Neighbors(Position{X: 1, Y: 3}))
}

func TestNeighborsAreNotBoundsChecked(t *testing.T) {
	n := Neighbors(Position{X: 0, Y: 0})
	assert.Len(t, n, 6)
	assert.Contains(t, n, Position{X: -1, Y: 0})
	assert.Contains(t, n, Position{X: 0, Y: -1})
}

func TestAdjacencyIsSymmetric(t *testing.T) {
	for x := 0; x < 6; x++ {
		for y := 0; y < 6; y++ {
			p := Position{X: x, Y: y}
			for _, n := range Neighbors(p) {
				assert.True(t, IsAdjacent(n, p), "%v should be adjacent to %v", n, p)
			}
		}
	}
}

func TestAdjacentColumnsInFirstRow(t *testing.T) {
	assert.True(t, IsAdjacent(Position{X: 0, Y: 0}, Position{X: 1, Y: 0}))
	assert.True(t, IsAdjacent(Position{X: 1, Y: 0}, Position{X: 2, Y: 0}))
	assert.False(t, IsAdjacent(Position{X: 0, Y: 0}, Position{X: 2, Y: 0}))
	assert.False(t, IsAdjacent(Position{X: 1, Y: 1}, Position{X: 0, Y: 2}))
}
