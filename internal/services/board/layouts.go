package board

import "github.com/mcoot/hexmatch-go/internal/model"

func builtinLayouts() []*Layout {
	return []*Layout{
		{
			Mode:   model.LevelWelcome,
			Name:   "Tutorial",
			Width:  5,
			Height: 5,
		},
		{
			Mode:   model.LevelHexagon,
			Name:   "Beginner",
			Width:  7,
			Height: 7,
			Void: voidWhere(7, 7, model.Position{X: 3, Y: 3}, func(_ model.Position, d int) bool {
				return d > 3
			}),
		},
		{
			Mode:   model.LevelMoat,
			Name:   "The Moat",
			Width:  9,
			Height: 9,
			// Ring of water around the middle, crossed by bridges in the centre column
			Void: voidWhere(9, 9, model.Position{X: 4, Y: 4}, func(p model.Position, d int) bool {
				return d > 4 || (d == 3 && p.X != 4)
			}),
		},
		{
			Mode:   model.LevelPit,
			Name:   "The Pit",
			Width:  9,
			Height: 9,
			Void: voidWhere(9, 9, model.Position{X: 4, Y: 4}, func(_ model.Position, d int) bool {
				return d > 4 || d <= 1
			}),
		},
	}
}

// voidWhere returns the positions of a width x height grid for which void
// reports true, given each position's step distance from center
func voidWhere(width, height int, center model.Position, void func(model.Position, int) bool) []model.Position {
	dist := distances(width, height, center)

	var result []model.Position
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			pos := model.Position{X: x, Y: y}
			if void(pos, dist[pos]) {
				result = append(result, pos)
			}
		}
	}
	return result
}

// distances walks the grid breadth-first from center and returns the number of
// steps to every position
func distances(width, height int, center model.Position) map[model.Position]int {
	inBounds := func(p model.Position) bool {
		return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
	}

	dist := map[model.Position]int{center: 0}
	queue := []model.Position{center}
	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]
		for _, n := range model.Neighbors(pos) {
			if _, seen := dist[n]; seen || !inBounds(n) {
				continue
			}
			dist[n] = dist[pos] + 1
			queue = append(queue, n)
		}
	}
	return dist
}
