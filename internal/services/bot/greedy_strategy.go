package bot

import (
	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/services/merge"
)

// GreedyStrategy places where the hand piece absorbs the most pieces, taking
// the earliest cell in board order on a tie. Without any merge it takes the
// first empty cell.
type GreedyStrategy struct {
	resolver *merge.Resolver
}

// NewGreedyStrategy creates a new GreedyStrategy
func NewGreedyStrategy(resolver *merge.Resolver) *GreedyStrategy {
	return &GreedyStrategy{resolver: resolver}
}

// ChoosePosition previews a merge on every empty cell and returns the best one
func (s *GreedyStrategy) ChoosePosition(game *model.Game) (model.Position, bool) {
	empty := game.Board.EmptyCells()
	if len(empty) == 0 {
		return model.Position{}, false
	}

	piece := handPiece(game)
	best := empty[0].Position
	bestCount := 0

	for _, c := range empty {
		pieces, _ := s.resolver.WouldMergeWith(game.Board, c.Position, piece)
		if len(pieces) > bestCount {
			best = c.Position
			bestCount = len(pieces)
		}
	}

	return best, true
}
