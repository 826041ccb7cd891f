package merge

import (
	"log/slog"

	"github.com/mcoot/hexmatch-go/internal/model"
)

// Resolver finds and applies merges on a board
type Resolver struct {
	logger *slog.Logger
}

// New creates a new Resolver
func New(logger *slog.Logger) *Resolver {
	return &Resolver{
		logger: logger,
	}
}

// WouldMergeWith returns the pieces that would merge with piece if it sat at
// pos, in discovery order, along with the rank they share.
// The board and the piece are left unchanged.
func (r *Resolver) WouldMergeWith(board *model.Board, pos model.Position, piece *model.Piece) ([]*model.Piece, int) {
	cells, mergeValue := r.wouldMerge(board, pos, piece)
	return piecesOf(cells), mergeValue
}

// Resolve applies the merge for the piece that was just placed at pos.
// The earliest placed piece of the merged group survives and is upgraded; every
// other member is removed from the board. Without a merge the placed piece is
// simply settled.
func (r *Resolver) Resolve(board *model.Board, pos model.Position) (*model.MergeResult, error) {
	cell := board.CellAt(pos)
	if cell == nil || cell.Piece() == nil {
		return nil, model.ErrEmptyCell
	}
	placed := cell.Piece()

	cells, mergeValue := r.wouldMerge(board, pos, placed)

	result := &model.MergeResult{
		Position: pos,
		Placed:   placed,
		Members:  piecesOf(cells),
	}

	if len(cells) == 0 {
		placed.WasPlacedWithoutMerge()
		result.Survivor = placed
		result.SurvivorPosition = pos
		return result, nil
	}

	group := append([]*model.Cell{cell}, cells...)
	survivorCell := pickSurvivor(group)
	survivor := survivorCell.Piece()

	for _, c := range group {
		if c == survivorCell {
			continue
		}
		p, err := board.Remove(c.Position)
		if err != nil {
			return nil, err
		}
		result.Removed = append(result.Removed, model.RemovedPiece{
			Position: c.Position,
			Value:    p.Value(),
			Points:   p.PointValue(),
		})
	}

	survivor.WasPlacedWithMerge(mergeValue)

	result.MergeValue = mergeValue
	result.Survivor = survivor
	result.SurvivorPosition = survivorCell.Position

	r.logger.Debug("pieces merged",
		slog.String("placed_at", pos.String()),
		slog.String("survivor_at", survivorCell.Position.String()),
		slog.Int("merged_count", len(group)),
		slog.Int("new_value", survivor.Value()),
	)

	return result, nil
}

// FirstMerge scans occupied cells in board order and returns the first group of
// pieces that could merge with each other, including the piece it was found
// from. Returns nil when no merge is possible. The board is left unchanged.
func (r *Resolver) FirstMerge(board *model.Board) []*model.Piece {
	for _, c := range board.OccupiedCells() {
		cells, _ := r.wouldMerge(board, c.Position, c.Piece())
		if len(cells) > 0 {
			return append(piecesOf(cells), c.Piece())
		}
	}
	return nil
}

// wouldMerge discovers the cells connected to pos whose pieces share piece's
// value. The group merges into a piece one rank higher.
func (r *Resolver) wouldMerge(board *model.Board, pos model.Position, piece *model.Piece) ([]*model.Cell, int) {
	collected := map[*model.Piece]bool{piece: true}
	cells := component(board, []model.Position{pos}, piece, collected)
	if len(cells) == 0 {
		return nil, 0
	}
	return cells, piece.Value()
}

// component runs a breadth-first search from starts over occupied neighbors
// that piece can merge with
func component(board *model.Board, starts []model.Position, piece *model.Piece, collected map[*model.Piece]bool) []*model.Cell {
	var found []*model.Cell
	queue := append([]model.Position(nil), starts...)

	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]

		for _, c := range board.NeighborCells(pos) {
			other := c.Piece()
			if other == nil || collected[other] || !piece.CanMergeWith(other) {
				continue
			}
			collected[other] = true
			found = append(found, c)
			queue = append(queue, c.Position)
		}
	}

	return found
}

// pickSurvivor returns the cell whose piece was placed earliest, breaking ties
// by board order (x, then y)
func pickSurvivor(cells []*model.Cell) *model.Cell {
	best := cells[0]
	for _, c := range cells[1:] {
		a, b := c.Piece().Added, best.Piece().Added
		if a < b || (a == b && boardOrderLess(c.Position, best.Position)) {
			best = c
		}
	}
	return best
}

func boardOrderLess(a, b model.Position) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

func piecesOf(cells []*model.Cell) []*model.Piece {
	if len(cells) == 0 {
		return nil
	}
	pieces := make([]*model.Piece, len(cells))
	for i, c := range cells {
		pieces[i] = c.Piece()
	}
	return pieces
}
