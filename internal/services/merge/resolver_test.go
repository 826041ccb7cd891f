package merge

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/testutil"
)

type ResolverSuite struct {
	suite.Suite
	resolver *Resolver
	seq      int
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.resolver = New(testutil.NopLogger())
	s.seq = 0
}

func (s *ResolverSuite) newBoard(width, height int) *model.Board {
	board, err := model.NewBoard(width, height)
	s.Require().NoError(err)
	return board
}

func (s *ResolverSuite) place(board *model.Board, x, y, value int) *model.Piece {
	piece := model.NewPiece(value)
	s.Require().NoError(board.Place(model.Position{X: x, Y: y}, piece, s.seq))
	s.seq++
	return piece
}

// Resolve tests

func (s *ResolverSuite) TestResolveTwoAdjacentPieces() {
	board := s.newBoard(3, 1)
	first := s.place(board, 0, 0, 0)
	s.place(board, 1, 0, 0)
	emptyBefore := len(board.EmptyCells())

	result, err := s.resolver.Resolve(board, model.Position{X: 1, Y: 0})
	s.Require().NoError(err)

	s.True(result.Merged())
	s.Equal(2, result.GroupSize())
	s.Same(first, result.Survivor)
	s.Equal(model.Position{X: 0, Y: 0}, result.SurvivorPosition)
	s.Equal(1, first.Value())
	s.Equal(emptyBefore+1, len(board.EmptyCells()))
	s.Nil(board.Cell(1, 0).Piece())
}

func (s *ResolverSuite) TestResolveWithoutMerge() {
	board := s.newBoard(3, 1)
	s.place(board, 0, 0, 0)
	placed := s.place(board, 1, 0, 1)
	placed.SkipTurnCounter = 0
	placed.Caption = "next"

	result, err := s.resolver.Resolve(board, model.Position{X: 1, Y: 0})
	s.Require().NoError(err)

	s.False(result.Merged())
	s.Same(placed, result.Survivor)
	s.Equal(1, placed.Value())
	s.Equal(placed.SkipTurnsOnPlace, placed.SkipTurnCounter)
	s.Empty(placed.Caption)
	s.Len(board.OccupiedCells(), 2)
}

func (s *ResolverSuite) TestResolveMergesWholeChain() {
	board := s.newBoard(3, 5)
	oldest := s.place(board, 0, 0, 1)
	s.place(board, 0, 1, 1)
	s.place(board, 0, 2, 1)
	s.place(board, 0, 3, 1)

	result, err := s.resolver.Resolve(board, model.Position{X: 0, Y: 3})
	s.Require().NoError(err)

	s.Len(result.Members, 3)
	s.Len(result.Removed, 3)
	s.Same(oldest, result.Survivor)
	s.Equal(2, oldest.Value())
	s.Len(board.OccupiedCells(), 1)
	s.Same(oldest, board.Cell(0, 0).Piece())
}

func (s *ResolverSuite) TestResolveLeavesNextRankAlone() {
	board := s.newBoard(4, 1)
	oldest := s.place(board, 0, 0, 0)
	s.place(board, 1, 0, 0)
	square := s.place(board, 3, 0, 1)
	placed := s.place(board, 2, 0, 0)

	result, err := s.resolver.Resolve(board, model.Position{X: 2, Y: 0})
	s.Require().NoError(err)

	s.Equal(3, result.GroupSize())
	s.Equal(0, result.MergeValue)
	s.Same(oldest, result.Survivor)
	s.Equal(1, oldest.Value())
	s.Equal(0, placed.Value(), "removed pieces keep their value")

	// The square next to the chain takes no part in the merge
	s.Len(board.OccupiedCells(), 2)
	s.Same(square, board.Cell(3, 0).Piece())
	s.Equal(1, square.Value())
}

func (s *ResolverSuite) TestResolveGroupSizeWithoutMerge() {
	board := s.newBoard(3, 1)
	s.place(board, 0, 0, 0)

	result, err := s.resolver.Resolve(board, model.Position{X: 0, Y: 0})
	s.Require().NoError(err)
	s.Equal(1, result.GroupSize())
}

func (s *ResolverSuite) TestResolveCapsAtMaxValue() {
	board := s.newBoard(3, 1)
	survivor := s.place(board, 0, 0, model.MaxPieceValue-1)
	s.place(board, 1, 0, model.MaxPieceValue-1)

	result, err := s.resolver.Resolve(board, model.Position{X: 1, Y: 0})
	s.Require().NoError(err)

	s.True(result.Merged())
	s.Equal(model.MaxPieceValue, survivor.Value())
}

func (s *ResolverSuite) TestResolveNeverMergesMaxValue() {
	board := s.newBoard(3, 1)
	s.place(board, 0, 0, model.MaxPieceValue)
	s.place(board, 1, 0, model.MaxPieceValue)

	result, err := s.resolver.Resolve(board, model.Position{X: 1, Y: 0})
	s.Require().NoError(err)

	s.False(result.Merged())
	s.Len(board.OccupiedCells(), 2)
}

func (s *ResolverSuite) TestResolveIgnoresNonAdjacentPieces() {
	board := s.newBoard(3, 1)
	s.place(board, 0, 0, 0)
	s.place(board, 2, 0, 0)

	result, err := s.resolver.Resolve(board, model.Position{X: 2, Y: 0})
	s.Require().NoError(err)
	s.False(result.Merged())
}

func (s *ResolverSuite) TestResolveDoesNotCrossVoidCells() {
	board := s.newBoard(3, 1)
	s.Require().NoError(board.Cell(1, 0).SetVoid(true))
	s.place(board, 0, 0, 0)
	s.place(board, 2, 0, 0)

	result, err := s.resolver.Resolve(board, model.Position{X: 2, Y: 0})
	s.Require().NoError(err)
	s.False(result.Merged())
}

func (s *ResolverSuite) TestResolveEmptyCell() {
	board := s.newBoard(3, 1)

	_, err := s.resolver.Resolve(board, model.Position{X: 0, Y: 0})
	s.ErrorIs(err, model.ErrEmptyCell)

	_, err = s.resolver.Resolve(board, model.Position{X: 9, Y: 9})
	s.ErrorIs(err, model.ErrEmptyCell)
}

// WouldMergeWith tests

func (s *ResolverSuite) TestWouldMergeWithLeavesStateUnchanged() {
	board := s.newBoard(3, 3)
	s.place(board, 0, 0, 1)
	s.place(board, 0, 1, 0)
	piece := model.NewPiece(0)

	members, mergeValue := s.resolver.WouldMergeWith(board, model.Position{X: 0, Y: 2}, piece)

	s.Len(members, 1)
	s.Same(board.Cell(0, 1).Piece(), members[0])
	s.Equal(0, mergeValue)
	s.Equal(0, piece.Value())
	s.Equal(0, piece.OriginalValue)
	s.Len(board.OccupiedCells(), 2)
}

func (s *ResolverSuite) TestWouldMergeWithNothing() {
	board := s.newBoard(3, 3)
	s.place(board, 0, 0, 2)

	members, _ := s.resolver.WouldMergeWith(board, model.Position{X: 0, Y: 1}, model.NewPiece(0))
	s.Empty(members)
}

// FirstMerge tests

func (s *ResolverSuite) TestFirstMergeEmptyBoard() {
	s.Empty(s.resolver.FirstMerge(s.newBoard(4, 4)))
}

func (s *ResolverSuite) TestFirstMergeNoMergeablePairs() {
	board := s.newBoard(3, 2)
	s.place(board, 0, 0, 0)
	s.place(board, 0, 1, 1)
	s.place(board, 1, 0, 2)
	s.place(board, 1, 1, 3)

	s.Empty(s.resolver.FirstMerge(board))
}

func (s *ResolverSuite) TestFirstMergeReturnsPair() {
	board := s.newBoard(3, 2)
	a := s.place(board, 0, 0, 2)
	b := s.place(board, 0, 1, 2)
	s.place(board, 2, 1, 4)

	merged := s.resolver.FirstMerge(board)

	s.Len(merged, 2)
	s.ElementsMatch([]*model.Piece{a, b}, merged)
	s.Equal(2, a.Value())
	s.Equal(2, b.Value())
	s.Len(board.OccupiedCells(), 3)
}

func (s *ResolverSuite) TestFirstMergeIgnoresNextRankNeighbour() {
	board := s.newBoard(4, 1)
	a := s.place(board, 0, 0, 0)
	b := s.place(board, 1, 0, 0)
	s.place(board, 2, 0, 1)

	merged := s.resolver.FirstMerge(board)

	s.Len(merged, 2)
	s.ElementsMatch([]*model.Piece{a, b}, merged)
}

// pickSurvivor tests

func (s *ResolverSuite) TestPickSurvivorLowestAdded() {
	board := s.newBoard(3, 3)
	s.place(board, 0, 0, 0)
	s.place(board, 0, 1, 0)
	s.place(board, 1, 0, 0)
	board.Cell(1, 0).Piece().Added = -1

	survivor := pickSurvivor([]*model.Cell{board.Cell(0, 0), board.Cell(0, 1), board.Cell(1, 0)})
	s.Equal(model.Position{X: 1, Y: 0}, survivor.Position)
}

func (s *ResolverSuite) TestPickSurvivorTieBreaksByBoardOrder() {
	board := s.newBoard(3, 3)
	s.place(board, 1, 0, 0)
	s.place(board, 0, 2, 0)
	board.Cell(1, 0).Piece().Added = 7
	board.Cell(0, 2).Piece().Added = 7

	survivor := pickSurvivor([]*model.Cell{board.Cell(1, 0), board.Cell(0, 2)})
	s.Equal(model.Position{X: 0, Y: 2}, survivor.Position)
}
