package board

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New(testutil.NopLogger())
}

// Layout tests

func (s *ServiceSuite) TestEveryModeHasALayout() {
	for _, mode := range model.LevelModes() {
		l, err := s.service.Layout(mode)
		s.Require().NoError(err, "mode %s", mode)
		s.Equal(mode, l.Mode)
		s.NotEmpty(l.Name)
	}
}

func (s *ServiceSuite) TestLayoutUnknownMode() {
	_, err := s.service.Layout("nonexistent")
	s.ErrorIs(err, model.ErrUnknownLevel)
}

// NewBoard tests

func (s *ServiceSuite) TestNewBoardPlayableCellCounts() {
	expected := map[model.LevelMode]int{
		model.LevelWelcome: 25,
		model.LevelHexagon: 37,
		model.LevelMoat:    45,
		model.LevelPit:     54,
	}

	for mode, playable := range expected {
		board, err := s.service.NewBoard(mode)
		s.Require().NoError(err)
		s.Len(board.EmptyCells(), playable, "mode %s", mode)
		s.Empty(board.OccupiedCells())
	}
}

func (s *ServiceSuite) TestNewBoardHexagonCorners() {
	board, err := s.service.NewBoard(model.LevelHexagon)
	s.Require().NoError(err)

	s.True(board.Cell(0, 0).Void)
	s.True(board.Cell(6, 6).Void)
	s.False(board.Cell(3, 0).Void)
	s.False(board.Cell(3, 6).Void)
	s.False(board.Cell(3, 3).Void)
}

func (s *ServiceSuite) TestNewBoardMoatHasBridges() {
	board, err := s.service.NewBoard(model.LevelMoat)
	s.Require().NoError(err)

	s.False(board.Cell(4, 1).Void)
	s.False(board.Cell(4, 7).Void)
	s.True(board.Cell(5, 2).Void)
	s.False(board.Cell(4, 4).Void)
}

func (s *ServiceSuite) TestNewBoardPitCentreIsVoid() {
	board, err := s.service.NewBoard(model.LevelPit)
	s.Require().NoError(err)

	s.True(board.Cell(4, 4).Void)
	for _, n := range board.NeighborCells(model.Position{X: 4, Y: 2}) {
		s.NotEqual(model.Position{X: 4, Y: 3}, n.Position)
	}
}

func (s *ServiceSuite) TestNewBoardsAreIndependent() {
	a, err := s.service.NewBoard(model.LevelWelcome)
	s.Require().NoError(err)
	b, err := s.service.NewBoard(model.LevelWelcome)
	s.Require().NoError(err)

	s.Require().NoError(a.Place(model.Position{X: 0, Y: 0}, model.NewPiece(0), 0))
	s.Empty(b.OccupiedCells())
}

func (s *ServiceSuite) TestNewBoardUnknownMode() {
	_, err := s.service.NewBoard("nonexistent")
	s.ErrorIs(err, model.ErrUnknownLevel)
}

// ValidatePlacement tests

func (s *ServiceSuite) TestValidatePlacement() {
	board, err := s.service.NewBoard(model.LevelHexagon)
	s.Require().NoError(err)
	s.Require().NoError(board.Place(model.Position{X: 3, Y: 3}, model.NewPiece(0), 0))

	s.NoError(s.service.ValidatePlacement(board, model.Position{X: 3, Y: 2}))
	s.ErrorIs(s.service.ValidatePlacement(board, model.Position{X: 3, Y: 3}), model.ErrInvalidPlacement)
	s.ErrorIs(s.service.ValidatePlacement(board, model.Position{X: 0, Y: 0}), model.ErrInvalidPlacement)
	s.ErrorIs(s.service.ValidatePlacement(board, model.Position{X: -1, Y: 2}), model.ErrInvalidPlacement)
}

// IsFull tests

func (s *ServiceSuite) TestIsFull() {
	board, err := model.NewBoard(2, 1)
	s.Require().NoError(err)
	s.False(s.service.IsFull(board))

	s.Require().NoError(board.Place(model.Position{X: 0, Y: 0}, model.NewPiece(0), 0))
	s.Require().NoError(board.Cell(1, 0).SetVoid(true))
	s.True(s.service.IsFull(board))
}
