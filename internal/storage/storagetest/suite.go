// Package storagetest holds the behaviour every storage backend must share.
// Backend packages embed Suite in their own test suites.
package storagetest

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/storage"
)

// Suite runs the shared storage tests against Storage, which the embedding
// suite must set in its SetupTest
type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

// NewGame builds a small game with a void cell, a board piece and a hand piece
func (s *Suite) NewGame(id model.GameID) *model.Game {
	board, err := model.NewBoard(3, 2)
	s.Require().NoError(err)
	s.Require().NoError(board.Cell(2, 1).SetVoid(true))
	s.Require().NoError(board.Place(model.Position{X: 1, Y: 0}, model.NewPiece(2), 0))

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.Game{
		ID:           id,
		Mode:         model.LevelWelcome,
		Phase:        model.PhaseAwaitingPlacement,
		Board:        board,
		CurrentPiece: model.NewPiece(1),
		Score:        10,
		Turn:         1,
		AddedCounter: 1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Game tests

func (s *Suite) TestSaveAndGetGame() {
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, s.NewGame("game-1")))

	retrieved, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.GameID("game-1"), retrieved.ID)
	s.Equal(10, retrieved.Score)
	s.True(retrieved.Board.Cell(2, 1).Void)
	s.Equal(2, retrieved.Board.Cell(1, 0).Piece().Value())
	s.Equal(1, retrieved.CurrentPiece.Value())
}

func (s *Suite) TestGetGameNotFound() {
	_, err := s.Storage.GetGame(s.Ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *Suite) TestSaveGameOverwrites() {
	game := s.NewGame("game-1")
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	game.Score = 500
	game.Phase = model.PhaseGameOver
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	retrieved, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(500, retrieved.Score)
	s.Equal(model.PhaseGameOver, retrieved.Phase)
}

func (s *Suite) TestGetGameReturnsIndependentCopy() {
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, s.NewGame("game-1")))

	first, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	_, err = first.Board.Remove(model.Position{X: 1, Y: 0})
	s.Require().NoError(err)

	second, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.NotNil(second.Board.Cell(1, 0).Piece())
}

func (s *Suite) TestDeleteGame() {
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, s.NewGame("game-1")))

	s.Require().NoError(s.Storage.DeleteGame(s.Ctx, "game-1"))

	_, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *Suite) TestDeleteMissingGameSucceeds() {
	s.NoError(s.Storage.DeleteGame(s.Ctx, "nonexistent"))
}

// Stats tests

func (s *Suite) TestGetStatDefaultsToZero() {
	v, err := s.Storage.GetStat(s.Ctx, "piece_value_0")
	s.Require().NoError(err)
	s.Equal(int64(0), v)
}

func (s *Suite) TestIncrementStat() {
	v, err := s.Storage.IncrementStat(s.Ctx, "piece_value_0", 1)
	s.Require().NoError(err)
	s.Equal(int64(1), v)

	v, err = s.Storage.IncrementStat(s.Ctx, "piece_value_0", 4)
	s.Require().NoError(err)
	s.Equal(int64(5), v)

	v, err = s.Storage.GetStat(s.Ctx, "piece_value_0")
	s.Require().NoError(err)
	s.Equal(int64(5), v)
}

func (s *Suite) TestIncrementStatIsAtomic() {
	const workers, perWorker = 8, 25

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_, _ = s.Storage.IncrementStat(s.Ctx, "games_played", 1)
			}
		}()
	}
	wg.Wait()

	v, err := s.Storage.GetStat(s.Ctx, "games_played")
	s.Require().NoError(err)
	s.Equal(int64(workers*perWorker), v)
}

func (s *Suite) TestSetStat() {
	_, err := s.Storage.IncrementStat(s.Ctx, "piece_collected", 3)
	s.Require().NoError(err)

	s.Require().NoError(s.Storage.SetStat(s.Ctx, "piece_collected", 42))

	v, err := s.Storage.GetStat(s.Ctx, "piece_collected")
	s.Require().NoError(err)
	s.Equal(int64(42), v)
}

func (s *Suite) TestMaxStat() {
	v, err := s.Storage.MaxStat(s.Ctx, "highscore", 100)
	s.Require().NoError(err)
	s.Equal(int64(100), v)

	v, err = s.Storage.MaxStat(s.Ctx, "highscore", 50)
	s.Require().NoError(err)
	s.Equal(int64(100), v)

	v, err = s.Storage.MaxStat(s.Ctx, "highscore", 250)
	s.Require().NoError(err)
	s.Equal(int64(250), v)
}

func (s *Suite) TestGetStats() {
	_, err := s.Storage.IncrementStat(s.Ctx, "piece_value_1", 2)
	s.Require().NoError(err)
	s.Require().NoError(s.Storage.SetStat(s.Ctx, "highscore", 900))

	stats, err := s.Storage.GetStats(s.Ctx)
	s.Require().NoError(err)
	s.Equal(map[string]int64{
		"piece_value_1": 2,
		"highscore":     900,
	}, stats)
}

func (s *Suite) TestGetStatsEmpty() {
	stats, err := s.Storage.GetStats(s.Ctx)
	s.Require().NoError(err)
	s.Empty(stats)
}
