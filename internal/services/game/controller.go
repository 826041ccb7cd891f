package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/hexmatch-go/internal/dependencies/clock"
	"github.com/mcoot/hexmatch-go/internal/dependencies/random"
	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/services/board"
	"github.com/mcoot/hexmatch-go/internal/services/merge"
	"github.com/mcoot/hexmatch-go/internal/services/stats"
	"github.com/mcoot/hexmatch-go/internal/storage"
)

// handWeights[v] is the relative chance of drawing a hand piece of value v
var handWeights = []int{60, 25, 10, 4, 1}

// Controller manages the turn state machine for single-player games
type Controller struct {
	storage      storage.Storage
	boardService *board.Service
	resolver     *merge.Resolver
	statsService *stats.Service
	clock        clock.Clock
	random       random.Random
	logger       *slog.Logger

	locks *gameLocks
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	resolver *merge.Resolver,
	statsService *stats.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:      storage,
		boardService: boardService,
		resolver:     resolver,
		statsService: statsService,
		clock:        clock,
		random:       random,
		logger:       logger,
		locks:        newGameLocks(),
	}
}

// NewGame starts a game on the board for mode with a fresh piece in hand
func (c *Controller) NewGame(ctx context.Context, mode model.LevelMode) (*model.Game, error) {
	b, err := c.boardService.NewBoard(mode)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:           model.GameID(c.random.ID()),
		Mode:         mode,
		Phase:        model.PhaseAwaitingPlacement,
		Board:        b,
		CurrentPiece: c.drawPiece(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.bumpStat(ctx, game.ID, model.StatGamesPlayed, 1)

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("mode", string(mode)),
	)

	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// Place puts the hand piece at pos and plays the turn through: merge, scoring,
// statistics, other pieces' turns, next hand piece and game-over detection.
// An invalid placement changes nothing. Turns on one game never interleave.
func (c *Controller) Place(ctx context.Context, gameID model.GameID, pos model.Position) (*model.TurnResult, error) {
	defer c.locks.lock(gameID)()

	game, err := c.loadPlayable(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err := c.boardService.ValidatePlacement(game.Board, pos); err != nil {
		return nil, err
	}

	piece := game.CurrentPiece
	if piece == nil {
		piece = c.drawPiece()
	}
	if err := game.Board.Place(pos, piece, game.NextSequence()); err != nil {
		return nil, err
	}
	game.CurrentPiece = nil
	game.Phase = model.PhasePlaced

	result, err := c.resolver.Resolve(game.Board, pos)
	if err != nil {
		return nil, err
	}
	game.Phase = model.PhaseMergeResolved

	now := c.clock.Now()
	turn := &model.TurnResult{
		GameID: game.ID,
		Merge:  result,
	}

	if result.Merged() {
		for _, removed := range result.Removed {
			turn.PointsAwarded += removed.Points
			turn.Events = append(turn.Events, c.event(game, model.EventRemoved, now, model.RemovedPayload{
				PiecePayload: model.PiecePayload{
					Position:    removed.Position,
					Value:       removed.Value,
					Description: model.DescribeValue(removed.Value),
				},
				MergedInto: result.SurvivorPosition,
			}))
		}
		if result.Survivor.Value() == model.MaxPieceValue {
			result.Survivor.IsCollectible = true
		}
		turn.Events = append(turn.Events, c.event(game, model.EventPlacedWithMerge, now,
			model.PiecePayloadFor(result.Survivor, result.SurvivorPosition)))
	} else {
		turn.Events = append(turn.Events, c.event(game, model.EventPlacedWithoutMerge, now,
			model.PiecePayloadFor(result.Survivor, result.SurvivorPosition)))
	}
	turn.PointsAwarded += result.Survivor.PointValue()
	turn.StatsKeys = append(turn.StatsKeys, result.Survivor.StatsKey())
	game.Score += turn.PointsAwarded

	turn.Acted = c.advanceTurns(game.Board, result)
	game.Phase = model.PhaseTurnsAdvanced

	game.Turn++
	game.CurrentPiece = c.drawPiece()

	turn.Events = append(turn.Events, c.event(game, model.EventTurnComplete, now, model.TurnCompletePayload{
		Turn:      game.Turn,
		Score:     game.Score,
		NextValue: game.CurrentPiece.Value(),
	}))

	if c.IsGameOver(game.Board) {
		game.Phase = model.PhaseGameOver
		turn.Events = append(turn.Events, c.event(game, model.EventGameOver, now, model.GameOverPayload{
			FinalScore: game.Score,
			Turns:      game.Turn,
		}))
	} else {
		game.Phase = model.PhaseAwaitingPlacement
	}
	game.UpdatedAt = now

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	for _, key := range turn.StatsKeys {
		c.bumpStat(ctx, game.ID, key, 1)
	}
	c.recordScore(ctx, game)

	c.logger.Info("piece placed",
		slog.String("game_id", string(game.ID)),
		slog.String("position", pos.String()),
		slog.Bool("merged", result.Merged()),
		slog.Int("points", turn.PointsAwarded),
		slog.Int("turn", game.Turn),
	)
	if game.IsOver() {
		c.logger.Info("game over",
			slog.String("game_id", string(game.ID)),
			slog.Int("final_score", game.Score),
			slog.Int("turns", game.Turn),
		)
	}

	turn.Turn = game.Turn
	turn.Phase = game.Phase
	turn.Score = game.Score
	return turn, nil
}

// Collect takes a collectible piece off the board and banks its points.
// Collecting does not use up the turn.
func (c *Controller) Collect(ctx context.Context, gameID model.GameID, pos model.Position) (*model.TurnResult, error) {
	defer c.locks.lock(gameID)()

	game, err := c.loadPlayable(ctx, gameID)
	if err != nil {
		return nil, err
	}

	cell := game.Board.CellAt(pos)
	if cell == nil || cell.Piece() == nil {
		return nil, model.ErrEmptyCell
	}
	if !cell.Piece().IsCollectible {
		return nil, model.ErrNotCollectible
	}

	piece, err := game.Board.Remove(pos)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	points := piece.PointValue()
	game.Score += points
	game.UpdatedAt = now

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.bumpStat(ctx, game.ID, model.StatPieceCollected, 1)
	c.recordScore(ctx, game)

	c.logger.Info("piece collected",
		slog.String("game_id", string(game.ID)),
		slog.String("position", pos.String()),
		slog.Int("points", points),
	)

	return &model.TurnResult{
		GameID:        game.ID,
		Turn:          game.Turn,
		Phase:         game.Phase,
		PointsAwarded: points,
		Score:         game.Score,
		StatsKeys:     []string{model.StatPieceCollected},
		Events: []model.Event{
			c.event(game, model.EventCollected, now, model.PiecePayloadFor(piece, pos)),
		},
	}, nil
}

// AbandonGame deletes a game and returns the event announcing it
func (c *Controller) AbandonGame(ctx context.Context, gameID model.GameID) (*model.Event, error) {
	defer c.locks.lock(gameID)()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err := c.storage.DeleteGame(ctx, gameID); err != nil {
		return nil, err
	}

	c.logger.Info("game abandoned",
		slog.String("game_id", string(gameID)),
		slog.Int("score", game.Score),
		slog.Int("turns", game.Turn),
	)

	ev := c.event(game, model.EventGameAbandoned, c.clock.Now(), nil)
	return &ev, nil
}

// IsGameOver returns true if no cell is free and no merge is possible
func (c *Controller) IsGameOver(b *model.Board) bool {
	return c.boardService.IsFull(b) && len(c.resolver.FirstMerge(b)) == 0
}

func (c *Controller) loadPlayable(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.IsOver() {
		return nil, model.ErrGameOver
	}
	return game, nil
}

// advanceTurns lets every piece that took no part in the placement take its
// turn, returning the positions of pieces that acted
func (c *Controller) advanceTurns(b *model.Board, result *model.MergeResult) []model.Position {
	var acted []model.Position
	for _, cell := range b.OccupiedCells() {
		p := cell.Piece()
		if p == result.Placed || p == result.Survivor {
			continue
		}
		if p.TakeTurn() {
			acted = append(acted, cell.Position)
		}
	}
	return acted
}

func (c *Controller) drawPiece() *model.Piece {
	p := model.NewPiece(c.random.Weighted(handWeights))
	p.Caption = p.Description()
	return p
}

func (c *Controller) event(game *model.Game, t model.EventType, at time.Time, payload any) model.Event {
	return model.Event{
		Type:      t,
		Timestamp: at,
		GameID:    game.ID,
		Payload:   payload,
	}
}

func (c *Controller) bumpStat(ctx context.Context, gameID model.GameID, key string, delta int64) {
	if _, err := c.statsService.Increment(ctx, key, delta); err != nil {
		c.logger.Warn("failed to update statistic",
			slog.String("game_id", string(gameID)),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

func (c *Controller) recordScore(ctx context.Context, game *model.Game) {
	if err := c.statsService.RecordScore(ctx, game.Mode, game.Score); err != nil {
		c.logger.Warn("failed to record high score",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	NewGame(ctx context.Context, mode model.LevelMode) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	Place(ctx context.Context, gameID model.GameID, pos model.Position) (*model.TurnResult, error)
	Collect(ctx context.Context, gameID model.GameID, pos model.Position) (*model.TurnResult, error)
	AbandonGame(ctx context.Context, gameID model.GameID) (*model.Event, error)
	IsGameOver(b *model.Board) bool
}

var _ ControllerInterface = (*Controller)(nil)
