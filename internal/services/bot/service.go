package bot

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/mcoot/hexmatch-go/internal/dependencies/random"
	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/services/game"
	"github.com/mcoot/hexmatch-go/internal/services/merge"
)

// MaxBotIterations is a safety limit on the turns a single Play call takes
const MaxBotIterations = 1000

// BotAction is one placement made by a bot
type BotAction struct {
	Position model.Position
	Result   *model.TurnResult
}

// Service plays turns on behalf of the player
type Service struct {
	gameController game.ControllerInterface
	strategies     map[string]Strategy
	logger         *slog.Logger
}

// NewService creates a new bot Service
func NewService(gameController game.ControllerInterface, strategies map[string]Strategy, logger *slog.Logger) *Service {
	return &Service{
		gameController: gameController,
		strategies:     strategies,
		logger:         logger.With(slog.String("component", "bot-service")),
	}
}

// DefaultStrategies returns every built-in strategy keyed by name
func DefaultStrategies(rnd random.Random, resolver *merge.Resolver) map[string]Strategy {
	return map[string]Strategy{
		model.BotStrategyRandom: NewRandomStrategy(rnd),
		model.BotStrategyGreedy: NewGreedyStrategy(resolver),
	}
}

// Strategies returns the registered strategy names, sorted
func (s *Service) Strategies() []string {
	names := make([]string, 0, len(s.strategies))
	for name := range s.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Suggest returns the cell strategy would place the current piece on
func (s *Service) Suggest(ctx context.Context, gameID model.GameID, strategy string) (model.Position, error) {
	st, ok := s.strategies[strategy]
	if !ok {
		return model.Position{}, model.ErrUnknownStrategy
	}

	g, err := s.gameController.GetGame(ctx, gameID)
	if err != nil {
		return model.Position{}, err
	}
	if g.IsOver() {
		return model.Position{}, model.ErrGameOver
	}

	pos, ok := st.ChoosePosition(g)
	if !ok {
		return model.Position{}, model.ErrInvalidPlacement
	}
	return pos, nil
}

// Play places up to turns pieces using strategy, stopping early when the game
// ends. It returns every action taken so handlers can broadcast the events,
// including the actions completed before an error.
func (s *Service) Play(ctx context.Context, gameID model.GameID, strategy string, turns int) ([]BotAction, error) {
	if _, ok := s.strategies[strategy]; !ok {
		return nil, model.ErrUnknownStrategy
	}
	turns = min(max(turns, 1), MaxBotIterations)

	var actions []BotAction
	for range turns {
		pos, err := s.Suggest(ctx, gameID, strategy)
		if err != nil {
			if errors.Is(err, model.ErrGameOver) && len(actions) > 0 {
				break
			}
			return actions, err
		}

		result, err := s.gameController.Place(ctx, gameID, pos)
		if err != nil {
			return actions, err
		}
		actions = append(actions, BotAction{Position: pos, Result: result})

		if result.Phase == model.PhaseGameOver {
			break
		}
	}

	s.logger.Info("bot played",
		slog.String("game_id", string(gameID)),
		slog.String("strategy", strategy),
		slog.Int("turns", len(actions)),
	)

	return actions, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Strategies() []string
	Suggest(ctx context.Context, gameID model.GameID, strategy string) (model.Position, error)
	Play(ctx context.Context, gameID model.GameID, strategy string, turns int) ([]BotAction, error)
}

var _ ServiceInterface = (*Service)(nil)
