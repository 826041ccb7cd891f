package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/hexmatch-go/internal/api/request"
	"github.com/mcoot/hexmatch-go/internal/api/response"
	"github.com/mcoot/hexmatch-go/internal/api/ws"
	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/services/bot"
	"github.com/mcoot/hexmatch-go/internal/services/game"
)

// BotHandler handles hint and autoplay endpoints
type BotHandler struct {
	botService     bot.ServiceInterface
	gameController game.ControllerInterface
	hubManager     *ws.HubManager
	logger         *slog.Logger
}

// NewBotHandler creates a new bot handler
func NewBotHandler(botService bot.ServiceInterface, gameController game.ControllerInterface, hubManager *ws.HubManager, logger *slog.Logger) *BotHandler {
	return &BotHandler{
		botService:     botService,
		gameController: gameController,
		hubManager:     hubManager,
		logger:         logger,
	}
}

// Hint handles GET /api/v1/games/{id}/hint?strategy=greedy
func (h *BotHandler) Hint(w http.ResponseWriter, r *http.Request) {
	strategy := r.URL.Query().Get("strategy")
	if strategy == "" {
		strategy = model.BotStrategyGreedy
	}

	pos, err := h.botService.Suggest(r.Context(), gameID(r), strategy)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Hint{Strategy: strategy, Position: pos})
}

// AutoPlay handles POST /api/v1/games/{id}/autoplay
func (h *BotHandler) AutoPlay(w http.ResponseWriter, r *http.Request) {
	var req request.AutoPlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.Turns < 0 || req.Turns > bot.MaxBotIterations {
		WriteError(w, NewInvalidRequestError("turns must be between 0 and 1000"))
		return
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = model.BotStrategyGreedy
	}

	id := gameID(r)
	actions, err := h.botService.Play(r.Context(), id, strategy, req.Turns)

	// Moves made before a failure are saved, so watchers still hear about them
	if h.hubManager != nil {
		for _, a := range actions {
			h.hubManager.Publish(id, a.Result.Events)
		}
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	moves := make([]response.Move, len(actions))
	for i, a := range actions {
		moves[i] = response.Move{
			Position:      a.Position,
			PointsAwarded: a.Result.PointsAwarded,
			Merge:         response.MergeFromModel(a.Result.Merge),
		}
	}

	response.JSON(w, http.StatusOK, response.AutoPlay{
		Strategy: strategy,
		Moves:    moves,
		Score:    g.Score,
		Phase:    string(g.Phase),
		Game:     response.GameFromModel(g),
	})
}
