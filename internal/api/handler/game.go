package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/hexmatch-go/internal/api/request"
	"github.com/mcoot/hexmatch-go/internal/api/response"
	"github.com/mcoot/hexmatch-go/internal/api/ws"
	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController game.ControllerInterface
	hubManager     *ws.HubManager
	logger         *slog.Logger
}

// NewGameHandler creates a new game handler. hubManager may be nil, in which
// case no events are streamed.
func NewGameHandler(gameController game.ControllerInterface, hubManager *ws.HubManager, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		hubManager:     hubManager,
		logger:         logger,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	mode := model.LevelWelcome
	if req.Mode != "" {
		mode = model.LevelMode(req.Mode)
	}

	g, err := h.gameController.NewGame(r.Context(), mode)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(g))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Place handles POST /api/v1/games/{id}/place
func (h *GameHandler) Place(w http.ResponseWriter, r *http.Request) {
	pos, ok := decodePosition(w, r)
	if !ok {
		return
	}

	id := gameID(r)
	turn, err := h.gameController.Place(r.Context(), id, pos)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.respondWithTurn(w, r, id, turn)
}

// Collect handles POST /api/v1/games/{id}/collect
func (h *GameHandler) Collect(w http.ResponseWriter, r *http.Request) {
	pos, ok := decodePosition(w, r)
	if !ok {
		return
	}

	id := gameID(r)
	turn, err := h.gameController.Collect(r.Context(), id, pos)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.respondWithTurn(w, r, id, turn)
}

// Abandon handles DELETE /api/v1/games/{id}
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)

	ev, err := h.gameController.AbandonGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.hubManager != nil {
		h.hubManager.Publish(id, []model.Event{*ev})
	}

	response.NoContent(w)
}

// Events handles GET /api/v1/games/{id}/events by upgrading to a websocket
// that receives every event the game emits from then on
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	if h.hubManager == nil {
		WriteError(w, NewInvalidRequestError("Event streaming is not enabled"))
		return
	}

	id := gameID(r)
	if _, err := h.gameController.GetGame(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	ws.Serve(w, r, h.hubManager.GetOrCreateHub(id), h.logger)
}

func (h *GameHandler) respondWithTurn(w http.ResponseWriter, r *http.Request, id model.GameID, turn *model.TurnResult) {
	if h.hubManager != nil {
		h.hubManager.Publish(id, turn.Events)
	}

	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TurnResultFromModel(turn, g))
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

func decodePosition(w http.ResponseWriter, r *http.Request) (model.Position, bool) {
	var req request.PositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return model.Position{}, false
	}
	if req.X == nil || req.Y == nil {
		WriteError(w, NewInvalidRequestError("x and y are required"))
		return model.Position{}, false
	}
	return model.Position{X: *req.X, Y: *req.Y}, true
}
