package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/hexmatch-go/internal/api/ws"
	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/services/board"
	"github.com/mcoot/hexmatch-go/internal/services/bot"
	"github.com/mcoot/hexmatch-go/internal/services/game"
	"github.com/mcoot/hexmatch-go/internal/web/middleware"
	"github.com/mcoot/hexmatch-go/internal/web/templates/layout"
	"github.com/mcoot/hexmatch-go/internal/web/templates/pages"
)

// GameHandler handles game pages and actions
type GameHandler struct {
	gameController game.ControllerInterface
	boardService   *board.Service
	botService     bot.ServiceInterface
	hubManager     *ws.HubManager
	logger         *slog.Logger
}

// NewGameHandler creates a new GameHandler. Moves made here are published to
// hubManager's watchers when it is non-nil, and the bot button only shows when
// botService is non-nil.
func NewGameHandler(gameController game.ControllerInterface, boardService *board.Service, botService bot.ServiceInterface, hubManager *ws.HubManager, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		boardService:   boardService,
		botService:     botService,
		hubManager:     hubManager,
		logger:         logger,
	}
}

// Create starts a game from the home page form
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	mode := model.LevelMode(r.FormValue("mode"))
	if mode == "" {
		mode = model.LevelWelcome
	}

	g, err := h.gameController.NewGame(r.Context(), mode)
	if err != nil {
		middleware.SetFlash(w, "error", flashFor(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, gamePath(g.ID), http.StatusSeeOther)
}

// View renders the game page
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	pageData := layout.PageData{Title: "Game", Flash: middleware.GetFlash(r.Context())}

	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if errors.Is(err, model.ErrGameNotFound) {
		render(w, r, http.StatusNotFound, pages.NotFound(pageData, "That game does not exist or was abandoned."))
		return
	}
	if err != nil {
		h.logger.Error("failed to load game",
			slog.String("game_id", string(gameID(r))),
			slog.String("error", err.Error()))
		render(w, r, http.StatusInternalServerError, pages.ErrorPage(pageData, "Error", "The game could not be loaded."))
		return
	}

	levelName := string(g.Mode)
	if level, err := h.boardService.Layout(g.Mode); err == nil {
		levelName = level.Name
	}

	render(w, r, http.StatusOK, pages.Game(pages.GameData{
		PageData:   pageData,
		Game:       g,
		LevelName:  levelName,
		BotEnabled: h.botService != nil,
	}))
}

// Place handles the place form on an empty cell
func (h *GameHandler) Place(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.gameController.Place)
}

// Collect handles the collect form on a collectible piece
func (h *GameHandler) Collect(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.gameController.Collect)
}

// Abandon deletes the game and returns to the home page
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)

	ev, err := h.gameController.AbandonGame(r.Context(), id)
	if err != nil {
		middleware.SetFlash(w, "error", flashFor(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if h.hubManager != nil {
		h.hubManager.Publish(id, []model.Event{*ev})
	}

	middleware.SetFlash(w, "info", "Game abandoned")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// AutoPlay lets the greedy bot take one turn
func (h *GameHandler) AutoPlay(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	back := gamePath(id)

	if h.botService == nil {
		http.NotFound(w, r)
		return
	}

	actions, err := h.botService.Play(r.Context(), id, model.BotStrategyGreedy, 1)
	if err != nil {
		middleware.SetFlash(w, "error", flashFor(err))
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	for _, a := range actions {
		if h.hubManager != nil {
			h.hubManager.Publish(id, a.Result.Events)
		}
		middleware.SetFlash(w, "info", "The bot played ("+a.Position.String()+") for "+strconv.Itoa(a.Result.PointsAwarded)+" points")
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

type cellAction func(ctx context.Context, id model.GameID, pos model.Position) (*model.TurnResult, error)

func (h *GameHandler) act(w http.ResponseWriter, r *http.Request, action cellAction) {
	id := gameID(r)
	back := gamePath(id)

	pos, ok := formPosition(r)
	if !ok {
		middleware.SetFlash(w, "error", "Invalid cell")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	result, err := action(r.Context(), id, pos)
	if err != nil {
		middleware.SetFlash(w, "error", flashFor(err))
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	if h.hubManager != nil {
		h.hubManager.Publish(id, result.Events)
	}
	if result.Merge != nil && result.Merge.Merged() {
		middleware.SetFlash(w, "info", "Merged for "+strconv.Itoa(result.PointsAwarded)+" points!")
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func formPosition(r *http.Request) (model.Position, bool) {
	if err := r.ParseForm(); err != nil {
		return model.Position{}, false
	}
	x, errX := strconv.Atoi(r.FormValue("x"))
	y, errY := strconv.Atoi(r.FormValue("y"))
	if errX != nil || errY != nil {
		return model.Position{}, false
	}
	return model.Position{X: x, Y: y}, true
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

func gamePath(id model.GameID) string {
	return "/games/" + string(id)
}
