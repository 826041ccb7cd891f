package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/hexmatch-go/internal/api/ws"
	"github.com/mcoot/hexmatch-go/internal/services/board"
	"github.com/mcoot/hexmatch-go/internal/services/bot"
	"github.com/mcoot/hexmatch-go/internal/services/game"
	"github.com/mcoot/hexmatch-go/internal/services/stats"
	"github.com/mcoot/hexmatch-go/internal/web/handler"
	"github.com/mcoot/hexmatch-go/internal/web/middleware"
	"github.com/mcoot/hexmatch-go/internal/web/templates/layout"
	"github.com/mcoot/hexmatch-go/internal/web/templates/pages"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController game.ControllerInterface
	BoardService   *board.Service
	StatsService   stats.ServiceInterface
	BotService     bot.ServiceInterface // Optional; enables the bot button on the game page
	HubManager     *ws.HubManager // Optional; moves are streamed to API watchers when set
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Apply global middleware to all routes
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Flash())

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.BoardService)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.BoardService, cfg.BotService, cfg.HubManager, cfg.Logger)
	statsHandler := handler.NewStatsHandler(cfg.StatsService)

	r.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	r.HandleFunc("/stats", statsHandler.View).Methods(http.MethodGet)

	// Game routes
	r.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/games/{id}", gameHandler.View).Methods(http.MethodGet)
	r.HandleFunc("/games/{id}/place", gameHandler.Place).Methods(http.MethodPost)
	r.HandleFunc("/games/{id}/collect", gameHandler.Collect).Methods(http.MethodPost)
	r.HandleFunc("/games/{id}/abandon", gameHandler.Abandon).Methods(http.MethodPost)
	r.HandleFunc("/games/{id}/autoplay", gameHandler.AutoPlay).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_ = pages.NotFound(layout.PageData{Title: "Not found"}, "There is nothing at "+req.URL.Path+".").Render(req.Context(), w)
	})

	return r
}
