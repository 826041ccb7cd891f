package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/hexmatch-go/internal/api/handler"
	"github.com/mcoot/hexmatch-go/internal/api/middleware"
	"github.com/mcoot/hexmatch-go/internal/api/ws"
	"github.com/mcoot/hexmatch-go/internal/services/bot"
	"github.com/mcoot/hexmatch-go/internal/services/game"
	"github.com/mcoot/hexmatch-go/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController game.ControllerInterface
	StatsService   stats.ServiceInterface
	BotService     bot.ServiceInterface // Optional; nil disables hints and autoplay
	HubManager     *ws.HubManager // Optional; nil disables the event stream
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.HubManager, cfg.Logger)
	statsHandler := handler.NewStatsHandler(cfg.StatsService)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Game routes
	games := api.PathPrefix("/games").Subrouter()
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Abandon).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/place", gameHandler.Place).Methods(http.MethodPost)
	games.HandleFunc("/{id}/collect", gameHandler.Collect).Methods(http.MethodPost)
	games.HandleFunc("/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	if cfg.BotService != nil {
		botHandler := handler.NewBotHandler(cfg.BotService, cfg.GameController, cfg.HubManager, cfg.Logger)
		games.HandleFunc("/{id}/hint", botHandler.Hint).Methods(http.MethodGet)
		games.HandleFunc("/{id}/autoplay", botHandler.AutoPlay).Methods(http.MethodPost)
	}

	api.HandleFunc("/stats", statsHandler.List).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
