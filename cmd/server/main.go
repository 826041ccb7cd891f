package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcoot/hexmatch-go/internal/api"
	"github.com/mcoot/hexmatch-go/internal/config"
	"github.com/mcoot/hexmatch-go/internal/factory"
	"github.com/mcoot/hexmatch-go/internal/web"
)

// Hubs whose watchers all disconnected are dropped this often
const hubCleanupInterval = time.Minute

func main() {
	settings, err := config.Load(".env")
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: settings.LogLevel,
	}))
	slog.SetDefault(logger)

	// Create application factory
	app, err := factory.New(factory.ConfigFromSettings(settings, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		StatsService:   app.StatsService,
		BotService:     app.BotService,
		HubManager:     app.HubManager,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		BoardService:   app.BoardService,
		StatsService:   app.StatsService,
		BotService:     app.BotService,
		HubManager:     app.HubManager,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = settings.Host
	serverConfig.Port = settings.Port
	server := api.NewServer(mux, serverConfig, logger)

	// Hijacked websocket connections are not closed by Shutdown
	server.OnShutdown(app.HubManager.Close)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	go app.HubManager.RunCleanup(ctx, hubCleanupInterval)

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", settings.StorageType),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			_ = app.Close()
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
		}
	}

	if err := app.StatsService.ReportLeaderboards(context.Background()); err != nil {
		logger.Warn("failed to report leaderboards", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
