package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/hexmatch-go/internal/api/ws"
	"github.com/mcoot/hexmatch-go/internal/config"
	"github.com/mcoot/hexmatch-go/internal/dependencies/clock"
	"github.com/mcoot/hexmatch-go/internal/dependencies/random"
	"github.com/mcoot/hexmatch-go/internal/services/board"
	"github.com/mcoot/hexmatch-go/internal/services/bot"
	"github.com/mcoot/hexmatch-go/internal/services/game"
	"github.com/mcoot/hexmatch-go/internal/services/merge"
	"github.com/mcoot/hexmatch-go/internal/services/stats"
	"github.com/mcoot/hexmatch-go/internal/storage"
	"github.com/mcoot/hexmatch-go/internal/storage/memory"
	redisstorage "github.com/mcoot/hexmatch-go/internal/storage/redis"
	sqlitestorage "github.com/mcoot/hexmatch-go/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = config.StorageMemory
	StorageTypeRedis  = config.StorageRedis
	StorageTypeSQLite = config.StorageSQLite
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	BoardService   *board.Service
	Resolver       *merge.Resolver
	StatsService   *stats.Service
	GameController *game.Controller
	BotService     *bot.Service
	HubManager     *ws.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLiteConfig holds database settings (optional if StorageType is "sqlite")
	SQLiteConfig *sqlitestorage.Config
	// Reporter receives leaderboard scores (optional, defaults to logging them)
	Reporter stats.Reporter
}

// ConfigFromSettings maps loaded settings onto a factory Config
func ConfigFromSettings(settings config.Config, logger *slog.Logger) Config {
	cfg := Config{
		Logger:      logger,
		StorageType: settings.StorageType,
	}
	switch settings.StorageType {
	case StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = settings.RedisURL
		cfg.RedisConfig = &redisCfg
	case StorageTypeSQLite:
		sqliteCfg := sqlitestorage.DefaultConfig()
		sqliteCfg.Path = settings.SQLitePath
		cfg.SQLiteConfig = &sqliteCfg
	}
	return cfg
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	reporter := cfg.Reporter
	if reporter == nil {
		reporter = stats.NewLogReporter(logger)
	}

	return newWithDependencies(store, clock.New(), random.New(), reporter, logger), nil
}

func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypeSQLite:
		sqliteCfg := sqlitestorage.DefaultConfig()
		if cfg.SQLiteConfig != nil {
			sqliteCfg = *cfg.SQLiteConfig
		}
		return sqlitestorage.New(sqliteCfg)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'sqlite'", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, reporter stats.Reporter, logger *slog.Logger) *App {
	boardService := board.New(logger)
	resolver := merge.New(logger)
	statsService := stats.New(store, reporter, logger)
	gameController := game.NewController(store, boardService, resolver, statsService, clk, rnd, logger)
	botService := bot.NewService(gameController, bot.DefaultStrategies(rnd, resolver), logger)
	hubManager := ws.NewHubManager(logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		BoardService:   boardService,
		Resolver:       resolver,
		StatsService:   statsService,
		GameController: gameController,
		BotService:     botService,
		HubManager:     hubManager,
	}
}

// Close releases the app's connections
func (a *App) Close() error {
	a.HubManager.Close()
	return a.Storage.Close()
}
