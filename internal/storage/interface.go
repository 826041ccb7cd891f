package storage

import (
	"context"

	"github.com/mcoot/hexmatch-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// Statistics counters. Each update is atomic per key.
	IncrementStat(ctx context.Context, key string, delta int64) (int64, error)
	SetStat(ctx context.Context, key string, value int64) error
	// MaxStat raises the counter to value if value is larger and returns the
	// resulting counter
	MaxStat(ctx context.Context, key string, value int64) (int64, error)
	// GetStat returns 0 for a counter that has never been written
	GetStat(ctx context.Context, key string) (int64, error)
	GetStats(ctx context.Context) (map[string]int64, error)

	Close() error
}
