package memory

import (
	"context"
	"sync"

	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/snapshot"
	"github.com/mcoot/hexmatch-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Games are held as snapshots so callers never share board state.
type Storage struct {
	mu sync.RWMutex

	games map[model.GameID][]byte
	stats map[string]int64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games: make(map[model.GameID][]byte),
		stats: make(map[string]int64),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Close is a no-op for in-memory storage
func (s *Storage) Close() error {
	return nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := snapshot.Encode(game)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = data
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	data, ok := s.games[id]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return snapshot.Decode(data)
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

// Stats operations

func (s *Storage) IncrementStat(ctx context.Context, key string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats[key] += delta
	return s.stats[key], nil
}

func (s *Storage) SetStat(ctx context.Context, key string, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats[key] = value
	return nil
}

func (s *Storage) MaxStat(ctx context.Context, key string, value int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.stats[key]; !ok || value > current {
		s.stats[key] = value
	}
	return s.stats[key], nil
}

func (s *Storage) GetStat(ctx context.Context, key string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats[key], nil
}

func (s *Storage) GetStats(ctx context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]int64, len(s.stats))
	for k, v := range s.stats {
		result[k] = v
	}
	return result, nil
}
