package stats

import (
	"context"
	"log/slog"
	"sort"

	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/storage"
)

// Entry is one counter with its display name
type Entry struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// Service tracks named counters and high scores
type Service struct {
	storage  storage.Storage
	reporter Reporter
	logger   *slog.Logger
}

// New creates a new StatsService
func New(storage storage.Storage, reporter Reporter, logger *slog.Logger) *Service {
	return &Service{
		storage:  storage,
		reporter: reporter,
		logger:   logger,
	}
}

// Increment adds delta to a counter and returns the new value
func (s *Service) Increment(ctx context.Context, key string, delta int64) (int64, error) {
	return s.storage.IncrementStat(ctx, key, delta)
}

// Set overwrites a counter
func (s *Service) Set(ctx context.Context, key string, value int64) error {
	return s.storage.SetStat(ctx, key, value)
}

// Get returns a counter, 0 if it was never written
func (s *Service) Get(ctx context.Context, key string) (int64, error) {
	return s.storage.GetStat(ctx, key)
}

// All returns every known counter plus any others that have been written,
// sorted by key
func (s *Service) All(ctx context.Context) ([]Entry, error) {
	stored, err := s.storage.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	values := make(map[string]int64, len(stored))
	for _, k := range model.StatKeys() {
		values[k] = 0
	}
	for k, v := range stored {
		values[k] = v
	}

	entries := make([]Entry, 0, len(values))
	for k, v := range values {
		entries = append(entries, Entry{Key: k, Name: model.StatDisplayName(k), Value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// RecordScore raises the overall and per-mode high scores to score if it beats them
func (s *Service) RecordScore(ctx context.Context, mode model.LevelMode, score int) error {
	best, err := s.storage.MaxStat(ctx, model.HighScoreKey(mode), int64(score))
	if err != nil {
		return err
	}
	if _, err := s.storage.MaxStat(ctx, model.StatHighScore, int64(score)); err != nil {
		return err
	}

	if best == int64(score) && score > 0 {
		s.logger.Debug("high score updated",
			slog.String("mode", string(mode)),
			slog.Int("score", score),
		)
	}
	return nil
}

// ReportLeaderboards pushes the overall and per-mode high scores to the reporter
func (s *Service) ReportLeaderboards(ctx context.Context) error {
	overall, err := s.storage.GetStat(ctx, model.StatHighScore)
	if err != nil {
		return err
	}
	if err := s.reporter.ReportScore(ctx, model.LeaderboardHighScore, overall); err != nil {
		return err
	}

	for _, mode := range model.LevelModes() {
		best, err := s.storage.GetStat(ctx, model.HighScoreKey(mode))
		if err != nil {
			return err
		}
		if err := s.reporter.ReportScore(ctx, model.LeaderboardFor(mode), best); err != nil {
			return err
		}
	}
	return nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Increment(ctx context.Context, key string, delta int64) (int64, error)
	Set(ctx context.Context, key string, value int64) error
	Get(ctx context.Context, key string) (int64, error)
	All(ctx context.Context) ([]Entry, error)
	RecordScore(ctx context.Context, mode model.LevelMode, score int) error
	ReportLeaderboards(ctx context.Context) error
}

var _ ServiceInterface = (*Service)(nil)
