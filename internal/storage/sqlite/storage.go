package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/snapshot"
	"github.com/mcoot/hexmatch-go/internal/storage"
)

// Storage is a SQLite-backed implementation of the storage interface
type Storage struct {
	db *sql.DB
}

// New opens (and creates if missing) the database file and applies the schema
func New(cfg Config) (*Storage, error) {
	dir := filepath.Dir(cfg.Path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=%d&_journal_mode=WAL", cfg.Path, cfg.BusyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer at a time
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := snapshot.Encode(game)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO games (id, snapshot, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET snapshot = excluded.snapshot, updated_at = excluded.updated_at`,
		string(game.ID), data,
	)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM games WHERE id = ?`, string(id)).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return snapshot.Decode(data)
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, string(id))
	return err
}

// Stats operations

func (s *Storage) IncrementStat(ctx context.Context, key string, delta int64) (int64, error) {
	var v int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO stats (stat_key, stat_value) VALUES (?, ?)
		ON CONFLICT(stat_key) DO UPDATE SET stat_value = stat_value + excluded.stat_value
		RETURNING stat_value`,
		key, delta,
	).Scan(&v)
	return v, err
}

func (s *Storage) SetStat(ctx context.Context, key string, value int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stats (stat_key, stat_value) VALUES (?, ?)
		ON CONFLICT(stat_key) DO UPDATE SET stat_value = excluded.stat_value`,
		key, value,
	)
	return err
}

func (s *Storage) MaxStat(ctx context.Context, key string, value int64) (int64, error) {
	var v int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO stats (stat_key, stat_value) VALUES (?, ?)
		ON CONFLICT(stat_key) DO UPDATE SET stat_value = MAX(stat_value, excluded.stat_value)
		RETURNING stat_value`,
		key, value,
	).Scan(&v)
	return v, err
}

func (s *Storage) GetStat(ctx context.Context, key string) (int64, error) {
	var v int64
	err := s.db.QueryRowContext(ctx, `SELECT stat_value FROM stats WHERE stat_key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return v, err
}

func (s *Storage) GetStats(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT stat_key, stat_value FROM stats`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int64)
	for rows.Next() {
		var k string
		var v int64
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		result[k] = v
	}
	return result, rows.Err()
}
