package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/snapshot"
	"github.com/mcoot/hexmatch-go/internal/storage"
)

// maxStatScript raises a hash field to ARGV[2] if it is larger, in one step
var maxStatScript = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], ARGV[1])
local value = tonumber(ARGV[2])
if (not current) or value > tonumber(current) then
	redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
	return value
end
return tonumber(current)
`)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := snapshot.Encode(game)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL).Err()
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return snapshot.Decode(data)
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	return s.client.Del(ctx, gameKey(id)).Err()
}

// Stats operations

func (s *Storage) IncrementStat(ctx context.Context, key string, delta int64) (int64, error) {
	return s.client.HIncrBy(ctx, statsKey(), key, delta).Result()
}

func (s *Storage) SetStat(ctx context.Context, key string, value int64) error {
	return s.client.HSet(ctx, statsKey(), key, value).Err()
}

func (s *Storage) MaxStat(ctx context.Context, key string, value int64) (int64, error) {
	return maxStatScript.Run(ctx, s.client, []string{statsKey()}, key, value).Int64()
}

func (s *Storage) GetStat(ctx context.Context, key string) (int64, error) {
	v, err := s.client.HGet(ctx, statsKey(), key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (s *Storage) GetStats(ctx context.Context) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, statsKey()).Result()
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(raw))
	for k, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", k, err)
		}
		result[k] = n
	}
	return result, nil
}
