package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/snapshot"
	"github.com/mcoot/hexmatch-go/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	mini    *miniredis.Miniredis
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GameTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.Storage = s.storage
	s.Ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// TTL tests

func (s *StorageSuite) TestGameExpires() {
	s.Require().NoError(s.storage.SaveGame(s.Ctx, s.NewGame("game-1")))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetGame(s.Ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestStatsDoNotExpire() {
	_, err := s.storage.IncrementStat(s.Ctx, "games_played", 1)
	s.Require().NoError(err)

	s.mini.FastForward(48 * time.Hour)

	v, err := s.storage.GetStat(s.Ctx, "games_played")
	s.Require().NoError(err)
	s.Equal(int64(1), v)
}

// Key layout tests

func (s *StorageSuite) TestGameStoredUnderPrefixedKey() {
	s.Require().NoError(s.storage.SaveGame(s.Ctx, s.NewGame("game-1")))
	s.True(s.mini.Exists("hexmatch:game:game-1"))
}

func (s *StorageSuite) TestStatsStoredInHash() {
	_, err := s.storage.IncrementStat(s.Ctx, "piece_value_3", 2)
	s.Require().NoError(err)

	s.Equal("2", s.mini.HGet("hexmatch:stats", "piece_value_3"))
}

func (s *StorageSuite) TestGetGameRejectsTamperedSnapshot() {
	s.Require().NoError(s.mini.Set("hexmatch:game:game-1", `{"version":1,"digest":"00","game":{}}`))

	_, err := s.storage.GetGame(s.Ctx, "game-1")
	s.ErrorIs(err, snapshot.ErrCorruptSnapshot)
}

func (s *StorageSuite) TestGetStatsRejectsNonNumericCounter() {
	s.mini.HSet("hexmatch:stats", "broken", "abc")

	_, err := s.storage.GetStats(s.Ctx)
	s.Error(err)
}
