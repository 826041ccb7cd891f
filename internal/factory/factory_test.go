package factory

import (
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/hexmatch-go/internal/config"
	"github.com/mcoot/hexmatch-go/internal/storage/memory"
	redisstorage "github.com/mcoot/hexmatch-go/internal/storage/redis"
	sqlitestorage "github.com/mcoot/hexmatch-go/internal/storage/sqlite"
	"github.com/mcoot/hexmatch-go/internal/testutil"
)

func TestNewDefaultsToMemory(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.IsType(t, &memory.Storage{}, app.Storage)
	assert.NotNil(t, app.GameController)
	assert.NotNil(t, app.HubManager)
}

func TestNewSQLite(t *testing.T) {
	settings := config.Default()
	settings.StorageType = config.StorageSQLite
	settings.SQLitePath = filepath.Join(t.TempDir(), "hexmatch.db")

	app, err := New(ConfigFromSettings(settings, testutil.NopLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.IsType(t, &sqlitestorage.Storage{}, app.Storage)
}

func TestNewRedis(t *testing.T) {
	mini := miniredis.RunT(t)

	settings := config.Default()
	settings.StorageType = config.StorageRedis
	settings.RedisURL = "redis://" + mini.Addr()

	app, err := New(ConfigFromSettings(settings, testutil.NopLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.IsType(t, &redisstorage.Storage{}, app.Storage)
}

func TestNewRedisWithoutConfig(t *testing.T) {
	_, err := New(Config{StorageType: StorageTypeRedis})
	assert.Error(t, err)
}

func TestNewInvalidStorageType(t *testing.T) {
	_, err := New(Config{StorageType: "postgres"})
	assert.Error(t, err)
}

func TestConfigFromSettings(t *testing.T) {
	settings := config.Default()
	cfg := ConfigFromSettings(settings, nil)
	assert.Equal(t, StorageTypeMemory, cfg.StorageType)
	assert.Nil(t, cfg.RedisConfig)
	assert.Nil(t, cfg.SQLiteConfig)

	settings.StorageType = config.StorageRedis
	settings.RedisURL = "redis://cache:6379/1"
	cfg = ConfigFromSettings(settings, nil)
	require.NotNil(t, cfg.RedisConfig)
	assert.Equal(t, "redis://cache:6379/1", cfg.RedisConfig.URL)
	assert.Equal(t, redisstorage.DefaultConfig().GameTTL, cfg.RedisConfig.GameTTL)
}
