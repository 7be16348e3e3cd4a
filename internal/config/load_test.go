package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("NUDGE_SERVER_PORT", "9090")
	t.Setenv("NUDGE_SERVER_LOG_LEVEL", "debug")
	t.Setenv("NUDGE_STORAGE_DRIVER", "redis")
	t.Setenv("NUDGE_STORAGE_REDIS_ADDR", "localhost:6379")
	t.Setenv("NUDGE_STORAGE_REDIS_DB", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, "localhost:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, 2, cfg.Storage.RedisDB)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("NUDGE_SERVER_LOG_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadRequiresDriverSpecificSettings(t *testing.T) {
	// The postgres driver refuses to start without a database URL.
	t.Setenv("NUDGE_STORAGE_DRIVER", "postgres")

	_, err := Load()
	require.Error(t, err)
}
