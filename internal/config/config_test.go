package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOOKMARKS_DB_DRIVER", "sqlite3")
	t.Setenv("BOOKMARKS_DB_DSN", "file:bookmarks.db")
	t.Setenv("BOOKMARKS_API_TOKEN", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "sqlite3", cfg.DB.Driver)
	assert.Equal(t, "file:bookmarks.db", cfg.DB.DSN)
	assert.Equal(t, "secret", cfg.API.Token)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("BOOKMARKS_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("BOOKMARKS_HTTP_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("BOOKMARKS_LOG_LEVEL", "debug")
	t.Setenv("BOOKMARKS_LOG_PRETTY", "true")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoad_MissingToken(t *testing.T) {
	setRequired(t)
	t.Setenv("BOOKMARKS_API_TOKEN", "")

	_, err := load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOOKMARKS_API_TOKEN is required")
}

func TestLoad_UnknownDriver(t *testing.T) {
	setRequired(t)
	t.Setenv("BOOKMARKS_DB_DRIVER", "oracle")

	_, err := load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOOKMARKS_DB_DRIVER must be one of: sqlite3, mysql, postgres")
}

func TestLoad_BadTimeout(t *testing.T) {
	setRequired(t)
	t.Setenv("BOOKMARKS_HTTP_SHUTDOWN_TIMEOUT", "soon")

	_, err := load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOOKMARKS_HTTP_SHUTDOWN_TIMEOUT")
}
