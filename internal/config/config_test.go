package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8085", cfg.Server.Addr)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.Sheet.AutosaveInterval)
	assert.Equal(t, 2500*time.Millisecond, cfg.Sheet.NoticeInterval)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SHEETD_ADDR", ":9000")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SHEET_AUTOSAVE_INTERVAL", "1s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, time.Second, cfg.Sheet.AutosaveInterval)
}

func TestLoadIgnoresMalformedEnv(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("SHEET_AUTOSAVE_INTERVAL", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 250*time.Millisecond, cfg.Sheet.AutosaveInterval)
}
