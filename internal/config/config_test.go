package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpad/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err, "a missing config file should yield defaults")

	assert.Equal(t, "dark", cfg.Theme)
	assert.False(t, cfg.CombinedState)
	assert.True(t, cfg.WatchExternal)
	assert.Equal(t, time.Second, cfg.AutosaveDelay())
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "theme: light\nautosave_delay_ms: 250\ncombined_state: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "light", cfg.Theme)
	assert.True(t, cfg.CombinedState)
	assert.Equal(t, 250*time.Millisecond, cfg.AutosaveDelay())
	// Unset keys keep their defaults.
	assert.True(t, cfg.WatchExternal)
}

func TestLoad_RejectsUnknownTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: solarized\n"), 0644))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "theme")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("INKPAD_THEME", "light")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Theme)
}

func TestAutosaveDelay_FloorsAtOneSecond(t *testing.T) {
	cfg := config.Config{AutosaveDelayMS: -5}
	assert.Equal(t, time.Second, cfg.AutosaveDelay())
}
