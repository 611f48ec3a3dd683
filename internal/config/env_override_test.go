package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("COCOON_INTERVAL replaces interval", func(t *testing.T) {
		t.Setenv("COCOON_INTERVAL", "250ms")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "250ms", cfg.Cocoon.CreationInterval)
		assert.Equal(t, 250*time.Millisecond, cfg.GetCreationInterval())
	})

	t.Run("COCOON_FACTION replaces faction", func(t *testing.T) {
		t.Setenv("COCOON_FACTION", "terran")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "terran", cfg.Cocoon.Faction)
	})

	t.Run("COCOON_DEBUG toggles debug mode", func(t *testing.T) {
		t.Setenv("COCOON_DEBUG", "true")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.True(t, cfg.Logging.DebugMode)
	})

	t.Run("Unparseable COCOON_DEBUG is ignored", func(t *testing.T) {
		t.Setenv("COCOON_DEBUG", "sometimes")

		cfg := DefaultConfig()
		cfg.Logging.DebugMode = true
		cfg.applyEnvOverrides()

		assert.True(t, cfg.Logging.DebugMode)
	})

	t.Run("Empty values leave config alone", func(t *testing.T) {
		t.Setenv("COCOON_INTERVAL", "")
		t.Setenv("COCOON_FACTION", "")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "3s", cfg.Cocoon.CreationInterval)
		assert.Equal(t, "zerg", cfg.Cocoon.Faction)
	})
}

func TestEnvOverrides_WinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cocoon:\n  creation_interval: 10s\n  faction: zerg\n"), 0644))

	t.Setenv("COCOON_INTERVAL", "1s")
	t.Setenv("COCOON_FACTION", "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.GetCreationInterval())
	assert.Equal(t, "zerg", cfg.Cocoon.Faction)
	// Fields absent from the file keep their defaults
	assert.Equal(t, 4, cfg.Brood.Size)
}
