package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.validate())
	require.Equal(t, time.Second/60, cfg.TickInterval())
	require.NotZero(t, cfg.Tuning.Perception)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "herdsync.yaml")
	data := []byte(`
listen_addr: ":9999"
arena_width: 1600
tick_rate: 30
seed: fixture
tuning:
  perception: 200
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.ListenAddr)
	require.Equal(t, 1600.0, cfg.ArenaWidth)
	require.Equal(t, 600.0, cfg.ArenaHeight) // default preserved
	require.Equal(t, 30, cfg.TickRate)
	require.Equal(t, "fixture", cfg.Seed)
	require.Equal(t, 200.0, cfg.Tuning.Perception)
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_rate: -5\n"), 0o600))
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
