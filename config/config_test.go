package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_ParsesSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wfl.toml")
	contents := `
[interp]
pattern_step_budget = 5000
event_queue_depth = 32

[stdlib]
allow_filesystem = false
allow_network = true
random_seed = 42

[server]
default_port = 9090
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5000, cfg.Interp.PatternStepBudget)
	require.Equal(t, 32, cfg.Interp.EventQueueDepth)
	require.False(t, cfg.Stdlib.AllowFilesystem)
	require.True(t, cfg.Stdlib.AllowNetwork)
	require.Equal(t, uint64(42), cfg.Stdlib.RandomSeed)
	require.Equal(t, 9090, cfg.Server.DefaultPort)
}

func TestLoad_InvalidTOMLErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wfl.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [ valid toml"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
