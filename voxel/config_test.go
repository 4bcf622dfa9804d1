package voxel

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 6.0, cfg.Density)
	require.Equal(t, 8_000_000, cfg.MaxCells)
	require.Equal(t, runtime.NumCPU(), cfg.workers())
}

func TestConfigZeroValuesUseDefaults(t *testing.T) {
	cfg := Config{Density: 1}
	require.NoError(t, cfg.Validate())
	require.Equal(t, runtime.NumCPU(), cfg.workers())
	require.Equal(t, DefaultTileSize, cfg.tileSize())
	require.Equal(t, DefaultMaxCells, cfg.maxCells())
}

func TestConfigValidate(t *testing.T) {
	for _, cfg := range []Config{
		{Density: 0},
		{Density: 1, MaxCells: -1},
		{Density: 1, Workers: -2},
		{Density: 1, TileSize: -8},
	} {
		require.Error(t, cfg.Validate(), "%+v", cfg)
	}
	require.ErrorIs(t, Config{Density: -1}.Validate(), ErrInvalidDensity)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxelize.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"density": 2.5, "tileSize": 4}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 2.5, cfg.Density)
	require.Equal(t, 4, cfg.TileSize)
	// untouched fields keep their defaults
	require.Equal(t, DefaultMaxCells, cfg.MaxCells)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"density": `), 0o644))
	_, err = LoadConfig(bad)
	require.Error(t, err)

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"density": 0}`), 0o644))
	_, err = LoadConfig(invalid)
	require.ErrorIs(t, err, ErrInvalidDensity)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "idle", Idle.String())
	require.Equal(t, "sampling", Sampling.String())
	require.Equal(t, "state(9)", State(9).String())
}
