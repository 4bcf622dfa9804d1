package voxel

import (
	"fmt"
	"math"
	"os"
	"runtime"

	"github.com/segmentio/encoding/json"
)

const (
	// DefaultDensity is the number of voxels per unit length.
	DefaultDensity = 6.0

	// DefaultMaxCells bounds the total number of sampled cells per pass.
	DefaultMaxCells = 8_000_000

	// DefaultTileSize is the edge length, in cells, of one sampling task.
	DefaultTileSize = 8
)

// Config holds the voxelization tunables. Zero values for Workers and
// TileSize select their defaults.
type Config struct {
	Density  float64 `json:"density"`
	MaxCells int     `json:"maxCells,omitempty"`
	Workers  int     `json:"workers,omitempty"`
	TileSize int     `json:"tileSize,omitempty"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Density:  DefaultDensity,
		MaxCells: DefaultMaxCells,
		Workers:  runtime.NumCPU(),
		TileSize: DefaultTileSize,
	}
}

// LoadConfig reads a JSON config file. Fields missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the tunables. Density is validated again at the start of
// every pass since it can be changed between passes.
func (c Config) Validate() error {
	if err := validateDensity(c.Density); err != nil {
		return err
	}
	if c.MaxCells < 0 {
		return fmt.Errorf("max cells must not be negative: %d", c.MaxCells)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative: %d", c.Workers)
	}
	if c.TileSize < 0 {
		return fmt.Errorf("tile size must not be negative: %d", c.TileSize)
	}
	return nil
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

func (c Config) tileSize() int {
	if c.TileSize > 0 {
		return c.TileSize
	}
	return DefaultTileSize
}

func (c Config) maxCells() int {
	if c.MaxCells > 0 {
		return c.MaxCells
	}
	return DefaultMaxCells
}

func validateDensity(density float64) error {
	if math.IsNaN(density) || math.IsInf(density, 0) || density <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDensity, density)
	}
	return nil
}
