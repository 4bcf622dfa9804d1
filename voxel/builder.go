package voxel

import (
	"context"
	"errors"

	"github.com/alitto/pond/v2"
)

// BuildOptions controls how grid sampling is spread over workers.
type BuildOptions struct {
	Workers  int
	TileSize int
}

// BuildGrid samples every cell of ext and returns the filled grid. Indices
// run from 0 to Steps inclusive on each axis. Tiles are sampled concurrently
// and the context is checked before each tile; a cancelled build returns
// ErrCancelled and no grid.
func BuildGrid(ctx context.Context, ext Extent, sampler Sampler, opts BuildOptions) (*Grid, error) {
	if sampler.Target == nil {
		return nil, ErrNoTarget
	}
	if err := validateDensity(ext.Density); err != nil {
		return nil, err
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultConfig().Workers
	}
	if opts.TileSize <= 0 {
		opts.TileSize = DefaultTileSize
	}

	grid := newGrid(ext.Cells())
	size := ext.VoxelSize()

	pool := pond.NewPool(opts.Workers)
	defer pool.StopAndWait()

	group := pool.NewGroupContext(ctx)
	for _, t := range mortonTiles(grid.size, opts.TileSize) {
		group.SubmitErr(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := t.lo[0]; i < t.hi[0]; i++ {
				for j := t.lo[1]; j < t.hi[1]; j++ {
					for k := t.lo[2]; k < t.hi[2]; k++ {
						c := grid.At(i, j, k)
						c.Index = [3]int{i, j, k}
						c.Position = ext.CellCenter(i, j, k)
						c.Occupied = sampler.Occupied(c.Position, size)
					}
				}
			}
			return nil
		})
	}

	err := group.Wait()
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, ErrCancelled
	}
	if err != nil {
		return nil, err
	}
	return grid, nil
}
