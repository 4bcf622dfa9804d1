package voxel

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNoTarget       = errors.New("voxel: no target object")
	ErrEmptyGeometry  = errors.New("voxel: empty geometry")
	ErrInvalidDensity = errors.New("voxel: invalid voxel density")
	ErrGridTooLarge   = errors.New("voxel: grid too large")
	ErrBusy           = errors.New("voxel: a voxelization pass is already running")
	ErrCancelled      = errors.New("voxel: voxelization cancelled")
)

// PassError reports a failed voxelization pass together with the values
// needed to diagnose it.
type PassError struct {
	PassID     uuid.UUID
	Stage      State
	Density    float64
	Dimensions Dimensions
	Extent     Extent
	Cells      int
	Err        error
}

func (e *PassError) Error() string {
	return fmt.Sprintf("voxelize pass %s failed while %s (density %v, dimensions %v, extent %v, cells %d): %v",
		e.PassID, e.Stage, e.Density, e.Dimensions, e.Extent, e.Cells, e.Err)
}

func (e *PassError) Unwrap() error {
	return e.Err
}
