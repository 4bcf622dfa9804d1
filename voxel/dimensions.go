package voxel

import (
	"fmt"
	"math"

	"github.com/t0oms/voxelize/scene"
)

// Dimensions is the bounding-box size rounded up to whole units per axis.
type Dimensions struct {
	X, Y, Z int
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%dx%d", d.X, d.Y, d.Z)
}

func (d Dimensions) axis(i int) int {
	switch i {
	case 0:
		return d.X
	case 1:
		return d.Y
	}
	return d.Z
}

// maxAxisUnits bounds every axis of Dimensions and Extent.Steps so that
// index arithmetic stays within int.
const maxAxisUnits = math.MaxInt32

// ComputeDimensions returns the ceiling of the box size on each axis so that
// the grid fully covers the box. Empty or zero-volume boxes are rejected.
func ComputeDimensions(box scene.Box3) (Dimensions, error) {
	if box.IsEmpty() {
		return Dimensions{}, fmt.Errorf("%w: bounding box is empty", ErrEmptyGeometry)
	}
	size := box.Size()
	for i := 0; i < 3; i++ {
		if !(size[i] > 0) || math.IsInf(size[i], 0) {
			return Dimensions{}, fmt.Errorf("%w: bounding box size %v has no volume", ErrEmptyGeometry, size)
		}
		if size[i] > maxAxisUnits {
			return Dimensions{}, fmt.Errorf("%w: bounding box size %v exceeds %d units per axis", ErrGridTooLarge, size, maxAxisUnits)
		}
	}
	return Dimensions{
		X: int(math.Ceil(size[0])),
		Y: int(math.Ceil(size[1])),
		Z: int(math.Ceil(size[2])),
	}, nil
}

// Extent is the grid span per axis: Dimensions scaled by the voxel density.
// Indices run over the inclusive range 0..Steps on each axis, which yields
// one extra row of cells beyond the nominal count.
type Extent struct {
	Span    [3]float64
	Steps   [3]int
	Density float64
}

func (e Extent) String() string {
	return fmt.Sprintf("%dx%dx%d", e.Steps[0], e.Steps[1], e.Steps[2])
}

// VoxelSize returns the voxel edge length.
func (e Extent) VoxelSize() float64 {
	return 1 / e.Density
}

// Cells returns the number of cells per axis (Steps+1).
func (e Extent) Cells() [3]int {
	return [3]int{e.Steps[0] + 1, e.Steps[1] + 1, e.Steps[2] + 1}
}

// CellCount returns the total number of grid cells.
func (e Extent) CellCount() int {
	c := e.Cells()
	return c[0] * c[1] * c[2]
}

// cellEstimate is CellCount computed from Span in floating point, so it
// stays meaningful for extents too large to allocate.
func (e Extent) cellEstimate() float64 {
	n := 1.0
	for i := 0; i < 3; i++ {
		n *= math.Floor(e.Span[i]) + 1
	}
	return n
}

// NewExtent scales dims by density and checks the resulting cell count
// against maxCells before anything is allocated. On ErrGridTooLarge the
// requested extent is returned alongside the error, with Steps capped at
// maxAxisUnits.
func NewExtent(dims Dimensions, density float64, maxCells int) (Extent, error) {
	if err := validateDensity(density); err != nil {
		return Extent{}, err
	}

	ext := Extent{Density: density}
	for i := 0; i < 3; i++ {
		d := dims.axis(i)
		if d <= 0 {
			return Extent{}, fmt.Errorf("%w: dimensions %v", ErrEmptyGeometry, dims)
		}
		if d > maxAxisUnits {
			return Extent{}, fmt.Errorf("%w: dimensions %v exceed %d units per axis", ErrGridTooLarge, dims, maxAxisUnits)
		}
		ext.Span[i] = float64(d) * density
		steps := math.Floor(ext.Span[i])
		if steps > maxAxisUnits {
			steps = maxAxisUnits
		}
		ext.Steps[i] = int(steps)
	}
	if total := ext.cellEstimate(); total > float64(maxCells) {
		return ext, fmt.Errorf("%w: %v x density %v requests %v cells (%.0f), limit %d",
			ErrGridTooLarge, dims, density, ext, total, maxCells)
	}
	return ext, nil
}
