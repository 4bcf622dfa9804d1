package voxel

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
	"github.com/t0oms/voxelize/scene"
)

func box(min, max mgl64.Vec3) scene.Box3 {
	return scene.Box3{Min: min, Max: max}
}

func TestComputeDimensions(t *testing.T) {
	dims, err := ComputeDimensions(box(mgl64.Vec3{-0.5, -0.5, -0.5}, mgl64.Vec3{0.5, 0.5, 0.5}))
	require.NoError(t, err)
	require.Equal(t, Dimensions{1, 1, 1}, dims)

	dims, err = ComputeDimensions(box(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2.1, 0.3, 7}))
	require.NoError(t, err)
	require.Equal(t, Dimensions{3, 1, 7}, dims)
	require.Equal(t, "3x1x7", dims.String())
}

func TestComputeDimensionsCoversBox(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		min := mgl64.Vec3{rnd.Float64()*20 - 10, rnd.Float64()*20 - 10, rnd.Float64()*20 - 10}
		size := mgl64.Vec3{rnd.Float64()*10 + 1e-3, rnd.Float64()*10 + 1e-3, rnd.Float64()*10 + 1e-3}
		dims, err := ComputeDimensions(box(min, min.Add(size)))
		require.NoError(t, err)

		b := box(min, min.Add(size)).Size()
		for axis := 0; axis < 3; axis++ {
			d := float64(dims.axis(axis))
			require.GreaterOrEqual(t, d, b[axis])
			require.Less(t, d-b[axis], 1.0)
		}
	}
}

func TestComputeDimensionsRejectsEmpty(t *testing.T) {
	_, err := ComputeDimensions(scene.EmptyBox())
	require.ErrorIs(t, err, ErrEmptyGeometry)

	// flat along z
	_, err = ComputeDimensions(box(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 0}))
	require.ErrorIs(t, err, ErrEmptyGeometry)

	_, err = ComputeDimensions(box(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, math.Inf(1), 1}))
	require.ErrorIs(t, err, ErrEmptyGeometry)
}

func TestNewExtent(t *testing.T) {
	ext, err := NewExtent(Dimensions{1, 2, 3}, 6, DefaultMaxCells)
	require.NoError(t, err)
	require.Equal(t, [3]float64{6, 12, 18}, ext.Span)
	require.Equal(t, [3]int{6, 12, 18}, ext.Steps)
	require.Equal(t, [3]int{7, 13, 19}, ext.Cells())
	require.Equal(t, 7*13*19, ext.CellCount())
	require.InDelta(t, 1.0/6, ext.VoxelSize(), 1e-15)
	require.Equal(t, "6x12x18", ext.String())
}

func TestNewExtentFractionalDensity(t *testing.T) {
	ext, err := NewExtent(Dimensions{3, 1, 1}, 1.5, DefaultMaxCells)
	require.NoError(t, err)
	require.Equal(t, [3]float64{4.5, 1.5, 1.5}, ext.Span)
	require.Equal(t, [3]int{4, 1, 1}, ext.Steps)
}

func TestNewExtentErrors(t *testing.T) {
	for _, d := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewExtent(Dimensions{1, 1, 1}, d, DefaultMaxCells)
		require.ErrorIs(t, err, ErrInvalidDensity, "density %v", d)
	}

	_, err := NewExtent(Dimensions{100, 100, 100}, 10, 1000)
	require.ErrorIs(t, err, ErrGridTooLarge)

	// the cell count is computed in floating point, so it cannot overflow
	ext, err := NewExtent(Dimensions{1 << 20, 1 << 20, 1 << 20}, 1<<20, DefaultMaxCells)
	require.ErrorIs(t, err, ErrGridTooLarge)
	require.Equal(t, [3]int{maxAxisUnits, maxAxisUnits, maxAxisUnits}, ext.Steps)
	require.Greater(t, ext.cellEstimate(), float64(DefaultMaxCells))

	// the requested extent comes back with the error
	ext, err = NewExtent(Dimensions{2, 3, 4}, 10, 100)
	require.ErrorIs(t, err, ErrGridTooLarge)
	require.Equal(t, [3]int{20, 30, 40}, ext.Steps)
	require.Contains(t, err.Error(), "20x30x40")

	_, err = NewExtent(Dimensions{-1, 1, 1}, 1, DefaultMaxCells)
	require.ErrorIs(t, err, ErrEmptyGeometry)
}

func TestComputeDimensionsRejectsHugeBox(t *testing.T) {
	for _, size := range []mgl64.Vec3{{1e19, 1, 1}, {1, 1, 1e19}, {1e19, 1e19, 1e19}, {3e9, 1, 1}} {
		dims, err := ComputeDimensions(box(mgl64.Vec3{}, size))
		require.ErrorIs(t, err, ErrGridTooLarge, "size %v", size)
		require.Equal(t, Dimensions{}, dims)
	}

	dims, err := ComputeDimensions(box(mgl64.Vec3{}, mgl64.Vec3{maxAxisUnits, 1, 1}))
	require.NoError(t, err)
	require.Equal(t, Dimensions{maxAxisUnits, 1, 1}, dims)
}
