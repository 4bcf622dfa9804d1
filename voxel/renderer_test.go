package voxel

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
	"github.com/t0oms/voxelize/scene"
)

func TestRender(t *testing.T) {
	ext, err := NewExtent(Dimensions{2, 2, 2}, 2, DefaultMaxCells)
	require.NoError(t, err)

	target := fnRaycaster(func(ray scene.Ray) bool { return ray.Origin[2] < -0.9 })
	grid, err := BuildGrid(context.Background(), ext, Sampler{Target: target}, BuildOptions{})
	require.NoError(t, err)
	require.NotZero(t, grid.OccupiedCount())

	s := scene.New()
	mat := scene.NewMaterial("blue", [4]float64{0, 0, 1, 1})
	voxels := Render(grid, ext, mat, s)

	require.Len(t, voxels, grid.OccupiedCount())
	require.Equal(t, len(voxels), s.Len())

	var geom *scene.Geometry
	for i, v := range voxels {
		require.Same(t, v, s.Nodes()[i])

		r, ok := v.AsRenderable()
		require.True(t, ok)
		require.Same(t, mat, r.Material)
		if geom == nil {
			geom = r.Geometry
		}
		require.Same(t, geom, r.Geometry)
	}

	size := geom.BoundingBox().Size()
	require.InDelta(t, 0.5, size[0], 1e-12)
	require.InDelta(t, 0.5, size[1], 1e-12)
	require.InDelta(t, 0.5, size[2], 1e-12)

	first := grid.At(0, 0, 0)
	require.True(t, first.Occupied)
	require.Equal(t, "voxel_0_0_0", voxels[0].Name())
	require.Equal(t, first.Position, voxels[0].Position())
}

func TestRenderDefaultMaterial(t *testing.T) {
	ext, err := NewExtent(Dimensions{1, 1, 1}, 1, DefaultMaxCells)
	require.NoError(t, err)
	always := fnRaycaster(func(scene.Ray) bool { return true })
	grid, err := BuildGrid(context.Background(), ext, Sampler{Target: always}, BuildOptions{})
	require.NoError(t, err)

	s := scene.New()
	voxels := Render(grid, ext, nil, s)
	require.Len(t, voxels, 8)

	r, _ := voxels[7].AsRenderable()
	require.Equal(t, scene.DefaultMaterial().Color, r.Material.Color)
	require.Equal(t, "voxel_1_1_1", voxels[7].Name())
	require.Equal(t, mgl64.Vec3{1, 1, 1}, voxels[7].Position())
}
