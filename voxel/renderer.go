package voxel

import (
	"fmt"

	"github.com/t0oms/voxelize/scene"
)

// Adder attaches nodes to a scene.
type Adder interface {
	Add(node scene.Node)
}

// Render adds one cube mesh per occupied cell to graph, in grid index order.
// All voxels share a single cube geometry with edge 1/density and a single
// material. It returns the added nodes.
func Render(grid *Grid, ext Extent, material *scene.Material, graph Adder) []scene.Node {
	if material == nil {
		material = scene.DefaultMaterial()
	}
	cube := scene.NewCubeGeometry(ext.VoxelSize())

	voxels := make([]scene.Node, 0, grid.OccupiedCount())
	grid.Each(func(c *Cell) {
		if !c.Occupied {
			return
		}
		m := scene.NewMesh(fmt.Sprintf("voxel_%d_%d_%d", c.Index[0], c.Index[1], c.Index[2]), cube, material)
		m.SetPosition(c.Position)
		graph.Add(m)
		voxels = append(voxels, m)
	})
	return voxels
}
