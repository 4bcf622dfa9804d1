package utils

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/olekukonko/tablewriter"
	"github.com/t0oms/voxelize/scene"
	"github.com/t0oms/voxelize/voxel"
)

// RunInspect prints the bounds of the model at path and the grid a pass at
// the given density would sample, without voxelizing anything.
func RunInspect(path string, density float64, maxCells int, w io.Writer) error {
	model, err := scene.LoadModel(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	scene.Recenter(model)

	meshes, triangles := 0, 0
	scene.Walk(model, func(n scene.Node, _ mgl64.Vec3) {
		if r, ok := n.AsRenderable(); ok && r.Geometry != nil {
			meshes++
			triangles += r.Geometry.TriangleCount()
		}
	})

	box := scene.NewObject3D(model).BoundingBox()
	dims, err := voxel.ComputeDimensions(box)
	if err != nil {
		return err
	}
	if maxCells <= 0 {
		maxCells = voxel.DefaultMaxCells
	}
	ext, err := voxel.NewExtent(dims, density, maxCells)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Property", "Value"})
	table.Append([]string{"Model", model.Name()})
	table.Append([]string{"Meshes", fmt.Sprint(meshes)})
	table.Append([]string{"Triangles", fmt.Sprint(triangles)})
	table.Append([]string{"Bounds min", fmtVec(box.Min)})
	table.Append([]string{"Bounds max", fmtVec(box.Max)})
	table.Append([]string{"Dimensions", dims.String()})
	table.Append([]string{"Density", fmt.Sprint(density)})
	table.Append([]string{"Voxel size", fmt.Sprintf("%.4f", ext.VoxelSize())})
	table.Append([]string{"Steps", ext.String()})
	table.SetFooter([]string{"Cells", fmt.Sprint(ext.CellCount())})
	table.Render()
	return nil
}

func fmtVec(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}
