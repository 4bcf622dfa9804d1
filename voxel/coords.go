package voxel

import "github.com/go-gl/mathgl/mgl64"

// Coordinate maps a grid index along one axis to the world-space center of
// that cell. The grid is centered on the origin.
func Coordinate(index int, span, density float64) float64 {
	voxelSize := 1 / density
	return (float64(index)-span/2)*voxelSize + voxelSize/2
}

// CellCenter maps an index triple to its world-space cell center.
func (e Extent) CellCenter(i, j, k int) mgl64.Vec3 {
	return mgl64.Vec3{
		Coordinate(i, e.Span[0], e.Density),
		Coordinate(j, e.Span[1], e.Density),
		Coordinate(k, e.Span[2], e.Density),
	}
}
