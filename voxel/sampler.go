package voxel

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/t0oms/voxelize/scene"
)

// Raycaster answers surface-intersection queries against the target object.
// Implementations must be safe for concurrent use.
type Raycaster interface {
	Raycast(ray scene.Ray) []scene.Hit
}

type probeSpec struct {
	// axis is fixed on the probed face and is also the ray direction
	axis int
	// u and v span the face
	u, v int
}

// probeFaces are the left, bottom and back faces of a cell. Each probes one
// axis direction exactly once, so opposite faces are never cast from.
var probeFaces = []probeSpec{
	{axis: 0, u: 1, v: 2},
	{axis: 1, u: 0, v: 2},
	{axis: 2, u: 0, v: 1},
}

var corners = [4][2]float64{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}

// Sampler decides whether a cell touches the target surface.
//
// From each corner of the probe faces a ray is cast along the face's inward
// axis. The cell is occupied when any of those twelve rays hits the surface
// within one cell edge. This is a surface proximity heuristic: thin features
// missed by every ray yield false negatives.
type Sampler struct {
	Target Raycaster
}

// Occupied reports whether the cube of edge size centered at center
// intersects the target surface.
func (s Sampler) Occupied(center mgl64.Vec3, size float64) bool {
	half := size / 2
	for _, face := range probeFaces {
		var dir mgl64.Vec3
		dir[face.axis] = 1

		for _, c := range corners {
			var origin mgl64.Vec3
			origin[face.axis] = center[face.axis] - half
			origin[face.u] = center[face.u] + c[0]*half
			origin[face.v] = center[face.v] + c[1]*half

			ray := scene.Ray{Origin: origin, Direction: dir, Near: 0, Far: size}
			if len(s.Target.Raycast(ray)) > 0 {
				return true
			}
		}
	}
	return false
}
