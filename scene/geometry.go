package scene

import (
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
)

// Geometry is an indexed triangle list in local space.
//
// When Indices is empty every three consecutive positions form a triangle.
// Normals are optional and only used by exporters.
type Geometry struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	Indices   []uint32

	bvhOnce  sync.Once
	bvh      *bvh
	disposed atomic.Bool
}

// NewGeometry creates a geometry from positions and optional indices.
func NewGeometry(positions []mgl64.Vec3, indices []uint32) *Geometry {
	return &Geometry{Positions: positions, Indices: indices}
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	if g.Disposed() {
		return 0
	}
	if len(g.Indices) > 0 {
		return len(g.Indices) / 3
	}
	return len(g.Positions) / 3
}

// Triangle returns the vertices of triangle i.
func (g *Geometry) Triangle(i int) (a, b, c mgl64.Vec3) {
	if len(g.Indices) > 0 {
		return g.Positions[g.Indices[3*i]], g.Positions[g.Indices[3*i+1]], g.Positions[g.Indices[3*i+2]]
	}
	return g.Positions[3*i], g.Positions[3*i+1], g.Positions[3*i+2]
}

// BoundingBox returns the local-space bounds of the referenced vertices.
func (g *Geometry) BoundingBox() Box3 {
	box := EmptyBox()
	if g.Disposed() {
		return box
	}
	if len(g.Indices) > 0 {
		for _, idx := range g.Indices {
			box = box.ExpandByPoint(g.Positions[idx])
		}
		return box
	}
	for _, p := range g.Positions {
		box = box.ExpandByPoint(p)
	}
	return box
}

// Dispose releases the vertex data. A disposed geometry reports an empty
// bounding box and never produces hits.
func (g *Geometry) Dispose() {
	if g.disposed.Swap(true) {
		return
	}
	g.Positions = nil
	g.Normals = nil
	g.Indices = nil
}

// Disposed reports whether Dispose has been called.
func (g *Geometry) Disposed() bool {
	return g.disposed.Load()
}

// raycast appends hits of a local-space ray. The acceleration structure is
// built on first use and is safe for concurrent callers.
func (g *Geometry) raycast(ray Ray, cullBack, cullFront bool, offset mgl64.Vec3, node Node, hits []Hit) []Hit {
	if g.Disposed() {
		return hits
	}
	g.bvhOnce.Do(func() {
		g.bvh = buildBVH(g, defaultLeafSize)
	})

	origin := ray.Origin.Sub(offset)
	far := ray.far()
	g.bvh.traverse(origin, ray.Direction, far, func(tri int) {
		a, b, c := g.Triangle(tri)
		if cullFront {
			// back side only: flip winding so front faces are culled
			a, c = c, a
		}
		t, ok := intersectTriangle(origin, ray.Direction, a, b, c, cullBack || cullFront)
		if !ok || t < ray.Near || t > far {
			return
		}
		hits = append(hits, Hit{
			Distance: t,
			Point:    ray.At(t),
			Face:     tri,
			Node:     node,
		})
	})
	return hits
}
