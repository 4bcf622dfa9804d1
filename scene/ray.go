package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half line used for surface queries. Hits are reported only when
// their distance lies within [Near, Far]. A zero Far means unbounded.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
	Near      float64
	Far       float64
}

// NewRay creates an unbounded ray. The direction is normalized.
func NewRay(origin, direction mgl64.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize(), Far: math.Inf(1)}
}

func (r Ray) far() float64 {
	if r.Far == 0 {
		return math.Inf(1)
	}
	return r.Far
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Hit describes a single ray/surface intersection.
type Hit struct {
	Distance float64
	Point    mgl64.Vec3
	Face     int
	Node     Node
}

// intersectTriangle returns the ray parameter of the hit with triangle abc.
// Edges and vertices count as inside so rays grazing shared edges are not
// lost between two triangles. Rays parallel to the triangle plane never hit.
func intersectTriangle(origin, dir, a, b, c mgl64.Vec3, cullBack bool) (float64, bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	normal := edge1.Cross(edge2)

	ddn := dir.Dot(normal)
	var sign float64
	switch {
	case ddn > 0:
		if cullBack {
			return 0, false
		}
		sign = 1
	case ddn < 0:
		sign = -1
		ddn = -ddn
	default:
		return 0, false
	}

	diff := origin.Sub(a)
	ddqxe2 := sign * dir.Dot(diff.Cross(edge2))
	if ddqxe2 < 0 {
		return 0, false
	}
	dde1xq := sign * dir.Dot(edge1.Cross(diff))
	if dde1xq < 0 {
		return 0, false
	}
	if ddqxe2+dde1xq > ddn {
		return 0, false
	}

	qdn := -sign * diff.Dot(normal)
	if qdn < 0 {
		return 0, false
	}
	return qdn / ddn, true
}

// intersectBox runs a slab test. Parallel rays hit only when the origin lies
// within the slab, boundary included. It returns the entry distance.
func intersectBox(origin, inv mgl64.Vec3, parallel [3]bool, min, max mgl64.Vec3, far float64) (float64, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		if parallel[axis] {
			if origin[axis] < min[axis] || origin[axis] > max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (min[axis] - origin[axis]) * inv[axis]
		t2 := (max[axis] - origin[axis]) * inv[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}
	if tmax < 0 || tmin > tmax || tmin > far {
		return 0, false
	}
	return tmin, true
}
