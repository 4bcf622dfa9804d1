package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box3 is an axis-aligned bounding box. The zero value is not empty; use
// EmptyBox to start an accumulation.
type Box3 struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// EmptyBox returns a box that contains nothing. Expanding it by a point
// yields a degenerate box around that point.
func EmptyBox() Box3 {
	return Box3{
		Min: mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

// IsEmpty reports whether the box contains no points.
func (b Box3) IsEmpty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// ExpandByPoint grows the box to include p.
func (b Box3) ExpandByPoint(p mgl64.Vec3) Box3 {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
	return b
}

// Union grows the box to include o. Empty boxes are ignored.
func (b Box3) Union(o Box3) Box3 {
	if o.IsEmpty() {
		return b
	}
	return b.ExpandByPoint(o.Min).ExpandByPoint(o.Max)
}

// Translate returns the box shifted by d.
func (b Box3) Translate(d mgl64.Vec3) Box3 {
	if b.IsEmpty() {
		return b
	}
	return Box3{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Size returns the box extent per axis, or a zero vector for empty boxes.
func (b Box3) Size() mgl64.Vec3 {
	if b.IsEmpty() {
		return mgl64.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the box midpoint, or the origin for empty boxes.
func (b Box3) Center() mgl64.Vec3 {
	if b.IsEmpty() {
		return mgl64.Vec3{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// ContainsPoint checks if a point lies inside the box, boundary included.
func (b Box3) ContainsPoint(p mgl64.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}
