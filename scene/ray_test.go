package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

// triangle in the z=0 plane facing +Z
var (
	triA = mgl64.Vec3{0, 0, 0}
	triB = mgl64.Vec3{1, 0, 0}
	triC = mgl64.Vec3{0, 1, 0}
)

func TestIntersectTriangleFrontFace(t *testing.T) {
	d, ok := intersectTriangle(mgl64.Vec3{0.25, 0.25, 1}, mgl64.Vec3{0, 0, -1}, triA, triB, triC, true)
	require.True(t, ok)
	require.InDelta(t, 1.0, d, 1e-12)
}

func TestIntersectTriangleBackFaceCulled(t *testing.T) {
	_, ok := intersectTriangle(mgl64.Vec3{0.25, 0.25, -1}, mgl64.Vec3{0, 0, 1}, triA, triB, triC, true)
	require.False(t, ok)

	d, ok := intersectTriangle(mgl64.Vec3{0.25, 0.25, -1}, mgl64.Vec3{0, 0, 1}, triA, triB, triC, false)
	require.True(t, ok)
	require.InDelta(t, 1.0, d, 1e-12)
}

func TestIntersectTriangleEdgesAreInclusive(t *testing.T) {
	dir := mgl64.Vec3{0, 0, -1}
	for _, p := range []mgl64.Vec3{{0, 0, 1}, {0.5, 0, 1}, {0.5, 0.5, 1}, {0, 1, 1}} {
		_, ok := intersectTriangle(p, dir, triA, triB, triC, true)
		require.True(t, ok, "origin %v", p)
	}
}

func TestIntersectTriangleMisses(t *testing.T) {
	// outside the triangle
	_, ok := intersectTriangle(mgl64.Vec3{0.75, 0.75, 1}, mgl64.Vec3{0, 0, -1}, triA, triB, triC, true)
	require.False(t, ok)

	// pointing away
	_, ok = intersectTriangle(mgl64.Vec3{0.25, 0.25, 1}, mgl64.Vec3{0, 0, 1}, triA, triB, triC, false)
	require.False(t, ok)

	// parallel, even when lying in the plane
	_, ok = intersectTriangle(mgl64.Vec3{-1, 0.25, 0}, mgl64.Vec3{1, 0, 0}, triA, triB, triC, false)
	require.False(t, ok)
}

func TestIntersectTriangleOriginOnSurface(t *testing.T) {
	d, ok := intersectTriangle(mgl64.Vec3{0.25, 0.25, 0}, mgl64.Vec3{0, 0, -1}, triA, triB, triC, true)
	require.True(t, ok)
	require.Zero(t, d)
}

func TestIntersectBox(t *testing.T) {
	min := mgl64.Vec3{-1, -1, -1}
	max := mgl64.Vec3{1, 1, 1}
	inv := mgl64.Vec3{1, 0, 0}
	parallel := [3]bool{false, true, true}

	d, ok := intersectBox(mgl64.Vec3{-3, 0, 0}, inv, parallel, min, max, math.Inf(1))
	require.True(t, ok)
	require.InDelta(t, 2.0, d, 1e-12)

	// too far
	_, ok = intersectBox(mgl64.Vec3{-3, 0, 0}, inv, parallel, min, max, 1.5)
	require.False(t, ok)

	// parallel ray on the slab boundary still counts
	_, ok = intersectBox(mgl64.Vec3{-3, 1, 1}, inv, parallel, min, max, math.Inf(1))
	require.True(t, ok)

	// parallel ray outside the slab
	_, ok = intersectBox(mgl64.Vec3{-3, 1.01, 0}, inv, parallel, min, max, math.Inf(1))
	require.False(t, ok)

	// box behind the origin
	_, ok = intersectBox(mgl64.Vec3{3, 0, 0}, inv, parallel, min, max, math.Inf(1))
	require.False(t, ok)
}

func TestNewRay(t *testing.T) {
	r := NewRay(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 0, 5})
	require.InDelta(t, 1.0, r.Direction.Len(), 1e-12)
	require.True(t, math.IsInf(r.far(), 1))
	require.Equal(t, mgl64.Vec3{1, 2, 5}, r.At(2))

	require.True(t, math.IsInf(Ray{}.far(), 1))
	require.Equal(t, 2.0, Ray{Far: 2}.far())
}
