package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type faceSpec struct {
	normal mgl64.Vec3
	u, v   int
}

// boxFaces lists the six axis-aligned faces; u and v are the in-plane axes.
var boxFaces = []faceSpec{
	{mgl64.Vec3{1, 0, 0}, 1, 2},
	{mgl64.Vec3{-1, 0, 0}, 1, 2},
	{mgl64.Vec3{0, 1, 0}, 0, 2},
	{mgl64.Vec3{0, -1, 0}, 0, 2},
	{mgl64.Vec3{0, 0, 1}, 0, 1},
	{mgl64.Vec3{0, 0, -1}, 0, 1},
}

// NewBoxGeometry creates a box of the given size centered at the origin with
// 4 vertices per face and outward facing counter-clockwise triangles.
func NewBoxGeometry(width, height, depth float64) *Geometry {
	half := mgl64.Vec3{width / 2, height / 2, depth / 2}
	g := &Geometry{
		Positions: make([]mgl64.Vec3, 0, 24),
		Normals:   make([]mgl64.Vec3, 0, 24),
		Indices:   make([]uint32, 0, 36),
	}

	for _, face := range boxFaces {
		perp := 3 - face.u - face.v

		var corners [4]mgl64.Vec3
		for i, uv := range [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			corners[i][perp] = face.normal[perp] * half[perp]
			corners[i][face.u] = uv[0] * half[face.u]
			corners[i][face.v] = uv[1] * half[face.v]
		}

		swap := (face.normal[perp] < 0) != (perp == 1)
		if swap {
			corners[1], corners[3] = corners[3], corners[1]
		}

		base := uint32(len(g.Positions))
		for _, c := range corners {
			g.Positions = append(g.Positions, c)
			g.Normals = append(g.Normals, face.normal)
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// NewCubeGeometry creates a cube with the given edge length.
func NewCubeGeometry(edge float64) *Geometry {
	return NewBoxGeometry(edge, edge, edge)
}

// NewSphereGeometry creates a UV sphere centered at the origin.
func NewSphereGeometry(radius float64, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	g := &Geometry{}
	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		theta := v * math.Pi
		grid[iy] = make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * math.Pi
			p := mgl64.Vec3{
				-radius * math.Cos(phi) * math.Sin(theta),
				radius * math.Cos(theta),
				radius * math.Sin(phi) * math.Sin(theta),
			}
			grid[iy][ix] = uint32(len(g.Positions))
			g.Positions = append(g.Positions, p)
			g.Normals = append(g.Normals, p.Normalize())
		}
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}
