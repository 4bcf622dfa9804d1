package voxel

import (
	"encoding/binary"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// Cell is one grid position with its world-space center.
type Cell struct {
	Index    [3]int
	Position mgl64.Vec3
	Occupied bool
}

// Grid is a dense occupancy grid indexed [x][y][z]. It lives for a single
// voxelization pass.
type Grid struct {
	size  [3]int
	cells []Cell
}

func newGrid(size [3]int) *Grid {
	return &Grid{
		size:  size,
		cells: make([]Cell, size[0]*size[1]*size[2]),
	}
}

func (g *Grid) offset(i, j, k int) int {
	return (i*g.size[1]+j)*g.size[2] + k
}

// Size returns the number of cells per axis.
func (g *Grid) Size() [3]int {
	return g.size
}

// Len returns the total number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// At returns the cell at index (i, j, k). It panics when out of range.
func (g *Grid) At(i, j, k int) *Cell {
	return &g.cells[g.offset(i, j, k)]
}

// Each calls fn for every cell in x, y, z index order.
func (g *Grid) Each(fn func(c *Cell)) {
	for i := range g.cells {
		fn(&g.cells[i])
	}
}

// OccupiedCount returns the number of occupied cells.
func (g *Grid) OccupiedCount() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Occupied {
			n++
		}
	}
	return n
}

// Fingerprint hashes the grid size and the occupied index set. Two grids
// with the same fingerprint hold the same voxels.
func (g *Grid) Fingerprint() uint64 {
	h := xxhash.New()
	var b [4]byte
	for _, s := range g.size {
		binary.LittleEndian.PutUint32(b[:], uint32(s))
		_, _ = h.Write(b[:])
	}
	for i := range g.cells {
		if !g.cells[i].Occupied {
			continue
		}
		binary.LittleEndian.PutUint32(b[:], uint32(i))
		_, _ = h.Write(b[:])
	}
	return h.Sum64()
}
