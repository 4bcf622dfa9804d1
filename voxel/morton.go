package voxel

import "sort"

// tile is a box of cells [lo, hi) sampled by one pool task.
type tile struct {
	lo, hi [3]int
}

// mortonTiles splits a grid of the given size into tiles of edge tileSize
// and orders them along a Z-order curve so that neighboring tasks touch
// neighboring regions of the target.
func mortonTiles(size [3]int, tileSize int) []tile {
	var counts [3]int
	for a := 0; a < 3; a++ {
		counts[a] = (size[a] + tileSize - 1) / tileSize
	}

	type keyed struct {
		key uint64
		t   tile
	}
	tiles := make([]keyed, 0, counts[0]*counts[1]*counts[2])
	for tx := 0; tx < counts[0]; tx++ {
		for ty := 0; ty < counts[1]; ty++ {
			for tz := 0; tz < counts[2]; tz++ {
				var t tile
				for a, c := range [3]int{tx, ty, tz} {
					t.lo[a] = c * tileSize
					t.hi[a] = min(t.lo[a]+tileSize, size[a])
				}
				tiles = append(tiles, keyed{
					key: morton3D64(uint32(tx), uint32(ty), uint32(tz)),
					t:   t,
				})
			}
		}
	}
	sort.Slice(tiles, func(i, j int) bool { return tiles[i].key < tiles[j].key })

	out := make([]tile, len(tiles))
	for i := range tiles {
		out[i] = tiles[i].t
	}
	return out
}

func morton3D64(x, y, z uint32) uint64 {
	return part1By2(uint64(x)) |
		(part1By2(uint64(y)) << 1) |
		(part1By2(uint64(z)) << 2)
}

func part1By2(x uint64) uint64 {
	x &= 0x1fffff
	x = (x | (x << 32)) & 0x1f00000000ffff
	x = (x | (x << 16)) & 0x1f0000ff0000ff
	x = (x | (x << 8)) & 0x100f00f00f00f00f
	x = (x | (x << 4)) & 0x10c30c30c30c30c3
	x = (x | (x << 2)) & 0x1249249249249249
	return x
}
