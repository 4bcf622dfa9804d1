package scene

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// The builder creates a leaf once a node holds this many triangles or less.
const defaultLeafSize = 4

// bvhNode is stored in a contiguous list. Leafs reference a range of the
// triangle permutation; inner nodes reference their right child (the left
// child always follows its parent).
type bvhNode struct {
	min, max mgl64.Vec3

	right int
	start int
	count int
}

func (n *bvhNode) isLeaf() bool {
	return n.count > 0
}

type bvh struct {
	nodes []bvhNode
	tris  []int
}

type bvhItem struct {
	tri      int
	min, max mgl64.Vec3
	center   mgl64.Vec3
}

// buildBVH partitions the geometry triangles with median splits along the
// longest axis of the centroid bounds.
func buildBVH(g *Geometry, leafSize int) *bvh {
	count := g.TriangleCount()
	items := make([]bvhItem, count)
	for i := 0; i < count; i++ {
		a, b, c := g.Triangle(i)
		box := EmptyBox().ExpandByPoint(a).ExpandByPoint(b).ExpandByPoint(c)
		items[i] = bvhItem{tri: i, min: box.Min, max: box.Max, center: box.Center()}
	}

	tree := &bvh{
		nodes: make([]bvhNode, 0, 2*count/leafSize+1),
		tris:  make([]int, 0, count),
	}
	if count > 0 {
		tree.partition(items, leafSize)
	}
	return tree
}

// Partition work list and return node index.
func (t *bvh) partition(items []bvhItem, leafSize int) int {
	box := EmptyBox()
	centers := EmptyBox()
	for _, it := range items {
		box = box.ExpandByPoint(it.min).ExpandByPoint(it.max)
		centers = centers.ExpandByPoint(it.center)
	}

	index := len(t.nodes)
	t.nodes = append(t.nodes, bvhNode{min: box.Min, max: box.Max})

	side := centers.Size()
	axis := 0
	if side[1] > side[axis] {
		axis = 1
	}
	if side[2] > side[axis] {
		axis = 2
	}

	// Not enough items, or all centroids coincide: create a leaf
	if len(items) <= leafSize || side[axis] == 0 {
		t.nodes[index].start = len(t.tris)
		t.nodes[index].count = len(items)
		for _, it := range items {
			t.tris = append(t.tris, it.tri)
		}
		return index
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].center[axis] < items[j].center[axis]
	})
	mid := len(items) / 2

	t.partition(items[:mid], leafSize)
	right := t.partition(items[mid:], leafSize)
	t.nodes[index].right = right
	return index
}

// traverse calls visit for every triangle whose node box the ray enters
// within far.
func (t *bvh) traverse(origin, dir mgl64.Vec3, far float64, visit func(tri int)) {
	if len(t.nodes) == 0 {
		return
	}

	var inv mgl64.Vec3
	var parallel [3]bool
	for axis := 0; axis < 3; axis++ {
		if math.Abs(dir[axis]) < 1e-12 {
			parallel[axis] = true
			continue
		}
		inv[axis] = 1 / dir[axis]
	}

	stack := make([]int, 0, 64)
	stack = append(stack, 0)
	for len(stack) > 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := &t.nodes[index]
		if _, ok := intersectBox(origin, inv, parallel, node.min, node.max, far); !ok {
			continue
		}
		if node.isLeaf() {
			for _, tri := range t.tris[node.start : node.start+node.count] {
				visit(tri)
			}
			continue
		}
		stack = append(stack, node.right, index+1)
	}
}
