package scene

import (
	"github.com/t0oms/voxelize/log"
)

// Scene is the root of a scene graph. It is not safe for concurrent
// mutation; the goroutine that owns it performs all Add/Remove/Dispose calls.
type Scene struct {
	logger log.Logger
	nodes  []Node
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{logger: log.New("scene")}
}

// Add attaches a node to the scene root.
func (s *Scene) Add(node Node) {
	s.nodes = append(s.nodes, node)
}

// Remove detaches a root node. It reports whether the node was attached.
func (s *Scene) Remove(node Node) bool {
	for i, n := range s.nodes {
		if n == node {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether node is attached to the scene root.
func (s *Scene) Contains(node Node) bool {
	for _, n := range s.nodes {
		if n == node {
			return true
		}
	}
	return false
}

// DisposeGeometry releases the geometry of a renderable node.
func (s *Scene) DisposeGeometry(node Node) {
	if r, ok := node.AsRenderable(); ok && r.Geometry != nil {
		r.Geometry.Dispose()
	}
}

// DisposeMaterial releases the material of a renderable node.
func (s *Scene) DisposeMaterial(node Node) {
	if r, ok := node.AsRenderable(); ok && r.Material != nil {
		r.Material.Dispose()
	}
}

// Nodes returns the root nodes in insertion order.
func (s *Scene) Nodes() []Node {
	return s.nodes
}

// Len returns the number of root nodes.
func (s *Scene) Len() int {
	return len(s.nodes)
}

// Clear detaches every root node without disposing anything.
func (s *Scene) Clear() {
	s.logger.Debugf("clearing %d nodes", len(s.nodes))
	s.nodes = nil
}
