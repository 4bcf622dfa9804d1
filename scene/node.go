package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Renderable is the drawable payload of a node.
type Renderable struct {
	Geometry *Geometry
	Material *Material
}

// Node is a scene-graph element. Positions are translations relative to the
// parent node.
type Node interface {
	Name() string
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
	Children() []Node
	// AsRenderable returns the drawable payload, if the node has one.
	AsRenderable() (Renderable, bool)
}

// Group is a node without geometry that only carries children.
type Group struct {
	name     string
	position mgl64.Vec3
	children []Node
}

// NewGroup creates an empty named group.
func NewGroup(name string) *Group {
	return &Group{name: name}
}

func (g *Group) Name() string { return g.name }
func (g *Group) Position() mgl64.Vec3 { return g.position }
func (g *Group) SetPosition(p mgl64.Vec3) { g.position = p }
func (g *Group) Children() []Node { return g.children }
func (g *Group) AsRenderable() (Renderable, bool) { return Renderable{}, false }

// Add appends children to the group.
func (g *Group) Add(nodes ...Node) {
	g.children = append(g.children, nodes...)
}

// Mesh is a node that draws a geometry with a material.
type Mesh struct {
	name     string
	position mgl64.Vec3
	geometry *Geometry
	material *Material
	children []Node
}

// NewMesh creates a named mesh at the origin.
func NewMesh(name string, geometry *Geometry, material *Material) *Mesh {
	return &Mesh{name: name, geometry: geometry, material: material}
}

func (m *Mesh) Name() string { return m.name }
func (m *Mesh) Position() mgl64.Vec3 { return m.position }
func (m *Mesh) SetPosition(p mgl64.Vec3) { m.position = p }
func (m *Mesh) Children() []Node { return m.children }

func (m *Mesh) AsRenderable() (Renderable, bool) {
	return Renderable{Geometry: m.geometry, Material: m.material}, true
}

// Add appends children to the mesh.
func (m *Mesh) Add(nodes ...Node) {
	m.children = append(m.children, nodes...)
}

// Walk visits node and its descendants depth first. The callback receives
// the accumulated world translation of each node.
func Walk(node Node, fn func(n Node, world mgl64.Vec3)) {
	walk(node, mgl64.Vec3{}, fn)
}

func walk(node Node, parent mgl64.Vec3, fn func(n Node, world mgl64.Vec3)) {
	world := parent.Add(node.Position())
	fn(node, world)
	for _, child := range node.Children() {
		walk(child, world, fn)
	}
}

// Object3D adds world-space queries to a root node.
type Object3D struct {
	Node
}

// NewObject3D wraps node.
func NewObject3D(node Node) Object3D {
	return Object3D{Node: node}
}

// BoundingBox returns the world-space bounds of every renderable in the
// subtree. The box is empty when there is no live geometry.
func (o Object3D) BoundingBox() Box3 {
	box := EmptyBox()
	Walk(o.Node, func(n Node, world mgl64.Vec3) {
		r, ok := n.AsRenderable()
		if !ok || r.Geometry == nil {
			return
		}
		box = box.Union(r.Geometry.BoundingBox().Translate(world))
	})
	return box
}

// Raycast intersects the ray with every renderable in the subtree and returns
// the hits sorted by distance.
func (o Object3D) Raycast(ray Ray) []Hit {
	var hits []Hit
	Walk(o.Node, func(n Node, world mgl64.Vec3) {
		r, ok := n.AsRenderable()
		if !ok || r.Geometry == nil {
			return
		}
		side := FrontSide
		if r.Material != nil {
			side = r.Material.Side
		}
		hits = r.Geometry.raycast(ray, side == FrontSide, side == BackSide, world, n, hits)
	})
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}
