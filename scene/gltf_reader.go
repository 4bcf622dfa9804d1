package scene

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// DecodeGLTF parses a glTF or GLB stream into a group holding one mesh per
// triangle primitive. Node transforms are baked into the vertex positions so
// every returned mesh sits at the group origin. External buffers are not
// resolved; use LoadModel for .gltf files that reference sibling files.
func DecodeGLTF(r io.Reader, name string) (*Group, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return groupFromDocument(doc, name)
}

type gltfImporter struct {
	doc       *gltf.Document
	group     *Group
	materials map[int]*Material
}

func groupFromDocument(doc *gltf.Document, name string) (*Group, error) {
	if len(doc.Scenes) == 0 {
		return nil, fmt.Errorf("%s: document has no scenes", name)
	}
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = int(*doc.Scene)
	}
	if sceneIdx >= len(doc.Scenes) {
		return nil, fmt.Errorf("%s: scene index %d out of range", name, sceneIdx)
	}

	imp := &gltfImporter{
		doc:       doc,
		group:     NewGroup(name),
		materials: make(map[int]*Material),
	}
	for _, nodeIdx := range doc.Scenes[sceneIdx].Nodes {
		if err := imp.visit(int(nodeIdx), mgl64.Ident4(), 0); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return imp.group, nil
}

// localMatrix returns the node matrix, or the TRS composition when the
// matrix is left at its identity default.
func localMatrix(node *gltf.Node) mgl64.Mat4 {
	m := mgl64.Mat4(node.MatrixOrDefault())
	if m != mgl64.Ident4() {
		return m
	}
	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()
	rot := mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}.Normalize()
	return mgl64.Translate3D(t[0], t[1], t[2]).
		Mul4(rot.Mat4()).
		Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}

func (imp *gltfImporter) visit(nodeIdx int, parent mgl64.Mat4, depth int) error {
	if nodeIdx < 0 || nodeIdx >= len(imp.doc.Nodes) {
		return fmt.Errorf("node index %d out of range", nodeIdx)
	}
	if depth > len(imp.doc.Nodes) {
		return fmt.Errorf("node hierarchy contains a cycle at node %d", nodeIdx)
	}
	node := imp.doc.Nodes[nodeIdx]
	world := parent.Mul4(localMatrix(node))

	if node.Mesh != nil {
		if err := imp.addMesh(node, int(*node.Mesh), world); err != nil {
			return err
		}
	}
	for _, child := range node.Children {
		if err := imp.visit(int(child), world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (imp *gltfImporter) addMesh(node *gltf.Node, meshIdx int, world mgl64.Mat4) error {
	if meshIdx >= len(imp.doc.Meshes) {
		return fmt.Errorf("mesh index %d out of range", meshIdx)
	}
	mesh := imp.doc.Meshes[meshIdx]
	name := node.Name
	if name == "" {
		name = mesh.Name
	}

	for primIdx, prim := range mesh.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(imp.doc, imp.doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: read positions: %w", mesh.Name, primIdx, err)
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(imp.doc, imp.doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("mesh %q primitive %d: read indices: %w", mesh.Name, primIdx, err)
			}
		}

		baked := make([]mgl64.Vec3, len(positions))
		for i, p := range positions {
			v := mgl64.Vec4{float64(p[0]), float64(p[1]), float64(p[2]), 1}
			baked[i] = world.Mul4x1(v).Vec3()
		}

		material := DefaultMaterial()
		if prim.Material != nil {
			material = imp.material(int(*prim.Material))
		}
		imp.group.Add(NewMesh(fmt.Sprintf("%s_%d", name, primIdx), NewGeometry(baked, indices), material))
	}
	return nil
}

func (imp *gltfImporter) material(idx int) *Material {
	if m, ok := imp.materials[idx]; ok {
		return m
	}
	if idx < 0 || idx >= len(imp.doc.Materials) {
		return DefaultMaterial()
	}
	src := imp.doc.Materials[idx]
	m := NewMaterial(src.Name, [4]float64{1, 1, 1, 1})
	m.Metallic = 1
	if pbr := src.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			m.Color = *pbr.BaseColorFactor
		}
		if pbr.MetallicFactor != nil {
			m.Metallic = *pbr.MetallicFactor
		}
		if pbr.RoughnessFactor != nil {
			m.Roughness = *pbr.RoughnessFactor
		}
	}
	if src.DoubleSided {
		m.Side = DoubleSide
	}
	imp.materials[idx] = m
	return m
}
