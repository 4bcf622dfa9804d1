package scene

import (
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

type meshKey struct {
	geometry *Geometry
	material *Material
}

type gltfExporter struct {
	doc       *gltf.Document
	meshes    map[meshKey]int
	materials map[*Material]int
}

// EncodeGLB writes every live renderable of the scene as a GLB document.
// The hierarchy is flattened: each renderable becomes a root node carrying
// its world translation. Renderables sharing a geometry and material share
// one glTF mesh.
func EncodeGLB(w io.Writer, s *Scene) error {
	exp := &gltfExporter{
		doc:       gltf.NewDocument(),
		meshes:    make(map[meshKey]int),
		materials: make(map[*Material]int),
	}
	exp.doc.Asset.Generator = "voxelize"

	for _, root := range s.Nodes() {
		Walk(root, func(n Node, world mgl64.Vec3) {
			r, ok := n.AsRenderable()
			if !ok || r.Geometry == nil || r.Geometry.TriangleCount() == 0 {
				return
			}
			meshIdx := exp.mesh(r)
			node := &gltf.Node{
				Name:        n.Name(),
				Mesh:        gltf.Index(meshIdx),
				Translation: [3]float64{world[0], world[1], world[2]},
			}
			exp.doc.Nodes = append(exp.doc.Nodes, node)
			exp.doc.Scenes[0].Nodes = append(exp.doc.Scenes[0].Nodes, len(exp.doc.Nodes)-1)
		})
	}

	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	return enc.Encode(exp.doc)
}

func (exp *gltfExporter) mesh(r Renderable) int {
	key := meshKey{geometry: r.Geometry, material: r.Material}
	if idx, ok := exp.meshes[key]; ok {
		return idx
	}

	g := r.Geometry
	indices := g.Indices
	if len(indices) == 0 {
		indices = make([]uint32, len(g.Positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	positions := make([][3]float32, len(g.Positions))
	for i, p := range g.Positions {
		positions[i] = [3]float32{float32(p[0]), float32(p[1]), float32(p[2])}
	}
	normals := g.Normals
	if len(normals) != len(g.Positions) {
		normals = vertexNormals(g.Positions, indices)
	}
	normals32 := make([][3]float32, len(normals))
	for i, n := range normals {
		normals32[i] = [3]float32{float32(n[0]), float32(n[1]), float32(n[2])}
	}

	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION: modeler.WritePosition(exp.doc, positions),
			gltf.NORMAL:   modeler.WriteNormal(exp.doc, normals32),
		},
		Indices: gltf.Index(modeler.WriteIndices(exp.doc, indices)),
	}
	if r.Material != nil {
		prim.Material = gltf.Index(exp.material(r.Material))
	}

	name := ""
	if r.Material != nil {
		name = r.Material.Name
	}
	exp.doc.Meshes = append(exp.doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
	idx := len(exp.doc.Meshes) - 1
	exp.meshes[key] = idx
	return idx
}

func (exp *gltfExporter) material(m *Material) int {
	if idx, ok := exp.materials[m]; ok {
		return idx
	}
	color := m.Color
	out := &gltf.Material{
		Name: m.Name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &color,
			MetallicFactor:  gltf.Float(m.Metallic),
			RoughnessFactor: gltf.Float(m.Roughness),
		},
		AlphaMode:   gltf.AlphaOpaque,
		DoubleSided: m.Side == DoubleSide,
	}
	if color[3] < 1 {
		out.AlphaMode = gltf.AlphaBlend
	}
	exp.doc.Materials = append(exp.doc.Materials, out)
	idx := len(exp.doc.Materials) - 1
	exp.materials[m] = idx
	return idx
}

// vertexNormals averages the face normals around each vertex.
func vertexNormals(positions []mgl64.Vec3, indices []uint32) []mgl64.Vec3 {
	normals := make([]mgl64.Vec3, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		v0, v1, v2 := indices[i], indices[i+1], indices[i+2]
		p0, p1, p2 := positions[v0], positions[v1], positions[v2]
		cross := p1.Sub(p0).Cross(p2.Sub(p0))
		normals[v0] = normals[v0].Add(cross)
		normals[v1] = normals[v1].Add(cross)
		normals[v2] = normals[v2].Add(cross)
	}
	for i, n := range normals {
		if n.Len() > 0 {
			normals[i] = n.Normalize()
		}
	}
	return normals
}
