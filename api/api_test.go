package api

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/t0oms/voxelize/scene"
	"github.com/t0oms/voxelize/voxel"
)

func glbBytes(t *testing.T, node scene.Node) []byte {
	s := scene.New()
	s.Add(node)
	var buf bytes.Buffer
	require.NoError(t, scene.EncodeGLB(&buf, s))
	return buf.Bytes()
}

func TestVoxelizeGLB(t *testing.T) {
	mat := scene.NewMaterial("green", [4]float64{0, 1, 0, 1})
	model := glbBytes(t, scene.NewMesh("cube", scene.NewCubeGeometry(1), mat))

	out, err := VoxelizeGLB(model, 1)
	require.NoError(t, err)

	g, err := scene.DecodeGLTF(bytes.NewReader(out), "voxels")
	require.NoError(t, err)
	require.Len(t, g.Children(), 7)

	r, _ := g.Children()[0].AsRenderable()
	require.Equal(t, mat.Color, r.Material.Color)
}

func TestVoxelizeGLBErrors(t *testing.T) {
	_, err := VoxelizeGLB([]byte("garbage"), 1)
	require.Error(t, err)

	model := glbBytes(t, scene.NewMesh("cube", scene.NewCubeGeometry(1), nil))
	_, err = VoxelizeGLB(model, 0)
	require.ErrorIs(t, err, voxel.ErrInvalidDensity)
}

func TestVoxelizeOBJ(t *testing.T) {
	// a closed tetrahedron
	obj := `v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
f 1 3 2
f 1 2 4
f 1 4 3
f 2 3 4
`
	out, err := VoxelizeOBJ([]byte(obj), 2)
	require.NoError(t, err)

	g, err := scene.DecodeGLTF(bytes.NewReader(out), "voxels")
	require.NoError(t, err)
	require.NotEmpty(t, g.Children())
}
