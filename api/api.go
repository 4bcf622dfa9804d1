package api

import (
	"bytes"
	"context"
	"fmt"

	"github.com/t0oms/voxelize/scene"
	"github.com/t0oms/voxelize/voxel"
)

// VoxelizeGLB takes .glb (or .gltf with embedded buffers) bytes and returns
// .glb bytes holding one cube per occupied voxel at the given density.
func VoxelizeGLB(model []byte, density float64) ([]byte, error) {
	group, err := scene.DecodeGLTF(bytes.NewReader(model), "model")
	if err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return voxelizeGroup(group, density)
}

// VoxelizeOBJ is VoxelizeGLB for Wavefront OBJ input.
func VoxelizeOBJ(model []byte, density float64) ([]byte, error) {
	group, err := scene.DecodeOBJ(bytes.NewReader(model), "model")
	if err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return voxelizeGroup(group, density)
}

func voxelizeGroup(group *scene.Group, density float64) ([]byte, error) {
	scene.Recenter(group)
	sc := scene.New()
	sc.Add(group)

	cfg := voxel.DefaultConfig()
	cfg.Density = density
	if _, err := voxel.NewPipeline(sc, cfg).Voxelize(context.Background(), group); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := scene.EncodeGLB(&out, sc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
