package utils

import (
	"fmt"

	"github.com/t0oms/voxelize/scene"
)

// Supported procedural shapes.
const (
	ShapeBox    = "box"
	ShapeSphere = "sphere"
)

// GenModelOptions describes a procedural model.
type GenModelOptions struct {
	Shape string
	// Size is the box edge or the sphere diameter.
	Size     float64
	Segments int
	// Color is a #RRGGBB or #RRGGBBAA base color; empty keeps the default.
	Color string
}

// GenerateModel builds a single-mesh group for opts.
func GenerateModel(opts GenModelOptions) (*scene.Group, error) {
	if !(opts.Size > 0) {
		return nil, fmt.Errorf("size must be positive: %v", opts.Size)
	}

	var geom *scene.Geometry
	switch opts.Shape {
	case ShapeBox:
		geom = scene.NewCubeGeometry(opts.Size)
	case ShapeSphere:
		segs := opts.Segments
		if segs < 3 {
			segs = 16
		}
		geom = scene.NewSphereGeometry(opts.Size/2, segs*2, segs)
	default:
		return nil, fmt.Errorf("unknown shape %q", opts.Shape)
	}

	mat := scene.DefaultMaterial()
	if opts.Color != "" {
		rgba, err := scene.ParseHexColor(opts.Color)
		if err != nil {
			return nil, err
		}
		mat.Color = rgba
	}

	g := scene.NewGroup(opts.Shape)
	g.Add(scene.NewMesh(opts.Shape, geom, mat))
	return g, nil
}

// RunGenModel writes a procedural model to outPath as GLB.
func RunGenModel(opts GenModelOptions, outPath string) error {
	model, err := GenerateModel(opts)
	if err != nil {
		return err
	}
	sc := scene.New()
	sc.Add(model)
	if err := scene.SaveGLB(outPath, sc); err != nil {
		return fmt.Errorf("save %s: %w", outPath, err)
	}
	logger.Infof("wrote %s model to %s", opts.Shape, outPath)
	return nil
}
