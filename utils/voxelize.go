package utils

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/t0oms/voxelize/log"
	"github.com/t0oms/voxelize/scene"
	"github.com/t0oms/voxelize/voxel"
)

var logger = log.New("utils")

// RunVoxelize loads the model at inPath, replaces it with its voxelized
// version and writes the resulting scene to outPath as GLB. Metrics are
// registered on reg when it is not nil.
func RunVoxelize(ctx context.Context, inPath, outPath string, cfg voxel.Config, reg prometheus.Registerer) (*voxel.Result, error) {
	model, err := scene.LoadModel(inPath)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", inPath, err)
	}
	offset := scene.Recenter(model)
	logger.Debugf("recentered %s by %v", inPath, offset)

	sc := scene.New()
	sc.Add(model)

	var opts []voxel.Option
	if reg != nil {
		opts = append(opts, voxel.WithMetrics(voxel.NewMetrics(reg)))
	}
	pipeline := voxel.NewPipeline(sc, cfg, opts...)

	res, err := pipeline.Voxelize(ctx, model)
	if err != nil {
		return nil, err
	}

	if err := scene.SaveGLB(outPath, sc); err != nil {
		return nil, fmt.Errorf("save %s: %w", outPath, err)
	}
	logger.Infof("wrote %d voxels to %s (fingerprint %016x)", len(res.Voxels), outPath, res.Fingerprint)
	return res, nil
}
