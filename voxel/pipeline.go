package voxel

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/t0oms/voxelize/log"
	"github.com/t0oms/voxelize/scene"
)

// Graph is the scene service a pipeline mutates once sampling is done.
// *scene.Scene implements it.
type Graph interface {
	Add(node scene.Node)
	Remove(node scene.Node) bool
	DisposeGeometry(node scene.Node)
	DisposeMaterial(node scene.Node)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMetrics records pass metrics on m.
func WithMetrics(m *Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// Result describes a rendered pass.
type Result struct {
	PassID      uuid.UUID
	Dimensions  Dimensions
	Extent      Extent
	Cells       int
	Occupied    int
	Fingerprint uint64
	Voxels      []scene.Node
	Duration    time.Duration
}

// Pipeline replaces a target object in a scene graph with its voxelized
// version. It runs at most one pass at a time.
type Pipeline struct {
	graph   Graph
	logger  log.Logger
	metrics *Metrics

	mu  sync.Mutex
	cfg Config

	busy  atomic.Bool
	state atomic.Int32
}

// NewPipeline creates a pipeline operating on graph.
func NewPipeline(graph Graph, cfg Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		graph:  graph,
		cfg:    cfg,
		logger: log.New("voxel"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current pipeline stage.
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

// SetDensity changes the voxel density used by subsequent passes. A running
// pass keeps the density it started with.
func (p *Pipeline) SetDensity(density float64) error {
	if err := validateDensity(density); err != nil {
		return err
	}
	p.mu.Lock()
	p.cfg.Density = density
	p.mu.Unlock()
	return nil
}

// Config returns a copy of the current configuration.
func (p *Pipeline) Config() Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

// pass holds everything a single voxelization run computes.
type pass struct {
	id    uuid.UUID
	cfg   Config
	start time.Time

	stage State
	dims  Dimensions
	ext   Extent
	grid  *Grid
}

func (ps *pass) fail(err error) *PassError {
	cells := 0
	if ps.ext.Density > 0 {
		if n := ps.ext.cellEstimate(); n < math.MaxInt {
			cells = int(n)
		} else {
			cells = math.MaxInt
		}
	}
	return &PassError{
		PassID:     ps.id,
		Stage:      ps.stage,
		Density:    ps.cfg.Density,
		Dimensions: ps.dims,
		Extent:     ps.ext,
		Cells:      cells,
		Err:        err,
	}
}

// Voxelize runs one pass over target: it measures the target, samples the
// occupancy grid, then removes and disposes the target and adds one cube
// per occupied cell to the graph. The graph is only touched after sampling
// completes, so a failed or cancelled pass leaves it unchanged.
//
// A pass may start when the pipeline is idle or has rendered a previous
// pass. Calling Voxelize while a pass runs returns ErrBusy.
func (p *Pipeline) Voxelize(ctx context.Context, target scene.Node) (*Result, error) {
	if !p.busy.CompareAndSwap(false, true) {
		p.metrics.countPass(ErrBusy)
		return nil, ErrBusy
	}
	defer p.busy.Store(false)

	ps := &pass{
		id:    uuid.New(),
		cfg:   p.Config(),
		start: time.Now(),
	}

	res, err := p.run(ctx, ps, target)
	p.metrics.countPass(err)
	if err != nil {
		p.setState(Idle)
		perr := ps.fail(err)
		p.logger.Errorf("pass %s: %v", ps.id, perr.Err)
		return nil, perr
	}
	return res, nil
}

func (p *Pipeline) run(ctx context.Context, ps *pass, target scene.Node) (*Result, error) {
	if target == nil {
		return nil, ErrNoTarget
	}
	if err := validateDensity(ps.cfg.Density); err != nil {
		return nil, err
	}
	p.logger.Infof("pass %s: voxelizing %q at density %v", ps.id, target.Name(), ps.cfg.Density)

	p.enter(ps, Dimensioning)
	stageStart := time.Now()
	object := scene.NewObject3D(target)
	dims, err := ComputeDimensions(object.BoundingBox())
	if err != nil {
		return nil, err
	}
	ps.dims = dims
	ext, err := NewExtent(dims, ps.cfg.Density, ps.cfg.maxCells())
	ps.ext = ext
	if err != nil {
		return nil, err
	}
	p.metrics.observeStage(Dimensioning, stageStart)
	p.logger.Debugf("pass %s: dimensions %v, extent %v, %d cells", ps.id, dims, ext, ext.CellCount())

	if err := ctx.Err(); err != nil {
		return nil, ErrCancelled
	}

	p.enter(ps, Sampling)
	stageStart = time.Now()
	grid, err := BuildGrid(ctx, ext, Sampler{Target: object}, BuildOptions{
		Workers:  ps.cfg.workers(),
		TileSize: ps.cfg.tileSize(),
	})
	if err != nil {
		return nil, err
	}
	ps.grid = grid
	occupied := grid.OccupiedCount()
	p.metrics.observeStage(Sampling, stageStart)
	p.metrics.observeGrid(grid.Len(), occupied)
	p.logger.Debugf("pass %s: %d of %d cells occupied", ps.id, occupied, grid.Len())

	if err := ctx.Err(); err != nil {
		return nil, ErrCancelled
	}

	stageStart = time.Now()
	material := captureMaterial(target)
	if !p.graph.Remove(target) {
		p.logger.Warningf("pass %s: target %q was not attached to the scene", ps.id, target.Name())
	}
	scene.Walk(target, func(n scene.Node, _ mgl64.Vec3) {
		p.graph.DisposeGeometry(n)
		p.graph.DisposeMaterial(n)
	})
	voxels := Render(grid, ext, material, p.graph)
	p.enter(ps, Rendered)
	p.metrics.observeStage(Rendered, stageStart)

	res := &Result{
		PassID:      ps.id,
		Dimensions:  dims,
		Extent:      ext,
		Cells:       grid.Len(),
		Occupied:    occupied,
		Fingerprint: grid.Fingerprint(),
		Voxels:      voxels,
		Duration:    time.Since(ps.start),
	}
	p.logger.Noticef("pass %s: rendered %d voxels in %v", ps.id, len(voxels), res.Duration)
	return res, nil
}

func (p *Pipeline) enter(ps *pass, s State) {
	ps.stage = s
	p.setState(s)
}

func (p *Pipeline) setState(s State) {
	p.state.Store(int32(s))
}

// captureMaterial clones the first live material found in traversal order.
// Without one the voxels use the default material.
func captureMaterial(target scene.Node) *scene.Material {
	var found *scene.Material
	scene.Walk(target, func(n scene.Node, _ mgl64.Vec3) {
		if found != nil {
			return
		}
		if r, ok := n.AsRenderable(); ok && r.Material != nil && !r.Material.Disposed() {
			found = r.Material
		}
	})
	if found == nil {
		return scene.DefaultMaterial()
	}
	return found.Clone()
}

func passResult(err error) string {
	switch {
	case err == nil:
		return "rendered"
	case errors.Is(err, ErrCancelled):
		return "cancelled"
	case errors.Is(err, ErrBusy):
		return "busy"
	}
	return "failed"
}
