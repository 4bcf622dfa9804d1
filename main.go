//go:build !(js && wasm)

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/t0oms/voxelize/log"
	"github.com/t0oms/voxelize/utils"
	"github.com/t0oms/voxelize/voxel"
	"github.com/urfave/cli"
)

var logger = log.New("voxelize")

func setupLogging(ctx *cli.Context) error {
	if name := ctx.GlobalString("log-level"); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		log.SetLevel(level)
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
	return nil
}

// loadConfig applies, in order, the defaults, the --config file and any
// flag or environment override.
func loadConfig(ctx *cli.Context) (voxel.Config, error) {
	cfg := voxel.DefaultConfig()
	if path := ctx.GlobalString("config"); path != "" {
		var err error
		if cfg, err = voxel.LoadConfig(path); err != nil {
			return cfg, err
		}
	}

	if ctx.IsSet("density") {
		cfg.Density = ctx.Float64("density")
	}
	if ctx.IsSet("max-cells") {
		cfg.MaxCells = ctx.Int("max-cells")
	}
	if ctx.IsSet("workers") {
		cfg.Workers = ctx.Int("workers")
	}
	if ctx.IsSet("tile-size") {
		cfg.TileSize = ctx.Int("tile-size")
	}
	return cfg, cfg.Validate()
}

func voxelizeModel(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}
	if ctx.NArg() != 2 {
		return cli.NewExitError("expected input and output file arguments", 1)
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	res, err := utils.RunVoxelize(runCtx, ctx.Args().Get(0), ctx.Args().Get(1), cfg, reg)

	if path := ctx.String("metrics-file"); path != "" {
		if werr := prometheus.WriteToTextfile(path, reg); werr != nil {
			logger.Warningf("writing metrics to %s: %v", path, werr)
		}
	}
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	fmt.Printf("%d voxels (%s grid, %d cells) written to %s in %v\n",
		res.Occupied, res.Extent, res.Cells, ctx.Args().Get(1), res.Duration)
	return nil
}

func inspectModel(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}
	if ctx.NArg() != 1 {
		return cli.NewExitError("expected a model file argument", 1)
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	if err := utils.RunInspect(ctx.Args().First(), cfg.Density, cfg.MaxCells, os.Stdout); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}

func genModel(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}
	if ctx.NArg() != 2 {
		return cli.NewExitError("expected shape and output file arguments", 1)
	}
	opts := utils.GenModelOptions{
		Shape:    ctx.Args().Get(0),
		Size:     ctx.Float64("size"),
		Segments: ctx.Int("segments"),
		Color:    ctx.String("color"),
	}
	if err := utils.RunGenModel(opts, ctx.Args().Get(1)); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}

func densityFlags() []cli.Flag {
	return []cli.Flag{
		cli.Float64Flag{
			Name:   "density, d",
			Value:  voxel.DefaultDensity,
			Usage:  "voxels per unit length",
			EnvVar: "VOXELIZE_DENSITY",
		},
		cli.IntFlag{
			Name:   "max-cells",
			Value:  voxel.DefaultMaxCells,
			Usage:  "refuse grids with more cells than this",
			EnvVar: "VOXELIZE_MAX_CELLS",
		},
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "voxelize"
	app.Usage = "replace 3D models with cube voxels"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "debug, info, notice, warning or error",
			EnvVar: "VOXELIZE_LOG_LEVEL",
		},
		cli.StringFlag{
			Name:   "config, c",
			Usage:  "JSON file with voxelization settings",
			EnvVar: "VOXELIZE_CONFIG",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "voxelize",
			Usage: "voxelize a model and write the result as glb",
			Description: `
Load a .glb, .gltf or .obj model (optionally .zst compressed), center it on the
origin and sample a regular grid over its bounding box. Every cell touching the
model surface becomes a cube sharing the model's first material.

An output path ending in .zst is written zstd compressed.`,
			ArgsUsage: "input_model output.glb",
			Flags: append(densityFlags(),
				cli.IntFlag{
					Name:   "workers",
					Usage:  "number of sampling workers (default: number of CPUs)",
					EnvVar: "VOXELIZE_WORKERS",
				},
				cli.IntFlag{
					Name:   "tile-size",
					Value:  voxel.DefaultTileSize,
					Usage:  "edge length in cells of one sampling task",
					EnvVar: "VOXELIZE_TILE_SIZE",
				},
				cli.StringFlag{
					Name:   "metrics-file",
					Usage:  "write prometheus metrics to this file when done",
					EnvVar: "VOXELIZE_METRICS_FILE",
				},
			),
			Action: voxelizeModel,
		},
		{
			Name:      "inspect",
			Usage:     "print model bounds and the grid a voxelize run would sample",
			ArgsUsage: "input_model",
			Flags:     densityFlags(),
			Action:    inspectModel,
		},
		{
			Name:      "genmodel",
			Usage:     "generate a procedural box or sphere model",
			ArgsUsage: "box|sphere output.glb",
			Flags: []cli.Flag{
				cli.Float64Flag{
					Name:  "size",
					Value: 1,
					Usage: "box edge or sphere diameter",
				},
				cli.IntFlag{
					Name:  "segments",
					Value: 16,
					Usage: "sphere latitude segments",
				},
				cli.StringFlag{
					Name:  "color",
					Usage: "base color as #RRGGBB or #RRGGBBAA",
				},
			},
			Action: genModel,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
