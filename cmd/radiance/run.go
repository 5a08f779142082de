package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/taigrr/radiance/pkg/display"
	"github.com/taigrr/radiance/pkg/engine"
	"github.com/taigrr/radiance/pkg/log"
	"github.com/taigrr/radiance/pkg/math3d"
	"github.com/taigrr/radiance/pkg/models"
	"github.com/taigrr/radiance/pkg/render"
)

var logger = log.New("radiance")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

func runWindow(ctx *cli.Context) error {
	return run(ctx, func(c context.Context, eng *engine.Engine) error {
		return display.RunWindow(c, eng, "radiance")
	})
}

func runTerminal(ctx *cli.Context) error {
	return run(ctx, func(c context.Context, eng *engine.Engine) error {
		return display.RunTerminal(c, eng, ctx.Int("fps"))
	})
}

func runSnapshot(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := options(ctx)
	if err != nil {
		return err
	}
	opts.Width, opts.Height = ctx.Int("width"), ctx.Int("height")

	eng, err := buildEngine(ctx, opts)
	if err != nil {
		return err
	}

	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return display.RunSnapshot(c, eng, display.SnapshotConfig{
		BakePasses: ctx.Int("bake-passes"),
		Frames:     ctx.Int("frames"),
		Out:        ctx.String("out"),
	})
}

// run builds the engine, bakes in the background, and hands the engine to an
// interactive presenter until it returns.
func run(ctx *cli.Context, present func(context.Context, *engine.Engine) error) error {
	setupLogging(ctx)

	opts, err := options(ctx)
	if err != nil {
		return err
	}
	eng, err := buildEngine(ctx, opts)
	if err != nil {
		return err
	}

	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	c, cancel := context.WithCancel(c)
	defer cancel()

	eng.Start(c)
	presentErr := present(c, eng)
	cancel()
	if err := eng.Wait(); err != nil {
		return fmt.Errorf("baker: %w", err)
	}
	return presentErr
}

func options(ctx *cli.Context) (engine.Options, error) {
	opts := engine.DefaultOptions()
	if scale := ctx.Float64("gi-scale"); scale > 0 {
		opts.GIScale = scale
	}
	opts.BakeInterval = ctx.Duration("bake-interval")
	opts.BakeWorkers = ctx.Int("bake-workers")
	opts.Smooth = !ctx.Bool("no-smooth")

	if s := ctx.String("light"); s != "" {
		light, err := parseVec3(s)
		if err != nil {
			return opts, fmt.Errorf("parse --light: %w", err)
		}
		opts.Light = light
	}
	return opts, nil
}

func buildEngine(ctx *cli.Context, opts engine.Options) (*engine.Engine, error) {
	mesh := models.NewCube(1)
	if path := ctx.String("model"); path != "" {
		m, err := models.LoadGLTF(path)
		if err != nil {
			return nil, err
		}
		mesh = m
	}

	tex := render.NewCheckerTexture(256, 256, 32, math3d.V3(0.9, 0.9, 0.9), math3d.V3(0.6, 0.6, 0.65))
	if path := ctx.String("texture"); path != "" {
		t, err := render.LoadTexture(path)
		if err != nil {
			return nil, err
		}
		logger.Infof("loaded %s: %dx%d", path, t.Width, t.Height)
		tex = t
	}

	sc, err := opts.DemoScene(mesh, tex)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	return engine.New(sc, opts)
}

func parseVec3(s string) (math3d.Vec3, error) {
	var v math3d.Vec3
	if _, err := fmt.Sscanf(s, "%g,%g,%g", &v.X, &v.Y, &v.Z); err != nil {
		return v, fmt.Errorf("want x,y,z, got %q: %w", s, err)
	}
	return v, nil
}
