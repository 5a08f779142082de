// Package engine drives a scene: it renders frames on the caller's goroutine
// while a Baker refreshes irradiance maps on its own.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/radiance/pkg/gimap"
	"github.com/taigrr/radiance/pkg/log"
	"github.com/taigrr/radiance/pkg/math3d"
	"github.com/taigrr/radiance/pkg/render"
	"github.com/taigrr/radiance/pkg/scene"
)

var logger = log.New("engine")

// ErrInvalidSize is returned for a frame with a non-positive dimension.
var ErrInvalidSize = errors.New("invalid frame size")

// FrameStats describes the frames rendered so far.
type FrameStats struct {
	Frames  uint64
	Last    time.Duration
	Average time.Duration
	// Render holds the rasterizer counters of the last frame.
	Render render.Stats
}

// Engine owns the camera, the render target, and the baker of one scene.
// Frame, Resize, Controller and DebugText belong to a single rendering
// goroutine; the baker runs on its own once Start is called.
type Engine struct {
	opts       Options
	scene      *scene.Scene
	camera     *render.Camera
	controller *Controller
	fb         *render.Framebuffer
	rast       *render.Rasterizer
	baker      *gimap.Baker
	group      *errgroup.Group

	frames uint64
	last   time.Duration
	total  time.Duration
}

// New creates an engine rendering sc into an opts.Width x opts.Height
// framebuffer.
func New(sc *scene.Scene, opts Options) (*Engine, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}

	cam := render.NewCamera()
	fb := render.NewFramebuffer(opts.Width, opts.Height)
	rast := render.NewRasterizer(fb)
	rast.Shading = opts.Shading

	baker := gimap.NewBaker(sc.Bakeables(), sc.Light.Direction)
	baker.Interval = opts.BakeInterval
	baker.Workers = max(1, opts.BakeWorkers)

	logger.Debugf("engine: %dx%d, %d objects, smooth=%v", opts.Width, opts.Height, len(sc.Objects()), opts.Smooth)

	return &Engine{
		opts:       opts,
		scene:      sc,
		camera:     cam,
		controller: NewController(cam, opts.FPS, opts.Smooth),
		fb:         fb,
		rast:       rast,
		baker:      baker,
	}, nil
}

// Frame spins the first object, moves the camera, and redraws every object.
func (e *Engine) Frame() {
	start := time.Now()

	objects := e.scene.Objects()
	if len(objects) > 0 && e.opts.SpinRate != 0 {
		objects[0].Rotate(math3d.AngleY(e.opts.SpinRate))
	}

	e.controller.Update(e.camera)
	e.camera.Update(e.fb.Width, e.fb.Height)

	e.rast.BeginFrame()
	for _, obj := range objects {
		e.rast.DrawObject(obj, e.camera, e.scene.Light)
	}

	e.last = time.Since(start)
	e.total += e.last
	e.frames++
}

// Framebuffer returns the current render target. It is replaced by Resize.
func (e *Engine) Framebuffer() *render.Framebuffer {
	return e.fb
}

// Resize replaces the render target with one of the given size. Sizes that
// already match are a no-op.
func (e *Engine) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width == e.fb.Width && height == e.fb.Height {
		return nil
	}

	shading, noCull := e.rast.Shading, e.rast.DisableFrustumCulling
	e.fb = render.NewFramebuffer(width, height)
	e.rast = render.NewRasterizer(e.fb)
	e.rast.Shading = shading
	e.rast.DisableFrustumCulling = noCull
	return nil
}

// Camera returns the camera. Its inputs are overwritten by the controller
// every frame; use Controller to move it.
func (e *Engine) Camera() *render.Camera {
	return e.camera
}

// Controller returns the camera input controller.
func (e *Engine) Controller() *Controller {
	return e.controller
}

// Scene returns the scene being drawn.
func (e *Engine) Scene() *scene.Scene {
	return e.scene
}

// Baker returns the irradiance baker. Its passes may be driven directly
// instead of calling Start.
func (e *Engine) Baker() *gimap.Baker {
	return e.baker
}

// Start runs the baker in the background until ctx ends. Calling it again
// has no effect.
func (e *Engine) Start(ctx context.Context) {
	if e.group != nil {
		return
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.baker.Run(gctx)
	})
	e.group = g
}

// Wait blocks until the background baker has stopped. Cancellation is not
// an error.
func (e *Engine) Wait() error {
	if e.group == nil {
		return nil
	}
	err := e.group.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Stats returns the frame counters.
func (e *Engine) Stats() FrameStats {
	s := FrameStats{
		Frames: e.frames,
		Last:   e.last,
		Render: e.rast.Stats,
	}
	if e.frames > 0 {
		s.Average = e.total / time.Duration(e.frames)
	}
	return s
}

// DebugText summarizes frame and bake timings for an on-screen overlay.
func (e *Engine) DebugText() string {
	fs := e.Stats()
	bs := e.baker.Stats()

	var b strings.Builder
	fmt.Fprintf(&b, "frame %s (avg %s)\n", ms(fs.Last), ms(fs.Average))
	fmt.Fprintf(&b, "bake  %s (avg %s, %d passes)\n", ms(bs.Last), ms(bs.Average), bs.Passes)
	fmt.Fprintf(&b, "tris  %d drawn, %d back, %d culled objects\n", fs.Render.Drawn, fs.Render.BackFaces, fs.Render.ObjectsCulled)
	return b.String()
}

func ms(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
}
