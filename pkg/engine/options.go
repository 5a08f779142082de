package engine

import (
	"time"

	"github.com/taigrr/radiance/pkg/math3d"
	"github.com/taigrr/radiance/pkg/models"
	"github.com/taigrr/radiance/pkg/render"
	"github.com/taigrr/radiance/pkg/scene"
)

// Options holds every tunable of an Engine.
type Options struct {
	Width  int
	Height int

	// GIScale and Light only shape the scene DemoScene builds. New takes
	// both from the scene it is given.
	GIScale float64
	Light   math3d.Vec3

	BakeInterval time.Duration
	BakeWorkers  int

	// SpinRate is how far the first object turns about Y each frame, in
	// radians.
	SpinRate float64
	Shading  render.Shading

	// Smooth animates camera input with springs instead of jumping.
	Smooth bool
	FPS    int
}

// DefaultOptions returns the settings of the demo.
func DefaultOptions() Options {
	return Options{
		Width:        800,
		Height:       600,
		GIScale:      0.1,
		Light:        render.DefaultDirectionalLight().Direction,
		BakeInterval: 0,
		BakeWorkers:  1,
		SpinRate:     0.001,
		Shading:      render.DefaultShading(),
		Smooth:       true,
		FPS:          60,
	}
}

// DemoScene builds the demo scene with the configured light and irradiance
// map scale.
func (o Options) DemoScene(mesh *models.Mesh, tex *render.Texture) (*scene.Scene, error) {
	return scene.Demo(mesh, tex, render.DirectionalLight{Direction: o.Light}, o.GIScale)
}
