package engine

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/radiance/pkg/render"
)

// Action is a discrete camera input.
type Action int

const (
	ZoomIn    Action = iota // distance -= Step
	ZoomOut                 // distance += Step
	YawLeft                 // yaw += Step
	YawRight                // yaw -= Step
	PitchDown               // pitch -= Step
	PitchUp                 // pitch += Step
	PanUp                   // target y += Step
	PanDown                 // target y -= Step
)

// Step is how far one action moves its camera value.
const Step = 0.1

// MinDistance keeps the orbit from passing through its target.
const MinDistance = 0.1

func (a Action) String() string {
	switch a {
	case ZoomIn:
		return "zoom-in"
	case ZoomOut:
		return "zoom-out"
	case YawLeft:
		return "yaw-left"
	case YawRight:
		return "yaw-right"
	case PitchDown:
		return "pitch-down"
	case PitchUp:
		return "pitch-up"
	case PanUp:
		return "pan-up"
	case PanDown:
		return "pan-down"
	default:
		return "unknown"
	}
}

// axis animates one camera value toward its target with a spring.
type axis struct {
	Position float64
	Target   float64
	velocity float64
}

func (a *axis) update(spring harmonica.Spring, smooth bool) {
	if !smooth {
		a.Position, a.velocity = a.Target, 0
		return
	}
	a.Position, a.velocity = spring.Update(a.Position, a.velocity, a.Target)
}

// Controller turns actions into camera motion. Actions move targets; Update
// moves the camera toward them once per frame. Not safe for concurrent use.
type Controller struct {
	Smooth bool

	distance, yaw, pitch, panY axis
	spring                     harmonica.Spring
}

// NewController starts at the current state of cam. fps is the rate at which
// Update will be called.
func NewController(cam *render.Camera, fps int, smooth bool) *Controller {
	if fps <= 0 {
		fps = 60
	}
	c := &Controller{
		Smooth: smooth,
		// Critically damped: no overshoot past a clamped pitch.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
	c.Sync(cam)
	return c
}

// Sync drops any pending motion and takes cam's values as both position and
// target.
func (c *Controller) Sync(cam *render.Camera) {
	c.distance = axis{Position: cam.Distance, Target: cam.Distance}
	c.yaw = axis{Position: cam.Yaw, Target: cam.Yaw}
	c.pitch = axis{Position: cam.Pitch, Target: cam.Pitch}
	c.panY = axis{Position: cam.Translation.Y, Target: cam.Translation.Y}
}

// Apply moves the target of the value a controls by one Step.
func (c *Controller) Apply(a Action) {
	switch a {
	case ZoomIn:
		c.distance.Target -= Step
	case ZoomOut:
		c.distance.Target += Step
	case YawLeft:
		c.yaw.Target += Step
	case YawRight:
		c.yaw.Target -= Step
	case PitchDown:
		c.pitch.Target -= Step
	case PitchUp:
		c.pitch.Target += Step
	case PanUp:
		c.panY.Target += Step
	case PanDown:
		c.panY.Target -= Step
	}
	c.distance.Target = math.Max(MinDistance, c.distance.Target)
	c.pitch.Target = math.Max(-render.MaxPitch, math.Min(render.MaxPitch, c.pitch.Target))
}

// Update advances every value one frame toward its target and writes the
// result into cam.
func (c *Controller) Update(cam *render.Camera) {
	c.distance.update(c.spring, c.Smooth)
	c.yaw.update(c.spring, c.Smooth)
	c.pitch.update(c.spring, c.Smooth)
	c.panY.update(c.spring, c.Smooth)

	cam.Distance = math.Max(MinDistance, c.distance.Position)
	cam.Yaw = c.yaw.Position
	cam.Pitch = c.pitch.Position
	cam.Translation.Y = c.panY.Position
}
