package render

import (
	"math"

	"github.com/taigrr/radiance/pkg/math3d"
)

// Camera limits and clip planes.
const (
	MaxPitch = math.Pi / 3
	NearClip = 0.01
	FarClip  = 100.0
)

// Camera orbits a pan target. Translation, Pitch, Yaw and Distance are the
// inputs; Position and ViewProjection are derived by Update once per frame.
type Camera struct {
	Translation math3d.Vec3 // Pan target the camera looks at
	Pitch       float64     // Rotation around X (radians), clamped to +-MaxPitch
	Yaw         float64     // Rotation around Y (radians)
	Distance    float64     // Orbit radius

	position math3d.Vec3
	viewProj math3d.Mat4
}

// NewCamera creates a camera four units in front of the origin.
func NewCamera() *Camera {
	return &Camera{
		Distance: 4,
		viewProj: math3d.Identity(),
	}
}

// Update clamps the pitch and recomputes the camera position and the
// view-projection matrix for a width x height target. It must run once per
// frame before any drawing; height must be non-zero.
func (c *Camera) Update(width, height int) {
	c.Pitch = math.Max(-MaxPitch, math.Min(MaxPitch, c.Pitch))

	c.position = math3d.V3(0, 0, c.Distance).
		RotateX(c.Pitch).
		RotateY(c.Yaw).
		Add(c.Translation)

	// The field of view is the aspect ratio in radians.
	aspect := float64(width) / float64(height)
	proj := math3d.Perspective(aspect, aspect, NearClip, FarClip)

	// Screen rows grow downward, so flip Y to keep world +Y up on screen.
	proj = math3d.Scale(math3d.V3(1, -1, 1)).Mul(proj)

	view := math3d.LookAt(c.position, c.Translation, math3d.Up())
	c.viewProj = proj.Mul(view)
}

// Position returns the camera position computed by the last Update.
func (c *Camera) Position() math3d.Vec3 {
	return c.position
}

// ViewProjection returns the matrix computed by the last Update.
func (c *Camera) ViewProjection() math3d.Mat4 {
	return c.viewProj
}
