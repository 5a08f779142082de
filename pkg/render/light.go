package render

import "github.com/taigrr/radiance/pkg/math3d"

// DirectionalLight is a single light direction. It is passed by value and
// never changes after the scene is built. The direction is used as given;
// it is not normalized.
type DirectionalLight struct {
	Direction math3d.Vec3
}

// DefaultDirectionalLight returns the light used by the demo scene.
func DefaultDirectionalLight() DirectionalLight {
	return DirectionalLight{Direction: math3d.V3(0.1, 0.5, -1)}
}
