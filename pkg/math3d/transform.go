package math3d

import "github.com/go-gl/mathgl/mgl64"

// Transform places an object in the world: scale first, then rotation, then
// translation. The zero value is not usable; start from NewTransform or one
// of the From* constructors.
type Transform struct {
	Translation Vec3
	Rotation    mgl64.Quat
	Scale       Vec3
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{
		Rotation: mgl64.QuatIdent(),
		Scale:    V3(1, 1, 1),
	}
}

// FromTranslation returns a transform that only translates.
func FromTranslation(x, y, z float64) Transform {
	t := NewTransform()
	t.Translation = V3(x, y, z)
	return t
}

// FromScale returns a transform that only scales.
func FromScale(x, y, z float64) Transform {
	t := NewTransform()
	t.Scale = V3(x, y, z)
	return t
}

// WithTranslation returns a copy of t with the translation replaced.
func (t Transform) WithTranslation(x, y, z float64) Transform {
	t.Translation = V3(x, y, z)
	return t
}

// Rotated returns a copy of t with q applied after the current rotation
// (rotation = rotation * q). The result is renormalized to keep repeated
// small increments from drifting.
func (t Transform) Rotated(q mgl64.Quat) Transform {
	t.Rotation = t.Rotation.Mul(q).Normalize()
	return t
}

// Apply transforms a point: R*(S*p) + T.
func (t Transform) Apply(p Vec3) Vec3 {
	return t.RotateDir(p.Mul(t.Scale)).Add(t.Translation)
}

// RotateDir rotates a direction by the rotation only. Normals are rotated
// this way by both the rasterizer and the irradiance baker.
func (t Transform) RotateDir(v Vec3) Vec3 {
	r := t.Rotation.Rotate(v.gl())
	return Vec3{r[0], r[1], r[2]}
}

// Matrix returns T * R * S.
func (t Transform) Matrix() Mat4 {
	return Translate(t.Translation).Mul(FromQuat(t.Rotation)).Mul(Scale(t.Scale))
}

// AngleY returns the quaternion for a rotation of angle radians about +Y.
func AngleY(angle float64) mgl64.Quat {
	return mgl64.QuatRotate(angle, mgl64.Vec3{0, 1, 0})
}
