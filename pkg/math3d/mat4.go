package math3d

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Mat4 is a 4x4 matrix in column-major order, the same layout as
// mgl64.Mat4, so element (row, col) is m[row+col*4].
type Mat4 [16]float64

func (a Vec3) gl() mgl64.Vec3 { return mgl64.Vec3{a.X, a.Y, a.Z} }

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4(mgl64.Ident4())
}

// Translate returns a translation by v.
func Translate(v Vec3) Mat4 {
	return Mat4(mgl64.Translate3D(v.X, v.Y, v.Z))
}

// Scale returns a per-axis scale by v.
func Scale(v Vec3) Mat4 {
	return Mat4(mgl64.Scale3D(v.X, v.Y, v.Z))
}

// FromQuat returns the rotation matrix of a unit quaternion.
func FromQuat(q mgl64.Quat) Mat4 {
	return Mat4(q.Mat4())
}

// LookAt returns a right-handed view matrix from eye towards center.
func LookAt(eye, center, up Vec3) Mat4 {
	return Mat4(mgl64.LookAtV(eye.gl(), center.gl(), up.gl()))
}

// Perspective returns an OpenGL projection with clip-space depth in [-1, 1].
// fovy is the vertical field of view in radians and aspect is width/height.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	return Mat4(mgl64.Perspective(fovy, aspect, near, far))
}

// Mul returns a * b.
func (a Mat4) Mul(b Mat4) Mat4 {
	return Mat4(mgl64.Mat4(a).Mul4(mgl64.Mat4(b)))
}

// MulVec3 transforms v as a point (w=1) and divides by the resulting w
// unless it is zero.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	r := m.MulVec4(v.Extend(1))
	if r.W == 0 {
		return Vec3{r.X, r.Y, r.Z}
	}
	return Vec3{r.X / r.W, r.Y / r.W, r.Z / r.W}
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	r := mgl64.Mat4(m).Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, v.W})
	return Vec4{r[0], r[1], r[2], r[3]}
}
