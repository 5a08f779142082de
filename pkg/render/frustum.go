package render

import (
	"github.com/taigrr/radiance/pkg/math3d"
)

// Plane is the set of points p with Normal.Dot(p) + D == 0.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize scales the plane so the normal has unit length. A zero normal is
// left alone.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to point,
// positive on the side the normal points to.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum is the six planes of a view volume with normals pointing inward.
type Frustum struct {
	Planes [6]Plane
}

// Plane indices, in the order NewFrustumFromMatrix fills them.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts the world-space frustum of a view-projection
// matrix (Gribb/Hartmann): each plane is the last row plus or minus one of
// the first three.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	// Row r of a column-major matrix is m[r], m[r+4], m[r+8], m[r+12].
	row := func(r int) [4]float64 {
		return [4]float64{m[r], m[r+4], m[r+8], m[r+12]}
	}
	w := row(3)

	var f Frustum
	for axis := range 3 {
		a := row(axis)
		for side, sign := range [2]float64{1, -1} {
			p := Plane{
				Normal: math3d.V3(w[0]+sign*a[0], w[1]+sign*a[1], w[2]+sign*a[2]),
				D:      w[3] + sign*a[3],
			}
			p.Normalize()
			f.Planes[axis*2+side] = p
		}
	}
	return f
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// corner returns one of the eight corners; bit 0 of i picks X, bit 1 Y and
// bit 2 Z from Max instead of Min.
func (b AABB) corner(i int) math3d.Vec3 {
	c := b.Min
	if i&1 != 0 {
		c.X = b.Max.X
	}
	if i&2 != 0 {
		c.Y = b.Max.Y
	}
	if i&4 != 0 {
		c.Z = b.Max.Z
	}
	return c
}

// Transform returns the box that bounds b's eight corners after m.
func (b AABB) Transform(m math3d.Mat4) AABB {
	first := m.MulVec3(b.corner(0))
	out := AABB{Min: first, Max: first}
	for i := 1; i < 8; i++ {
		p := m.MulVec3(b.corner(i))
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}

// IntersectSides tests box against the left, right, bottom, and top planes
// only. The rasterizer neither clips nor rejects pixels by the near and far
// planes, so only the sides can prove an object invisible.
func (f Frustum) IntersectSides(box AABB) bool {
	return f.intersect(box, FrustumLeft, FrustumTop)
}

func (f Frustum) intersect(box AABB, first, last int) bool {
	for _, plane := range f.Planes[first : last+1] {
		// The corner furthest along the normal; if it is outside, all are.
		i := 0
		if plane.Normal.X >= 0 {
			i |= 1
		}
		if plane.Normal.Y >= 0 {
			i |= 2
		}
		if plane.Normal.Z >= 0 {
			i |= 4
		}
		if plane.DistanceToPoint(box.corner(i)) < 0 {
			return false
		}
	}
	return true
}
