package render

import (
	"math"
	"testing"

	"github.com/taigrr/radiance/pkg/math3d"
)

func TestPlaneDistanceToPoint(t *testing.T) {
	// Plane at Z=0, normal pointing +Z
	plane := Plane{Normal: math3d.V3(0, 0, 1), D: 0}

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected float64
	}{
		{"origin", math3d.V3(0, 0, 0), 0},
		{"in front", math3d.V3(0, 0, 5), 5},
		{"behind", math3d.V3(0, 0, -3), -3},
		{"offset XY", math3d.V3(10, -5, 2), 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dist := plane.DistanceToPoint(tc.point)
			if math.Abs(dist-tc.expected) > 1e-9 {
				t.Errorf("got %v, want %v", dist, tc.expected)
			}
		})
	}
}

func TestPlaneNormalize(t *testing.T) {
	plane := Plane{Normal: math3d.V3(0, 3, 4), D: 10}
	plane.Normalize()

	if math.Abs(plane.Normal.Len()-1.0) > 1e-9 {
		t.Errorf("normalized normal length = %v, want 1.0", plane.Normal.Len())
	}
	// D should be scaled too (10/5 = 2)
	if math.Abs(plane.D-2.0) > 1e-9 {
		t.Errorf("D = %v, want 2.0", plane.D)
	}
}

func TestAABBTransform(t *testing.T) {
	box := AABB{Min: math3d.V3(-1, -1, -1), Max: math3d.V3(1, 1, 1)}

	moved := box.Transform(math3d.Translate(math3d.V3(5, 0, 0)))
	if moved.Min.X != 4 || moved.Max.X != 6 {
		t.Errorf("translated X range = [%v, %v], want [4, 6]", moved.Min.X, moved.Max.X)
	}

	// A 45 degree turn about Y widens the box to sqrt(2) in X and Z.
	turned := box.Transform(math3d.FromQuat(math3d.AngleY(math.Pi / 4)))
	if math.Abs(turned.Max.X-math.Sqrt2) > 1e-9 || math.Abs(turned.Max.Z-math.Sqrt2) > 1e-9 {
		t.Errorf("rotated max = %v, want (sqrt2, 1, sqrt2)", turned.Max)
	}
}

func TestFrustumFromCamera(t *testing.T) {
	cam := NewCamera()
	cam.Update(800, 600)
	f := NewFrustumFromMatrix(cam.ViewProjection())

	unit := func(c math3d.Vec3) AABB {
		return AABB{Min: c.Sub(math3d.V3(0.5, 0.5, 0.5)), Max: c.Add(math3d.V3(0.5, 0.5, 0.5))}
	}

	tests := []struct {
		name      string
		box       AABB
		wantAll   bool
		wantSides bool
	}{
		{"at target", unit(math3d.Zero3()), true, true},
		{"far right", unit(math3d.V3(100, 0, 0)), false, false},
		{"far above", unit(math3d.V3(0, 100, 0)), false, false},
		{"beyond far plane", unit(math3d.V3(0, 0, -200)), false, true},
		{"behind camera", unit(math3d.V3(0, 0, 10)), false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.intersect(tc.box, FrustumLeft, FrustumFar); got != tc.wantAll {
				t.Errorf("all six planes = %v, want %v", got, tc.wantAll)
			}
			if got := f.IntersectSides(tc.box); got != tc.wantSides {
				t.Errorf("IntersectSides = %v, want %v", got, tc.wantSides)
			}
		})
	}
}

func BenchmarkFrustumIntersectSides(b *testing.B) {
	cam := NewCamera()
	cam.Update(800, 600)
	f := NewFrustumFromMatrix(cam.ViewProjection())
	box := AABB{Min: math3d.V3(-1, -1, -1), Max: math3d.V3(1, 1, 1)}

	for b.Loop() {
		_ = f.IntersectSides(box)
	}
}
