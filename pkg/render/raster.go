package render

import (
	"image"
	"math"

	"github.com/taigrr/radiance/pkg/math3d"
)

// ScanTriangle visits every cell of a width x height grid covered by the
// triangle abc, calling fn with the cell and its barycentric weights for
// (a, b, c). The scan is limited to the triangle's bounding box clamped to
// the grid. Weights come from cross products against the triangle edges; a
// cell is covered when no weight is negative.
//
// Triangles whose doubled area is below one cell are skipped entirely and
// ScanTriangle reports false. The same scan serves screen space (the
// rasterizer) and texel space (irradiance map construction).
func ScanTriangle(width, height int, a, b, c image.Point, fn func(x, y int, bary math3d.Vec3)) bool {
	l1x := float64(c.X - a.X)
	l1y := float64(b.X - a.X)
	l2x := float64(c.Y - a.Y)
	l2y := float64(b.Y - a.Y)

	uz := l1x*l2y - l1y*l2x
	if math.Abs(uz) < 1 {
		return false
	}

	minX := max(0, min(a.X, b.X, c.X))
	maxX := min(width-1, max(a.X, b.X, c.X))
	minY := max(0, min(a.Y, b.Y, c.Y))
	maxY := min(height-1, max(a.Y, b.Y, c.Y))

	for y := minY; y <= maxY; y++ {
		l2z := float64(a.Y - y)
		for x := minX; x <= maxX; x++ {
			l1z := float64(a.X - x)
			ux := l1y*l2z - l1z*l2y
			uy := l1z*l2x - l1x*l2z

			bary := math3d.V3(1-(ux+uy)/uz, uy/uz, ux/uz)
			if bary.X < 0 || bary.Y < 0 || bary.Z < 0 {
				continue
			}
			fn(x, y, bary)
		}
	}
	return true
}
