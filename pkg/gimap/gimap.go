// Package gimap bakes per-object irradiance maps: a texel grid that records,
// for every texel of an object's UV layout, the triangle that owns it and a
// light intensity recomputed in the background as the object turns.
//
// Intensities are stored as float64 bit patterns in atomic 64-bit cells.
// Each cell is independent: a reader sees either the old or the new value of
// a cell, never a torn one, and nothing orders cells relative to each other
// or to the frame being drawn. The renderer reads whatever value is current.
package gimap

import (
	"image"
	"math"
	"sync/atomic"

	"github.com/taigrr/radiance/pkg/math3d"
	"github.com/taigrr/radiance/pkg/render"
)

// Source is the geometry an irradiance map is baked from.
type Source interface {
	Triangles() []render.Triangle
	// Transform returns a snapshot of the current transform.
	Transform() math3d.Transform
}

// Texel is the provenance of one map cell.
type Texel struct {
	Position math3d.Vec3 // Object-space position interpolated across the triangle
	Triangle int         // Index into the object's triangle list
}

// Map is a per-object irradiance map.
type Map struct {
	objectID int
	width    int
	height   int
	values   []atomic.Uint64
	texels   []Texel // Written by New only
}

// New builds the map for an object whose diffuse texture is tex. The grid is
// tex.Size scaled by scale (at least one texel per axis). Each triangle's UV
// footprint is scan-converted into the grid; later triangles overwrite
// earlier ones where footprints share texels, and texels no footprint covers
// keep triangle 0. Every intensity starts at 1, which the rasterizer reads
// as a surface facing fully away from the light, so objects draw dark until
// their first bake pass.
func New(objectID int, tex *render.Texture, scale float64, tris []render.Triangle) *Map {
	width := max(1, int(tex.Size.X*scale))
	height := max(1, int(tex.Size.Y*scale))

	m := &Map{
		objectID: objectID,
		width:    width,
		height:   height,
		values:   make([]atomic.Uint64, width*height),
		texels:   make([]Texel, width*height),
	}

	one := math.Float64bits(1)
	for i := range m.values {
		m.values[i].Store(one)
	}

	sx, sy := float64(width-1), float64(height-1)
	for id, tri := range tris {
		var pts [3]image.Point
		for i, v := range tri.V {
			pts[i] = image.Pt(int(v.UV.X*sx), int(v.UV.Y*sy))
		}
		pa, pb, pc := tri.V[0].Position, tri.V[1].Position, tri.V[2].Position

		render.ScanTriangle(width, height, pts[0], pts[1], pts[2], func(x, y int, bary math3d.Vec3) {
			m.texels[y*width+x] = Texel{
				Position: pa.Scale(bary.X).Add(pb.Scale(bary.Y)).Add(pc.Scale(bary.Z)),
				Triangle: id,
			}
		})
	}

	return m
}

// ObjectID returns the id of the object the map belongs to.
func (m *Map) ObjectID() int { return m.objectID }

// Width returns the grid width in texels.
func (m *Map) Width() int { return m.width }

// Height returns the grid height in texels.
func (m *Map) Height() int { return m.height }

// Texel returns the provenance recorded for cell (x, y).
func (m *Map) Texel(x, y int) Texel {
	return m.texels[m.index(x, y)]
}

// Value returns the current intensity of cell (x, y). Coordinates are
// clamped to the grid.
func (m *Map) Value(x, y int) float64 {
	return math.Float64frombits(m.values[m.index(x, y)].Load())
}

// Sample returns the intensity of the cell nearest to uv, addressing the grid
// the same way footprints were scanned: uv * (dim - 1), truncated.
func (m *Map) Sample(u, v float64) float64 {
	return m.Value(int(u*float64(m.width-1)), int(v*float64(m.height-1)))
}

func (m *Map) set(i int, v float64) {
	m.values[i].Store(math.Float64bits(v))
}

func (m *Map) index(x, y int) int {
	x = max(0, min(m.width-1, x))
	y = max(0, min(m.height-1, y))
	return y*m.width + x
}

// Bake runs one pass: it snapshots the source transform once, then stores
// dot(normalize(R * n), light) in every cell, where n is the first vertex
// normal of the cell's triangle and R the snapshot rotation. The light
// direction is used as given.
func (m *Map) Bake(src Source, light math3d.Vec3) {
	tris := src.Triangles()
	if len(tris) == 0 {
		return
	}
	xf := src.Transform()

	intensity := make([]float64, len(tris))
	for i, tri := range tris {
		intensity[i] = Intensity(xf, tri, light)
	}

	for i, texel := range m.texels {
		if texel.Triangle >= len(intensity) {
			continue
		}
		m.set(i, intensity[texel.Triangle])
	}
}

// Intensity is the value a bake stores for texels owned by tri.
func Intensity(xf math3d.Transform, tri render.Triangle, light math3d.Vec3) float64 {
	return xf.RotateDir(tri.V[0].Normal).Normalize().Dot(light)
}
