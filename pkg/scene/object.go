// Package scene owns the objects that are drawn and baked. Objects live for
// the whole process: a Scene is built once at startup and only the object
// transforms change afterwards.
package scene

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/taigrr/radiance/pkg/gimap"
	"github.com/taigrr/radiance/pkg/math3d"
	"github.com/taigrr/radiance/pkg/render"
)

var (
	_ render.Drawable = (*Object)(nil)
	_ gimap.Bakeable  = (*Object)(nil)
)

// Object is a mesh instance with its own transform and irradiance map.
// Triangles, texture, and bounds never change after construction and may be
// read from any goroutine; the transform is guarded and only ever copied out.
type Object struct {
	id     int
	tris   []render.Triangle
	bounds render.AABB
	tex    *render.Texture
	gi     *gimap.Map

	mu sync.Mutex
	xf math3d.Transform
}

// ID returns the object's scene-unique id.
func (o *Object) ID() int { return o.id }

// Triangles returns the object's immutable triangle list.
func (o *Object) Triangles() []render.Triangle { return o.tris }

// Texture returns the shared diffuse texture.
func (o *Object) Texture() *render.Texture { return o.tex }

// Bounds returns the object-space bounding box.
func (o *Object) Bounds() render.AABB { return o.bounds }

// Irradiance returns the object's irradiance map.
func (o *Object) Irradiance() *gimap.Map { return o.gi }

// Lightmap returns the irradiance map for shading, or nil if there is none.
func (o *Object) Lightmap() render.ScalarSampler {
	if o.gi == nil {
		return nil
	}
	return o.gi
}

// Transform returns a copy of the current transform.
func (o *Object) Transform() math3d.Transform {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.xf
}

// SetTransform replaces the transform.
func (o *Object) SetTransform(xf math3d.Transform) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.xf = xf
}

// Rotate applies q after the current rotation.
func (o *Object) Rotate(q mgl64.Quat) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.xf = o.xf.Rotated(q)
}

func boundsOf(tris []render.Triangle) render.AABB {
	b := render.AABB{Min: tris[0].V[0].Position, Max: tris[0].V[0].Position}
	for _, tri := range tris {
		for _, v := range tri.V {
			b.Min = b.Min.Min(v.Position)
			b.Max = b.Max.Max(v.Position)
		}
	}
	return b
}
