package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/taigrr/radiance/pkg/gimap"
	"github.com/taigrr/radiance/pkg/log"
	"github.com/taigrr/radiance/pkg/math3d"
	"github.com/taigrr/radiance/pkg/models"
	"github.com/taigrr/radiance/pkg/render"
)

var logger = log.New("scene")

var (
	// ErrEmptyMesh is returned when an object would have no triangles.
	ErrEmptyMesh = errors.New("mesh has no triangles")
	// ErrNoTexture is returned when an object is added without a texture.
	ErrNoTexture = errors.New("object has no texture")
)

// DefaultGIScale is the irradiance map size relative to the texture.
const DefaultGIScale = 0.1

// Scene is the arena that owns every object and the light.
type Scene struct {
	Light   render.DirectionalLight
	GIScale float64

	mu      sync.RWMutex
	objects []*Object
	nextID  int
}

// New creates an empty scene.
func New(light render.DirectionalLight, giScale float64) *Scene {
	if giScale <= 0 {
		giScale = DefaultGIScale
	}
	return &Scene{Light: light, GIScale: giScale}
}

// Add creates an object from a triangle list, builds its irradiance map, and
// assigns the next id. Ids start at 0 and only grow.
func (s *Scene) Add(tris []render.Triangle, tex *render.Texture, xf math3d.Transform) (*Object, error) {
	if len(tris) == 0 {
		return nil, ErrEmptyMesh
	}
	if tex == nil {
		return nil, ErrNoTexture
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	obj := &Object{
		id:     s.nextID,
		tris:   tris,
		bounds: boundsOf(tris),
		tex:    tex,
		xf:     xf,
	}
	obj.gi = gimap.New(obj.id, tex, s.GIScale, tris)
	s.nextID++
	s.objects = append(s.objects, obj)

	logger.Debugf("object %d: %d triangles, irradiance map %dx%d",
		obj.id, len(tris), obj.gi.Width(), obj.gi.Height())

	return obj, nil
}

// Objects returns the objects in insertion order.
func (s *Scene) Objects() []*Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Object(nil), s.objects...)
}

// Bakeables returns the objects as bake sources.
func (s *Scene) Bakeables() []gimap.Bakeable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]gimap.Bakeable, len(s.objects))
	for i, o := range s.objects {
		out[i] = o
	}
	return out
}

// DemoTransforms are the placements of the demo scene: three cubes around
// the origin and a thin slab above them.
func DemoTransforms() []math3d.Transform {
	return []math3d.Transform{
		math3d.FromTranslation(3, 0, 0),
		math3d.FromTranslation(0, -3, 0),
		math3d.FromTranslation(0, 0, 3),
		math3d.FromScale(5, 0.01, 5).WithTranslation(0, 1.5, 0),
	}
}

// Demo builds the demo scene, placing mesh at each of DemoTransforms.
func Demo(mesh *models.Mesh, tex *render.Texture, light render.DirectionalLight, giScale float64) (*Scene, error) {
	s := New(light, giScale)
	tris := mesh.Triangles()
	for i, xf := range DemoTransforms() {
		if _, err := s.Add(tris, tex, xf); err != nil {
			return nil, fmt.Errorf("add demo object %d: %w", i, err)
		}
	}
	logger.Infof("demo scene: %d objects of %q", len(s.Objects()), mesh.Name)
	return s, nil
}
