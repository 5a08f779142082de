// Package models provides triangle meshes: the glTF loader and procedural
// shapes, both producing the triangle lists the renderer consumes.
package models

import (
	"errors"

	"github.com/taigrr/radiance/pkg/math3d"
	"github.com/taigrr/radiance/pkg/render"
)

var (
	// ErrNoGeometry is returned when an asset contains no triangles.
	ErrNoGeometry = errors.New("no triangle geometry")
	// ErrUnsupportedFormat is returned for files that are not .gltf or .glb.
	ErrUnsupportedFormat = errors.New("unsupported model format")
)

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face is a triangle as three indices into Mesh.Vertices.
type Face struct {
	V [3]int
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Bounds returns the bounding box computed by CalculateBounds.
func (m *Mesh) Bounds() render.AABB {
	return render.AABB{Min: m.BoundsMin, Max: m.BoundsMax}
}

// CalculateNormals computes face normals and assigns them to vertices.
// Vertices shared between faces end up with the normal of the last face.
func (m *Mesh) CalculateNormals() {
	m.flatNormals(m.Faces)
}

// CalculateSmoothNormals computes area-weighted averaged normals.
func (m *Mesh) CalculateSmoothNormals() {
	m.smoothNormals(m.Faces)
}

func (m *Mesh) flatNormals(faces []Face) {
	for _, f := range faces {
		normal := m.faceNormal(f)
		for _, i := range f.V {
			m.Vertices[i].Normal = normal.Normalize()
		}
	}
}

// smoothNormals rewrites the normals of the vertices faces use and leaves
// every other vertex alone.
func (m *Mesh) smoothNormals(faces []Face) {
	for _, f := range faces {
		for _, i := range f.V {
			m.Vertices[i].Normal = math3d.Zero3()
		}
	}

	for _, f := range faces {
		normal := m.faceNormal(f) // Don't normalize yet
		for _, i := range f.V {
			m.Vertices[i].Normal = m.Vertices[i].Normal.Add(normal)
		}
	}

	for _, f := range faces {
		for _, i := range f.V {
			m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
		}
	}
}

func (m *Mesh) faceNormal(f Face) math3d.Vec3 {
	v0 := m.Vertices[f.V[0]].Position
	v1 := m.Vertices[f.V[1]].Position
	v2 := m.Vertices[f.V[2]].Position
	return v1.Sub(v0).Cross(v2.Sub(v0))
}

// Triangles expands the indexed faces into a flat triangle list, in face
// order.
func (m *Mesh) Triangles() []render.Triangle {
	tris := make([]render.Triangle, len(m.Faces))
	for i, f := range m.Faces {
		for j, idx := range f.V {
			v := m.Vertices[idx]
			tris[i].V[j] = render.Vertex{Position: v.Position, Normal: v.Normal, UV: v.UV}
		}
	}
	return tris
}
