package models

import "github.com/taigrr/radiance/pkg/math3d"

// cubeFace describes one side of the cube: its outward normal and two
// in-plane axes with right x up == normal, so corners listed
// counter-clockwise in (right, up) face outward.
type cubeFace struct {
	normal, right, up math3d.Vec3
}

var cubeFaces = [6]cubeFace{
	{math3d.V3(1, 0, 0), math3d.V3(0, 0, -1), math3d.V3(0, 1, 0)},
	{math3d.V3(-1, 0, 0), math3d.V3(0, 0, 1), math3d.V3(0, 1, 0)},
	{math3d.V3(0, 1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, -1)},
	{math3d.V3(0, -1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, 1)},
	{math3d.V3(0, 0, 1), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)},
	{math3d.V3(0, 0, -1), math3d.V3(-1, 0, 0), math3d.V3(0, 1, 0)},
}

// atlasInset keeps neighbouring faces' UV cells from touching.
const atlasInset = 0.02

// NewCube returns an axis-aligned cube with the given edge length, centered
// at the origin: 6 faces, 12 triangles, per-face normals. Each face maps to
// its own cell of a 3x2 UV atlas (+X, -X, +Y on the top row; -Y, +Z, -Z on
// the bottom), with image row 0 at the top of each face.
func NewCube(size float64) *Mesh {
	h := size / 2
	mesh := NewMesh("cube")

	corners := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	for i, f := range cubeFaces {
		u0 := float64(i%3)/3 + atlasInset
		u1 := float64(i%3+1)/3 - atlasInset
		v0 := float64(i/3)/2 + atlasInset
		v1 := float64(i/3+1)/2 - atlasInset

		base := len(mesh.Vertices)
		for _, c := range corners {
			pos := f.normal.Add(f.right.Scale(c[0])).Add(f.up.Scale(c[1])).Scale(h)
			uv := math3d.V2(
				u0+(c[0]+1)/2*(u1-u0),
				v1-(c[1]+1)/2*(v1-v0),
			)
			mesh.Vertices = append(mesh.Vertices, MeshVertex{Position: pos, Normal: f.normal, UV: uv})
		}

		mesh.Faces = append(mesh.Faces,
			Face{V: [3]int{base, base + 1, base + 2}},
			Face{V: [3]int{base, base + 2, base + 3}},
		)
	}

	mesh.CalculateBounds()
	return mesh
}
