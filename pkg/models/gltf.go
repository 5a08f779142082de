package models

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/radiance/pkg/log"
	"github.com/taigrr/radiance/pkg/math3d"
)

var logger = log.New("models")

// GLTFLoader loads .gltf and .glb files into a Mesh.
type GLTFLoader struct {
	// CalculateNormals fills in normals when the asset has none.
	CalculateNormals bool
	// SmoothNormals averages computed normals across shared vertices
	// instead of using per-face normals.
	SmoothNormals bool
}

// NewGLTFLoader creates a loader that computes flat normals when missing.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{CalculateNormals: true}
}

// LoadGLTF loads a glTF or GLB file with the default loader.
func LoadGLTF(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load reads every triangle primitive of every mesh in the document and
// merges them into one Mesh. Buffers may be embedded, external files, or
// data URIs. UVs are kept as stored and winding is left untouched.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
	default:
		return nil, fmt.Errorf("load %s: %w", path, ErrUnsupportedFormat)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))

	// Face ranges of primitives that came without normals.
	var missing [][2]int

	for _, m := range doc.Meshes {
		for i, prim := range m.Primitives {
			first := len(mesh.Faces)
			ok, err := l.readPrimitive(doc, prim, mesh)
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", m.Name, i, err)
			}
			if !ok {
				missing = append(missing, [2]int{first, len(mesh.Faces)})
			}
		}
	}

	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("load %s: %w", path, ErrNoGeometry)
	}

	if l.CalculateNormals {
		// Primitives never share vertices, so each range only touches its own.
		for _, r := range missing {
			faces := mesh.Faces[r[0]:r[1]]
			if l.SmoothNormals {
				mesh.smoothNormals(faces)
			} else {
				mesh.flatNormals(faces)
			}
		}
	}

	mesh.CalculateBounds()
	logger.Infof("loaded %s: %d vertices, %d triangles", mesh.Name, len(mesh.Vertices), len(mesh.Faces))

	return mesh, nil
}

// readPrimitive appends the primitive's vertices and faces to mesh. It
// reports whether the primitive carried normals.
func (l *GLTFLoader) readPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *Mesh) (bool, error) {
	if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
		// Skip non-triangle primitives (lines, points, etc)
		return true, nil
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return true, nil
	}

	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return false, fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	normIdx, hasNormals := prim.Attributes[gltf.NORMAL]
	if hasNormals {
		normals, err = modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
		if err != nil {
			return false, fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs [][2]float32
	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
		if err != nil {
			return false, fmt.Errorf("read uvs: %w", err)
		}
	}

	base := len(mesh.Vertices)
	for i, p := range positions {
		v := MeshVertex{Position: vec3(p)}
		if i < len(normals) {
			v.Normal = vec3(normals[i])
		}
		if i < len(uvs) {
			v.UV = math3d.V2(float64(uvs[i][0]), float64(uvs[i][1]))
		}
		mesh.Vertices = append(mesh.Vertices, v)
	}

	if prim.Indices != nil {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return false, fmt.Errorf("read indices: %w", err)
		}
		for i := 0; i+2 < len(indices); i += 3 {
			f := Face{V: [3]int{base + int(indices[i]), base + int(indices[i+1]), base + int(indices[i+2])}}
			for _, idx := range f.V {
				if idx >= len(mesh.Vertices) {
					return false, fmt.Errorf("index %d out of range (%d vertices)", idx, len(mesh.Vertices))
				}
			}
			mesh.Faces = append(mesh.Faces, f)
		}
	} else {
		// No indices, assume sequential triangles
		for i := 0; i+2 < len(positions); i += 3 {
			mesh.Faces = append(mesh.Faces, Face{V: [3]int{base + i, base + i + 1, base + i + 2}})
		}
	}

	return hasNormals, nil
}

func vec3(f [3]float32) math3d.Vec3 {
	return math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
}
