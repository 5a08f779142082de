package models

import (
	"errors"
	"testing"

	"github.com/taigrr/radiance/pkg/math3d"
)

func TestLoadGLTFMergesPrimitives(t *testing.T) {
	mesh, err := LoadGLTF("testdata/quad.gltf")
	if err != nil {
		t.Fatalf("LoadGLTF: %v", err)
	}

	if len(mesh.Vertices) != 7 || len(mesh.Faces) != 3 {
		t.Fatalf("got %d vertices / %d faces, want 7 / 3", len(mesh.Vertices), len(mesh.Faces))
	}

	// The second primitive has no indices; its faces are offset past the
	// first primitive's vertices.
	if got := mesh.Faces[2].V; got != [3]int{4, 5, 6} {
		t.Errorf("third face = %v, want [4 5 6]", got)
	}
	// Winding is kept as stored.
	if got := mesh.Faces[0].V; got != [3]int{0, 1, 2} {
		t.Errorf("first face = %v, want [0 1 2]", got)
	}

	if mesh.BoundsMin != math3d.V3(-1, -1, 0) || mesh.BoundsMax != math3d.V3(3, 1, 0) {
		t.Errorf("bounds = %v..%v", mesh.BoundsMin, mesh.BoundsMax)
	}
}

func TestLoadGLTFKeepsUVs(t *testing.T) {
	mesh, err := LoadGLTF("testdata/quad.gltf")
	if err != nil {
		t.Fatalf("LoadGLTF: %v", err)
	}

	if got := mesh.Vertices[0].UV; got != math3d.V2(0, 1) {
		t.Errorf("vertex 0 uv = %v, want (0, 1) unflipped", got)
	}
	if got := mesh.Vertices[4].UV; got != math3d.V2(0.25, 0.75) {
		t.Errorf("vertex 4 uv = %v, want (0.25, 0.75)", got)
	}
}

func TestLoadGLTFComputesMissingNormals(t *testing.T) {
	mesh, err := LoadGLTF("testdata/nonormals.gltf")
	if err != nil {
		t.Fatalf("LoadGLTF: %v", err)
	}

	for i, v := range mesh.Vertices {
		if v.Normal != math3d.V3(0, 0, 1) {
			t.Errorf("vertex %d normal = %v, want (0, 0, 1)", i, v.Normal)
		}
	}
}

func TestLoadGLTFKeepsSuppliedNormals(t *testing.T) {
	for _, smooth := range []bool{false, true} {
		loader := NewGLTFLoader()
		loader.SmoothNormals = smooth

		mesh, err := loader.Load("testdata/mixed.gltf")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(mesh.Vertices) != 6 || len(mesh.Faces) != 2 {
			t.Fatalf("got %d vertices / %d faces, want 6 / 2", len(mesh.Vertices), len(mesh.Faces))
		}

		// The first primitive carries (0,1,0) normals that do not match its
		// geometry; the second has none and gets the computed +Z.
		for i, v := range mesh.Vertices {
			want := math3d.V3(0, 1, 0)
			if i >= 3 {
				want = math3d.V3(0, 0, 1)
			}
			if v.Normal != want {
				t.Errorf("smooth=%v: vertex %d normal = %v, want %v", smooth, i, v.Normal, want)
			}
		}
	}
}

func TestLoadGLTFErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		want error
	}{
		{"only lines", "testdata/lines.gltf", ErrNoGeometry},
		{"wrong extension", "testdata/model.obj", ErrUnsupportedFormat},
		{"missing file", "testdata/missing.glb", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadGLTF(tc.path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestGLTFLoaderDefaults(t *testing.T) {
	loader := NewGLTFLoader()
	if !loader.CalculateNormals {
		t.Error("CalculateNormals should default to true")
	}
	if loader.SmoothNormals {
		t.Error("SmoothNormals should default to false")
	}
}
