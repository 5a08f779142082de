package scene

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/taigrr/radiance/pkg/math3d"
	"github.com/taigrr/radiance/pkg/models"
	"github.com/taigrr/radiance/pkg/render"
)

func testTexture() *render.Texture {
	return render.NewSolidTexture(64, 64, math3d.V3(1, 1, 1))
}

func TestAddAssignsMonotonicIDs(t *testing.T) {
	s := New(render.DefaultDirectionalLight(), 0.5)
	tris := models.NewCube(1).Triangles()

	for want := range 5 {
		obj, err := s.Add(tris, testTexture(), math3d.NewTransform())
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if obj.ID() != want || obj.Irradiance().ObjectID() != want {
			t.Errorf("object id = %d (map %d), want %d", obj.ID(), obj.Irradiance().ObjectID(), want)
		}
	}

	objs := s.Objects()
	if len(objs) != 5 || len(s.Bakeables()) != 5 {
		t.Fatalf("scene holds %d objects / %d bakeables, want 5", len(objs), len(s.Bakeables()))
	}
	for i, o := range objs {
		if o.ID() != i {
			t.Errorf("Objects()[%d].ID() = %d", i, o.ID())
		}
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	s := New(render.DefaultDirectionalLight(), 0)

	if _, err := s.Add(nil, testTexture(), math3d.NewTransform()); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("empty mesh err = %v, want ErrEmptyMesh", err)
	}
	if _, err := s.Add(models.NewCube(1).Triangles(), nil, math3d.NewTransform()); !errors.Is(err, ErrNoTexture) {
		t.Errorf("nil texture err = %v, want ErrNoTexture", err)
	}
	if len(s.Objects()) != 0 {
		t.Error("rejected objects were added")
	}
	if s.GIScale != DefaultGIScale {
		t.Errorf("GIScale = %v, want default %v", s.GIScale, DefaultGIScale)
	}
}

func TestObjectAccessors(t *testing.T) {
	s := New(render.DefaultDirectionalLight(), 0.5)
	tex := testTexture()
	obj, err := s.Add(models.NewCube(2).Triangles(), tex, math3d.FromTranslation(1, 2, 3))
	if err != nil {
		t.Fatal(err)
	}

	if obj.Texture() != tex {
		t.Error("texture not shared by reference")
	}
	if len(obj.Triangles()) != 12 {
		t.Errorf("got %d triangles, want 12", len(obj.Triangles()))
	}
	if b := obj.Bounds(); b.Min != math3d.V3(-1, -1, -1) || b.Max != math3d.V3(1, 1, 1) {
		t.Errorf("bounds = %+v", b)
	}
	if obj.Lightmap() == nil {
		t.Error("Lightmap is nil")
	}
	if got := obj.Transform().Translation; got != math3d.V3(1, 2, 3) {
		t.Errorf("translation = %v", got)
	}
	// 63 * 0.5 = 31.5 texels
	if m := obj.Irradiance(); m.Width() != 31 || m.Height() != 31 {
		t.Errorf("irradiance map %dx%d, want 31x31", m.Width(), m.Height())
	}
}

func TestObjectRotate(t *testing.T) {
	s := New(render.DefaultDirectionalLight(), 0.5)
	obj, err := s.Add(models.NewCube(1).Triangles(), testTexture(), math3d.NewTransform())
	if err != nil {
		t.Fatal(err)
	}

	obj.Rotate(math3d.AngleY(math.Pi / 2))
	got := obj.Transform().RotateDir(math3d.V3(0, 0, 1))
	if got.Sub(math3d.V3(1, 0, 0)).Len() > 1e-9 {
		t.Errorf("rotated +Z = %v, want +X", got)
	}

	obj.SetTransform(math3d.NewTransform())
	if got := obj.Transform().RotateDir(math3d.V3(0, 0, 1)); got != math3d.V3(0, 0, 1) {
		t.Errorf("after reset +Z = %v", got)
	}
}

// TestObjectTransformConcurrent exercises the transform guard under -race.
func TestObjectTransformConcurrent(t *testing.T) {
	s := New(render.DefaultDirectionalLight(), 0.5)
	obj, err := s.Add(models.NewCube(1).Triangles(), testTexture(), math3d.NewTransform())
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 1000 {
			obj.Rotate(math3d.AngleY(0.001))
		}
	}()
	go func() {
		defer wg.Done()
		for range 1000 {
			obj.Irradiance().Bake(obj, s.Light.Direction)
		}
	}()
	wg.Wait()

	if l := obj.Transform().Rotation.Len(); math.Abs(l-1) > 1e-9 {
		t.Errorf("rotation drifted to length %v", l)
	}
}

func TestDemo(t *testing.T) {
	s, err := Demo(models.NewCube(1), testTexture(), render.DefaultDirectionalLight(), DefaultGIScale)
	if err != nil {
		t.Fatalf("Demo: %v", err)
	}

	objs := s.Objects()
	want := DemoTransforms()
	if len(objs) != len(want) {
		t.Fatalf("got %d objects, want %d", len(objs), len(want))
	}
	for i, o := range objs {
		if o.Transform() != want[i] {
			t.Errorf("object %d transform = %+v, want %+v", i, o.Transform(), want[i])
		}
	}
	if s.Light.Direction != math3d.V3(0.1, 0.5, -1) {
		t.Errorf("light = %v", s.Light.Direction)
	}
}
