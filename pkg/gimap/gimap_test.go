package gimap

import (
	"math"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/taigrr/radiance/pkg/math3d"
	"github.com/taigrr/radiance/pkg/render"
)

// testSource is a minimal guarded object for baking.
type testSource struct {
	mu   sync.Mutex
	tris []render.Triangle
	xf   math3d.Transform
	gi   *Map
}

func (s *testSource) Triangles() []render.Triangle { return s.tris }
func (s *testSource) Irradiance() *Map             { return s.gi }

func (s *testSource) Transform() math3d.Transform {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.xf
}

func (s *testSource) rotateY(angle float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.xf = s.xf.Rotated(math3d.AngleY(angle))
}

// quad returns two triangles covering the whole UV square. Positions equal
// (u, v, 0) so provenance positions can be checked directly.
func quad(n0, n1 math3d.Vec3) []render.Triangle {
	vert := func(u, v float64, n math3d.Vec3) render.Vertex {
		return render.Vertex{Position: math3d.V3(u, v, 0), Normal: n, UV: math3d.V2(u, v)}
	}
	return []render.Triangle{
		{V: [3]render.Vertex{vert(0, 0, n0), vert(1, 0, n0), vert(0, 1, n0)}},
		{V: [3]render.Vertex{vert(1, 0, n1), vert(1, 1, n1), vert(0, 1, n1)}},
	}
}

// newSource builds an 11x11 map over a 12x12 texture at scale 1.
func newSource(tris []render.Triangle) *testSource {
	tex := render.NewTexture(12, 12)
	return &testSource{
		tris: tris,
		xf:   math3d.NewTransform(),
		gi:   New(0, tex, 1, tris),
	}
}

func TestNewDimensions(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		scale        float64
		wantW, wantH int
	}{
		{"tenth scale", 1001, 501, 0.1, 100, 50},
		{"full scale", 12, 12, 1, 11, 11},
		{"tiny texture", 1, 1, 0.1, 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := New(3, render.NewTexture(tc.w, tc.h), tc.scale, nil)
			if m.Width() != tc.wantW || m.Height() != tc.wantH {
				t.Errorf("size = %dx%d, want %dx%d", m.Width(), m.Height(), tc.wantW, tc.wantH)
			}
			if m.ObjectID() != 3 {
				t.Errorf("ObjectID = %d, want 3", m.ObjectID())
			}
		})
	}
}

func TestNewDefaultsToOne(t *testing.T) {
	src := newSource(quad(math3d.V3(0, 0, 1), math3d.V3(0, 0, 1)))
	for y := range src.gi.Height() {
		for x := range src.gi.Width() {
			if v := src.gi.Value(x, y); v != 1 {
				t.Fatalf("Value(%d,%d) = %v before any bake, want 1", x, y, v)
			}
		}
	}
}

func TestNewProvenance(t *testing.T) {
	src := newSource(quad(math3d.V3(0, 0, 1), math3d.V3(0, 0, 1)))
	m := src.gi

	tests := []struct {
		name     string
		x, y     int
		triangle int
	}{
		{"lower corner", 0, 0, 0},
		{"upper corner", 10, 10, 1},
		{"shared diagonal goes to later triangle", 0, 10, 1},
		{"shared diagonal middle", 5, 5, 1},
		{"inside first", 3, 2, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.Texel(tc.x, tc.y).Triangle; got != tc.triangle {
				t.Errorf("Texel(%d,%d).Triangle = %d, want %d", tc.x, tc.y, got, tc.triangle)
			}
		})
	}

	pos := m.Texel(3, 2).Position
	if pos.Sub(math3d.V3(0.3, 0.2, 0)).Len() > 1e-9 {
		t.Errorf("Texel(3,2).Position = %v, want (0.3, 0.2, 0)", pos)
	}
}

func TestNewUncoveredTexelsKeepTriangleZero(t *testing.T) {
	n := math3d.V3(0, 0, 1)
	small := render.Triangle{V: [3]render.Vertex{
		{Normal: n, UV: math3d.V2(0, 0)},
		{Normal: n, UV: math3d.V2(0.3, 0)},
		{Normal: n, UV: math3d.V2(0, 0.3)},
	}}
	other := small
	other.V[0].Normal = math3d.V3(1, 0, 0)
	src := newSource([]render.Triangle{small, other})

	if got := src.gi.Texel(10, 10); got.Triangle != 0 || got.Position != (math3d.Vec3{}) {
		t.Errorf("uncovered texel = %+v, want zero provenance", got)
	}
}

func TestBakeDeterminism(t *testing.T) {
	tris := quad(math3d.V3(0, 0, 1), math3d.V3(0.3, 0.8, 0.2))
	src := newSource(tris)
	src.xf = src.xf.Rotated(mgl64.QuatRotate(0.7, mgl64.Vec3{1, 0, 0})).Rotated(math3d.AngleY(-1.1))
	light := math3d.V3(0.1, 0.5, -1)

	want := []float64{
		src.xf.RotateDir(tris[0].V[0].Normal).Normalize().Dot(light),
		src.xf.RotateDir(tris[1].V[0].Normal).Normalize().Dot(light),
	}

	for pass := range 3 {
		src.gi.Bake(src, light)
		for y := range src.gi.Height() {
			for x := range src.gi.Width() {
				id := src.gi.Texel(x, y).Triangle
				if got := src.gi.Value(x, y); got != want[id] {
					t.Fatalf("pass %d: Value(%d,%d) = %v, want %v", pass, x, y, got, want[id])
				}
			}
		}
	}
}

func TestBakeHalfTurnFlipsSign(t *testing.T) {
	src := newSource(quad(math3d.V3(0, 0, 1), math3d.V3(0, 0, 1)))
	light := math3d.V3(0.1, 0.5, -1)

	src.gi.Bake(src, light)
	before := src.gi.Value(4, 4)

	// Y is perpendicular to the +Z normal.
	src.rotateY(math.Pi)
	src.gi.Bake(src, light)
	after := src.gi.Value(4, 4)

	if before >= 0 || after <= 0 {
		t.Errorf("intensity before/after = %v / %v, want a sign flip", before, after)
	}
	if math.Abs(before+after) > 1e-9 {
		t.Errorf("intensity before/after = %v / %v, want equal magnitude", before, after)
	}
}

func TestBakeWithoutTriangles(t *testing.T) {
	src := newSource(nil)
	src.gi.Bake(src, math3d.V3(0, 0, 1))
	if v := src.gi.Value(0, 0); v != 1 {
		t.Errorf("Value = %v, want untouched 1", v)
	}
}

func TestSampleAddressing(t *testing.T) {
	src := newSource(quad(math3d.V3(0, 0, 1), math3d.V3(0, 0, -1)))
	src.gi.Bake(src, math3d.V3(0, 0, 1))

	tests := []struct {
		u, v float64
		want float64
	}{
		{0, 0, 1},      // triangle 0
		{1, 1, -1},     // triangle 1
		{0.14, 0.1, 1}, // texel (1, 1)
		{2, 2, -1},     // clamped to the last texel
		{-1, -1, 1},    // clamped to the first texel
	}
	for _, tc := range tests {
		if got := src.gi.Sample(tc.u, tc.v); got != tc.want {
			t.Errorf("Sample(%v, %v) = %v, want %v", tc.u, tc.v, got, tc.want)
		}
	}
}

func BenchmarkBake(b *testing.B) {
	tris := quad(math3d.V3(0, 0, 1), math3d.V3(0, 1, 0))
	src := &testSource{
		tris: tris,
		xf:   math3d.NewTransform(),
		gi:   New(0, render.NewTexture(1024, 1024), 0.1, tris),
	}
	light := math3d.V3(0.1, 0.5, -1)

	for b.Loop() {
		src.gi.Bake(src, light)
	}
}
