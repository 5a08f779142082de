package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/taigrr/radiance/pkg/math3d"
)

func TestTextureSampleBoundaryTexels(t *testing.T) {
	tex := NewTexture(4, 2)
	for x := range 4 {
		tex.set(x, 0, math3d.V3(float64(x), 0, 0))
		tex.set(x, 1, math3d.V3(float64(x), 1, 0))
	}

	if tex.Size != math3d.V2(3, 1) {
		t.Fatalf("Size = %v, want (3, 1)", tex.Size)
	}

	tests := []struct {
		name  string
		u, v  float64
		wantX float64
		wantY float64
	}{
		{"origin is first texel", 0, 0, 0, 0},
		{"one is last texel", 1, 1, 3, 1},
		{"truncates toward zero", 0.5, 0.99, 1, 0},
		{"above one clamps", 1.7, 3, 3, 1},
		{"below zero clamps", -0.9, -2, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tex.Sample(tc.u, tc.v)
			if got.X != tc.wantX || got.Y != tc.wantY {
				t.Errorf("Sample(%v, %v) = %v, want texel (%v, %v)", tc.u, tc.v, got, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestTextureFromImageKeepsRowOrder(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 1, color.RGBA{0, 0, 255, 255})

	tex := TextureFromImage(img)
	if got := tex.At(0, 0); got != math3d.V3(1, 0, 0) {
		t.Errorf("At(0,0) = %v, want red", got)
	}
	if got := tex.At(1, 1); got != math3d.V3(0, 0, 1) {
		t.Errorf("At(1,1) = %v, want blue", got)
	}
}

func TestCheckerTexture(t *testing.T) {
	white, black := math3d.V3(1, 1, 1), math3d.V3(0, 0, 0)
	tex := NewCheckerTexture(8, 8, 4, white, black)

	if tex.At(0, 0) != white || tex.At(4, 0) != black || tex.At(4, 4) != white {
		t.Error("checker cells are not alternating")
	}
}

func TestLoadTextureMissingFile(t *testing.T) {
	if _, err := LoadTexture("does-not-exist.png"); err == nil {
		t.Error("expected error for missing file")
	}
}
