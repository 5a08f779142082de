// Package render provides the software rasterizer: textures, the orbit camera,
// the framebuffer, and the triangle pipeline that draws objects into it.
package render

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/taigrr/radiance/pkg/math3d"
)

// Texture is an immutable grid of normalized RGB samples. Once built it may be
// shared by any number of objects and read from any goroutine.
type Texture struct {
	Width  int
	Height int
	// Size is (Width-1, Height-1): uv 0 addresses the first texel and uv 1
	// the last one.
	Size   math3d.Vec2
	Pixels []math3d.Vec3 // Row-major, components in [0, 1]
}

// NewTexture creates a black texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Texture{
		Width:  width,
		Height: height,
		Size:   math3d.V2(float64(width-1), float64(height-1)),
		Pixels: make([]math3d.Vec3, width*height),
	}
}

// NewSolidTexture creates a width x height texture filled with one color.
func NewSolidTexture(width, height int, c math3d.Vec3) *Texture {
	tex := NewTexture(width, height)
	for i := range tex.Pixels {
		tex.Pixels[i] = c
	}
	return tex
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 math3d.Vec3) *Texture {
	if checkSize < 1 {
		checkSize = 1
	}
	tex := NewTexture(width, height)
	for y := range tex.Height {
		for x := range tex.Width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.set(x, y, c1)
			} else {
				tex.set(x, y, c2)
			}
		}
	}
	return tex
}

// LoadTexture decodes an image file into a texture.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}

	return TextureFromImage(img), nil
}

// TextureFromImage creates a texture from an image.Image. Row 0 of the image
// is row 0 of the texture.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	tex := NewTexture(bounds.Dx(), bounds.Dy())

	for y := range bounds.Dy() {
		for x := range bounds.Dx() {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA returns 16-bit values
			tex.set(x, y, math3d.V3(
				float64(r)/0xffff,
				float64(g)/0xffff,
				float64(b)/0xffff,
			))
		}
	}

	return tex
}

func (t *Texture) set(x, y int, c math3d.Vec3) {
	t.Pixels[y*t.Width+x] = c
}

// At returns the texel at (x, y), clamping coordinates to the edge.
func (t *Texture) At(x, y int) math3d.Vec3 {
	x = clampInt(x, 0, t.Width-1)
	y = clampInt(y, 0, t.Height-1)
	return t.Pixels[y*t.Width+x]
}

// Sample returns the nearest texel for uv, truncating uv*Size toward zero.
// Coordinates outside [0, 1] resolve to the edge texel.
func (t *Texture) Sample(u, v float64) math3d.Vec3 {
	return t.At(int(u*t.Size.X), int(v*t.Size.Y))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
