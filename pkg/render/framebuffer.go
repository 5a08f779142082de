package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Framebuffer is an RGBA8 pixel buffer, row-major with 4 bytes per pixel.
// Alpha is set to opaque by Clear and never touched by the rasterizer.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []byte
}

// NewFramebuffer creates a cleared framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}
	fb.Clear()
	return fb
}

// Clear sets every pixel to opaque black.
func (fb *Framebuffer) Clear() {
	for i := 0; i < len(fb.Pix); i += 4 {
		fb.Pix[i] = 0
		fb.Pix[i+1] = 0
		fb.Pix[i+2] = 0
		fb.Pix[i+3] = 0xff
	}
}

// setRGB writes the color channels of a pixel, leaving alpha alone.
// Coordinates must be in bounds.
func (fb *Framebuffer) setRGB(x, y int, r, g, b byte) {
	i := (y*fb.Width + x) * 4
	fb.Pix[i] = r
	fb.Pix[i+1] = g
	fb.Pix[i+2] = b
}

// RGBAt returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) RGBAt(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	i := (y*fb.Width + x) * 4
	return color.RGBA{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3]}
}

// ToImage copies the framebuffer into a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Pix)
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
