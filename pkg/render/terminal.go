package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. Each terminal row shows two framebuffer rows, so the framebuffer
// height should be twice the area height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// ▀ (upper half block) with fg=top color and bg=bottom color
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.RGBAt(x, topY)),
					Bg: cellColor(fb.RGBAt(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

func cellColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Out of bounds = no color
	}
	return c
}
