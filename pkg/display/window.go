package display

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/taigrr/radiance/pkg/engine"
)

// RunWindow shows eng in a fixed-size window until Escape is pressed, the
// window is closed, or ctx ends. One engine frame is rendered per drawn
// window frame.
func RunWindow(ctx context.Context, eng *engine.Engine, title string) error {
	fb := eng.Framebuffer()
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(fb.Width, fb.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)

	logger.Infof("window %dx%d", fb.Width, fb.Height)
	defer logger.Info("window closed")

	return ebiten.RunGame(&windowGame{ctx: ctx, eng: eng})
}

type windowGame struct {
	ctx context.Context
	eng *engine.Engine
	img *ebiten.Image
}

func (g *windowGame) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for _, b := range bindings {
		if repeats(inpututil.KeyPressDuration(b.key)) {
			g.eng.Controller().Apply(b.action)
		}
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	g.eng.Frame()

	fb := g.eng.Framebuffer()
	if g.img == nil || g.img.Bounds().Dx() != fb.Width || g.img.Bounds().Dy() != fb.Height {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(fb.Width, fb.Height)
	}
	g.img.WritePixels(fb.Pix)
	screen.DrawImage(g.img, nil)

	ebitenutil.DebugPrint(screen, g.eng.DebugText())
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	fb := g.eng.Framebuffer()
	return fb.Width, fb.Height
}
