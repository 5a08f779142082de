package display

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/radiance/pkg/engine"
	"github.com/taigrr/radiance/pkg/log"
)

// RunTerminal shows eng in the terminal's alternate screen at fps frames per
// second until Escape or Ctrl+C is pressed or ctx ends. The framebuffer is
// resized to the terminal, two pixel rows per cell. Log output is held back
// while the screen is taken and written to stderr afterwards.
func RunTerminal(ctx context.Context, eng *engine.Engine, fps int) error {
	if fps <= 0 {
		fps = 60
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := eng.Resize(max(1, width), max(1, height*2)); err != nil {
		return fmt.Errorf("size framebuffer: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	var held bytes.Buffer
	log.SetSink(&held)
	defer func() {
		log.SetSink(os.Stderr)
		os.Stderr.Write(held.Bytes())
	}()

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	logger.Infof("terminal %dx%d cells", width, height)

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	events := term.Events()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				if err := eng.Resize(max(1, width), max(1, height*2)); err != nil {
					return fmt.Errorf("size framebuffer: %w", err)
				}

			case uv.KeyPressEvent:
				if ev.MatchString("escape", "ctrl+c") {
					return nil
				}
				for _, b := range bindings {
					if ev.MatchString(b.name) {
						eng.Controller().Apply(b.action)
					}
				}
			}

		case <-ticker.C:
			eng.Frame()
			eng.Framebuffer().Draw(term, uv.Rect(0, 0, width, height))
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
