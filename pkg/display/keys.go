// Package display presents an engine's frames: in a desktop window, in a
// terminal, or as a PNG file.
package display

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/taigrr/radiance/pkg/engine"
	"github.com/taigrr/radiance/pkg/log"
)

var logger = log.New("display")

// binding ties a key to a camera action in both presenters.
type binding struct {
	key    ebiten.Key
	name   string // ultraviolet key string
	action engine.Action
}

var bindings = []binding{
	{ebiten.KeyW, "w", engine.ZoomIn},
	{ebiten.KeyS, "s", engine.ZoomOut},
	{ebiten.KeyA, "a", engine.YawLeft},
	{ebiten.KeyD, "d", engine.YawRight},
	{ebiten.KeyQ, "q", engine.PitchDown},
	{ebiten.KeyE, "e", engine.PitchUp},
	{ebiten.KeyR, "r", engine.PanUp},
	{ebiten.KeyF, "f", engine.PanDown},
}

// Held keys repeat after repeatDelay ticks, every repeatInterval ticks.
const (
	repeatDelay    = 30
	repeatInterval = 3
)

// repeats reports whether a key held for d ticks fires this tick.
func repeats(d int) bool {
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}
