package cakewalk

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsWidget prints FPS and TPS in the top-left corner, refreshed about twice
// a second.
type fpsWidget struct {
	sinceUpdate float64
	text        string
}

func (f *fpsWidget) update(dt float64) {
	f.sinceUpdate += dt
	if f.text != "" && f.sinceUpdate < 0.5 {
		return
	}
	f.sinceUpdate = 0
	f.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}

func (f *fpsWidget) draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, f.text)
}
