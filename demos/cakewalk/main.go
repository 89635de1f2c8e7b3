// cakewalk is the CakeWalk launcher: it loads settings from .env and the
// environment, builds the configured level and runs it in a window.
//
//	CAKEWALK_LEVEL=cellar CAKEWALK_DEBUG=true go run ./demos/cakewalk
package main

import (
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/cakewalk"
	"github.com/phanxgames/cakewalk/game"
)

const (
	screenW = 480
	screenH = 270
)

func main() {
	cfg, err := game.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	lv, err := game.LoadLevelFile(cfg.Level)
	if err != nil {
		log.Fatal(err)
	}

	s := game.NewSession(lv, game.SessionOptions{
		PlayerSheet:  playerSheet(game.PlayerSheet),
		ScreenWidth:  screenW,
		ScreenHeight: screenH,
	})
	s.World.SetDebugMode(cfg.Debug)
	s.Game().ShowHitboxes = cfg.Debug
	if cfg.TracePath != "" {
		s.Record()
	}
	s.On(func(e game.Event) {
		log.Printf("%s: score %d, lives %d", e.Kind, e.Score, e.Lives)
	})

	if err := cakewalk.Run(s.Game(), cakewalk.RunConfig{
		Title:   "CakeWalk: " + lv.Name,
		Width:   screenW,
		Height:  screenH,
		Scale:   cfg.Scale,
		ShowFPS: cfg.Debug,
	}); err != nil {
		log.Fatal(err)
	}

	if cfg.TracePath != "" {
		data, err := s.Record().Trace().Encode()
		if err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(cfg.TracePath, data, 0o644); err != nil {
			log.Fatalf("write trace: %v", err)
		}
		log.Printf("trace written to %s", cfg.TracePath)
	}
}

// playerSheet draws a placeholder sheet laid out as cfg describes: one row
// per animation, each frame a body with a bobbing head.
func playerSheet(cfg cakewalk.SpriteSheetConfig) *ebiten.Image {
	rows, cols := 0, 0
	for _, a := range cfg.Animations {
		rows = max(rows, a.Row+1)
		cols = max(cols, a.Start+a.Frames)
	}
	fw, fh := float32(cfg.FrameWidth), float32(cfg.FrameHeight)
	img := ebiten.NewImage(cols*cfg.FrameWidth, rows*cfg.FrameHeight)

	body := cakewalk.Color{R: 0.95, G: 0.85, B: 0.6, A: 1}
	shirt := cakewalk.Color{R: 0.3, G: 0.5, B: 0.9, A: 1}
	for _, a := range cfg.Animations {
		for f := 0; f < a.Frames; f++ {
			x := float32(a.Start+f) * fw
			y := float32(a.Row) * fh
			bob := float32(f % 2)
			vector.DrawFilledRect(img, x+3, y+1+bob, fw-6, 7, body.RGBA(), false)
			vector.DrawFilledRect(img, x+2, y+8+bob, fw-4, fh-12, shirt.RGBA(), false)
			vector.DrawFilledRect(img, x+3, y+fh-4, 3, 4, body.RGBA(), false)
			vector.DrawFilledRect(img, x+fw-6, y+fh-4, 3, 4, body.RGBA(), false)
		}
	}
	return img
}
