package cakewalk

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// AnimationConfig describes one named animation in a sprite sheet: a run of
// Frames cells starting at column Start on row Row.
type AnimationConfig struct {
	Row    int     `yaml:"row"`
	Start  int     `yaml:"start"`
	Frames int     `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
	Once   bool    `yaml:"once"` // play once and hold the last frame
}

// SpriteSheetConfig is the per-sprite animation config, a grid of equally
// sized frames:
//
//	frameWidth: 32
//	frameHeight: 32
//	default: idle
//	animations:
//	  idle: {row: 0, frames: 4, fps: 6}
//	  jump: {row: 2, frames: 3, fps: 12, once: true}
type SpriteSheetConfig struct {
	FrameWidth  int                        `yaml:"frameWidth"`
	FrameHeight int                        `yaml:"frameHeight"`
	Default     string                     `yaml:"default"`
	Animations  map[string]AnimationConfig `yaml:"animations"`
}

// ParseSpriteSheet parses and validates a YAML sprite sheet config.
func ParseSpriteSheet(data []byte) (SpriteSheetConfig, error) {
	var cfg SpriteSheetConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SpriteSheetConfig{}, fmt.Errorf("parse sprite sheet: %w", err)
	}
	if cfg.FrameWidth <= 0 || cfg.FrameHeight <= 0 {
		return SpriteSheetConfig{}, fmt.Errorf("parse sprite sheet: frame size %dx%d must be positive",
			cfg.FrameWidth, cfg.FrameHeight)
	}
	if len(cfg.Animations) == 0 {
		return SpriteSheetConfig{}, fmt.Errorf("parse sprite sheet: no animations")
	}
	for name, a := range cfg.Animations {
		if a.Frames <= 0 {
			return SpriteSheetConfig{}, fmt.Errorf("parse sprite sheet: animation %q has no frames", name)
		}
		if a.FPS < 0 {
			return SpriteSheetConfig{}, fmt.Errorf("parse sprite sheet: animation %q has negative fps", name)
		}
	}
	if cfg.Default != "" {
		if _, ok := cfg.Animations[cfg.Default]; !ok {
			return SpriteSheetConfig{}, fmt.Errorf("parse sprite sheet: default animation %q not defined", cfg.Default)
		}
	}
	return cfg, nil
}

// AnimatedSprite plays sprite-sheet animations on a sprite node. The World
// advances it during update and keeps the node's Width and Height equal to
// the frame size.
type AnimatedSprite struct {
	// Sheet may be nil while loading; frames are then not drawn.
	Sheet *ebiten.Image

	cfg      SpriteSheetConfig
	current  string
	anim     AnimationConfig
	frame    int
	elapsed  float64
	finished bool
}

// NewAnimatedSprite creates a sprite node driven by a sprite sheet. It starts
// on the config's default animation, if any.
func (w *World) NewAnimatedSprite(name string, sheet *ebiten.Image, cfg SpriteSheetConfig) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite}
	w.nodeDefaults(n)
	n.Anim = &AnimatedSprite{Sheet: sheet, cfg: cfg}
	n.Width = float64(cfg.FrameWidth)
	n.Height = float64(cfg.FrameHeight)
	if cfg.Default != "" {
		n.Anim.Play(cfg.Default)
	}
	return n
}

// Play switches to the named animation from its first frame. Playing the
// animation that is already current does nothing. It reports whether the
// animation exists.
func (a *AnimatedSprite) Play(name string) bool {
	if name == a.current {
		return true
	}
	anim, ok := a.cfg.Animations[name]
	if !ok {
		return false
	}
	a.current = name
	a.anim = anim
	a.frame = 0
	a.elapsed = 0
	a.finished = false
	return true
}

// Current returns the name of the playing animation.
func (a *AnimatedSprite) Current() string {
	return a.current
}

// Frame returns the index of the current frame within the animation.
func (a *AnimatedSprite) Frame() int {
	return a.frame
}

// Finished reports whether a play-once animation reached its last frame.
func (a *AnimatedSprite) Finished() bool {
	return a.finished
}

func (a *AnimatedSprite) update(n *Node, dt float64) {
	n.Width = float64(a.cfg.FrameWidth)
	n.Height = float64(a.cfg.FrameHeight)
	if a.current == "" || a.anim.FPS == 0 || a.finished {
		return
	}
	a.elapsed += dt
	frameDur := 1 / a.anim.FPS
	for a.elapsed >= frameDur {
		a.elapsed -= frameDur
		a.frame++
		if a.frame < a.anim.Frames {
			continue
		}
		if a.anim.Once {
			a.frame = a.anim.Frames - 1
			a.finished = true
			a.elapsed = 0
			return
		}
		a.frame = 0
	}
}

// frameRect returns the sheet rectangle of the current frame.
func (a *AnimatedSprite) frameRect() image.Rectangle {
	fw, fh := a.cfg.FrameWidth, a.cfg.FrameHeight
	x := (a.anim.Start + a.frame) * fw
	y := a.anim.Row * fh
	return image.Rect(x, y, x+fw, y+fh)
}

func (a *AnimatedSprite) frameImage() *ebiten.Image {
	if a.Sheet == nil || a.current == "" {
		return nil
	}
	return a.Sheet.SubImage(a.frameRect()).(*ebiten.Image)
}
