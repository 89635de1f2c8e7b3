package cakewalk

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds optional configuration for Run.
type RunConfig struct {
	// Title sets the window title.
	Title string
	// Width and Height set the window size. Zero values default to 640x480.
	Width, Height int
	// Scale multiplies the window size; the logical screen stays Width x Height.
	Scale float64
	// ShowFPS enables the FPS widget in the top-left corner.
	ShowFPS bool
}

// Game drives a World from ebiten: it polls input, steps the world once per
// tick and renders it. It implements ebiten.Game.
type Game struct {
	// ClearColor fills the screen before the world is drawn.
	ClearColor Color
	// ShowHitboxes outlines collider hitboxes after the world is drawn.
	ShowHitboxes bool

	world      *World
	input      Input
	updateFunc func() error
	postStep   func()
	hud        func(screen *ebiten.Image)
	showFPS    bool
	fps        fpsWidget
	width      int
	height     int
}

// NewGame returns a Game for world reading input from in. A nil in uses the
// real keyboard.
func NewGame(world *World, in Input) *Game {
	if in == nil {
		in = NewEbitenInput()
	}
	g := &Game{
		ClearColor: Color{0, 0, 0, 1},
		world:      world,
		input:      in,
	}
	g.SetScreenSize(640, 480)
	return g
}

// World returns the driven world.
func (g *Game) World() *World {
	return g.world
}

// Input returns the input source.
func (g *Game) Input() Input {
	return g.input
}

// SetUpdateFunc registers a callback run every tick after input is polled and
// before the world steps. A non-nil error stops the game.
func (g *Game) SetUpdateFunc(fn func() error) {
	g.updateFunc = fn
}

// SetPostStepFunc registers a callback run every tick after the world has
// stepped, when removals are drained and positions are final for the frame.
func (g *Game) SetPostStepFunc(fn func()) {
	g.postStep = fn
}

// SetHUD registers a callback that draws in screen space on top of the world.
func (g *Game) SetHUD(fn func(screen *ebiten.Image)) {
	g.hud = fn
}

// Tick runs one frame with an explicit delta. Update calls it with 1/TPS;
// tests call it directly.
func (g *Game) Tick(dt float64) error {
	g.input.Poll()
	if g.updateFunc != nil {
		if err := g.updateFunc(); err != nil {
			return err
		}
	}
	g.world.Step(dt)
	if g.postStep != nil {
		g.postStep()
	}
	if g.showFPS {
		g.fps.update(dt)
	}
	return nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	return g.Tick(1 / float64(ebiten.TPS()))
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.ClearColor.RGBA())
	g.world.Draw(screen)
	if g.ShowHitboxes {
		g.world.DrawHitboxes(screen)
	}
	if g.hud != nil {
		g.hud(screen)
	}
	if g.showFPS {
		g.fps.draw(screen)
	}
}

// Layout implements ebiten.Game. The logical screen is fixed to the
// configured size, which is also the camera's view size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cam := g.world.Camera()
	cam.ViewWidth, cam.ViewHeight = float64(g.width), float64(g.height)
	return g.width, g.height
}

// SetScreenSize sets the logical screen size used by Layout and the camera.
func (g *Game) SetScreenSize(width, height int) {
	if width > 0 {
		g.width = width
	}
	if height > 0 {
		g.height = height
	}
	cam := g.world.Camera()
	cam.ViewWidth, cam.ViewHeight = float64(g.width), float64(g.height)
}

// Run is a convenience entry point that opens a window and runs the game
// loop until the window closes or the update callback returns an error.
func Run(g *Game, cfg RunConfig) error {
	g.SetScreenSize(cfg.Width, cfg.Height)
	g.showFPS = cfg.ShowFPS

	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(int(float64(g.width)*scale), int(float64(g.height)*scale))
	return ebiten.RunGame(g)
}
