package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/cakewalk"
	"github.com/phanxgames/cakewalk/trace"
)

// EventKind identifies a game event.
type EventKind uint8

const (
	EventCakeEaten       EventKind = iota // the player picked up a cake
	EventPlayerHurt                       // the player lost a life
	EventPlayerRespawned                  // the player was sent back to the spawn point
	EventLevelComplete                    // the player reached the goal
	EventGameOver                         // the player ran out of lives
)

var eventNames = [...]string{"cake-eaten", "player-hurt", "player-respawned", "level-complete", "game-over"}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is a game event reported by a Session.
type Event struct {
	Kind   EventKind
	Frame  uint64
	NodeID string // the cake, hazard or goal involved, if any
	Score  int
	Lives  int
}

// Session is one play-through of a level.
type Session struct {
	World  *cakewalk.World
	Level  *Level
	Player *Player
	Cakes  []*Cake
	Flames []*Flame
	Spikes []*Spikes
	Goal   *Goal

	input    cakewalk.Input
	game     *cakewalk.Game
	events   cakewalk.Dispatcher[Event]
	recorder *trace.Recorder
	score    int
	lives    int
	complete bool
	over     bool
}

// SessionOptions configures NewSession. The zero value is usable.
type SessionOptions struct {
	World cakewalk.WorldConfig
	// Input drives the player; nil reads the keyboard.
	Input cakewalk.Input
	// PlayerSheet is the player sprite sheet laid out as PlayerSheet
	// describes; nil draws nothing for the player.
	PlayerSheet *ebiten.Image
	// ScreenWidth and ScreenHeight size the camera view; zero uses 640x360.
	ScreenWidth, ScreenHeight int
}

// NewSession builds the world for lv.
func NewSession(lv *Level, opts SessionOptions) *Session {
	in := opts.Input
	if in == nil {
		in = cakewalk.NewEbitenInput()
	}
	s := &Session{
		World: cakewalk.NewWorld(opts.World),
		Level: lv,
		input: in,
		lives: lv.Lives,
	}
	w := s.World
	registerLayers(w)
	root := w.Root()

	terrain := w.NewContainer("terrain")
	for _, b := range lv.Platforms {
		terrain.AddChild(newPlatform(w, b))
	}
	root.AddChild(terrain)

	for _, b := range lv.Spikes {
		sp := newSpikes(s, b)
		s.Spikes = append(s.Spikes, sp)
		root.AddChild(sp.Node)
	}
	for _, spec := range lv.Flames {
		f := newFlame(s, spec)
		s.Flames = append(s.Flames, f)
		root.AddChild(f.Node)
	}
	for _, pt := range lv.Cakes {
		c := newCake(s, pt)
		s.Cakes = append(s.Cakes, c)
		root.AddChild(c.Node)
	}
	s.Goal = newGoal(s, lv.Goal)
	root.AddChild(s.Goal.Node)

	s.Player = newPlayer(s, opts.PlayerSheet)
	root.AddChild(s.Player.Node)

	s.game = cakewalk.NewGame(w, in)
	s.game.ClearColor = cakewalk.Color{R: 0.55, G: 0.8, B: 0.95, A: 1}
	s.game.SetPostStepFunc(s.endFrame)
	s.game.SetHUD(s.drawHUD)
	sw, sh := opts.ScreenWidth, opts.ScreenHeight
	if sw <= 0 || sh <= 0 {
		sw, sh = 640, 360
	}
	s.game.SetScreenSize(sw, sh)

	cam := w.Camera()
	cam.X, cam.Y = s.Player.Node.X, s.Player.Node.Y
	cam.Follow(s.Player.Node, 0, -40, 0.15)
	cam.SetBounds(cakewalk.NewRect(0, 0, lv.Width, lv.Height))
	return s
}

// Game returns the frame driver for this session.
func (s *Session) Game() *cakewalk.Game {
	return s.game
}

// Tick runs one frame.
func (s *Session) Tick(dt float64) error {
	return s.game.Tick(dt)
}

// On registers a listener for game events.
func (s *Session) On(fn func(Event)) cakewalk.CallbackHandle {
	return s.events.Subscribe(fn)
}

// Record starts a trace recorder tracking the player. Calling it again
// returns the same recorder.
func (s *Session) Record() *trace.Recorder {
	if s.recorder == nil {
		s.recorder = trace.NewRecorder(s.World)
		s.recorder.Track(s.Player.Node.ID)
	}
	return s.recorder
}

// Score returns the number of cakes eaten.
func (s *Session) Score() int { return s.score }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// Complete reports whether the player reached the goal.
func (s *Session) Complete() bool { return s.complete }

// Over reports whether the player ran out of lives.
func (s *Session) Over() bool { return s.over }

func (s *Session) isPlayer(id string) bool {
	return s.Player != nil && id == s.Player.Node.ID
}

func (s *Session) emit(kind EventKind, nodeID string) {
	s.events.Emit(Event{
		Kind:   kind,
		Frame:  s.World.Frame(),
		NodeID: nodeID,
		Score:  s.score,
		Lives:  s.lives,
	})
}

func (s *Session) eatCake(c *Cake) {
	s.score++
	s.emit(EventCakeEaten, c.Node.ID)
}

// hurtPlayer costs a life, and sends the player back to spawn when respawn
// is set. It does nothing during the grace period or after the game ended.
func (s *Session) hurtPlayer(respawn bool) {
	p := s.Player
	if p.Invulnerable() || s.over || s.complete {
		return
	}
	s.lives--
	s.emit(EventPlayerHurt, p.Node.ID)
	if s.lives <= 0 {
		s.over = true
		p.frozen = true
		s.emit(EventGameOver, p.Node.ID)
		return
	}
	p.invulnerable = hurtGrace
	if respawn {
		p.respawn()
		s.emit(EventPlayerRespawned, p.Node.ID)
	}
}

func (s *Session) completeLevel() {
	if s.complete || s.over {
		return
	}
	s.complete = true
	s.Player.frozen = true
	s.emit(EventLevelComplete, s.Goal.Node.ID)
}

func (s *Session) endFrame() {
	if s.recorder != nil {
		s.recorder.EndFrame()
	}
}

func (s *Session) drawHUD(screen *ebiten.Image) {
	msg := fmt.Sprintf("%s  cakes %d/%d  lives %d", s.Level.Name, s.score, len(s.Cakes), s.lives)
	switch {
	case s.complete:
		msg += "\nLEVEL COMPLETE"
	case s.over:
		msg += "\nGAME OVER"
	}
	ebitenutil.DebugPrintAt(screen, msg, 8, 20)
}
