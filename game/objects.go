package game

import (
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/cakewalk"
)

var (
	terrainColor = cakewalk.Color{R: 0.45, G: 0.32, B: 0.22, A: 1}
	cakeColor    = cakewalk.Color{R: 1, G: 0.55, B: 0.75, A: 1}
	flameColor   = cakewalk.Color{R: 1, G: 0.55, B: 0.1, A: 1}
	ashColor     = cakewalk.Color{R: 0.35, G: 0.35, B: 0.35, A: 1}
	spikeColor   = cakewalk.Color{R: 0.75, G: 0.1, B: 0.15, A: 1}
	goalColor    = cakewalk.Color{R: 0.3, G: 0.85, B: 0.4, A: 1}
)

const (
	cakeSize    = 12
	flameWidth  = 14
	flameHeight = 20
	popTime     = 0.25 // seconds
)

func newPlatform(w *cakewalk.World, b Box) *cakewalk.Node {
	n := w.NewBox("platform", b.W, b.H, terrainColor)
	n.SetPosition(b.X, b.Y)
	n.SetCollider(LayerTerrain, false)
	return n
}

// Cake is a pickup. Touching it scores a point; it pops and disappears.
type Cake struct {
	Node  *cakewalk.Node
	eaten bool
}

func newCake(s *Session, pt Point) *Cake {
	c := &Cake{}
	c.Node = s.World.NewBox("cake", cakeSize, cakeSize, cakeColor)
	c.Node.SetPivot(0.5, 0.5)
	c.Node.SetPosition(pt.X, pt.Y)
	c.Node.SetCollider(LayerPickup, true)
	c.Node.Collider.Kind = cakewalk.HitboxCircle
	c.Node.OnCollision(func(e cakewalk.CollisionEvent) {
		if e.Phase != cakewalk.PhaseEnter || c.eaten || !s.isPlayer(e.Other(c.Node.ID)) {
			return
		}
		c.eaten = true
		s.eatCake(c)
		c.pop(s.World)
	})
	return c
}

// Eaten reports whether the cake has been picked up.
func (c *Cake) Eaten() bool {
	return c.eaten
}

func (c *Cake) pop(w *cakewalk.World) {
	w.AddTween(cakewalk.TweenScale(c.Node, 1.6, 1.6, popTime, ease.OutQuad))
	fade := cakewalk.TweenAlpha(c.Node, 0, popTime, ease.InQuad)
	fade.OnComplete = c.Node.RemoveSelf
	w.AddTween(fade)
}

// Flame is a hazard that burns the player, goes out, and relights after a
// delay.
type Flame struct {
	Node    *cakewalk.Node
	relight float64
	lit     bool
	flicker *cakewalk.Timer
	high    bool
}

func newFlame(s *Session, spec FlameSpec) *Flame {
	f := &Flame{relight: spec.Relight, lit: true}
	f.Node = s.World.NewBox("flame", flameWidth, flameHeight, flameColor)
	f.Node.SetPivot(0.5, 1)
	f.Node.SetPosition(spec.X, spec.Y)
	f.Node.SetCollider(LayerHazard, true)
	f.Node.OnCollision(func(e cakewalk.CollisionEvent) {
		if e.Phase == cakewalk.PhaseExit || !f.lit || !s.isPlayer(e.Other(f.Node.ID)) {
			return
		}
		if s.Player.Invulnerable() {
			return
		}
		s.hurtPlayer(false)
		s.Player.knockBack()
		f.douse(s.World)
	})
	f.flicker = s.World.Every(0.2, func() { f.flick(s.World) })
	return f
}

// Lit reports whether the flame is burning.
func (f *Flame) Lit() bool {
	return f.lit
}

func (f *Flame) flick(w *cakewalk.World) {
	if !f.lit {
		return
	}
	f.high = !f.high
	sy := 1.0
	if f.high {
		sy = 1.15
	}
	w.AddTween(cakewalk.TweenScale(f.Node, 1, sy, 0.2, ease.InOutSine))
}

func (f *Flame) douse(w *cakewalk.World) {
	f.lit = false
	w.AddTween(cakewalk.TweenColor(f.Node, ashColor, 0.15, ease.Linear))
	w.After(f.relight, func() {
		f.lit = true
		w.AddTween(cakewalk.TweenColor(f.Node, flameColor, 0.15, ease.Linear))
	})
}

// Spikes hurt the player and send it back to the spawn point.
type Spikes struct {
	Node *cakewalk.Node
}

func newSpikes(s *Session, b Box) *Spikes {
	sp := &Spikes{}
	sp.Node = s.World.NewBox("spikes", b.W, b.H, spikeColor)
	sp.Node.SetPosition(b.X, b.Y)
	sp.Node.SetCollider(LayerHazard, true)
	sp.Node.OnCollision(func(e cakewalk.CollisionEvent) {
		if e.Phase == cakewalk.PhaseExit || !s.isPlayer(e.Other(sp.Node.ID)) {
			return
		}
		if s.Player.Invulnerable() {
			return
		}
		s.hurtPlayer(true)
	})
	return sp
}

// Goal ends the level when the player reaches it.
type Goal struct {
	Node *cakewalk.Node
}

func newGoal(s *Session, b Box) *Goal {
	g := &Goal{}
	g.Node = s.World.NewBox("goal", b.W, b.H, goalColor)
	g.Node.SetPosition(b.X, b.Y)
	g.Node.SetCollider(LayerGoal, true)
	g.Node.OnCollision(func(e cakewalk.CollisionEvent) {
		if e.Phase != cakewalk.PhaseEnter || !s.isPlayer(e.Other(g.Node.ID)) {
			return
		}
		s.completeLevel()
	})
	return g
}
