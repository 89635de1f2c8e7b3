package game

import (
	_ "embed"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/cakewalk"
)

const (
	runSpeed  = 5.0  // m/s
	jumpSpeed = 9.0  // m/s
	gravity   = 25.0 // m/s²
	hurtGrace = 1.0  // seconds of invulnerability after taking damage
	fallDepth = 120  // pixels below the level before the player respawns
)

//go:embed player.yaml
var playerSheetYAML []byte

// PlayerSheet is the animation layout of the player sprite sheet.
var PlayerSheet = mustParseSheet(playerSheetYAML)

func mustParseSheet(data []byte) cakewalk.SpriteSheetConfig {
	cfg, err := cakewalk.ParseSpriteSheet(data)
	if err != nil {
		panic("game: " + err.Error())
	}
	return cfg
}

// Player is the controllable character: a dynamic body on the player layer.
type Player struct {
	Node *cakewalk.Node
	Body *cakewalk.Body

	session      *Session
	spawn        cakewalk.Vec2
	grounded     bool // standing on terrain as of the last collision pass
	contact      bool // terrain support seen during the current pass
	invulnerable float64
	frozen       bool
}

func newPlayer(s *Session, sheet *ebiten.Image) *Player {
	w := s.World
	p := &Player{
		session: s,
		spawn:   cakewalk.Vec2{X: s.Level.Spawn.X, Y: s.Level.Spawn.Y},
	}
	p.Node = w.NewAnimatedSprite("player", sheet, PlayerSheet)
	p.Node.SetPivot(0.5, 1)
	p.Node.SetPosition(p.spawn.X, p.spawn.Y)
	p.Node.SetCollider(LayerPlayer, false)
	p.Body = p.Node.SetBody()
	p.Node.OnUpdate = p.update
	p.Node.OnCollision(p.onCollision)
	return p
}

// Grounded reports whether the player stood on terrain last frame.
func (p *Player) Grounded() bool {
	return p.grounded
}

// Invulnerable reports whether the player is in the grace period after
// taking damage.
func (p *Player) Invulnerable() bool {
	return p.invulnerable > 0
}

func (p *Player) update(dt float64) {
	p.grounded = p.contact
	p.contact = false

	if p.invulnerable > 0 {
		p.invulnerable -= dt
		if p.invulnerable <= 0 {
			p.Node.SetAlpha(1)
		} else {
			p.Node.SetAlpha(0.4)
		}
	}

	if p.frozen {
		p.Body.Velocity.X = 0
	} else {
		p.steer()
	}
	p.Body.AddForce(cakewalk.Vec2{Y: gravity * p.Body.Mass})

	if p.Node.Y > p.session.Level.Height+fallDepth {
		p.session.hurtPlayer(true)
	}
}

func (p *Player) steer() {
	in := p.session.input
	dir := 0.0
	if in.Pressed(ebiten.KeyArrowLeft) || in.Pressed(ebiten.KeyA) {
		dir--
	}
	if in.Pressed(ebiten.KeyArrowRight) || in.Pressed(ebiten.KeyD) {
		dir++
	}
	p.Body.Velocity.X = dir * runSpeed
	if dir != 0 {
		p.Node.ScaleX = dir
	}

	jump := in.JustPressed(ebiten.KeySpace) || in.JustPressed(ebiten.KeyArrowUp) || in.JustPressed(ebiten.KeyW)
	if jump && p.grounded {
		p.Body.Velocity.Y = -jumpSpeed
		p.grounded = false
	}

	switch {
	case !p.grounded:
		p.Node.Anim.Play("jump")
	case dir != 0:
		p.Node.Anim.Play("run")
	default:
		p.Node.Anim.Play("idle")
	}
}

func (p *Player) onCollision(e cakewalk.CollisionEvent) {
	if e.Phase == cakewalk.PhaseExit || e.MovingID != p.Node.ID {
		return
	}
	other := p.session.World.Lookup(e.OtherID)
	if other == nil || other.Collider == nil || other.Collider.Layer != LayerTerrain {
		return
	}
	if e.Normal.Y < 0 {
		p.contact = true
	}
}

// respawn puts the player back on the spawn point at rest.
func (p *Player) respawn() {
	p.Node.SetPosition(p.spawn.X, p.spawn.Y)
	p.Body.PrevPosition = p.spawn
	p.Body.Velocity = cakewalk.Vec2{}
	p.grounded = false
	p.contact = false
}

// knockBack bounces the player up after touching a flame.
func (p *Player) knockBack() {
	p.Body.Velocity.Y = -jumpSpeed / 2
}
