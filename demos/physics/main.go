// physics drops elastic balls into a walled box full of pegs. Every ball is a
// dynamic body with a circle hitbox; walls and pegs are static colliders.
// Press space to drop another handful, H to toggle hitboxes.
package main

import (
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/cakewalk"
)

const (
	screenW = 640
	screenH = 480

	layerBall  = 1
	layerSolid = 2

	ballRadius = 7.0
	pegRadius  = 6.0
	gravity    = 9.8 // m/s²
	bounce     = 0.6
	dropCount  = 12
)

var (
	wallColor = cakewalk.Color{R: 0.25, G: 0.25, B: 0.3, A: 1}
	pegColor  = cakewalk.Color{R: 0.8, G: 0.8, B: 0.85, A: 1}
)

func main() {
	w := cakewalk.NewWorld(cakewalk.WorldConfig{})
	w.SetCollisionPair(layerBall, layerSolid, true)
	root := w.Root()

	solids := w.NewContainer("solids")
	root.AddChild(solids)
	addWall(w, solids, 0, screenH-20, screenW, 20)
	addWall(w, solids, 0, 0, 20, screenH)
	addWall(w, solids, screenW-20, 0, 20, screenH)

	for row := 0; row < 6; row++ {
		offset := float64(row%2) * 30
		for col := 0; col < 10; col++ {
			peg := w.NewBox("peg", pegRadius*2, pegRadius*2, pegColor)
			peg.SetPivot(0.5, 0.5)
			peg.SetPosition(60+offset+float64(col)*60, 140+float64(row)*45)
			peg.SetCollider(layerSolid, false)
			peg.Collider.Kind = cakewalk.HitboxCircle
			solids.AddChild(peg)
		}
	}

	balls := w.NewContainer("balls")
	root.AddChild(balls)
	drop(w, balls)

	g := cakewalk.NewGame(w, nil)
	g.ClearColor = cakewalk.Color{R: 0.06, G: 0.06, B: 0.09, A: 1}
	cam := w.Camera()
	cam.X, cam.Y = screenW/2, screenH/2

	g.SetUpdateFunc(func() error {
		in := g.Input()
		if in.JustPressed(ebiten.KeySpace) {
			drop(w, balls)
		}
		if in.JustPressed(ebiten.KeyH) {
			g.ShowHitboxes = !g.ShowHitboxes
		}
		// Balls that escape through a gap are recycled.
		for _, b := range balls.Children() {
			if b.Y > screenH+50 {
				b.RemoveSelf()
			}
		}
		return nil
	})

	if err := cakewalk.Run(g, cakewalk.RunConfig{
		Title:   "CakeWalk: Physics",
		Width:   screenW,
		Height:  screenH,
		ShowFPS: true,
	}); err != nil {
		log.Fatal(err)
	}
}

func addWall(w *cakewalk.World, parent *cakewalk.Node, x, y, width, height float64) {
	wall := w.NewBox("wall", width, height, wallColor)
	wall.SetPosition(x, y)
	wall.SetCollider(layerSolid, false)
	parent.AddChild(wall)
}

// drop adds a handful of balls above the pegs.
func drop(w *cakewalk.World, parent *cakewalk.Node) {
	for i := 0; i < dropCount; i++ {
		ball := w.NewBox("ball", ballRadius*2, ballRadius*2, cakewalk.Color{
			R: 0.3 + rand.Float64()*0.7,
			G: 0.3 + rand.Float64()*0.7,
			B: 0.3 + rand.Float64()*0.7,
			A: 1,
		})
		ball.SetPivot(0.5, 0.5)
		ball.SetPosition(40+rand.Float64()*(screenW-80), 30+rand.Float64()*60)
		ball.SetCollider(layerBall, false)
		ball.Collider.Kind = cakewalk.HitboxCircle

		body := ball.SetBody()
		body.Elasticity = bounce
		body.Velocity = cakewalk.Vec2{X: (rand.Float64() - 0.5) * 4}
		ball.OnUpdate = func(float64) {
			body.AddForce(cakewalk.Vec2{Y: gravity * body.Mass})
		}
		parent.AddChild(ball)
	}
}
