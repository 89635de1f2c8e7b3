package cakewalk

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// localTransform builds the node's local matrix.
//
// Composition order:
//
//	Scale -> Rotate -> Translate(X, Y)
//
// The pivot offset is applied only to the node's own image (see drawSelf) so
// that children are placed relative to the pivot point.
func localTransform(n *Node) ebiten.GeoM {
	var g ebiten.GeoM
	g.Scale(n.ScaleX, n.ScaleY)
	if n.Rotation != 0 {
		g.Rotate(n.Rotation * math.Pi / 180)
	}
	g.Translate(n.X, n.Y)
	return g
}

// Draw renders the tree through the world's camera. Children draw after
// (on top of) their parent, in list order. Invisible nodes skip their subtree.
func (w *World) Draw(screen *ebiten.Image) {
	w.drawNode(screen, w.root, w.camera.viewMatrix(), 1)
}

func (w *World) drawNode(dst *ebiten.Image, n *Node, parent ebiten.GeoM, parentAlpha float64) {
	if !n.Visible {
		return
	}
	g := localTransform(n)
	g.Concat(parent)
	alpha := parentAlpha * n.Alpha

	w.drawSelf(dst, n, g, alpha)

	for _, child := range n.children {
		w.drawNode(dst, child, g, alpha)
	}
}

func (w *World) drawSelf(dst *ebiten.Image, n *Node, g ebiten.GeoM, alpha float64) {
	if alpha <= 0 {
		return
	}
	var img *ebiten.Image
	var op ebiten.DrawImageOptions

	switch n.Type {
	case NodeTypeBox:
		img = ensureWhitePixel()
		op.GeoM.Scale(n.Width, n.Height)
	case NodeTypeSprite:
		img = n.Image
		if n.Anim != nil {
			img = n.Anim.frameImage()
		}
	default:
		return
	}
	// Assets load asynchronously; draw nothing until the image exists.
	if img == nil {
		return
	}

	op.GeoM.Translate(-n.PivotX*n.Width, -n.PivotY*n.Height)
	op.GeoM.Concat(g)
	op.ColorScale.Scale(float32(n.Color.R), float32(n.Color.G), float32(n.Color.B), 1)
	op.ColorScale.ScaleAlpha(float32(n.Color.A * alpha))
	op.Blend = n.BlendMode.EbitenBlend()
	dst.DrawImage(img, &op)
}

var hitboxColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// DrawHitboxes outlines every collider's hitbox in screen space. Triggers are
// drawn at half opacity.
func (w *World) DrawHitboxes(screen *ebiten.Image) {
	view := w.camera.viewMatrix()
	zoom := float32(w.camera.zoom())
	w.root.Map(func(n *Node) {
		hb := n.Hitbox()
		if hb == nil {
			return
		}
		clr := hitboxColor
		if n.IsTrigger() {
			clr.A = 128
			clr.R, clr.B = 128, 128
		}
		switch s := hb.(type) {
		case Rect:
			x, y := view.Apply(s.Left, s.Top)
			vector.StrokeRect(screen, float32(x), float32(y),
				float32(s.Width())*zoom, float32(s.Height())*zoom, 1, clr, false)
		case Circle:
			x, y := view.Apply(s.Center.X, s.Center.Y)
			vector.StrokeCircle(screen, float32(x), float32(y), float32(s.Radius)*zoom, 1, clr, false)
		}
	})
}
