package cakewalk

import "math"

// Shape is a hitbox geometry. It is implemented only by Rect and Circle.
type Shape interface {
	// Bounds returns the axis-aligned box enclosing the shape.
	Bounds() Rect
	shape()
}

// Rect is an axis-aligned rectangle stored as its four edges. The coordinate
// system has its origin at the top-left, with Y increasing downward.
//
// Edge ordering is not enforced: callers must pass Left <= Right and
// Top <= Bottom, otherwise intersection tests silently return wrong answers.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// NewRect creates a rectangle from explicit bounds.
func NewRect(left, top, right, bottom float64) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// RectFromPoints creates the rectangle spanned by two corner points.
// The points may be given in any order.
func RectFromPoints(a, b Vec2) Rect {
	return Rect{
		Left:   math.Min(a.X, b.X),
		Top:    math.Min(a.Y, b.Y),
		Right:  math.Max(a.X, b.X),
		Bottom: math.Max(a.Y, b.Y),
	}
}

// RectFromSize creates a rectangle with its top-left corner at origin.
func RectFromSize(origin Vec2, width, height float64) Rect {
	return Rect{Left: origin.X, Top: origin.Y, Right: origin.X + width, Bottom: origin.Y + height}
}

func (Rect) shape() {}

// Bounds returns r.
func (r Rect) Bounds() Rect { return r }

func (r Rect) TopLeft() Vec2     { return Vec2{r.Left, r.Top} }
func (r Rect) TopRight() Vec2    { return Vec2{r.Right, r.Top} }
func (r Rect) BottomLeft() Vec2  { return Vec2{r.Left, r.Bottom} }
func (r Rect) BottomRight() Vec2 { return Vec2{r.Right, r.Bottom} }

// Corners returns the four corners clockwise from the top-left.
func (r Rect) Corners() [4]Vec2 {
	return [4]Vec2{r.TopLeft(), r.TopRight(), r.BottomRight(), r.BottomLeft()}
}

// Center returns the midpoint of r.
func (r Rect) Center() Vec2 {
	return Vec2{(r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2}
}

func (r Rect) Width() float64     { return r.Right - r.Left }
func (r Rect) Height() float64    { return r.Bottom - r.Top }
func (r Rect) Area() float64      { return r.Width() * r.Height() }
func (r Rect) Perimeter() float64 { return 2 * (r.Width() + r.Height()) }

// Translate returns r moved by d.
func (r Rect) Translate(d Vec2) Rect {
	return Rect{r.Left + d.X, r.Top + d.Y, r.Right + d.X, r.Bottom + d.Y}
}

// Contains reports whether p lies strictly inside r. Points on an edge are
// outside, matching the edge rule of Intersects.
func (r Rect) Contains(p Vec2) bool {
	return p.X > r.Left && p.X < r.Right && p.Y > r.Top && p.Y < r.Bottom
}

// Intersects reports whether r and o overlap. Rectangles that only share an
// edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.Left < o.Right && r.Right > o.Left &&
		r.Top < o.Bottom && r.Bottom > o.Top
}

// Circle is a center and a radius.
type Circle struct {
	Center Vec2
	Radius float64
}

func (Circle) shape() {}

// Bounds returns the square enclosing c.
func (c Circle) Bounds() Rect {
	return Rect{c.Center.X - c.Radius, c.Center.Y - c.Radius, c.Center.X + c.Radius, c.Center.Y + c.Radius}
}

func (c Circle) Area() float64          { return math.Pi * c.Radius * c.Radius }
func (c Circle) Circumference() float64 { return 2 * math.Pi * c.Radius }
func (c Circle) Diameter() float64      { return 2 * c.Radius }

// Contains reports whether p lies strictly inside c.
func (c Circle) Contains(p Vec2) bool {
	return p.Sub(c.Center).LenSq() < c.Radius*c.Radius
}

// Intersects reports whether c and o overlap. Tangent circles do not.
func (c Circle) Intersects(o Circle) bool {
	r := c.Radius + o.Radius
	return c.Center.Sub(o.Center).LenSq() < r*r
}

// IntersectsRect reports whether c and r overlap using a point-sampling
// approximation: the circle's center or one of its four axis-extreme points
// lies in r, or one of r's corners lies in c. Shallow overlaps across an edge
// near a corner can be missed; gameplay tuning relies on this leniency.
func (c Circle) IntersectsRect(r Rect) bool {
	if r.Contains(c.Center) {
		return true
	}
	extremes := [4]Vec2{
		{c.Center.X - c.Radius, c.Center.Y},
		{c.Center.X + c.Radius, c.Center.Y},
		{c.Center.X, c.Center.Y - c.Radius},
		{c.Center.X, c.Center.Y + c.Radius},
	}
	for _, p := range extremes {
		if r.Contains(p) {
			return true
		}
	}
	for _, p := range r.Corners() {
		if c.Contains(p) {
			return true
		}
	}
	return false
}

// Intersects reports whether two hitbox shapes overlap. Nil shapes never
// intersect anything.
func Intersects(a, b Shape) bool {
	switch a := a.(type) {
	case Rect:
		switch b := b.(type) {
		case Rect:
			return a.Intersects(b)
		case Circle:
			return b.IntersectsRect(a)
		}
	case Circle:
		switch b := b.(type) {
		case Rect:
			return a.IntersectsRect(b)
		case Circle:
			return a.Intersects(b)
		}
	}
	return false
}
