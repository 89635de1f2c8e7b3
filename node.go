package cakewalk

import (
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
)

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types; optional capabilities (Collider, Body, Anim) are attached as
// pointers and are nil when unused.
//
// Every node may own children. A node with children behaves as a container:
// update and draw propagate to its children in list order.
type Node struct {
	// Identity. ID is unique within the owning World and never reused, so a
	// stale ID simply stops resolving through World.Lookup.
	ID   string
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node
	world    *World

	// Transform (local). Position marks the pivot point; PivotX/PivotY are
	// normalized anchors in [0, 1] over Width x Height.
	X, Y     float64
	PivotX   float64
	PivotY   float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64 // degrees, clockwise

	// Unscaled size. Set from the image, the box size, or the current
	// animation frame.
	Width, Height float64

	// Visibility
	Alpha   float64
	Visible bool

	// Visuals
	Image     *ebiten.Image // nil until loaded; nothing is drawn for a sprite without one
	Color     Color
	BlendMode BlendMode

	// Capabilities
	Collider *Collider
	Body     *Body
	Anim     *AnimatedSprite

	// OnUpdate runs once per frame before physics integration and before the
	// node's children are updated.
	OnUpdate func(dt float64)

	// Metadata
	UserData any

	listeners     Dispatcher[CollisionEvent]
	disposed      bool
	removalQueued bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func (w *World) nodeDefaults(n *Node) {
	w.nodeSeq++
	n.ID = n.Name + "#" + strconv.FormatUint(w.nodeSeq, 10)
	n.world = w
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	w.registry[n.ID] = n
}

// NewContainer creates a container node with no visual representation.
func (w *World) NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	w.nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node. img may be nil while the asset is still
// loading; the node's size follows the image once SetImage is called.
func (w *World) NewSprite(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite}
	w.nodeDefaults(n)
	n.SetImage(img)
	return n
}

// NewBox creates a node that draws a solid color rectangle.
func (w *World) NewBox(name string, width, height float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeBox, Width: width, Height: height}
	w.nodeDefaults(n)
	n.Color = c
	return n
}

// SetImage replaces the sprite image and adopts its size.
func (n *Node) SetImage(img *ebiten.Image) {
	n.Image = img
	if img != nil {
		b := img.Bounds()
		n.Width = float64(b.Dx())
		n.Height = float64(b.Dy())
	}
}

// World returns the World that created this node.
func (n *Node) World() *World {
	return n.world
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is detached from that parent first.
// Panics if child is nil, disposed, or an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	n.checkAdd(child)
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.world.debugCheckChildCount(n)
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild. When child is
// already under n the index is taken after it is detached, so the valid
// range for a reorder is [0, NumChildren()-1]. An out-of-range index panics
// before anything is detached.
func (n *Node) AddChildAt(child *Node, index int) {
	n.checkAdd(child)
	limit := len(n.children)
	if child.Parent == n {
		limit--
	}
	if index < 0 || index > limit {
		panic("cakewalk: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.world.debugCheckChildCount(n)
}

func (n *Node) checkAdd(child *Node) {
	if child == nil {
		panic("cakewalk: cannot add nil child")
	}
	if child.disposed || n.disposed {
		panic("cakewalk: cannot add disposed node " + strconv.Quote(child.Name))
	}
	if isAncestor(child, n) {
		panic("cakewalk: adding child would create a cycle")
	}
}

// RemoveChild queues child for removal. The child stays in the child list,
// and keeps colliding, until the World drains its remove queue at the end of
// the collision pass. Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("cakewalk: child's parent is not this node")
	}
	n.world.queueRemoval(child)
}

// RemoveSelf queues this node for removal. See RemoveChild.
func (n *Node) RemoveSelf() {
	n.world.queueRemoval(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// IsDisposed returns true once the node has been drained from the remove queue.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// IsRemovalQueued reports whether the node waits in the remove queue.
func (n *Node) IsRemovalQueued() bool {
	return n.removalQueued
}

// Map visits this node and then every descendant in pre-order.
func (n *Node) Map(fn func(*Node)) {
	fn(n)
	for _, child := range n.children {
		child.Map(fn)
	}
}

// OnCollision registers a listener for collision events this node takes part
// in. Events carry both IDs; listeners filter by the other side themselves.
func (n *Node) OnCollision(fn func(CollisionEvent)) CallbackHandle {
	return n.listeners.Subscribe(fn)
}

// --- Transform properties ---

// Position returns the node's local position.
func (n *Node) Position() Vec2 {
	return Vec2{n.X, n.Y}
}

// SetPosition sets the node's local X and Y.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// SetPivot sets the normalized pivot point.
func (n *Node) SetPivot(px, py float64) {
	n.PivotX = px
	n.PivotY = py
}

// SetScale sets the node's ScaleX and ScaleY.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
}

// SetAlpha sets the node's alpha, clamped to [0, 1].
func (n *Node) SetAlpha(a float64) {
	n.Alpha = clamp01(a)
}

// WorldPosition returns the node's position with every ancestor's position
// added. Scale and rotation of ancestors are not applied: collision space is
// translation-only.
func (n *Node) WorldPosition() Vec2 {
	p := n.Position()
	for a := n.Parent; a != nil; a = a.Parent {
		p.X += a.X
		p.Y += a.Y
	}
	return p
}

// Bounds returns the node's unscaled bounding box in collision space. The
// box is offset by the pivot so that the position marks the pivot anchor.
func (n *Node) Bounds() Rect {
	p := n.WorldPosition()
	origin := Vec2{p.X - n.PivotX*n.Width, p.Y - n.PivotY*n.Height}
	return RectFromSize(origin, n.Width, n.Height)
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
