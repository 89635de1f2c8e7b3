package cakewalk

// HitboxKind selects the default hitbox geometry derived from a node's bounds.
type HitboxKind uint8

const (
	HitboxRect   HitboxKind = iota // the node's bounding box
	HitboxCircle                   // centered on the box, radius Width/2
)

// Collider makes a node take part in collision detection.
type Collider struct {
	// Layer partitions colliders; only layer pairs registered with
	// World.SetCollisionPair are tested.
	Layer int
	// Trigger colliders report events but are never pushed and never push.
	Trigger bool
	// Kind selects the default hitbox when Hitbox is nil.
	Kind HitboxKind
	// Hitbox overrides the default hitbox. It receives the owning node.
	Hitbox func(n *Node) Shape
}

// SetCollider attaches a collider and returns the node for chaining.
func (n *Node) SetCollider(layer int, trigger bool) *Node {
	n.Collider = &Collider{Layer: layer, Trigger: trigger}
	return n
}

// Hitbox returns the node's hitbox in collision space, or nil when the node
// has no collider.
func (n *Node) Hitbox() Shape {
	c := n.Collider
	if c == nil {
		return nil
	}
	if c.Hitbox != nil {
		return c.Hitbox(n)
	}
	b := n.Bounds()
	if c.Kind == HitboxCircle {
		return Circle{Center: b.Center(), Radius: n.Width / 2}
	}
	return b
}

// IsTrigger reports whether the node has a trigger collider.
func (n *Node) IsTrigger() bool {
	return n.Collider != nil && n.Collider.Trigger
}
