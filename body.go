package cakewalk

// Body makes a node dynamic: it is integrated every update and is the one
// repositioned when it overlaps a static collider.
type Body struct {
	Mass         float64 // kilograms; values <= 0 are treated as 1
	Elasticity   float64 // coefficient of restitution, 0 = fully inelastic
	Acceleration Vec2    // meters per second², recomputed each step from forces
	Velocity     Vec2    // meters per second
	PrevPosition Vec2    // local position at the start of the last step

	force Vec2
}

// NewBody returns a body with unit mass.
func NewBody() *Body {
	return &Body{Mass: 1}
}

// SetBody attaches a unit-mass body and returns it.
func (n *Node) SetBody() *Body {
	n.Body = NewBody()
	n.Body.PrevPosition = n.Position()
	return n.Body
}

// AddForce accumulates f (newtons) for the next integration step.
func (b *Body) AddForce(f Vec2) {
	b.force = b.force.Add(f)
}

// Force returns the force accumulated since the last step.
func (b *Body) Force() Vec2 {
	return b.force
}

func (b *Body) mass() float64 {
	if b.Mass <= 0 {
		return 1
	}
	return b.Mass
}

// integrate advances n by one fixed step dt with semi-implicit Euler.
// Displacement is converted from meters to pixels with ppm.
func (b *Body) integrate(n *Node, dt, ppm float64) {
	pos := n.Position()
	b.PrevPosition = pos
	b.Acceleration = b.force.Scale(1 / b.mass())
	b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
	delta := b.Velocity.Scale(dt).Add(b.Acceleration.Scale(dt * dt)).Scale(ppm)
	n.SetPosition(pos.X+delta.X, pos.Y+delta.Y)
	b.force = Vec2{}
}
