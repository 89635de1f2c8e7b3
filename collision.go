package cakewalk

// resolveSteps is the number of bisection steps used per axis when pulling a
// mover back out of a static collider.
const resolveSteps = 8

type axis uint8

const (
	axisX axis = iota
	axisY
)

// pairKey is an ordered (moving, other) pair of node IDs.
type pairKey struct {
	moving, other string
}

// pairState is the set of pairs that overlapped during one collision pass,
// kept in detection order so Exit events are dispatched deterministically.
type pairState struct {
	order []pairKey
	set   map[pairKey]struct{}
}

func (s *pairState) add(k pairKey) {
	if s.set == nil {
		s.set = make(map[pairKey]struct{})
	}
	if _, ok := s.set[k]; ok {
		return
	}
	s.set[k] = struct{}{}
	s.order = append(s.order, k)
}

// has reports whether a and b were paired, in either order.
func (s *pairState) has(a, b string) bool {
	if _, ok := s.set[pairKey{a, b}]; ok {
		return true
	}
	_, ok := s.set[pairKey{b, a}]
	return ok
}

func (s *pairState) len() int {
	return len(s.order)
}

// RunCollisionPass detects, resolves and reports collisions among all
// collidable nodes under root (root included).
//
// Colliders are snapshotted once up front, so listeners may move nodes, hide
// them or queue them for removal while the pass runs: a removed node keeps
// taking part until the next pass. The pass never fails; irregular cases
// degrade to no resolution and a zero normal.
//
// Two bodies touching each other still produce events but are not pushed
// apart. The diagnostic for that case is written to the log output only
// while SetDebugMode(true) is on; with debug mode off the pass is silent.
func (w *World) RunCollisionPass(root *Node) {
	w.frame++
	buckets := w.gatherColliders(root)

	var current pairState
	for _, lp := range w.matrix.Pairs() {
		as := buckets[lp.A]
		if lp.A == lp.B {
			for j := 0; j < len(as); j++ {
				for k := j + 1; k < len(as); k++ {
					w.processPair(as[j], as[k], &current)
				}
			}
			continue
		}
		bs := buckets[lp.B]
		for _, a := range as {
			for _, b := range bs {
				w.processPair(a, b, &current)
			}
		}
	}

	prev := w.pairs
	w.pairs = current
	for _, k := range prev.order {
		if current.has(k.moving, k.other) {
			continue
		}
		w.dispatch(CollisionEvent{
			Frame:    w.frame,
			MovingID: k.moving,
			OtherID:  k.other,
			Phase:    PhaseExit,
		}, w.registry[k.moving], w.registry[k.other])
	}
}

// ActivePairs returns the number of pairs that overlapped during the last pass.
func (w *World) ActivePairs() int {
	return w.pairs.len()
}

// gatherColliders buckets every node with a Collider by layer, in pre-order.
func (w *World) gatherColliders(root *Node) map[int][]*Node {
	buckets := w.bucketBuf
	for layer, nodes := range buckets {
		clear(nodes)
		buckets[layer] = nodes[:0]
	}
	root.Map(func(n *Node) {
		if n.Collider == nil {
			return
		}
		buckets[n.Collider.Layer] = append(buckets[n.Collider.Layer], n)
		w.stats.colliders++
	})
	return buckets
}

func (w *World) processPair(a, b *Node, current *pairState) {
	w.stats.candidates++
	if current.has(a.ID, b.ID) || !w.collidesWith(a, b) {
		return
	}
	w.stats.hits++

	mover, other := a, b
	var normal Vec2
	switch {
	case a.Body != nil && b.Body != nil:
		// Two dynamic bodies: detection and events only.
		w.logf("dynamic-vs-dynamic collision between %q and %q is not resolved", a.ID, b.ID)
	case a.Body != nil:
		_, normal = w.resolveStatic(a, b)
	case b.Body != nil:
		mover, other = b, a
		_, normal = w.resolveStatic(b, a)
	}

	phase := PhaseEnter
	if w.pairs.has(mover.ID, other.ID) {
		phase = PhaseStay
	}
	current.add(pairKey{mover.ID, other.ID})
	w.dispatch(CollisionEvent{
		Frame:    w.frame,
		MovingID: mover.ID,
		OtherID:  other.ID,
		Normal:   normal,
		Phase:    phase,
	}, mover, other)
}

// dispatch delivers e to world-wide listeners, to the listeners of both
// nodes that are still live, then to the ECS bridge.
func (w *World) dispatch(e CollisionEvent, a, b *Node) {
	w.stats.events++
	w.collisions.Emit(e)
	if a != nil && !a.disposed {
		a.listeners.Emit(e)
	}
	if b != nil && !b.disposed {
		b.listeners.Emit(e)
	}
	if w.store != nil {
		w.store.EmitCollision(e)
	}
}

// collidesWith reports whether any collider in a's subtree overlaps any
// collider in b's subtree on a layer pair registered in the matrix.
func (w *World) collidesWith(a, b *Node) bool {
	if a.Collider != nil && w.hitTest(a, b) {
		return true
	}
	for _, child := range a.children {
		if w.collidesWith(child, b) {
			return true
		}
	}
	return false
}

func (w *World) hitTest(a, b *Node) bool {
	if b.Collider != nil && w.matrix.Check(a.Collider.Layer, b.Collider.Layer) &&
		Intersects(a.Hitbox(), b.Hitbox()) {
		return true
	}
	for _, child := range b.children {
		if w.hitTest(a, child) {
			return true
		}
	}
	return false
}

// resolveStatic pulls mover m out of static s along its last displacement
// and updates its velocity. Nothing moves when either side is a trigger or
// when the pair does not overlap. It reports whether m was repositioned and
// returns the contact normal.
func (w *World) resolveStatic(m, s *Node) (bool, Vec2) {
	if !w.collidesWith(m, s) {
		return false, contactNormal(m, s)
	}
	if m.IsTrigger() || s.IsTrigger() {
		return false, contactNormal(m, s)
	}

	b := m.Body
	prev := b.PrevPosition
	dp := m.Position().Sub(prev)

	fx, blockedX := w.searchAxis(m, s, prev, dp, axisX)
	fy, blockedY := w.searchAxis(m, s, prev, dp, axisY)
	pos := prev.Add(dp.Mul(Vec2{fx, fy}))
	m.SetPosition(pos.X, pos.Y)

	// Each axis was searched with the other held at its previous value, so a
	// diagonal move into a corner can still overlap. Settle it.
	if w.collidesWith(m, s) {
		var by bool
		fy, by = w.searchAxis(m, s, Vec2{pos.X, prev.Y}, dp, axisY)
		blockedY = blockedY || by
		pos = Vec2{pos.X, prev.Y + dp.Y*fy}
		m.SetPosition(pos.X, pos.Y)
	}
	if w.collidesWith(m, s) {
		blockedY = true
		pos.Y = prev.Y
		m.SetPosition(pos.X, pos.Y)
	}
	if w.collidesWith(m, s) {
		blockedX = true
		pos.X = prev.X
		m.SetPosition(pos.X, pos.Y)
	}

	normal := contactNormal(m, s)
	if b.Elasticity == 0 {
		if blockedX {
			b.Velocity.X = 0
		}
		if blockedY {
			b.Velocity.Y = 0
		}
	} else {
		b.Velocity = b.Velocity.Reflect(normal).Scale(b.Elasticity)
	}
	return true, normal
}

// searchAxis bisects the fraction of dp along one axis that m can travel
// from base without overlapping s; the other axis stays at base. It returns
// 1 and false when the full move is free. Otherwise the result is the
// largest fraction found free after resolveSteps halvings, and true.
// m is left at the last fraction tried; callers reposition it.
func (w *World) searchAxis(m, s *Node, base, dp Vec2, ax axis) (float64, bool) {
	blockedAt := func(f float64) bool {
		p := base
		if ax == axisX {
			p.X += dp.X * f
		} else {
			p.Y += dp.Y * f
		}
		m.SetPosition(p.X, p.Y)
		return w.collidesWith(m, s)
	}
	if !blockedAt(1) {
		return 1, false
	}
	lo, hi := 0.0, 1.0
	for i := 0; i < resolveSteps; i++ {
		mid := (lo + hi) / 2
		if blockedAt(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo, true
}

// contactNormal returns the unit normal pointing from s toward m.
//
// Against a rectangle the normal is taken from the side of s that m's
// bounding box lies entirely beyond, per axis; when m overlaps s on both axes
// (a trigger, or a deep corner contact) it is the zero vector. Against a
// circle it points from the circle's center to m's position.
func contactNormal(m, s *Node) Vec2 {
	mh, sh := m.Hitbox(), s.Hitbox()
	if mh == nil || sh == nil {
		return Vec2{}
	}
	var n Vec2
	switch sh := sh.(type) {
	case Circle:
		n = m.WorldPosition().Sub(sh.Center)
	case Rect:
		mb := mh.Bounds()
		switch {
		case mb.Right <= sh.Left:
			n.X = -1
		case mb.Left >= sh.Right:
			n.X = 1
		}
		switch {
		case mb.Bottom <= sh.Top:
			n.Y = -1
		case mb.Top >= sh.Bottom:
			n.Y = 1
		}
	}
	return n.Unit()
}
