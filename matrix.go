package cakewalk

// LayerPair is an unordered pair of collision layers stored with the smaller
// layer first.
type LayerPair struct {
	A, B int
}

func makeLayerPair(a, b int) LayerPair {
	if a > b {
		a, b = b, a
	}
	return LayerPair{a, b}
}

// CollisionMatrix records which layers are tested against each other. Pairs
// are symmetric and iterate in registration order.
type CollisionMatrix struct {
	pairs []LayerPair
	set   map[LayerPair]struct{}
}

// Set enables or disables collisions between layers a and b regardless of
// argument order.
func (m *CollisionMatrix) Set(a, b int, enabled bool) {
	p := makeLayerPair(a, b)
	if m.set == nil {
		m.set = make(map[LayerPair]struct{})
	}
	_, exists := m.set[p]
	switch {
	case enabled && !exists:
		m.set[p] = struct{}{}
		m.pairs = append(m.pairs, p)
	case !enabled && exists:
		delete(m.set, p)
		// Copy so a collision pass iterating the old slice is unaffected.
		kept := make([]LayerPair, 0, len(m.pairs))
		for _, q := range m.pairs {
			if q != p {
				kept = append(kept, q)
			}
		}
		m.pairs = kept
	}
}

// Check reports whether layers a and b collide. Unregistered pairs never do.
func (m *CollisionMatrix) Check(a, b int) bool {
	_, ok := m.set[makeLayerPair(a, b)]
	return ok
}

// Pairs returns the registered pairs in registration order. The returned
// slice MUST NOT be mutated.
func (m *CollisionMatrix) Pairs() []LayerPair {
	return m.pairs
}

// Reset removes every pair.
func (m *CollisionMatrix) Reset() {
	m.pairs = nil
	m.set = nil
}
