package cakewalk

// Phase classifies a collision event relative to the previous frame.
type Phase uint8

const (
	PhaseEnter Phase = iota // pair overlaps now but did not last frame
	PhaseStay               // pair overlapped last frame and still does
	PhaseExit               // pair overlapped last frame but no longer does
)

// String returns the lower-case phase name.
func (p Phase) String() string {
	switch p {
	case PhaseEnter:
		return "enter"
	case PhaseStay:
		return "stay"
	case PhaseExit:
		return "exit"
	default:
		return "unknown"
	}
}

// CollisionEvent is dispatched once per overlapping pair per frame, plus one
// Exit when the pair separates.
//
// MovingID is the node that was resolved (the one with a Body) or, when no
// resolution took place, the first node of the pair in iteration order.
// Normal points from the other node toward the moving node; it is the zero
// vector for Exit events and for ambiguous contacts. The IDs are not
// guaranteed to resolve: either node may be removed before a listener looks
// it up with World.Lookup.
type CollisionEvent struct {
	Frame    uint64
	MovingID string
	OtherID  string
	Normal   Vec2
	Phase    Phase
}

// Involves reports whether id is one of the two nodes in the event.
func (e CollisionEvent) Involves(id string) bool {
	return e.MovingID == id || e.OtherID == id
}

// Other returns the ID of the node paired with id.
func (e CollisionEvent) Other(id string) string {
	if e.MovingID == id {
		return e.OtherID
	}
	return e.MovingID
}

// EntityStore is the interface for optional ECS integration.
// When set on a World, collision events are forwarded to the ECS.
type EntityStore interface {
	EmitCollision(event CollisionEvent)
}

// --- Dispatcher ---

type handler[E any] struct {
	id uint32
	fn func(E)
}

// Dispatcher is a typed publish/subscribe registry. The zero value is ready
// to use. Listeners run synchronously in subscription order.
type Dispatcher[E any] struct {
	handlers []handler[E]
	nextID   uint32
}

// Subscribe registers fn and returns a handle that removes it.
func (d *Dispatcher[E]) Subscribe(fn func(E)) CallbackHandle {
	d.nextID++
	d.handlers = append(d.handlers, handler[E]{id: d.nextID, fn: fn})
	return CallbackHandle{id: d.nextID, reg: d}
}

// Emit delivers e to every listener registered when Emit was called.
// Listeners may subscribe or remove handles while being called; changes take
// effect from the next Emit.
func (d *Dispatcher[E]) Emit(e E) {
	hs := d.handlers
	for i := range hs {
		hs[i].fn(e)
	}
}

// Len returns the number of registered listeners.
func (d *Dispatcher[E]) Len() int {
	return len(d.handlers)
}

// Clear removes every listener.
func (d *Dispatcher[E]) Clear() {
	d.handlers = nil
}

// remove copies on write so that an Emit in progress keeps iterating the old
// backing array.
func (d *Dispatcher[E]) remove(id uint32) {
	for i := range d.handlers {
		if d.handlers[i].id == id {
			s := make([]handler[E], 0, len(d.handlers)-1)
			s = append(s, d.handlers[:i]...)
			d.handlers = append(s, d.handlers[i+1:]...)
			return
		}
	}
}

type handlerRemover interface {
	remove(id uint32)
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id  uint32
	reg handlerRemover
}

// Remove unregisters the callback so it no longer fires. Removing twice, or
// removing the zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.remove(h.id)
}
