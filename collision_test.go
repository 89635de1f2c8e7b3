package cakewalk

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

const (
	layerMover  = 1
	layerStatic = 2
)

func newCollisionWorld() *World {
	w := newTestWorld()
	w.SetCollisionPair(layerMover, layerStatic, true)
	return w
}

func addBox(w *World, name string, x, y, width, height float64, layer int, trigger bool) *Node {
	n := w.NewBox(name, width, height, ColorWhite)
	n.SetPosition(x, y)
	n.SetCollider(layer, trigger)
	w.Root().AddChild(n)
	return n
}

type eventLog struct {
	events []CollisionEvent
}

func (l *eventLog) record(e CollisionEvent) { l.events = append(l.events, e) }

func (l *eventLog) phases() string {
	s := make([]string, len(l.events))
	for i, e := range l.events {
		s[i] = e.Phase.String()
	}
	return strings.Join(s, ",")
}

// --- Detection and pair state ---

func TestCollisionEnterStayExit(t *testing.T) {
	w := newCollisionWorld()
	a := addBox(w, "a", 0, 0, 10, 10, layerMover, true)
	b := addBox(w, "b", 5, 5, 10, 10, layerStatic, false)
	var log eventLog
	w.OnCollision(log.record)

	w.RunCollisionPass(w.Root())
	w.RunCollisionPass(w.Root())
	b.SetPosition(20, 20)
	w.RunCollisionPass(w.Root())
	w.RunCollisionPass(w.Root())

	if got := log.phases(); got != "enter,stay,exit" {
		t.Fatalf("phases = %s, want enter,stay,exit", got)
	}
	for i, e := range log.events {
		if e.MovingID != a.ID || e.OtherID != b.ID {
			t.Errorf("event %d = %s/%s, want %s/%s", i, e.MovingID, e.OtherID, a.ID, b.ID)
		}
		if e.Frame != uint64(i+1) {
			t.Errorf("event %d Frame = %d, want %d", i, e.Frame, i+1)
		}
	}
	if !log.events[2].Normal.IsZero() {
		t.Errorf("exit normal = %v, want zero", log.events[2].Normal)
	}
	if w.ActivePairs() != 0 {
		t.Errorf("ActivePairs = %d, want 0", w.ActivePairs())
	}
}

func TestCollisionEdgeContactIsNotOverlap(t *testing.T) {
	w := newCollisionWorld()
	addBox(w, "a", 0, 0, 10, 10, layerMover, true)
	addBox(w, "b", 10, 0, 10, 10, layerStatic, false)
	var log eventLog
	w.OnCollision(log.record)

	w.RunCollisionPass(w.Root())
	if len(log.events) != 0 {
		t.Errorf("edge contact produced %d events", len(log.events))
	}
}

func TestCollisionUnregisteredPair(t *testing.T) {
	w := newCollisionWorld()
	addBox(w, "a", 0, 0, 10, 10, layerMover, true)
	addBox(w, "b", 0, 0, 10, 10, 7, false)
	var log eventLog
	w.OnCollision(log.record)

	w.RunCollisionPass(w.Root())
	if len(log.events) != 0 {
		t.Errorf("unregistered layers produced %d events", len(log.events))
	}
}

func TestCollisionLowerLayerIsFirst(t *testing.T) {
	w := newTestWorld()
	w.SetCollisionPair(layerStatic, layerMover, true)
	hi := addBox(w, "hi", 0, 0, 10, 10, layerStatic, true)
	lo := addBox(w, "lo", 0, 0, 10, 10, layerMover, true)
	var log eventLog
	w.OnCollision(log.record)

	w.RunCollisionPass(w.Root())
	if len(log.events) != 1 {
		t.Fatalf("events = %d, want 1", len(log.events))
	}
	if e := log.events[0]; e.MovingID != lo.ID || e.OtherID != hi.ID {
		t.Errorf("event = %s/%s, want %s/%s", e.MovingID, e.OtherID, lo.ID, hi.ID)
	}
}

func TestCollisionSameLayerPair(t *testing.T) {
	w := newTestWorld()
	w.SetCollisionPair(3, 3, true)
	addBox(w, "a", 0, 0, 10, 10, 3, true)
	addBox(w, "b", 5, 0, 10, 10, 3, true)
	var log eventLog
	w.OnCollision(log.record)

	w.RunCollisionPass(w.Root())
	if len(log.events) != 1 {
		t.Errorf("events = %d, want 1", len(log.events))
	}
}

func TestCollisionPassIdempotent(t *testing.T) {
	w := newCollisionWorld()
	a := addBox(w, "a", 0, 0, 10, 10, layerMover, true)
	addBox(w, "b", 5, 5, 10, 10, layerStatic, true)
	var log eventLog
	w.OnCollision(log.record)

	for i := 0; i < 5; i++ {
		w.RunCollisionPass(w.Root())
	}
	if got := log.phases(); got != "enter,stay,stay,stay,stay" {
		t.Errorf("phases = %s", got)
	}
	if a.Position() != (Vec2{0, 0}) {
		t.Error("triggers should never move")
	}
	if w.ActivePairs() != 1 {
		t.Errorf("ActivePairs = %d, want 1", w.ActivePairs())
	}
}

func TestCollisionNodeListenersOnlyParticipants(t *testing.T) {
	w := newCollisionWorld()
	a := addBox(w, "a", 0, 0, 10, 10, layerMover, true)
	b := addBox(w, "b", 5, 5, 10, 10, layerStatic, true)
	c := addBox(w, "c", 100, 100, 10, 10, layerStatic, true)

	var aLog, bLog, cLog eventLog
	a.OnCollision(aLog.record)
	b.OnCollision(bLog.record)
	c.OnCollision(cLog.record)

	w.RunCollisionPass(w.Root())
	if len(aLog.events) != 1 || len(bLog.events) != 1 {
		t.Errorf("participants got %d and %d events, want 1 each", len(aLog.events), len(bLog.events))
	}
	if len(cLog.events) != 0 {
		t.Errorf("bystander got %d events", len(cLog.events))
	}
}

type recordingStore struct {
	eventLog
}

func (s *recordingStore) EmitCollision(e CollisionEvent) { s.record(e) }

func TestCollisionForwardsToEntityStore(t *testing.T) {
	w := newCollisionWorld()
	addBox(w, "a", 0, 0, 10, 10, layerMover, true)
	addBox(w, "b", 5, 5, 10, 10, layerStatic, true)
	store := &recordingStore{}
	w.SetEntityStore(store)

	w.RunCollisionPass(w.Root())
	if len(store.events) != 1 || store.events[0].Phase != PhaseEnter {
		t.Errorf("store events = %v", store.events)
	}
}

// --- Listener and removal safety ---

func TestListenerRemovedMidPass(t *testing.T) {
	w := newCollisionWorld()
	addBox(w, "a", 0, 0, 10, 10, layerMover, true)
	addBox(w, "b", 5, 5, 10, 10, layerStatic, true)

	second := 0
	var h CallbackHandle
	w.OnCollision(func(CollisionEvent) { h.Remove() })
	h = w.OnCollision(func(CollisionEvent) { second++ })

	w.RunCollisionPass(w.Root())
	if second != 1 {
		t.Errorf("second listener calls = %d, want 1 for the pass in progress", second)
	}
	w.RunCollisionPass(w.Root())
	if second != 1 {
		t.Errorf("second listener calls = %d, want 1 after removal", second)
	}
}

func TestRemovalDuringPassExitsNextFrame(t *testing.T) {
	w := newCollisionWorld()
	hero := addBox(w, "hero", 0, 0, 10, 10, layerMover, false)
	cake := addBox(w, "cake", 5, 5, 10, 10, layerStatic, true)
	cake.OnCollision(func(e CollisionEvent) {
		if e.Phase == PhaseEnter {
			cake.RemoveSelf()
		}
	})
	var heroLog eventLog
	hero.OnCollision(heroLog.record)
	cakeID := cake.ID

	w.Step(1.0 / 60)
	if !cake.IsDisposed() || w.Lookup(cakeID) != nil {
		t.Fatal("cake should be drained at the end of the frame")
	}

	w.Step(1.0 / 60)
	if got := heroLog.phases(); got != "enter,exit" {
		t.Fatalf("phases = %s, want enter,exit", got)
	}
	if heroLog.events[1].Other(hero.ID) != cakeID {
		t.Errorf("exit other = %s, want %s", heroLog.events[1].Other(hero.ID), cakeID)
	}
}

// --- Resolution ---

func TestInelasticLandingOnFloor(t *testing.T) {
	w := newCollisionWorld()
	floor := addBox(w, "floor", 0, 100, 100, 10, layerStatic, false)
	box := addBox(w, "box", 10, 85, 10, 10, layerMover, false)
	body := box.SetBody()
	body.Velocity = Vec2{0, 20}
	var log eventLog
	w.OnCollision(log.record)

	w.Step(1.0 / 60)

	if box.Y < 89.9 || box.Y > 90 {
		t.Errorf("Y = %v, want resting on the floor at 90", box.Y)
	}
	if box.X != 10 {
		t.Errorf("X = %v, want 10", box.X)
	}
	if body.Velocity.Y != 0 {
		t.Errorf("Velocity.Y = %v, want 0", body.Velocity.Y)
	}
	if len(log.events) != 1 {
		t.Fatalf("events = %d, want 1", len(log.events))
	}
	e := log.events[0]
	if e.MovingID != box.ID || e.OtherID != floor.ID || e.Phase != PhaseEnter {
		t.Errorf("event = %+v", e)
	}
	if e.Normal != (Vec2{0, -1}) {
		t.Errorf("Normal = %v, want (0, -1)", e.Normal)
	}
}

func TestInelasticWallStopsHorizontal(t *testing.T) {
	w := newCollisionWorld()
	addBox(w, "wall", 100, 0, 10, 100, layerStatic, false)
	box := addBox(w, "box", 85, 50, 10, 10, layerMover, false)
	body := box.SetBody()
	body.Velocity = Vec2{20, 0}
	var log eventLog
	w.OnCollision(log.record)

	w.Step(1.0 / 60)

	if box.X < 89.9 || box.X > 90 {
		t.Errorf("X = %v, want just left of the wall at 90", box.X)
	}
	if body.Velocity.X != 0 {
		t.Errorf("Velocity.X = %v, want 0", body.Velocity.X)
	}
	if len(log.events) != 1 || log.events[0].Normal != (Vec2{-1, 0}) {
		t.Errorf("events = %+v, want one with normal (-1, 0)", log.events)
	}
}

func TestElasticBounce(t *testing.T) {
	w := newCollisionWorld()
	addBox(w, "floor", 0, 100, 100, 10, layerStatic, false)
	box := addBox(w, "ball", 10, 85, 10, 10, layerMover, false)
	body := box.SetBody()
	body.Elasticity = 0.5
	body.Velocity = Vec2{0, 20}

	w.Step(1.0 / 60)

	if math.Abs(body.Velocity.Y+10) > 1e-9 || body.Velocity.X != 0 {
		t.Errorf("Velocity = %v, want (0, -10)", body.Velocity)
	}
	if box.Y > 90 {
		t.Errorf("Y = %v, want at most 90", box.Y)
	}
}

func TestTriggerIsNeverPushed(t *testing.T) {
	w := newCollisionWorld()
	addBox(w, "floor", 0, 100, 100, 10, layerStatic, false)
	box := addBox(w, "ghost", 10, 85, 10, 10, layerMover, true)
	body := box.SetBody()
	body.Velocity = Vec2{0, 20}
	var log eventLog
	w.OnCollision(log.record)

	w.Step(1.0 / 60)

	want := 85 + 20.0/60*DefaultPixelsPerMeter
	if math.Abs(box.Y-want) > 1e-9 {
		t.Errorf("Y = %v, want unresolved %v", box.Y, want)
	}
	if body.Velocity.Y != 20 {
		t.Errorf("Velocity.Y = %v, want 20", body.Velocity.Y)
	}
	if len(log.events) != 1 {
		t.Errorf("events = %d, want 1", len(log.events))
	}
}

func TestStaticTriggerDoesNotPush(t *testing.T) {
	w := newCollisionWorld()
	addBox(w, "zone", 0, 100, 100, 10, layerStatic, true)
	box := addBox(w, "box", 10, 85, 10, 10, layerMover, false)
	body := box.SetBody()
	body.Velocity = Vec2{0, 20}

	w.Step(1.0 / 60)

	if box.Y <= 90 {
		t.Errorf("Y = %v, want the box to pass into the trigger", box.Y)
	}
}

func TestDynamicPairIsNotResolved(t *testing.T) {
	w := newCollisionWorld()
	a := addBox(w, "a", 0, 0, 10, 10, layerMover, false)
	b := addBox(w, "b", 5, 5, 10, 10, layerStatic, false)
	a.SetBody()
	b.SetBody()
	var buf bytes.Buffer
	w.SetLogOutput(&buf)
	var log eventLog
	w.OnCollision(log.record)

	w.RunCollisionPass(w.Root())
	if buf.Len() != 0 {
		t.Errorf("log without debug mode = %q", buf.String())
	}

	w.SetDebugMode(true)
	w.RunCollisionPass(w.Root())
	if !strings.Contains(buf.String(), "dynamic-vs-dynamic") {
		t.Errorf("log = %q, want dynamic-vs-dynamic notice", buf.String())
	}
	if len(log.events) != 2 {
		t.Errorf("events = %d, want 2", len(log.events))
	}
	if a.Position() != (Vec2{0, 0}) || b.Position() != (Vec2{5, 5}) {
		t.Error("dynamic bodies should not be moved")
	}
	if !log.events[0].Normal.IsZero() {
		t.Errorf("Normal = %v, want zero", log.events[0].Normal)
	}
}

func TestContactNormalAgainstCircle(t *testing.T) {
	w := newTestWorld()
	peg := w.NewBox("peg", 20, 20, ColorWhite)
	peg.SetPivot(0.5, 0.5)
	peg.SetCollider(layerStatic, false).Collider.Kind = HitboxCircle

	ball := w.NewBox("ball", 4, 4, ColorWhite)
	ball.SetPivot(0.5, 0.5)
	ball.SetCollider(layerMover, false)
	ball.SetPosition(3, -4)

	if got := contactNormal(ball, peg); !vecApprox(got, Vec2{0.6, -0.8}) {
		t.Errorf("normal = %v, want (0.6, -0.8)", got)
	}
}

func TestResolveWithoutOverlapIsNoop(t *testing.T) {
	w := newCollisionWorld()
	floor := addBox(w, "floor", 0, 100, 100, 10, layerStatic, false)
	box := addBox(w, "box", 10, 50, 10, 10, layerMover, false)
	box.SetBody()

	moved, _ := w.resolveStatic(box, floor)
	if moved {
		t.Error("resolveStatic should not move a non-overlapping mover")
	}
	if box.Position() != (Vec2{10, 50}) {
		t.Errorf("position = %v, want (10, 50)", box.Position())
	}
}

func TestResolveSquareOntoFloor(t *testing.T) {
	w := newCollisionWorld()
	floor := addBox(w, "floor", 0, 110, 1000, 90, layerStatic, false)
	sq := addBox(w, "square", 100, 112, 20, 20, layerMover, false)
	sq.SetPivot(0.5, 1)
	body := sq.SetBody()
	body.PrevPosition = Vec2{100, 100}
	body.Velocity = Vec2{0, 50}

	moved, normal := w.resolveStatic(sq, floor)
	if !moved {
		t.Fatal("square should be resolved")
	}
	if sq.Y > 110 || sq.Y < 109.9 {
		t.Errorf("Y = %v, want resting on the floor at 110", sq.Y)
	}
	if sq.X != 100 {
		t.Errorf("X = %v, want 100", sq.X)
	}
	if body.Velocity != (Vec2{0, 0}) {
		t.Errorf("Velocity = %v, want zero", body.Velocity)
	}
	if normal != (Vec2{0, -1}) {
		t.Errorf("normal = %v, want (0, -1)", normal)
	}
}

func TestMoverThroughTriggerZone(t *testing.T) {
	w := newCollisionWorld()
	zone := addBox(w, "zone", 20, 0, 10, 10, layerStatic, true)
	box := addBox(w, "box", 5, 0, 10, 10, layerMover, false)
	// 10 px per frame at the default step and scale.
	box.SetBody().Velocity = Vec2{18.75, 0}
	var log eventLog
	zone.OnCollision(log.record)

	for i := 0; i < 4; i++ {
		w.Step(1.0 / 60)
	}
	if got := log.phases(); got != "enter,stay,exit" {
		t.Errorf("phases = %s, want enter,stay,exit", got)
	}
	if math.Abs(box.X-45) > 1e-9 {
		t.Errorf("X = %v, want 45", box.X)
	}
}

// --- Compound colliders ---

func addChildBox(parent *Node, name string, x, y, width, height float64, layer int) *Node {
	n := parent.world.NewBox(name, width, height, ColorWhite)
	n.SetPosition(x, y)
	n.SetCollider(layer, false)
	parent.AddChild(n)
	return n
}

func TestCollisionThroughMoverDescendant(t *testing.T) {
	w := newCollisionWorld()
	group := w.NewContainer("group")
	group.SetCollider(layerMover, false)
	w.Root().AddChild(group)
	part := addChildBox(group, "part", 100, 0, 10, 10, layerMover)
	wall := addBox(w, "wall", 105, 0, 10, 10, layerStatic, false)
	var log eventLog
	w.OnCollision(log.record)

	if Intersects(group.Hitbox(), wall.Hitbox()) {
		t.Fatal("group's own hitbox should not reach the wall")
	}
	if !w.collidesWith(group, wall) {
		t.Fatal("group should collide with the wall through its child")
	}

	w.RunCollisionPass(w.Root())

	var fromGroup []CollisionEvent
	for _, e := range log.events {
		if e.MovingID == group.ID {
			fromGroup = append(fromGroup, e)
		}
	}
	if len(fromGroup) != 1 {
		t.Fatalf("group events = %d, want 1", len(fromGroup))
	}
	if e := fromGroup[0]; e.OtherID != wall.ID || e.Phase != PhaseEnter {
		t.Errorf("group event = %+v, want enter against the wall", e)
	}
	// The child is a collider in its own right and reports separately.
	if len(log.events) != 2 || log.events[1].MovingID != part.ID {
		t.Errorf("events = %+v, want the group's then the part's", log.events)
	}
}

func TestCollisionDescendantOnUnpairedLayer(t *testing.T) {
	const layerDecor = 3
	w := newCollisionWorld()
	group := w.NewContainer("group")
	group.SetCollider(layerMover, false)
	w.Root().AddChild(group)
	addChildBox(group, "decor", 100, 0, 10, 10, layerDecor)
	wall := addBox(w, "wall", 105, 0, 10, 10, layerStatic, false)
	var log eventLog
	w.OnCollision(log.record)

	w.RunCollisionPass(w.Root())

	if w.collidesWith(group, wall) {
		t.Error("a child on a layer not paired with the wall should not count")
	}
	if len(log.events) != 0 {
		t.Errorf("events = %+v, want none", log.events)
	}
}

func TestCollisionThroughStaticDescendant(t *testing.T) {
	w := newCollisionWorld()
	ledge := w.NewContainer("ledge")
	ledge.SetCollider(layerStatic, false)
	w.Root().AddChild(ledge)
	step := addChildBox(ledge, "step", 100, 0, 10, 10, layerStatic)
	box := addBox(w, "box", 105, 0, 10, 10, layerMover, false)
	var log eventLog
	w.OnCollision(log.record)

	w.RunCollisionPass(w.Root())

	if len(log.events) != 2 {
		t.Fatalf("events = %d, want 2", len(log.events))
	}
	if e := log.events[0]; e.MovingID != box.ID || e.OtherID != ledge.ID {
		t.Errorf("first event = %s/%s, want %s/%s", e.MovingID, e.OtherID, box.ID, ledge.ID)
	}
	if e := log.events[1]; e.MovingID != box.ID || e.OtherID != step.ID {
		t.Errorf("second event = %s/%s, want %s/%s", e.MovingID, e.OtherID, box.ID, step.ID)
	}
}

func TestBodyResolvedThroughChildHitbox(t *testing.T) {
	w := newCollisionWorld()
	floor := addBox(w, "floor", 0, 100, 100, 10, layerStatic, false)
	rig := w.NewContainer("rig")
	rig.SetPosition(10, 85)
	rig.SetCollider(layerMover, false)
	w.Root().AddChild(rig)
	feet := addChildBox(rig, "feet", 0, 0, 10, 10, layerMover)
	body := rig.SetBody()
	body.Velocity = Vec2{0, 20}
	var log eventLog
	w.OnCollision(log.record)

	w.Step(1.0 / 60)

	if rig.Y < 89.9 || rig.Y > 90 {
		t.Errorf("rig Y = %v, want 90 with its child resting on the floor", rig.Y)
	}
	if body.Velocity.Y != 0 {
		t.Errorf("Velocity.Y = %v, want 0", body.Velocity.Y)
	}
	if b := feet.Bounds(); b.Bottom > floor.Bounds().Top {
		t.Errorf("child bottom = %v, want at or above %v", b.Bottom, floor.Bounds().Top)
	}
	if len(log.events) != 1 {
		t.Fatalf("events = %+v, want only the rig's", log.events)
	}
	if e := log.events[0]; e.MovingID != rig.ID || e.OtherID != floor.ID || e.Normal != (Vec2{0, -1}) {
		t.Errorf("event = %+v, want rig on floor with normal (0, -1)", e)
	}
}

func TestResolveDiagonalIntoCorner(t *testing.T) {
	w := newCollisionWorld()
	block := addBox(w, "block", 12, 12, 18, 18, layerStatic, false)
	box := addBox(w, "box", 15, 15, 10, 10, layerMover, false)
	body := box.SetBody()
	body.PrevPosition = Vec2{0, 0}
	body.Velocity = Vec2{10, 10}

	// Each axis alone is free from the previous position; together they land
	// inside the block, so the vertical axis is searched again.
	moved, normal := w.resolveStatic(box, block)
	if !moved {
		t.Fatal("box should be resolved")
	}
	if w.collidesWith(box, block) {
		t.Fatalf("box still overlaps the block at %v", box.Position())
	}
	if box.X != 15 {
		t.Errorf("X = %v, want 15", box.X)
	}
	if box.Y < 1.9 || box.Y > 2 {
		t.Errorf("Y = %v, want just above the block at 2", box.Y)
	}
	if body.Velocity != (Vec2{10, 0}) {
		t.Errorf("Velocity = %v, want (10, 0)", body.Velocity)
	}
	if normal != (Vec2{0, -1}) {
		t.Errorf("normal = %v, want (0, -1)", normal)
	}
}
