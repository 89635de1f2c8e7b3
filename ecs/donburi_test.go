package ecs

import (
	"testing"

	"github.com/phanxgames/cakewalk"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitCollision(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []cakewalk.CollisionEvent
	CollisionEventType.Subscribe(world, func(w donburi.World, e cakewalk.CollisionEvent) {
		received = append(received, e)
	})

	store.EmitCollision(cakewalk.CollisionEvent{
		Frame:    3,
		MovingID: "hero#2",
		OtherID:  "floor#1",
		Normal:   cakewalk.Vec2{X: 0, Y: -1},
		Phase:    cakewalk.PhaseEnter,
	})
	store.EmitCollision(cakewalk.CollisionEvent{
		Frame:    4,
		MovingID: "hero#2",
		OtherID:  "floor#1",
		Phase:    cakewalk.PhaseExit,
	})

	// Events are queued; process them.
	CollisionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Phase != cakewalk.PhaseEnter || e0.MovingID != "hero#2" || e0.OtherID != "floor#1" {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Normal != (cakewalk.Vec2{X: 0, Y: -1}) {
		t.Errorf("event 0 normal = %v", e0.Normal)
	}

	e1 := received[1]
	if e1.Phase != cakewalk.PhaseExit || e1.Frame != 4 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store cakewalk.EntityStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	CollisionEventType.Subscribe(world, func(w donburi.World, e cakewalk.CollisionEvent) {
		count1++
	})
	CollisionEventType.Subscribe(world, func(w donburi.World, e cakewalk.CollisionEvent) {
		count2++
	})

	store.EmitCollision(cakewalk.CollisionEvent{Phase: cakewalk.PhaseStay})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiStore_FromWorld(t *testing.T) {
	ecsWorld := donburi.NewWorld()
	w := cakewalk.NewWorld(cakewalk.WorldConfig{})
	w.SetEntityStore(NewDonburiStore(ecsWorld))
	w.SetCollisionPair(1, 2, true)

	a := w.NewBox("a", 10, 10, cakewalk.ColorWhite)
	a.SetCollider(1, true)
	b := w.NewBox("b", 10, 10, cakewalk.ColorWhite)
	b.SetPosition(5, 5)
	b.SetCollider(2, false)
	w.Root().AddChild(a)
	w.Root().AddChild(b)

	var phases []cakewalk.Phase
	CollisionEventType.Subscribe(ecsWorld, func(_ donburi.World, e cakewalk.CollisionEvent) {
		phases = append(phases, e.Phase)
	})

	w.RunCollisionPass(w.Root())
	w.RunCollisionPass(w.Root())
	b.SetPosition(100, 100)
	w.RunCollisionPass(w.Root())
	CollisionEventType.ProcessEvents(ecsWorld)

	want := []cakewalk.Phase{cakewalk.PhaseEnter, cakewalk.PhaseStay, cakewalk.PhaseExit}
	if len(phases) != len(want) {
		t.Fatalf("phases = %v, want %v", phases, want)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("phases[%d] = %v, want %v", i, phases[i], want[i])
		}
	}
}

func TestLinkNode(t *testing.T) {
	world := donburi.NewWorld()
	e1 := LinkNode(world, "hero#2")
	e2 := LinkNode(world, "cake#7")

	got, ok := EntityForNode(world, "cake#7")
	if !ok || got != e2 {
		t.Errorf("EntityForNode(cake#7) = %v, %v, want %v, true", got, ok, e2)
	}
	got, ok = EntityForNode(world, "hero#2")
	if !ok || got != e1 {
		t.Errorf("EntityForNode(hero#2) = %v, %v, want %v, true", got, ok, e1)
	}
	if _, ok := EntityForNode(world, "missing#9"); ok {
		t.Error("EntityForNode(missing) should report false")
	}
}
