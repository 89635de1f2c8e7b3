package cakewalk

import "testing"

func TestDispatcherOrder(t *testing.T) {
	var d Dispatcher[int]
	var got []int
	d.Subscribe(func(v int) { got = append(got, v*10) })
	d.Subscribe(func(v int) { got = append(got, v*100) })

	d.Emit(1)
	if len(got) != 2 || got[0] != 10 || got[1] != 100 {
		t.Errorf("got %v, want [10 100]", got)
	}
	if d.Len() != 2 {
		t.Errorf("Len = %d, want 2", d.Len())
	}
}

func TestDispatcherRemove(t *testing.T) {
	var d Dispatcher[string]
	calls := 0
	h := d.Subscribe(func(string) { calls++ })
	h.Remove()
	h.Remove()
	d.Emit("x")
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
	if d.Len() != 0 {
		t.Errorf("Len = %d, want 0", d.Len())
	}
}

func TestZeroHandleRemove(t *testing.T) {
	var h CallbackHandle
	h.Remove()
}

func TestDispatcherSubscribeDuringEmit(t *testing.T) {
	var d Dispatcher[int]
	late := 0
	d.Subscribe(func(int) {
		if d.Len() == 1 {
			d.Subscribe(func(int) { late++ })
		}
	})

	d.Emit(0)
	if late != 0 {
		t.Errorf("late listener ran during the emit that added it")
	}
	d.Emit(0)
	if late != 1 {
		t.Errorf("late calls = %d, want 1", late)
	}
}

func TestDispatcherClear(t *testing.T) {
	var d Dispatcher[int]
	d.Subscribe(func(int) { t.Error("cleared listener ran") })
	d.Clear()
	d.Emit(1)
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		p    Phase
		want string
	}{
		{PhaseEnter, "enter"},
		{PhaseStay, "stay"},
		{PhaseExit, "exit"},
		{Phase(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestCollisionEventParticipants(t *testing.T) {
	e := CollisionEvent{MovingID: "hero#1", OtherID: "cake#2"}
	if !e.Involves("hero#1") || !e.Involves("cake#2") || e.Involves("floor#3") {
		t.Error("Involves mismatch")
	}
	if e.Other("hero#1") != "cake#2" || e.Other("cake#2") != "hero#1" {
		t.Error("Other mismatch")
	}
}
