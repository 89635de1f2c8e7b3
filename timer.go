package cakewalk

// Timer is a delayed or repeating callback advanced by World.Step with the
// real frame delta.
type Timer struct {
	remaining float64
	interval  float64
	repeat    bool
	fn        func()
	done      bool
}

// Cancel stops the timer. Cancelling a timer that already fired is a no-op.
func (t *Timer) Cancel() {
	t.done = true
}

// Remaining returns the seconds left until the timer next fires.
func (t *Timer) Remaining() float64 {
	return t.remaining
}

// Active reports whether the timer will still fire.
func (t *Timer) Active() bool {
	return !t.done
}

type timerList struct {
	timers []*Timer
}

// After runs fn once, seconds from now.
func (w *World) After(seconds float64, fn func()) *Timer {
	t := &Timer{remaining: seconds, fn: fn}
	w.timers.timers = append(w.timers.timers, t)
	return t
}

// Every runs fn each time interval seconds elapse. A non-positive interval
// fires once per frame.
func (w *World) Every(interval float64, fn func()) *Timer {
	t := &Timer{remaining: interval, interval: interval, repeat: true, fn: fn}
	w.timers.timers = append(w.timers.timers, t)
	return t
}

// NumTimers returns the number of pending timers.
func (w *World) NumTimers() int {
	return len(w.timers.timers)
}

// advance counts every timer down by dt and fires the expired ones in
// creation order. Timers created by callbacks start counting next frame.
func (l *timerList) advance(dt float64) {
	if len(l.timers) == 0 {
		return
	}
	current := l.timers
	l.timers = nil
	kept := make([]*Timer, 0, len(current))
	for _, t := range current {
		if t.done {
			continue
		}
		t.remaining -= dt
		if t.remaining <= 0 {
			t.fn()
			if !t.repeat {
				t.done = true
			} else {
				t.remaining += t.interval
				if t.remaining <= 0 {
					t.remaining = t.interval
				}
			}
		}
		if !t.done {
			kept = append(kept, t)
		}
	}
	l.timers = append(kept, l.timers...)
}
