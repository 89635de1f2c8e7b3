// Package trace records the collision events and tracked node positions of
// a cakewalk World frame by frame, so that two runs of the same input can be
// compared for determinism.
package trace

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/phanxgames/cakewalk"
)

// Event is one recorded collision event.
type Event struct {
	MovingID string  `msgpack:"m"`
	OtherID  string  `msgpack:"o"`
	NormalX  float64 `msgpack:"nx"`
	NormalY  float64 `msgpack:"ny"`
	Phase    uint8   `msgpack:"p"`
}

// Sample is the position of a tracked node at the end of a frame.
type Sample struct {
	ID string  `msgpack:"id"`
	X  float64 `msgpack:"x"`
	Y  float64 `msgpack:"y"`
}

// Frame holds everything recorded during one World step.
type Frame struct {
	Number  uint64   `msgpack:"n"`
	Events  []Event  `msgpack:"e,omitempty"`
	Samples []Sample `msgpack:"s,omitempty"`
}

// Trace is a recorded run.
type Trace struct {
	Frames []Frame `msgpack:"frames"`
}

// Recorder collects a Trace from a World. Call EndFrame after every
// World.Step.
type Recorder struct {
	world   *cakewalk.World
	handle  cakewalk.CallbackHandle
	tracked []string
	pending []Event
	trace   Trace
}

// NewRecorder subscribes to w's collision events.
func NewRecorder(w *cakewalk.World) *Recorder {
	r := &Recorder{world: w}
	r.handle = w.OnCollision(r.record)
	return r
}

// Track adds a node whose position is sampled at every EndFrame. Removed
// nodes are skipped.
func (r *Recorder) Track(id string) {
	r.tracked = append(r.tracked, id)
}

func (r *Recorder) record(e cakewalk.CollisionEvent) {
	r.pending = append(r.pending, Event{
		MovingID: e.MovingID,
		OtherID:  e.OtherID,
		NormalX:  e.Normal.X,
		NormalY:  e.Normal.Y,
		Phase:    uint8(e.Phase),
	})
}

// EndFrame closes the current frame.
func (r *Recorder) EndFrame() {
	f := Frame{Number: r.world.Frame(), Events: r.pending}
	r.pending = nil
	for _, id := range r.tracked {
		n := r.world.Lookup(id)
		if n == nil {
			continue
		}
		p := n.WorldPosition()
		f.Samples = append(f.Samples, Sample{ID: id, X: p.X, Y: p.Y})
	}
	r.trace.Frames = append(r.trace.Frames, f)
}

// Stop unsubscribes from the world. The recorded trace stays available.
func (r *Recorder) Stop() {
	r.handle.Remove()
}

// Trace returns the frames recorded so far.
func (r *Recorder) Trace() *Trace {
	return &r.trace
}

// Encode serializes the trace with msgpack.
func (t *Trace) Encode() ([]byte, error) {
	data, err := msgpack.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encode trace: %w", err)
	}
	return data, nil
}

// Decode parses a trace produced by Encode.
func Decode(data []byte) (*Trace, error) {
	var t Trace
	if err := msgpack.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode trace: %w", err)
	}
	return &t, nil
}

// Equal reports whether two traces record identical runs.
func Equal(a, b *Trace) bool {
	return Diff(a, b) == ""
}

// Diff describes the first difference between two traces, or returns "" when
// they are identical.
func Diff(a, b *Trace) string {
	if len(a.Frames) != len(b.Frames) {
		return fmt.Sprintf("frame count %d != %d", len(a.Frames), len(b.Frames))
	}
	for i := range a.Frames {
		fa, fb := &a.Frames[i], &b.Frames[i]
		if fa.Number != fb.Number {
			return fmt.Sprintf("frame %d: number %d != %d", i, fa.Number, fb.Number)
		}
		if len(fa.Events) != len(fb.Events) {
			return fmt.Sprintf("frame %d: %d events != %d", fa.Number, len(fa.Events), len(fb.Events))
		}
		for j := range fa.Events {
			if fa.Events[j] != fb.Events[j] {
				return fmt.Sprintf("frame %d: event %d: %+v != %+v", fa.Number, j, fa.Events[j], fb.Events[j])
			}
		}
		if len(fa.Samples) != len(fb.Samples) {
			return fmt.Sprintf("frame %d: %d samples != %d", fa.Number, len(fa.Samples), len(fb.Samples))
		}
		for j := range fa.Samples {
			if fa.Samples[j] != fb.Samples[j] {
				return fmt.Sprintf("frame %d: sample %d: %+v != %+v", fa.Number, j, fa.Samples[j], fb.Samples[j])
			}
		}
	}
	return ""
}

// NumEvents returns the number of events across all frames.
func (t *Trace) NumEvents() int {
	n := 0
	for i := range t.Frames {
		n += len(t.Frames[i].Events)
	}
	return n
}
