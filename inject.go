package cakewalk

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// keyNames maps the key names accepted in input scripts.
var keyNames = map[string]ebiten.Key{
	"left":   ebiten.KeyArrowLeft,
	"right":  ebiten.KeyArrowRight,
	"up":     ebiten.KeyArrowUp,
	"down":   ebiten.KeyArrowDown,
	"space":  ebiten.KeySpace,
	"enter":  ebiten.KeyEnter,
	"escape": ebiten.KeyEscape,
	"a":      ebiten.KeyA,
	"d":      ebiten.KeyD,
	"s":      ebiten.KeyS,
	"w":      ebiten.KeyW,
	"x":      ebiten.KeyX,
	"z":      ebiten.KeyZ,
}

// ParseKey returns the key for a script key name (case-insensitive).
func ParseKey(name string) (ebiten.Key, bool) {
	k, ok := keyNames[strings.ToLower(name)]
	return k, ok
}

// inputStep holds a set of keys for a number of frames.
type inputStep struct {
	Keys   []string `json:"keys,omitempty"`
	Frames int      `json:"frames,omitempty"`
}

// inputScript is the top-level JSON structure for an input script:
//
//	{"steps": [{"keys": ["right"], "frames": 30}, {"keys": ["right", "space"], "frames": 1}]}
type inputScript struct {
	Steps []inputStep `json:"steps"`
}

type scriptedStep struct {
	keys   []ebiten.Key
	frames int
}

// ScriptedInput replays a fixed sequence of key states, one frame per Poll.
// It drives deterministic tests and recorded demos. Before the first Poll
// and after the last step no keys are down.
type ScriptedInput struct {
	steps   []scriptedStep
	cursor  int
	frame   int // frames consumed in steps[cursor]
	current []ebiten.Key
	prev    []ebiten.Key
	done    bool
}

// LoadInputScript parses a JSON input script.
func LoadInputScript(jsonData []byte) (*ScriptedInput, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	in := &ScriptedInput{}
	for i, st := range script.Steps {
		keys := make([]ebiten.Key, 0, len(st.Keys))
		for _, name := range st.Keys {
			k, ok := ParseKey(name)
			if !ok {
				return nil, fmt.Errorf("parse input script: step %d: unknown key %q", i, name)
			}
			keys = append(keys, k)
		}
		in.Hold(st.Frames, keys...)
	}
	return in, nil
}

// NewScriptedInput returns an empty script; add steps with Hold.
func NewScriptedInput() *ScriptedInput {
	return &ScriptedInput{}
}

// Hold appends a step that holds keys down for frames frames (at least one).
// An empty key list idles.
func (in *ScriptedInput) Hold(frames int, keys ...ebiten.Key) *ScriptedInput {
	if frames < 1 {
		frames = 1
	}
	in.steps = append(in.steps, scriptedStep{keys: keys, frames: frames})
	in.done = false
	return in
}

// Poll advances the script by one frame.
func (in *ScriptedInput) Poll() {
	in.prev = append(in.prev[:0], in.current...)
	in.current = in.current[:0]
	if in.cursor >= len(in.steps) {
		in.done = true
		return
	}
	st := in.steps[in.cursor]
	in.current = append(in.current, st.keys...)
	in.frame++
	if in.frame >= st.frames {
		in.cursor++
		in.frame = 0
	}
}

// Pressed reports whether key is held this frame.
func (in *ScriptedInput) Pressed(key ebiten.Key) bool {
	return containsKey(in.current, key)
}

// JustPressed reports whether key is held this frame but was not last frame.
func (in *ScriptedInput) JustPressed(key ebiten.Key) bool {
	return containsKey(in.current, key) && !containsKey(in.prev, key)
}

// Done reports whether every step has been replayed.
func (in *ScriptedInput) Done() bool {
	return in.done
}
