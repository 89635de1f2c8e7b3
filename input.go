package cakewalk

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input reports keyboard state for the current frame. Poll is called once
// per frame by Game before the world steps.
type Input interface {
	Poll()
	Pressed(key ebiten.Key) bool
	JustPressed(key ebiten.Key) bool
}

// EbitenInput reads the keyboard through ebiten, snapshotted at Poll so that
// every reader sees the same state for the whole frame.
type EbitenInput struct {
	pressed     []ebiten.Key
	justPressed []ebiten.Key
}

// NewEbitenInput returns an Input backed by the real keyboard.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

// Poll snapshots the keyboard.
func (in *EbitenInput) Poll() {
	in.pressed = inpututil.AppendPressedKeys(in.pressed[:0])
	in.justPressed = inpututil.AppendJustPressedKeys(in.justPressed[:0])
}

// Pressed reports whether key is held this frame.
func (in *EbitenInput) Pressed(key ebiten.Key) bool {
	return containsKey(in.pressed, key)
}

// JustPressed reports whether key went down this frame.
func (in *EbitenInput) JustPressed(key ebiten.Key) bool {
	return containsKey(in.justPressed, key)
}

func containsKey(keys []ebiten.Key, key ebiten.Key) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
