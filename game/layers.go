package game

import "github.com/phanxgames/cakewalk"

// Collision layers.
const (
	LayerPlayer  = 1
	LayerTerrain = 2
	LayerPickup  = 3
	LayerHazard  = 4
	LayerGoal    = 5
)

// registerLayers enables every pair the game reacts to. The player is
// resolved against terrain first so that pickups and hazards see the
// corrected position.
func registerLayers(w *cakewalk.World) {
	w.SetCollisionPair(LayerPlayer, LayerTerrain, true)
	w.SetCollisionPair(LayerPlayer, LayerPickup, true)
	w.SetCollisionPair(LayerPlayer, LayerHazard, true)
	w.SetCollisionPair(LayerPlayer, LayerGoal, true)
}
