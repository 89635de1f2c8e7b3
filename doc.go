// Package cakewalk is a small 2D platformer engine for [Ebitengine] built
// around a scene graph, a layer-matrix collision pass and bisection-based
// collision resolution.
//
// # Quick start
//
//	w := cakewalk.NewWorld(cakewalk.WorldConfig{})
//	w.SetCollisionPair(layerPlayer, layerTerrain, true)
//
//	floor := w.NewBox("floor", 400, 20, cakewalk.Color{R: 0.4, G: 0.3, B: 0.2, A: 1})
//	floor.SetPosition(0, 200)
//	floor.SetCollider(layerTerrain, false)
//	w.Root().AddChild(floor)
//
//	hero := w.NewBox("hero", 16, 24, cakewalk.ColorWhite)
//	hero.SetPivot(0.5, 1)
//	hero.SetCollider(layerPlayer, false)
//	hero.SetBody()
//	w.Root().AddChild(hero)
//
//	g := cakewalk.NewGame(w, nil)
//	if err := cakewalk.Run(g, cakewalk.RunConfig{Title: "cakewalk", Width: 640, Height: 360}); err != nil {
//		log.Fatal(err)
//	}
//
// # Frame sequence
//
// [World.Step] runs a fixed sequence every frame:
//
//  1. Update: every node's OnUpdate hook, sprite animation and physics
//     integration, in tree order.
//  2. Collision pass: every enabled layer pair is tested; nodes with a
//     [Body] are pushed out of static colliders and events are dispatched.
//  3. Drain: nodes removed during the frame are detached and disposed.
//  4. Tweens, timers and the camera advance.
//
// Removal is always deferred, so listeners may call [Node.RemoveSelf] while
// the collision pass is iterating.
//
// # Collision
//
// Colliders live on layers. Only layer pairs enabled with
// [World.SetCollisionPair] are tested, in the order the pairs were first
// enabled. Every overlapping pair produces one [CollisionEvent] per frame
// with an Enter, Stay or Exit [Phase]. Listeners are registered world-wide
// with [World.OnCollision] or per node with [Node.OnCollision]; an optional
// [EntityStore] receives every event as well (see cakewalk/ecs).
//
// Node IDs are never reused, so an ID held by a listener either resolves to
// the same node through [World.Lookup] or to nil.
//
// [Ebitengine]: https://ebitengine.org
package cakewalk
