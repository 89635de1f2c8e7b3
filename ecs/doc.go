// Package ecs provides ECS adapters for cakewalk's collision events.
//
// The primary adapter is [NewDonburiStore], which bridges collision events
// (enter, stay, exit) into a [Donburi] world as typed events. Subscribe to
// [CollisionEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(ecsWorld)
//	world.SetEntityStore(store)
//
// Entities that mirror a scene node carry a [NodeRef] component; use
// [LinkNode] to attach one and [EntityForNode] to find it from the IDs in a
// collision event.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
