package ecs

import (
	"github.com/phanxgames/cakewalk"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// CollisionEventType is the Donburi event type for cakewalk collision events.
// Subscribe to this in your ECS systems to receive enter, stay and exit events.
var CollisionEventType = events.NewEventType[cakewalk.CollisionEvent]()

// NodeRef links an entity to a scene node by node ID.
type NodeRef struct {
	ID string
}

// NodeRefComponent is the component type holding a NodeRef.
var NodeRefComponent = donburi.NewComponentType[NodeRef]()

var nodeRefQuery = donburi.NewQuery(filter.Contains(NodeRefComponent))

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Collision events are published to CollisionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) cakewalk.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitCollision(event cakewalk.CollisionEvent) {
	CollisionEventType.Publish(s.world, event)
}

// LinkNode creates an entity carrying a NodeRef to the node with the given ID.
func LinkNode(world donburi.World, nodeID string) donburi.Entity {
	e := world.Create(NodeRefComponent)
	donburi.SetValue(world.Entry(e), NodeRefComponent, NodeRef{ID: nodeID})
	return e
}

// EntityForNode returns the entity linked to nodeID.
func EntityForNode(world donburi.World, nodeID string) (donburi.Entity, bool) {
	var found donburi.Entity
	ok := false
	nodeRefQuery.Each(world, func(entry *donburi.Entry) {
		if ok {
			return
		}
		if NodeRefComponent.Get(entry).ID == nodeID {
			found = entry.Entity()
			ok = true
		}
	})
	return found, ok
}
