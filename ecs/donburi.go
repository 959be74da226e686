// Package ecs provides ECS adapters for dandelion.
package ecs

import (
	"github.com/phanxgames/dandelion"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ReleaseEventType is the Donburi event type for seed release events.
// Subscribe to this in your ECS systems to react to seeds leaving the head
// and regrowing.
var ReleaseEventType = events.NewEventType[dandelion.ReleaseEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Release
// events are published to ReleaseEventType and can be consumed with
// Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) dandelion.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event dandelion.ReleaseEvent) {
	ReleaseEventType.Publish(s.world, event)
}
