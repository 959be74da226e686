// Package ecs provides ECS adapters for dandelion's release events.
//
// [NewDonburiSink] bridges release events (seeds detached, restore started,
// restore completed) into a [Donburi] world as typed events. Subscribe to
// [ReleaseEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	controller.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
