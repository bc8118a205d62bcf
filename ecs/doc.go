// Package ecs bridges glade garden events into a [Donburi] world.
//
// [NewDonburiStore] returns a glade.EventSink that publishes every event to
// [GardenEventType]. Drain them from a system with ProcessEvents:
//
//	store := ecs.NewDonburiStore(world)
//	garden.SetEventSink(store)
//	ecs.Intents(world, func(e glade.GardenEvent) { client.Send(e) })
//	...
//	ecs.GardenEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
