package ecs

import (
	"github.com/phanxgames/glade"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GardenEventType is the Donburi event type for garden events. Subscribe to
// it in your ECS systems to receive weather, night, lightning, plant and
// input intent events.
var GardenEventType = events.NewEventType[glade.GardenEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventSink backed by a Donburi world. Garden
// events are published to GardenEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) glade.EventSink {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event glade.GardenEvent) {
	GardenEventType.Publish(s.world, event)
}

// Intents subscribes fn to the create and protect intents only. Other
// garden events are ignored.
func Intents(world donburi.World, fn func(glade.GardenEvent)) {
	GardenEventType.Subscribe(world, func(_ donburi.World, e glade.GardenEvent) {
		if e.Type == glade.EventCreatePlant || e.Type == glade.EventProtectPlant {
			fn(e)
		}
	})
}
