package glade

import "log"

// GardenEventType identifies a discrete garden event.
type GardenEventType uint8

const (
	EventWeatherChanged GardenEventType = iota // active profile changed
	EventNightChanged                          // isNight flipped
	EventLightning                             // a lightning strike began
	EventPlantDied                             // a plant's stats turned dead
	EventPlantProtected                        // a plant's shield was extended
	EventCreatePlant                           // input intent: plant at X, Y
	EventProtectPlant                          // input intent: shield PlantID
)

var gardenEventNames = [...]string{
	"weather", "night", "lightning", "died", "protected", "create", "protect",
}

func (t GardenEventType) String() string {
	if int(t) < len(gardenEventNames) {
		return gardenEventNames[t]
	}
	return "unknown"
}

// GardenEvent is delivered to an EventSink. Only the fields relevant to
// Type are set.
type GardenEvent struct {
	Type    GardenEventType
	Now     float64
	PlantID string
	X, Y    float64
	Label   string
	Night   bool
	Cause   string
}

// EventSink receives garden events. Implementations must not call back into
// the garden from EmitEvent.
type EventSink interface {
	EmitEvent(event GardenEvent)
}

// Sound effect names passed to SoundSink.Effect.
const (
	EffectShatter = "shatter"
	EffectThunder = "thunder"
	EffectProtect = "protect"
)

// SoundSink is the ambience collaborator. Ambience is called whenever the
// weather label or the night flag changes.
type SoundSink interface {
	Ambience(label string, night bool)
	Effect(name string)
}

// LogSound is a SoundSink that logs what it would play.
type LogSound struct {
	Logger *log.Logger
}

func (s LogSound) logf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// Ambience logs the ambience change.
func (s LogSound) Ambience(label string, night bool) {
	s.logf("glade: ambience %s night=%v", label, night)
}

// Effect logs the effect trigger.
func (s LogSound) Effect(name string) {
	s.logf("glade: effect %s", name)
}
