package glade

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerEvent is a queued synthetic pointer sample in screen coordinates.
type pointerEvent struct {
	x, y  float64
	click bool
}

// InjectMove queues a pointer move to the given screen coordinates. One
// queued event is consumed per Update.
func (g *Garden) InjectMove(x, y float64) {
	g.injectQueue = append(g.injectQueue, pointerEvent{x: x, y: y})
}

// InjectClick queues a move followed by a click at the same screen
// coordinates. Consumes two frames.
func (g *Garden) InjectClick(x, y float64) {
	g.InjectMove(x, y)
	g.injectQueue = append(g.injectQueue, pointerEvent{x: x, y: y, click: true})
}

// processInjected pops one queued event. Reports whether one was consumed.
func (g *Garden) processInjected() bool {
	if len(g.injectQueue) == 0 {
		return false
	}
	evt := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]

	g.SetPointer(evt.x, evt.y, true)
	if evt.click {
		g.Click(evt.x, evt.y)
	}
	return true
}

// ResolveIntent maps a click at screen coordinates to an intent: protect
// the living plant under the point, or create a plant at the world point.
// Nothing is emitted.
func (g *Garden) ResolveIntent(sx, sy float64) GardenEvent {
	wx, wy := g.camera.ScreenToWorld(sx, sy)
	if i := g.pick(wx, wy); i >= 0 {
		p := &g.plants[i]
		return GardenEvent{Type: EventProtectPlant, Now: g.frame.Now, PlantID: p.ID, X: p.X, Y: p.Y}
	}
	return GardenEvent{Type: EventCreatePlant, Now: g.frame.Now, X: wx, Y: wy}
}

// Click resolves the intent at screen coordinates and forwards it to the
// event sink.
func (g *Garden) Click(sx, sy float64) GardenEvent {
	e := g.ResolveIntent(sx, sy)
	g.emit(e)
	return e
}

// PointerState is one frame of pointer input in screen coordinates.
type PointerState struct {
	X, Y    float64
	OK      bool
	Clicked bool
}

// PointerInput adapts the ebiten mouse and the first active touch into a
// single pointer. Touch wins while a finger is down.
type PointerInput struct {
	touches []ebiten.TouchID
	touchID ebiten.TouchID
	touchX  int
	touchY  int
	touched bool
}

// Read samples this frame's pointer. Call once per ebiten Update.
func (pi *PointerInput) Read() PointerState {
	pi.touches = ebiten.AppendTouchIDs(pi.touches[:0])
	if len(pi.touches) > 0 {
		if !pi.touched || !slices.Contains(pi.touches, pi.touchID) {
			pi.touchID = pi.touches[0]
		}
		pi.touched = true
		pi.touchX, pi.touchY = ebiten.TouchPosition(pi.touchID)
		return PointerState{X: float64(pi.touchX), Y: float64(pi.touchY), OK: true}
	}
	if pi.touched {
		pi.touched = false
		if inpututil.IsTouchJustReleased(pi.touchID) {
			return PointerState{X: float64(pi.touchX), Y: float64(pi.touchY), OK: true, Clicked: true}
		}
	}

	mx, my := ebiten.CursorPosition()
	return PointerState{
		X:       float64(mx),
		Y:       float64(my),
		OK:      true,
		Clicked: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
}
