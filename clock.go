package glade

import (
	"math"
	"time"
)

// Clock turns wall time into Frames. The offset to server time is learnt
// from Sync, so a forwarded server clock drives the whole day cycle.
type Clock struct {
	now    func() time.Time
	offset float64
	last   float64
	synced bool
	ticked bool
}

// NewClock creates a clock reading the system time.
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// syncTolerance is the drift, in ms, below which Sync keeps the offset.
const syncTolerance = 2000

// Sync adopts serverMs as the current time. The offset is learnt on the
// first call and re-learnt only when the server jumps by more than
// syncTolerance, as when an admin forwards the clock.
func (c *Clock) Sync(serverMs float64) {
	if finiteOr(serverMs, 0) <= 0 {
		return
	}
	wall := c.wallMs()
	if c.synced && math.Abs(wall+c.offset-serverMs) <= syncTolerance {
		return
	}
	c.offset = serverMs - wall
	c.synced = true
}

// Offset is the learnt server minus wall time, in ms.
func (c *Clock) Offset() float64 { return c.offset }

// Synced reports whether a server time has been adopted.
func (c *Clock) Synced() bool { return c.synced }

// Frame samples the clock. Delta is the time since the previous Frame in
// seconds, clamped to a quarter second.
func (c *Clock) Frame() Frame {
	now := c.wallMs() + c.offset
	var dt float64
	if c.ticked {
		dt = (now - c.last) / 1000
	}
	c.last, c.ticked = now, true
	return Frame{Now: now, Delta: max(0, min(dt, 0.25))}
}

func (c *Clock) wallMs() float64 {
	return float64(c.now().UnixNano()) / 1e6
}
