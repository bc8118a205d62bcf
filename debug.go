package glade

import (
	"fmt"
	"os"
	"time"
)

// debugEvery is how many frames pass between stat lines.
const debugEvery = 120

// frameStats holds per-frame timing and draw metrics.
// Only logged when Config.Debug is true.
type frameStats struct {
	update    time.Duration
	draw      time.Duration
	drawCalls int
	grass     int
	plants    int
}

// debugLog prints timing and population stats to stderr.
func (g *Garden) debugLog() {
	if !g.cfg.Debug || g.frameCount%debugEvery != 0 {
		return
	}
	s := g.stats
	_, _ = fmt.Fprintf(os.Stderr,
		"[glade] update: %v | draw: %v | mesh flushes: %d\n",
		s.update, s.draw, s.drawCalls)
	_, _ = fmt.Fprintf(os.Stderr,
		"[glade] particles: %d/%d | splashes: %d | grass: %d | plants: %d/%d | images: %d\n",
		g.particles.AliveCount(), g.particles.Cap(), g.particles.SplashCount(),
		s.grass, s.plants, len(g.plants), g.images.Len())
}
