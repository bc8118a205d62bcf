package glade

import "math"

// physicsSmoothing is the per-frame exponential factor that pulls speed and
// force toward the active profile.
const physicsSmoothing = 0.05

// WindSample is the output of the wind field for one instant.
type WindSample struct {
	// Direction is signed; its sign flips as the oscillators drift.
	Direction float64
	// SpeedTarget and ForceTarget are smoothing targets, not live values.
	SpeedTarget float64
	ForceTarget float64
}

// Wind samples the wind field at now (ms). A slow cycle and two faster gust
// oscillators are summed, so the result is smooth and changes sign often.
func Wind(now float64, profile *WeatherProfile) WindSample {
	cycle := math.Sin(now * 0.0005)
	gust := math.Sin(now*0.003) + math.Cos(now*0.01)
	return WindSample{
		Direction:   cycle + 0.3*gust,
		SpeedTarget: profile.Speed,
		ForceTarget: profile.Force,
	}
}

// PhysicsState is the smoothed wind state shared by grass, plants and
// particles.
type PhysicsState struct {
	Speed       float64
	Force       float64
	Direction   float64
	Accumulator float64
}

// NewPhysicsState returns the calm state a garden starts in.
func NewPhysicsState() PhysicsState {
	return PhysicsState{Speed: 0.005, Force: 0.02, Direction: 1}
}

// Step moves speed and force toward the sample's targets and adopts its
// direction.
func (p *PhysicsState) Step(s WindSample) {
	p.Speed += (s.SpeedTarget - p.Speed) * physicsSmoothing
	p.Force += (s.ForceTarget - p.Force) * physicsSmoothing
	p.Direction = finiteOr(s.Direction, 0)
	p.Accumulator += p.Speed
}

// WindX is the signed horizontal push applied to particles.
func (p *PhysicsState) WindX() float64 {
	return p.Force * p.Direction
}

// BaseLean is the shared lean angle of grass and plants in radians.
func (p *PhysicsState) BaseLean() float64 {
	return p.WindX() * 1.2
}

// Flutter is the fast shiver layered on top of BaseLean for grass.
func (p *PhysicsState) Flutter(now float64) float64 {
	return math.Cos(now*0.005) * 0.2 * p.Force
}

// WindKmh is the readout speed: |direction*force| scaled to km/h and floored.
func (p *PhysicsState) WindKmh() int {
	return int(math.Floor(math.Abs(p.WindX()) * 120))
}

// WindArrowDeg is the readout arrow rotation: 90 when blowing right, 270 otherwise.
func (p *PhysicsState) WindArrowDeg() float64 {
	if p.Direction > 0 {
		return 90
	}
	return 270
}
