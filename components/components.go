// Package components defines the data model for the fireworks show.
package components

import "fmt"

// Phase is the show phase supplied by the host UI.
type Phase uint8

const (
	PhaseWaiting     Phase = iota // Idle, sparse autonomous launches
	PhaseIntro                    // Lead-in before the countdown
	PhaseCounting                 // Countdown digits are bursting
	PhaseCelebrating              // Finale
)

var phaseNames = [...]string{"waiting", "intro", "counting", "celebrating"}

// String returns the lowercase phase name.
func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", p)
}

// ParsePhase converts a phase name back to a Phase.
func ParsePhase(s string) (Phase, error) {
	for i, name := range phaseNames {
		if name == s {
			return Phase(i), nil
		}
	}
	return PhaseWaiting, fmt.Errorf("unknown phase %q", s)
}

// Particle is an explosion fragment or an ascent spark.
// Particles carry no identity; the particle store owns them by value.
type Particle struct {
	X, Y   float64
	VX, VY float64

	Alpha float64 // Opacity, starts at 1 (0.6 for ascent sparks)
	Decay float64 // Alpha lost per frame

	Color HSL
	Size  float64 // Drawn radius in pixels

	Gravity  float64 // Added to VY each frame
	Friction float64 // Velocity multiplier each frame (< 1)
}

// Rocket holds the state of a rising projectile.
// Its current position lives in a separate Position component.
type Rocket struct {
	Angle        float64 // Launch heading (radians), fixed at creation
	Speed        float64 // Grows by Acceleration every frame
	Acceleration float64

	TargetX, TargetY float64

	DistanceToTarget float64 // Launch point to target, fixed at creation
	DistanceTraveled float64 // Monotonic non-decreasing

	// Trail holds the last positions, newest first.
	Trail []Point

	Brightness   float64 // HSL lightness in percent
	Hue          float64
	TargetRadius float64 // Carried for drawing a target marker; unused by physics
}

// Arrived reports whether the rocket has covered its launch distance.
func (r *Rocket) Arrived() bool {
	return r.DistanceTraveled >= r.DistanceToTarget
}

// Tail returns the oldest trail position.
func (r *Rocket) Tail() Point {
	return r.Trail[len(r.Trail)-1]
}

// PushTrail drops the oldest trail position and inserts p at the front.
func (r *Rocket) PushTrail(p Point) {
	copy(r.Trail[1:], r.Trail[:len(r.Trail)-1])
	r.Trail[0] = p
}

// Color returns the streak colour: the rocket hue at its brightness.
func (r *Rocket) Color() HSL {
	return HSL{H: r.Hue, S: 1, L: r.Brightness / 100}
}
