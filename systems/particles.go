package systems

import "github.com/pthm-cable/fireworks/components"

// ParticleStore holds every live explosion particle and ascent spark.
// Particles are stored densely by value; removal compacts survivors in place.
type ParticleStore struct {
	Particles []components.Particle

	spawned int // Total particles ever added
	retired int // Total particles ever removed
}

// NewParticleStore creates an empty particle store.
func NewParticleStore() *ParticleStore {
	return &ParticleStore{
		Particles: make([]components.Particle, 0, 2048),
	}
}

// Add appends a particle.
func (s *ParticleStore) Add(p components.Particle) {
	s.Particles = append(s.Particles, p)
	s.spawned++
}

// Update advances every particle by one frame and retires exhausted ones.
// A particle whose alpha falls to or below its own decay is removed before it
// can be drawn. Returns the number of particles retired this frame.
func (s *ParticleStore) Update() int {
	alive := 0
	for i := range s.Particles {
		p := &s.Particles[i]

		p.VX *= p.Friction
		p.VY *= p.Friction
		p.VY += p.Gravity

		p.X += p.VX
		p.Y += p.VY

		p.Alpha -= p.Decay
		if p.Alpha <= p.Decay {
			continue
		}

		// Keep particle
		s.Particles[alive] = s.Particles[i]
		alive++
	}

	removed := len(s.Particles) - alive
	s.Particles = s.Particles[:alive]
	s.retired += removed
	return removed
}

// Count returns the current number of live particles.
func (s *ParticleStore) Count() int {
	return len(s.Particles)
}

// Spawned returns the total number of particles ever added.
func (s *ParticleStore) Spawned() int {
	return s.spawned
}

// Retired returns the total number of particles ever removed.
func (s *ParticleStore) Retired() int {
	return s.retired
}

// Reset drops every particle.
func (s *ParticleStore) Reset() {
	s.retired += len(s.Particles)
	s.Particles = s.Particles[:0]
}
