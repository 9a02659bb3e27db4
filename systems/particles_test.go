package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/fireworks/components"
)

func TestParticleIntegration(t *testing.T) {
	s := NewParticleStore()
	s.Add(components.Particle{X: 0, Y: 0, VX: 10, VY: 0, Alpha: 1, Decay: 0.25, Gravity: 1, Friction: 0.5})

	s.Update()

	p := s.Particles[0]
	// Friction applies before gravity, then position integrates the new velocity
	if p.VX != 5 || p.VY != 1 {
		t.Errorf("velocity = (%v, %v), want (5, 1)", p.VX, p.VY)
	}
	if p.X != 5 || p.Y != 1 {
		t.Errorf("position = (%v, %v), want (5, 1)", p.X, p.Y)
	}
	if p.Alpha != 0.75 {
		t.Errorf("alpha = %v, want 0.75", p.Alpha)
	}
}

func TestParticleRemovedAtDecayFloor(t *testing.T) {
	s := NewParticleStore()
	s.Add(components.Particle{Alpha: 1, Decay: 0.25, Friction: 1})

	// 0.75 and 0.5 are above the floor; 0.25 equals decay and is retired
	for frame := 1; frame <= 2; frame++ {
		if removed := s.Update(); removed != 0 {
			t.Fatalf("frame %d: removed %d, want 0", frame, removed)
		}
		if s.Count() != 1 {
			t.Fatalf("frame %d: count = %d, want 1", frame, s.Count())
		}
	}
	if removed := s.Update(); removed != 1 {
		t.Errorf("frame 3: removed %d, want 1", removed)
	}
	if s.Count() != 0 {
		t.Errorf("particle still present with alpha <= decay")
	}
	if s.Spawned() != 1 || s.Retired() != 1 {
		t.Errorf("spawned/retired = %d/%d, want 1/1", s.Spawned(), s.Retired())
	}
}

func TestParticleAlphaStrictlyDecreasing(t *testing.T) {
	s := NewParticleStore()
	s.Add(components.Particle{Alpha: 1, Decay: 0.013, Friction: 0.93, Gravity: 0.07, VX: 3, VY: -4})

	prev := 1.0
	for s.Count() > 0 {
		s.Update()
		for _, p := range s.Particles {
			if p.Alpha >= prev {
				t.Fatalf("alpha %v did not decrease from %v", p.Alpha, prev)
			}
			if p.Alpha <= p.Decay {
				t.Fatalf("live particle with alpha %v <= decay %v", p.Alpha, p.Decay)
			}
			prev = p.Alpha
		}
	}
}

func TestParticleCompactionKeepsOrder(t *testing.T) {
	s := NewParticleStore()
	for i := 0; i < 6; i++ {
		decay := 0.01
		if i%2 == 1 {
			decay = 0.6 // gone after one frame
		}
		s.Add(components.Particle{X: float64(i), Alpha: 1, Decay: decay, Friction: 1})
	}

	if removed := s.Update(); removed != 3 {
		t.Fatalf("removed %d, want 3", removed)
	}
	for i, want := range []float64{0, 2, 4} {
		if s.Particles[i].X != want {
			t.Errorf("Particles[%d].X = %v, want %v", i, s.Particles[i].X, want)
		}
	}
}

func TestParticleReset(t *testing.T) {
	s := NewParticleStore()
	for i := 0; i < 4; i++ {
		s.Add(components.Particle{Alpha: 1, Decay: 0.1})
	}
	s.Reset()
	if s.Count() != 0 || s.Retired() != 4 {
		t.Errorf("after reset count=%d retired=%d, want 0/4", s.Count(), s.Retired())
	}
}

func TestParticleGravityPullsDown(t *testing.T) {
	s := NewParticleStore()
	s.Add(components.Particle{VY: -2, Alpha: 1, Decay: 0.001, Gravity: 0.5, Friction: 1})

	for i := 0; i < 10; i++ {
		s.Update()
	}
	if got := s.Particles[0].VY; math.Abs(got-3) > 1e-9 {
		t.Errorf("VY after 10 frames = %v, want 3", got)
	}
}
