package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/fireworks/components"
)

func TestDetonationMode(t *testing.T) {
	tests := []struct {
		name  string
		phase components.Phase
		draw  float64
		want  BurstMode
	}{
		{"celebrating high draw", components.PhaseCelebrating, 0.95, BurstText},
		{"celebrating low draw", components.PhaseCelebrating, 0.5, BurstNormal},
		{"waiting high draw", components.PhaseWaiting, 0.95, BurstNormal},
		{"counting high draw", components.PhaseCounting, 0.95, BurstNormal},
		{"intro high draw", components.PhaseIntro, 0.99, BurstNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := newTestRig(t, constRand(tt.draw))
			if got := rig.emitter.DetonationMode(tt.phase); got != tt.want {
				t.Errorf("DetonationMode(%v) = %v, want %v", tt.phase, got, tt.want)
			}
		})
	}
}

func TestBurstCountByPhase(t *testing.T) {
	tests := []struct {
		name     string
		phase    components.Phase
		want     int
		maxSpeed float64
	}{
		{"waiting", components.PhaseWaiting, 150, 15},
		{"counting", components.PhaseCounting, 150, 15},
		{"celebrating", components.PhaseCelebrating, 250, 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 0.5 never passes the glitter check
			rig := newTestRig(t, constRand(0.5))
			rig.emitter.Detonate(components.Point{X: 10, Y: 20}, 200, BurstNormal, tt.phase)

			if got := rig.particles.Count(); got != tt.want {
				t.Fatalf("particle count = %d, want %d", got, tt.want)
			}
			for _, p := range rig.particles.Particles {
				if p.X != 10 || p.Y != 20 {
					t.Fatalf("particle at (%v, %v), want burst point", p.X, p.Y)
				}
				if s := math.Hypot(p.VX, p.VY); s > tt.maxSpeed+1e-9 {
					t.Fatalf("speed %v exceeds %v", s, tt.maxSpeed)
				}
				if p.Alpha != 1 {
					t.Fatalf("alpha = %v, want 1", p.Alpha)
				}
				if math.Abs(p.Color.H-200) > 20 {
					t.Fatalf("hue %v outside rocket hue ± 20", p.Color.H)
				}
			}
		})
	}
}

func TestGlitterCompanionsGold(t *testing.T) {
	// 0.8 passes the glitter check and the gold check
	rig := newTestRig(t, constRand(0.8))
	rig.emitter.Detonate(components.Point{X: 0, Y: 0}, 120, BurstNormal, components.PhaseWaiting)

	if got := rig.particles.Count(); got != 300 {
		t.Fatalf("particle count = %d, want 150 radial + 150 companions", got)
	}
	gold := components.HSL{H: 45, S: 1, L: 0.85}
	for i := 1; i < len(rig.particles.Particles); i += 2 {
		if c := rig.particles.Particles[i].Color; c != gold {
			t.Fatalf("companion %d colour = %+v, want gold", i, c)
		}
	}
}

func TestGlitterCompanionWhite(t *testing.T) {
	// Per particle: angle, speed, hue, lightness, size, decay,
	// glitter check, gold check, companion size, companion decay
	rng := &seqRand{vals: []float64{0.1, 0.5, 0.5, 0.5, 0.5, 0.5, 0.9, 0.2, 0.5, 0.5}}
	rig := newTestRig(t, rng)
	rig.emitter.Detonate(components.Point{X: 0, Y: 0}, 300, BurstNormal, components.PhaseWaiting)

	ps := rig.particles.Particles
	if len(ps) != 300 {
		t.Fatalf("particle count = %d, want 300", len(ps))
	}

	main, comp := ps[0], ps[1]
	white := components.HSL{H: 0, S: 0, L: 1}
	if comp.Color != white {
		t.Errorf("companion colour = %+v, want white", comp.Color)
	}
	if math.Abs(comp.VX-main.VX*0.6) > 1e-9 || math.Abs(comp.VY-main.VY*0.6) > 1e-9 {
		t.Errorf("companion velocity (%v, %v), want 0.6 × (%v, %v)", comp.VX, comp.VY, main.VX, main.VY)
	}
	if comp.Decay >= main.Decay {
		t.Errorf("companion decay %v should be slower than main %v", comp.Decay, main.Decay)
	}
	if comp.Decay >= 0.005 {
		t.Errorf("companion decay %v should fall in the shimmer range", comp.Decay)
	}
}

func TestTextDetonation(t *testing.T) {
	rig := newTestRig(t, constRand(0.5))
	rig.emitter.Detonate(components.Point{X: 500, Y: 200}, 33, BurstText, components.PhaseCelebrating)

	shape := rig.emitter.text.Rasterize("2026", 33, false)
	if len(shape.Points) == 0 {
		t.Fatal("no emission points for 2026")
	}
	if got := rig.particles.Count(); got != len(shape.Points) {
		t.Fatalf("particle count = %d, want %d", got, len(shape.Points))
	}
	for _, p := range rig.particles.Particles {
		if p.Color != shape.Color {
			t.Fatalf("colour = %+v, want %+v", p.Color, shape.Color)
		}
	}

	c := rig.emitter.Counters()
	if c.Detonations != 1 || c.TextDetonations != 1 {
		t.Errorf("counters = %+v, want one text detonation", c)
	}
}

func TestTextModeOutsideCelebrationIsRadial(t *testing.T) {
	rig := newTestRig(t, constRand(0.5))
	rig.emitter.Detonate(components.Point{X: 0, Y: 0}, 10, BurstText, components.PhaseWaiting)

	if got := rig.particles.Count(); got != 150 {
		t.Errorf("particle count = %d, want radial burst of 150", got)
	}
	if rig.emitter.Counters().TextDetonations != 0 {
		t.Error("text detonation counted outside celebration")
	}
}

func TestTextBurstVelocityFromOffsets(t *testing.T) {
	// 0.5 zeroes the jitter
	rig := newTestRig(t, constRand(0.5))
	centre := components.Point{X: 640, Y: 360}

	n := rig.emitter.TextBurst("7", centre, 0, true)
	shape := rig.emitter.text.Rasterize("7", 0, true)
	if n != len(shape.Points) || n == 0 {
		t.Fatalf("emitted %d, want %d points", n, len(shape.Points))
	}

	for i, p := range rig.particles.Particles {
		off := shape.Points[i]
		if p.X != centre.X || p.Y != centre.Y {
			t.Fatalf("particle %d at (%v, %v), want centre", i, p.X, p.Y)
		}
		if math.Abs(p.VX-off.X*0.2) > 1e-9 || math.Abs(p.VY-off.Y*0.2) > 1e-9 {
			t.Fatalf("particle %d velocity (%v, %v), want offset × 0.2 = (%v, %v)",
				i, p.VX, p.VY, off.X*0.2, off.Y*0.2)
		}
	}
}

func TestRequestTextBurstCountdownStyle(t *testing.T) {
	rig := newTestRig(t, constRand(0.5))
	rig.hue = 250 // ignored by countdown text

	n := rig.emitter.RequestTextBurst("3", components.Point{X: 100, Y: 100})
	if n == 0 {
		t.Fatal("no particles emitted")
	}

	want := components.HSL{H: 15, S: 1, L: 0.6}
	for _, p := range rig.particles.Particles {
		if p.Color != want {
			t.Fatalf("colour = %+v, want countdown orange %+v", p.Color, want)
		}
	}
	if c := rig.emitter.Counters(); c.TextBursts != 1 || c.Detonations != 0 {
		t.Errorf("counters = %+v, want one text burst and no detonation", c)
	}
}
