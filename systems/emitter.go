package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fireworks/components"
	"github.com/pthm-cable/fireworks/config"
)

// BurstMode selects how a detonation emits particles.
type BurstMode uint8

const (
	BurstNormal BurstMode = iota // Radial burst with glitter companions
	BurstText                    // Particles shaped by rasterized text
)

// LaunchSource tells telemetry who asked for a rocket.
type LaunchSource uint8

const (
	LaunchAuto   LaunchSource = iota // Autonomous launch timer
	LaunchManual                     // Pointer press
)

// EmitterCounters accumulates emission events since creation.
type EmitterCounters struct {
	AutoLaunches    int
	ManualLaunches  int
	Detonations     int
	TextDetonations int
	TextBursts      int // Externally requested text bursts
}

// Emitter spawns rockets and particle bursts.
// Autonomous launches, pointer launches and text requests all share the same
// explosion path so every burst looks alike.
type Emitter struct {
	cfg       *config.Config
	rng       Rand
	particles *ParticleStore
	rockets   *RocketStore
	text      *TextRasterizer

	// hue reads the shared hue cursor at launch time
	hue func() float64

	counters EmitterCounters
}

// NewEmitter wires an emitter to its stores and random source.
func NewEmitter(cfg *config.Config, rng Rand, particles *ParticleStore, rockets *RocketStore, text *TextRasterizer, hue func() float64) *Emitter {
	return &Emitter{
		cfg:       cfg,
		rng:       rng,
		particles: particles,
		rockets:   rockets,
		text:      text,
		hue:       hue,
	}
}

// Counters returns a copy of the emission counters.
func (em *Emitter) Counters() EmitterCounters {
	return em.counters
}

// Launch creates one rocket rising from source.
// The target X is jittered around the source X, not the nominal target, so
// trajectories stay near-vertical whatever the caller asked for.
func (em *Emitter) Launch(source, nominalTarget components.Point, from LaunchSource) ecs.Entity {
	rc := &em.cfg.Rocket

	tx := source.X + Range(em.rng, -rc.HorizontalJitter, rc.HorizontalJitter)
	ty := nominalTarget.Y
	target := components.Point{X: tx, Y: ty}

	trail := make([]components.Point, rc.TrailLength)
	for i := range trail {
		trail[i] = source
	}

	r := components.Rocket{
		Angle:            math.Atan2(ty-source.Y, tx-source.X),
		Speed:            rc.Speed,
		Acceleration:     rc.Acceleration,
		TargetX:          tx,
		TargetY:          ty,
		DistanceToTarget: Distance(source, target),
		Trail:            trail,
		Brightness:       Range(em.rng, rc.BrightnessMin, rc.BrightnessMax),
		Hue:              em.hue(),
		TargetRadius:     rc.TargetRadius,
	}

	if from == LaunchManual {
		em.counters.ManualLaunches++
	} else {
		em.counters.AutoLaunches++
	}
	return em.rockets.Add(components.Position{X: source.X, Y: source.Y}, r)
}

// DetonationMode picks the burst style for an arriving rocket.
// Text bursts only happen while celebrating, for a minority of rockets.
func (em *Emitter) DetonationMode(phase components.Phase) BurstMode {
	if phase == components.PhaseCelebrating && em.rng.Float64() > 1-em.cfg.Burst.TextChance {
		return BurstText
	}
	return BurstNormal
}

// Detonate emits a burst at p.
func (em *Emitter) Detonate(p components.Point, hue float64, mode BurstMode, phase components.Phase) {
	em.counters.Detonations++

	if mode == BurstText && phase == components.PhaseCelebrating {
		em.counters.TextDetonations++
		em.TextBurst(em.cfg.Burst.Text, p, hue, false)
		return
	}

	bc := &em.cfg.Burst
	gc := &em.cfg.Glitter

	count := bc.CountRest
	maxSpeed := bc.SpeedMaxRest
	if phase == components.PhaseCelebrating {
		count = bc.CountCelebrating
		maxSpeed = bc.SpeedMaxCelebrating
	}

	for i := 0; i < count; i++ {
		angle := Range(em.rng, 0, 2*math.Pi)
		speed := Range(em.rng, bc.SpeedMin, maxSpeed)
		cos, sin := math.Cos(angle), math.Sin(angle)

		em.particles.Add(components.Particle{
			X:     p.X,
			Y:     p.Y,
			VX:    cos * speed,
			VY:    sin * speed,
			Alpha: 1,
			Color: components.HSL{
				H: hue + Range(em.rng, -bc.HueSpread, bc.HueSpread),
				S: 1,
				L: Range(em.rng, bc.LightnessMin, bc.LightnessMax),
			},
			Size:     Range(em.rng, bc.SizeMin, bc.SizeMax),
			Decay:    Range(em.rng, bc.DecayMin, bc.DecayMax),
			Gravity:  bc.Gravity,
			Friction: bc.Friction,
		})

		if em.rng.Float64() <= 1-gc.Chance {
			continue
		}

		// Glitter companion: slower, smaller, longer-lived
		c := components.HSL{H: 0, S: 0, L: 1}
		if em.rng.Float64() > 1-gc.GoldChance {
			c = components.HSL{H: 45, S: 1, L: 0.85}
		}
		em.particles.Add(components.Particle{
			X:        p.X,
			Y:        p.Y,
			VX:       cos * speed * gc.SpeedFactor,
			VY:       sin * speed * gc.SpeedFactor,
			Alpha:    1,
			Color:    c,
			Size:     Range(em.rng, gc.SizeMin, gc.SizeMax),
			Decay:    Range(em.rng, gc.DecayMin, gc.DecayMax),
			Gravity:  gc.Gravity,
			Friction: gc.Friction,
		})
	}
}

// TextBurst emits particles that spread from centre into the shape of text.
// Returns the number of particles emitted.
func (em *Emitter) TextBurst(text string, centre components.Point, hue float64, countdown bool) int {
	tc := &em.cfg.Text
	shape := em.text.Rasterize(text, hue, countdown)

	sizeMin, sizeMax := tc.NormalSizeMin, tc.NormalSizeMax
	decayMin, decayMax := tc.NormalDecayMin, tc.NormalDecayMax
	if countdown {
		sizeMin, sizeMax = tc.CountdownSizeMin, tc.CountdownSizeMax
		decayMin, decayMax = tc.CountdownDecayMin, tc.CountdownDecayMax
	}

	for _, off := range shape.Points {
		em.particles.Add(components.Particle{
			X:        centre.X,
			Y:        centre.Y,
			VX:       off.X*tc.Spread*shape.SizeMult + Range(em.rng, -tc.Jitter, tc.Jitter),
			VY:       off.Y*tc.Spread*shape.SizeMult + Range(em.rng, -tc.Jitter, tc.Jitter),
			Alpha:    1,
			Color:    shape.Color,
			Size:     Range(em.rng, sizeMin, sizeMax),
			Decay:    Range(em.rng, decayMin, decayMax),
			Gravity:  tc.Gravity,
			Friction: tc.Friction,
		})
	}
	return len(shape.Points)
}

// RequestTextBurst is the externally requested countdown-style text burst.
func (em *Emitter) RequestTextBurst(text string, centre components.Point) int {
	em.counters.TextBursts++
	return em.TextBurst(text, centre, 0, true)
}

// Spark maybe emits one ascent trail particle at a rocket's position.
func (em *Emitter) Spark(p components.Point, hue float64) {
	sc := &em.cfg.Spark
	if em.rng.Float64() <= 1-sc.Chance {
		return
	}
	em.particles.Add(components.Particle{
		X:        p.X,
		Y:        p.Y,
		VX:       Range(em.rng, -sc.VXSpread, sc.VXSpread),
		VY:       Range(em.rng, sc.VYMin, sc.VYMax),
		Alpha:    sc.Alpha,
		Color:    components.HSL{H: hue, S: 1, L: sc.Lightness},
		Size:     Range(em.rng, sc.SizeMin, sc.SizeMax),
		Decay:    sc.Decay,
		Gravity:  sc.Gravity,
		Friction: sc.Friction,
	})
}
