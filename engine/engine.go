// Package engine drives the fireworks simulation one display frame at a time.
package engine

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/fireworks/components"
	"github.com/pthm-cable/fireworks/config"
	"github.com/pthm-cable/fireworks/systems"
)

// Phase names for the tick, reported to a PhaseTimer.
const (
	StepDeferred  = "deferred"
	StepRockets   = "rockets"
	StepParticles = "particles"
	StepLaunch    = "launch"
)

// PhaseTimer receives the start of each tick step.
// telemetry.PerfCollector satisfies it.
type PhaseTimer interface {
	StartPhase(phase string)
}

// TickResult summarises one tick.
type TickResult struct {
	Deferred    int // Deferred launches fired
	Detonations int
	Retired     int // Particles removed
	Launched    bool
}

// Engine owns all show state: particles, rockets, the hue cursor, the
// autonomous launch timer and the deferred launch queue.
type Engine struct {
	cfg *config.Config
	rng systems.Rand

	particles *systems.ParticleStore
	rockets   *systems.RocketStore
	text      *systems.TextRasterizer
	emitter   *systems.Emitter
	queue     DeferredQueue

	perf PhaseTimer

	phase   components.Phase
	hue     float64
	timer   int
	ticks   int
	elapsed time.Duration
	running bool

	width, height float64
}

// New creates a stopped engine for a surface of w × h pixels.
// The hue cursor starts at a random point of the colour wheel.
func New(cfg *config.Config, rng systems.Rand, w, h float64) *Engine {
	e := &Engine{
		cfg:       cfg,
		rng:       rng,
		particles: systems.NewParticleStore(),
		rockets:   systems.NewRocketStore(),
		text:      systems.NewTextRasterizer(&cfg.Text),
		hue:       systems.Range(rng, 0, 360),
		width:     w,
		height:    h,
	}
	e.emitter = systems.NewEmitter(cfg, rng, e.particles, e.rockets, e.text, e.Hue)
	return e
}

// SetPerf installs a step timer. nil disables timing.
func (e *Engine) SetPerf(p PhaseTimer) {
	e.perf = p
}

// Start enables ticking. Calling it on a running engine does nothing.
func (e *Engine) Start() {
	if e.running {
		return
	}
	e.running = true
	slog.Debug("engine started", "tick", e.ticks)
}

// Stop halts ticking and cancels pending deferred launches.
func (e *Engine) Stop() {
	if !e.running {
		return
	}
	e.running = false
	dropped := e.queue.Cancel()
	slog.Debug("engine stopped", "tick", e.ticks, "cancelled", dropped)
}

// Running reports whether the engine ticks.
func (e *Engine) Running() bool {
	return e.running
}

// Tick advances the show by one frame. dt moves the engine clock that
// deferred launches are keyed on; physics steps are per frame.
// A stopped engine does nothing.
func (e *Engine) Tick(dt time.Duration) TickResult {
	var res TickResult
	if !e.running {
		return res
	}

	e.ticks++
	e.elapsed += dt

	e.step(StepDeferred)
	res.Deferred = e.queue.RunDue(e.elapsed)

	e.hue += e.cfg.Render.HueStep

	e.step(StepRockets)
	res.Detonations = e.rockets.Update(e.emitter, e.phase)

	e.step(StepParticles)
	res.Retired = e.particles.Update()

	e.step(StepLaunch)
	res.Launched = e.autoLaunch()

	return res
}

func (e *Engine) step(name string) {
	if e.perf != nil {
		e.perf.StartPhase(name)
	}
}

// autoLaunch counts frames and fires a rocket at the phase threshold.
func (e *Engine) autoLaunch() bool {
	e.timer++
	if e.timer < e.threshold() {
		return false
	}
	e.timer = 0

	lc := &e.cfg.Launch
	x := systems.Range(e.rng, lc.EdgeMargin, e.width-lc.EdgeMargin)
	y := systems.Range(e.rng, lc.TargetMinY, e.height*lc.TargetMaxFrac)
	e.emitter.Launch(
		components.Point{X: x, Y: e.height},
		components.Point{X: x, Y: y},
		systems.LaunchAuto,
	)
	return true
}

// threshold returns the autonomous launch period in frames for the current phase.
func (e *Engine) threshold() int {
	switch e.phase {
	case components.PhaseCounting:
		return e.cfg.Launch.ThresholdCounting
	case components.PhaseCelebrating:
		return e.cfg.Launch.ThresholdCelebrating
	default:
		return e.cfg.Launch.ThresholdRest
	}
}

// Particles returns the live particles. The slice is only valid until the next Tick.
func (e *Engine) Particles() []components.Particle {
	return e.particles.Particles
}

// Rockets returns the rocket store.
func (e *Engine) Rockets() *systems.RocketStore {
	return e.rockets
}

// ParticleStore returns the particle store.
func (e *Engine) ParticleStore() *systems.ParticleStore {
	return e.particles
}

// Hue returns the hue cursor.
func (e *Engine) Hue() float64 {
	return e.hue
}

// Ticks returns the number of frames simulated.
func (e *Engine) Ticks() int {
	return e.ticks
}

// Elapsed returns the engine clock.
func (e *Engine) Elapsed() time.Duration {
	return e.elapsed
}

// Timer returns the autonomous launch frame counter.
func (e *Engine) Timer() int {
	return e.timer
}

// Pending returns the number of deferred launches waiting to fire.
func (e *Engine) Pending() int {
	return e.queue.Len()
}

// Counters returns the emission counters.
func (e *Engine) Counters() systems.EmitterCounters {
	return e.emitter.Counters()
}
