package engine

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/fireworks/components"
	"github.com/pthm-cable/fireworks/systems"
)

// SetPhase switches the show phase. Only launch cadence, burst size and
// text detonations depend on it; live entities are untouched.
func (e *Engine) SetPhase(p components.Phase) {
	if p == e.phase {
		return
	}
	slog.Debug("phase changed", "from", e.phase.String(), "to", p.String(), "tick", e.ticks)
	e.phase = p
}

// Phase returns the current show phase.
func (e *Engine) Phase() components.Phase {
	return e.phase
}

// RequestTextBurst emits text as a countdown-style particle burst at the
// surface centre. It works in any phase and launches no rockets.
// Returns the number of particles emitted, 0 when the engine is stopped or
// there is no surface.
func (e *Engine) RequestTextBurst(text string) int {
	if !e.running {
		return 0
	}
	if e.width <= 0 || e.height <= 0 {
		slog.Warn("text burst skipped: no drawing surface", "text", text)
		return 0
	}
	centre := components.Point{X: e.width / 2, Y: e.height / 2}
	return e.emitter.RequestTextBurst(text, centre)
}

// PointerDown schedules a salvo of rockets rising toward (x, y), one every
// stagger interval. Celebrating salvos are larger. Positions are jittered
// when each rocket fires, against the surface size at that moment.
// A stopped engine ignores the press.
func (e *Engine) PointerDown(x, y float64) {
	if !e.running {
		return
	}
	pc := &e.cfg.Pointer
	count := pc.CountRest
	if e.phase == components.PhaseCelebrating {
		count = pc.CountCelebrating
	}

	for i := 0; i < count; i++ {
		at := e.elapsed + time.Duration(i)*e.cfg.Derived.Stagger
		e.queue.Schedule(at, func() {
			sx := x + systems.Range(e.rng, -pc.XJitter, pc.XJitter)
			ty := y + systems.Range(e.rng, -pc.YJitter, pc.YJitter)
			e.emitter.Launch(
				components.Point{X: sx, Y: e.height},
				components.Point{X: sx, Y: ty},
				systems.LaunchManual,
			)
		})
	}
}

// Resize updates the drawing surface. Live entities keep their positions.
func (e *Engine) Resize(w, h float64) {
	e.width, e.height = w, h
}
