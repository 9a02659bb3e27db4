package engine

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/pthm-cable/fireworks/components"
	"github.com/pthm-cable/fireworks/config"
	"github.com/pthm-cable/fireworks/systems"
)

const frame = time.Second / 60

// constRand always returns the same value.
type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	return cfg
}

func newStarted(t *testing.T, cfg *config.Config, rng systems.Rand, w, h float64) *Engine {
	t.Helper()
	e := New(cfg, rng, w, h)
	e.Start()
	return e
}

func TestLaunchTimerThresholds(t *testing.T) {
	tests := []struct {
		phase     components.Phase
		threshold int
	}{
		{components.PhaseWaiting, 25},
		{components.PhaseIntro, 25},
		{components.PhaseCounting, 8},
		{components.PhaseCelebrating, 5},
	}

	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			e := newStarted(t, testConfig(t), rand.New(rand.NewSource(3)), 1280, 720)
			e.SetPhase(tt.phase)

			for i := 1; i < tt.threshold; i++ {
				if e.Tick(frame).Launched {
					t.Fatalf("launched on tick %d, before threshold", i)
				}
			}
			if e.Timer() != tt.threshold-1 {
				t.Fatalf("timer = %d, want %d", e.Timer(), tt.threshold-1)
			}

			if !e.Tick(frame).Launched {
				t.Fatalf("no launch on tick %d", tt.threshold)
			}
			if e.Timer() != 0 {
				t.Errorf("timer = %d after launch, want 0", e.Timer())
			}
			if c := e.Counters(); c.AutoLaunches != 1 {
				t.Errorf("auto launches = %d, want 1", c.AutoLaunches)
			}
		})
	}
}

func TestAutoLaunchBounds(t *testing.T) {
	cfg := testConfig(t)
	cfg.Launch.ThresholdRest = 1
	e := newStarted(t, cfg, rand.New(rand.NewSource(11)), 1000, 500)

	e.Tick(frame)
	e.Rockets().Each(func(_ *components.Position, r *components.Rocket) {
		src := r.Trail[len(r.Trail)-1]
		if src.Y != 500 {
			t.Errorf("launch Y = %v, want bottom edge", src.Y)
		}
		if src.X < 50 || src.X > 950 {
			t.Errorf("launch X = %v, want within margins", src.X)
		}
		if r.TargetY < 50 || r.TargetY > 300 {
			t.Errorf("target Y = %v, want in [50, 300]", r.TargetY)
		}
		if math.Abs(r.TargetX-src.X) > 15 {
			t.Errorf("target X = %v, want within 15 of %v", r.TargetX, src.X)
		}
	})
}

func TestRequestTextBurstAtCentre(t *testing.T) {
	e := newStarted(t, testConfig(t), constRand(0.5), 800, 600)

	n := e.RequestTextBurst("5")
	shape := e.text.Rasterize("5", 0, true)
	if shape.Step != 1 {
		t.Fatalf("countdown step = %d, want 1", shape.Step)
	}
	if n == 0 || n != len(shape.Points) {
		t.Fatalf("emitted %d, want %d", n, len(shape.Points))
	}

	want := components.HSL{H: 15, S: 1, L: 0.6}
	for _, p := range e.Particles() {
		if p.X != 400 || p.Y != 300 {
			t.Fatalf("particle at (%v, %v), want (400, 300)", p.X, p.Y)
		}
		if p.Color != want {
			t.Fatalf("colour = %+v, want %+v", p.Color, want)
		}
	}
	if e.Rockets().Count() != 0 {
		t.Errorf("rockets = %d, want 0", e.Rockets().Count())
	}
}

func TestRequestTextBurstNoSurface(t *testing.T) {
	e := newStarted(t, testConfig(t), constRand(0.5), 0, 600)
	if n := e.RequestTextBurst("5"); n != 0 {
		t.Errorf("emitted %d without a surface, want 0", n)
	}
	if len(e.Particles()) != 0 {
		t.Error("particles created without a surface")
	}

	e.Resize(800, 600)
	if e.RequestTextBurst("5") == 0 {
		t.Error("no particles after resize")
	}
}

func TestPointerSalvoCelebrating(t *testing.T) {
	cfg := testConfig(t)
	cfg.Launch.ThresholdCelebrating = 10000 // keep autonomous rockets out

	e := newStarted(t, cfg, rand.New(rand.NewSource(5)), 800, 600)
	e.SetPhase(components.PhaseCelebrating)
	e.PointerDown(400, 300)

	if e.Pending() != 12 {
		t.Fatalf("pending = %d, want 12", e.Pending())
	}

	// 10ms ticks: launch i is due at i × 80ms
	step := 10 * time.Millisecond
	for k := 1; k <= 100; k++ {
		e.Tick(step)
		elapsed := time.Duration(k) * step
		want := int(elapsed/(80*time.Millisecond)) + 1
		if want > 12 {
			want = 12
		}
		if got := e.Counters().ManualLaunches; got != want {
			t.Fatalf("at %v: manual launches = %d, want %d", elapsed, got, want)
		}
	}
	if e.Pending() != 0 {
		t.Errorf("pending = %d after salvo, want 0", e.Pending())
	}

	seen := 0
	e.Rockets().Each(func(_ *components.Position, r *components.Rocket) {
		seen++
		if r.TargetX < 400-115 || r.TargetX > 400+115 {
			t.Errorf("target X = %v, want within 400 ± 115", r.TargetX)
		}
		if r.TargetY < 250 || r.TargetY > 350 {
			t.Errorf("target Y = %v, want within 300 ± 50", r.TargetY)
		}
	})
	if seen+e.Rockets().Detonated() != 12 {
		t.Errorf("live %d + detonated %d, want 12", seen, e.Rockets().Detonated())
	}
}

func TestPointerSalvoRest(t *testing.T) {
	e := newStarted(t, testConfig(t), rand.New(rand.NewSource(5)), 800, 600)
	e.PointerDown(100, 100)
	if e.Pending() != 6 {
		t.Errorf("pending = %d, want 6", e.Pending())
	}
}

func TestStopCancelsDeferred(t *testing.T) {
	e := newStarted(t, testConfig(t), rand.New(rand.NewSource(9)), 800, 600)
	e.PointerDown(400, 300)
	e.Stop()

	if e.Pending() != 0 {
		t.Errorf("pending = %d after stop, want 0", e.Pending())
	}
	if res := e.Tick(frame); res != (TickResult{}) || e.Ticks() != 0 {
		t.Errorf("stopped engine ticked: %+v, ticks %d", res, e.Ticks())
	}

	if e.Running() {
		t.Fatal("engine still running after Stop")
	}

	e.Start()
	e.Start()
	if !e.Running() {
		t.Fatal("engine not running after Start")
	}
	e.Tick(frame)
	if e.Counters().ManualLaunches != 0 {
		t.Error("cancelled launch fired after restart")
	}
	if e.Ticks() != 1 {
		t.Errorf("ticks = %d, want 1", e.Ticks())
	}
}

func TestStoppedEngineIgnoresRequests(t *testing.T) {
	e := New(testConfig(t), constRand(0.5), 800, 600)

	e.PointerDown(400, 300)
	if n := e.RequestTextBurst("7"); n != 0 {
		t.Errorf("emitted %d while stopped, want 0", n)
	}
	if e.Pending() != 0 || len(e.Particles()) != 0 {
		t.Fatalf("pending %d, particles %d while stopped; want 0, 0", e.Pending(), len(e.Particles()))
	}

	e.Start()
	for i := 0; i < 60; i++ {
		e.Tick(frame)
	}
	c := e.Counters()
	if c.ManualLaunches != 0 || c.TextBursts != 0 {
		t.Errorf("manual launches %d, text bursts %d after start; want 0, 0", c.ManualLaunches, c.TextBursts)
	}
}

func TestStoppedEngineIgnoresRequestsAfterStop(t *testing.T) {
	e := newStarted(t, testConfig(t), constRand(0.5), 800, 600)
	e.Stop()

	e.PointerDown(400, 300)
	if e.Pending() != 0 {
		t.Errorf("pending = %d after press on stopped engine, want 0", e.Pending())
	}
	if e.RequestTextBurst("7") != 0 || len(e.Particles()) != 0 {
		t.Error("text burst emitted on stopped engine")
	}
}

func TestHueStartsOnWheel(t *testing.T) {
	tests := []struct {
		name string
		r    float64
		want float64
	}{
		{"low", 0, 0},
		{"middle", 0.5, 180},
		{"high", 0.99, 356.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(testConfig(t), constRand(tt.r), 800, 600)
			if math.Abs(e.Hue()-tt.want) > 1e-9 {
				t.Errorf("initial hue = %v, want %v", e.Hue(), tt.want)
			}
		})
	}
}

func TestHueAdvancesPerFrame(t *testing.T) {
	e := newStarted(t, testConfig(t), rand.New(rand.NewSource(1)), 800, 600)
	start := e.Hue()
	if start < 0 || start >= 360 {
		t.Fatalf("initial hue = %v, want within [0, 360)", start)
	}
	for i := 0; i < 400; i++ {
		e.Tick(frame)
	}
	if math.Abs(e.Hue()-(start+400)) > 1e-9 {
		t.Errorf("hue = %v, want %v (unbounded)", e.Hue(), start+400)
	}
	if e.Elapsed() != 400*frame {
		t.Errorf("elapsed = %v, want %v", e.Elapsed(), 400*frame)
	}
}

func TestWaitingShowStaysBounded(t *testing.T) {
	e := newStarted(t, testConfig(t), rand.New(rand.NewSource(2026)), 1280, 720)

	peak := 0
	for i := 0; i < 250; i++ {
		e.Tick(frame)
		if n := len(e.Particles()); n > peak {
			peak = n
		}
	}

	c := e.Counters()
	if c.AutoLaunches != 10 {
		t.Errorf("auto launches = %d, want 10", c.AutoLaunches)
	}
	// 10 bursts of at most 300 particles plus sparks
	if peak > 10*300+250 {
		t.Errorf("peak particles = %d, exceeds bound", peak)
	}
	if e.Rockets().Count() > 10 {
		t.Errorf("rockets = %d, want at most 10", e.Rockets().Count())
	}
	for _, p := range e.Particles() {
		if p.Alpha <= p.Decay {
			t.Fatalf("exhausted particle survived: alpha %v decay %v", p.Alpha, p.Decay)
		}
	}
}

func TestCelebratingShowStaysBounded(t *testing.T) {
	e := newStarted(t, testConfig(t), rand.New(rand.NewSource(2026)), 1280, 720)
	e.SetPhase(components.PhaseCelebrating)

	const frames = 3000
	peak, rocketPeak := 0, 0
	for i := 0; i < frames; i++ {
		e.Tick(frame)
		if n := len(e.Particles()); n > peak {
			peak = n
		}
		if n := e.Rockets().Count(); n > rocketPeak {
			rocketPeak = n
		}
	}

	c := e.Counters()
	if c.AutoLaunches != frames/5 {
		t.Errorf("auto launches = %d, want %d", c.AutoLaunches, frames/5)
	}

	// Roughly 300k particles are spawned over the run; without retirement
	// the store would grow far past this bound.
	ps := e.ParticleStore()
	if ps.Spawned() < 100000 {
		t.Fatalf("spawned = %d, run too quiet to exercise the bound", ps.Spawned())
	}
	if peak > 60000 {
		t.Errorf("peak particles = %d, exceeds bound", peak)
	}
	if ps.Spawned()-ps.Retired() != len(e.Particles()) {
		t.Errorf("spawned %d - retired %d != live %d", ps.Spawned(), ps.Retired(), len(e.Particles()))
	}

	// A rocket climbs at most ~65 frames, one launch every 5 frames
	if rocketPeak > 20 {
		t.Errorf("peak rockets = %d, want at most 20", rocketPeak)
	}
}

// recordingTimer captures step names.
type recordingTimer struct {
	phases []string
}

func (r *recordingTimer) StartPhase(p string) { r.phases = append(r.phases, p) }

func TestTickStepOrder(t *testing.T) {
	e := newStarted(t, testConfig(t), rand.New(rand.NewSource(1)), 800, 600)
	rec := &recordingTimer{}
	e.SetPerf(rec)
	e.Tick(frame)

	want := []string{StepDeferred, StepRockets, StepParticles, StepLaunch}
	if len(rec.phases) != len(want) {
		t.Fatalf("phases = %v, want %v", rec.phases, want)
	}
	for i := range want {
		if rec.phases[i] != want[i] {
			t.Errorf("phase %d = %q, want %q", i, rec.phases[i], want[i])
		}
	}
}
