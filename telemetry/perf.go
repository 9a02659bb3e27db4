package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/fireworks/engine"
)

// Step names for one frame. The engine reports its own steps.
const (
	PhaseCountdown = "countdown"
	PhaseDeferred  = engine.StepDeferred
	PhaseRockets   = engine.StepRockets
	PhaseParticles = engine.StepParticles
	PhaseLaunch    = engine.StepLaunch
	PhaseTelemetry = "telemetry"
)

// framePhases lists steps in frame order.
var framePhases = []string{
	PhaseCountdown, PhaseDeferred, PhaseRockets,
	PhaseParticles, PhaseLaunch, PhaseTelemetry,
}

// FrameLoad is the show's workload at the end of a frame.
type FrameLoad struct {
	Particles int
	Rockets   int
}

type frameSample struct {
	total time.Duration
	steps map[string]time.Duration
	load  FrameLoad
}

// PerfCollector times simulation frames over a rolling window and relates
// the time spent to the number of live particles and rockets.
type PerfCollector struct {
	samples []frameSample
	next    int
	filled  int

	current    frameSample
	frameStart time.Time
	stepStart  time.Time
	step       string

	// Display pacing, graphics mode only
	lastDisplay time.Time
	display     time.Duration
}

// NewPerfCollector creates a collector keeping the last window frames.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{samples: make([]frameSample, window)}
}

// BeginFrame starts timing a simulation frame.
func (p *PerfCollector) BeginFrame() {
	p.frameStart = time.Now()
	p.current = frameSample{steps: make(map[string]time.Duration, len(framePhases))}
	p.step = ""
}

// StartPhase closes the running step and opens the named one.
func (p *PerfCollector) StartPhase(step string) {
	now := time.Now()
	p.closeStep(now)
	p.stepStart = now
	p.step = step
}

// EndFrame closes the frame and records it with the load it left behind.
func (p *PerfCollector) EndFrame(load FrameLoad) {
	now := time.Now()
	p.closeStep(now)
	p.current.total = now.Sub(p.frameStart)
	p.current.load = load

	p.samples[p.next] = p.current
	p.next = (p.next + 1) % len(p.samples)
	if p.filled < len(p.samples) {
		p.filled++
	}
}

func (p *PerfCollector) closeStep(now time.Time) {
	if p.step != "" && p.current.steps != nil {
		p.current.steps[p.step] += now.Sub(p.stepStart)
	}
}

// RecordDisplay marks a presented frame; the gap between calls gives FPS.
func (p *PerfCollector) RecordDisplay() {
	now := time.Now()
	if !p.lastDisplay.IsZero() {
		p.display = now.Sub(p.lastDisplay)
	}
	p.lastDisplay = now
}

// PerfStats summarises the frames in the window.
type PerfStats struct {
	Frames int

	FrameMean time.Duration
	FrameStd  time.Duration
	FrameMin  time.Duration
	FrameP90  time.Duration
	FrameMax  time.Duration

	// Percent of total frame time per step
	StepShare map[string]float64

	ParticlesMean float64
	ParticlesPeak float64
	RocketsPeak   float64

	// Particle step time divided by live particles, over the window
	NSPerParticle float64

	Display time.Duration
	FPS     float64
}

// Stats computes statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		Frames:    p.filled,
		StepShare: make(map[string]float64),
		Display:   p.display,
	}
	if p.display > 0 {
		s.FPS = float64(time.Second) / float64(p.display)
	}
	if p.filled == 0 {
		return s
	}

	totals := make([]float64, p.filled)
	particles := make([]float64, p.filled)
	rockets := make([]float64, p.filled)
	stepSum := make(map[string]time.Duration)
	var particleTime time.Duration
	for i, f := range p.samples[:p.filled] {
		totals[i] = float64(f.total)
		particles[i] = float64(f.load.Particles)
		rockets[i] = float64(f.load.Rockets)
		for step, d := range f.steps {
			stepSum[step] += d
		}
		if f.load.Particles > 0 {
			particleTime += f.steps[PhaseParticles]
		}
	}

	mean, std, _, p90, peak := ComputeLoadStats(totals)
	s.FrameMean = time.Duration(mean)
	s.FrameStd = time.Duration(std)
	s.FrameP90 = time.Duration(p90)
	s.FrameMax = time.Duration(peak)
	s.FrameMin = time.Duration(floats.Min(totals))

	s.ParticlesMean, _, _, _, s.ParticlesPeak = ComputeLoadStats(particles)
	s.RocketsPeak = floats.Max(rockets)

	if sum := floats.Sum(particles); sum > 0 {
		s.NSPerParticle = float64(particleTime) / sum
	}

	if all := floats.Sum(totals); all > 0 {
		for step, d := range stepSum {
			s.StepShare[step] = float64(d) / all * 100
		}
	}
	return s
}

// LogValue implements slog.LogValuer so the window logs as one group.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("frames", s.Frames),
		slog.Int64("frame_mean_us", s.FrameMean.Microseconds()),
		slog.Int64("frame_p90_us", s.FrameP90.Microseconds()),
		slog.Int64("frame_max_us", s.FrameMax.Microseconds()),
		slog.Float64("particles_peak", s.ParticlesPeak),
		slog.Float64("ns_per_particle", s.NSPerParticle),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, step := range framePhases {
		if pct := s.StepShare[step]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(step+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat record for perf.csv.
type PerfStatsCSV struct {
	WindowEnd     int     `csv:"window_end"`
	Frames        int     `csv:"frames"`
	FrameMeanUS   int64   `csv:"frame_mean_us"`
	FrameStdUS    int64   `csv:"frame_std_us"`
	FrameMinUS    int64   `csv:"frame_min_us"`
	FrameP90US    int64   `csv:"frame_p90_us"`
	FrameMaxUS    int64   `csv:"frame_max_us"`
	FPS           float64 `csv:"fps"`
	ParticlesMean float64 `csv:"particles_mean"`
	ParticlesPeak float64 `csv:"particles_peak"`
	RocketsPeak   float64 `csv:"rockets_peak"`
	NSPerParticle float64 `csv:"ns_per_particle"`
	CountdownPct  float64 `csv:"countdown_pct"`
	DeferredPct   float64 `csv:"deferred_pct"`
	RocketsPct    float64 `csv:"rockets_pct"`
	ParticlesPct  float64 `csv:"particles_pct"`
	LaunchPct     float64 `csv:"launch_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		Frames:        s.Frames,
		FrameMeanUS:   s.FrameMean.Microseconds(),
		FrameStdUS:    s.FrameStd.Microseconds(),
		FrameMinUS:    s.FrameMin.Microseconds(),
		FrameP90US:    s.FrameP90.Microseconds(),
		FrameMaxUS:    s.FrameMax.Microseconds(),
		FPS:           s.FPS,
		ParticlesMean: s.ParticlesMean,
		ParticlesPeak: s.ParticlesPeak,
		RocketsPeak:   s.RocketsPeak,
		NSPerParticle: s.NSPerParticle,
		CountdownPct:  s.StepShare[PhaseCountdown],
		DeferredPct:   s.StepShare[PhaseDeferred],
		RocketsPct:    s.StepShare[PhaseRockets],
		ParticlesPct:  s.StepShare[PhaseParticles],
		LaunchPct:     s.StepShare[PhaseLaunch],
		TelemetryPct:  s.StepShare[PhaseTelemetry],
	}
}
