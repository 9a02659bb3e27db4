package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int     `csv:"-"`
	WindowEndTick   int     `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Phase           string  `csv:"phase"`
	Hue             float64 `csv:"hue"`

	// Live counts at window end
	Particles int `csv:"particles"`
	Rockets   int `csv:"rockets"`
	Pending   int `csv:"pending"` // Deferred pointer launches

	// Events during window
	AutoLaunches    int `csv:"auto_launches"`
	ManualLaunches  int `csv:"manual_launches"`
	Detonations     int `csv:"detonations"`
	TextDetonations int `csv:"text_detonations"`
	TextBursts      int `csv:"text_bursts"`
	Spawned         int `csv:"spawned"`
	Retired         int `csv:"retired"`

	// Particle load distribution (sampled every tick)
	ParticlesMean float64 `csv:"particles_mean"`
	ParticlesStd  float64 `csv:"particles_std"`
	ParticlesP50  float64 `csv:"particles_p50"`
	ParticlesP90  float64 `csv:"particles_p90"`
	ParticlesMax  float64 `csv:"particles_max"`

	RocketsMean float64 `csv:"rockets_mean"`
	RocketsMax  float64 `csv:"rockets_max"`
}

// ComputeLoadStats calculates mean, sample standard deviation, median,
// 90th percentile and maximum of per-tick counts.
func ComputeLoadStats(values []float64) (mean, std, p50, p90, peak float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n == 1 {
		mean = sorted[0]
	} else {
		mean, std = stat.MeanStdDev(sorted, nil)
	}
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	peak = floats.Max(sorted)

	return mean, std, p50, p90, peak
}

// LogValue implements slog.LogValuer so a window can be logged as one group.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("phase", s.Phase),
		slog.Float64("hue", s.Hue),
		slog.Int("particles", s.Particles),
		slog.Int("rockets", s.Rockets),
		slog.Int("pending", s.Pending),
		slog.Int("auto_launches", s.AutoLaunches),
		slog.Int("manual_launches", s.ManualLaunches),
		slog.Int("detonations", s.Detonations),
		slog.Int("text_detonations", s.TextDetonations),
		slog.Int("text_bursts", s.TextBursts),
		slog.Int("spawned", s.Spawned),
		slog.Int("retired", s.Retired),
		slog.Float64("particles_mean", s.ParticlesMean),
		slog.Float64("particles_std", s.ParticlesStd),
		slog.Float64("particles_p50", s.ParticlesP50),
		slog.Float64("particles_p90", s.ParticlesP90),
		slog.Float64("particles_max", s.ParticlesMax),
		slog.Float64("rockets_mean", s.RocketsMean),
		slog.Float64("rockets_max", s.RocketsMax),
	)
}
