// Package telemetry observes the show: windowed statistics, timing and CSV output.
package telemetry

import "math"

// Totals are cumulative show counters, read from the engine each flush.
type Totals struct {
	AutoLaunches    int
	ManualLaunches  int
	Detonations     int
	TextDetonations int
	TextBursts      int
	Spawned         int
	Retired         int
}

// Sample is the live state observed after one tick.
type Sample struct {
	Particles int
	Rockets   int
	Pending   int
}

// Collector accumulates per-tick samples within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int
	dt                  float64

	// Current window tracking
	windowStartTick int
	prev            Totals

	particleCounts []float64
	rocketCounts   []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in show seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int(math.Round(windowDurationSec / dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		particleCounts:      make([]float64, 0, ticksPerWindow),
		rocketCounts:        make([]float64, 0, ticksPerWindow),
	}
}

// Record adds one tick's sample to the current window.
func (c *Collector) Record(s Sample) {
	c.particleCounts = append(c.particleCounts, float64(s.Particles))
	c.rocketCounts = append(c.rocketCounts, float64(s.Rockets))
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets for the next window.
// Event counts are the difference between totals and those of the previous flush.
func (c *Collector) Flush(currentTick int, phase string, hue float64, totals Totals, now Sample) WindowStats {
	pMean, pStd, pP50, pP90, pMax := ComputeLoadStats(c.particleCounts)
	rMean, _, _, _, rMax := ComputeLoadStats(c.rocketCounts)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,
		Phase:           phase,
		Hue:             hue,

		Particles: now.Particles,
		Rockets:   now.Rockets,
		Pending:   now.Pending,

		AutoLaunches:    totals.AutoLaunches - c.prev.AutoLaunches,
		ManualLaunches:  totals.ManualLaunches - c.prev.ManualLaunches,
		Detonations:     totals.Detonations - c.prev.Detonations,
		TextDetonations: totals.TextDetonations - c.prev.TextDetonations,
		TextBursts:      totals.TextBursts - c.prev.TextBursts,
		Spawned:         totals.Spawned - c.prev.Spawned,
		Retired:         totals.Retired - c.prev.Retired,

		ParticlesMean: pMean,
		ParticlesStd:  pStd,
		ParticlesP50:  pP50,
		ParticlesP90:  pP90,
		ParticlesMax:  pMax,

		RocketsMean: rMean,
		RocketsMax:  rMax,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.prev = totals
	c.particleCounts = c.particleCounts[:0]
	c.rocketCounts = c.rocketCounts[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int {
	return c.windowDurationTicks
}
