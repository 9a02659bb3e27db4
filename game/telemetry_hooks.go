package game

import (
	"log/slog"

	"github.com/pthm-cable/fireworks/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	tick := g.engine.Ticks()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	stats := g.collector.Flush(
		tick,
		g.engine.Phase().String(),
		g.engine.Hue(),
		g.totals(),
		telemetry.Sample{
			Particles: len(g.engine.Particles()),
			Rockets:   g.engine.Rockets().Count(),
			Pending:   g.engine.Pending(),
		},
	)
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		slog.Info("window", "stats", stats, "perf", perfStats)
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

// totals reads the cumulative show counters.
func (g *Game) totals() telemetry.Totals {
	c := g.engine.Counters()
	ps := g.engine.ParticleStore()
	return telemetry.Totals{
		AutoLaunches:    c.AutoLaunches,
		ManualLaunches:  c.ManualLaunches,
		Detonations:     c.Detonations,
		TextDetonations: c.TextDetonations,
		TextBursts:      c.TextBursts,
		Spawned:         ps.Spawned(),
		Retired:         ps.Retired(),
	}
}
