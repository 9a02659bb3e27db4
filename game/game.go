// Package game hosts the fireworks show: frame loop, input and telemetry.
package game

import (
	"log/slog"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fireworks/components"
	"github.com/pthm-cable/fireworks/config"
	"github.com/pthm-cable/fireworks/countdown"
	"github.com/pthm-cable/fireworks/engine"
	"github.com/pthm-cable/fireworks/renderer"
	"github.com/pthm-cable/fireworks/telemetry"
	"github.com/pthm-cable/fireworks/ui"
)

// Game holds the complete show state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	engine    *engine.Engine
	countdown *countdown.Sequencer

	// Rendering (nil when headless)
	renderer *renderer.FireworksRenderer
	panel    *ui.ControlPanel
	banner   *ui.Banner

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool

	// State
	paused   bool
	headless bool

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a show from the given options.
// Graphical mode must be called after the raylib window is created.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	w := float32(cfg.Screen.Width)
	h := float32(cfg.Screen.Height)

	g := &Game{
		cfg:          cfg,
		rng:          rand.New(rand.NewSource(opts.Seed)),
		headless:     opts.Headless,
		logStats:     opts.LogStats,
		screenWidth:  w,
		screenHeight: h,
	}

	g.engine = engine.New(cfg, g.rng, float64(w), float64(h))
	g.countdown = countdown.New(cfg, g.engine)

	// Telemetry
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	dt := cfg.Derived.FrameDuration.Seconds()
	g.collector = telemetry.NewCollector(statsWindow, dt)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(10)
	g.engine.SetPerf(g.perfCollector)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	if !opts.Headless {
		g.renderer = renderer.NewFireworksRenderer(cfg, int32(w), int32(h))
		g.renderer.Init()
		g.panel = ui.NewControlPanel(10, 10, 240)
		g.panel.SetVisible(cfg.Render.ShowPanel)
		g.banner = ui.NewBanner(cfg.Burst.Text)
	}

	// Start first: a stopped engine drops the bursts openIn may request
	g.engine.Start()
	g.openIn(opts.Phase)

	return g, nil
}

// openIn fast-forwards the sequence to the requested phase.
func (g *Game) openIn(p components.Phase) {
	switch p {
	case components.PhaseIntro, components.PhaseCounting:
		g.countdown.Start()
		if p == components.PhaseCounting {
			g.countdown.Advance(g.cfg.Derived.IntroDuration)
		}
	case components.PhaseCelebrating:
		g.countdown.Celebrate()
	}
}

// Update processes input and advances the show by one display frame.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
	g.step(dt)
}

// UpdateHeadless advances the show by one nominal frame without graphics.
func (g *Game) UpdateHeadless() {
	g.step(g.cfg.Derived.FrameDuration)
}

// step runs one frame: countdown, engine tick, telemetry.
func (g *Game) step(dt time.Duration) {
	g.perfCollector.BeginFrame()

	g.perfCollector.StartPhase(telemetry.PhaseCountdown)
	g.countdown.Advance(dt)

	g.engine.Tick(dt)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	sample := telemetry.Sample{
		Particles: len(g.engine.Particles()),
		Rockets:   g.engine.Rockets().Count(),
		Pending:   g.engine.Pending(),
	}
	g.collector.Record(sample)
	g.flushTelemetry()

	g.perfCollector.EndFrame(telemetry.FrameLoad{
		Particles: sample.Particles,
		Rockets:   sample.Rockets,
	})
}

// Start begins the countdown.
func (g *Game) Start() {
	g.countdown.Start()
}

// Restart returns the show to waiting.
func (g *Game) Restart() {
	slog.Info("show restarted", "tick", g.engine.Ticks())
	g.countdown.Restart()
}

// Burst fires a text burst of the configured message.
func (g *Game) Burst() {
	g.engine.RequestTextBurst(g.cfg.Burst.Text)
}

// Phase returns the current show phase.
func (g *Game) Phase() components.Phase {
	return g.countdown.Phase()
}

// Unload releases resources.
func (g *Game) Unload() {
	g.engine.Stop()
	if g.renderer != nil {
		g.renderer.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Tick returns the number of frames simulated.
func (g *Game) Tick() int {
	return g.engine.Ticks()
}
