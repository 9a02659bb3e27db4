package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fireworks/ui"
)

// Draw renders the show.
func (g *Game) Draw() {
	g.perfCollector.RecordDisplay()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.renderer.Draw(g.engine, rl.GetTime()*1000)

	phase := g.countdown.Phase()
	g.banner.Draw(phase, int32(g.screenWidth), int32(g.screenHeight))

	act := g.panel.Draw(ui.PanelState{
		Phase:     phase,
		Count:     g.countdown.Count(),
		Start:     g.cfg.Countdown.Start,
		Particles: len(g.engine.Particles()),
		Rockets:   g.engine.Rockets().Count(),
		Pending:   g.engine.Pending(),
		Hue:       g.engine.Hue(),
		FPS:       rl.GetFPS(),
		Paused:    g.paused,
	})

	rl.EndDrawing()

	if act.Start {
		g.Start()
	}
	if act.Restart {
		g.Restart()
	}
	if act.Burst {
		g.Burst()
	}
}
