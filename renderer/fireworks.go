// Package renderer draws the show with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fireworks/components"
	"github.com/pthm-cable/fireworks/config"
	"github.com/pthm-cable/fireworks/systems"
)

// GL blend constants for the destination-out fade.
const (
	glZero             = 0
	glOneMinusSrcAlpha = 0x0303
	glFuncAdd          = 0x8006
)

// View is the show state the renderer reads each frame.
type View interface {
	Particles() []components.Particle
	Rockets() *systems.RocketStore
}

// FireworksRenderer draws rockets and particles onto a persistent canvas.
// Each frame erodes the canvas a little instead of clearing it, so moving
// entities leave fading trails.
type FireworksRenderer struct {
	cfg    *config.Config
	canvas rl.RenderTexture2D

	width, height int32
	initialized   bool
}

// NewFireworksRenderer creates a renderer for a w × h canvas.
func NewFireworksRenderer(cfg *config.Config, w, h int32) *FireworksRenderer {
	return &FireworksRenderer{
		cfg:    cfg,
		width:  w,
		height: h,
	}
}

// Init creates the canvas (must be called after raylib window is created).
func (r *FireworksRenderer) Init() {
	if r.initialized {
		return
	}
	r.canvas = rl.LoadRenderTexture(r.width, r.height)

	rl.BeginTextureMode(r.canvas)
	rl.ClearBackground(rl.Blank)
	rl.EndTextureMode()

	r.initialized = true
}

// Resize recreates the canvas at the new size. Trails on screen are dropped.
func (r *FireworksRenderer) Resize(w, h int32) {
	if w == r.width && h == r.height {
		return
	}
	r.Unload()
	r.width, r.height = w, h
	r.Init()
}

// Draw advances the canvas by one frame and blits it to the screen.
// ms is the wall clock in milliseconds, used for glitter shimmer.
func (r *FireworksRenderer) Draw(view View, ms float64) {
	if !r.initialized {
		r.Init()
	}

	rl.BeginTextureMode(r.canvas)
	r.fade()

	rl.BeginBlendMode(rl.BlendAdditive)
	r.drawRockets(view.Rockets())
	r.drawParticles(view.Particles(), ms)
	rl.EndBlendMode()

	rl.EndTextureMode()

	// The texture is upside down (OpenGL convention), so we flip it
	src := rl.Rectangle{
		X:      0,
		Y:      0,
		Width:  float32(r.width),
		Height: -float32(r.height),
	}
	rl.DrawTextureRec(r.canvas.Texture, src, rl.Vector2{}, rl.White)
}

// fade removes a fixed share of every pixel's opacity (destination-out).
func (r *FireworksRenderer) fade() {
	rl.SetBlendFactors(glZero, glOneMinusSrcAlpha, glFuncAdd)
	rl.BeginBlendMode(rl.BlendCustom)
	a := uint8(r.cfg.Render.FadeAlpha*255 + 0.5)
	rl.DrawRectangle(0, 0, r.width, r.height, rl.Color{R: 0, G: 0, B: 0, A: a})
	rl.EndBlendMode()
}

// drawRockets renders each rocket as a streak from its oldest trail point.
func (r *FireworksRenderer) drawRockets(rockets *systems.RocketStore) {
	thick := float32(r.cfg.Rocket.LineWidth)
	rockets.Each(func(pos *components.Position, rk *components.Rocket) {
		tail := rk.Tail()
		rl.DrawLineEx(
			rl.Vector2{X: float32(tail.X), Y: float32(tail.Y)},
			rl.Vector2{X: float32(pos.X), Y: float32(pos.Y)},
			thick,
			rk.Color().RGBA(1),
		)
	})
}

// drawParticles renders particles as filled discs.
func (r *FireworksRenderer) drawParticles(particles []components.Particle, ms float64) {
	rc := &r.cfg.Render
	for i := range particles {
		p := &particles[i]
		alpha := systems.DisplayAlpha(p, ms, rc)
		rl.DrawCircleV(
			rl.Vector2{X: float32(p.X), Y: float32(p.Y)},
			float32(p.Size),
			p.Color.RGBA(alpha),
		)
	}
}

// Unload releases GPU resources.
func (r *FireworksRenderer) Unload() {
	if r.initialized {
		rl.UnloadRenderTexture(r.canvas)
		r.initialized = false
	}
}
