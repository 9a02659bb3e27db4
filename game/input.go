package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard and pointer input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		g.Start()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.Restart()
	}
	if rl.IsKeyPressed(rl.KeyB) {
		g.Burst()
	}
	if rl.IsKeyPressed(rl.KeyH) && g.panel != nil {
		g.panel.Toggle()
	}

	g.handlePointer()
}

// handlePointer launches a salvo at a left press on the sky.
func (g *Game) handlePointer() {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	pos := rl.GetMousePosition()
	if g.panel != nil && g.panel.Contains(pos.X, pos.Y) {
		return
	}
	g.engine.PointerDown(float64(pos.X), float64(pos.Y))
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.engine.Resize(float64(w), float64(h))
	if g.renderer != nil {
		g.renderer.Resize(int32(w), int32(h))
	}
}
