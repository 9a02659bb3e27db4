package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fireworks/components"
)

// PanelState is what the control panel displays.
type PanelState struct {
	Phase     components.Phase
	Count     int // Countdown number while counting
	Start     int // Countdown start, for the progress bar
	Particles int
	Rockets   int
	Pending   int
	Hue       float64
	FPS       int32
	Paused    bool
}

// PanelActions reports the buttons pressed this frame.
type PanelActions struct {
	Start   bool
	Restart bool
	Burst   bool
}

// ControlPanel renders the show controls in the top-left corner.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
	visible  bool
}

// NewControlPanel creates a new control panel.
func NewControlPanel(x, y, width int32) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetVisible shows or hides the panel.
func (c *ControlPanel) SetVisible(visible bool) {
	c.visible = visible
}

// Toggle switches panel visibility.
func (c *ControlPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point falls on the visible panel.
// Presses on the panel must not launch rockets.
func (c *ControlPanel) Contains(x, y float32) bool {
	if !c.visible || c.height == 0 {
		return false
	}
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, rl.Rectangle{
		X:      float32(c.x),
		Y:      float32(c.y),
		Width:  float32(c.width),
		Height: float32(c.height),
	})
}

// Draw renders the panel and returns the buttons pressed.
func (c *ControlPanel) Draw(s PanelState) PanelActions {
	var act PanelActions
	if !c.visible {
		return act
	}

	r := c.renderer
	th := r.Theme
	pad := th.Padding
	inner := c.width - pad*2

	r.DrawPanel(c.x, c.y, c.width, c.height)

	x := c.x + pad
	y := c.y + pad

	y = r.DrawSectionHeader(x, y, "Fireworks")

	phase := s.Phase.String()
	if s.Paused {
		phase += " (paused)"
	}
	y = r.DrawLabelValue(x, y, "Phase", phase)
	if s.Phase == components.PhaseCounting && s.Start > 0 {
		y = r.DrawBar(x, y, "Count", float32(s.Count)/float32(s.Start), inner)
	}
	y = r.DrawLabelValue(x, y, "Particles", fmt.Sprintf("%d", s.Particles))
	y = r.DrawLabelValue(x, y, "Rockets", fmt.Sprintf("%d", s.Rockets))
	if s.Pending > 0 {
		y = r.DrawLabelValue(x, y, "Queued", fmt.Sprintf("%d", s.Pending))
	}
	y = r.DrawColorSwatch(x, y, "Hue", components.HSL{H: s.Hue, S: 1, L: 0.6}.RGBA(1))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", s.FPS))
	y += 4

	half := float32(inner-pad) / 2
	bh := float32(th.ButtonHeight)

	if s.Phase == components.PhaseWaiting {
		act.Start = gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: half, Height: bh}, "Start [Enter]")
	} else {
		act.Restart = gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: half, Height: bh}, "Restart [R]")
	}
	act.Burst = gui.Button(rl.Rectangle{X: float32(x) + half + float32(pad), Y: float32(y), Width: half, Height: bh}, "Burst [B]")
	y += th.ButtonHeight + pad

	rl.DrawText("Click sky to launch  [H] hide", x, y, th.FontSize-2, th.Subtle)
	y += th.LineHeight

	// Height is known only after layout; the next frame's background uses it
	c.height = y - c.y
	return act
}
