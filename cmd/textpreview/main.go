// Text burst preview tool - interactive view of the emission points a text
// burst would use, with sliders for the rasterizer settings.
//
// Usage: go run ./cmd/textpreview [-text 2026]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fireworks/components"
	"github.com/pthm-cable/fireworks/config"
	"github.com/pthm-cable/fireworks/systems"
)

const (
	windowWidth  = 1100
	windowHeight = 640
	previewWidth = 680
	panelWidth   = windowWidth - previewWidth - 30
)

// previewParams holds the rasterizer settings under edit.
type previewParams struct {
	Text      string
	Countdown bool
	Step      int
	Threshold int
	Spread    float32
	SizeMult  float32
}

func main() {
	text := flag.String("text", "", "Text to rasterize (defaults to burst.text)")
	configPath := flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	defaults := paramsFrom(cfg, *text)
	params := defaults

	rl.InitWindow(windowWidth, windowHeight, "Text Burst Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	var shape systems.TextShape
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			shape = rasterize(cfg, params)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		drawPreview(shape, params)

		panelX := float32(previewWidth + 20)
		panelY := float32(10)

		rl.DrawText("Text Burst Parameters", int32(panelX), int32(panelY), 20, rl.LightGray)
		panelY += 35

		// Scan step
		rl.DrawText("Scan step (px between samples)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newStep := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "6",
			float32(params.Step), 1, 6,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Step), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
		if int(newStep) != params.Step {
			params.Step = int(newStep)
			needsRegen = true
		}
		panelY += 35

		// Alpha threshold
		rl.DrawText("Alpha threshold (0-255)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newThreshold := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "254",
			float32(params.Threshold), 0, 254,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Threshold), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
		if int(newThreshold) != params.Threshold {
			params.Threshold = int(newThreshold)
			needsRegen = true
		}
		panelY += 35

		// Spread only changes the velocity readout, not the shape
		rl.DrawText("Spread (offset to velocity)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		params.Spread = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.1", "1.0",
			params.Spread, 0.1, 1.0,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Spread), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
		panelY += 35

		rl.DrawText("Size multiplier", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		params.SizeMult = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.1", "1.5",
			params.SizeMult, 0.1, 1.5,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.SizeMult), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.Countdown, "Normal", "Countdown")) {
			params.Countdown = !params.Countdown
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			needsRegen = true
		}
		panelY += 45

		// Stats
		maxSpeed := float32(0)
		for _, p := range shape.Points {
			v := float32(systems.Distance(components.Point{}, p)) * params.Spread * params.SizeMult
			if v > maxSpeed {
				maxSpeed = v
			}
		}
		rl.DrawText(fmt.Sprintf("Text: %q  Points: %d", params.Text, len(shape.Points)), int32(panelX), int32(panelY), 16, rl.LightGray)
		panelY += 20
		rl.DrawText(fmt.Sprintf("Peak launch speed: %.1f px/frame", maxSpeed), int32(panelX), int32(panelY), 16, rl.LightGray)
		panelY += 35

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.LightGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.DarkGray)

		if rl.IsKeyPressed(rl.KeyC) {
			out := ""
			for _, line := range yamlLines(params) {
				out += line + "\n"
			}
			rl.SetClipboardText(out)
		}

		rl.EndDrawing()
	}
}

func paramsFrom(cfg *config.Config, text string) previewParams {
	if text == "" {
		text = cfg.Burst.Text
	}
	return previewParams{
		Text:      text,
		Step:      cfg.Text.StepNormal,
		Threshold: int(cfg.Text.AlphaThreshold),
		Spread:    float32(cfg.Text.Spread),
		SizeMult:  float32(cfg.Text.SizeMult),
	}
}

// rasterize runs the real rasterizer against a copy of the text settings.
func rasterize(cfg *config.Config, params previewParams) systems.TextShape {
	tc := cfg.Text
	tc.AlphaThreshold = uint8(params.Threshold)
	tc.StepNormal = params.Step
	tc.StepCountdown = params.Step
	tr := systems.NewTextRasterizer(&tc)
	return tr.Rasterize(params.Text, 200, params.Countdown)
}

// drawPreview plots every emission point around the preview centre.
func drawPreview(shape systems.TextShape, params previewParams) {
	cx := float32(previewWidth) / 2
	cy := float32(windowHeight) / 2

	col := shape.Color.RGBA(1)
	for _, p := range shape.Points {
		rl.DrawPixelV(rl.Vector2{X: cx + float32(p.X), Y: cy + float32(p.Y)}, col)
	}

	rl.DrawRectangleLines(10, 10, previewWidth-10, windowHeight-20, rl.DarkGray)
	rl.DrawCircleV(rl.Vector2{X: cx, Y: cy}, 3, rl.Red)
	rl.DrawText(fmt.Sprintf("step %d", params.Step), 20, windowHeight-34, 16, rl.DarkGray)
}

func yamlLines(params previewParams) []string {
	return []string{
		"text:",
		fmt.Sprintf("  alpha_threshold: %d", params.Threshold),
		fmt.Sprintf("  step_normal: %d", params.Step),
		fmt.Sprintf("  spread: %.2f", params.Spread),
		fmt.Sprintf("  size_mult: %.2f", params.SizeMult),
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
