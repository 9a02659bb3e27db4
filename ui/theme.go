// Package ui draws the show's control panel and headlines.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Headline       rl.Color
	Subtle         rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	ButtonHeight   int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 10, G: 12, B: 24, A: 200},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 100, A: 255},
		SectionHeader:  rl.Gold,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 40, G: 40, B: 50, A: 255},
		BarFill:        rl.Color{R: 240, G: 180, B: 80, A: 255},
		Headline:       rl.Color{R: 255, G: 220, B: 120, A: 255},
		Subtle:         rl.Color{R: 255, G: 255, B: 255, A: 130},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     80,
		BarHeight:      10,
		ButtonHeight:   26,
		FontSize:       14,
		HeaderFontSize: 16,
	}
}
