package ui

import (
	"github.com/pthm-cable/fireworks/components"
	"github.com/pthm-cable/fireworks/countdown"
)

// Banner draws the phase headline over the show.
type Banner struct {
	renderer *Renderer
	year     string
}

// NewBanner creates a banner with the default theme. year is shown under
// the celebration headline.
func NewBanner(year string) *Banner {
	return &Banner{renderer: NewRenderer(), year: year}
}

// Draw renders the captions for phase on a w × h screen.
func (b *Banner) Draw(phase components.Phase, w, h int32) {
	r := b.renderer
	cx := w / 2

	y := h / 3
	if phase != components.PhaseCelebrating {
		y = h/2 - 30
	}
	for _, c := range countdown.Captions(phase, b.year) {
		if c.Hint {
			r.DrawCentered(c.Text, cx, h-60, c.Size, r.Theme.Subtle)
			continue
		}
		r.DrawCentered(c.Text, cx, y, c.Size, r.Theme.Headline)
		y += c.Size + 12
	}
}
