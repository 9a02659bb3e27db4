package systems

import (
	"math"

	"github.com/pthm-cable/fireworks/components"
	"github.com/pthm-cable/fireworks/config"
)

// DisplayAlpha returns the opacity p is drawn with at ms milliseconds.
// Slow-decaying particles (glitter) twinkle; the stored alpha is never touched.
func DisplayAlpha(p *components.Particle, ms float64, rc *config.RenderConfig) float64 {
	if p.Decay >= rc.ShimmerDecay {
		return p.Alpha
	}
	return p.Alpha * (1 - rc.ShimmerDepth + rc.ShimmerDepth*math.Sin(ms*rc.ShimmerFreq))
}
