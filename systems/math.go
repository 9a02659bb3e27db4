package systems

import (
	"math"

	"github.com/pthm-cable/fireworks/components"
)

// Rand is the random source behind every stochastic decision in the show.
// *math/rand.Rand satisfies it; tests substitute scripted sequences.
type Rand interface {
	Float64() float64
}

// Range returns a uniform value in [min, max).
func Range(r Rand, minVal, maxVal float64) float64 {
	return r.Float64()*(maxVal-minVal) + minVal
}

// Distance returns the straight-line distance between two points.
func Distance(a, b components.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
