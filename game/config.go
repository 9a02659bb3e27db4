package game

import "github.com/pthm-cable/fireworks/components"

// Options holds configuration for game initialization.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string
	Headless       bool
	Phase          components.Phase // Phase to open the show in
}
