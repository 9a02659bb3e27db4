package systems

import (
	"testing"

	"github.com/pthm-cable/fireworks/config"
)

// testRig bundles an emitter with its stores.
type testRig struct {
	cfg       *config.Config
	particles *ParticleStore
	rockets   *RocketStore
	emitter   *Emitter
	hue       float64
}

func newTestRig(t *testing.T, rng Rand) *testRig {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	rig := &testRig{
		cfg:       cfg,
		particles: NewParticleStore(),
		rockets:   NewRocketStore(),
	}
	rig.emitter = NewEmitter(cfg, rng, rig.particles, rig.rockets, NewTextRasterizer(&cfg.Text), func() float64 { return rig.hue })
	return rig
}
