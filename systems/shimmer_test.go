package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/fireworks/components"
	"github.com/pthm-cable/fireworks/config"
)

func TestDisplayAlpha(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	rc := &cfg.Render

	// sin(ms * 0.02) = 1 at ms = 25π, -1 at 75π
	peak := 25 * math.Pi
	trough := 75 * math.Pi

	tests := []struct {
		name  string
		decay float64
		ms    float64
		want  float64
	}{
		{"fast decay ignores time", 0.01, trough, 0.5},
		{"at threshold no shimmer", 0.005, trough, 0.5},
		{"glitter peak", 0.003, peak, 0.5},
		{"glitter trough", 0.003, trough, 0.5 * 0.6},
		{"glitter zero phase", 0.003, 0, 0.5 * 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := components.Particle{Alpha: 0.5, Decay: tt.decay}
			got := DisplayAlpha(&p, tt.ms, rc)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DisplayAlpha = %v, want %v", got, tt.want)
			}
			if p.Alpha != 0.5 {
				t.Error("stored alpha modified")
			}
		})
	}
}
