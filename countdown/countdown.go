// Package countdown sequences the show: waiting, a short intro, a ten second
// countdown with one text burst per second, then the celebration.
package countdown

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/pthm-cable/fireworks/components"
	"github.com/pthm-cable/fireworks/config"
)

// Host receives phase changes and text bursts.
// engine.Engine satisfies it.
type Host interface {
	SetPhase(p components.Phase)
	RequestTextBurst(text string) int
}

// Sequencer drives the countdown from the frame loop.
type Sequencer struct {
	host Host

	start    int
	intro    time.Duration
	interval time.Duration

	phase components.Phase
	count int
	clock time.Duration // Time spent in the current step
}

// New creates a sequencer in the waiting phase.
func New(cfg *config.Config, host Host) *Sequencer {
	return &Sequencer{
		host:     host,
		start:    cfg.Countdown.Start,
		intro:    cfg.Derived.IntroDuration,
		interval: cfg.Derived.CountInterval,
		phase:    components.PhaseWaiting,
	}
}

// Phase returns the current phase.
func (s *Sequencer) Phase() components.Phase {
	return s.phase
}

// Count returns the number currently shown while counting.
func (s *Sequencer) Count() int {
	return s.count
}

// Start begins the intro. It only has an effect while waiting.
func (s *Sequencer) Start() bool {
	if s.phase != components.PhaseWaiting {
		return false
	}
	slog.Info("countdown started", "from", s.start)
	s.clock = 0
	if s.intro <= 0 {
		s.beginCounting()
		return true
	}
	s.setPhase(components.PhaseIntro)
	return true
}

// Restart returns to waiting from any phase.
func (s *Sequencer) Restart() {
	s.clock = 0
	s.count = 0
	s.setPhase(components.PhaseWaiting)
}

// Celebrate jumps straight to the celebration, skipping the countdown.
func (s *Sequencer) Celebrate() {
	s.clock = 0
	s.count = 0
	s.setPhase(components.PhaseCelebrating)
}

// Advance moves the sequence forward by dt.
func (s *Sequencer) Advance(dt time.Duration) {
	switch s.phase {
	case components.PhaseIntro:
		s.clock += dt
		if s.clock >= s.intro {
			s.beginCounting()
		}
	case components.PhaseCounting:
		s.clock += dt
		for s.phase == components.PhaseCounting && s.clock >= s.interval {
			s.clock -= s.interval
			s.count--
			s.show()
		}
	}
}

func (s *Sequencer) beginCounting() {
	s.clock = 0
	s.count = s.start
	s.setPhase(components.PhaseCounting)
	s.show()
}

// show bursts the current number; bursting zero ends the countdown.
func (s *Sequencer) show() {
	s.host.RequestTextBurst(strconv.Itoa(s.count))
	if s.count <= 0 {
		slog.Info("countdown finished")
		s.setPhase(components.PhaseCelebrating)
	}
}

func (s *Sequencer) setPhase(p components.Phase) {
	s.phase = p
	s.host.SetPhase(p)
}
