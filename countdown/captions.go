package countdown

import "github.com/pthm-cable/fireworks/components"

// Caption is one line of on-screen text for a phase.
type Caption struct {
	Text string
	Size int32
	Hint bool // Key hint, drawn small at the bottom of the screen
}

// Captions returns the lines shown over the sky during phase.
// Counting shows none: the numbers are drawn in particles.
func Captions(phase components.Phase, year string) []Caption {
	switch phase {
	case components.PhaseWaiting:
		return []Caption{
			{Text: "Ready for the countdown?", Size: 36},
			{Text: "Press Enter to begin", Size: 18, Hint: true},
		}
	case components.PhaseIntro:
		return []Caption{{Text: "Get ready...", Size: 36}}
	case components.PhaseCelebrating:
		c := []Caption{{Text: "Happy New Year", Size: 72}}
		if year != "" {
			c = append(c, Caption{Text: year, Size: 120})
		}
		return append(c, Caption{Text: "Press R to restart", Size: 16, Hint: true})
	}
	return nil
}
