package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/fireworks/components"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkCelebration  BookmarkType = "celebration"
	BookmarkParticlePeak BookmarkType = "particle_peak"
	BookmarkSalvoStorm   BookmarkType = "salvo_storm"
	BookmarkCalm         BookmarkType = "calm"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int          `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments in the show.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	lastPhase string
	calm      bool // Sky already reported empty
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkCelebration(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkParticlePeak(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkSalvoStorm(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkCalm(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	bd.lastPhase = stats.Phase

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkCelebration(stats WindowStats) *Bookmark {
	celebrating := components.PhaseCelebrating.String()
	if stats.Phase != celebrating || bd.lastPhase == celebrating {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkCelebration,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Celebration began with %d particles in the sky", stats.Particles),
	}
}

func (bd *BookmarkDetector) checkParticlePeak(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.ParticlesMax
	}
	avg := total / float64(len(history))
	if avg == 0 {
		return nil
	}

	if stats.ParticlesMax > avg*2.0 && stats.ParticlesMax >= 1000 {
		return &Bookmark{
			Type:        BookmarkParticlePeak,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Peak of %.0f particles is %.1fx average (%.0f)", stats.ParticlesMax, stats.ParticlesMax/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkSalvoStorm(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.ManualLaunches
	}
	avg := float64(total) / float64(len(history))

	if float64(stats.ManualLaunches) > avg*2.0 && stats.ManualLaunches >= 12 {
		return &Bookmark{
			Type:        BookmarkSalvoStorm,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d pointer rockets in one window (average %.1f)", stats.ManualLaunches, avg),
		}
	}
	return nil
}

// checkCalm fires once each time the sky empties after activity.
func (bd *BookmarkDetector) checkCalm(stats WindowStats) *Bookmark {
	if stats.Particles > 0 || stats.Rockets > 0 || stats.Pending > 0 {
		bd.calm = false
		return nil
	}
	if bd.calm || stats.Retired == 0 {
		return nil
	}
	bd.calm = true
	return &Bookmark{
		Type:        BookmarkCalm,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Sky empty after %d particles retired", stats.Retired),
	}
}
