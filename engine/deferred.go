package engine

import (
	"sort"
	"time"
)

// deferred is a callback due at a point on the engine clock.
type deferred struct {
	at time.Duration
	fn func()
}

// DeferredQueue holds callbacks keyed by engine clock time.
// Callbacks run on the frame thread, in due order, ties in scheduling order.
type DeferredQueue struct {
	entries []deferred
}

// Schedule adds fn to run once the clock reaches at.
func (q *DeferredQueue) Schedule(at time.Duration, fn func()) {
	d := deferred{at: at, fn: fn}

	// Insert after every entry due at or before at
	i := sort.Search(len(q.entries), func(i int) bool {
		return q.entries[i].at > at
	})
	q.entries = append(q.entries, deferred{})
	copy(q.entries[i+1:], q.entries[i:])
	q.entries[i] = d
}

// RunDue runs and drops every callback due at or before now.
// Callbacks scheduled while running are picked up if they are also due.
// Returns the number of callbacks run.
func (q *DeferredQueue) RunDue(now time.Duration) int {
	ran := 0
	for len(q.entries) > 0 && q.entries[0].at <= now {
		d := q.entries[0]
		q.entries = q.entries[1:]
		d.fn()
		ran++
	}
	return ran
}

// Cancel drops every pending callback and returns how many were dropped.
func (q *DeferredQueue) Cancel() int {
	n := len(q.entries)
	q.entries = nil
	return n
}

// Len returns the number of pending callbacks.
func (q *DeferredQueue) Len() int {
	return len(q.entries)
}

// NextDue returns when the earliest pending callback is due.
func (q *DeferredQueue) NextDue() (time.Duration, bool) {
	if len(q.entries) == 0 {
		return 0, false
	}
	return q.entries[0].at, true
}
