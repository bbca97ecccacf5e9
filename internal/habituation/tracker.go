// Package habituation models decaying familiarity with repeated stimuli.
package habituation

import (
	"math"
	"time"
)

const (
	HalfLife    = 12 * time.Second
	Steepness   = 0.65
	MinFactor   = 0.35
	RerollBelow = 0.60
	SkipBelow   = 0.55
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type key struct {
	kind string
	id   string
}

type entry struct {
	count  float64
	lastAt time.Time
}

// Tracker keeps one exponentially decaying counter per (kind, id). Decay
// is computed on read, so no background timer is needed.
type Tracker struct {
	clock   Clock
	entries map[key]entry
}

func NewTracker(clock Clock) *Tracker {
	return &Tracker{clock: clock, entries: make(map[key]entry)}
}

// Count returns the decayed count for (kind, id).
func (t *Tracker) Count(kind, id string) float64 {
	e, ok := t.entries[key{kind, id}]
	if !ok {
		return 0
	}
	return decay(e, t.clock.Now())
}

// Note records one more exposure.
func (t *Tracker) Note(kind, id string) {
	now := t.clock.Now()
	k := key{kind, id}
	e := t.entries[k]
	t.entries[k] = entry{count: decay(e, now) + 1, lastAt: now}
}

// Factor is the damping multiplier in [MinFactor, 1].
func (t *Tracker) Factor(kind, id string) float64 {
	f := 1 / (1 + Steepness*t.Count(kind, id))
	return math.Max(MinFactor, math.Min(1, f))
}

// Reset forgets every counter.
func (t *Tracker) Reset() {
	t.entries = make(map[key]entry)
}

func decay(e entry, now time.Time) float64 {
	if e.count == 0 {
		return 0
	}
	elapsed := now.Sub(e.lastAt)
	if elapsed <= 0 {
		return e.count
	}
	return e.count * math.Pow(0.5, float64(elapsed)/float64(HalfLife))
}
