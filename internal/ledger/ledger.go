// Package ledger tracks stress, the give-in spiral, the refocus streak and
// the session's time accounting.
package ledger

import (
	"math"
	"time"

	"github.com/alexanderramin/focussim/internal/domain"
)

const (
	SpiralWindow  = 15 * time.Second
	StreakWindow  = 25 * time.Second
	MaxMultiplier = 3.0
	MaxStreak     = 10
)

// Ledger is the stress and streak bookkeeping of one session. Stress stays
// in [0,1], the spiral multiplier in [1,3] and the streak in [0,10] after
// every mutation.
type Ledger struct {
	stress float64
	peak   float64

	spiralCount   int
	multiplier    float64
	lastGiveInAt  time.Time
	streak        int
	boost         float64
	boostUntil    time.Time
	lastRefocusAt time.Time

	wastedSeconds int
	giveIns       int
	refocuses     int
}

func New() *Ledger {
	return &Ledger{multiplier: 1}
}

// Reset clears everything for a fresh session.
func (l *Ledger) Reset() {
	*l = Ledger{multiplier: 1}
}

func (l *Ledger) Stress() float64 { return l.stress }

func (l *Ledger) Peak() float64 { return l.peak }

// AddStress applies a signed delta and clamps the result.
func (l *Ledger) AddStress(delta float64) float64 {
	l.stress = domain.Clamp01(l.stress + delta)
	if l.stress > l.peak {
		l.peak = l.stress
	}
	return l.stress
}

// GiveIn records a give-in at now and returns the spiral multiplier that
// applies to it. Give-ins less than SpiralWindow apart extend the run;
// otherwise the run restarts at one.
func (l *Ledger) GiveIn(now time.Time) float64 {
	l.giveIns++
	if !l.lastGiveInAt.IsZero() && now.Sub(l.lastGiveInAt) < SpiralWindow {
		l.spiralCount++
		l.multiplier = math.Min(MaxMultiplier, 1+0.3*float64(l.spiralCount-1))
	} else {
		l.spiralCount = 1
		l.multiplier = 1
	}
	l.lastGiveInAt = now
	return l.multiplier
}

func (l *Ledger) Multiplier() float64 { return l.multiplier }

func (l *Ledger) SpiralCount() int { return l.spiralCount }

// ResetSpiral ends the current give-in run.
func (l *Ledger) ResetSpiral() {
	l.spiralCount = 0
	l.multiplier = 1
}

// Refocus records a refocus at now. When caught is set (the user pulled
// themselves out of procrastination) the streak grows if the previous
// refocus was within StreakWindow and restarts at one otherwise.
func (l *Ledger) Refocus(now time.Time, caught bool) int {
	l.refocuses++
	if caught {
		next := 1
		if !l.lastRefocusAt.IsZero() && now.Sub(l.lastRefocusAt) <= StreakWindow {
			next = l.streak + 1
		}
		l.streak = domain.ClampInt(next, 1, MaxStreak)
	}
	l.lastRefocusAt = now
	return l.streak
}

func (l *Ledger) Streak() int { return l.streak }

// ArmBoost sets the temporary hyperfocus-chance boost from the streak.
func (l *Ledger) ArmBoost(now time.Time) {
	mult := 1.5
	if l.streak >= 3 {
		mult = 3
	}
	l.boost = 0.005 * float64(l.streak) * mult
	l.boostUntil = now.Add(15*time.Second + time.Duration(l.streak-1)*3*time.Second)
}

// BoostAt returns the boost if it is still active at now.
func (l *Ledger) BoostAt(now time.Time) (float64, bool) {
	if now.Before(l.boostUntil) {
		return l.boost, true
	}
	return 0, false
}

// BreakStreak drops the streak and any pending boost.
func (l *Ledger) BreakStreak() {
	l.streak = 0
	l.boost = 0
	l.boostUntil = time.Time{}
}

// AddWasted accounts minutes lost to a distraction.
func (l *Ledger) AddWasted(minutes int) {
	if minutes > 0 {
		l.wastedSeconds += minutes * 60
	}
}

// Metrics is a read-only view of the ledger.
type Metrics struct {
	Stress        float64
	StressPeak    float64
	Multiplier    float64
	SpiralCount   int
	Streak        int
	Boost         float64
	WastedMinutes int
	GiveIns       int
	Refocuses     int
}

func (l *Ledger) Metrics(now time.Time) Metrics {
	boost, _ := l.BoostAt(now)
	return Metrics{
		Stress:        l.stress,
		StressPeak:    math.Max(l.peak, l.stress),
		Multiplier:    l.multiplier,
		SpiralCount:   l.spiralCount,
		Streak:        l.streak,
		Boost:         boost,
		WastedMinutes: int(math.Round(float64(l.wastedSeconds) / 60)),
		GiveIns:       l.giveIns,
		Refocuses:     l.refocuses,
	}
}
