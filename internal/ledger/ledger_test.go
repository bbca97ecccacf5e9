package ledger

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestAddStress_ClampsAndTracksPeak(t *testing.T) {
	l := New()
	l.AddStress(0.7)
	l.AddStress(0.6)
	assert.Equal(t, 1.0, l.Stress())
	l.AddStress(-2)
	assert.Equal(t, 0.0, l.Stress())
	assert.Equal(t, 1.0, l.Peak())
}

func TestGiveIn_Spiral(t *testing.T) {
	l := New()
	assert.Equal(t, 1.0, l.GiveIn(t0))
	assert.InDelta(t, 1.3, l.GiveIn(t0.Add(5*time.Second)), 1e-9)
	assert.InDelta(t, 1.6, l.GiveIn(t0.Add(10*time.Second)), 1e-9)
	assert.Equal(t, 3, l.SpiralCount())

	// 16s gap restarts the run.
	assert.Equal(t, 1.0, l.GiveIn(t0.Add(26*time.Second)))
	assert.Equal(t, 1, l.SpiralCount())
	assert.Equal(t, 4, l.Metrics(t0).GiveIns)
}

func TestGiveIn_MultiplierCapped(t *testing.T) {
	l := New()
	now := t0
	for i := 0; i < 20; i++ {
		l.GiveIn(now)
		now = now.Add(time.Second)
	}
	assert.Equal(t, MaxMultiplier, l.Multiplier())
}

func TestRefocus_Streak(t *testing.T) {
	l := New()
	assert.Equal(t, 1, l.Refocus(t0, true))
	assert.Equal(t, 2, l.Refocus(t0.Add(20*time.Second), true))
	assert.Equal(t, 1, l.Refocus(t0.Add(50*time.Second), true), "gap over 25s restarts")
	assert.Equal(t, 3, l.Metrics(t0).Refocuses)
}

func TestRefocus_NotCaughtKeepsStreakButMovesWindow(t *testing.T) {
	l := New()
	l.Refocus(t0, true)
	assert.Equal(t, 1, l.Refocus(t0.Add(20*time.Second), false))
	assert.Equal(t, 2, l.Refocus(t0.Add(40*time.Second), true))
}

func TestRefocus_StreakCapped(t *testing.T) {
	l := New()
	now := t0
	for i := 0; i < 15; i++ {
		l.Refocus(now, true)
		now = now.Add(time.Second)
	}
	assert.Equal(t, MaxStreak, l.Streak())
}

func TestArmBoost(t *testing.T) {
	l := New()
	l.Refocus(t0, true)
	l.ArmBoost(t0)
	b, ok := l.BoostAt(t0.Add(14 * time.Second))
	require.True(t, ok)
	assert.InDelta(t, 0.0075, b, 1e-9)
	_, ok = l.BoostAt(t0.Add(15 * time.Second))
	assert.False(t, ok)

	l.Refocus(t0.Add(time.Second), true)
	l.Refocus(t0.Add(2*time.Second), true)
	l.ArmBoost(t0.Add(2 * time.Second))
	b, _ = l.BoostAt(t0.Add(3 * time.Second))
	assert.InDelta(t, 0.045, b, 1e-9, "streak 3 triples the per-streak boost")
}

func TestBreakStreak(t *testing.T) {
	l := New()
	l.Refocus(t0, true)
	l.ArmBoost(t0)
	l.BreakStreak()
	assert.Equal(t, 0, l.Streak())
	_, ok := l.BoostAt(t0)
	assert.False(t, ok)
}

func TestWastedMinutes(t *testing.T) {
	l := New()
	l.AddWasted(10)
	l.AddWasted(-3)
	assert.Equal(t, 10, l.Metrics(t0).WastedMinutes)
}

func TestReset(t *testing.T) {
	l := New()
	l.AddStress(0.4)
	l.GiveIn(t0)
	l.Reset()
	m := l.Metrics(t0)
	assert.Equal(t, Metrics{Multiplier: 1}, m)
}

// Property: arbitrary mutation sequences keep every bounded value in range.
func TestLedgerProperty_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	l := New()
	now := t0
	for i := 0; i < 5000; i++ {
		now = now.Add(time.Duration(rng.Intn(30000)) * time.Millisecond)
		switch rng.Intn(4) {
		case 0:
			l.AddStress(rng.Float64()*0.4 - 0.2)
		case 1:
			l.GiveIn(now)
		case 2:
			l.Refocus(now, rng.Intn(2) == 0)
		case 3:
			l.ResetSpiral()
		}
		require.GreaterOrEqual(t, l.Stress(), 0.0)
		require.LessOrEqual(t, l.Stress(), 1.0)
		require.GreaterOrEqual(t, l.Multiplier(), 1.0)
		require.LessOrEqual(t, l.Multiplier(), MaxMultiplier)
		require.GreaterOrEqual(t, l.Streak(), 0)
		require.LessOrEqual(t, l.Streak(), MaxStreak)
	}
}

func TestBand(t *testing.T) {
	assert.Equal(t, BandCalm, Band(0.1))
	assert.Equal(t, BandTense, Band(0.5))
	assert.Equal(t, BandOverwhelmed, Band(0.7))
}
