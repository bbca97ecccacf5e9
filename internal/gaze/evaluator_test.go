package gaze

import (
	"testing"
	"time"

	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

const tick = 900 * time.Millisecond

func sample(angle float64) *Sample {
	return &Sample{AngleDeg: angle, ThresholdDeg: 24}
}

func TestObserve_GraceThenPenalty(t *testing.T) {
	e := NewEvaluator(DefaultParams(domain.EnvDesk))

	out := e.Observe(t0, sample(40), domain.LevelMedium)
	assert.True(t, out.Away)
	assert.True(t, out.InGrace)
	assert.Zero(t, out.StressDelta)

	out = e.Observe(t0.Add(tick), sample(40), domain.LevelMedium)
	assert.True(t, out.InGrace, "900ms is still inside the 1100ms grace")

	out = e.Observe(t0.Add(2*tick), sample(40), domain.LevelMedium)
	require.False(t, out.InGrace)
	assert.True(t, out.EnteredPenalty)
	assert.True(t, out.Message)
	// 0.012/s * 0.9s * ramp 1.3 * angle factor (1+16/18)
	assert.InDelta(t, 0.012*0.9*1.3*(1+16.0/18), out.StressDelta, 1e-9)

	out = e.Observe(t0.Add(3*tick), sample(40), domain.LevelMedium)
	assert.False(t, out.EnteredPenalty, "penalty cue fires once per episode")
	assert.Greater(t, out.StressDelta, 0.0)
}

func TestObserve_ReturnAfterPenalty(t *testing.T) {
	e := NewEvaluator(DefaultParams(domain.EnvDesk))
	now := t0
	for i := 0; i < 4; i++ {
		e.Observe(now, sample(40), domain.LevelLow)
		now = now.Add(tick)
	}
	require.True(t, e.LookingAway())

	// EMA 40 -> 26, still above the release threshold of 20.
	out := e.Observe(now, sample(0), domain.LevelLow)
	assert.True(t, out.Away)
	now = now.Add(tick)

	out = e.Observe(now, sample(0), domain.LevelLow)
	assert.False(t, out.Away)
	assert.True(t, out.Returned)
	assert.False(t, e.LookingAway())
}

func TestObserve_ReturnDuringGraceIsSilent(t *testing.T) {
	e := NewEvaluator(DefaultParams(domain.EnvDesk))
	e.Observe(t0, sample(60), domain.LevelLow)
	e.Observe(t0.Add(tick), &Sample{AngleDeg: -100, ThresholdDeg: 24}, domain.LevelLow)
	out := e.Observe(t0.Add(2*tick), sample(-100), domain.LevelLow)
	assert.False(t, out.Away)
	assert.False(t, out.Returned)
}

func TestObserve_HysteresisBand(t *testing.T) {
	e := NewEvaluator(DefaultParams(domain.EnvDesk))
	now := t0
	for i := 0; i < 10; i++ {
		out := e.Observe(now, sample(27), domain.LevelLow)
		assert.False(t, out.Away, "27 deg is inside the band, not enough to start an episode")
		now = now.Add(tick)
	}

	e.Reset()
	now = t0
	e.Observe(now, sample(40), domain.LevelLow)
	for i := 0; i < 20; i++ {
		now = now.Add(tick)
		out := e.Observe(now, sample(22), domain.LevelLow)
		assert.True(t, out.Away, "22 deg stays above the release edge of 20")
	}
}

func TestObserve_NilSampleClearsEMA(t *testing.T) {
	e := NewEvaluator(DefaultParams(domain.EnvDesk))
	e.Observe(t0, sample(40), domain.LevelLow)
	out := e.Observe(t0.Add(tick), nil, domain.LevelLow)
	assert.False(t, out.Away)
	_, ok := e.Smoothed()
	assert.False(t, ok)
}

func TestObserve_StepIsCapped(t *testing.T) {
	e := NewEvaluator(DefaultParams(domain.EnvSupermarkt))
	e.Observe(t0, &Sample{AngleDeg: 80}, domain.LevelHigh)
	out := e.Observe(t0.Add(time.Minute), &Sample{AngleDeg: 80}, domain.LevelHigh)
	assert.Equal(t, 2*time.Second, out.AwayFor)
	// 0.015/s * 2s * ramp (1+2/6) * capped angle factor 2
	assert.InDelta(t, 0.015*2*(1+2.0/6)*2, out.StressDelta, 1e-9)
}

func TestObserve_DefaultThresholdPerEnvironment(t *testing.T) {
	assert.Equal(t, 24.0, DefaultParams(domain.EnvDesk).DefaultThreshold)
	assert.Equal(t, 22.0, DefaultParams(domain.EnvHoersaal).DefaultThreshold)
	assert.Equal(t, 26.0, DefaultParams(domain.EnvSupermarkt).DefaultThreshold)
	assert.Equal(t, 900*time.Millisecond, DefaultParams(domain.EnvSupermarkt).Grace)
}

func TestIdleEndsEpisode(t *testing.T) {
	e := NewEvaluator(DefaultParams(domain.EnvDesk))
	e.Observe(t0, sample(40), domain.LevelLow)
	e.Idle(t0.Add(tick))
	assert.False(t, e.LookingAway())
	assert.Zero(t, e.AwayFor())
}
