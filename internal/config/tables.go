package config

import (
	"math"
	"time"

	"github.com/alexanderramin/focussim/internal/domain"
)

// Intervals are the periods of the three stimulus timers.
type Intervals struct {
	Visual       time.Duration
	Audio        time.Duration
	Notification time.Duration
}

type baseIntervals struct {
	visual, audio, notification int
}

// Level base intervals in milliseconds. Level 0 never fires.
var levelBase = [4]baseIntervals{
	{999999, 999999, 999999},
	{5200, 6400, 16000},
	{3800, 4600, 12500},
	{2600, 3400, 10000},
}

type envCurve struct {
	visual, audio, notification          [4]float64
	minVisual, minAudio, minNotification int
}

var envCurves = map[domain.Environment]envCurve{
	domain.EnvDesk: {
		visual:          [4]float64{1.0, 0.92, 0.82, 0.70},
		audio:           [4]float64{1.0, 0.92, 0.82, 0.70},
		notification:    [4]float64{1.0, 0.96, 0.90, 0.86},
		minVisual:       1800,
		minAudio:        3200,
		minNotification: 8000,
	},
	domain.EnvHoersaal: {
		visual:          [4]float64{1.0, 0.95, 0.86, 0.76},
		audio:           [4]float64{1.0, 0.92, 0.82, 0.72},
		notification:    [4]float64{1.0, 0.95, 0.86, 0.78},
		minVisual:       2000,
		minAudio:        2800,
		minNotification: 8500,
	},
	domain.EnvSupermarkt: {
		visual:          [4]float64{1.0, 0.95, 0.85, 0.75},
		audio:           [4]float64{1.0, 0.92, 0.80, 0.70},
		notification:    [4]float64{1.0, 0.96, 0.88, 0.80},
		minVisual:       2100,
		minAudio:        2600,
		minNotification: 9000,
	},
}

// IntervalsFor derives the timer periods for a level in an environment:
// max(floor, round(base * multiplier)). Level 0 returns the inert base.
func IntervalsFor(level domain.Level, env domain.Environment) Intervals {
	idx := level.Index()
	base := levelBase[idx]
	if idx == 0 {
		return Intervals{
			Visual:       ms(base.visual),
			Audio:        ms(base.audio),
			Notification: ms(base.notification),
		}
	}
	curve, ok := envCurves[env]
	if !ok {
		curve = envCurves[domain.EnvDesk]
	}
	return Intervals{
		Visual:       ms(scaled(base.visual, curve.visual[idx], curve.minVisual)),
		Audio:        ms(scaled(base.audio, curve.audio[idx], curve.minAudio)),
		Notification: ms(scaled(base.notification, curve.notification[idx], curve.minNotification)),
	}
}

func scaled(base int, mult float64, floor int) int {
	return max(floor, int(math.Round(float64(base)*mult)))
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// DefaultFocusTargets are the canonical refocus targets per environment:
// the monitor on the desk, the nearest shelf, the lecturer.
var DefaultFocusTargets = map[domain.Environment]domain.Vec3{
	domain.EnvDesk:       {X: 0, Y: 1.22, Z: -0.85},
	domain.EnvHoersaal:   {X: 0, Y: 2.6, Z: -6.8},
	domain.EnvSupermarkt: {X: 0, Y: 1.2, Z: -2.5},
}
