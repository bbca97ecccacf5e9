// Package gaze turns a per-tick "angle to focus target" signal into a
// smoothed, debounced looking-away decision and the stress it costs.
package gaze

import (
	"math"
	"time"

	"github.com/alexanderramin/focussim/internal/domain"
)

// Sample is one reading from the gaze collaborator.
type Sample struct {
	AngleDeg     float64
	ThresholdDeg float64
	// Target is the position of the nearest focus target, if known.
	Target *domain.Vec3
}

// Params tunes the evaluator for one environment.
type Params struct {
	Alpha            float64
	MarginDeg        float64
	Grace            time.Duration
	DefaultThreshold float64
	MaxStep          time.Duration
	MessageEvery     time.Duration
}

// DefaultParams returns the evaluator settings for env.
func DefaultParams(env domain.Environment) Params {
	p := Params{
		Alpha:            0.35,
		MarginDeg:        4,
		Grace:            1100 * time.Millisecond,
		DefaultThreshold: 24,
		MaxStep:          2 * time.Second,
		MessageEvery:     700 * time.Millisecond,
	}
	switch env {
	case domain.EnvHoersaal:
		p.DefaultThreshold = 22
	case domain.EnvSupermarkt:
		p.Grace = 900 * time.Millisecond
		p.DefaultThreshold = 26
	}
	return p
}

// Outcome describes what happened on one Observe call.
type Outcome struct {
	Smoothed float64
	Away     bool
	AwayFor  time.Duration
	// InGrace is set while away but not yet penalized.
	InGrace bool
	// EnteredPenalty fires once per looking-away episode.
	EnteredPenalty bool
	// Message is true when the throttled "looking away" message is due.
	Message bool
	// Returned is set when a penalized episode ends.
	Returned    bool
	StressDelta float64
	Target      *domain.Vec3
}

// Evaluator holds the EMA and hysteresis state between ticks.
type Evaluator struct {
	p         Params
	ema       float64
	hasEMA    bool
	away      bool
	awayFor   time.Duration
	penalized bool
	lastAt    time.Time
	lastMsgAt time.Time
}

func NewEvaluator(p Params) *Evaluator {
	return &Evaluator{p: p}
}

// Observe consumes the sample taken at now. A nil sample means no focus
// target was visible; it clears the EMA and counts as looking at the task.
func (e *Evaluator) Observe(now time.Time, s *Sample, level domain.Level) Outcome {
	dt := e.step(now)

	if s == nil {
		e.hasEMA = false
	} else if !e.hasEMA || math.IsNaN(e.ema) {
		e.ema = s.AngleDeg
		e.hasEMA = true
	} else {
		e.ema = e.p.Alpha*s.AngleDeg + (1-e.p.Alpha)*e.ema
	}

	out := Outcome{}
	var threshold float64
	if s != nil {
		out.Smoothed = e.ema
		out.Target = s.Target
		threshold = s.ThresholdDeg
		if threshold <= 0 {
			threshold = e.p.DefaultThreshold
		}
	}

	awayNow := false
	if s != nil {
		if e.away {
			awayNow = e.ema > threshold-e.p.MarginDeg
		} else {
			awayNow = e.ema > threshold+e.p.MarginDeg
		}
	}

	if !awayNow {
		out.Returned = e.away && e.penalized
		e.clearEpisode()
		return out
	}

	if !e.away {
		e.awayFor = 0
		e.penalized = false
		e.lastMsgAt = now
	}
	e.away = true
	e.awayFor += dt
	out.Away = true
	out.AwayFor = e.awayFor

	if e.awayFor < e.p.Grace {
		out.InGrace = true
		return out
	}

	if !e.penalized {
		e.penalized = true
		out.EnteredPenalty = true
	}
	if now.Sub(e.lastMsgAt) > e.p.MessageEvery {
		e.lastMsgAt = now
		out.Message = true
	}

	dtSec := dt.Seconds()
	awaySec := e.awayFor.Seconds()
	rate := 0.006 + 0.003*float64(level.Index())
	ramp := math.Min(2.2, 1+awaySec/6)
	overshoot := math.Max(0, e.ema-threshold)
	angleFactor := math.Min(2.0, 1+overshoot/18)
	out.StressDelta = rate * dtSec * ramp * angleFactor
	return out
}

// Idle is called on ticks where the user is not supposed to be working.
// It keeps the step clock current and ends any episode without feedback.
func (e *Evaluator) Idle(now time.Time) {
	e.step(now)
	e.clearEpisode()
}

// Reset returns the evaluator to its initial state.
func (e *Evaluator) Reset() {
	*e = Evaluator{p: e.p}
}

// LookingAway reports whether an episode is in progress.
func (e *Evaluator) LookingAway() bool { return e.away }

// AwayFor is the length of the current episode.
func (e *Evaluator) AwayFor() time.Duration { return e.awayFor }

// Smoothed returns the EMA and whether one exists.
func (e *Evaluator) Smoothed() (float64, bool) { return e.ema, e.hasEMA }

func (e *Evaluator) step(now time.Time) time.Duration {
	if e.lastAt.IsZero() {
		e.lastAt = now
	}
	dt := now.Sub(e.lastAt)
	if dt < 0 {
		dt = 0
	}
	if dt > e.p.MaxStep {
		dt = e.p.MaxStep
	}
	e.lastAt = now
	return dt
}

func (e *Evaluator) clearEpisode() {
	e.away = false
	e.awayFor = 0
	e.penalized = false
}
