package testutil

import (
	"time"

	"github.com/alexanderramin/focussim/internal/app"
	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/google/uuid"
)

// T0 is the reference instant used by fixtures.
var T0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

type SummaryOption func(*app.SessionSummary)

func WithEnvironment(env domain.Environment) SummaryOption {
	return func(s *app.SessionSummary) {
		s.Environment = env
		s.EnvironmentLabel = env.Label()
	}
}

func WithLevel(l domain.Level) SummaryOption {
	return func(s *app.SessionSummary) {
		s.Level = l
		s.LevelLabel = l.Label()
	}
}

// WithEndedAt moves the session so that it ends at t, keeping its length.
func WithEndedAt(t time.Time) SummaryOption {
	return func(s *app.SessionSummary) {
		d := s.EndedAt.Sub(s.StartedAt)
		s.EndedAt = t
		s.StartedAt = t.Add(-d)
	}
}

func WithEvents(events ...app.SessionEvent) SummaryOption {
	return func(s *app.SessionSummary) {
		s.Events = events
	}
}

func WithSource(src string) SummaryOption {
	return func(s *app.SessionSummary) {
		s.Source = src
	}
}

// NewTestSummary returns a ten-minute desk session at medium level.
func NewTestSummary(opts ...SummaryOption) *app.SessionSummary {
	s := &app.SessionSummary{
		ID:                   uuid.New().String(),
		Environment:          domain.EnvDesk,
		EnvironmentLabel:     domain.EnvDesk.Label(),
		Level:                domain.LevelMedium,
		LevelLabel:           domain.LevelMedium.Label(),
		StartedAt:            T0,
		EndedAt:              T0.Add(10 * time.Minute),
		DurationMin:          10,
		WastedMin:            9,
		TasksDoneThisSession: 1,
		TasksDoneTotal:       1,
		TasksTotal:           3,
		Refocuses:            2,
		GiveIns:              1,
		RefocusStreak:        1,
		StressNowPct:         21,
		StressPeakPct:        44,
		Seed:                 7,
		Source:               "interactive",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewTestEvent(kind app.EventKind, at time.Time, detail string) app.SessionEvent {
	return app.SessionEvent{At: at, Kind: kind, Detail: detail, Stress: 0.2}
}
