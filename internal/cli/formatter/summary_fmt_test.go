package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/focussim/internal/app"
	"github.com/alexanderramin/focussim/internal/config"
	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/alexanderramin/focussim/internal/scenario"
	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

func sampleSummary() *app.SessionSummary {
	return &app.SessionSummary{
		ID:                   "0f8e3c2a-1111-2222-3333-444455556666",
		Environment:          domain.EnvDesk,
		EnvironmentLabel:     "Schreibtisch",
		Level:                domain.LevelHigh,
		LevelLabel:           "Stark",
		StartedAt:            t0.Add(-25 * time.Minute),
		EndedAt:              t0,
		DurationMin:          25,
		WastedMin:            31,
		TasksDoneThisSession: 1,
		TasksDoneTotal:       1,
		TasksTotal:           4,
		Refocuses:            3,
		GiveIns:              4,
		RefocusStreak:        2,
		StressNowPct:         41,
		StressPeakPct:        88,
		Seed:                 42,
		Source:               "interactive",
		Events: []app.SessionEvent{
			{At: t0.Add(-24 * time.Minute), Kind: app.EventGaveIn, Detail: "YouTube", Stress: 0.3},
			{At: t0.Add(-20*time.Minute + 5*time.Second), Kind: app.EventRefocus, Stress: 0.15},
		},
	}
}

func TestFormatSummary_ShowsMetrics(t *testing.T) {
	out := FormatSummary(sampleSummary())

	assert.Contains(t, out, "SITZUNG BEENDET")
	assert.Contains(t, out, "Schreibtisch")
	assert.Contains(t, out, "Stark")
	assert.Contains(t, out, "25m")
	assert.Contains(t, out, "31m")
	assert.Contains(t, out, "1 in dieser Sitzung, 1/4 gesamt")
	assert.Contains(t, out, "3 (Serie 2)")
	assert.Contains(t, out, " 88%")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "0f8e3c2a-1111-2222-3333-444455556666")
}

func TestFormatSummary_Nil(t *testing.T) {
	assert.Contains(t, FormatSummary(nil), "not active")
}

func TestFormatEvents_OffsetsFromStart(t *testing.T) {
	s := sampleSummary()
	out := FormatEvents(s.Events, s.StartedAt)

	assert.Contains(t, out, "01:00")
	assert.Contains(t, out, "05:05")
	assert.Contains(t, out, "gave_in")
	assert.Contains(t, out, "YouTube")
	assert.Contains(t, out, "30%")

	assert.Contains(t, FormatEvents(nil, t0), "No events")
}

func TestFormatSessionDetail_IncludesTimeline(t *testing.T) {
	out := FormatSessionDetail(sampleSummary())
	assert.Contains(t, out, "EVENTS")
	assert.Contains(t, out, "refocus")
}

func TestFormatHistory(t *testing.T) {
	a := *sampleSummary()
	b := *sampleSummary()
	b.ID = "7c1d0000-aaaa-bbbb-cccc-ddddeeeeffff"
	b.EnvironmentLabel = "Hörsaal"
	b.Level = domain.LevelLow
	b.WastedMin = 4
	b.Source = "scenario"

	out := FormatHistory([]app.SessionSummary{a, b}, t0.Add(10*time.Minute))

	assert.Contains(t, out, "HISTORY")
	assert.Contains(t, out, "0f8e3c2a")
	assert.NotContains(t, out, "0f8e3c2a-1111")
	assert.Contains(t, out, "Hörsaal")
	assert.Contains(t, out, "Leicht (1)")
	assert.Contains(t, out, "10m ago")
	assert.Contains(t, out, "scenario")
	assert.Contains(t, out, "2 sessions, 35m lost in total")

	assert.Contains(t, FormatHistory(nil, t0), "No archived sessions")
}

func TestFormatIntervals_Desk(t *testing.T) {
	out := FormatIntervals(config.DefaultConfig(), domain.EnvDesk)

	assert.Contains(t, out, "Schreibtisch")
	// Level 1 at the desk: visual 5200*0.92, audio 6400*0.92, notification 16000*0.96.
	assert.Contains(t, out, "4784ms")
	assert.Contains(t, out, "5888ms")
	assert.Contains(t, out, "15360ms")
	// Phone to-do spacing derives from the notification interval.
	assert.Contains(t, out, "20736ms")
}

func TestFormatRunStats(t *testing.T) {
	out := FormatRunStats(scenario.Stats{Effects: 12, Sounds: 5, Messages: 3, Cues: 2, Tasks: 1})
	assert.Contains(t, out, "effects 12")
	assert.Contains(t, out, "injected tasks 1")
}
