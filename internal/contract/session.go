package contract

import (
	"time"

	"github.com/alexanderramin/focussim/internal/app"
)

type GaveInMeta = app.GaveInMeta

// NewGaveInMeta returns give-in metadata with the default severity.
func NewGaveInMeta(label string) GaveInMeta {
	return GaveInMeta{Severity: 1.0, Label: label}
}

type TaskView = app.TaskView

type Windows = app.Windows

type Snapshot = app.Snapshot

type EventKind = app.EventKind

const (
	EventGaveIn        EventKind = app.EventGaveIn
	EventRefocus       EventKind = app.EventRefocus
	EventInterrupt     EventKind = app.EventInterrupt
	EventHyperfocus    EventKind = app.EventHyperfocus
	EventTaskCompleted EventKind = app.EventTaskCompleted
	EventTimeBlindness EventKind = app.EventTimeBlindness
	EventPileUp        EventKind = app.EventPileUp
	EventLevelChanged  EventKind = app.EventLevelChanged
)

type SessionEvent = app.SessionEvent

type SessionSummary = app.SessionSummary

type HistoryFilter = app.HistoryFilter

// NewHistoryFilter returns a filter listing the most recent sessions.
func NewHistoryFilter() HistoryFilter {
	return HistoryFilter{Limit: 20}
}

// SummaryJSON is the machine-readable form of a SessionSummary.
type SummaryJSON struct {
	ID                   string      `json:"id,omitempty"`
	Environment          string      `json:"environment"`
	EnvironmentLabel     string      `json:"environment_label"`
	Level                int         `json:"level"`
	LevelLabel           string      `json:"level_label"`
	StartedAt            time.Time   `json:"started_at"`
	EndedAt              time.Time   `json:"ended_at"`
	DurationMin          int         `json:"duration_min"`
	WastedMin            int         `json:"wasted_min"`
	TasksDoneThisSession int         `json:"tasks_done_this_session"`
	TasksDoneTotal       int         `json:"tasks_done_total"`
	TasksTotal           int         `json:"tasks_total"`
	Refocuses            int         `json:"refocus"`
	GiveIns              int         `json:"give_ins"`
	RefocusStreak        int         `json:"refocus_streak"`
	StressNowPct         int         `json:"stress_now_pct"`
	StressPeakPct        int         `json:"stress_peak_pct"`
	Seed                 int64       `json:"seed,omitempty"`
	Source               string      `json:"source,omitempty"`
	Events               []EventJSON `json:"events,omitempty"`
}

type EventJSON struct {
	At     time.Time `json:"at"`
	Kind   string    `json:"kind"`
	Detail string    `json:"detail,omitempty"`
	Stress float64   `json:"stress"`
}

// NewSummaryJSON converts s for JSON output.
func NewSummaryJSON(s SessionSummary) SummaryJSON {
	out := SummaryJSON{
		ID:                   s.ID,
		Environment:          string(s.Environment),
		EnvironmentLabel:     s.EnvironmentLabel,
		Level:                int(s.Level),
		LevelLabel:           s.LevelLabel,
		StartedAt:            s.StartedAt,
		EndedAt:              s.EndedAt,
		DurationMin:          s.DurationMin,
		WastedMin:            s.WastedMin,
		TasksDoneThisSession: s.TasksDoneThisSession,
		TasksDoneTotal:       s.TasksDoneTotal,
		TasksTotal:           s.TasksTotal,
		Refocuses:            s.Refocuses,
		GiveIns:              s.GiveIns,
		RefocusStreak:        s.RefocusStreak,
		StressNowPct:         s.StressNowPct,
		StressPeakPct:        s.StressPeakPct,
		Seed:                 s.Seed,
		Source:               s.Source,
	}
	for _, e := range s.Events {
		out.Events = append(out.Events, EventJSON{At: e.At, Kind: string(e.Kind), Detail: e.Detail, Stress: e.Stress})
	}
	return out
}
