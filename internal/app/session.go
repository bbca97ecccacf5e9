package app

import (
	"time"

	"github.com/alexanderramin/focussim/internal/domain"
)

// GaveInMeta describes the distraction the user gave in to. A
// non-positive Severity means 1.0.
type GaveInMeta struct {
	Severity float64
	Label    string
	Type     string
}

const DefaultGiveInLabel = "Ablenkung"

// SeverityOrDefault returns Severity, or 1.0 when unset.
func (m GaveInMeta) SeverityOrDefault() float64 {
	if m.Severity <= 0 {
		return 1.0
	}
	return m.Severity
}

type TaskView struct {
	Index     int
	Text      string
	Kind      domain.TaskKind
	Progress  float64
	Completed bool
	Active    bool
}

// Windows are the suppression and penalty windows of a session. A zero
// time means the window was never opened.
type Windows struct {
	StateUntil         time.Time
	HyperfocusUntil    time.Time
	ReentryUntil       time.Time
	ShieldUntil        time.Time
	HardLockUntil      time.Time
	FocusModeUntil     time.Time
	TimeBlindnessUntil time.Time
}

// Snapshot is a read-only copy of the session for display.
type Snapshot struct {
	Now         time.Time
	Environment domain.Environment
	Level       domain.Level
	Active      bool
	Paused      bool
	TaskState   domain.TaskState
	Windows     Windows

	HyperfocusActive bool
	ReentryActive    bool
	ShieldActive     bool
	HardLockActive   bool
	FocusModeActive  bool

	Stress        float64
	StressPeak    float64
	StressBand    string
	Multiplier    float64
	SpiralCount   int
	Streak        int
	Boost         float64
	WastedMinutes int
	GiveIns       int
	Refocuses     int

	LookingAway bool
	AwayFor     time.Duration

	ActiveIndex int
	Tasks       []TaskView
	// Message is the transient status line, empty once it expired.
	Message       string
	TimeBlindness string
}

// ActiveTask returns the active task view, if any.
func (s Snapshot) ActiveTask() (TaskView, bool) {
	for _, t := range s.Tasks {
		if t.Active {
			return t, true
		}
	}
	return TaskView{}, false
}

type EventKind string

const (
	EventGaveIn        EventKind = "gave_in"
	EventRefocus       EventKind = "refocus"
	EventInterrupt     EventKind = "interrupt"
	EventHyperfocus    EventKind = "hyperfocus"
	EventTaskCompleted EventKind = "task_completed"
	EventTimeBlindness EventKind = "time_blindness"
	EventPileUp        EventKind = "pile_up"
	EventLevelChanged  EventKind = "level_changed"
)

// SessionEvent is one notable moment of a session, kept for the archive.
type SessionEvent struct {
	ID        string
	SummaryID string
	At        time.Time
	Kind      EventKind
	Detail    string
	Stress    float64
}

// SessionSummary is produced when an active session stops.
type SessionSummary struct {
	ID                   string
	Environment          domain.Environment
	EnvironmentLabel     string
	Level                domain.Level
	LevelLabel           string
	StartedAt            time.Time
	EndedAt              time.Time
	DurationMin          int
	WastedMin            int
	TasksDoneThisSession int
	TasksDoneTotal       int
	TasksTotal           int
	Refocuses            int
	GiveIns              int
	RefocusStreak        int
	StressNowPct         int
	StressPeakPct        int
	Seed                 int64
	Source               string
	Events               []SessionEvent
}
