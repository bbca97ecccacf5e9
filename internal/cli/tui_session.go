package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focussim/internal/app"
	"github.com/alexanderramin/focussim/internal/cli/formatter"
	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/alexanderramin/focussim/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultFrame  = 250 * time.Millisecond
	feedLines     = 6
	stressBarSize = 30
	taskBarSize   = 16
)

// ── messages ─────────────────────────────────────────────────────────────────

// frameMsg drives the snapshot poll.
type frameMsg time.Time

// snapshotMsg carries a freshly loaded snapshot.
type snapshotMsg struct {
	snap *app.Snapshot
	err  error
}

// actionDoneMsg reports the outcome of a user action.
type actionDoneMsg struct {
	err error
}

// stoppedMsg signals that the session ended and carries its summary.
type stoppedMsg struct {
	summary *app.SessionSummary
	err     error
}

// ── model ────────────────────────────────────────────────────────────────────

// sessionModel is the bubbletea Model of a live session. It never touches
// the simulation directly; every read and write goes through the service,
// which serializes onto the runner goroutine.
type sessionModel struct {
	svc  service.SimulationService
	feed *feedRenderer
	gaze *toggleGaze
	keys sessionKeys

	help    help.Model
	stress  progress.Model
	taskBar progress.Model
	input   textinput.Model

	frame  time.Duration
	width  int
	adding bool
	cursor int

	snap    *app.Snapshot
	status  string
	summary *app.SessionSummary
	err     error
	done    bool
}

func newSessionModel(svc service.SimulationService, feed *feedRenderer, g *toggleGaze, frame time.Duration) sessionModel {
	if frame <= 0 {
		frame = defaultFrame
	}
	ti := textinput.New()
	ti.Placeholder = "Neue Aufgabe"
	ti.CharLimit = 80
	ti.Prompt = "+ "

	return sessionModel{
		svc:  svc,
		feed: feed,
		gaze: g,
		keys: defaultSessionKeys(),
		help: help.New(),
		stress: progress.New(
			progress.WithGradient(string(formatter.ColorGreen), string(formatter.ColorRed)),
			progress.WithWidth(stressBarSize),
		),
		taskBar: progress.New(
			progress.WithSolidFill(string(formatter.ColorBlue)),
			progress.WithWidth(taskBarSize),
			progress.WithoutPercentage(),
		),
		input: ti,
		frame: frame,
	}
}

// Summary returns the summary of the ended session, if it ended.
func (m sessionModel) Summary() *app.SessionSummary { return m.summary }

func (m sessionModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.nextFrame())
}

func (m sessionModel) nextFrame() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m sessionModel) load() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		snap, err := svc.Snapshot(context.Background())
		return snapshotMsg{snap: snap, err: err}
	}
}

// act runs fn against the service and reloads the snapshot afterwards.
func (m sessionModel) act(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: fn(context.Background())}
	}
}

func (m sessionModel) stop(fn func(ctx context.Context) (*app.SessionSummary, error)) tea.Cmd {
	return func() tea.Msg {
		summary, err := fn(context.Background())
		return stoppedMsg{summary: summary, err: err}
	}
}

func (m sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(m.load(), m.nextFrame())

	case snapshotMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.snap = msg.snap
		m.cursor = min(m.cursor, max(0, len(m.snap.Tasks)-1))
		return m, nil

	case actionDoneMsg:
		m.status = ""
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		return m, m.load()

	case stoppedMsg:
		m.summary = msg.summary
		m.err = msg.err
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		if m.done {
			return m, nil
		}
		if m.adding {
			return m.updateInput(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m sessionModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.adding = false
		m.input.Reset()
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(m.input.Value())
		m.adding = false
		m.input.Reset()
		m.input.Blur()
		if text == "" {
			return m, nil
		}
		svc := m.svc
		return m, m.act(func(ctx context.Context) error {
			_, err := svc.AddTask(ctx, text)
			return err
		})
	case tea.KeyCtrlC:
		return m, m.stop(m.svc.Stop)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m sessionModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	svc := m.svc
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.stop(svc.Stop)

	case key.Matches(msg, m.keys.GaveIn):
		return m, m.act(func(ctx context.Context) error {
			return svc.GaveIn(ctx, app.GaveInMeta{Label: app.DefaultGiveInLabel})
		})

	case key.Matches(msg, m.keys.Refocus):
		return m, m.act(svc.Refocus)

	case key.Matches(msg, m.keys.LookAway):
		if m.gaze != nil {
			m.gaze.Toggle()
		}
		return m, m.load()

	case key.Matches(msg, m.keys.Pause):
		if m.snap != nil && m.snap.Paused {
			return m, m.act(svc.Resume)
		}
		return m, m.act(svc.Pause)

	case key.Matches(msg, m.keys.Level):
		level := domain.Level(msg.Runes[0] - '0')
		if level == domain.LevelOff {
			return m, m.stop(func(ctx context.Context) (*app.SessionSummary, error) {
				return svc.SetLevel(ctx, level)
			})
		}
		return m, m.act(func(ctx context.Context) error {
			_, err := svc.SetLevel(ctx, level)
			return err
		})

	case key.Matches(msg, m.keys.Add):
		m.adding = true
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Toggle):
		i := m.cursor
		return m, m.act(func(ctx context.Context) error { return svc.CompleteTask(ctx, i) })

	case key.Matches(msg, m.keys.Remove):
		i := m.cursor
		return m, m.act(func(ctx context.Context) error { return svc.RemoveTask(ctx, i) })

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.snap != nil && m.cursor < len(m.snap.Tasks)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

// ── rendering ────────────────────────────────────────────────────────────────

func (m sessionModel) View() string {
	if m.done {
		return ""
	}
	if m.snap == nil {
		return "\n  " + formatter.Dim("Starting session...") + "\n"
	}
	s := m.snap

	var b strings.Builder
	b.WriteString(m.viewHeader(s))
	b.WriteString("\n\n")
	b.WriteString(m.viewStress(s))
	b.WriteString("\n")
	if w := viewWindows(s); w != "" {
		b.WriteString(w + "\n")
	}
	if s.Message != "" {
		b.WriteString("\n  " + formatter.Bold(s.Message) + "\n")
	}
	if s.TimeBlindness != "" {
		b.WriteString("  " + formatter.StylePurple.Render("⏱ "+s.TimeBlindness) + "\n")
	}

	b.WriteString("\n" + formatter.Header("Aufgaben") + "\n")
	b.WriteString(m.viewTasks(s))
	if m.adding {
		b.WriteString("  " + m.input.View() + "\n")
	}

	if m.feed != nil {
		if lines := m.feed.Recent(feedLines); len(lines) > 0 {
			b.WriteString("\n" + formatter.Header("Reize") + "\n")
			for _, l := range lines {
				b.WriteString("  " + formatter.Dim(l) + "\n")
			}
		}
	}

	if m.status != "" {
		b.WriteString("\n  " + formatter.StyleRed.Render(m.status) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m sessionModel) viewHeader(s *app.Snapshot) string {
	parts := []string{
		formatter.StyleHeader.Render("FOCUSSIM"),
		formatter.Bold(s.Environment.Label()),
		formatter.LevelBadge(s.Level),
		formatter.StateBadge(s.TaskState),
	}
	switch {
	case !s.Active:
		parts = append(parts, formatter.Dim("[INAKTIV]"))
	case s.Paused:
		parts = append(parts, formatter.StyleYellow.Render("[PAUSE]"))
	}
	if m.gaze != nil && m.gaze.Away() {
		parts = append(parts, formatter.StyleYellow.Render("👀 weggeschaut"))
	}
	if m.feed != nil {
		if name := m.feed.Ambient(); name != "" {
			parts = append(parts, formatter.Dim("♫ "+name))
		}
	}
	return strings.Join(parts, "  ")
}

func (m sessionModel) viewStress(s *app.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  Stress  %s  %s\n", m.stress.ViewAs(s.Stress), formatter.Dim(s.StressBand))
	fmt.Fprintf(&b, "  %s\n", formatter.Dim(fmt.Sprintf(
		"verloren %s · nachgegeben %d · refokus %d · serie %d · spirale ×%.1f",
		formatter.FormatMinutes(s.WastedMinutes), s.GiveIns, s.Refocuses, s.Streak, s.Multiplier)))
	if s.LookingAway {
		fmt.Fprintf(&b, "  %s\n", formatter.StyleYellow.Render(fmt.Sprintf("Blick abgewandt seit %.1fs", s.AwayFor.Seconds())))
	}
	return b.String()
}

func viewWindows(s *app.Snapshot) string {
	type window struct {
		on    bool
		label string
		until time.Time
		style lipgloss.Style
	}
	windows := []window{
		{s.HyperfocusActive, "HYPERFOKUS", s.Windows.HyperfocusUntil, formatter.StylePurple},
		{s.FocusModeActive, "FOKUS", s.Windows.FocusModeUntil, formatter.StyleGreen},
		{s.ShieldActive, "SCHILD", s.Windows.ShieldUntil, formatter.StyleBlue},
		{s.HardLockActive, "SPERRE", s.Windows.HardLockUntil, formatter.StyleBlue},
		{s.ReentryActive, "WIEDEREINSTIEG", s.Windows.ReentryUntil, formatter.StyleYellow},
	}
	var parts []string
	for _, w := range windows {
		if !w.on {
			continue
		}
		left := w.until.Sub(s.Now).Round(100 * time.Millisecond)
		parts = append(parts, w.style.Render(fmt.Sprintf("%s %.1fs", w.label, left.Seconds())))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, "  ")
}

func (m sessionModel) viewTasks(s *app.Snapshot) string {
	if len(s.Tasks) == 0 {
		return "  " + formatter.Dim("Keine Aufgaben. [a] fügt eine hinzu.") + "\n"
	}
	var b strings.Builder
	for i, t := range s.Tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleHeader.Render("> ")
		}
		check := "[ ]"
		if t.Completed {
			check = formatter.StyleGreen.Render("[x]")
		}
		text := t.Text
		if t.Active {
			text = formatter.Bold(text) + formatter.StyleHeader.Render(" ★")
		} else if t.Completed {
			text = formatter.Dim(text)
		}
		fmt.Fprintf(&b, "%s%s %s %3.0f%%  %s %s\n",
			cursor, check, m.taskBar.ViewAs(t.Progress), t.Progress*100, text, formatter.Dim(string(t.Kind)))
	}
	return b.String()
}
