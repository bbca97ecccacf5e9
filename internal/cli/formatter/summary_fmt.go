package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focussim/internal/app"
	"github.com/alexanderramin/focussim/internal/scenario"
)

const summaryBarWidth = 20

// FormatSummary renders the end-of-session report.
func FormatSummary(s *app.SessionSummary) string {
	if s == nil {
		return Dim("No session summary (the session was not active).") + "\n"
	}

	var b strings.Builder
	row := func(label, value string) {
		fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render(fmt.Sprintf("%-18s", label)), value)
	}

	row("Umgebung", Bold(s.EnvironmentLabel))
	row("Stufe", s.LevelLabel)
	row("Dauer", FormatMinutes(s.DurationMin))
	wasted := FormatMinutes(s.WastedMin)
	if s.WastedMin > 0 {
		wasted = StyleRed.Render(wasted)
	}
	row("Verloren", wasted)
	row("Aufgaben erledigt", fmt.Sprintf("%d in dieser Sitzung, %d/%d gesamt",
		s.TasksDoneThisSession, s.TasksDoneTotal, s.TasksTotal))
	row("Refokus", fmt.Sprintf("%d (Serie %d)", s.Refocuses, s.RefocusStreak))
	row("Nachgegeben", fmt.Sprintf("%d", s.GiveIns))
	row("Stress jetzt", RenderStressMeter(float64(s.StressNowPct)/100, summaryBarWidth))
	row("Stress Spitze", RenderStressMeter(float64(s.StressPeakPct)/100, summaryBarWidth))
	if s.Seed != 0 {
		row("Seed", Dim(fmt.Sprintf("%d", s.Seed)))
	}
	if s.ID != "" {
		row("Archiv", Dim(s.ID))
	}

	return RenderBox("Sitzung beendet", b.String())
}

// FormatEvents renders a session's event timeline relative to its start.
func FormatEvents(events []app.SessionEvent, startedAt time.Time) string {
	if len(events) == 0 {
		return Dim("No events recorded.") + "\n"
	}
	headers := []string{"T+", "EVENT", "STRESS", "DETAIL"}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			formatOffset(e.At.Sub(startedAt)),
			eventLabel(e.Kind),
			FormatPct(int(e.Stress*100 + 0.5)),
			e.Detail,
		})
	}
	return RenderTable(headers, rows, 0, 2)
}

// FormatRunStats renders what a scripted run asked the renderer to do.
func FormatRunStats(s scenario.Stats) string {
	return Dim(fmt.Sprintf("effects %d · sounds %d · messages %d · cues %d · injected tasks %d",
		s.Effects, s.Sounds, s.Messages, s.Cues, s.Tasks)) + "\n"
}

func formatOffset(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func eventLabel(k app.EventKind) string {
	switch k {
	case app.EventGaveIn, app.EventPileUp:
		return StyleRed.Render(string(k))
	case app.EventRefocus, app.EventTaskCompleted:
		return StyleGreen.Render(string(k))
	case app.EventHyperfocus:
		return StylePurple.Render(string(k))
	case app.EventInterrupt, app.EventTimeBlindness:
		return StyleYellow.Render(string(k))
	default:
		return StyleFg.Render(string(k))
	}
}
