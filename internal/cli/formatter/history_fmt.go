package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/focussim/internal/app"
	"github.com/alexanderramin/focussim/internal/config"
	"github.com/alexanderramin/focussim/internal/domain"
)

// FormatHistory renders archived sessions, newest first.
func FormatHistory(summaries []app.SessionSummary, now time.Time) string {
	if len(summaries) == 0 {
		return Dim("No archived sessions.") + "\n"
	}

	headers := []string{"ID", "ENDED", "ENV", "LEVEL", "MIN", "LOST", "GAVE IN", "REFOCUS", "PEAK", "SOURCE"}
	rows := make([][]string, 0, len(summaries))
	totalWasted := 0
	for _, s := range summaries {
		totalWasted += s.WastedMin
		rows = append(rows, []string{
			TruncID(s.ID),
			HumanTimestamp(s.EndedAt, now),
			s.EnvironmentLabel,
			LevelBadge(s.Level),
			fmt.Sprintf("%d", s.DurationMin),
			fmt.Sprintf("%d", s.WastedMin),
			fmt.Sprintf("%d", s.GiveIns),
			fmt.Sprintf("%d", s.Refocuses),
			FormatPct(s.StressPeakPct),
			Dim(s.Source),
		})
	}

	out := RenderTable(headers, rows, 4, 5, 6, 7, 8)
	out += "\n" + Dim(fmt.Sprintf("%d sessions, %s lost in total", len(summaries), FormatMinutes(totalWasted))) + "\n"
	return RenderBox("History", out)
}

// FormatSessionDetail renders one archived session with its events.
func FormatSessionDetail(s *app.SessionSummary) string {
	out := FormatSummary(s) + "\n"
	out += Header("Events") + "\n"
	out += FormatEvents(s.Events, s.StartedAt)
	return out
}

// FormatIntervals renders the stimulus timer intervals of env for every
// active level.
func FormatIntervals(cfg config.Config, env domain.Environment) string {
	cfg.Environment = env
	headers := []string{"LEVEL", "VISUAL", "AUDIO", "NOTIFICATION", "PHONE POPUP", "PHONE TODO"}
	var rows [][]string
	for _, level := range []domain.Level{domain.LevelLow, domain.LevelMedium, domain.LevelHigh} {
		iv := cfg.Intervals(level)
		rows = append(rows, []string{
			LevelBadge(level),
			FormatMillis(iv.Visual),
			FormatMillis(iv.Audio),
			FormatMillis(iv.Notification),
			FormatMillis(cfg.PhonePopupMin(iv)),
			FormatMillis(cfg.PhoneTodoMin(iv)),
		})
	}
	return RenderBox("Intervals · "+env.Label(), RenderTable(headers, rows, 1, 2, 3, 4, 5))
}
