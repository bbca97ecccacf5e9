package cli

import (
	"fmt"

	"github.com/alexanderramin/focussim/internal/cli/formatter"
	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// focussimHuhTheme returns a huh theme matching the formatter palette.
func focussimHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func environmentOptions() []huh.Option[domain.Environment] {
	opts := make([]huh.Option[domain.Environment], 0, len(domain.Environments))
	for _, env := range domain.Environments {
		opts = append(opts, huh.NewOption(env.Label(), env))
	}
	return opts
}

// levelOptions lists the active levels; level 0 would end the session at once.
func levelOptions() []huh.Option[domain.Level] {
	levels := []domain.Level{domain.LevelLow, domain.LevelMedium, domain.LevelHigh}
	opts := make([]huh.Option[domain.Level], 0, len(levels))
	for _, l := range levels {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%d · %s", int(l), l.Label()), l))
	}
	return opts
}

// sessionSetupForm asks for the environment and level of a new session.
// The pointed-to values are the preselected answers.
func sessionSetupForm(env *domain.Environment, level *domain.Level) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.Environment]().
				Title("Umgebung").
				Options(environmentOptions()...).
				Value(env),
			huh.NewSelect[domain.Level]().
				Title("Ablenkungsstufe").
				Description("Wie stark zerrt die Umgebung an deiner Aufmerksamkeit?").
				Options(levelOptions()...).
				Value(level),
		),
	).WithTheme(focussimHuhTheme()).WithShowHelp(false)
}
