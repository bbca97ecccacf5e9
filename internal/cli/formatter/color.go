package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StressStyle colors a stress value in [0,1]: green while calm, yellow
// once it builds up, red when it dominates.
func StressStyle(stress float64) lipgloss.Style {
	switch {
	case stress >= 0.66:
		return StyleRed
	case stress >= 0.33:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// StateBadge returns a colored indicator for the task state, such as
// "● WORKING".
func StateBadge(state domain.TaskState) string {
	switch state {
	case domain.StateHyperfocus:
		return StylePurple.Render("◆ HYPERFOCUS")
	case domain.StateWorking:
		return StyleGreen.Render("● WORKING")
	case domain.StateProcrastinating:
		return StyleYellow.Render("○ PROCRASTINATING")
	default:
		return StyleDim.Render("· IDLE")
	}
}

// LevelBadge renders the distraction level with its German label.
func LevelBadge(level domain.Level) string {
	label := fmt.Sprintf("%s (%d)", level.Label(), int(level))
	switch level {
	case domain.LevelHigh:
		return StyleRed.Render(label)
	case domain.LevelMedium:
		return StyleYellow.Render(label)
	case domain.LevelLow:
		return StyleGreen.Render(label)
	default:
		return StyleDim.Render(label)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
