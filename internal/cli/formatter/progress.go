package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a task progress bar like [████░░░░] 45%.
// Green above 66%, yellow from 33%, red below.
func RenderProgress(pct float64, width int) string {
	pct, filled, empty := barCells(pct, width)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderStressMeter renders stress on the same bar, with the colors
// inverted: a full meter is bad.
func RenderStressMeter(stress float64, width int) string {
	stress, filled, empty := barCells(stress, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)
	return fmt.Sprintf("[%s] %3.0f%%", StressStyle(stress).Render(bar), stress*100)
}

func barCells(pct float64, width int) (float64, int, int) {
	pct = min(1, max(0, pct))
	width = max(2, width)
	filled := min(width, int(pct*float64(width)))
	return pct, filled, width - filled
}
