package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a project progress bar like [████░░░░]  45%.
// Percentages outside 0-100 are clamped. The bar is red below 33, yellow
// below 66 and green from there on.
func RenderProgress(percent, width int) string {
	percent = max(0, min(percent, 100))
	width = max(width, 2)

	filled := percent * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case percent < 33:
		style = StyleRed
	case percent < 66:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), percent)
}

// RenderRatio renders "n/total" with a compact bar, used for survey turnout.
func RenderRatio(n, total, width int) string {
	pct := 0
	if total > 0 {
		pct = n * 100 / total
	}
	return fmt.Sprintf("%s %d/%d", RenderProgress(pct, width), n, total)
}
