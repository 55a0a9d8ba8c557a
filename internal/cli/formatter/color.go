package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/atelier/internal/domain"
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

// QuadrantStyle colors a quadrant by urgency: the default focal quadrant is
// red, the other high-acuity quadrant yellow.
func QuadrantStyle(q domain.Quadrant) lipgloss.Style {
	switch q {
	case domain.HighAcuityLowStrategic:
		return StyleRed
	case domain.HighAcuityHighStrategic:
		return StyleYellow
	case domain.LowAcuityHighStrategic:
		return StyleBlue
	default:
		return StyleDim
	}
}

// QuadrantBadge returns a short colored tag such as "● HA/LS".
func QuadrantBadge(q domain.Quadrant) string {
	var tag string
	switch q {
	case domain.HighAcuityHighStrategic:
		tag = "HA/HS"
	case domain.HighAcuityLowStrategic:
		tag = "HA/LS"
	case domain.LowAcuityHighStrategic:
		tag = "LA/HS"
	case domain.LowAcuityLowStrategic:
		tag = "LA/LS"
	default:
		tag = string(q)
	}
	return QuadrantStyle(q).Render("● " + tag)
}

// FocalMark renders the focal flag, marking reviewer overrides with "*".
func FocalMark(p *domain.Problem) string {
	suffix := ""
	if p.FocalSource == domain.FocalManual {
		suffix = "*"
	}
	if p.IsFocalArea {
		return StyleGreen.Render("★ focal" + suffix)
	}
	return StyleDim.Render("·" + suffix)
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
