package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const dateLayout = "2006-01-02"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// HumanDate renders a calendar date, or a dimmed "--" for the zero time.
func HumanDate(t time.Time) string {
	if t.IsZero() {
		return Dim("--")
	}
	return t.Format("Jan 2, 2006")
}

// ISODate renders t as YYYY-MM-DD.
func ISODate(t time.Time) string {
	return t.Format(dateLayout)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Field renders one "LABEL  value" metadata line.
func Field(label, value string) string {
	return fmt.Sprintf("  %s  %s\n", StyleDim.Render(fmt.Sprintf("%-10s", strings.ToUpper(label))), value)
}

// WorkshopStatusPill returns a colored indicator for a workshop's lifecycle state.
func WorkshopStatusPill(status domain.WorkshopStatus) string {
	switch status {
	case domain.WorkshopTodo:
		return StyleBlue.Render("○ Todo")
	case domain.WorkshopInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.WorkshopComplete:
		return StyleGreen.Render("✔ Complete")
	default:
		return StyleDim.Render(string(status))
	}
}

// SurveyStatusPill returns a colored indicator for a survey's state.
func SurveyStatusPill(status domain.SurveyStatus) string {
	switch status {
	case domain.SurveyDraft:
		return StyleBlue.Render("○ Draft")
	case domain.SurveyActive:
		return StyleGreen.Render("● Active")
	case domain.SurveyClosed:
		return StyleDim.Render("✖ Closed")
	default:
		return StyleDim.Render(string(status))
	}
}

// ProjectStatusPill returns a colored indicator for a project's stage.
func ProjectStatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectDiscovery:
		return StyleBlue.Render("○ Discovery")
	case domain.ProjectDevelopment:
		return StyleYellow.Render("◐ Development")
	case domain.ProjectLive:
		return StyleGreen.Render("● Live")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	default:
		return StyleDim.Render(string(status))
	}
}

// Truncate shortens s to n visible runes, ending in "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 1 {
		return s
	}
	return string(r[:n-1]) + "…"
}
