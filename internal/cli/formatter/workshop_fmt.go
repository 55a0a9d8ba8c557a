package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/atelier/internal/domain"
)

// FormatWorkshopList renders the workshop table.
func FormatWorkshopList(workshops []*domain.Workshop) string {
	headers := []string{"ID", "TITLE", "DATE", "STATUS", "PARTICIPANTS"}
	rows := make([][]string, 0, len(workshops))
	for _, w := range workshops {
		rows = append(rows, []string{
			TruncID(w.ID),
			Bold(w.Title),
			ISODate(w.Date),
			WorkshopStatusPill(w.Status),
			fmt.Sprintf("%d", len(w.Participants)),
		})
	}
	return RenderBox("Workshops", RenderTable(headers, rows))
}

// FormatWorkshopDetail renders a workshop card with its roster and, when
// given, its surveys.
func FormatWorkshopDetail(w *domain.Workshop, surveys []*domain.Survey) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(w.Title) + "\n")
	if w.Description != "" {
		b.WriteString(Dim(w.Description) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(Field("status", WorkshopStatusPill(w.Status)))
	b.WriteString(Field("id", Dim(w.ID)))
	b.WriteString(Field("date", HumanDate(w.Date)))
	if w.Facilitator != "" {
		b.WriteString(Field("facilitator", w.Facilitator))
	}
	if w.SurveyScheduledDate != nil {
		b.WriteString(Field("survey", HumanDate(*w.SurveyScheduledDate)))
	}
	b.WriteString(Field("turnout", RenderRatio(w.SubmissionCount(), len(w.Participants), 10)))

	b.WriteString("\n" + Header("Participants") + "\n")
	b.WriteString(FormatParticipants(w.Participants))

	if len(surveys) > 0 {
		b.WriteString("\n" + Header("Surveys") + "\n")
		rows := make([][]string, 0, len(surveys))
		for _, s := range surveys {
			rows = append(rows, []string{
				TruncID(s.ID), s.Title, SurveyStatusPill(s.Status), fmt.Sprintf("%d", len(s.Responses)),
			})
		}
		b.WriteString(RenderTable([]string{"ID", "TITLE", "STATUS", "RESPONSES"}, rows))
	}
	return RenderBox("", b.String())
}

// FormatParticipants renders a roster table.
func FormatParticipants(ps []domain.Participant) string {
	rows := make([][]string, 0, len(ps))
	for _, p := range ps {
		submitted := Dim("no")
		if p.HasSubmittedSurvey {
			submitted = StyleGreen.Render("yes")
		}
		rows = append(rows, []string{TruncID(p.ID), p.Name, p.Email, p.Role, submitted})
	}
	return RenderTable([]string{"ID", "NAME", "EMAIL", "ROLE", "SURVEY"}, rows)
}
