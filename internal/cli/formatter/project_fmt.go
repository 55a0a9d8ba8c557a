package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/atelier/internal/domain"
)

// FormatProjectList renders the project table.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "TITLE", "STATUS", "PROGRESS", "NEXT MILESTONE"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		next := Dim("--")
		if p.NextMilestone != nil {
			next = fmt.Sprintf("%s %s", p.NextMilestone.Title, Dim(ISODate(p.NextMilestone.DueDate)))
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(Truncate(p.Title, 40)),
			ProjectStatusPill(p.Status),
			RenderProgress(p.Progress, 10),
			next,
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProjectDetail renders a project card with its origin and stakeholders.
func FormatProjectDetail(p *domain.Project) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(p.Title) + "\n")
	if p.Description != "" {
		b.WriteString(Dim(p.Description) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(Field("status", ProjectStatusPill(p.Status)))
	b.WriteString(Field("id", Dim(p.ID)))
	b.WriteString(Field("progress", RenderProgress(p.Progress, 20)))
	b.WriteString(Field("start", HumanDate(p.StartDate)))
	if p.NextMilestone != nil {
		b.WriteString(Field("milestone", fmt.Sprintf("%s (due %s)", p.NextMilestone.Title, HumanDate(p.NextMilestone.DueDate))))
	}

	ref := p.OriginalProblem
	b.WriteString("\n" + Header("Origin") + "\n")
	b.WriteString(Field("problem", fmt.Sprintf("%s %s", ref.Description, TruncID(ref.ProblemID))))
	b.WriteString(Field("workshop", fmt.Sprintf("%s %s", CoalesceDash(ref.WorkshopTitle), TruncID(ref.WorkshopID))))

	b.WriteString("\n" + Header("Stakeholders") + "\n")
	rows := make([][]string, 0, len(p.Stakeholders))
	for _, s := range p.Stakeholders {
		rows = append(rows, []string{TruncID(s.ID), s.Name, CoalesceDash(s.Role), CoalesceDash(s.Company)})
	}
	b.WriteString(RenderTable([]string{"ID", "NAME", "ROLE", "COMPANY"}, rows))
	return RenderBox("", b.String())
}
