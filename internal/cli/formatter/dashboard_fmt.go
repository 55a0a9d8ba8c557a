package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/atelier/internal/domain"
)

// FormatSummary renders the dashboard overview.
func FormatSummary(sum *domain.Summary) string {
	var b strings.Builder
	b.WriteString(Field("workshops", fmt.Sprintf("%s completed of %d",
		Bold(fmt.Sprintf("%d", sum.CompletedWorkshops)), sum.TotalWorkshops)))
	b.WriteString(Field("participants", Bold(fmt.Sprintf("%d", sum.TotalParticipants))))
	b.WriteString(Field("problems", Bold(fmt.Sprintf("%d", sum.OpportunitiesIdentified))))
	b.WriteString(Field("focal areas", Bold(fmt.Sprintf("%d", sum.FocalAreas))))
	b.WriteString(Field("projects", Bold(fmt.Sprintf("%d", sum.ProjectsCreated))))

	b.WriteString("\n" + Header("By quadrant") + "\n")
	rows := make([][]string, 0, len(domain.Quadrants))
	for _, q := range domain.Quadrants {
		rows = append(rows, []string{QuadrantBadge(q), q.Label(), fmt.Sprintf("%d", sum.ByQuadrant[q])})
	}
	b.WriteString(RenderTable([]string{"", "QUADRANT", "PROBLEMS"}, rows))
	return RenderBox("Dashboard", b.String())
}
