package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/alexanderramin/atelier/internal/service"
)

// FormatProblemList renders problems with their scores and quadrant at the
// given midpoint.
func FormatProblemList(problems []*domain.Problem, midpoint int) string {
	headers := []string{"ID", "DESCRIPTION", "ACUITY", "STRATEGIC", "QUADRANT", "FOCAL", "BY"}
	rows := make([][]string, 0, len(problems))
	for _, p := range problems {
		rows = append(rows, []string{
			TruncID(p.ID),
			Truncate(p.Description, 48),
			fmt.Sprintf("%d", p.Acuity),
			fmt.Sprintf("%d", p.StrategicImportance),
			QuadrantBadge(p.Quadrant(midpoint)),
			FocalMark(p),
			CoalesceDash(p.SubmittedBy),
		})
	}
	return RenderBox("Problems", RenderTable(headers, rows))
}

// FormatProblemDetail renders a problem card including its notes.
func FormatProblemDetail(p *domain.Problem, midpoint int) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(p.Description) + "\n\n")
	b.WriteString(Field("id", Dim(p.ID)))
	b.WriteString(Field("workshop", Dim(p.WorkshopID)))
	b.WriteString(Field("scores", fmt.Sprintf("acuity %d, strategic %d", p.Acuity, p.StrategicImportance)))
	q := p.Quadrant(midpoint)
	b.WriteString(Field("quadrant", QuadrantBadge(q)+" "+Dim(q.Label())))
	b.WriteString(Field("focal", FocalMark(p)+" "+Dim("("+string(p.FocalSource)+")")))
	b.WriteString(Field("by", CoalesceDash(p.SubmittedBy)))

	b.WriteString("\n" + Header("Notes") + "\n")
	if len(p.Notes) == 0 {
		b.WriteString(Dim("(none)") + "\n")
	}
	for _, n := range p.Notes {
		b.WriteString(fmt.Sprintf("%s %s  %s\n", Dim(n.CreatedAt.Format("2006-01-02 15:04")), StylePurple.Render(CoalesceDash(n.CreatedBy)), n.Content))
	}
	return RenderBox("", b.String())
}

// FormatProblemMap renders one section per quadrant group.
func FormatProblemMap(groups []service.QuadrantGroup) string {
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		q, ps := g.Quadrant, g.Problems
		b.WriteString(fmt.Sprintf("%s %s %s\n", QuadrantBadge(q), Bold(q.Label()), Dim(fmt.Sprintf("(%d)", len(ps)))))
		if len(ps) == 0 {
			b.WriteString("  " + Dim("(none)") + "\n")
		}
		for _, p := range ps {
			b.WriteString(fmt.Sprintf("  %s %s  %s %s\n", TruncID(p.ID), Truncate(p.Description, 56),
				Dim(fmt.Sprintf("[%d/%d]", p.Acuity, p.StrategicImportance)), FocalMark(p)))
		}
	}
	return RenderBox("Problem Map", b.String())
}

// CoalesceDash returns s, or a dimmed "--" when s is blank.
func CoalesceDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}
