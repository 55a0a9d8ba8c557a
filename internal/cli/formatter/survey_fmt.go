package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/alexanderramin/atelier/internal/service"
)

// FormatSurveyDetail renders a survey with its question list.
func FormatSurveyDetail(s *domain.Survey) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(s.Title) + "\n")
	if s.Description != "" {
		b.WriteString(Dim(s.Description) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(Field("status", SurveyStatusPill(s.Status)))
	b.WriteString(Field("id", Dim(s.ID)))
	b.WriteString(Field("template", CoalesceDash(s.TemplateID)))
	b.WriteString(Field("responses", fmt.Sprintf("%d", len(s.Responses))))
	if s.Instructions != "" {
		b.WriteString("\n" + s.Instructions + "\n")
	}

	b.WriteString("\n" + Header("Questions") + "\n")
	rows := make([][]string, 0, len(s.Questions))
	for _, q := range s.Questions {
		req := ""
		if q.Required {
			req = StyleRed.Render("*")
		}
		rows = append(rows, []string{q.ID + req, string(q.Type), describeBounds(q), Truncate(q.Text, 60)})
	}
	b.WriteString(RenderTable([]string{"ID", "TYPE", "ACCEPTS", "TEXT"}, rows))
	return RenderBox("", b.String())
}

func describeBounds(q domain.SurveyQuestion) string {
	switch {
	case q.Type == domain.QuestionMultipleChoice:
		return strings.Join(q.Options, " | ")
	case q.Type.Numeric() && q.MinValue != nil && q.MaxValue != nil:
		return fmt.Sprintf("%g-%g", *q.MinValue, *q.MaxValue)
	case q.Type.Numeric():
		return "number"
	default:
		return "text"
	}
}

// FormatSurveyResults renders turnout and per-question averages.
func FormatSurveyResults(res *service.SurveyResults) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(res.Survey.Title) + "  " + SurveyStatusPill(res.Survey.Status) + "\n\n")
	b.WriteString(Field("turnout", RenderRatio(res.Submitted, res.RosterSize, 10)))
	b.WriteString(Field("responses", fmt.Sprintf("%d", len(res.Survey.Responses))))

	b.WriteString("\n" + Header("Ratings") + "\n")
	rows := make([][]string, 0, len(res.Questions))
	for _, q := range res.Questions {
		avg := Dim("--")
		if q.Answered > 0 {
			avg = Bold(fmt.Sprintf("%.2f", q.Average))
		}
		rows = append(rows, []string{q.Question.ID, Truncate(q.Question.Text, 40), fmt.Sprintf("%d", q.Answered), avg})
	}
	b.WriteString(RenderTable([]string{"QUESTION", "TEXT", "ANSWERED", "AVERAGE"}, rows))

	if len(res.Survey.Responses) > 0 {
		b.WriteString("\n" + Header("Responses") + "\n")
		rrows := make([][]string, 0, len(res.Survey.Responses))
		for _, r := range res.Survey.Responses {
			descs := res.Survey.ProblemDescriptions(&r)
			rrows = append(rrows, []string{
				TruncID(r.ID), TruncID(r.ParticipantID), r.SubmittedAt.Format("2006-01-02 15:04"),
				Truncate(strings.Join(descs, "; "), 60),
			})
		}
		b.WriteString(RenderTable([]string{"ID", "PARTICIPANT", "SUBMITTED", "PROBLEMS"}, rrows))
	}
	return RenderBox("Survey Results", b.String())
}
