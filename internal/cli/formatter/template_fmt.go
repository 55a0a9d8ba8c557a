package formatter

import (
	"fmt"
	"strings"

	tmpl "github.com/alexanderramin/atelier/internal/template"
)

// FormatTemplateList renders the template catalog with the index accepted by
// "template show" and "survey create".
func FormatTemplateList(entries []tmpl.Entry) string {
	headers := []string{"#", "NAME", "TITLE", "PROBLEMS", "SOURCE"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.Index),
			Bold(e.Stem()),
			e.Template.Title,
			fmt.Sprintf("%d", e.Template.ProblemIdentification.MaxProblems),
			Dim(e.Path),
		})
	}
	return RenderBox("Templates", RenderTable(headers, rows))
}

// FormatTemplateShow renders a template card followed by its YAML source.
func FormatTemplateShow(e *tmpl.Entry, yamlDoc []byte) string {
	t := e.Template
	var b strings.Builder
	b.WriteString(StyleBold.Render(t.Title) + "\n")
	if t.Description != "" {
		b.WriteString(Dim(t.Description) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(Field("id", Dim(t.ID)))
	b.WriteString(Field("source", Dim(e.Path)))
	b.WriteString(Field("problems", fmt.Sprintf("%d", t.ProblemIdentification.MaxProblems)))
	b.WriteString(Field("acuity", fmt.Sprintf("%d-%d", t.ProblemRating.AcuityScale.Min, t.ProblemRating.AcuityScale.Max)))
	b.WriteString(Field("strategic", fmt.Sprintf("%d-%d", t.ProblemRating.StrategicImportanceScale.Min, t.ProblemRating.StrategicImportanceScale.Max)))

	b.WriteString("\n" + Header("Definition") + "\n")
	for _, line := range strings.Split(strings.TrimRight(string(yamlDoc), "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}
	return RenderBox("", b.String())
}
