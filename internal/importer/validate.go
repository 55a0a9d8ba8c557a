package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/atelier/internal/domain"
)

const dateLayout = "2006-01-02"

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema, model domain.RatingModel) []error {
	var errs []error

	errs = append(errs, validateWorkshop(&schema.Workshop)...)
	errs = append(errs, validateParticipants(schema.Participants)...)
	errs = append(errs, validateProblems(schema.Problems, model)...)

	return errs
}

func validateWorkshop(w *WorkshopImport) []error {
	var errs []error

	if strings.TrimSpace(w.Title) == "" {
		errs = append(errs, fmt.Errorf("workshop.title is required"))
	}
	if w.Date == "" {
		errs = append(errs, fmt.Errorf("workshop.date is required"))
	} else {
		errs = append(errs, validateDate("workshop.date", w.Date)...)
	}
	if w.Status != "" && !domain.WorkshopStatus(w.Status).Valid() {
		errs = append(errs, fmt.Errorf("workshop.status: invalid value %q", w.Status))
	}
	if w.SurveyScheduledDate != nil {
		errs = append(errs, validateDate("workshop.survey_scheduled_date", *w.SurveyScheduledDate)...)
	}

	return errs
}

func validateParticipants(ps []ParticipantImport) []error {
	var errs []error
	emails := make(map[string]bool)

	for i, p := range ps {
		prefix := fmt.Sprintf("participants[%d]", i)

		dp := domain.Participant{Name: p.Name, Email: p.Email}
		if err := dp.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", prefix, err))
		}
		key := strings.ToLower(strings.TrimSpace(p.Email))
		if key != "" {
			if emails[key] {
				errs = append(errs, fmt.Errorf("%s.email: duplicate email %q", prefix, p.Email))
			}
			emails[key] = true
		}
	}

	return errs
}

func validateProblems(problems []ProblemImport, model domain.RatingModel) []error {
	var errs []error

	for i, p := range problems {
		prefix := fmt.Sprintf("problems[%d]", i)

		if strings.TrimSpace(p.Description) == "" {
			errs = append(errs, fmt.Errorf("%s.description is required", prefix))
		}
		errs = append(errs, validateScore(prefix+".acuity", p.Acuity, model.Acuity)...)
		errs = append(errs, validateScore(prefix+".strategic_importance", p.StrategicImportance, model.StrategicImportance)...)

		for j, n := range p.Notes {
			if strings.TrimSpace(n.Content) == "" {
				errs = append(errs, fmt.Errorf("%s.notes[%d].content is required", prefix, j))
			}
		}
	}

	return errs
}

func validateScore(field string, v *int, scale domain.Scale) []error {
	if v == nil {
		return []error{fmt.Errorf("%s is required", field)}
	}
	if err := scale.Check(field, *v); err != nil {
		return []error{err}
	}
	return nil
}

func validateDate(field, s string) []error {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, s)}
	}
	return nil
}
