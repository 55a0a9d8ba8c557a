package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/google/uuid"
)

// Batch is a converted import ready for persistence.
type Batch struct {
	Workshop *domain.Workshop
	Problems []*domain.Problem
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema, model domain.RatingModel, now time.Time) (*Batch, error) {
	date, err := time.Parse(dateLayout, schema.Workshop.Date)
	if err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}

	w := &domain.Workshop{
		ID:                  uuid.New().String(),
		Title:               strings.TrimSpace(schema.Workshop.Title),
		Description:         schema.Workshop.Description,
		Facilitator:         schema.Workshop.Facilitator,
		Date:                date,
		Status:              domain.WorkshopStatus(domain.CoalesceStr(schema.Workshop.Status, string(domain.WorkshopTodo))),
		SurveyScheduledDate: parseOptionalDate(schema.Workshop.SurveyScheduledDate),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	for _, p := range schema.Participants {
		w.Participants = append(w.Participants, domain.Participant{
			ID:                 uuid.New().String(),
			WorkshopID:         w.ID,
			Name:               strings.TrimSpace(p.Name),
			Email:              strings.TrimSpace(p.Email),
			Role:               p.Role,
			HasSubmittedSurvey: p.SubmittedSurvey,
		})
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	problems := make([]*domain.Problem, 0, len(schema.Problems))
	for i, pi := range schema.Problems {
		if pi.Acuity == nil || pi.StrategicImportance == nil {
			return nil, fmt.Errorf("problems[%d]: scores are required", i)
		}
		p, err := domain.NewProblem(uuid.New().String(), w.ID, pi.Description,
			*pi.Acuity, *pi.StrategicImportance, pi.SubmittedBy, model, now)
		if err != nil {
			return nil, fmt.Errorf("problems[%d]: %w", i, err)
		}
		if pi.Focal != nil {
			p.SetFocalArea(*pi.Focal, now)
		}
		for j, ni := range pi.Notes {
			n, err := p.NewNote(uuid.New().String(), ni.Content, ni.Author, now)
			if err != nil {
				return nil, fmt.Errorf("problems[%d].notes[%d]: %w", i, j, err)
			}
			p.Notes = append(p.Notes, n)
		}
		problems = append(problems, p)
	}

	return &Batch{Workshop: w, Problems: problems}, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}
