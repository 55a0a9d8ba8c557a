package domain

import (
	"strings"
	"time"
)

// Note is an immutable comment appended to a problem.
type Note struct {
	ID        string
	ProblemID string
	Content   string
	CreatedBy string
	CreatedAt time.Time
}

type Problem struct {
	ID                  string
	WorkshopID          string
	Description         string
	Acuity              int
	StrategicImportance int
	SubmittedBy         string
	IsFocalArea         bool
	FocalSource         FocalSource
	Notes               []Note
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewProblem validates the input and returns a problem whose focal flag is the
// quadrant suggestion.
func NewProblem(id, workshopID, description string, acuity, strategicImportance int, submittedBy string, model RatingModel, now time.Time) (*Problem, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, validationErr("description", "is required")
	}
	if err := model.CheckScores(acuity, strategicImportance); err != nil {
		return nil, &ValidationError{Field: "score", Reason: err.Error()}
	}
	p := &Problem{
		ID:                  id,
		WorkshopID:          workshopID,
		Description:         description,
		Acuity:              acuity,
		StrategicImportance: strategicImportance,
		SubmittedBy:         strings.TrimSpace(submittedBy),
		FocalSource:         FocalDerived,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	p.IsFocalArea = SuggestFocal(p.Quadrant(model.Midpoint))
	return p, nil
}

// Quadrant classifies the problem's current scores.
func (p *Problem) Quadrant(midpoint int) Quadrant {
	return Classify(p.Acuity, p.StrategicImportance, midpoint)
}

// SetScore changes one axis. The focal flag is re-derived only while it has
// not been set by a reviewer.
func (p *Problem) SetScore(axis Axis, value int, model RatingModel, now time.Time) error {
	if err := model.ScaleFor(axis).Check(string(axis), value); err != nil {
		return err
	}
	switch axis {
	case AxisAcuity:
		p.Acuity = value
	case AxisStrategicImportance:
		p.StrategicImportance = value
	default:
		return validationErr("axis", "unknown axis "+string(axis))
	}
	if p.FocalSource != FocalManual {
		p.IsFocalArea = SuggestFocal(p.Quadrant(model.Midpoint))
	}
	p.UpdatedAt = now
	return nil
}

// SetFocalArea records a reviewer's explicit decision.
func (p *Problem) SetFocalArea(focal bool, now time.Time) {
	p.IsFocalArea = focal
	p.FocalSource = FocalManual
	p.UpdatedAt = now
}

// ResetFocalArea drops any explicit decision and restores the suggestion.
func (p *Problem) ResetFocalArea(midpoint int, now time.Time) {
	p.IsFocalArea = SuggestFocal(p.Quadrant(midpoint))
	p.FocalSource = FocalDerived
	p.UpdatedAt = now
}

// NewNote validates and builds a note for this problem. The caller persists it;
// notes are never edited or removed.
func (p *Problem) NewNote(id, content, author string, now time.Time) (Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Note{}, validationErr("content", "is required")
	}
	return Note{
		ID:        id,
		ProblemID: p.ID,
		Content:   content,
		CreatedBy: strings.TrimSpace(author),
		CreatedAt: now,
	}, nil
}
