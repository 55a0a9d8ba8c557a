package domain

import (
	"fmt"
	"strings"
	"time"
)

// ProblemRef points back at the problem a project was promoted from. The
// project never owns or mutates that problem.
type ProblemRef struct {
	ProblemID     string
	WorkshopID    string
	Description   string
	WorkshopTitle string
}

type Stakeholder struct {
	ID      string
	Name    string
	Role    string
	Company string
}

type Milestone struct {
	Title   string
	DueDate time.Time
}

type Project struct {
	ID              string
	Title           string
	Description     string
	Status          ProjectStatus
	Progress        int
	StartDate       time.Time
	OriginalProblem ProblemRef
	Stakeholders    []Stakeholder
	NextMilestone   *Milestone
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PromoteProblem creates a discovery-stage project from a focal-area problem.
// An empty title falls back to the problem description.
func PromoteProblem(id string, p *Problem, w *Workshop, title, description string, startDate, now time.Time) (*Project, error) {
	if !p.IsFocalArea {
		return nil, &InvalidStateError{Entity: "problem", ID: p.ID, State: "not a focal area", Op: "promote"}
	}
	if startDate.IsZero() {
		startDate = now
	}
	ref := ProblemRef{ProblemID: p.ID, WorkshopID: p.WorkshopID, Description: p.Description}
	if w != nil {
		ref.WorkshopTitle = w.Title
	}
	return &Project{
		ID:              id,
		Title:           CoalesceStr(strings.TrimSpace(title), p.Description),
		Description:     strings.TrimSpace(description),
		Status:          ProjectDiscovery,
		Progress:        0,
		StartDate:       startDate,
		OriginalProblem: ref,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// SetMilestone replaces the pending milestone. Only one is tracked at a time.
func (p *Project) SetMilestone(title string, due time.Time, now time.Time) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return validationErr("milestone.title", "is required")
	}
	if due.IsZero() {
		return validationErr("milestone.due_date", "is required")
	}
	p.NextMilestone = &Milestone{Title: title, DueDate: due}
	p.UpdatedAt = now
	return nil
}

// UpdateProgress sets progress to pct. Progress may move down as well as up.
func (p *Project) UpdateProgress(pct int, now time.Time) error {
	if pct < 0 || pct > 100 {
		return &OutOfRangeError{Field: "progress", Value: float64(pct), Min: 0, Max: 100}
	}
	p.Progress = pct
	p.UpdatedAt = now
	return nil
}

// SetStatus moves the project to any known status.
func (p *Project) SetStatus(s ProjectStatus, now time.Time) error {
	if !ValidProjectStatuses[s] {
		return validationErr("status", fmt.Sprintf("unknown project status %q", s))
	}
	p.Status = s
	p.UpdatedAt = now
	return nil
}

// AddStakeholder inserts s, replacing any stakeholder with the same id.
func (p *Project) AddStakeholder(s Stakeholder, now time.Time) error {
	if strings.TrimSpace(s.ID) == "" {
		return validationErr("stakeholder.id", "is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return validationErr("stakeholder.name", "is required")
	}
	p.UpdatedAt = now
	for i := range p.Stakeholders {
		if p.Stakeholders[i].ID == s.ID {
			p.Stakeholders[i] = s
			return nil
		}
	}
	p.Stakeholders = append(p.Stakeholders, s)
	return nil
}

// RemoveStakeholder deletes the stakeholder with the given id.
func (p *Project) RemoveStakeholder(id string, now time.Time) error {
	for i := range p.Stakeholders {
		if p.Stakeholders[i].ID == id {
			p.Stakeholders = append(p.Stakeholders[:i:i], p.Stakeholders[i+1:]...)
			p.UpdatedAt = now
			return nil
		}
	}
	return &NotFoundError{Entity: "stakeholder", ID: id}
}
