package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type Participant struct {
	ID                 string
	WorkshopID         string
	Name               string
	Email              string
	Role               string
	HasSubmittedSurvey bool
}

// Validate checks the participant's name and email.
func (p *Participant) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return validationErr("name", "is required")
	}
	if !emailPattern.MatchString(p.Email) {
		return validationErr("email", fmt.Sprintf("%q is not a valid email", p.Email))
	}
	return nil
}

type Workshop struct {
	ID                  string
	Title               string
	Description         string
	Facilitator         string
	Date                time.Time
	Status              WorkshopStatus
	Participants        []Participant
	SurveyScheduledDate *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Validate checks the fields required to create a workshop.
func (w *Workshop) Validate() error {
	if strings.TrimSpace(w.Title) == "" {
		return validationErr("title", "is required")
	}
	if w.Date.IsZero() {
		return validationErr("date", "is required")
	}
	if !w.Status.Valid() {
		return validationErr("status", fmt.Sprintf("unknown status %q", w.Status))
	}
	return nil
}

// Advance moves the workshop one step forward. COMPLETE is terminal.
func (w *Workshop) Advance(now time.Time) error {
	next, ok := w.Status.Next()
	if !ok {
		return &InvalidTransitionError{Entity: "workshop", From: string(w.Status)}
	}
	w.Status = next
	w.UpdatedAt = now
	return nil
}

// ScheduleSurvey sets the survey date while the workshop is not complete.
func (w *Workshop) ScheduleSurvey(date, now time.Time) error {
	if err := w.requireOpen("schedule survey for"); err != nil {
		return err
	}
	if date.IsZero() {
		return validationErr("date", "is required")
	}
	w.SurveyScheduledDate = &date
	w.UpdatedAt = now
	return nil
}

// AddParticipant appends p to the roster. Emails are unique per workshop.
func (w *Workshop) AddParticipant(p Participant, now time.Time) error {
	if err := w.requireOpen("add participant to"); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	for _, existing := range w.Participants {
		if existing.ID == p.ID {
			return validationErr("id", fmt.Sprintf("participant %q already on roster", p.ID))
		}
		if strings.EqualFold(existing.Email, p.Email) {
			return validationErr("email", fmt.Sprintf("%s is already on the roster", p.Email))
		}
	}
	p.WorkshopID = w.ID
	w.Participants = append(w.Participants, p)
	w.UpdatedAt = now
	return nil
}

// RemoveParticipant drops a participant from the roster.
func (w *Workshop) RemoveParticipant(participantID string, now time.Time) error {
	if err := w.requireOpen("remove participant from"); err != nil {
		return err
	}
	idx := w.participantIndex(participantID)
	if idx < 0 {
		return &NotFoundError{Entity: "participant", ID: participantID}
	}
	w.Participants = append(w.Participants[:idx:idx], w.Participants[idx+1:]...)
	w.UpdatedAt = now
	return nil
}

// Participant returns the roster entry with the given id.
func (w *Workshop) Participant(participantID string) (*Participant, error) {
	idx := w.participantIndex(participantID)
	if idx < 0 {
		return nil, &NotFoundError{Entity: "participant", ID: participantID}
	}
	return &w.Participants[idx], nil
}

// MarkSurveySubmitted flips the participant's flag. It never flips back.
func (w *Workshop) MarkSurveySubmitted(participantID string) (changed bool, err error) {
	p, err := w.Participant(participantID)
	if err != nil {
		return false, err
	}
	if p.HasSubmittedSurvey {
		return false, nil
	}
	p.HasSubmittedSurvey = true
	return true, nil
}

// SubmissionCount returns how many roster entries have submitted a survey.
func (w *Workshop) SubmissionCount() int {
	n := 0
	for _, p := range w.Participants {
		if p.HasSubmittedSurvey {
			n++
		}
	}
	return n
}

func (w *Workshop) participantIndex(id string) int {
	for i := range w.Participants {
		if w.Participants[i].ID == id {
			return i
		}
	}
	return -1
}

func (w *Workshop) requireOpen(op string) error {
	if w.Status == WorkshopComplete {
		return &InvalidStateError{Entity: "workshop", ID: w.ID, State: string(w.Status), Op: op}
	}
	return nil
}
