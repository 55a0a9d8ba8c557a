package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/google/uuid"
)

var testEmailCounter atomic.Int64

// Workshop options
type WorkshopOption func(*domain.Workshop)

func WithWorkshopStatus(s domain.WorkshopStatus) WorkshopOption {
	return func(w *domain.Workshop) {
		w.Status = s
	}
}

func WithWorkshopDate(d time.Time) WorkshopOption {
	return func(w *domain.Workshop) {
		w.Date = d
	}
}

func WithFacilitator(name string) WorkshopOption {
	return func(w *domain.Workshop) {
		w.Facilitator = name
	}
}

// WithParticipants puts ps on the roster, owned by the workshop.
func WithParticipants(ps ...domain.Participant) WorkshopOption {
	return func(w *domain.Workshop) {
		for _, p := range ps {
			p.WorkshopID = w.ID
			w.Participants = append(w.Participants, p)
		}
	}
}

func NewTestWorkshop(title string, opts ...WorkshopOption) *domain.Workshop {
	now := time.Now().UTC().Truncate(time.Second)
	w := &domain.Workshop{
		ID:        uuid.New().String(),
		Title:     title,
		Date:      now.Truncate(24 * time.Hour),
		Status:    domain.WorkshopTodo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Participant options
type ParticipantOption func(*domain.Participant)

func WithEmail(email string) ParticipantOption {
	return func(p *domain.Participant) {
		p.Email = email
	}
}

func WithRole(role string) ParticipantOption {
	return func(p *domain.Participant) {
		p.Role = role
	}
}

func WithSubmitted() ParticipantOption {
	return func(p *domain.Participant) {
		p.HasSubmittedSurvey = true
	}
}

// NewTestParticipant returns a roster entry with a unique email.
func NewTestParticipant(name string, opts ...ParticipantOption) domain.Participant {
	p := domain.Participant{
		ID:    uuid.New().String(),
		Name:  name,
		Email: fmt.Sprintf("participant%d@example.com", testEmailCounter.Add(1)),
		Role:  "Engineer",
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Problem options
type ProblemOption func(*domain.Problem)

// WithScores sets both axes and re-derives the focal suggestion at the
// default midpoint.
func WithScores(acuity, strategicImportance int) ProblemOption {
	return func(p *domain.Problem) {
		p.Acuity = acuity
		p.StrategicImportance = strategicImportance
		p.IsFocalArea = domain.SuggestFocal(p.Quadrant(domain.DefaultMidpoint))
	}
}

// WithFocal records an explicit focal decision.
func WithFocal(focal bool) ProblemOption {
	return func(p *domain.Problem) {
		p.IsFocalArea = focal
		p.FocalSource = domain.FocalManual
	}
}

func WithSubmittedBy(name string) ProblemOption {
	return func(p *domain.Problem) {
		p.SubmittedBy = name
	}
}

// NewTestProblem returns a problem scored 5/5, which is not a focal area at
// the default midpoint.
func NewTestProblem(workshopID, description string, opts ...ProblemOption) *domain.Problem {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Problem{
		ID:                  uuid.New().String(),
		WorkshopID:          workshopID,
		Description:         description,
		Acuity:              5,
		StrategicImportance: 5,
		SubmittedBy:         "Facilitator",
		FocalSource:         domain.FocalDerived,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestSurvey instantiates the built-in template for workshopID.
func NewTestSurvey(workshopID string) *domain.Survey {
	now := time.Now().UTC().Truncate(time.Second)
	s, err := domain.Instantiate(uuid.New().String(), workshopID, domain.DefaultSurveyTemplate(), now)
	if err != nil {
		panic(fmt.Sprintf("instantiating default template: %v", err))
	}
	return s
}

// NewTestAnswers answers the first problem question and both rating questions.
func NewTestAnswers(problem string, acuity, strategicImportance float64) []domain.Answer {
	return []domain.Answer{
		{QuestionID: domain.ProblemQuestionID(1), Value: domain.TextValue(problem)},
		{QuestionID: domain.QuestionIDAcuity, Value: domain.NumberValue(acuity)},
		{QuestionID: domain.QuestionIDStrategicImportance, Value: domain.NumberValue(strategicImportance)},
	}
}

// NewTestProject promotes a fresh focal problem of workshopID.
func NewTestProject(workshopID, title string) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := NewTestProblem(workshopID, title, WithScores(8, 3))
	proj, err := domain.PromoteProblem(uuid.New().String(), p, nil, title, "", now.Truncate(24*time.Hour), now)
	if err != nil {
		panic(fmt.Sprintf("promoting test problem: %v", err))
	}
	return proj
}
