package service

import (
	"context"
	"time"

	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/alexanderramin/atelier/internal/importer"
	tmpl "github.com/alexanderramin/atelier/internal/template"
)

type WorkshopService interface {
	Create(ctx context.Context, w *domain.Workshop) error
	GetByID(ctx context.Context, id string) (*domain.Workshop, error)
	List(ctx context.Context) ([]*domain.Workshop, error)
	Advance(ctx context.Context, id string) (*domain.Workshop, error)
	ScheduleSurvey(ctx context.Context, id string, date time.Time) (*domain.Workshop, error)
	AddParticipant(ctx context.Context, workshopID string, p domain.Participant) (*domain.Participant, error)
	RemoveParticipant(ctx context.Context, workshopID, participantID string) error
}

// PromoteOptions overrides the defaults of a promoted project. Zero values
// fall back to the problem description and today.
type PromoteOptions struct {
	Title       string
	Description string
	StartDate   time.Time
}

// QuadrantGroup is one cell of a workshop's problem map.
type QuadrantGroup struct {
	Quadrant domain.Quadrant
	Problems []*domain.Problem
}

type ProblemService interface {
	AddProblem(ctx context.Context, workshopID, description string, acuity, strategicImportance int, submittedBy string) (*domain.Problem, error)
	AddNote(ctx context.Context, problemID, content, author string) (*domain.Note, error)
	GetByID(ctx context.Context, id string) (*domain.Problem, error)
	ListByWorkshop(ctx context.Context, workshopID string) ([]*domain.Problem, error)
	List(ctx context.Context) ([]*domain.Problem, error)
	SetScore(ctx context.Context, problemID string, axis domain.Axis, value int) (*domain.Problem, error)
	MarkFocalArea(ctx context.Context, problemID string) (*domain.Problem, error)
	UnmarkFocalArea(ctx context.Context, problemID string) (*domain.Problem, error)
	ResetFocalArea(ctx context.Context, problemID string) (*domain.Problem, error)
	PromoteToProject(ctx context.Context, problemID string, opts PromoteOptions) (*domain.Project, error)
	Map(ctx context.Context, workshopID string) ([]QuadrantGroup, error)
	RatingModel() domain.RatingModel
}

// QuestionResult aggregates the numeric answers to one question.
type QuestionResult struct {
	Question domain.SurveyQuestion
	Answered int
	Average  float64
}

// SurveyResults summarizes the responses of a survey against its workshop roster.
type SurveyResults struct {
	Survey     *domain.Survey
	RosterSize int
	Submitted  int
	Questions  []QuestionResult
}

type SurveyService interface {
	Instantiate(ctx context.Context, workshopID, templateName string) (*domain.Survey, error)
	GetByID(ctx context.Context, id string) (*domain.Survey, error)
	ListByWorkshop(ctx context.Context, workshopID string) ([]*domain.Survey, error)
	AddQuestion(ctx context.Context, surveyID string, q domain.SurveyQuestion) (*domain.Survey, error)
	Activate(ctx context.Context, surveyID string) (*domain.Survey, error)
	Close(ctx context.Context, surveyID string) (*domain.Survey, error)
	RecordResponse(ctx context.Context, surveyID, participantID string, answers []domain.Answer) (*domain.SurveyResponse, error)
	AverageRating(ctx context.Context, surveyID, questionID string) (float64, error)
	Results(ctx context.Context, surveyID string) (*SurveyResults, error)
	HarvestProblems(ctx context.Context, surveyID, responseID string) ([]*domain.Problem, error)
}

type ProjectService interface {
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	CreateMilestone(ctx context.Context, projectID, title string, dueDate time.Time) (*domain.Project, error)
	UpdateProgress(ctx context.Context, projectID string, percent int) (*domain.Project, error)
	SetStatus(ctx context.Context, projectID string, status domain.ProjectStatus) (*domain.Project, error)
	AddStakeholder(ctx context.Context, projectID string, s domain.Stakeholder) (*domain.Project, error)
	RemoveStakeholder(ctx context.Context, projectID, stakeholderID string) (*domain.Project, error)
}

type DashboardService interface {
	Summary(ctx context.Context) (*domain.Summary, error)
}

type TemplateService interface {
	List(ctx context.Context) ([]tmpl.Entry, error)
	Get(ctx context.Context, name string) (*tmpl.Entry, error)
}

// ImportResult holds the outcome of a workshop import.
type ImportResult struct {
	Workshop         *domain.Workshop
	ParticipantCount int
	ProblemCount     int
	NoteCount        int
}

type ImportService interface {
	ImportWorkshop(ctx context.Context, filePath string) (*ImportResult, error)
	ImportWorkshopFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
