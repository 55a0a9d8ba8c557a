package repository

import (
	"context"

	"github.com/alexanderramin/atelier/internal/domain"
)

// WorkshopRepo persists workshops together with their participant roster.
type WorkshopRepo interface {
	Create(ctx context.Context, w *domain.Workshop) error
	GetByID(ctx context.Context, id string) (*domain.Workshop, error)
	List(ctx context.Context) ([]*domain.Workshop, error)
	Update(ctx context.Context, w *domain.Workshop) error
}

// ProblemRepo persists problems and their append-only notes.
type ProblemRepo interface {
	Create(ctx context.Context, p *domain.Problem) error
	GetByID(ctx context.Context, id string) (*domain.Problem, error)
	ListByWorkshop(ctx context.Context, workshopID string) ([]*domain.Problem, error)
	List(ctx context.Context) ([]*domain.Problem, error)
	Update(ctx context.Context, p *domain.Problem) error
	AppendNote(ctx context.Context, n domain.Note) error
}

// SurveyRepo persists surveys, their ordered questions and their responses.
type SurveyRepo interface {
	Create(ctx context.Context, s *domain.Survey) error
	GetByID(ctx context.Context, id string) (*domain.Survey, error)
	ListByWorkshop(ctx context.Context, workshopID string) ([]*domain.Survey, error)
	Update(ctx context.Context, s *domain.Survey) error
	AddResponse(ctx context.Context, r domain.SurveyResponse) error
}

// ProjectRepo persists projects with their stakeholders and pending milestone.
type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByProblemID(ctx context.Context, problemID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
}

// UserRepo persists local accounts and the single signed-in session.
type UserRepo interface {
	Create(ctx context.Context, u *domain.User, passwordHash []byte) error
	GetByEmail(ctx context.Context, email string) (*domain.User, []byte, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	SetCurrent(ctx context.Context, userID string) error
	Current(ctx context.Context) (*domain.User, error)
	ClearCurrent(ctx context.Context) error
}
