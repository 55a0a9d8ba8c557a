package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/atelier/internal/db"
	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/alexanderramin/atelier/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ProjectService {
	return &projectService{projects: projects, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

// CreateMilestone replaces the project's pending milestone.
func (s *projectService) CreateMilestone(ctx context.Context, projectID, title string, dueDate time.Time) (p *domain.Project, err error) {
	done := trackUseCase(ctx, s.observer, "create-milestone", map[string]any{
		"project_id": projectID, "due": dueDate.Format("2006-01-02"),
	})
	defer func() { done(err) }()

	return s.mutate(ctx, projectID, func(p *domain.Project, now time.Time) error {
		return p.SetMilestone(title, dueDate, now)
	})
}

func (s *projectService) UpdateProgress(ctx context.Context, projectID string, percent int) (p *domain.Project, err error) {
	done := trackUseCase(ctx, s.observer, "update-progress", map[string]any{"project_id": projectID, "percent": percent})
	defer func() { done(err) }()

	return s.mutate(ctx, projectID, func(p *domain.Project, now time.Time) error {
		return p.UpdateProgress(percent, now)
	})
}

func (s *projectService) SetStatus(ctx context.Context, projectID string, status domain.ProjectStatus) (p *domain.Project, err error) {
	done := trackUseCase(ctx, s.observer, "set-project-status", map[string]any{"project_id": projectID, "status": string(status)})
	defer func() { done(err) }()

	return s.mutate(ctx, projectID, func(p *domain.Project, now time.Time) error {
		return p.SetStatus(status, now)
	})
}

// AddStakeholder adds st, or replaces the stakeholder with the same id. An
// empty id is generated.
func (s *projectService) AddStakeholder(ctx context.Context, projectID string, st domain.Stakeholder) (p *domain.Project, err error) {
	if strings.TrimSpace(st.ID) == "" {
		st.ID = uuid.New().String()
	}
	done := trackUseCase(ctx, s.observer, "add-stakeholder", map[string]any{"project_id": projectID, "stakeholder_id": st.ID})
	defer func() { done(err) }()

	return s.mutate(ctx, projectID, func(p *domain.Project, now time.Time) error {
		return p.AddStakeholder(st, now)
	})
}

func (s *projectService) RemoveStakeholder(ctx context.Context, projectID, stakeholderID string) (p *domain.Project, err error) {
	done := trackUseCase(ctx, s.observer, "remove-stakeholder", map[string]any{"project_id": projectID, "stakeholder_id": stakeholderID})
	defer func() { done(err) }()

	return s.mutate(ctx, projectID, func(p *domain.Project, now time.Time) error {
		return p.RemoveStakeholder(stakeholderID, now)
	})
}

func (s *projectService) mutate(ctx context.Context, id string, fn func(p *domain.Project, now time.Time) error) (*domain.Project, error) {
	var out *domain.Project
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		p, err := txProjects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(p, time.Now().UTC()); err != nil {
			return err
		}
		if err := txProjects.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
