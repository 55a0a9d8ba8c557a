package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/atelier/internal/db"
	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/alexanderramin/atelier/internal/repository"
	"github.com/google/uuid"
)

type problemService struct {
	problems repository.ProblemRepo
	uow      db.UnitOfWork
	model    domain.RatingModel
	observer UseCaseObserver
}

func NewProblemService(problems repository.ProblemRepo, uow db.UnitOfWork, model domain.RatingModel, observers ...UseCaseObserver) ProblemService {
	return &problemService{problems: problems, uow: uow, model: model, observer: useCaseObserverOrNoop(observers)}
}

func (s *problemService) RatingModel() domain.RatingModel {
	return s.model
}

func (s *problemService) AddProblem(ctx context.Context, workshopID, description string, acuity, strategicImportance int, submittedBy string) (p *domain.Problem, err error) {
	fields := map[string]any{"workshop_id": workshopID, "acuity": acuity, "strategic_importance": strategicImportance}
	done := trackUseCase(ctx, s.observer, "add-problem", fields)
	defer func() { done(err) }()

	p, err = domain.NewProblem(uuid.New().String(), workshopID, description, acuity, strategicImportance, submittedBy, s.model, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	fields["focal"] = p.IsFocalArea

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteWorkshopRepo(tx).GetByID(ctx, workshopID); err != nil {
			return err
		}
		return repository.NewSQLiteProblemRepo(tx).Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *problemService) AddNote(ctx context.Context, problemID, content, author string) (note *domain.Note, err error) {
	done := trackUseCase(ctx, s.observer, "add-note", map[string]any{"problem_id": problemID})
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProblems := repository.NewSQLiteProblemRepo(tx)
		p, err := txProblems.GetByID(ctx, problemID)
		if err != nil {
			return err
		}
		n, err := p.NewNote(uuid.New().String(), content, author, time.Now().UTC())
		if err != nil {
			return err
		}
		if err := txProblems.AppendNote(ctx, n); err != nil {
			return err
		}
		note = &n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (s *problemService) GetByID(ctx context.Context, id string) (*domain.Problem, error) {
	return s.problems.GetByID(ctx, id)
}

func (s *problemService) ListByWorkshop(ctx context.Context, workshopID string) ([]*domain.Problem, error) {
	return s.problems.ListByWorkshop(ctx, workshopID)
}

func (s *problemService) List(ctx context.Context) ([]*domain.Problem, error) {
	return s.problems.List(ctx)
}

func (s *problemService) SetScore(ctx context.Context, problemID string, axis domain.Axis, value int) (p *domain.Problem, err error) {
	done := trackUseCase(ctx, s.observer, "set-score", map[string]any{
		"problem_id": problemID, "axis": string(axis), "value": value,
	})
	defer func() { done(err) }()

	return s.mutate(ctx, problemID, func(p *domain.Problem, now time.Time) error {
		return p.SetScore(axis, value, s.model, now)
	})
}

func (s *problemService) MarkFocalArea(ctx context.Context, problemID string) (p *domain.Problem, err error) {
	done := trackUseCase(ctx, s.observer, "mark-focal", map[string]any{"problem_id": problemID})
	defer func() { done(err) }()

	return s.mutate(ctx, problemID, func(p *domain.Problem, now time.Time) error {
		p.SetFocalArea(true, now)
		return nil
	})
}

func (s *problemService) UnmarkFocalArea(ctx context.Context, problemID string) (p *domain.Problem, err error) {
	done := trackUseCase(ctx, s.observer, "unmark-focal", map[string]any{"problem_id": problemID})
	defer func() { done(err) }()

	return s.mutate(ctx, problemID, func(p *domain.Problem, now time.Time) error {
		p.SetFocalArea(false, now)
		return nil
	})
}

func (s *problemService) ResetFocalArea(ctx context.Context, problemID string) (p *domain.Problem, err error) {
	done := trackUseCase(ctx, s.observer, "reset-focal", map[string]any{"problem_id": problemID})
	defer func() { done(err) }()

	return s.mutate(ctx, problemID, func(p *domain.Problem, now time.Time) error {
		p.ResetFocalArea(s.model.Midpoint, now)
		return nil
	})
}

// PromoteToProject creates a project from a focal-area problem. The problem
// itself is left untouched, and can only be promoted once.
func (s *problemService) PromoteToProject(ctx context.Context, problemID string, opts PromoteOptions) (proj *domain.Project, err error) {
	fields := map[string]any{"problem_id": problemID}
	done := trackUseCase(ctx, s.observer, "promote-to-project", fields)
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProblems := repository.NewSQLiteProblemRepo(tx)
		txWorkshops := repository.NewSQLiteWorkshopRepo(tx)
		txProjects := repository.NewSQLiteProjectRepo(tx)

		p, err := txProblems.GetByID(ctx, problemID)
		if err != nil {
			return err
		}
		existing, err := txProjects.GetByProblemID(ctx, problemID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if existing != nil {
			return &domain.InvalidStateError{Entity: "problem", ID: problemID, State: "already promoted to " + existing.ID, Op: "promote"}
		}
		w, err := txWorkshops.GetByID(ctx, p.WorkshopID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		start := opts.StartDate
		if start.IsZero() {
			start = now.Truncate(24 * time.Hour)
		}
		proj, err = domain.PromoteProblem(uuid.New().String(), p, w, opts.Title, opts.Description, start, now)
		if err != nil {
			return err
		}
		return txProjects.Create(ctx, proj)
	})
	if err != nil {
		return nil, err
	}
	fields["project_id"] = proj.ID
	return proj, nil
}

// Map groups a workshop's problems by quadrant in display order. Every
// quadrant is present, possibly empty.
func (s *problemService) Map(ctx context.Context, workshopID string) ([]QuadrantGroup, error) {
	problems, err := s.problems.ListByWorkshop(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	return groupByQuadrant(problems, s.model.Midpoint), nil
}

func groupByQuadrant(problems []*domain.Problem, midpoint int) []QuadrantGroup {
	groups := make([]QuadrantGroup, len(domain.Quadrants))
	index := make(map[domain.Quadrant]int, len(domain.Quadrants))
	for i, q := range domain.Quadrants {
		groups[i].Quadrant = q
		index[q] = i
	}
	for _, p := range problems {
		i := index[p.Quadrant(midpoint)]
		groups[i].Problems = append(groups[i].Problems, p)
	}
	return groups
}

func (s *problemService) mutate(ctx context.Context, id string, fn func(p *domain.Problem, now time.Time) error) (*domain.Problem, error) {
	var out *domain.Problem
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProblems := repository.NewSQLiteProblemRepo(tx)
		p, err := txProblems.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(p, time.Now().UTC()); err != nil {
			return err
		}
		if err := txProblems.Update(ctx, p); err != nil {
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
