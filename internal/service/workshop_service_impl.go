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

type workshopService struct {
	workshops repository.WorkshopRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewWorkshopService(workshops repository.WorkshopRepo, uow db.UnitOfWork, observers ...UseCaseObserver) WorkshopService {
	return &workshopService{workshops: workshops, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Create validates and stores a new workshop. It always starts in TODO.
func (s *workshopService) Create(ctx context.Context, w *domain.Workshop) (err error) {
	done := trackUseCase(ctx, s.observer, "create-workshop", map[string]any{"title": w.Title})
	defer func() { done(err) }()

	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	w.Title = strings.TrimSpace(w.Title)
	w.Status = domain.WorkshopTodo
	w.CreatedAt = now
	w.UpdatedAt = now
	if err = w.Validate(); err != nil {
		return err
	}
	for i := range w.Participants {
		if err = w.Participants[i].Validate(); err != nil {
			return err
		}
		w.Participants[i].WorkshopID = w.ID
	}
	return s.workshops.Create(ctx, w)
}

func (s *workshopService) GetByID(ctx context.Context, id string) (*domain.Workshop, error) {
	return s.workshops.GetByID(ctx, id)
}

func (s *workshopService) List(ctx context.Context) ([]*domain.Workshop, error) {
	return s.workshops.List(ctx)
}

func (s *workshopService) Advance(ctx context.Context, id string) (w *domain.Workshop, err error) {
	fields := map[string]any{"workshop_id": id}
	done := trackUseCase(ctx, s.observer, "advance-workshop", fields)
	defer func() { done(err) }()

	err = s.mutate(ctx, id, func(ws *domain.Workshop, now time.Time) error {
		fields["from"] = string(ws.Status)
		if err := ws.Advance(now); err != nil {
			return err
		}
		fields["to"] = string(ws.Status)
		w = ws
		return nil
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *workshopService) ScheduleSurvey(ctx context.Context, id string, date time.Time) (w *domain.Workshop, err error) {
	done := trackUseCase(ctx, s.observer, "schedule-survey", map[string]any{"workshop_id": id, "date": date.Format("2006-01-02")})
	defer func() { done(err) }()

	err = s.mutate(ctx, id, func(ws *domain.Workshop, now time.Time) error {
		if err := ws.ScheduleSurvey(date, now); err != nil {
			return err
		}
		w = ws
		return nil
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *workshopService) AddParticipant(ctx context.Context, workshopID string, p domain.Participant) (added *domain.Participant, err error) {
	done := trackUseCase(ctx, s.observer, "add-participant", map[string]any{"workshop_id": workshopID})
	defer func() { done(err) }()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.HasSubmittedSurvey = false

	err = s.mutate(ctx, workshopID, func(ws *domain.Workshop, now time.Time) error {
		if err := ws.AddParticipant(p, now); err != nil {
			return err
		}
		added, _ = ws.Participant(p.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (s *workshopService) RemoveParticipant(ctx context.Context, workshopID, participantID string) (err error) {
	done := trackUseCase(ctx, s.observer, "remove-participant", map[string]any{
		"workshop_id": workshopID, "participant_id": participantID,
	})
	defer func() { done(err) }()

	return s.mutate(ctx, workshopID, func(ws *domain.Workshop, now time.Time) error {
		return ws.RemoveParticipant(participantID, now)
	})
}

// mutate loads the workshop inside a transaction, applies fn and writes the
// result back. Nothing is written when fn fails.
func (s *workshopService) mutate(ctx context.Context, id string, fn func(w *domain.Workshop, now time.Time) error) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txWorkshops := repository.NewSQLiteWorkshopRepo(tx)
		w, err := txWorkshops.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(w, time.Now().UTC()); err != nil {
			return err
		}
		return txWorkshops.Update(ctx, w)
	})
}
