package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/atelier/internal/db"
	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/alexanderramin/atelier/internal/repository"
	"github.com/google/uuid"
)

type surveyService struct {
	surveys   repository.SurveyRepo
	workshops repository.WorkshopRepo
	templates TemplateService
	uow       db.UnitOfWork
	model     domain.RatingModel
	observer  UseCaseObserver
}

func NewSurveyService(
	surveys repository.SurveyRepo,
	workshops repository.WorkshopRepo,
	templates TemplateService,
	uow db.UnitOfWork,
	model domain.RatingModel,
	observers ...UseCaseObserver,
) SurveyService {
	return &surveyService{
		surveys:   surveys,
		workshops: workshops,
		templates: templates,
		uow:       uow,
		model:     model,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Instantiate builds a draft survey for the workshop from the named template.
func (s *surveyService) Instantiate(ctx context.Context, workshopID, templateName string) (survey *domain.Survey, err error) {
	fields := map[string]any{"workshop_id": workshopID, "template": templateName}
	done := trackUseCase(ctx, s.observer, "instantiate-survey", fields)
	defer func() { done(err) }()

	entry, err := s.templates.Get(ctx, templateName)
	if err != nil {
		return nil, err
	}
	if err := entry.Template.FitsRatingModel(s.model); err != nil {
		return nil, fmt.Errorf("template %s: %w", entry.Template.ID, err)
	}
	survey, err = domain.Instantiate(uuid.New().String(), workshopID, entry.Template, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	fields["question_count"] = len(survey.Questions)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteWorkshopRepo(tx).GetByID(ctx, workshopID); err != nil {
			return err
		}
		return repository.NewSQLiteSurveyRepo(tx).Create(ctx, survey)
	})
	if err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *surveyService) GetByID(ctx context.Context, id string) (*domain.Survey, error) {
	return s.surveys.GetByID(ctx, id)
}

func (s *surveyService) ListByWorkshop(ctx context.Context, workshopID string) ([]*domain.Survey, error) {
	return s.surveys.ListByWorkshop(ctx, workshopID)
}

func (s *surveyService) AddQuestion(ctx context.Context, surveyID string, q domain.SurveyQuestion) (survey *domain.Survey, err error) {
	done := trackUseCase(ctx, s.observer, "add-question", map[string]any{
		"survey_id": surveyID, "question_id": q.ID, "type": string(q.Type),
	})
	defer func() { done(err) }()

	return s.mutate(ctx, surveyID, func(sv *domain.Survey, now time.Time) error {
		return sv.AddQuestion(q, now)
	})
}

func (s *surveyService) Activate(ctx context.Context, surveyID string) (survey *domain.Survey, err error) {
	done := trackUseCase(ctx, s.observer, "activate-survey", map[string]any{"survey_id": surveyID})
	defer func() { done(err) }()

	return s.mutate(ctx, surveyID, func(sv *domain.Survey, now time.Time) error {
		return sv.Activate(now)
	})
}

func (s *surveyService) Close(ctx context.Context, surveyID string) (survey *domain.Survey, err error) {
	done := trackUseCase(ctx, s.observer, "close-survey", map[string]any{"survey_id": surveyID})
	defer func() { done(err) }()

	return s.mutate(ctx, surveyID, func(sv *domain.Survey, now time.Time) error {
		return sv.Close(now)
	})
}

// RecordResponse validates and stores a participant's answers and marks the
// participant as having submitted, in one transaction.
func (s *surveyService) RecordResponse(ctx context.Context, surveyID, participantID string, answers []domain.Answer) (resp *domain.SurveyResponse, err error) {
	fields := map[string]any{"survey_id": surveyID, "participant_id": participantID, "answer_count": len(answers)}
	done := trackUseCase(ctx, s.observer, "record-response", fields)
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSurveys := repository.NewSQLiteSurveyRepo(tx)
		txWorkshops := repository.NewSQLiteWorkshopRepo(tx)

		survey, err := txSurveys.GetByID(ctx, surveyID)
		if err != nil {
			return err
		}
		w, err := txWorkshops.GetByID(ctx, survey.WorkshopID)
		if err != nil {
			return err
		}
		if _, err := w.Participant(participantID); err != nil {
			return err
		}

		now := time.Now().UTC()
		r := domain.SurveyResponse{
			ID:            uuid.New().String(),
			SurveyID:      survey.ID,
			ParticipantID: participantID,
			Answers:       answers,
			SubmittedAt:   now,
		}
		if err := survey.AddResponse(r); err != nil {
			return err
		}
		if err := txSurveys.AddResponse(ctx, r); err != nil {
			return err
		}

		changed, err := w.MarkSurveySubmitted(participantID)
		if err != nil {
			return err
		}
		if changed {
			w.UpdatedAt = now
			if err := txWorkshops.Update(ctx, w); err != nil {
				return err
			}
		}
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["response_id"] = resp.ID
	return resp, nil
}

func (s *surveyService) AverageRating(ctx context.Context, surveyID, questionID string) (float64, error) {
	survey, err := s.surveys.GetByID(ctx, surveyID)
	if err != nil {
		return 0, err
	}
	if _, err := survey.Question(questionID); err != nil {
		return 0, err
	}
	return survey.AverageRating(questionID), nil
}

// Results reports how many roster members responded and the average of every
// numeric question.
func (s *surveyService) Results(ctx context.Context, surveyID string) (*SurveyResults, error) {
	survey, err := s.surveys.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	w, err := s.workshops.GetByID(ctx, survey.WorkshopID)
	if err != nil {
		return nil, err
	}

	res := &SurveyResults{Survey: survey, RosterSize: len(w.Participants)}
	for _, p := range w.Participants {
		if survey.HasResponseFrom(p.ID) {
			res.Submitted++
		}
	}
	for _, q := range survey.Questions {
		if !q.Type.Numeric() {
			continue
		}
		qr := QuestionResult{Question: q, Average: survey.AverageRating(q.ID)}
		for _, r := range survey.Responses {
			if v, ok := r.Value(q.ID); ok {
				if _, ok := v.Number(); ok {
					qr.Answered++
				}
			}
		}
		res.Questions = append(res.Questions, qr)
	}
	return res, nil
}

// HarvestProblems turns the problem descriptions of one response into
// problems of the survey's workshop, scored with the response's ratings.
// Descriptions already harvested from the same participant are skipped, so
// harvesting twice adds nothing.
func (s *surveyService) HarvestProblems(ctx context.Context, surveyID, responseID string) (created []*domain.Problem, err error) {
	fields := map[string]any{"survey_id": surveyID, "response_id": responseID}
	done := trackUseCase(ctx, s.observer, "harvest-problems", fields)
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSurveys := repository.NewSQLiteSurveyRepo(tx)
		txWorkshops := repository.NewSQLiteWorkshopRepo(tx)
		txProblems := repository.NewSQLiteProblemRepo(tx)

		survey, err := txSurveys.GetByID(ctx, surveyID)
		if err != nil {
			return err
		}
		resp, err := findResponse(survey, responseID)
		if err != nil {
			return err
		}
		acuity, err := integerAnswer(resp, domain.QuestionIDAcuity)
		if err != nil {
			return err
		}
		strategic, err := integerAnswer(resp, domain.QuestionIDStrategicImportance)
		if err != nil {
			return err
		}

		w, err := txWorkshops.GetByID(ctx, survey.WorkshopID)
		if err != nil {
			return err
		}
		submittedBy := resp.ParticipantID
		if p, err := w.Participant(resp.ParticipantID); err == nil {
			submittedBy = p.Name
		}

		existing, err := txProblems.ListByWorkshop(ctx, w.ID)
		if err != nil {
			return err
		}
		seen := make(map[string]bool, len(existing))
		for _, p := range existing {
			seen[p.SubmittedBy+"\x00"+p.Description] = true
		}

		now := time.Now().UTC()
		for _, desc := range survey.ProblemDescriptions(resp) {
			if seen[submittedBy+"\x00"+desc] {
				continue
			}
			p, err := domain.NewProblem(uuid.New().String(), w.ID, desc, acuity, strategic, submittedBy, s.model, now)
			if err != nil {
				return err
			}
			if err := txProblems.Create(ctx, p); err != nil {
				return err
			}
			seen[submittedBy+"\x00"+desc] = true
			created = append(created, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["created"] = len(created)
	return created, nil
}

func findResponse(survey *domain.Survey, responseID string) (*domain.SurveyResponse, error) {
	for i := range survey.Responses {
		if survey.Responses[i].ID == responseID {
			return &survey.Responses[i], nil
		}
	}
	return nil, &domain.NotFoundError{Entity: "response", ID: responseID}
}

func integerAnswer(r *domain.SurveyResponse, questionID string) (int, error) {
	v, ok := r.Value(questionID)
	if !ok {
		return 0, &domain.ValidationError{Field: questionID, Reason: "has no answer"}
	}
	n, ok := v.Number()
	if !ok || n != math.Trunc(n) {
		return 0, &domain.ValidationError{Field: questionID, Reason: fmt.Sprintf("%s is not a whole-number score", v)}
	}
	return int(n), nil
}

func (s *surveyService) mutate(ctx context.Context, id string, fn func(sv *domain.Survey, now time.Time) error) (*domain.Survey, error) {
	var out *domain.Survey
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSurveys := repository.NewSQLiteSurveyRepo(tx)
		sv, err := txSurveys.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(sv, time.Now().UTC()); err != nil {
			return err
		}
		if err := txSurveys.Update(ctx, sv); err != nil {
			return err
		}
		out = sv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
