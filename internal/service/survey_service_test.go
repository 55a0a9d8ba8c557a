package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/atelier/internal/db"
	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/alexanderramin/atelier/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstantiate_DefaultTemplate(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	w := ts.createWorkshop(t, "Discovery")

	s, err := ts.surveys.Instantiate(ctx, w.ID, "default")
	require.NoError(t, err)
	assert.Equal(t, domain.SurveyDraft, s.Status)
	require.Len(t, s.Questions, 5)
	assert.Equal(t, domain.ProblemQuestionID(1), s.Questions[0].ID)
	assert.Equal(t, domain.QuestionIDStrategicImportance, s.Questions[4].ID)

	_, err = ts.surveys.Instantiate(ctx, "missing", "default")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = ts.surveys.Instantiate(ctx, w.ID, "no-such-template")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	listed, err := ts.surveys.ListByWorkshop(ctx, w.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestAddQuestion_OnlyWhileDraft(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	w := ts.createWorkshop(t, "Discovery")
	s, err := ts.surveys.Instantiate(ctx, w.ID, "default")
	require.NoError(t, err)

	q := domain.SurveyQuestion{ID: "team", Text: "Which team are you on?", Type: domain.QuestionMultipleChoice, Options: []string{"Ops", "Dev"}}
	s, err = ts.surveys.AddQuestion(ctx, s.ID, q)
	require.NoError(t, err)
	assert.Len(t, s.Questions, 6)

	_, err = ts.surveys.Activate(ctx, s.ID)
	require.NoError(t, err)
	_, err = ts.surveys.AddQuestion(ctx, s.ID, domain.SurveyQuestion{ID: "late", Text: "Too late", Type: domain.QuestionText})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	stored, err := ts.surveys.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Questions, 6)
	assert.Equal(t, []string{"Ops", "Dev"}, stored.Questions[5].Options)
}

func TestSurveyLifecycle(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	_, s := ts.activeSurvey(t)

	_, err := ts.surveys.Activate(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	s, err = ts.surveys.Close(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SurveyClosed, s.Status)

	_, err = ts.surveys.Close(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestRecordResponse_MarksParticipantSubmitted(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	sarah := testutil.NewTestParticipant("Sarah")
	mike := testutil.NewTestParticipant("Mike")
	w, s := ts.activeSurvey(t, sarah, mike)

	resp, err := ts.surveys.RecordResponse(ctx, s.ID, sarah.ID, testutil.NewTestAnswers("Slow approvals", 7, 4))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, s.ID, resp.SurveyID)

	stored, err := ts.workshops.GetByID(ctx, w.ID)
	require.NoError(t, err)
	flags := map[string]bool{}
	for _, p := range stored.Participants {
		flags[p.ID] = p.HasSubmittedSurvey
	}
	assert.True(t, flags[sarah.ID])
	assert.False(t, flags[mike.ID])

	assert.Equal(t, "record-response", ts.observer.last().Name)
	assert.Equal(t, resp.ID, ts.observer.last().Fields["response_id"])
}

func TestRecordResponse_DuplicateRejected(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	sarah := testutil.NewTestParticipant("Sarah")
	_, s := ts.activeSurvey(t, sarah)

	_, err := ts.surveys.RecordResponse(ctx, s.ID, sarah.ID, testutil.NewTestAnswers("First", 7, 4))
	require.NoError(t, err)

	_, err = ts.surveys.RecordResponse(ctx, s.ID, sarah.ID, testutil.NewTestAnswers("Second", 2, 2))
	assert.ErrorIs(t, err, domain.ErrDuplicateResponse)

	stored, err := ts.surveys.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, stored.Responses, 1)
	v, _ := stored.Responses[0].Value(domain.ProblemQuestionID(1))
	assert.Equal(t, "First", v.String())
}

func TestRecordResponse_Rejections(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	sarah := testutil.NewTestParticipant("Sarah")
	_, s := ts.activeSurvey(t, sarah)

	_, err := ts.surveys.RecordResponse(ctx, s.ID, "stranger", testutil.NewTestAnswers("x", 5, 5))
	assert.ErrorIs(t, err, domain.ErrNotFound, "only roster members may respond")

	_, err = ts.surveys.RecordResponse(ctx, s.ID, sarah.ID, testutil.NewTestAnswers("x", 11, 5))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = ts.surveys.RecordResponse(ctx, s.ID, sarah.ID, []domain.Answer{
		{QuestionID: domain.QuestionIDAcuity, Value: domain.NumberValue(5)},
	})
	assert.ErrorIs(t, err, domain.ErrValidation, "required questions must be answered")

	_, err = ts.surveys.Close(ctx, s.ID)
	require.NoError(t, err)
	_, err = ts.surveys.RecordResponse(ctx, s.ID, sarah.ID, testutil.NewTestAnswers("x", 5, 5))
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	stored, err := ts.surveys.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Responses)
}

func TestRecordResponse_RollsBackWhenRosterUpdateFails(t *testing.T) {
	injected := errors.New("disk full")
	// Write 1 stores the response, write 2 updates the workshop row.
	ts := newTestServicesWithUoW(t, func(database *sql.DB) db.UnitOfWork {
		return &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: injected}
	})
	ctx := context.Background()

	sarah := testutil.NewTestParticipant("Sarah")
	plain := ts.withPlainUoW(t)
	w := testutil.NewTestWorkshop("Rollback", testutil.WithParticipants(sarah))
	require.NoError(t, plain.workshops.Create(ctx, w))
	s, err := plain.surveys.Instantiate(ctx, w.ID, "default")
	require.NoError(t, err)
	_, err = plain.surveys.Activate(ctx, s.ID)
	require.NoError(t, err)

	_, err = ts.surveys.RecordResponse(ctx, s.ID, sarah.ID, testutil.NewTestAnswers("Lost", 6, 6))
	require.ErrorIs(t, err, injected)

	stored, err := ts.surveys.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Responses)

	ws, err := ts.workshops.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.False(t, ws.Participants[0].HasSubmittedSurvey)
}

func TestAverageRating(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	a := testutil.NewTestParticipant("A")
	b := testutil.NewTestParticipant("B")
	_, s := ts.activeSurvey(t, a, b)

	avg, err := ts.surveys.AverageRating(ctx, s.ID, domain.QuestionIDAcuity)
	require.NoError(t, err)
	assert.Zero(t, avg)

	_, err = ts.surveys.RecordResponse(ctx, s.ID, a.ID, testutil.NewTestAnswers("p", 8, 3))
	require.NoError(t, err)
	_, err = ts.surveys.RecordResponse(ctx, s.ID, b.ID, testutil.NewTestAnswers("q", 5, 6))
	require.NoError(t, err)

	avg, err = ts.surveys.AverageRating(ctx, s.ID, domain.QuestionIDAcuity)
	require.NoError(t, err)
	assert.InDelta(t, 6.5, avg, 1e-9)

	_, err = ts.surveys.AverageRating(ctx, s.ID, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	res, err := ts.surveys.Results(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Submitted)
	require.Len(t, res.Questions, 2)
	assert.Equal(t, domain.QuestionIDStrategicImportance, res.Questions[1].Question.ID)
	assert.Equal(t, 2, res.Questions[1].Answered)
	assert.InDelta(t, 4.5, res.Questions[1].Average, 1e-9)
}

func TestHarvestProblems_Idempotent(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	sarah := testutil.NewTestParticipant("Sarah")
	w, s := ts.activeSurvey(t, sarah)

	resp, err := ts.surveys.RecordResponse(ctx, s.ID, sarah.ID, []domain.Answer{
		{QuestionID: domain.ProblemQuestionID(1), Value: domain.TextValue("Tooling sprawl")},
		{QuestionID: domain.ProblemQuestionID(3), Value: domain.TextValue("  ")},
		{QuestionID: domain.QuestionIDAcuity, Value: domain.NumberValue(4)},
		{QuestionID: domain.QuestionIDStrategicImportance, Value: domain.NumberValue(9)},
	})
	require.NoError(t, err)

	created, err := ts.surveys.HarvestProblems(ctx, s.ID, resp.ID)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "Tooling sprawl", created[0].Description)
	assert.Equal(t, "Sarah", created[0].SubmittedBy)
	assert.Equal(t, domain.LowAcuityHighStrategic, created[0].Quadrant(domain.DefaultMidpoint))

	again, err := ts.surveys.HarvestProblems(ctx, s.ID, resp.ID)
	require.NoError(t, err)
	assert.Empty(t, again)

	problems, err := ts.problems.ListByWorkshop(ctx, w.ID)
	require.NoError(t, err)
	assert.Len(t, problems, 1)

	_, err = ts.surveys.HarvestProblems(ctx, s.ID, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHarvestProblems_RejectsFractionalScore(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	sarah := testutil.NewTestParticipant("Sarah")
	_, s := ts.activeSurvey(t, sarah)

	resp, err := ts.surveys.RecordResponse(ctx, s.ID, sarah.ID, testutil.NewTestAnswers("Half-rated", 6.5, 3))
	require.NoError(t, err)

	_, err = ts.surveys.HarvestProblems(ctx, s.ID, resp.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestInstantiate_FromTemplateFile(t *testing.T) {
	dir := t.TempDir()
	doc := `id: retro
title: Retrospective
problem_identification:
  max_problems: 1
problem_rating:
  acuity_scale: {min: 1, max: 5}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "retro.yaml"), []byte(doc), 0o644))

	ts := newTestServices(t)
	surveys := NewSurveyService(
		ts.surveyRepo, ts.workshopRepo, NewTemplateService(dir), ts.uow, domain.DefaultRatingModel(),
	)
	ctx := context.Background()
	w := ts.createWorkshop(t, "Retro")

	s, err := surveys.Instantiate(ctx, w.ID, "retro")
	require.NoError(t, err)
	assert.Equal(t, "retro", s.TemplateID)
	require.Len(t, s.Questions, 3)
	acuity, err := s.Question(domain.QuestionIDAcuity)
	require.NoError(t, err)
	require.NotNil(t, acuity.MaxValue)
	assert.Equal(t, 5.0, *acuity.MaxValue)
}

func TestRecordResponse_NonFiniteAnswerIsValidationError(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	sarah := testutil.NewTestParticipant("Sarah")
	w, s := ts.activeSurvey(t, sarah)

	_, err := ts.surveys.RecordResponse(ctx, s.ID, sarah.ID, testutil.NewTestAnswers("Unrated", math.NaN(), 4))
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = ts.surveys.RecordResponse(ctx, s.ID, sarah.ID, testutil.NewTestAnswers("Unrated", 4, math.Inf(1)))
	assert.ErrorIs(t, err, domain.ErrValidation)

	stored, err := ts.surveys.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Responses)
	avg, err := ts.surveys.AverageRating(ctx, s.ID, domain.QuestionIDAcuity)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)

	roster, err := ts.workshops.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.False(t, roster.Participants[0].HasSubmittedSurvey)
}

func TestInstantiate_RejectsTemplateWiderThanProblemScale(t *testing.T) {
	dir := t.TempDir()
	doc := `id: wide
title: Wide Scales
problem_identification:
  max_problems: 1
problem_rating:
  acuity_scale: {min: 1, max: 20}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wide.yaml"), []byte(doc), 0o644))

	ts := newTestServices(t)
	surveys := NewSurveyService(
		ts.surveyRepo, ts.workshopRepo, NewTemplateService(dir), ts.uow, domain.DefaultRatingModel(),
	)
	ctx := context.Background()
	w := ts.createWorkshop(t, "Wide")

	_, err := surveys.Instantiate(ctx, w.ID, "wide")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "acuity_scale")

	created, err := surveys.ListByWorkshop(ctx, w.ID)
	require.NoError(t, err)
	assert.Empty(t, created)
}
