package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWorkflow_ProblemToProject walks a workshop from its first problem to a
// promoted project.
func TestWorkflow_ProblemToProject(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	w := ts.createWorkshop(t, "W1")
	assert.Equal(t, domain.WorkshopTodo, w.Status)

	p, err := ts.problems.AddProblem(ctx, w.ID, "Office printer connectivity", 8, 3, "Sarah")
	require.NoError(t, err)
	assert.Equal(t, domain.HighAcuityLowStrategic, p.Quadrant(domain.DefaultMidpoint))

	p, err = ts.problems.MarkFocalArea(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, p.IsFocalArea)

	proj, err := ts.problems.PromoteToProject(ctx, p.ID, PromoteOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, proj.Progress)
	assert.Equal(t, domain.ProjectDiscovery, proj.Status)
	assert.Equal(t, p.ID, proj.OriginalProblem.ProblemID)
	assert.Equal(t, w.ID, proj.OriginalProblem.WorkshopID)
	assert.Equal(t, "W1", proj.OriginalProblem.WorkshopTitle)

	stored, err := ts.projects.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.OriginalProblem, stored.OriginalProblem)

	unchanged, err := ts.problems.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, unchanged.IsFocalArea, "promotion leaves the problem alone")
}

// TestWorkflow_SurveyToProject runs a survey, harvests a response into
// problems and promotes the suggested focal area.
func TestWorkflow_SurveyToProject(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	sarah := domain.Participant{ID: "sarah", Name: "Sarah Chen", Email: "sarah@example.com", Role: "Tech Lead"}
	mike := domain.Participant{ID: "mike", Name: "Mike Johnson", Email: "mike@example.com", Role: "Ops"}
	w, s := ts.activeSurvey(t, sarah, mike)

	resp, err := ts.surveys.RecordResponse(ctx, s.ID, "sarah", []domain.Answer{
		{QuestionID: domain.ProblemQuestionID(1), Value: domain.TextValue("Legacy system performance")},
		{QuestionID: domain.ProblemQuestionID(2), Value: domain.TextValue("Manual deployment steps")},
		{QuestionID: domain.QuestionIDAcuity, Value: domain.NumberValue(8)},
		{QuestionID: domain.QuestionIDStrategicImportance, Value: domain.NumberValue(3)},
	})
	require.NoError(t, err)

	problems, err := ts.surveys.HarvestProblems(ctx, s.ID, resp.ID)
	require.NoError(t, err)
	require.Len(t, problems, 2)
	assert.Equal(t, "Sarah Chen", problems[0].SubmittedBy)
	assert.True(t, problems[0].IsFocalArea)

	results, err := ts.surveys.Results(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, results.RosterSize)
	assert.Equal(t, 1, results.Submitted)

	for i := 0; i < 2; i++ {
		_, err = ts.workshops.Advance(ctx, w.ID)
		require.NoError(t, err)
	}

	proj, err := ts.problems.PromoteToProject(ctx, problems[0].ID, PromoteOptions{Title: "Speed up legacy system"})
	require.NoError(t, err, "a completed workshop's problems can still be promoted")
	assert.Equal(t, "Speed up legacy system", proj.Title)

	sum, err := ts.dashboard.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.CompletedWorkshops)
	assert.Equal(t, 2, sum.TotalParticipants)
	assert.Equal(t, 2, sum.OpportunitiesIdentified)
	assert.Equal(t, 1, sum.ProjectsCreated)
}
