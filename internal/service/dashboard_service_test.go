package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/alexanderramin/atelier/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary_Empty(t *testing.T) {
	ts := newTestServices(t)

	sum, err := ts.dashboard.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sum.TotalWorkshops)
	assert.Zero(t, sum.ProjectsCreated)
	assert.Len(t, sum.ByQuadrant, len(domain.Quadrants))
	for _, q := range domain.Quadrants {
		assert.Zero(t, sum.ByQuadrant[q])
	}
}

func TestSummary_CountsAcrossWorkshops(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	done := ts.createWorkshop(t, "Done", testutil.NewTestParticipant("A"), testutil.NewTestParticipant("B"))
	open := ts.createWorkshop(t, "Open", testutil.NewTestParticipant("C"))
	for i := 0; i < 2; i++ {
		_, err := ts.workshops.Advance(ctx, done.ID)
		require.NoError(t, err)
	}

	focal, err := ts.problems.AddProblem(ctx, done.ID, "Urgent", 9, 2, "")
	require.NoError(t, err)
	_, err = ts.problems.AddProblem(ctx, done.ID, "Big bet", 3, 9, "")
	require.NoError(t, err)
	manual, err := ts.problems.AddProblem(ctx, open.ID, "Both", 8, 8, "")
	require.NoError(t, err)
	_, err = ts.problems.MarkFocalArea(ctx, manual.ID)
	require.NoError(t, err)
	_, err = ts.problems.PromoteToProject(ctx, focal.ID, PromoteOptions{})
	require.NoError(t, err)

	sum, err := ts.dashboard.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.TotalWorkshops)
	assert.Equal(t, 1, sum.CompletedWorkshops)
	assert.Equal(t, 3, sum.TotalParticipants)
	assert.Equal(t, 3, sum.OpportunitiesIdentified)
	assert.Equal(t, 2, sum.FocalAreas)
	assert.Equal(t, 1, sum.ProjectsCreated)
	assert.Equal(t, 1, sum.ByQuadrant[domain.HighAcuityLowStrategic])
	assert.Equal(t, 1, sum.ByQuadrant[domain.LowAcuityHighStrategic])
	assert.Equal(t, 1, sum.ByQuadrant[domain.HighAcuityHighStrategic])
	assert.Equal(t, 0, sum.ByQuadrant[domain.LowAcuityLowStrategic])
}

func TestSummarize_UsesMidpoint(t *testing.T) {
	p := testutil.NewTestProblem("w", "Borderline", testutil.WithScores(6, 6))

	low := summarize(nil, []*domain.Problem{p}, nil, 7)
	high := summarize(nil, []*domain.Problem{p}, nil, 5)
	assert.Equal(t, 1, low.ByQuadrant[domain.LowAcuityLowStrategic])
	assert.Equal(t, 1, high.ByQuadrant[domain.HighAcuityHighStrategic])
}
