package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promotedProject(t *testing.T, ts *testServices) *domain.Project {
	t.Helper()
	ctx := context.Background()
	w := ts.createWorkshop(t, "Projects")
	p, err := ts.problems.AddProblem(ctx, w.ID, "Invoice errors", 8, 2, "Ana")
	require.NoError(t, err)
	proj, err := ts.problems.PromoteToProject(ctx, p.ID, PromoteOptions{})
	require.NoError(t, err)
	return proj
}

func TestUpdateProgress(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	proj := promotedProject(t, ts)

	for _, pct := range []int{0, 45, 100, 30} {
		got, err := ts.projects.UpdateProgress(ctx, proj.ID, pct)
		require.NoError(t, err)
		assert.Equal(t, pct, got.Progress)
	}

	for _, pct := range []int{-1, 101} {
		_, err := ts.projects.UpdateProgress(ctx, proj.ID, pct)
		assert.ErrorIs(t, err, domain.ErrOutOfRange)
	}

	stored, err := ts.projects.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, stored.Progress, "a rejected update leaves progress unchanged")

	_, err = ts.projects.UpdateProgress(ctx, "missing", 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateMilestone_ReplacesPending(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	proj := promotedProject(t, ts)

	due := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	_, err := ts.projects.CreateMilestone(ctx, proj.ID, "Pilot", due)
	require.NoError(t, err)
	got, err := ts.projects.CreateMilestone(ctx, proj.ID, "Rollout", due.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.NotNil(t, got.NextMilestone)
	assert.Equal(t, "Rollout", got.NextMilestone.Title)

	_, err = ts.projects.CreateMilestone(ctx, proj.ID, " ", due)
	assert.ErrorIs(t, err, domain.ErrValidation)

	stored, err := ts.projects.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.NextMilestone)
	assert.Equal(t, "Rollout", stored.NextMilestone.Title)
	assert.Equal(t, "2024-08-01", stored.NextMilestone.DueDate.Format("2006-01-02"))
}

func TestSetStatus(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	proj := promotedProject(t, ts)

	got, err := ts.projects.SetStatus(ctx, proj.ID, domain.ProjectLive)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectLive, got.Status)

	got, err = ts.projects.SetStatus(ctx, proj.ID, domain.ProjectDiscovery)
	require.NoError(t, err, "project status may move backwards")
	assert.Equal(t, domain.ProjectDiscovery, got.Status)

	_, err = ts.projects.SetStatus(ctx, proj.ID, "archived")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStakeholders(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	proj := promotedProject(t, ts)

	got, err := ts.projects.AddStakeholder(ctx, proj.ID, domain.Stakeholder{Name: "Priya", Role: "Sponsor", Company: "Acme"})
	require.NoError(t, err)
	require.Len(t, got.Stakeholders, 1)
	priya := got.Stakeholders[0]
	assert.NotEmpty(t, priya.ID)

	priya.Role = "Executive sponsor"
	_, err = ts.projects.AddStakeholder(ctx, proj.ID, priya)
	require.NoError(t, err)
	_, err = ts.projects.AddStakeholder(ctx, proj.ID, domain.Stakeholder{ID: "tom", Name: "Tom"})
	require.NoError(t, err)

	stored, err := ts.projects.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, stored.Stakeholders, 2)
	assert.Equal(t, "Executive sponsor", stored.Stakeholders[0].Role)

	_, err = ts.projects.RemoveStakeholder(ctx, proj.ID, priya.ID)
	require.NoError(t, err)
	_, err = ts.projects.RemoveStakeholder(ctx, proj.ID, priya.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = ts.projects.AddStakeholder(ctx, proj.ID, domain.Stakeholder{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	stored, err = ts.projects.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, stored.Stakeholders, 1)
	assert.Equal(t, "tom", stored.Stakeholders[0].ID)
}
