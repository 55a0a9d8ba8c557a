package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/alexanderramin/atelier/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("w1", "Printer fix")
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Printer fix", fetched.Title)
	assert.Equal(t, domain.ProjectDiscovery, fetched.Status)
	assert.Equal(t, 0, fetched.Progress)
	assert.Equal(t, proj.OriginalProblem, fetched.OriginalProblem)
	assert.Nil(t, fetched.NextMilestone)
	assert.Empty(t, fetched.Stakeholders)
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))
	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestProjectRepo_GetByProblemID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("w1", "Printer fix")
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByProblemID(ctx, proj.OriginalProblem.ProblemID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)

	_, err = repo.GetByProblemID(ctx, "other")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectRepo_OneProjectPerProblem(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("w1", "Printer fix")
	require.NoError(t, repo.Create(ctx, proj))

	again := testutil.NewTestProject("w1", "Printer fix again")
	again.OriginalProblem = proj.OriginalProblem
	assert.ErrorIs(t, repo.Create(ctx, again), domain.ErrInvalidState)
}

func TestProjectRepo_UpdateMilestoneAndStakeholders(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("w1", "Printer fix")
	require.NoError(t, repo.Create(ctx, proj))

	now := time.Now().UTC().Truncate(time.Second)
	due := now.AddDate(0, 1, 0)
	require.NoError(t, proj.SetMilestone("Vendor audit", due, now))
	require.NoError(t, proj.UpdateProgress(35, now))
	require.NoError(t, proj.SetStatus(domain.ProjectDevelopment, now))
	require.NoError(t, proj.AddStakeholder(domain.Stakeholder{ID: "s1", Name: "Sarah Chen", Role: "Tech Lead", Company: "Acme"}, now))
	require.NoError(t, proj.AddStakeholder(domain.Stakeholder{ID: "s2", Name: "Mike Johnson"}, now))
	require.NoError(t, repo.Update(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 35, fetched.Progress)
	assert.Equal(t, domain.ProjectDevelopment, fetched.Status)
	require.NotNil(t, fetched.NextMilestone)
	assert.Equal(t, "Vendor audit", fetched.NextMilestone.Title)
	assert.Equal(t, due.Format(dateLayout), fetched.NextMilestone.DueDate.Format(dateLayout))
	require.Len(t, fetched.Stakeholders, 2)
	assert.Equal(t, "Acme", fetched.Stakeholders[0].Company)

	require.NoError(t, proj.RemoveStakeholder("s1", now))
	require.NoError(t, repo.Update(ctx, proj))
	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Len(t, listed[0].Stakeholders, 1)
	assert.Equal(t, "s2", listed[0].Stakeholders[0].ID)
}
