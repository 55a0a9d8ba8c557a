package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func focalProblem(t *testing.T) *Problem {
	t.Helper()
	p, err := NewProblem("p1", "w1", "Office printer connectivity", 8, 3, "Sarah", DefaultRatingModel(), testNow)
	require.NoError(t, err)
	require.True(t, p.IsFocalArea)
	return p
}

func TestPromoteProblem_RequiresFocal(t *testing.T) {
	p := focalProblem(t)
	p.SetFocalArea(false, testNow)
	_, err := PromoteProblem("pr1", p, nil, "", "", testNow, testNow)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestPromoteProblem_BackReference(t *testing.T) {
	p := focalProblem(t)
	w := &Workshop{ID: "w1", Title: "Q4 Technical Review"}
	proj, err := PromoteProblem("pr1", p, w, "", "", testNow, testNow)
	require.NoError(t, err)

	assert.Equal(t, "p1", proj.OriginalProblem.ProblemID)
	assert.Equal(t, "w1", proj.OriginalProblem.WorkshopID)
	assert.Equal(t, "Q4 Technical Review", proj.OriginalProblem.WorkshopTitle)
	assert.Equal(t, "Office printer connectivity", proj.Title)
	assert.Equal(t, 0, proj.Progress)
	assert.Equal(t, ProjectDiscovery, proj.Status)
	assert.True(t, p.IsFocalArea, "promotion does not touch the problem")
}

func TestUpdateProgress(t *testing.T) {
	proj, err := PromoteProblem("pr1", focalProblem(t), nil, "Printer fix", "", testNow, testNow)
	require.NoError(t, err)

	require.NoError(t, proj.UpdateProgress(60, testNow))
	require.NoError(t, proj.UpdateProgress(40, testNow), "progress may be corrected downward")
	assert.Equal(t, 40, proj.Progress)

	assert.ErrorIs(t, proj.UpdateProgress(101, testNow), ErrOutOfRange)
	assert.ErrorIs(t, proj.UpdateProgress(-1, testNow), ErrOutOfRange)
	assert.Equal(t, 40, proj.Progress)
}

func TestSetMilestone_Replaces(t *testing.T) {
	proj, err := PromoteProblem("pr1", focalProblem(t), nil, "", "", testNow, testNow)
	require.NoError(t, err)

	require.NoError(t, proj.SetMilestone("Audit", testNow.AddDate(0, 1, 0), testNow))
	require.NoError(t, proj.SetMilestone("Pilot", testNow.AddDate(0, 2, 0), testNow))
	require.NotNil(t, proj.NextMilestone)
	assert.Equal(t, "Pilot", proj.NextMilestone.Title)

	assert.ErrorIs(t, proj.SetMilestone(" ", testNow, testNow), ErrValidation)
}

func TestStakeholders_KeyedByID(t *testing.T) {
	proj, err := PromoteProblem("pr1", focalProblem(t), nil, "", "", testNow, testNow)
	require.NoError(t, err)

	require.NoError(t, proj.AddStakeholder(Stakeholder{ID: "s1", Name: "Sarah Chen", Role: "Tech Lead"}, testNow))
	require.NoError(t, proj.AddStakeholder(Stakeholder{ID: "s2", Name: "Mike Johnson"}, testNow))
	require.NoError(t, proj.AddStakeholder(Stakeholder{ID: "s1", Name: "Sarah Chen", Role: "Architect"}, testNow))
	require.Len(t, proj.Stakeholders, 2)
	assert.Equal(t, "Architect", proj.Stakeholders[0].Role)

	require.NoError(t, proj.RemoveStakeholder("s1", testNow))
	assert.Len(t, proj.Stakeholders, 1)
	assert.ErrorIs(t, proj.RemoveStakeholder("s1", testNow), ErrNotFound)
}

func TestSetStatus(t *testing.T) {
	proj, err := PromoteProblem("pr1", focalProblem(t), nil, "", "", testNow, testNow)
	require.NoError(t, err)
	require.NoError(t, proj.SetStatus(ProjectLive, testNow))
	assert.ErrorIs(t, proj.SetStatus("shipped", testNow), ErrValidation)
	assert.Equal(t, ProjectLive, proj.Status)
}
