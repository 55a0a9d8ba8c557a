package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

func TestNewProblem_DerivesFocalFromQuadrant(t *testing.T) {
	p, err := NewProblem("p1", "w1", "Office printer connectivity", 8, 3, "Sarah", DefaultRatingModel(), testNow)
	require.NoError(t, err)
	assert.Equal(t, HighAcuityLowStrategic, p.Quadrant(DefaultMidpoint))
	assert.True(t, p.IsFocalArea)
	assert.Equal(t, FocalDerived, p.FocalSource)

	q, err := NewProblem("p2", "w1", "AI integration", 4, 9, "Emily", DefaultRatingModel(), testNow)
	require.NoError(t, err)
	assert.False(t, q.IsFocalArea)
}

func TestNewProblem_Validation(t *testing.T) {
	_, err := NewProblem("p1", "w1", "   ", 5, 5, "", DefaultRatingModel(), testNow)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewProblem("p1", "w1", "desc", 0, 5, "", DefaultRatingModel(), testNow)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewProblem("p1", "w1", "desc", 5, 11, "", DefaultRatingModel(), testNow)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetScore_RederivesWhileDerived(t *testing.T) {
	p, err := NewProblem("p1", "w1", "desc", 8, 3, "", DefaultRatingModel(), testNow)
	require.NoError(t, err)
	require.True(t, p.IsFocalArea)

	require.NoError(t, p.SetScore(AxisStrategicImportance, 9, DefaultRatingModel(), testNow))
	assert.False(t, p.IsFocalArea)
	assert.Equal(t, 9, p.StrategicImportance)
}

func TestSetScore_KeepsManualOverride(t *testing.T) {
	p, err := NewProblem("p1", "w1", "desc", 9, 9, "", DefaultRatingModel(), testNow)
	require.NoError(t, err)
	p.SetFocalArea(true, testNow)

	require.NoError(t, p.SetScore(AxisAcuity, 2, DefaultRatingModel(), testNow))
	assert.True(t, p.IsFocalArea, "explicit override must survive score changes")
	assert.Equal(t, FocalManual, p.FocalSource)
}

func TestSetScore_OutOfRangeLeavesProblemUnchanged(t *testing.T) {
	p, err := NewProblem("p1", "w1", "desc", 8, 3, "", DefaultRatingModel(), testNow)
	require.NoError(t, err)

	err = p.SetScore(AxisAcuity, 42, DefaultRatingModel(), testNow.Add(time.Hour))
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, 8, p.Acuity)
	assert.Equal(t, testNow, p.UpdatedAt)
}

func TestResetFocalArea_RestoresSuggestion(t *testing.T) {
	p, err := NewProblem("p1", "w1", "desc", 8, 3, "", DefaultRatingModel(), testNow)
	require.NoError(t, err)
	p.SetFocalArea(false, testNow)
	assert.False(t, p.IsFocalArea)

	p.ResetFocalArea(DefaultMidpoint, testNow)
	assert.True(t, p.IsFocalArea)
	assert.Equal(t, FocalDerived, p.FocalSource)
}

func TestNewNote(t *testing.T) {
	p := &Problem{ID: "p1"}
	n, err := p.NewNote("n1", "  Affects daily operations ", "Alice", testNow)
	require.NoError(t, err)
	assert.Equal(t, "p1", n.ProblemID)
	assert.Equal(t, "Affects daily operations", n.Content)

	_, err = p.NewNote("n2", "", "Alice", testNow)
	assert.ErrorIs(t, err, ErrValidation)
}
