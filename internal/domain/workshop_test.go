package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkshop() *Workshop {
	return &Workshop{ID: "w1", Title: "Enterprise Solutions", Date: testNow, Status: WorkshopTodo}
}

func TestAdvance_ForwardOnlyThenFails(t *testing.T) {
	w := newWorkshop()
	require.NoError(t, w.Advance(testNow))
	assert.Equal(t, WorkshopInProgress, w.Status)
	require.NoError(t, w.Advance(testNow))
	assert.Equal(t, WorkshopComplete, w.Status)

	err := w.Advance(testNow)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, WorkshopComplete, w.Status)
}

func TestScheduleSurvey(t *testing.T) {
	w := newWorkshop()
	date := testNow.AddDate(0, 0, 7)
	require.NoError(t, w.ScheduleSurvey(date, testNow))
	require.NotNil(t, w.SurveyScheduledDate)
	assert.Equal(t, date, *w.SurveyScheduledDate)

	w.Status = WorkshopComplete
	assert.ErrorIs(t, w.ScheduleSurvey(date, testNow), ErrInvalidState)
}

func TestRoster_AddRemove(t *testing.T) {
	w := newWorkshop()
	require.NoError(t, w.AddParticipant(Participant{ID: "u1", Name: "John", Email: "john@example.com"}, testNow))
	require.NoError(t, w.AddParticipant(Participant{ID: "u2", Name: "Sarah", Email: "sarah@example.com"}, testNow))
	assert.Len(t, w.Participants, 2)
	assert.Equal(t, "w1", w.Participants[0].WorkshopID)

	err := w.AddParticipant(Participant{ID: "u3", Name: "Dup", Email: "JOHN@example.com"}, testNow)
	assert.ErrorIs(t, err, ErrValidation)

	err = w.AddParticipant(Participant{ID: "u4", Name: "Bad", Email: "not-an-email"}, testNow)
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, w.RemoveParticipant("u1", testNow))
	assert.Len(t, w.Participants, 1)
	assert.Equal(t, "u2", w.Participants[0].ID)

	assert.ErrorIs(t, w.RemoveParticipant("u1", testNow), ErrNotFound)
}

func TestRoster_FrozenOnceComplete(t *testing.T) {
	w := newWorkshop()
	require.NoError(t, w.AddParticipant(Participant{ID: "u1", Name: "John", Email: "john@example.com"}, testNow))
	w.Status = WorkshopComplete

	err := w.AddParticipant(Participant{ID: "u2", Name: "Sarah", Email: "sarah@example.com"}, testNow)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, w.RemoveParticipant("u1", testNow), ErrInvalidState)
	assert.Len(t, w.Participants, 1)
}

func TestMarkSurveySubmitted_FlipsOnce(t *testing.T) {
	w := newWorkshop()
	require.NoError(t, w.AddParticipant(Participant{ID: "u1", Name: "John", Email: "john@example.com"}, testNow))

	changed, err := w.MarkSurveySubmitted("u1")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = w.MarkSurveySubmitted("u1")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, w.SubmissionCount())

	_, err = w.MarkSurveySubmitted("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkshopValidate(t *testing.T) {
	w := &Workshop{Title: "", Date: time.Now(), Status: WorkshopTodo}
	assert.ErrorIs(t, w.Validate(), ErrValidation)
	w.Title = "ok"
	w.Date = time.Time{}
	assert.ErrorIs(t, w.Validate(), ErrValidation)
}
