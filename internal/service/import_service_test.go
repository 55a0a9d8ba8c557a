package service

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/atelier/internal/db"
	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/alexanderramin/atelier/internal/importer"
	"github.com/alexanderramin/atelier/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func validImportSchema() *importer.ImportSchema {
	return &importer.ImportSchema{
		Workshop: importer.WorkshopImport{Title: "Imported Review", Date: "2024-03-12", Facilitator: "Dana"},
		Participants: []importer.ParticipantImport{
			{Name: "Ana", Email: "ana@example.com"},
		},
		Problems: []importer.ProblemImport{
			{Description: "Invoices arrive late", Acuity: intPtr(8), StrategicImportance: intPtr(3), SubmittedBy: "Ana"},
			{Description: "No pricing data", Acuity: intPtr(3), StrategicImportance: intPtr(9),
				Notes: []importer.NoteImport{{Content: "Ask finance", Author: "Dana"}}},
		},
	}
}

func TestImportWorkshop_PersistsEverything(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	res, err := ts.imports.ImportWorkshopFromSchema(ctx, validImportSchema())
	require.NoError(t, err)
	assert.Equal(t, 1, res.ParticipantCount)
	assert.Equal(t, 2, res.ProblemCount)
	assert.Equal(t, 1, res.NoteCount)

	w, err := ts.workshops.GetByID(ctx, res.Workshop.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dana", w.Facilitator)
	require.Len(t, w.Participants, 1)

	problems, err := ts.problems.ListByWorkshop(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, problems, 2)
	assert.Equal(t, "Invoices arrive late", problems[0].Description, "file order is kept")
	assert.True(t, problems[0].IsFocalArea)
	require.Len(t, problems[1].Notes, 1)
	assert.Equal(t, "Ask finance", problems[1].Notes[0].Content)

	assert.Equal(t, "import-workshop", ts.observer.last().Name)
	assert.Equal(t, w.ID, ts.observer.last().Fields["workshop_id"])
}

func TestImportWorkshop_ValidationListsEveryError(t *testing.T) {
	ts := newTestServices(t)
	schema := validImportSchema()
	schema.Workshop.Title = ""
	schema.Problems[1].StrategicImportance = intPtr(12)

	_, err := ts.imports.ImportWorkshopFromSchema(context.Background(), schema)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "(2 errors)")
	assert.Contains(t, err.Error(), "workshop.title is required")
	assert.Contains(t, err.Error(), "problems[1].strategic_importance")

	workshops, err := ts.workshops.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, workshops)
}

func TestImportWorkshop_RollbackOnProblemCreateFailure(t *testing.T) {
	// Writes: #1 workshop, #2 roster clear, #3 participant, #4 first problem,
	// #5 second problem.
	injected := errors.New("injected problem create failure")
	ts := newTestServicesWithUoW(t, func(database *sql.DB) db.UnitOfWork {
		return &testutil.FailOnNthExecUoW{DB: database, FailOn: 5, Err: injected}
	})
	ctx := context.Background()

	_, err := ts.imports.ImportWorkshopFromSchema(ctx, validImportSchema())
	require.ErrorIs(t, err, injected)

	workshops, err := ts.workshops.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, workshops)
	problems, err := ts.problems.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestImportWorkshop_FromFile(t *testing.T) {
	ts := newTestServices(t)
	path := filepath.Join(t.TempDir(), "workshop.json")
	doc := `{"workshop": {"title": "From File", "date": "2024-03-12", "status": "COMPLETE"},
		"problems": [{"description": "Slow builds", "acuity": 6, "strategic_importance": 7, "focal": true}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	res, err := ts.imports.ImportWorkshop(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkshopComplete, res.Workshop.Status)

	_, err = ts.imports.ImportWorkshop(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
