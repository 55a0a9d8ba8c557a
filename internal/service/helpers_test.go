package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/atelier/internal/db"
	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/alexanderramin/atelier/internal/repository"
	"github.com/alexanderramin/atelier/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testServices struct {
	db        *sql.DB
	uow       db.UnitOfWork
	observer  *recordingObserver
	workshops WorkshopService
	problems  ProblemService
	surveys   SurveyService
	projects  ProjectService
	dashboard DashboardService
	templates TemplateService
	imports   ImportService

	workshopRepo *repository.SQLiteWorkshopRepo
	surveyRepo   *repository.SQLiteSurveyRepo
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	return wireServices(t, database, testutil.NewTestUoW(database))
}

// newTestServicesWithUoW wires every service over a fresh in-memory database
// whose transactions run through the unit of work built by newUoW.
func newTestServicesWithUoW(t *testing.T, newUoW func(*sql.DB) db.UnitOfWork) *testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	return wireServices(t, database, newUoW(database))
}

// withPlainUoW returns services over the same database as ts with an
// ordinary unit of work, for setting up state ts itself would refuse to write.
func (ts *testServices) withPlainUoW(t *testing.T) *testServices {
	t.Helper()
	return wireServices(t, ts.db, testutil.NewTestUoW(ts.db))
}

func wireServices(t *testing.T, database *sql.DB, uow db.UnitOfWork) *testServices {
	t.Helper()
	ts := &testServices{db: database, uow: uow, observer: &recordingObserver{}}

	ts.workshopRepo = repository.NewSQLiteWorkshopRepo(database)
	ts.surveyRepo = repository.NewSQLiteSurveyRepo(database)
	problemRepo := repository.NewSQLiteProblemRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	model := domain.DefaultRatingModel()

	ts.templates = NewTemplateService(t.TempDir())
	ts.workshops = NewWorkshopService(ts.workshopRepo, uow, ts.observer)
	ts.problems = NewProblemService(problemRepo, uow, model, ts.observer)
	ts.surveys = NewSurveyService(ts.surveyRepo, ts.workshopRepo, ts.templates, uow, model, ts.observer)
	ts.projects = NewProjectService(projectRepo, uow, ts.observer)
	ts.dashboard = NewDashboardService(ts.workshopRepo, problemRepo, projectRepo, model.Midpoint)
	ts.imports = NewImportService(uow, model, ts.observer)
	return ts
}

func (ts *testServices) createWorkshop(t *testing.T, title string, participants ...domain.Participant) *domain.Workshop {
	t.Helper()
	w := testutil.NewTestWorkshop(title, testutil.WithParticipants(participants...))
	w.ID = ""
	require.NoError(t, ts.workshops.Create(context.Background(), w))
	return w
}

// activeSurvey creates a workshop with the given roster and an active survey
// built from the default template.
func (ts *testServices) activeSurvey(t *testing.T, participants ...domain.Participant) (*domain.Workshop, *domain.Survey) {
	t.Helper()
	ctx := context.Background()
	w := ts.createWorkshop(t, "Survey Workshop", participants...)
	s, err := ts.surveys.Instantiate(ctx, w.ID, "default")
	require.NoError(t, err)
	s, err = ts.surveys.Activate(ctx, s.ID)
	require.NoError(t, err)
	return w, s
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}
