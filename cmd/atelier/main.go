package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alexanderramin/atelier/internal/auth"
	"github.com/alexanderramin/atelier/internal/cli"
	"github.com/alexanderramin/atelier/internal/config"
	"github.com/alexanderramin/atelier/internal/db"
	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/alexanderramin/atelier/internal/repository"
	"github.com/alexanderramin/atelier/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env in the working directory may set ATELIER_* for development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load(os.LookupEnv)
	if err != nil {
		return fmt.Errorf("reading configuration: %w", err)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	workshopRepo := repository.NewSQLiteWorkshopRepo(database)
	problemRepo := repository.NewSQLiteProblemRepo(database)
	surveyRepo := repository.NewSQLiteSurveyRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	userRepo := repository.NewSQLiteUserRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	model := domain.DefaultRatingModel()
	model.Midpoint = cfg.Midpoint
	templateSvc := service.NewTemplateService(cfg.TemplateDir)

	app := &cli.App{
		Workshops: service.NewWorkshopService(workshopRepo, uow, observer),
		Problems:  service.NewProblemService(problemRepo, uow, model, observer),
		Surveys:   service.NewSurveyService(surveyRepo, workshopRepo, templateSvc, uow, model, observer),
		Projects:  service.NewProjectService(projectRepo, uow, observer),
		Dashboard: service.NewDashboardService(workshopRepo, problemRepo, projectRepo, model.Midpoint),
		Templates: templateSvc,
		Imports:   service.NewImportService(uow, model, observer),
		Auth:      auth.NewProvider(userRepo),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
