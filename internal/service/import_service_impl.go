package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/atelier/internal/db"
	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/alexanderramin/atelier/internal/importer"
	"github.com/alexanderramin/atelier/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	model    domain.RatingModel
	observer UseCaseObserver
}

// NewImportService returns an ImportService that writes each import in a
// single transaction.
func NewImportService(uow db.UnitOfWork, model domain.RatingModel, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, model: model, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportWorkshop(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportWorkshopFromSchema(ctx, schema)
}

func (s *importService) ImportWorkshopFromSchema(ctx context.Context, schema *importer.ImportSchema) (res *ImportResult, err error) {
	fields := map[string]any{"title": schema.Workshop.Title, "problems": len(schema.Problems)}
	done := trackUseCase(ctx, s.observer, "import-workshop", fields)
	defer func() { done(err) }()

	if errs := importer.ValidateImportSchema(schema, s.model); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	batch, err := importer.Convert(schema, s.model, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	notes := 0
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txWorkshops := repository.NewSQLiteWorkshopRepo(tx)
		txProblems := repository.NewSQLiteProblemRepo(tx)

		if err := txWorkshops.Create(ctx, batch.Workshop); err != nil {
			return fmt.Errorf("creating workshop: %w", err)
		}
		for _, p := range batch.Problems {
			if err := txProblems.Create(ctx, p); err != nil {
				return fmt.Errorf("creating problem %q: %w", p.Description, err)
			}
			notes += len(p.Notes)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["workshop_id"] = batch.Workshop.ID
	return &ImportResult{
		Workshop:         batch.Workshop,
		ParticipantCount: len(batch.Workshop.Participants),
		ProblemCount:     len(batch.Problems),
		NoteCount:        notes,
	}, nil
}

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - " + e.Error())
	}
	return &domain.ValidationError{Reason: b.String()}
}
