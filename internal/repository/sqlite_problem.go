package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/atelier/internal/db"
	"github.com/alexanderramin/atelier/internal/domain"
)

const problemColumns = `id, workshop_id, description, acuity, strategic_importance, submitted_by,
		is_focal_area, focal_source, created_at, updated_at`

// SQLiteProblemRepo implements ProblemRepo using a SQLite database.
type SQLiteProblemRepo struct {
	db db.DBTX
}

// NewSQLiteProblemRepo creates a new SQLiteProblemRepo.
func NewSQLiteProblemRepo(db db.DBTX) *SQLiteProblemRepo {
	return &SQLiteProblemRepo{db: db}
}

func (r *SQLiteProblemRepo) Create(ctx context.Context, p *domain.Problem) error {
	query := `INSERT INTO problems (id, workshop_id, seq, description, acuity, strategic_importance,
		submitted_by, is_focal_area, focal_source, created_at, updated_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM problems WHERE workshop_id = ?), ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.WorkshopID,
		p.WorkshopID,
		p.Description,
		p.Acuity,
		p.StrategicImportance,
		p.SubmittedBy,
		boolToInt(p.IsFocalArea),
		string(p.FocalSource),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting problem: %w", err)
	}
	for _, n := range p.Notes {
		if err := r.AppendNote(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteProblemRepo) GetByID(ctx context.Context, id string) (*domain.Problem, error) {
	query := `SELECT ` + problemColumns + ` FROM problems WHERE id = ?`
	p, err := r.scanProblem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "problem", id)
	}
	notes, err := r.notesFor(ctx, `WHERE problem_id = ?`, id)
	if err != nil {
		return nil, err
	}
	p.Notes = notes[p.ID]
	return p, nil
}

func (r *SQLiteProblemRepo) ListByWorkshop(ctx context.Context, workshopID string) ([]*domain.Problem, error) {
	problems, err := r.query(ctx, `SELECT `+problemColumns+` FROM problems WHERE workshop_id = ? ORDER BY seq`, workshopID)
	if err != nil {
		return nil, err
	}
	notes, err := r.notesFor(ctx, `WHERE problem_id IN (SELECT id FROM problems WHERE workshop_id = ?)`, workshopID)
	if err != nil {
		return nil, err
	}
	for _, p := range problems {
		p.Notes = notes[p.ID]
	}
	return problems, nil
}

func (r *SQLiteProblemRepo) List(ctx context.Context) ([]*domain.Problem, error) {
	problems, err := r.query(ctx, `SELECT `+problemColumns+` FROM problems ORDER BY created_at, seq`)
	if err != nil {
		return nil, err
	}
	notes, err := r.notesFor(ctx, ``)
	if err != nil {
		return nil, err
	}
	for _, p := range problems {
		p.Notes = notes[p.ID]
	}
	return problems, nil
}

// Update writes scores and the focal classification. Description, author and
// notes are not rewritten.
func (r *SQLiteProblemRepo) Update(ctx context.Context, p *domain.Problem) error {
	query := `UPDATE problems SET acuity = ?, strategic_importance = ?, is_focal_area = ?, focal_source = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Acuity,
		p.StrategicImportance,
		boolToInt(p.IsFocalArea),
		string(p.FocalSource),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating problem: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "problem", ID: p.ID}
	}
	return nil
}

func (r *SQLiteProblemRepo) AppendNote(ctx context.Context, n domain.Note) error {
	query := `INSERT INTO notes (id, problem_id, seq, content, created_by, created_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM notes WHERE problem_id = ?), ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.ProblemID, n.ProblemID, n.Content, n.CreatedBy, n.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting note: %w", err)
	}
	return nil
}

func (r *SQLiteProblemRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Problem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing problems: %w", err)
	}
	defer rows.Close()

	var problems []*domain.Problem
	for rows.Next() {
		p, err := r.scanProblem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning problem row: %w", err)
		}
		problems = append(problems, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating problems: %w", err)
	}
	return problems, nil
}

// notesFor loads notes matching where, grouped by problem id in append order.
func (r *SQLiteProblemRepo) notesFor(ctx context.Context, where string, args ...any) (map[string][]domain.Note, error) {
	query := `SELECT id, problem_id, content, created_by, created_at FROM notes ` + where + ` ORDER BY problem_id, seq`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.Note)
	for rows.Next() {
		var n domain.Note
		var createdAtStr string
		if err := rows.Scan(&n.ID, &n.ProblemID, &n.Content, &n.CreatedBy, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		if n.CreatedAt, err = parseTime(time.RFC3339, "created_at", createdAtStr); err != nil {
			return nil, err
		}
		out[n.ProblemID] = append(out[n.ProblemID], n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}
	return out, nil
}

func (r *SQLiteProblemRepo) scanProblem(row rowScanner) (*domain.Problem, error) {
	var p domain.Problem
	var focal int
	var sourceStr, createdAtStr, updatedAtStr string

	if err := row.Scan(
		&p.ID, &p.WorkshopID, &p.Description,
		&p.Acuity, &p.StrategicImportance, &p.SubmittedBy,
		&focal, &sourceStr, &createdAtStr, &updatedAtStr,
	); err != nil {
		return nil, err
	}
	p.IsFocalArea = intToBool(focal)
	p.FocalSource = domain.FocalSource(sourceStr)

	var err error
	if p.CreatedAt, err = parseTime(time.RFC3339, "created_at", createdAtStr); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(time.RFC3339, "updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &p, nil
}
