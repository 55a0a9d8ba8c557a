package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/atelier/internal/db"
	"github.com/alexanderramin/atelier/internal/domain"
)

const projectColumns = `id, title, description, status, progress, start_date,
		problem_id, workshop_id, problem_description, workshop_title,
		milestone_title, milestone_due_date, created_at, updated_at`

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(db db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: db}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	title, due := milestoneColumns(p.NextMilestone)
	query := `INSERT INTO projects (id, seq, title, description, status, progress, start_date,
		problem_id, workshop_id, problem_description, workshop_title,
		milestone_title, milestone_due_date, created_at, updated_at)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM projects), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		string(p.Status),
		p.Progress,
		p.StartDate.Format(dateLayout),
		p.OriginalProblem.ProblemID,
		p.OriginalProblem.WorkshopID,
		p.OriginalProblem.Description,
		p.OriginalProblem.WorkshopTitle,
		title,
		due,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: projects.problem_id") {
			return &domain.InvalidStateError{
				Entity: "problem", ID: p.OriginalProblem.ProblemID, State: "already promoted", Op: "promote",
			}
		}
		return fmt.Errorf("inserting project: %w", err)
	}
	return r.replaceStakeholders(ctx, p)
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return r.getOne(ctx, `WHERE id = ?`, "project", id)
}

// GetByProblemID returns the project promoted from problemID.
func (r *SQLiteProjectRepo) GetByProblemID(ctx context.Context, problemID string) (*domain.Project, error) {
	return r.getOne(ctx, `WHERE problem_id = ?`, "project for problem", problemID)
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	var projects []*domain.Project
	for rows.Next() {
		p, err := r.scanProject(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	rows.Close()

	for _, p := range projects {
		if p.Stakeholders, err = r.listStakeholders(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	title, due := milestoneColumns(p.NextMilestone)
	query := `UPDATE projects SET title = ?, description = ?, status = ?, progress = ?, start_date = ?,
		milestone_title = ?, milestone_due_date = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Title,
		p.Description,
		string(p.Status),
		p.Progress,
		p.StartDate.Format(dateLayout),
		title,
		due,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "project", ID: p.ID}
	}
	return r.replaceStakeholders(ctx, p)
}

func (r *SQLiteProjectRepo) getOne(ctx context.Context, where, entity, key string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects `+where, key)
	p, err := r.scanProject(row)
	if err != nil {
		return nil, notFound(err, entity, key)
	}
	if p.Stakeholders, err = r.listStakeholders(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLiteProjectRepo) replaceStakeholders(ctx context.Context, p *domain.Project) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM stakeholders WHERE project_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clearing stakeholders: %w", err)
	}
	query := `INSERT INTO stakeholders (project_id, id, seq, name, role, company) VALUES (?, ?, ?, ?, ?, ?)`
	for i, s := range p.Stakeholders {
		if _, err := r.db.ExecContext(ctx, query, p.ID, s.ID, i+1, s.Name, s.Role, s.Company); err != nil {
			return fmt.Errorf("inserting stakeholder %s: %w", s.ID, err)
		}
	}
	return nil
}

func (r *SQLiteProjectRepo) listStakeholders(ctx context.Context, projectID string) ([]domain.Stakeholder, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, role, company FROM stakeholders WHERE project_id = ? ORDER BY seq`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing stakeholders: %w", err)
	}
	defer rows.Close()

	var out []domain.Stakeholder
	for rows.Next() {
		var s domain.Stakeholder
		if err := rows.Scan(&s.ID, &s.Name, &s.Role, &s.Company); err != nil {
			return nil, fmt.Errorf("scanning stakeholder: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stakeholders: %w", err)
	}
	return out, nil
}

func (r *SQLiteProjectRepo) scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var statusStr, startStr, createdAtStr, updatedAtStr string
	var milestoneTitle, milestoneDue sql.NullString

	if err := row.Scan(
		&p.ID, &p.Title, &p.Description, &statusStr, &p.Progress, &startStr,
		&p.OriginalProblem.ProblemID, &p.OriginalProblem.WorkshopID,
		&p.OriginalProblem.Description, &p.OriginalProblem.WorkshopTitle,
		&milestoneTitle, &milestoneDue, &createdAtStr, &updatedAtStr,
	); err != nil {
		return nil, err
	}
	p.Status = domain.ProjectStatus(statusStr)

	if milestoneTitle.Valid {
		if due := parseNullableTime(milestoneDue, dateLayout); due != nil {
			p.NextMilestone = &domain.Milestone{Title: milestoneTitle.String, DueDate: *due}
		}
	}

	var err error
	if p.StartDate, err = parseTime(dateLayout, "start_date", startStr); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(time.RFC3339, "created_at", createdAtStr); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(time.RFC3339, "updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &p, nil
}

func milestoneColumns(m *domain.Milestone) (title, due any) {
	if m == nil {
		return nil, nil
	}
	return m.Title, m.DueDate.Format(dateLayout)
}
