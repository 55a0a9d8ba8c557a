package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/atelier/internal/db"
	"github.com/alexanderramin/atelier/internal/domain"
)

const workshopColumns = `id, title, description, facilitator, date, status,
		survey_scheduled_date, created_at, updated_at`

// SQLiteWorkshopRepo implements WorkshopRepo using a SQLite database.
type SQLiteWorkshopRepo struct {
	db db.DBTX
}

// NewSQLiteWorkshopRepo creates a new SQLiteWorkshopRepo.
func NewSQLiteWorkshopRepo(db db.DBTX) *SQLiteWorkshopRepo {
	return &SQLiteWorkshopRepo{db: db}
}

func (r *SQLiteWorkshopRepo) Create(ctx context.Context, w *domain.Workshop) error {
	query := `INSERT INTO workshops (id, seq, title, description, facilitator, date, status,
		survey_scheduled_date, created_at, updated_at)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM workshops), ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.Title,
		w.Description,
		w.Facilitator,
		w.Date.Format(dateLayout),
		string(w.Status),
		nullableTimeToString(w.SurveyScheduledDate, dateLayout),
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting workshop: %w", err)
	}
	return r.replaceParticipants(ctx, w)
}

func (r *SQLiteWorkshopRepo) GetByID(ctx context.Context, id string) (*domain.Workshop, error) {
	query := `SELECT ` + workshopColumns + ` FROM workshops WHERE id = ?`
	w, err := r.scanWorkshop(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "workshop", id)
	}
	if w.Participants, err = r.listParticipants(ctx, w.ID); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *SQLiteWorkshopRepo) List(ctx context.Context) ([]*domain.Workshop, error) {
	query := `SELECT ` + workshopColumns + ` FROM workshops ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing workshops: %w", err)
	}

	var workshops []*domain.Workshop
	for rows.Next() {
		w, err := r.scanWorkshop(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning workshop row: %w", err)
		}
		workshops = append(workshops, w)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating workshops: %w", err)
	}
	rows.Close()

	// Rosters are loaded after the cursor is closed; an in-memory database
	// has a single connection.
	for _, w := range workshops {
		if w.Participants, err = r.listParticipants(ctx, w.ID); err != nil {
			return nil, err
		}
	}
	return workshops, nil
}

func (r *SQLiteWorkshopRepo) Update(ctx context.Context, w *domain.Workshop) error {
	query := `UPDATE workshops SET title = ?, description = ?, facilitator = ?, date = ?, status = ?,
		survey_scheduled_date = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		w.Title,
		w.Description,
		w.Facilitator,
		w.Date.Format(dateLayout),
		string(w.Status),
		nullableTimeToString(w.SurveyScheduledDate, dateLayout),
		w.UpdatedAt.Format(time.RFC3339),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating workshop: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "workshop", ID: w.ID}
	}
	return r.replaceParticipants(ctx, w)
}

// replaceParticipants rewrites the roster so that seq follows slice order.
func (r *SQLiteWorkshopRepo) replaceParticipants(ctx context.Context, w *domain.Workshop) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM participants WHERE workshop_id = ?`, w.ID); err != nil {
		return fmt.Errorf("clearing participants: %w", err)
	}
	query := `INSERT INTO participants (id, workshop_id, seq, name, email, role, has_submitted_survey)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for i, p := range w.Participants {
		_, err := r.db.ExecContext(ctx, query,
			p.ID, w.ID, i+1, p.Name, p.Email, p.Role, boolToInt(p.HasSubmittedSurvey))
		if err != nil {
			return fmt.Errorf("inserting participant %s: %w", p.ID, err)
		}
	}
	return nil
}

func (r *SQLiteWorkshopRepo) listParticipants(ctx context.Context, workshopID string) ([]domain.Participant, error) {
	query := `SELECT id, workshop_id, name, email, role, has_submitted_survey
		FROM participants WHERE workshop_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, workshopID)
	if err != nil {
		return nil, fmt.Errorf("listing participants: %w", err)
	}
	defer rows.Close()

	var out []domain.Participant
	for rows.Next() {
		var p domain.Participant
		var submitted int
		if err := rows.Scan(&p.ID, &p.WorkshopID, &p.Name, &p.Email, &p.Role, &submitted); err != nil {
			return nil, fmt.Errorf("scanning participant: %w", err)
		}
		p.HasSubmittedSurvey = intToBool(submitted)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating participants: %w", err)
	}
	return out, nil
}

func (r *SQLiteWorkshopRepo) scanWorkshop(row rowScanner) (*domain.Workshop, error) {
	var w domain.Workshop
	var dateStr, statusStr, createdAtStr, updatedAtStr string
	var scheduledStr sql.NullString

	if err := row.Scan(
		&w.ID, &w.Title, &w.Description, &w.Facilitator,
		&dateStr, &statusStr, &scheduledStr,
		&createdAtStr, &updatedAtStr,
	); err != nil {
		return nil, err
	}

	w.Status = domain.WorkshopStatus(statusStr)
	w.SurveyScheduledDate = parseNullableTime(scheduledStr, dateLayout)

	var err error
	if w.Date, err = parseTime(dateLayout, "date", dateStr); err != nil {
		return nil, err
	}
	if w.CreatedAt, err = parseTime(time.RFC3339, "created_at", createdAtStr); err != nil {
		return nil, err
	}
	if w.UpdatedAt, err = parseTime(time.RFC3339, "updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &w, nil
}
