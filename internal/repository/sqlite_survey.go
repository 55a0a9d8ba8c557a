package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/atelier/internal/db"
	"github.com/alexanderramin/atelier/internal/domain"
)

const surveyColumns = `id, workshop_id, template_id, title, description, instructions, status, created_at, updated_at`

// SQLiteSurveyRepo implements SurveyRepo using a SQLite database.
type SQLiteSurveyRepo struct {
	db db.DBTX
}

// NewSQLiteSurveyRepo creates a new SQLiteSurveyRepo.
func NewSQLiteSurveyRepo(db db.DBTX) *SQLiteSurveyRepo {
	return &SQLiteSurveyRepo{db: db}
}

func (r *SQLiteSurveyRepo) Create(ctx context.Context, s *domain.Survey) error {
	query := `INSERT INTO surveys (id, workshop_id, seq, template_id, title, description, instructions, status, created_at, updated_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM surveys WHERE workshop_id = ?), ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.WorkshopID,
		s.WorkshopID,
		s.TemplateID,
		s.Title,
		s.Description,
		s.Instructions,
		string(s.Status),
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting survey: %w", err)
	}
	if err := r.replaceQuestions(ctx, s); err != nil {
		return err
	}
	for _, resp := range s.Responses {
		if err := r.AddResponse(ctx, resp); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteSurveyRepo) GetByID(ctx context.Context, id string) (*domain.Survey, error) {
	query := `SELECT ` + surveyColumns + ` FROM surveys WHERE id = ?`
	s, err := r.scanSurvey(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "survey", id)
	}
	if err := r.loadChildren(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSurveyRepo) ListByWorkshop(ctx context.Context, workshopID string) ([]*domain.Survey, error) {
	query := `SELECT ` + surveyColumns + ` FROM surveys WHERE workshop_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, workshopID)
	if err != nil {
		return nil, fmt.Errorf("listing surveys: %w", err)
	}
	var surveys []*domain.Survey
	for rows.Next() {
		s, err := r.scanSurvey(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning survey row: %w", err)
		}
		surveys = append(surveys, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating surveys: %w", err)
	}
	rows.Close()

	for _, s := range surveys {
		if err := r.loadChildren(ctx, s); err != nil {
			return nil, err
		}
	}
	return surveys, nil
}

// Update writes status and metadata and rewrites the question list.
// Responses are only ever added through AddResponse.
func (r *SQLiteSurveyRepo) Update(ctx context.Context, s *domain.Survey) error {
	query := `UPDATE surveys SET title = ?, description = ?, instructions = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Title, s.Description, s.Instructions, string(s.Status), s.UpdatedAt.Format(time.RFC3339), s.ID)
	if err != nil {
		return fmt.Errorf("updating survey: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Entity: "survey", ID: s.ID}
	}
	return r.replaceQuestions(ctx, s)
}

func (r *SQLiteSurveyRepo) AddResponse(ctx context.Context, resp domain.SurveyResponse) error {
	answers, err := encodeJSON(resp.Answers)
	if err != nil {
		return fmt.Errorf("encoding answers: %w", err)
	}
	query := `INSERT INTO survey_responses (id, survey_id, participant_id, seq, answers, submitted_at)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM survey_responses WHERE survey_id = ?), ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		resp.ID, resp.SurveyID, resp.ParticipantID, resp.SurveyID, answers, resp.SubmittedAt.Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: survey_responses.survey_id") {
			return &domain.DuplicateResponseError{SurveyID: resp.SurveyID, ParticipantID: resp.ParticipantID}
		}
		return fmt.Errorf("inserting survey response: %w", err)
	}
	return nil
}

func (r *SQLiteSurveyRepo) replaceQuestions(ctx context.Context, s *domain.Survey) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM survey_questions WHERE survey_id = ?`, s.ID); err != nil {
		return fmt.Errorf("clearing survey questions: %w", err)
	}
	query := `INSERT INTO survey_questions (survey_id, id, seq, text, type, required, min_value, max_value, options)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, q := range s.Questions {
		options, err := encodeJSON(nonNilStrings(q.Options))
		if err != nil {
			return fmt.Errorf("encoding options: %w", err)
		}
		_, err = r.db.ExecContext(ctx, query,
			s.ID, q.ID, i+1, q.Text, string(q.Type), boolToInt(q.Required),
			nullableFloat(q.MinValue), nullableFloat(q.MaxValue), options)
		if err != nil {
			return fmt.Errorf("inserting question %s: %w", q.ID, err)
		}
	}
	return nil
}

func (r *SQLiteSurveyRepo) loadChildren(ctx context.Context, s *domain.Survey) error {
	questions, err := r.listQuestions(ctx, s.ID)
	if err != nil {
		return err
	}
	responses, err := r.listResponses(ctx, s.ID)
	if err != nil {
		return err
	}
	s.Questions, s.Responses = questions, responses
	return nil
}

func (r *SQLiteSurveyRepo) listQuestions(ctx context.Context, surveyID string) ([]domain.SurveyQuestion, error) {
	query := `SELECT id, text, type, required, min_value, max_value, options
		FROM survey_questions WHERE survey_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, surveyID)
	if err != nil {
		return nil, fmt.Errorf("listing survey questions: %w", err)
	}
	defer rows.Close()

	var out []domain.SurveyQuestion
	for rows.Next() {
		var q domain.SurveyQuestion
		var typeStr, optionsJSON string
		var required int
		var minVal, maxVal sql.NullFloat64
		if err := rows.Scan(&q.ID, &q.Text, &typeStr, &required, &minVal, &maxVal, &optionsJSON); err != nil {
			return nil, fmt.Errorf("scanning survey question: %w", err)
		}
		q.Type = domain.QuestionType(typeStr)
		q.Required = intToBool(required)
		q.MinValue, q.MaxValue = floatPtr(minVal), floatPtr(maxVal)
		if err := json.Unmarshal([]byte(optionsJSON), &q.Options); err != nil {
			return nil, fmt.Errorf("decoding options of %s: %w", q.ID, err)
		}
		if len(q.Options) == 0 {
			q.Options = nil
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating survey questions: %w", err)
	}
	return out, nil
}

func (r *SQLiteSurveyRepo) listResponses(ctx context.Context, surveyID string) ([]domain.SurveyResponse, error) {
	query := `SELECT id, survey_id, participant_id, answers, submitted_at
		FROM survey_responses WHERE survey_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, surveyID)
	if err != nil {
		return nil, fmt.Errorf("listing survey responses: %w", err)
	}
	defer rows.Close()

	var out []domain.SurveyResponse
	for rows.Next() {
		var resp domain.SurveyResponse
		var answersJSON, submittedStr string
		if err := rows.Scan(&resp.ID, &resp.SurveyID, &resp.ParticipantID, &answersJSON, &submittedStr); err != nil {
			return nil, fmt.Errorf("scanning survey response: %w", err)
		}
		if err := json.Unmarshal([]byte(answersJSON), &resp.Answers); err != nil {
			return nil, fmt.Errorf("decoding answers of %s: %w", resp.ID, err)
		}
		if resp.SubmittedAt, err = parseTime(time.RFC3339, "submitted_at", submittedStr); err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating survey responses: %w", err)
	}
	return out, nil
}

func (r *SQLiteSurveyRepo) scanSurvey(row rowScanner) (*domain.Survey, error) {
	var s domain.Survey
	var statusStr, createdAtStr, updatedAtStr string
	if err := row.Scan(
		&s.ID, &s.WorkshopID, &s.TemplateID, &s.Title, &s.Description, &s.Instructions,
		&statusStr, &createdAtStr, &updatedAtStr,
	); err != nil {
		return nil, err
	}
	s.Status = domain.SurveyStatus(statusStr)

	var err error
	if s.CreatedAt, err = parseTime(time.RFC3339, "created_at", createdAtStr); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime(time.RFC3339, "updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &s, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
