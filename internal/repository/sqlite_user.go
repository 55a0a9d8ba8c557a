package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/atelier/internal/db"
	"github.com/alexanderramin/atelier/internal/domain"
)

// SQLiteUserRepo implements UserRepo using a SQLite database. The signed-in
// session is a single row keyed 'current'.
type SQLiteUserRepo struct {
	db db.DBTX
}

// NewSQLiteUserRepo creates a new SQLiteUserRepo.
func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: conn}
}

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.User, passwordHash []byte) error {
	query := `INSERT INTO users (id, email, name, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Email, u.Name, passwordHash, u.CreatedAt.Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return &domain.ValidationError{Field: "email", Reason: "is already registered"}
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, []byte, error) {
	query := `SELECT id, email, name, password_hash, created_at FROM users WHERE email = ?`
	var u domain.User
	var hash []byte
	var createdAtStr string
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.Name, &hash, &createdAtStr)
	if err != nil {
		return nil, nil, notFound(err, "user", email)
	}
	if u.CreatedAt, err = parseTime(time.RFC3339, "created_at", createdAtStr); err != nil {
		return nil, nil, err
	}
	return &u, hash, nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, email, name, created_at FROM users WHERE id = ?`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return u, nil
}

func (r *SQLiteUserRepo) SetCurrent(ctx context.Context, userID string) error {
	query := `INSERT OR REPLACE INTO auth_sessions (id, user_id, created_at) VALUES ('current', ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, userID, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

// Current returns the signed-in user, or nil when nobody is signed in.
func (r *SQLiteUserRepo) Current(ctx context.Context) (*domain.User, error) {
	query := `SELECT u.id, u.email, u.name, u.created_at
		FROM auth_sessions s JOIN users u ON u.id = s.user_id
		WHERE s.id = 'current'`
	u, err := scanUser(r.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	return u, nil
}

func (r *SQLiteUserRepo) ClearCurrent(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM auth_sessions WHERE id = 'current'`); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var createdAtStr string
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &createdAtStr); err != nil {
		return nil, err
	}
	var err error
	if u.CreatedAt, err = parseTime(time.RFC3339, "created_at", createdAtStr); err != nil {
		return nil, err
	}
	return &u, nil
}
