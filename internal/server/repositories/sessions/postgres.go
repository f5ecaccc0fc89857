package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the session row.
func (r *PostgresRepository) Create(ctx context.Context, s *models.Session) error {
	query := `
		INSERT INTO sessions (id, email, name, lastname, role, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := r.db.ExecContext(ctx, query,
		s.ID, s.Email, s.Name, s.Lastname, string(s.Role), s.CreatedAt, s.ExpiresAt,
	); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Find returns the session with the given id or common.ErrorNotFound.
func (r *PostgresRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	query := `
		SELECT id, email, name, lastname, role, created_at, expires_at
		FROM sessions
		WHERE id = $1
	`
	s := &models.Session{}
	var role string
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Email, &s.Name, &s.Lastname, &role, &s.CreatedAt, &s.ExpiresAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	s.Role = models.Role(role)
	return s, nil
}

// Delete removes a session by id.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM sessions
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// DeleteExpired removes the subject's sessions whose expires_at is not after now.
func (r *PostgresRepository) DeleteExpired(ctx context.Context, email string, now time.Time) error {
	query := `
		DELETE FROM sessions
		WHERE email = $1 AND expires_at <= $2
	`
	if _, err := r.db.ExecContext(ctx, query, email, now); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
