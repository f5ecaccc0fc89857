package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the task in a single statement.
func (r *PostgresRepository) Create(ctx context.Context, ownerEmail string, task *models.Task) (int64, error) {
	query := `
		INSERT INTO tasks (
			name, description, start_date, end_date, planned_days, tags, status,
			type, priority, executors, commentators, files, completed, time_spent,
			completion_date, owner_email
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13, $14,
			$15, $16
		) RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		task.Name, task.Description, nullTime(task.StartDate), nullTime(task.EndDate), task.PlannedDays,
		nullString(task.Tags), task.Status, nullString(task.Type), nullString(task.Priority),
		nullString(task.Executors), nullString(task.Commentators), nullString(task.Files),
		task.Completed, task.TimeSpent, nullTime(task.CompletionDate), ownerEmail,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// ListByOwner selects the owner's tasks ordered by id.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]*models.Task, error) {
	query := `
		SELECT id, name, description, start_date, end_date, planned_days, tags, status,
			type, priority, executors, commentators, files, completed, time_spent,
			completion_date, owner_email, created_at
		FROM tasks
		WHERE owner_email = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		var (
			item                               models.Task
			startDate, endDate, completionDate sql.NullTime
			tags, taskType, priority           sql.NullString
			executors, commentators, files     sql.NullString
		)
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &startDate, &endDate, &item.PlannedDays, &tags, &item.Status,
			&taskType, &priority, &executors, &commentators, &files, &item.Completed, &item.TimeSpent,
			&completionDate, &item.OwnerEmail, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		item.StartDate = timePtr(startDate)
		item.EndDate = timePtr(endDate)
		item.CompletionDate = timePtr(completionDate)
		item.Tags = tags.String
		item.Type = taskType.String
		item.Priority = priority.String
		item.Executors = executors.String
		item.Commentators = commentators.String
		item.Files = files.String
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
