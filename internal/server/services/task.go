package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
)

// TaskService performs owner-scoped task operations. The owner is always
// the resolved session's email.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// ListForOwner returns the owner's tasks in arrival order.
func (s *TaskService) ListForOwner(ctx context.Context, ownerEmail string) ([]*models.Task, error) {
	if ownerEmail == "" {
		return nil, common.ErrorUnauthorized
	}
	items, err := s.repomanager.Tasks(s.db).ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return items, nil
}

// Create parses in, fills defaults and inserts the task for ownerEmail.
func (s *TaskService) Create(ctx context.Context, ownerEmail string, in models.TaskInput) (int64, error) {
	if ownerEmail == "" {
		return 0, common.ErrorUnauthorized
	}
	task, err := ParseTaskInput(in)
	if err != nil {
		return 0, err
	}
	task.OwnerEmail = ownerEmail

	id, err := s.repomanager.Tasks(s.db).Create(ctx, ownerEmail, task)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return id, nil
}

// ParseTaskInput validates a submission and converts it to a Task with
// defaults applied. Failures are *common.ValidationError.
func ParseTaskInput(in models.TaskInput) (*models.Task, error) {
	t := &models.Task{
		Name:         strings.TrimSpace(in.Name),
		Description:  strings.TrimSpace(in.Description),
		Tags:         strings.TrimSpace(in.Tags),
		Status:       strings.TrimSpace(in.Status),
		Type:         strings.TrimSpace(in.Type),
		Priority:     strings.TrimSpace(in.Priority),
		Executors:    strings.TrimSpace(in.Executors),
		Commentators: strings.TrimSpace(in.Commentators),
		Files:        strings.TrimSpace(in.Files),
	}
	if t.Name == "" {
		return nil, common.NewValidationError("name is required")
	}
	if t.Description == "" {
		return nil, common.NewValidationError("description is required")
	}
	if t.Status == "" {
		t.Status = models.DefaultTaskStatus
	}

	var err error
	if t.StartDate, err = parseDate("start_date", in.StartDate); err != nil {
		return nil, err
	}
	if t.EndDate, err = parseDate("end_date", in.EndDate); err != nil {
		return nil, err
	}
	if t.CompletionDate, err = parseDate("completion_date", in.CompletionDate); err != nil {
		return nil, err
	}
	if t.PlannedDays, err = parseCount("planned_days", in.PlannedDays); err != nil {
		return nil, err
	}
	if t.TimeSpent, err = parseCount("time_spent", in.TimeSpent); err != nil {
		return nil, err
	}
	if t.Completed, err = parseFlag("completed", in.Completed); err != nil {
		return nil, err
	}
	return t, nil
}

func parseDate(field, v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	d, err := time.Parse(models.DateLayout, v)
	if err != nil {
		return nil, common.NewValidationError(field + " must be YYYY-MM-DD")
	}
	return &d, nil
}

func parseCount(field, v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	// planned_days and time_spent are INTEGER columns.
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n < 0 {
		return 0, common.NewValidationError(field + " must be a non-negative integer")
	}
	return int(n), nil
}

func parseFlag(field, v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "false", "0":
		return false, nil
	case "true", "on", "1":
		return true, nil
	}
	return false, common.NewValidationError(field + " must be true or false")
}
