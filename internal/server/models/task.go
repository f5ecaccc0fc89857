package models

import "time"

// Default values for optional task fields.
const (
	DefaultTaskStatus = "new"
	DateLayout        = "2006-01-02"
)

// Task is a work item owned by exactly one user.
type Task struct {
	ID             int64
	Name           string
	Description    string
	StartDate      *time.Time
	EndDate        *time.Time
	PlannedDays    int
	Tags           string
	Status         string
	Type           string
	Priority       string
	Executors      string
	Commentators   string
	Files          string
	Completed      bool
	TimeSpent      int
	CompletionDate *time.Time
	OwnerEmail     string
	CreatedAt      time.Time
}

// TaskInput is a task submission as received from a client, before parsing.
// It deliberately has no owner field.
type TaskInput struct {
	Name           string
	Description    string
	StartDate      string
	EndDate        string
	PlannedDays    string
	Tags           string
	Status         string
	Type           string
	Priority       string
	Executors      string
	Commentators   string
	Files          string
	Completed      string
	TimeSpent      string
	CompletionDate string
}
