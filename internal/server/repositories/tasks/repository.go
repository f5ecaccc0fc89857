// Package tasks provides owner-scoped task persistence.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository stores and lists tasks. Every method is scoped by owner email;
// there is no way to read a task without naming its owner.
type Repository interface {
	// Create inserts task with owner_email = ownerEmail (task.OwnerEmail is
	// ignored) and returns the storage-assigned id.
	Create(ctx context.Context, ownerEmail string, task *models.Task) (int64, error)

	// ListByOwner returns the owner's tasks in arrival order.
	ListByOwner(ctx context.Context, ownerEmail string) ([]*models.Task, error)
}
