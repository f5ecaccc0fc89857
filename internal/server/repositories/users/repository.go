// Package users declares the server-side repository contract for user
// identities and its PostgreSQL implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository persists and looks up users by email.
type Repository interface {
	// Create inserts user. A second user with the same email yields
	// common.ErrDuplicateIdentity; the storage constraint decides.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByEmail returns common.ErrorNotFound when no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
