// Package sessions holds the server-side session stores. Every backend
// satisfies Store; the session service picks one at startup.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Store persists sessions by id.
type Store interface {
	// Save stores s under s.ID until s.ExpiresAt.
	Save(ctx context.Context, s *models.Session) error

	// Find returns the session or common.ErrorNotFound.
	Find(ctx context.Context, id string) (*models.Session, error)

	// Delete removes the session. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}
