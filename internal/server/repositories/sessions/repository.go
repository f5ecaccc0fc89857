// Package sessions declares the server-side repository contract for
// session records kept in persistent storage.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository defines operations for storing, retrieving and removing sessions.
type Repository interface {
	// Create stores a new session row.
	Create(ctx context.Context, s *models.Session) error

	// Find looks up a session by id. Implementations return common.ErrorNotFound
	// when the id is absent.
	Find(ctx context.Context, id string) (*models.Session, error)

	// Delete removes a session by id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes the subject's sessions that expired at or before now.
	DeleteExpired(ctx context.Context, email string, now time.Time) error
}
