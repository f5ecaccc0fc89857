package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/sessions"
)

// sessionIDBytes is the number of random bytes in a session id.
const sessionIDBytes = 32

// TokenSigner wraps session ids into cookie tokens.
type TokenSigner interface {
	Sign(sessionID string, expiresAt time.Time) (string, error)
	Parse(token string) (string, error)
}

// SessionService issues, resolves and destroys sessions. A session is a
// snapshot of the identity at creation and is never refreshed.
type SessionService struct {
	store  sessions.Store
	signer TokenSigner
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionService constructs a SessionService. A non-positive ttl means
// common.DefaultSessionTTL.
func NewSessionService(store sessions.Store, signer TokenSigner, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = common.DefaultSessionTTL
	}
	return &SessionService{store: store, signer: signer, ttl: ttl, now: time.Now}
}

// TTL is the fixed session lifetime.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Create stores a new session for id and returns its token.
func (s *SessionService) Create(ctx context.Context, id models.Identity) (string, error) {
	sid, err := common.MakeRandHexString(sessionIDBytes)
	if err != nil {
		return "", fmt.Errorf("%w: session id: %w", common.ErrorInternal, err)
	}

	now := s.now()
	sess := &models.Session{
		ID:        sid,
		Email:     id.Email,
		Name:      id.Name,
		Lastname:  id.Lastname,
		Role:      id.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	token, err := s.signer.Sign(sid, sess.ExpiresAt)
	if err != nil {
		return "", fmt.Errorf("%w: sign session: %w", common.ErrorInternal, err)
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return token, nil
}

// Resolve returns the session behind token, or nil when the token is empty,
// malformed, unknown or expired. Only storage failures are errors.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.Session, error) {
	sid, err := s.signer.Parse(token)
	if err != nil {
		return nil, nil
	}

	sess, err := s.store.Find(ctx, sid)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	if sess.Expired(s.now()) {
		if err := s.store.Delete(ctx, sid); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
		}
		return nil, nil
	}
	return sess, nil
}

// Destroy removes the session behind token. Invalid or unknown tokens are a no-op.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	sid, err := s.signer.Parse(token)
	if err != nil {
		return nil
	}
	if err := s.store.Delete(ctx, sid); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return nil
}
