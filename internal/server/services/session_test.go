package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore wraps a Store and injects failures.
type flakyStore struct {
	sessions.Store
	findErr   error
	saveErr   error
	deleteErr error
	deletes   int
}

func (f *flakyStore) Save(ctx context.Context, s *models.Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.Store.Save(ctx, s)
}

func (f *flakyStore) Find(ctx context.Context, id string) (*models.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.Store.Find(ctx, id)
}

func (f *flakyStore) Delete(ctx context.Context, id string) error {
	f.deletes++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.Store.Delete(ctx, id)
}

func newSessionServiceTest(t *testing.T) (*SessionService, *flakyStore) {
	t.Helper()
	store := &flakyStore{Store: sessions.NewMemoryStore()}
	return NewSessionService(store, auth.NewSigner([]byte("test-secret")), time.Hour), store
}

func aliceIdentity() models.Identity {
	return models.Identity{Email: "a@x.com", Name: "alice", Lastname: "A", Role: models.RoleMember}
}

func TestSession_CreateResolveSnapshot(t *testing.T) {
	s, _ := newSessionServiceTest(t)
	ctx := context.Background()

	id := aliceIdentity()
	token, err := s.Create(ctx, id)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// later changes to the identity do not reach the session
	id.Name = "changed"

	sess, err := s.Resolve(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, aliceIdentity(), sess.Identity())
	assert.Len(t, sess.ID, sessionIDBytes*2)
	assert.Equal(t, time.Hour, sess.ExpiresAt.Sub(sess.CreatedAt))
}

func TestSession_TokensAreDistinct(t *testing.T) {
	s, _ := newSessionServiceTest(t)
	ctx := context.Background()

	a, err := s.Create(ctx, aliceIdentity())
	require.NoError(t, err)
	b, err := s.Create(ctx, aliceIdentity())
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSession_ResolveMalformedIsAnonymous(t *testing.T) {
	s, _ := newSessionServiceTest(t)
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		sess, err := s.Resolve(context.Background(), tok)
		assert.NoError(t, err)
		assert.Nil(t, sess)
	}
}

func TestSession_ResolveForeignSignature(t *testing.T) {
	s, _ := newSessionServiceTest(t)
	other := NewSessionService(sessions.NewMemoryStore(), auth.NewSigner([]byte("other")), time.Hour)

	tok, err := other.Create(context.Background(), aliceIdentity())
	require.NoError(t, err)

	sess, err := s.Resolve(context.Background(), tok)
	assert.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSession_ResolveExpiredDeletes(t *testing.T) {
	s, store := newSessionServiceTest(t)
	ctx := context.Background()

	token, err := s.Create(ctx, aliceIdentity())
	require.NoError(t, err)

	// token still valid, stored record already expired
	sid, err := s.signer.Parse(token)
	require.NoError(t, err)
	stored, err := store.Find(ctx, sid)
	require.NoError(t, err)
	stored.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, store.Store.Save(ctx, stored))

	sess, err := s.Resolve(ctx, token)
	assert.NoError(t, err)
	assert.Nil(t, sess)
	assert.Equal(t, 1, store.deletes)

	_, err = store.Find(ctx, sid)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSession_ResolveAfterClockPassesTTL(t *testing.T) {
	s, _ := newSessionServiceTest(t)
	ctx := context.Background()

	token, err := s.Create(ctx, aliceIdentity())
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	sess, err := s.Resolve(ctx, token)
	assert.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSession_ResolveStorageError(t *testing.T) {
	s, store := newSessionServiceTest(t)
	ctx := context.Background()

	token, err := s.Create(ctx, aliceIdentity())
	require.NoError(t, err)

	store.findErr = errors.New("redis error: down")
	_, err = s.Resolve(ctx, token)
	assert.ErrorIs(t, err, common.ErrStorage)
}

func TestSession_DestroyIsIdempotent(t *testing.T) {
	s, _ := newSessionServiceTest(t)
	ctx := context.Background()

	token, err := s.Create(ctx, aliceIdentity())
	require.NoError(t, err)

	require.NoError(t, s.Destroy(ctx, token))
	require.NoError(t, s.Destroy(ctx, token))
	require.NoError(t, s.Destroy(ctx, "garbage"))

	sess, err := s.Resolve(ctx, token)
	assert.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSession_DestroyStorageError(t *testing.T) {
	s, store := newSessionServiceTest(t)
	ctx := context.Background()

	token, err := s.Create(ctx, aliceIdentity())
	require.NoError(t, err)

	store.deleteErr = errors.New("db error: down")
	assert.ErrorIs(t, s.Destroy(ctx, token), common.ErrStorage)
}

func TestSession_CreateStorageError(t *testing.T) {
	s, store := newSessionServiceTest(t)
	store.saveErr = errors.New("db error: down")

	_, err := s.Create(context.Background(), aliceIdentity())
	assert.ErrorIs(t, err, common.ErrStorage)
}

func TestSession_DefaultTTL(t *testing.T) {
	s := NewSessionService(sessions.NewMemoryStore(), auth.NewSigner([]byte("k")), 0)
	assert.Equal(t, common.DefaultSessionTTL, s.TTL())
}
