package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/password"
	sessionsrepo "github.com/dmitrijs2005/taskkeeper/internal/server/repositories/sessions"
	tasksrepo "github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	usersrepo "github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/dmitrijs2005/taskkeeper/internal/server/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- in-memory repositories ---

type memUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func (m *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return nil, common.ErrDuplicateIdentity
	}
	u.CreatedAt = time.Now()
	m.users[u.Email] = *u
	out := *u
	return &out, nil
}

func (m *memUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

type memTasks struct {
	mu      sync.Mutex
	tasks   []models.Task
	listErr error
}

func (m *memTasks) Create(ctx context.Context, ownerEmail string, t *models.Task) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *t
	stored.ID = int64(len(m.tasks) + 1)
	stored.OwnerEmail = ownerEmail
	stored.CreatedAt = time.Now()
	m.tasks = append(m.tasks, stored)
	return stored.ID, nil
}

func (m *memTasks) ListByOwner(ctx context.Context, ownerEmail string) ([]*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*models.Task, 0)
	for i := range m.tasks {
		if m.tasks[i].OwnerEmail == ownerEmail {
			t := m.tasks[i]
			out = append(out, &t)
		}
	}
	return out, nil
}

func (m *memTasks) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

type memRepoManager struct {
	users *memUsers
	tasks *memTasks
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.users }
func (m *memRepoManager) Tasks(db dbx.DBTX) tasksrepo.Repository       { return m.tasks }
func (m *memRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository { return nil }

// --- session store with injectable failures ---

type failingStore struct {
	sessions.Store
	mu        sync.Mutex
	findErr   error
	deleteErr error
}

func (f *failingStore) Find(ctx context.Context, id string) (*models.Session, error) {
	f.mu.Lock()
	err := f.findErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.Store.Find(ctx, id)
}

func (f *failingStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	err := f.deleteErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Store.Delete(ctx, id)
}

// --- environment ---

type testEnv struct {
	t     *testing.T
	srv   *Server
	rm    *memRepoManager
	store *failingStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	hasher, err := password.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)

	rm := &memRepoManager{users: &memUsers{users: map[string]models.User{}}, tasks: &memTasks{}}
	store := &failingStore{Store: sessions.NewMemoryStore()}

	us := services.NewUserService(nil, rm, hasher)
	ss := services.NewSessionService(store, auth.NewSigner([]byte("test-secret")), common.DefaultSessionTTL)
	ts := services.NewTaskService(nil, rm)

	srv := NewServer("127.0.0.1:0", logging.Nop(), us, ss, ts, Options{
		RequestTimeout: time.Second,
		GinMode:        gin.TestMode,
	})
	return &testEnv{t: t, srv: srv, rm: rm, store: store}
}

func (e *testEnv) do(method, path string, body io.Reader, contentType string, cookie *http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	return e.do(http.MethodGet, path, nil, "", cookie)
}

func (e *testEnv) postJSON(path string, payload any, cookie *http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(e.t, err)
	return e.do(http.MethodPost, path, strings.NewReader(string(b)), "application/json", cookie)
}

func (e *testEnv) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", cookie)
}

// register creates a user through the boundary and returns its session cookie.
func (e *testEnv) register(name, lastname, email, pw string, role models.Role) *http.Cookie {
	e.t.Helper()
	rec := e.postJSON("/register", map[string]string{
		"name": name, "lastname": lastname, "email": email, "password": pw, "role": string(role),
	}, nil)
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())
	c := sessionCookie(rec)
	require.NotNil(e.t, c, "register must set the session cookie")
	return c
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == common.SessionCookieName {
			return c
		}
	}
	return nil
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) jsonResponse {
	t.Helper()
	var out jsonResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
