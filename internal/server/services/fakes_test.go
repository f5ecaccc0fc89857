package services

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	sessionsrepo "github.com/dmitrijs2005/taskkeeper/internal/server/repositories/sessions"
	tasksrepo "github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	usersrepo "github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
)

type fakeUsersRepo struct {
	mu        sync.Mutex
	users     map[string]models.User
	createErr error
	getErr    error
	reads     int
	writes    int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.users[u.Email]; ok {
		return nil, common.ErrDuplicateIdentity
	}
	f.users[u.Email] = *u
	out := *u
	return &out, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

type fakeTasksRepo struct {
	mu        sync.Mutex
	tasks     []models.Task
	createErr error
	listErr   error
}

func (f *fakeTasksRepo) Create(ctx context.Context, ownerEmail string, t *models.Task) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return 0, f.createErr
	}
	stored := *t
	stored.ID = int64(len(f.tasks) + 1)
	stored.OwnerEmail = ownerEmail
	f.tasks = append(f.tasks, stored)
	return stored.ID, nil
}

func (f *fakeTasksRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.Task, 0)
	for i := range f.tasks {
		if f.tasks[i].OwnerEmail == ownerEmail {
			t := f.tasks[i]
			out = append(out, &t)
		}
	}
	return out, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTasksRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), t: &fakeTasksRepo{}}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasksrepo.Repository       { return m.t }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository { return nil }

// countingHasher records whether the dummy comparison ran.
type countingHasher struct {
	PasswordHasher
	dummyCalls int
	compares   int
}

func (c *countingHasher) Compare(hash, raw string) (bool, error) {
	c.compares++
	return c.PasswordHasher.Compare(hash, raw)
}

func (c *countingHasher) CompareDummy(raw string) {
	c.dummyCalls++
	c.PasswordHasher.CompareDummy(raw)
}
