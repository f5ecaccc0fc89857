package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/stretchr/testify/require"
)

type fakeRegistrar struct {
	got   *services.RegisterParams
	err   error
	calls int
}

func (f *fakeRegistrar) Register(_ context.Context, p services.RegisterParams) (*models.User, error) {
	f.calls++
	f.got = &p
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{Email: p.Email, Name: p.Name, Lastname: p.Lastname, Role: p.Role}, nil
}

func TestUserAdd_Run(t *testing.T) {
	stubPasswords(t, "secret1", "secret1")
	reg := &fakeRegistrar{}
	var out bytes.Buffer

	in := strings.NewReader("Alice\nSmith\nalice@example.com\nLeader\n")
	err := NewUserAdd(in, &out, reg).Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, reg.calls)
	require.Equal(t, services.RegisterParams{
		Email:    "alice@example.com",
		Name:     "Alice",
		Lastname: "Smith",
		Password: "secret1",
		Role:     models.RoleLeader,
	}, *reg.got)
	require.Contains(t, out.String(), "User alice@example.com created with role leader")
}

func TestUserAdd_PasswordMismatch(t *testing.T) {
	stubPasswords(t, "secret1", "secret2")
	reg := &fakeRegistrar{}
	var out bytes.Buffer

	in := strings.NewReader("Bob\nJones\nbob@example.com\nmember\n")
	err := NewUserAdd(in, &out, reg).Run(context.Background())
	require.ErrorIs(t, err, ErrPasswordMismatch)
	require.Zero(t, reg.calls)
}

func TestUserAdd_RegistrarError(t *testing.T) {
	stubPasswords(t, "secret1", "secret1")
	reg := &fakeRegistrar{err: common.ErrDuplicateIdentity}
	var out bytes.Buffer

	in := strings.NewReader("Bob\nJones\nbob@example.com\nmember\n")
	err := NewUserAdd(in, &out, reg).Run(context.Background())
	require.ErrorIs(t, err, common.ErrDuplicateIdentity)
	require.NotContains(t, out.String(), "created")
}

func TestUserAdd_InputEnds(t *testing.T) {
	reg := &fakeRegistrar{}
	var out bytes.Buffer

	err := NewUserAdd(strings.NewReader("Bob\n"), &out, reg).Run(context.Background())
	require.Error(t, err)
	require.Zero(t, reg.calls)
}

func TestUserAdd_PasswordReadFails(t *testing.T) {
	stubPasswords(t)
	reg := &fakeRegistrar{}
	var out bytes.Buffer

	in := strings.NewReader("Bob\nJones\nbob@example.com\nmember\n")
	err := NewUserAdd(in, &out, reg).Run(context.Background())
	require.Error(t, err)
	require.Zero(t, reg.calls)
}
