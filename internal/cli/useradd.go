package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// Registrar creates users. *services.UserService satisfies it.
type Registrar interface {
	Register(ctx context.Context, p services.RegisterParams) (*models.User, error)
}

// UserAdd prompts for a new user's fields and registers it.
type UserAdd struct {
	reader    *bufio.Reader
	out       io.Writer
	registrar Registrar
}

func NewUserAdd(in io.Reader, out io.Writer, r Registrar) *UserAdd {
	return &UserAdd{reader: bufio.NewReader(in), out: out, registrar: r}
}

// Run asks for name, lastname, email and role, then for the password twice.
// Validation is left to the registrar so the rules match the web form.
func (u *UserAdd) Run(ctx context.Context) error {
	name, err := GetSimpleText(u.reader, "Name", u.out)
	if err != nil {
		return err
	}
	lastname, err := GetSimpleText(u.reader, "Lastname", u.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(u.reader, "Email", u.out)
	if err != nil {
		return err
	}
	role, err := GetSimpleText(u.reader, "Role (leader/member)", u.out)
	if err != nil {
		return err
	}

	pw, err := GetPassword("Password", u.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	confirm, err := GetPassword("Repeat password", u.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(pw, confirm) {
		return ErrPasswordMismatch
	}

	user, err := u.registrar.Register(ctx, services.RegisterParams{
		Email:    email,
		Name:     name,
		Lastname: lastname,
		Password: string(pw),
		Role:     models.Role(strings.ToLower(role)),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(u.out, "User %s created with role %s\n", user.Email, user.Role)
	return nil
}
