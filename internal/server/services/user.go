// Package services contains server-side business logic. This file implements
// UserService, which registers users and verifies their credentials.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/password"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// PasswordHasher is the subset of password.Hasher used by UserService.
type PasswordHasher interface {
	Hash(raw string) (string, error)
	Compare(hash, raw string) (bool, error)
	CompareDummy(raw string)
}

// RegisterParams is the registration form as submitted.
type RegisterParams struct {
	Email    string
	Name     string
	Lastname string
	Password string
	Role     models.Role
}

// UserService owns the credential store.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, h PasswordHasher) *UserService {
	return &UserService{db: db, repomanager: m, hasher: h}
}

// Register validates p, hashes the password and inserts the user. The storage
// unique constraint decides duplicates, so a concurrent second insert also
// yields common.ErrDuplicateIdentity. The returned user has no hash.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (*models.User, error) {
	p.Email = strings.TrimSpace(p.Email)
	p.Name = strings.TrimSpace(p.Name)
	p.Lastname = strings.TrimSpace(p.Lastname)

	if err := validateRegistration(p); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(p.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %w", common.ErrorInternal, err)
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, &models.User{
		Email:        p.Email,
		Name:         p.Name,
		Lastname:     p.Lastname,
		PasswordHash: hash,
		Role:         p.Role,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateIdentity) {
			return nil, common.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	u.PasswordHash = ""
	return u, nil
}

// Verify checks email and raw password. Unknown email and wrong password both
// return common.ErrAuthFailure after the same bcrypt work.
func (s *UserService) Verify(ctx context.Context, email, raw string) (*models.User, error) {
	email = strings.TrimSpace(email)

	repo := s.repomanager.Users(s.db)
	u, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.CompareDummy(raw)
			return nil, common.ErrAuthFailure
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	ok, err := s.hasher.Compare(u.PasswordHash, raw)
	if err != nil || !ok {
		return nil, common.ErrAuthFailure
	}

	u.PasswordHash = ""
	return u, nil
}

func validateRegistration(p RegisterParams) error {
	switch {
	case p.Name == "":
		return common.NewValidationError("name is required")
	case p.Lastname == "":
		return common.NewValidationError("lastname is required")
	case p.Email == "":
		return common.NewValidationError("email is required")
	case !emailPattern.MatchString(p.Email):
		return common.NewValidationError("email is invalid")
	case p.Password == "":
		return common.NewValidationError("password is required")
	case utf8.RuneCountInString(p.Password) < minPasswordLength:
		return common.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	case len(p.Password) > password.MaxLength:
		return common.NewValidationError(fmt.Sprintf("password must be at most %d bytes", password.MaxLength))
	case !p.Role.Valid():
		return common.NewValidationError("role must be leader or member")
	}
	return nil
}
