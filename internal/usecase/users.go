package usecase

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/ordesk/backoffice/internal/domain/errors"
	"github.com/ordesk/backoffice/internal/domain/model"
	"github.com/ordesk/backoffice/internal/domain/repository"
	pkgAuth "github.com/ordesk/backoffice/internal/pkg/auth"
)

// UserUseCase covers administrative account management.
type UserUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	now    func() time.Time
}

// NewUserUseCase constructs UserUseCase.
func NewUserUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher) *UserUseCase {
	return &UserUseCase{users: users, hasher: hasher, now: time.Now}
}

// Create provisions a new account with the given role.
func (u *UserUseCase) Create(ctx context.Context, email, password, displayName string, role model.Role) (*model.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, domainErrors.NewValidationError("email", "required")
	}
	if password == "" {
		return nil, domainErrors.NewValidationError("password", "required")
	}
	if strings.TrimSpace(displayName) == "" {
		return nil, domainErrors.NewValidationError("displayName", "required")
	}
	if !role.Valid() {
		return nil, domainErrors.NewValidationError("role", "must be admin, operator or packer")
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	usr := &model.User{
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		Role:         role,
		PasswordHash: hash,
		LastLogin:    u.now(),
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, err
	}
	return usr, nil
}

// List returns all accounts.
func (u *UserUseCase) List(ctx context.Context) ([]model.User, error) {
	return u.users.List(ctx)
}

// ChangeRole updates the role of an account.
func (u *UserUseCase) ChangeRole(ctx context.Context, id int64, role model.Role) error {
	if !role.Valid() {
		return domainErrors.NewValidationError("role", "must be admin, operator or packer")
	}
	return u.users.UpdateRole(ctx, id, role)
}

// Delete removes an account.
func (u *UserUseCase) Delete(ctx context.Context, id int64) error {
	return u.users.Delete(ctx, id)
}
