package repository

import (
	"context"
	"time"

	"github.com/ordesk/backoffice/internal/domain/model"
)

// UserRepository describes persistence operations for backoffice accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// GetByEmail matches case-insensitively on the trimmed address.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateRole(ctx context.Context, id int64, role model.Role) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
}
