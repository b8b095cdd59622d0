package dto

import (
	"time"

	"github.com/ordesk/backoffice/internal/domain/model"
)

// UserResponse is the public view of a backoffice account.
type UserResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	LastLogin   time.Time `json:"lastLogin"`
}

// NewUserResponse maps a domain user to its transport form.
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		LastLogin:   u.LastLogin,
	}
}

// CreateUserRequest registers a new account.
type CreateUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"displayName" binding:"required"`
	Role        string `json:"role" binding:"required,role"`
}

// ChangeRoleRequest reassigns an account role.
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,role"`
}
