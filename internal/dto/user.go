package dto

import "github.com/ljmonteiro/backoffice/internal/core/domain"

// RegisterUserRequest defines the data needed to register a user.
type RegisterUserRequest struct {
	Username string          `json:"username" validate:"required,min=3"`
	Password string          `json:"password" validate:"required,min=6"`
	Email    string          `json:"email" validate:"omitempty,email"`
	Role     domain.UserRole `json:"role" validate:"required,oneof=customer seller manager admin"`
	Actor    string          `json:"actor" validate:"required"`
}

// ChangePasswordRequest defines the data needed to change a user's password.
type ChangePasswordRequest struct {
	Username        string `json:"username" validate:"required"`
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}
