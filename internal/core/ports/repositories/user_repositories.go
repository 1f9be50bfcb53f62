package repositories

import (
	"context"

	"github.com/ljmonteiro/backoffice/internal/core/domain"
)

// UserRepository defines persistence operations for the identity service.
type UserRepository interface {
	// FindUserByUsername looks a user up by username (case-insensitive).
	// Returns apperrors.ErrNotFound when no such user exists.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// SaveUser inserts or updates a user keyed by username and persists.
	SaveUser(ctx context.Context, user domain.User) error

	// ListUsers returns all users.
	ListUsers(ctx context.Context) ([]domain.User, error)
}
