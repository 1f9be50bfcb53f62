package jsonstore

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ljmonteiro/backoffice/internal/apperrors"
	"github.com/ljmonteiro/backoffice/internal/core/domain"
	portsrepo "github.com/ljmonteiro/backoffice/internal/core/ports/repositories"
)

// UserStore persists users as a single JSON document keyed by username.
type UserStore struct {
	path   string
	users  map[string]domain.User
	logger zerolog.Logger
}

var _ portsrepo.UserRepository = (*UserStore)(nil)

// NewUserStore loads the user document at path.
func NewUserStore(path string, logger zerolog.Logger) *UserStore {
	users := loadDocument[map[string]domain.User](path, logger)
	if users == nil {
		users = make(map[string]domain.User)
	}
	return &UserStore{path: path, users: users, logger: logger}
}

// FindUserByUsername looks a user up by username, case-insensitive.
func (s *UserStore) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := s.users[strings.ToLower(username)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

// SaveUser inserts or updates user and persists the document.
func (s *UserStore) SaveUser(_ context.Context, user domain.User) error {
	s.users[strings.ToLower(user.Username)] = user
	return writeDocument(s.path, s.users)
}

// ListUsers returns all users ordered by username.
func (s *UserStore) ListUsers(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}
