package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ljmonteiro/backoffice/internal/apperrors"
	"github.com/ljmonteiro/backoffice/internal/core/domain"
	portsrepo "github.com/ljmonteiro/backoffice/internal/core/ports/repositories"
	"github.com/ljmonteiro/backoffice/internal/dto"
)

// ErrInvalidCredentials is returned by Authenticate for a wrong username or
// password. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserService manages user accounts and credential checks. It records the
// acting username on every mutation; authorization decisions belong to the
// caller via domain.HasPermission.
type UserService struct {
	repo     portsrepo.UserRepository
	validate *validator.Validate
	logger   zerolog.Logger
	now      func() time.Time
}

// UserOption customizes a UserService.
type UserOption func(*UserService)

// WithUserClock overrides the wall clock, used by tests.
func WithUserClock(now func() time.Time) UserOption {
	return func(s *UserService) { s.now = now }
}

func NewUserService(repo portsrepo.UserRepository, logger zerolog.Logger, opts ...UserOption) *UserService {
	s := &UserService{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new user with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if _, err := s.repo.FindUserByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: username %s is taken", apperrors.ErrDuplicate, req.Username)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check username %s: %w", req.Username, err)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Email:        req.Email,
		Role:         req.Role,
		Active:       true,
		AuditFields:  domain.NewAuditFields(s.now(), req.Actor),
	}
	if err := s.repo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save user %s: %w", req.Username, err)
	}

	s.logger.Info().
		Str("username", user.Username).
		Str("role", string(user.Role)).
		Str("actor", req.Actor).
		Msg("user registered")
	return &user, nil
}

// Authenticate verifies a username/password pair. An inactive account fails
// even with correct credentials. On success the last-login timestamp is
// recorded.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user %s: %w", username, err)
	}
	if !checkPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, fmt.Errorf("%w: account %s is deactivated", apperrors.ErrConflict, username)
	}

	lastLogin := s.now().Format(domain.TimestampLayout)
	user.LastLoginAt = &lastLogin
	if err := s.repo.SaveUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("record login for %s: %w", username, err)
	}

	s.logger.Info().Str("username", username).Msg("user authenticated")
	return user, nil
}

// ChangePassword replaces a user's password after verifying the current one.
func (s *UserService) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	user, err := s.repo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		return fmt.Errorf("find user %s: %w", req.Username, err)
	}
	if !checkPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return fmt.Errorf("%w: current password does not match", apperrors.ErrValidation)
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	user.Touch(s.now(), req.Username)
	if err := s.repo.SaveUser(ctx, *user); err != nil {
		return fmt.Errorf("save user %s: %w", req.Username, err)
	}

	s.logger.Info().Str("username", req.Username).Msg("password changed")
	return nil
}

// SetActive activates or deactivates an account. Setting the current state
// again fails so callers notice stale views. The built-in admin account can
// never be deactivated.
func (s *UserService) SetActive(ctx context.Context, username string, active bool, actor string) error {
	if !active && strings.EqualFold(username, "admin") {
		return fmt.Errorf("%w: the admin account cannot be deactivated", apperrors.ErrConflict)
	}
	user, err := s.repo.FindUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("find user %s: %w", username, err)
	}
	if user.Active == active {
		state := "inactive"
		if active {
			state = "active"
		}
		return fmt.Errorf("%w: account %s is already %s", apperrors.ErrConflict, username, state)
	}

	user.Active = active
	user.Touch(s.now(), actor)
	if err := s.repo.SaveUser(ctx, *user); err != nil {
		return fmt.Errorf("save user %s: %w", username, err)
	}

	s.logger.Info().
		Str("username", username).
		Bool("active", active).
		Str("actor", actor).
		Msg("account state changed")
	return nil
}

// ListUsers returns all accounts, active and inactive, optionally filtered
// by role.
func (s *UserService) ListUsers(ctx context.Context, role *domain.UserRole) ([]domain.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return users, nil
	}
	filtered := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.Role == *role {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
