package service

import (
	"context"
	"errors"
	"fmt"

	"inventory-service/internal/models"
	"inventory-service/internal/store"
	"inventory-service/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserAdminStore is the slice of the store user management needs.
type UserAdminStore interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
}

// UserService is the admin-facing account management.
type UserService struct {
	store      UserAdminStore
	activity   ActivityRecorder
	bcryptCost int
	logger     *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(store UserAdminStore, activity ActivityRecorder, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		store:      store,
		activity:   activity,
		bcryptCost: bcryptCost,
		logger:     util.NamedLogger("users"),
	}
}

// ListUsers returns all accounts, newest first.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.store.GetUsers(ctx)
	if err != nil {
		return nil, wrapStore(err)
	}
	return users, nil
}

// UserInput carries the writable account fields. Password is optional on
// update; when set it replaces the stored hash.
type UserInput struct {
	Username string `json:"username"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Password string `json:"password"`
}

func (in *UserInput) normalize() error {
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if in.Role != models.RoleAdmin && in.Role != models.RoleUser {
		return fmt.Errorf("%w: role must be admin or user", ErrInvalidInput)
	}
	if in.Status == "" {
		in.Status = models.UserStatusActive
	}
	if in.Status != models.UserStatusActive && in.Status != models.UserStatusInactive {
		return fmt.Errorf("%w: status must be active or inactive", ErrInvalidInput)
	}
	return nil
}

// CreateUser creates an account on behalf of an admin.
func (s *UserService) CreateUser(ctx context.Context, session *models.Session, input UserInput) (*models.User, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}
	if input.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if len(input.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}

	taken, err := s.store.UsernameExists(ctx, input.Username)
	if err != nil {
		return nil, wrapStore(err)
	}
	if taken {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateUsername, input.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     input.Username,
		Name:         input.Name,
		Email:        input.Email,
		Role:         input.Role,
		Status:       input.Status,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, wrapStore(err)
	}

	s.activity.Record(ctx, session.Username, models.ActionUserCreated,
		models.TargetUser, user.Username, "")
	return user, nil
}

// UpdateUser updates an account's profile, role, status, and optionally its
// password.
func (s *UserService) UpdateUser(ctx context.Context, session *models.Session, id string, input UserInput) (*models.User, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	var hash string
	if input.Password != "" {
		if len(input.Password) < 6 {
			return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hash = string(hashed)
	}

	user := &models.User{
		ID:           id,
		Name:         input.Name,
		Email:        input.Email,
		Role:         input.Role,
		Status:       input.Status,
		PasswordHash: hash,
	}
	if err := s.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapStore(err)
	}

	updated, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, wrapStore(err)
	}

	s.activity.Record(ctx, session.Username, models.ActionUserUpdated,
		models.TargetUser, updated.Username, "")
	return updated, nil
}

// DeleteUser removes an account.
func (s *UserService) DeleteUser(ctx context.Context, session *models.Session, id string) error {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return wrapStore(err)
	}

	if err := s.store.DeleteUser(ctx, id); err != nil {
		switch {
		case errors.Is(err, store.ErrUserHasOrders):
			return fmt.Errorf("%w: orders reference this account", ErrUserHasOrders)
		case errors.Is(err, store.ErrNotFound):
			return ErrNotFound
		default:
			return wrapStore(err)
		}
	}

	s.logger.Info("User deleted", zap.String("username", user.Username))
	s.activity.Record(ctx, session.Username, models.ActionUserDeleted,
		models.TargetUser, user.Username, "")
	return nil
}
