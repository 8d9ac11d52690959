package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventory-service/internal/models"
	"inventory-service/internal/store"
	"inventory-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the slice of the store authentication needs.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
}

// SessionStore keeps live sessions keyed by opaque token. Satisfied by
// *redisclient.Client.
type SessionStore interface {
	SaveSession(ctx context.Context, session *models.Session, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
	RefreshSession(ctx context.Context, token string, ttl time.Duration) error
}

// AuthService registers accounts and manages login sessions. Passwords are
// bcrypt hashes; no plaintext is ever stored or compared.
type AuthService struct {
	users      UserStore
	sessions   SessionStore
	sessionTTL time.Duration
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users UserStore, sessions SessionStore, sessionTTL time.Duration, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		bcryptCost: bcryptCost,
		logger:     util.NamedLogger("auth"),
	}
}

// RegisterRequest carries a registration form.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a regular user account and logs it in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, *models.Session, error) {
	ctx, span := util.StartSpan(ctx, "AuthService.Register")
	defer span.End()

	if len(req.Password) < 6 {
		return nil, nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}

	taken, err := s.users.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, nil, wrapStore(err)
	}
	if taken {
		return nil, nil, fmt.Errorf("%w: %q", ErrDuplicateUsername, req.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		Role:         models.RoleUser,
		Status:       models.UserStatusActive,
		PasswordHash: string(hash),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, nil, wrapStore(err)
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("User registered", zap.String("username", user.Username))
	return user, session, nil
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, *models.Session, error) {
	ctx, span := util.StartSpan(ctx, "AuthService.Login")
	defer span.End()

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.LoginsTotal.WithLabelValues("rejected").Inc()
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, wrapStore(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		util.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, nil, ErrInvalidCredentials
	}

	if user.Status != models.UserStatusActive {
		util.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	util.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info("User logged in", zap.String("username", user.Username))
	return user, session, nil
}

// Logout deletes the session behind a token. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.DeleteSession(ctx, token); err != nil {
		return wrapStore(err)
	}
	return nil
}

// Authenticate resolves a bearer token to its session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		return nil, wrapStore(err)
	}
	if session == nil {
		return nil, ErrUnauthenticated
	}

	// Sliding expiry. A failed refresh just lets the session lapse sooner.
	_ = s.sessions.RefreshSession(ctx, token, s.sessionTTL)

	return session, nil
}

func (s *AuthService) issueSession(ctx context.Context, user *models.User) (*models.Session, error) {
	session := &models.Session{
		Token:    uuid.New().String(),
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
	if err := s.sessions.SaveSession(ctx, session, s.sessionTTL); err != nil {
		return nil, wrapStore(err)
	}
	return session, nil
}
