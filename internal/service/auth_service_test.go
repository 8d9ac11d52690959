package service

import (
	"context"
	"testing"
	"time"

	"inventory-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService() (*AuthService, *fakeUserStore, *fakeSessionStore) {
	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	// MinCost keeps the hashing fast in tests.
	svc := NewAuthService(users, sessions, time.Hour, bcrypt.MinCost)
	return svc, users, sessions
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, users, _ := newTestAuthService()

	user, session, err := svc.Register(context.Background(), RegisterRequest{
		Username: "alice",
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cretpw",
	})
	require.NoError(t, err)
	require.NotNil(t, session)

	stored, err := users.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpw", stored.PasswordHash, "plaintext must never be stored")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cretpw")))
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Username: "bob", Name: "Bob", Email: "bob@example.com", Password: "short",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestAuthService()

	req := RegisterRequest{Username: "alice", Name: "A", Email: "a@example.com", Password: "s3cretpw"}
	_, _, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestLoginIssuesUsableSession(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Username: "alice", Name: "A", Email: "a@example.com", Password: "s3cretpw",
	})
	require.NoError(t, err)

	user, session, err := svc.Login(context.Background(), "alice", "s3cretpw")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	resolved, err := svc.Authenticate(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.UserID)
	assert.Equal(t, models.RoleUser, resolved.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Username: "alice", Name: "A", Email: "a@example.com", Password: "s3cretpw",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "alice", "wrong-pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody", "s3cretpw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUserRejected(t *testing.T) {
	svc, users, _ := newTestAuthService()

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Username: "alice", Name: "A", Email: "a@example.com", Password: "s3cretpw",
	})
	require.NoError(t, err)

	stored, err := users.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	users.users[stored.ID].Status = models.UserStatusInactive

	_, _, err = svc.Login(context.Background(), "alice", "s3cretpw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, session, err := svc.Register(context.Background(), RegisterRequest{
		Username: "alice", Name: "A", Email: "a@example.com", Password: "s3cretpw",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session.Token))

	_, err = svc.Authenticate(context.Background(), session.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticateEmptyToken(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
