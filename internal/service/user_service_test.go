package service

import (
	"context"
	"testing"

	"inventory-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserService() (*UserService, *fakeUserStore, *recorderStub) {
	users := newFakeUserStore()
	recorder := &recorderStub{}
	return NewUserService(users, recorder, bcrypt.MinCost), users, recorder
}

func TestAdminCreateUser(t *testing.T) {
	svc, users, recorder := newTestUserService()

	created, err := svc.CreateUser(context.Background(), adminSession(), UserInput{
		Username: "bob",
		Name:     "Bob",
		Email:    "bob@example.com",
		Role:     models.RoleAdmin,
		Password: "s3cretpw",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, created.Role)
	assert.Equal(t, models.UserStatusActive, created.Status)

	stored := users.users[created.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cretpw")))
	assert.Contains(t, recorder.recorded(), models.ActionUserCreated)
}

func TestAdminCreateUserValidation(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, err := svc.CreateUser(context.Background(), adminSession(), UserInput{
		Name: "Bob", Email: "bob@example.com", Password: "s3cretpw",
	})
	assert.ErrorIs(t, err, ErrInvalidInput, "username required")

	_, err = svc.CreateUser(context.Background(), adminSession(), UserInput{
		Username: "bob", Name: "Bob", Email: "bob@example.com", Password: "pw",
	})
	assert.ErrorIs(t, err, ErrInvalidInput, "short password")

	_, err = svc.CreateUser(context.Background(), adminSession(), UserInput{
		Username: "bob", Name: "Bob", Email: "bob@example.com", Role: "owner", Password: "s3cretpw",
	})
	assert.ErrorIs(t, err, ErrInvalidInput, "unknown role")
}

func TestAdminUpdateUserKeepsPasswordWhenEmpty(t *testing.T) {
	svc, users, _ := newTestUserService()

	created, err := svc.CreateUser(context.Background(), adminSession(), UserInput{
		Username: "bob", Name: "Bob", Email: "bob@example.com", Password: "s3cretpw",
	})
	require.NoError(t, err)
	originalHash := users.users[created.ID].PasswordHash

	updated, err := svc.UpdateUser(context.Background(), adminSession(), created.ID, UserInput{
		Name: "Robert", Email: "bob@example.com", Status: models.UserStatusInactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.Name)
	assert.Equal(t, models.UserStatusInactive, updated.Status)
	assert.Equal(t, originalHash, users.users[created.ID].PasswordHash)

	_, err = svc.UpdateUser(context.Background(), adminSession(), created.ID, UserInput{
		Name: "Robert", Email: "bob@example.com", Password: "newsecret",
	})
	require.NoError(t, err)
	assert.NotEqual(t, originalHash, users.users[created.ID].PasswordHash)
}

func TestAdminDeleteUser(t *testing.T) {
	svc, users, recorder := newTestUserService()

	created, err := svc.CreateUser(context.Background(), adminSession(), UserInput{
		Username: "bob", Name: "Bob", Email: "bob@example.com", Password: "s3cretpw",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(context.Background(), adminSession(), created.ID))
	assert.NotContains(t, users.users, created.ID)
	assert.Contains(t, recorder.recorded(), models.ActionUserDeleted)

	err = svc.DeleteUser(context.Background(), adminSession(), created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminDeleteUserWithOrdersBlocked(t *testing.T) {
	svc, users, _ := newTestUserService()

	created, err := svc.CreateUser(context.Background(), adminSession(), UserInput{
		Username: "bob", Name: "Bob", Email: "bob@example.com", Password: "s3cretpw",
	})
	require.NoError(t, err)
	users.orderCounts[created.ID] = 2

	err = svc.DeleteUser(context.Background(), adminSession(), created.ID)
	assert.ErrorIs(t, err, ErrUserHasOrders)
	assert.Contains(t, users.users, created.ID, "blocked deletion must leave the account")
}
