package store

import (
	"context"
	"database/sql"

	"inventory-service/internal/models"

	"github.com/google/uuid"
)

// GetUsers retrieves all users, newest first.
func (s *Store) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.SelectContext(ctx, &users, "SELECT * FROM users ORDER BY created_at DESC")
	return users, err
}

// GetUserByID retrieves a user by ID
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE username = $1", username)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameExists reports whether a username is already taken.
func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", username)
	return exists, err
}

// CreateUser inserts a new user and fills in its generated fields.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = uuid.New().String()

	query := `
		INSERT INTO users (id, username, name, email, role, status, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return s.db.GetContext(ctx, user, query,
		user.ID, user.Username, user.Name, user.Email, user.Role, user.Status, user.PasswordHash)
}

// UpdateUser updates a user's profile, role, and status. The password hash is
// only replaced when a non-empty hash is supplied.
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET name = $1, email = $2, role = $3, status = $4,
		    password_hash = CASE WHEN $5 = '' THEN password_hash ELSE $5 END,
		    updated_at = NOW()
		WHERE id = $6`,
		user.Name, user.Email, user.Role, user.Status, user.PasswordHash, user.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes a user unless orders still reference it, mirroring the
// category guard. Order history stays intact until its product cascade
// removes it.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM users
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM orders WHERE user_id = $1)`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var exists bool
		if err := s.db.GetContext(ctx, &exists,
			"SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", id); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrUserHasOrders
	}
	return nil
}
