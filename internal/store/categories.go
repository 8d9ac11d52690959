package store

import (
	"context"
	"database/sql"

	"inventory-service/internal/models"

	"github.com/google/uuid"
)

// GetCategories retrieves all categories with their derived product counts,
// newest first.
func (s *Store) GetCategories(ctx context.Context) ([]models.Category, error) {
	query := `
		SELECT c.id, c.name, c.description, c.icon, c.created_at, c.updated_at,
		       COUNT(p.id) AS product_count
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at DESC`

	var categories []models.Category
	err := s.db.SelectContext(ctx, &categories, query)
	return categories, err
}

// GetCategoryByID retrieves a single category with its product count.
func (s *Store) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	query := `
		SELECT c.id, c.name, c.description, c.icon, c.created_at, c.updated_at,
		       COUNT(p.id) AS product_count
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		WHERE c.id = $1
		GROUP BY c.id`

	var category models.Category
	err := s.db.GetContext(ctx, &category, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory inserts a new category and fills in its generated fields.
func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	category.ID = uuid.New().String()

	query := `
		INSERT INTO categories (id, name, description, icon)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	return s.db.GetContext(ctx, category, query,
		category.ID, category.Name, category.Description, category.Icon)
}

// UpdateCategory updates an existing category.
func (s *Store) UpdateCategory(ctx context.Context, category *models.Category) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE categories SET name = $1, description = $2, icon = $3, updated_at = NOW() WHERE id = $4",
		category.Name, category.Description, category.Icon, category.ID)
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

// CountProductsInCategory returns the number of products referencing a
// category. The deletion guard checks this before removing the row.
func (s *Store) CountProductsInCategory(ctx context.Context, categoryID string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM products WHERE category_id = $1", categoryID)
	return count, err
}

// DeleteCategory removes a category unless products still reference it. The
// guard and the delete are one statement, so a concurrent product insert
// cannot slip between them.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM categories
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM products WHERE category_id = $1)`, id)
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
			"SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)", id); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrCategoryNotEmpty
	}
	return nil
}
