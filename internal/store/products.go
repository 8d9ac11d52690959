package store

import (
	"context"
	"database/sql"
	"fmt"

	"inventory-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GetProductsByCategory retrieves the products of one category, newest first.
func (s *Store) GetProductsByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE category_id = $1 ORDER BY created_at DESC", categoryID)
	return products, err
}

// GetProductsWithCategory retrieves all products joined with their category
// names, newest first. Used by exports and the summary report.
func (s *Store) GetProductsWithCategory(ctx context.Context) ([]models.ProductWithCategory, error) {
	query := `
		SELECT p.*, c.name AS category_name
		FROM products p
		JOIN categories c ON c.id = p.category_id
		ORDER BY p.created_at DESC`

	var products []models.ProductWithCategory
	err := s.db.SelectContext(ctx, &products, query)
	return products, err
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductNameExists reports whether a product with the given name already
// exists in the category, compared case-insensitively.
func (s *Store) ProductNameExists(ctx context.Context, categoryID, name string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM products WHERE category_id = $1 AND LOWER(name) = LOWER($2))",
		categoryID, name)
	return exists, err
}

// CreateProduct inserts a new product and fills in its generated fields.
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	product.ID = uuid.New().String()

	query := `
		INSERT INTO products (id, category_id, name, description, price, stock, image_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return s.db.GetContext(ctx, product, query,
		product.ID, product.CategoryID, product.Name, product.Description,
		product.Price, product.Stock, product.ImageURL, product.Status)
}

// UpdateProduct updates an existing product.
func (s *Store) UpdateProduct(ctx context.Context, product *models.Product) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, image_url = $5,
		    status = $6, updated_at = NOW()
		WHERE id = $7`,
		product.Name, product.Description, product.Price, product.Stock,
		product.ImageURL, product.Status, product.ID)
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

// DeleteProductCascade removes a product and every order referencing it in a
// single transaction, so no order can survive pointing at a missing product.
func (s *Store) DeleteProductCascade(ctx context.Context, productID string) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE product_id = $1", productID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orders for product: %w", err)
	}
	ordersDeleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	result, err = tx.ExecContext(ctx, "DELETE FROM products WHERE id = $1", productID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete product: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, ErrNotFound
	}

	return ordersDeleted, tx.Commit()
}

// PurchaseProduct converts available stock into a recorded order atomically.
// The decrement is conditional on sufficient stock; zero rows affected means
// the whole transaction rolls back and no order is written.
func (s *Store) PurchaseProduct(ctx context.Context, userID, productID string, quantity int) (*models.Order, *models.Product, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	var product models.Product
	err = tx.GetContext(ctx, &product, `
		UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1
		RETURNING *`,
		quantity, productID)
	if err == sql.ErrNoRows {
		// Either the product is gone or the conditional decrement refused.
		var exists bool
		if checkErr := tx.GetContext(ctx, &exists,
			"SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)", productID); checkErr != nil {
			return nil, nil, checkErr
		}
		if !exists {
			return nil, nil, ErrNotFound
		}
		return nil, nil, ErrInsufficientStock
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decrement stock: %w", err)
	}

	order := &models.Order{
		ID:         uuid.New().String(),
		UserID:     userID,
		ProductID:  productID,
		Quantity:   quantity,
		TotalPrice: product.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}

	err = tx.GetContext(ctx, order, `
		INSERT INTO orders (id, user_id, product_id, quantity, total_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		order.ID, order.UserID, order.ProductID, order.Quantity, order.TotalPrice)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, &product, tx.Commit()
}
