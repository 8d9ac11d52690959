package store

import (
	"context"

	"inventory-service/internal/models"

	"github.com/shopspring/decimal"
)

// InventorySummary holds the global counts shown on the summary report.
type InventorySummary struct {
	Categories     int             `db:"categories"`
	Products       int             `db:"products"`
	Active         int             `db:"active"`
	Inactive       int             `db:"inactive"`
	InventoryValue decimal.Decimal `db:"inventory_value"`
	StockUnits     int             `db:"stock_units"`
}

// GetInventorySummary computes the global inventory figures in one query.
func (s *Store) GetInventorySummary(ctx context.Context) (*InventorySummary, error) {
	query := `
		SELECT (SELECT COUNT(*) FROM categories)                       AS categories,
		       COUNT(p.id)                                             AS products,
		       COUNT(p.id) FILTER (WHERE p.status = 'active')          AS active,
		       COUNT(p.id) FILTER (WHERE p.status = 'inactive')        AS inactive,
		       COALESCE(SUM(p.price * p.stock), 0)                     AS inventory_value,
		       COALESCE(SUM(p.stock), 0)                               AS stock_units
		FROM products p`

	var summary InventorySummary
	err := s.db.GetContext(ctx, &summary, query)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetCategoryStats computes the per-category breakdown of the summary report.
func (s *Store) GetCategoryStats(ctx context.Context) ([]models.CategoryStat, error) {
	query := `
		SELECT c.name,
		       COUNT(p.id)                                             AS product_count,
		       COUNT(p.id) FILTER (WHERE p.status = 'active')          AS active_count,
		       COUNT(p.id) FILTER (WHERE p.status = 'inactive')        AS inactive_count,
		       COALESCE(SUM(p.price * p.stock), 0)                     AS inventory_value,
		       COALESCE(SUM(p.stock), 0)                               AS stock_units
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at DESC`

	var stats []models.CategoryStat
	err := s.db.SelectContext(ctx, &stats, query)
	return stats, err
}

// GetDailyUserStats returns per-day new-user counts for the trailing window.
func (s *Store) GetDailyUserStats(ctx context.Context, days int) ([]models.DailyUserStat, error) {
	query := `
		SELECT DATE_TRUNC('day', created_at) AS date, COUNT(*) AS count
		FROM users
		WHERE created_at >= NOW() - ($1 * INTERVAL '1 day')
		GROUP BY 1
		ORDER BY 1`

	var stats []models.DailyUserStat
	err := s.db.SelectContext(ctx, &stats, query, days)
	return stats, err
}
