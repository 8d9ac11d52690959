package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products. ProductCount is derived at query time, never stored.
type Category struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description"`
	Icon         string    `db:"icon" json:"icon"`
	ProductCount int       `db:"product_count" json:"product_count"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Product is a purchasable item belonging to one category.
type Product struct {
	ID          string          `db:"id" json:"id"`
	CategoryID  string          `db:"category_id" json:"category_id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Stock       int             `db:"stock" json:"stock"`
	ImageURL    string          `db:"image_url" json:"image_url"`
	Status      string          `db:"status" json:"status"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// ProductWithCategory joins a product with its owning category's name,
// as listed in exports.
type ProductWithCategory struct {
	Product
	CategoryName string `db:"category_name" json:"category_name"`
}

// Order records a completed purchase. Quantity and total price are fixed at
// insert time and never recomputed.
type Order struct {
	ID         string          `db:"id" json:"id"`
	UserID     string          `db:"user_id" json:"user_id"`
	ProductID  string          `db:"product_id" json:"product_id"`
	Quantity   int             `db:"quantity" json:"quantity"`
	TotalPrice decimal.Decimal `db:"total_price" json:"total_price"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// User is an account. PasswordHash is a bcrypt hash and is never serialized.
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Role         string    `db:"role" json:"role"`
	Status       string    `db:"status" json:"status"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// LogEntry is an append-only audit record. Entries are never updated or read
// back for correctness, only listed newest-first.
type LogEntry struct {
	ID         string    `db:"id" json:"id"`
	Username   string    `db:"username" json:"username"`
	Action     string    `db:"action" json:"action"`
	TargetType string    `db:"target_type" json:"target_type"`
	TargetName string    `db:"target_name" json:"target_name"`
	Detail     string    `db:"detail" json:"detail"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Session identifies an authenticated caller for the duration of a token's TTL.
type Session struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Product statuses
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// User roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User statuses
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// Activity actions recorded in the audit log
const (
	ActionCategoryCreated = "CATEGORY_CREATED"
	ActionCategoryUpdated = "CATEGORY_UPDATED"
	ActionCategoryDeleted = "CATEGORY_DELETED"
	ActionProductCreated  = "PRODUCT_CREATED"
	ActionProductUpdated  = "PRODUCT_UPDATED"
	ActionProductDeleted  = "PRODUCT_DELETED"
	ActionProductPurchase = "PRODUCT_PURCHASED"
	ActionUserCreated     = "USER_CREATED"
	ActionUserUpdated     = "USER_UPDATED"
	ActionUserDeleted     = "USER_DELETED"
)

// Activity target types
const (
	TargetCategory = "category"
	TargetProduct  = "product"
	TargetUser     = "user"
)

// DailyUserStat is one bar of the dashboard new-users chart.
type DailyUserStat struct {
	Date  time.Time `db:"date" json:"date"`
	Count int       `db:"count" json:"count"`
}

// CategoryStat is the per-category slice of the summary report.
type CategoryStat struct {
	Name           string          `db:"name" json:"name"`
	ProductCount   int             `db:"product_count" json:"product_count"`
	ActiveCount    int             `db:"active_count" json:"active_count"`
	InactiveCount  int             `db:"inactive_count" json:"inactive_count"`
	InventoryValue decimal.Decimal `db:"inventory_value" json:"inventory_value"`
	StockUnits     int             `db:"stock_units" json:"stock_units"`
}
