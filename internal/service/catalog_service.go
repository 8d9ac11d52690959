package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inventory-service/internal/models"
	"inventory-service/internal/store"
	"inventory-service/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CatalogStore is the slice of the store the catalog workflows need.
type CatalogStore interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	CountProductsInCategory(ctx context.Context, categoryID string) (int, error)
	DeleteCategory(ctx context.Context, id string) error

	GetProductsByCategory(ctx context.Context, categoryID string) ([]models.Product, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	ProductNameExists(ctx context.Context, categoryID, name string) (bool, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProductCascade(ctx context.Context, productID string) (int64, error)
}

// CatalogService manages categories and products, including the deletion
// guards and the duplicate-name guard.
type CatalogService struct {
	store    CatalogStore
	activity ActivityRecorder
	logger   *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store CatalogStore, activity ActivityRecorder) *CatalogService {
	return &CatalogService{
		store:    store,
		activity: activity,
		logger:   util.NamedLogger("catalog"),
	}
}

// ListCategories returns all categories with derived product counts.
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.store.GetCategories(ctx)
	if err != nil {
		return nil, wrapStore(err)
	}
	return categories, nil
}

// CategoryInput carries the writable category fields.
type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CreateCategory creates a category.
func (s *CatalogService) CreateCategory(ctx context.Context, session *models.Session, input CategoryInput) (*models.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}

	category := &models.Category{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Icon:        input.Icon,
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, wrapStore(err)
	}

	s.activity.Record(ctx, session.Username, models.ActionCategoryCreated,
		models.TargetCategory, category.Name, "")
	return category, nil
}

// UpdateCategory updates a category's name, description, and icon.
func (s *CatalogService) UpdateCategory(ctx context.Context, session *models.Session, id string, input CategoryInput) (*models.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}

	category := &models.Category{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Icon:        input.Icon,
	}
	if err := s.store.UpdateCategory(ctx, category); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapStore(err)
	}

	s.activity.Record(ctx, session.Username, models.ActionCategoryUpdated,
		models.TargetCategory, category.Name, "")

	updated, err := s.store.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, wrapStore(err)
	}
	return updated, nil
}

// DeleteCategory removes a category unless products still reference it.
func (s *CatalogService) DeleteCategory(ctx context.Context, session *models.Session, id string) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.DeleteCategory")
	defer span.End()

	category, err := s.store.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return wrapStore(err)
	}

	// The store refuses the delete atomically; the count is only fetched
	// afterwards to make the rejection readable.
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		switch {
		case errors.Is(err, store.ErrCategoryNotEmpty):
			util.CategoryDeletionsBlocked.Inc()
			count, countErr := s.store.CountProductsInCategory(ctx, id)
			if countErr != nil {
				return ErrCategoryNotEmpty
			}
			return fmt.Errorf("%w: %d products remain", ErrCategoryNotEmpty, count)
		case errors.Is(err, store.ErrNotFound):
			return ErrNotFound
		default:
			return wrapStore(err)
		}
	}

	s.logger.Info("Category deleted", zap.String("category_id", id), zap.String("name", category.Name))
	s.activity.Record(ctx, session.Username, models.ActionCategoryDeleted,
		models.TargetCategory, category.Name, "")
	return nil
}

// ListProducts returns the products of one category, newest first.
func (s *CatalogService) ListProducts(ctx context.Context, categoryID string) ([]models.Product, error) {
	products, err := s.store.GetProductsByCategory(ctx, categoryID)
	if err != nil {
		return nil, wrapStore(err)
	}
	return products, nil
}

// GetProduct returns one product.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapStore(err)
	}
	return product, nil
}

// ProductInput carries the writable product fields.
type ProductInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"image_url"`
	Status      string          `json:"status"`
}

func (in *ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}
	if in.Status == "" {
		in.Status = models.ProductStatusActive
	}
	if in.Status != models.ProductStatusActive && in.Status != models.ProductStatusInactive {
		return fmt.Errorf("%w: status must be active or inactive", ErrInvalidInput)
	}
	return nil
}

// CreateProduct creates a product after the duplicate-name guard passes.
// Names are unique per category, compared case-insensitively. The check is
// read-then-write, matching the store's lack of a uniqueness constraint; two
// racing creations of the same name can both pass.
func (s *CatalogService) CreateProduct(ctx context.Context, session *models.Session, categoryID string, input ProductInput) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateProduct")
	defer span.End()

	if err := input.validate(); err != nil {
		return nil, err
	}

	if _, err := s.store.GetCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapStore(err)
	}

	// The guard must see the same name the insert will store.
	name := strings.TrimSpace(input.Name)
	exists, err := s.store.ProductNameExists(ctx, categoryID, name)
	if err != nil {
		return nil, wrapStore(err)
	}
	if exists {
		util.DuplicateNamesRejected.Inc()
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	product := &models.Product{
		CategoryID:  categoryID,
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
		Status:      input.Status,
	}
	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, wrapStore(err)
	}

	s.activity.Record(ctx, session.Username, models.ActionProductCreated,
		models.TargetProduct, product.Name,
		fmt.Sprintf(`{"price":"%s","stock":%d}`, product.Price.String(), product.Stock))
	return product, nil
}

// UpdateProduct updates a product's fields.
func (s *CatalogService) UpdateProduct(ctx context.Context, session *models.Session, id string, input ProductInput) (*models.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
		Status:      input.Status,
	}
	if err := s.store.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapStore(err)
	}

	s.activity.Record(ctx, session.Username, models.ActionProductUpdated,
		models.TargetProduct, product.Name,
		fmt.Sprintf(`{"price":"%s","stock":%d,"status":"%s"}`, product.Price.String(), product.Stock, product.Status))

	updated, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, wrapStore(err)
	}
	return updated, nil
}

// DeleteProduct removes a product and its orders in one transaction, so the
// order history cannot outlive the product or vice versa.
func (s *CatalogService) DeleteProduct(ctx context.Context, session *models.Session, id string) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.DeleteProduct")
	defer span.End()

	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return wrapStore(err)
	}

	ordersDeleted, err := s.store.DeleteProductCascade(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return wrapStore(err)
	}

	s.logger.Info("Product deleted",
		zap.String("product_id", id),
		zap.String("name", product.Name),
		zap.Int64("orders_removed", ordersDeleted))
	s.activity.Record(ctx, session.Username, models.ActionProductDeleted,
		models.TargetProduct, product.Name,
		fmt.Sprintf(`{"orders_removed":%d}`, ordersDeleted))
	return nil
}
