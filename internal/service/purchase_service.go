package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventory-service/internal/models"
	"inventory-service/internal/store"
	"inventory-service/internal/util"

	"go.uber.org/zap"
)

// ActivityRecorder appends best-effort audit events. Implementations must
// never block or fail the calling operation.
type ActivityRecorder interface {
	Record(ctx context.Context, username, action, targetType, targetName, detail string)
}

// PurchaseStore is the slice of the store the purchase workflow needs.
type PurchaseStore interface {
	PurchaseProduct(ctx context.Context, userID, productID string, quantity int) (*models.Order, *models.Product, error)
	GetOrdersByUserID(ctx context.Context, userID string) ([]models.Order, error)
	GetOrders(ctx context.Context) ([]models.Order, error)
}

// PurchaseService converts available stock into recorded orders.
type PurchaseService struct {
	store    PurchaseStore
	activity ActivityRecorder
	logger   *zap.Logger
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(store PurchaseStore, activity ActivityRecorder) *PurchaseService {
	return &PurchaseService{
		store:    store,
		activity: activity,
		logger:   util.NamedLogger("purchase"),
	}
}

// Purchase validates the request, then atomically decrements stock and
// records the order. On success the updated product snapshot is returned for
// the caller's refresh.
func (s *PurchaseService) Purchase(ctx context.Context, session *models.Session, productID string, quantity int) (*models.Order, *models.Product, error) {
	ctx, span := util.StartSpan(ctx, "PurchaseService.Purchase")
	defer span.End()

	start := time.Now()
	defer func() {
		util.PurchaseLatency.Observe(time.Since(start).Seconds())
	}()

	if session == nil || session.UserID == "" {
		util.PurchasesFailedTotal.WithLabelValues("unauthenticated").Inc()
		return nil, nil, ErrUnauthenticated
	}

	if quantity < 1 {
		util.PurchasesFailedTotal.WithLabelValues("insufficient_stock").Inc()
		return nil, nil, ErrInsufficientStock
	}

	order, product, err := s.store.PurchaseProduct(ctx, session.UserID, productID, quantity)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInsufficientStock):
			util.PurchasesFailedTotal.WithLabelValues("insufficient_stock").Inc()
			return nil, nil, ErrInsufficientStock
		case errors.Is(err, store.ErrNotFound):
			util.PurchasesFailedTotal.WithLabelValues("product_not_found").Inc()
			return nil, nil, ErrNotFound
		default:
			util.PurchasesFailedTotal.WithLabelValues("store_error").Inc()
			return nil, nil, wrapStore(err)
		}
	}

	util.PurchasesTotal.Inc()
	s.logger.Info("Purchase completed",
		zap.String("order_id", order.ID),
		zap.String("product_id", product.ID),
		zap.Int("quantity", quantity),
		zap.Int("stock_left", product.Stock))

	s.activity.Record(ctx, session.Username, models.ActionProductPurchase,
		models.TargetProduct, product.Name,
		fmt.Sprintf(`{"quantity":%d,"total_price":"%s"}`, quantity, order.TotalPrice.String()))

	return order, product, nil
}

// ListOrders returns orders for the caller. Regular users see their own;
// admins see every order, or one user's when forUserID is set.
func (s *PurchaseService) ListOrders(ctx context.Context, session *models.Session, forUserID string) ([]models.Order, error) {
	if session == nil || session.UserID == "" {
		return nil, ErrUnauthenticated
	}

	if session.Role == models.RoleAdmin {
		if forUserID == "" {
			orders, err := s.store.GetOrders(ctx)
			if err != nil {
				return nil, wrapStore(err)
			}
			return orders, nil
		}
		orders, err := s.store.GetOrdersByUserID(ctx, forUserID)
		if err != nil {
			return nil, wrapStore(err)
		}
		return orders, nil
	}

	orders, err := s.store.GetOrdersByUserID(ctx, session.UserID)
	if err != nil {
		return nil, wrapStore(err)
	}
	return orders, nil
}
