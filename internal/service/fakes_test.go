package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"inventory-service/internal/models"
	"inventory-service/internal/store"

	"github.com/shopspring/decimal"
)

// recorderStub captures activity events for assertions.
type recorderStub struct {
	mu      sync.Mutex
	actions []string
}

func (r *recorderStub) Record(_ context.Context, _, action, _, _, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
}

func (r *recorderStub) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.actions...)
}

// fakePurchaseStore mirrors the conditional-decrement semantics of the real
// store in memory.
type fakePurchaseStore struct {
	products map[string]*models.Product
	orders   []models.Order
}

func newFakePurchaseStore() *fakePurchaseStore {
	return &fakePurchaseStore{products: make(map[string]*models.Product)}
}

func (f *fakePurchaseStore) PurchaseProduct(_ context.Context, userID, productID string, quantity int) (*models.Order, *models.Product, error) {
	product, ok := f.products[productID]
	if !ok {
		return nil, nil, store.ErrNotFound
	}
	if product.Stock < quantity {
		return nil, nil, store.ErrInsufficientStock
	}

	product.Stock -= quantity
	order := models.Order{
		ID:         "order-" + productID,
		UserID:     userID,
		ProductID:  productID,
		Quantity:   quantity,
		TotalPrice: product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:  time.Now(),
	}
	f.orders = append(f.orders, order)

	snapshot := *product
	return &order, &snapshot, nil
}

func (f *fakePurchaseStore) GetOrdersByUserID(_ context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (f *fakePurchaseStore) GetOrders(_ context.Context) ([]models.Order, error) {
	return append([]models.Order(nil), f.orders...), nil
}

// fakeCatalogStore keeps categories, products, and orders in memory.
type fakeCatalogStore struct {
	categories map[string]*models.Category
	products   map[string]*models.Product
	orders     []models.Order
	nextID     int
}

func newFakeCatalogStore() *fakeCatalogStore {
	return &fakeCatalogStore{
		categories: make(map[string]*models.Category),
		products:   make(map[string]*models.Product),
	}
}

func (f *fakeCatalogStore) GetCategories(_ context.Context) ([]models.Category, error) {
	var categories []models.Category
	for _, c := range f.categories {
		categories = append(categories, *c)
	}
	return categories, nil
}

func (f *fakeCatalogStore) GetCategoryByID(_ context.Context, id string) (*models.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	snapshot := *category
	return &snapshot, nil
}

func (f *fakeCatalogStore) CreateCategory(_ context.Context, category *models.Category) error {
	f.nextID++
	category.ID = fmt.Sprintf("cat-%d", f.nextID)
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	stored := *category
	f.categories[category.ID] = &stored
	return nil
}

func (f *fakeCatalogStore) UpdateCategory(_ context.Context, category *models.Category) error {
	stored, ok := f.categories[category.ID]
	if !ok {
		return store.ErrNotFound
	}
	stored.Name = category.Name
	stored.Description = category.Description
	stored.Icon = category.Icon
	return nil
}

func (f *fakeCatalogStore) CountProductsInCategory(_ context.Context, categoryID string) (int, error) {
	count := 0
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (f *fakeCatalogStore) DeleteCategory(_ context.Context, id string) error {
	if _, ok := f.categories[id]; !ok {
		return store.ErrNotFound
	}
	for _, p := range f.products {
		if p.CategoryID == id {
			return store.ErrCategoryNotEmpty
		}
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeCatalogStore) GetProductsByCategory(_ context.Context, categoryID string) ([]models.Product, error) {
	var products []models.Product
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (f *fakeCatalogStore) GetProductByID(_ context.Context, id string) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	snapshot := *product
	return &snapshot, nil
}

func (f *fakeCatalogStore) ProductNameExists(_ context.Context, categoryID, name string) (bool, error) {
	for _, p := range f.products {
		if p.CategoryID == categoryID && strings.EqualFold(p.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCatalogStore) CreateProduct(_ context.Context, product *models.Product) error {
	f.nextID++
	product.ID = fmt.Sprintf("prod-%d", f.nextID)
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	stored := *product
	f.products[product.ID] = &stored
	return nil
}

func (f *fakeCatalogStore) UpdateProduct(_ context.Context, product *models.Product) error {
	stored, ok := f.products[product.ID]
	if !ok {
		return store.ErrNotFound
	}
	stored.Name = product.Name
	stored.Description = product.Description
	stored.Price = product.Price
	stored.Stock = product.Stock
	stored.ImageURL = product.ImageURL
	stored.Status = product.Status
	return nil
}

func (f *fakeCatalogStore) DeleteProductCascade(_ context.Context, productID string) (int64, error) {
	if _, ok := f.products[productID]; !ok {
		return 0, store.ErrNotFound
	}

	var kept []models.Order
	var removed int64
	for _, o := range f.orders {
		if o.ProductID == productID {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	f.orders = kept
	delete(f.products, productID)
	return removed, nil
}

// fakeUserStore implements both UserStore and UserAdminStore. orderCounts
// stands in for the orders table's references to each user.
type fakeUserStore struct {
	users       map[string]*models.User
	orderCounts map[string]int
	nextID      int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:       make(map[string]*models.User),
		orderCounts: make(map[string]int),
	}
}

func (f *fakeUserStore) GetUsers(_ context.Context) ([]models.User, error) {
	var users []models.User
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	snapshot := *user
	return &snapshot, nil
}

func (f *fakeUserStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			snapshot := *u
			return &snapshot, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) UsernameExists(_ context.Context, username string) (bool, error) {
	_, err := f.GetUserByUsername(context.Background(), username)
	return err == nil, nil
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) error {
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) UpdateUser(_ context.Context, user *models.User) error {
	stored, ok := f.users[user.ID]
	if !ok {
		return store.ErrNotFound
	}
	stored.Name = user.Name
	stored.Email = user.Email
	stored.Role = user.Role
	stored.Status = user.Status
	if user.PasswordHash != "" {
		stored.PasswordHash = user.PasswordHash
	}
	return nil
}

func (f *fakeUserStore) DeleteUser(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return store.ErrNotFound
	}
	if f.orderCounts[id] > 0 {
		return store.ErrUserHasOrders
	}
	delete(f.users, id)
	return nil
}

// fakeSessionStore keeps sessions in a map, ignoring TTLs.
type fakeSessionStore struct {
	sessions map[string]*models.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*models.Session)}
}

func (f *fakeSessionStore) SaveSession(_ context.Context, session *models.Session, _ time.Duration) error {
	stored := *session
	f.sessions[session.Token] = &stored
	return nil
}

func (f *fakeSessionStore) GetSession(_ context.Context, token string) (*models.Session, error) {
	session, ok := f.sessions[token]
	if !ok {
		return nil, nil
	}
	snapshot := *session
	return &snapshot, nil
}

func (f *fakeSessionStore) DeleteSession(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionStore) RefreshSession(_ context.Context, _ string, _ time.Duration) error {
	return nil
}
