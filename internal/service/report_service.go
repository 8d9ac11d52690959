package service

import (
	"context"
	"time"

	"inventory-service/internal/export"
	"inventory-service/internal/models"
	"inventory-service/internal/store"
	"inventory-service/internal/util"

	"go.uber.org/zap"
)

// ReportStore is the read-only slice of the store reporting needs.
type ReportStore interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetProductsWithCategory(ctx context.Context) ([]models.ProductWithCategory, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	GetInventorySummary(ctx context.Context) (*store.InventorySummary, error)
	GetCategoryStats(ctx context.Context) ([]models.CategoryStat, error)
	GetDailyUserStats(ctx context.Context, days int) ([]models.DailyUserStat, error)
	GetLogs(ctx context.Context, limit int) ([]models.LogEntry, error)
}

// ReportService turns store snapshots into spreadsheet exports and dashboard
// figures. Formatting is deterministic: the same snapshot renders the same
// bytes, rows ordered newest-first as fetched.
type ReportService struct {
	store  ReportStore
	logger *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(store ReportStore) *ReportService {
	return &ReportService{
		store:  store,
		logger: util.NamedLogger("reports"),
	}
}

const exportTimeFormat = "2006-01-02 15:04"

func statusLabel(status string) string {
	if status == models.ProductStatusActive {
		return "Active"
	}
	return "Inactive"
}

func roleLabel(role string) string {
	if role == models.RoleAdmin {
		return "Administrator"
	}
	return "User"
}

// ExportCategories renders the category list.
func (s *ReportService) ExportCategories(ctx context.Context) ([]byte, string, error) {
	ctx, span := util.StartSpan(ctx, "ReportService.ExportCategories")
	defer span.End()

	start := time.Now()
	defer func() { util.ExportLatency.Observe(time.Since(start).Seconds()) }()

	categories, err := s.store.GetCategories(ctx)
	if err != nil {
		return nil, "", wrapStore(err)
	}

	payload, err := export.WriteWorkbook([]export.Sheet{buildCategorySheet(categories)})
	if err != nil {
		return nil, "", err
	}

	util.ExportsTotal.WithLabelValues("categories").Inc()
	return payload, export.Filename("categories", time.Now()), nil
}

func buildCategorySheet(categories []models.Category) export.Sheet {
	sheet := export.Sheet{
		Name: "Categories",
		Columns: []export.Column{
			{Label: "#", Width: 8},
			{Label: "Name", Width: 25},
			{Label: "Description", Width: 40},
			{Label: "Icon", Width: 8},
			{Label: "Products", Width: 12},
			{Label: "Created", Width: 20},
			{Label: "Updated", Width: 20},
		},
	}
	for i, c := range categories {
		sheet.Rows = append(sheet.Rows, []interface{}{
			i + 1, c.Name, c.Description, c.Icon, c.ProductCount,
			c.CreatedAt.Format(exportTimeFormat), c.UpdatedAt.Format(exportTimeFormat),
		})
	}
	return sheet
}

// ExportProducts renders the product list across all categories.
func (s *ReportService) ExportProducts(ctx context.Context) ([]byte, string, error) {
	ctx, span := util.StartSpan(ctx, "ReportService.ExportProducts")
	defer span.End()

	start := time.Now()
	defer func() { util.ExportLatency.Observe(time.Since(start).Seconds()) }()

	products, err := s.store.GetProductsWithCategory(ctx)
	if err != nil {
		return nil, "", wrapStore(err)
	}

	payload, err := export.WriteWorkbook([]export.Sheet{buildProductSheet(products)})
	if err != nil {
		return nil, "", err
	}

	util.ExportsTotal.WithLabelValues("products").Inc()
	return payload, export.Filename("products", time.Now()), nil
}

func buildProductSheet(products []models.ProductWithCategory) export.Sheet {
	sheet := export.Sheet{
		Name: "Products",
		Columns: []export.Column{
			{Label: "#", Width: 8},
			{Label: "Name", Width: 25},
			{Label: "Description", Width: 40},
			{Label: "Category", Width: 20},
			{Label: "Price", Width: 12},
			{Label: "Stock", Width: 12},
			{Label: "Status", Width: 12},
			{Label: "Created", Width: 20},
			{Label: "Updated", Width: 20},
		},
	}
	for i, p := range products {
		sheet.Rows = append(sheet.Rows, []interface{}{
			i + 1, p.Name, p.Description, p.CategoryName, p.Price.String(), p.Stock,
			statusLabel(p.Status),
			p.CreatedAt.Format(exportTimeFormat), p.UpdatedAt.Format(exportTimeFormat),
		})
	}
	return sheet
}

// ExportUsers renders the account list.
func (s *ReportService) ExportUsers(ctx context.Context) ([]byte, string, error) {
	ctx, span := util.StartSpan(ctx, "ReportService.ExportUsers")
	defer span.End()

	start := time.Now()
	defer func() { util.ExportLatency.Observe(time.Since(start).Seconds()) }()

	users, err := s.store.GetUsers(ctx)
	if err != nil {
		return nil, "", wrapStore(err)
	}

	payload, err := export.WriteWorkbook([]export.Sheet{buildUserSheet(users)})
	if err != nil {
		return nil, "", err
	}

	util.ExportsTotal.WithLabelValues("users").Inc()
	return payload, export.Filename("users", time.Now()), nil
}

func buildUserSheet(users []models.User) export.Sheet {
	sheet := export.Sheet{
		Name: "Users",
		Columns: []export.Column{
			{Label: "#", Width: 8},
			{Label: "Username", Width: 15},
			{Label: "Name", Width: 25},
			{Label: "Email", Width: 30},
			{Label: "Role", Width: 15},
			{Label: "Status", Width: 12},
			{Label: "Created", Width: 20},
			{Label: "Updated", Width: 20},
		},
	}
	for i, u := range users {
		sheet.Rows = append(sheet.Rows, []interface{}{
			i + 1, u.Username, u.Name, u.Email, roleLabel(u.Role), statusLabel(u.Status),
			u.CreatedAt.Format(exportTimeFormat), u.UpdatedAt.Format(exportTimeFormat),
		})
	}
	return sheet
}

// ExportSummary renders the two-sheet overview: global figures plus the
// per-category breakdown.
func (s *ReportService) ExportSummary(ctx context.Context) ([]byte, string, error) {
	ctx, span := util.StartSpan(ctx, "ReportService.ExportSummary")
	defer span.End()

	start := time.Now()
	defer func() { util.ExportLatency.Observe(time.Since(start).Seconds()) }()

	summary, err := s.store.GetInventorySummary(ctx)
	if err != nil {
		return nil, "", wrapStore(err)
	}
	stats, err := s.store.GetCategoryStats(ctx)
	if err != nil {
		return nil, "", wrapStore(err)
	}

	payload, err := export.WriteWorkbook(buildSummarySheets(summary, stats))
	if err != nil {
		return nil, "", err
	}

	util.ExportsTotal.WithLabelValues("summary").Inc()
	return payload, export.Filename("summary", time.Now()), nil
}

func buildSummarySheets(summary *store.InventorySummary, stats []models.CategoryStat) []export.Sheet {
	overview := export.Sheet{
		Name: "Summary",
		Columns: []export.Column{
			{Label: "Item", Width: 30},
			{Label: "Value", Width: 20},
		},
		Rows: [][]interface{}{
			{"Total categories", summary.Categories},
			{"", ""},
			{"Total products", summary.Products},
			{"Active products", summary.Active},
			{"Inactive products", summary.Inactive},
			{"Inventory value", summary.InventoryValue.String()},
			{"Units on hand", summary.StockUnits},
		},
	}

	byCategory := export.Sheet{
		Name: "By Category",
		Columns: []export.Column{
			{Label: "Category", Width: 25},
			{Label: "Products", Width: 12},
			{Label: "Active", Width: 15},
			{Label: "Inactive", Width: 15},
			{Label: "Inventory value", Width: 20},
			{Label: "Units on hand", Width: 20},
		},
	}
	for _, stat := range stats {
		byCategory.Rows = append(byCategory.Rows, []interface{}{
			stat.Name, stat.ProductCount, stat.ActiveCount, stat.InactiveCount,
			stat.InventoryValue.String(), stat.StockUnits,
		})
	}

	return []export.Sheet{overview, byCategory}
}

// Overview holds the dashboard figures.
type Overview struct {
	TotalCategories int                    `json:"total_categories"`
	TotalProducts   int                    `json:"total_products"`
	DailyNewUsers   []models.DailyUserStat `json:"daily_new_users"`
}

// GetOverview returns the dashboard statistics.
func (s *ReportService) GetOverview(ctx context.Context) (*Overview, error) {
	summary, err := s.store.GetInventorySummary(ctx)
	if err != nil {
		return nil, wrapStore(err)
	}

	daily, err := s.store.GetDailyUserStats(ctx, 30)
	if err != nil {
		return nil, wrapStore(err)
	}

	return &Overview{
		TotalCategories: summary.Categories,
		TotalProducts:   summary.Products,
		DailyNewUsers:   daily,
	}, nil
}

// ListLogs returns activity entries newest-first.
func (s *ReportService) ListLogs(ctx context.Context, limit int) ([]models.LogEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	entries, err := s.store.GetLogs(ctx, limit)
	if err != nil {
		return nil, wrapStore(err)
	}
	return entries, nil
}
