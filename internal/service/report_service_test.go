package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"inventory-service/internal/models"
	"inventory-service/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeReportStore struct {
	categories []models.Category
	products   []models.ProductWithCategory
	users      []models.User
	summary    store.InventorySummary
	stats      []models.CategoryStat
	daily      []models.DailyUserStat
	logs       []models.LogEntry
}

func (f *fakeReportStore) GetCategories(context.Context) ([]models.Category, error) {
	return f.categories, nil
}
func (f *fakeReportStore) GetProductsWithCategory(context.Context) ([]models.ProductWithCategory, error) {
	return f.products, nil
}
func (f *fakeReportStore) GetUsers(context.Context) ([]models.User, error) { return f.users, nil }
func (f *fakeReportStore) GetInventorySummary(context.Context) (*store.InventorySummary, error) {
	return &f.summary, nil
}
func (f *fakeReportStore) GetCategoryStats(context.Context) ([]models.CategoryStat, error) {
	return f.stats, nil
}
func (f *fakeReportStore) GetDailyUserStats(context.Context, int) ([]models.DailyUserStat, error) {
	return f.daily, nil
}
func (f *fakeReportStore) GetLogs(context.Context, int) ([]models.LogEntry, error) {
	return f.logs, nil
}

func reportFixture() *fakeReportStore {
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	return &fakeReportStore{
		products: []models.ProductWithCategory{
			{
				Product: models.Product{
					Name: "Hammer", Description: "Claw hammer",
					Price: decimal.RequireFromString("12.50"), Stock: 8,
					Status: models.ProductStatusActive, CreatedAt: at, UpdatedAt: at,
				},
				CategoryName: "Tools",
			},
			{
				Product: models.Product{
					Name: "Saw", Description: "Hand saw",
					Price: decimal.RequireFromString("20.00"), Stock: 0,
					Status: models.ProductStatusInactive, CreatedAt: at.Add(-time.Hour), UpdatedAt: at,
				},
				CategoryName: "Tools",
			},
		},
		summary: store.InventorySummary{
			Categories: 1, Products: 2, Active: 1, Inactive: 1,
			InventoryValue: decimal.RequireFromString("100.00"), StockUnits: 8,
		},
		stats: []models.CategoryStat{
			{
				Name: "Tools", ProductCount: 2, ActiveCount: 1, InactiveCount: 1,
				InventoryValue: decimal.RequireFromString("100.00"), StockUnits: 8,
			},
		},
	}
}

func TestExportProductsDeterministic(t *testing.T) {
	svc := NewReportService(reportFixture())

	first, _, err := svc.ExportProducts(context.Background())
	require.NoError(t, err)
	second, _, err := svc.ExportProducts(context.Background())
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second),
		"identical snapshots must render byte-identical workbooks")
}

func TestExportProductsContent(t *testing.T) {
	svc := NewReportService(reportFixture())

	payload, filename, err := svc.ExportProducts(context.Background())
	require.NoError(t, err)
	assert.Regexp(t, `^products_\d{4}-\d{2}-\d{2}\.xlsx$`, filename)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two products")

	assert.Equal(t, "Name", rows[0][1])
	assert.Equal(t, "Hammer", rows[1][1])
	assert.Equal(t, "12.50", rows[1][4])
	assert.Equal(t, "Active", rows[1][6])
	assert.Equal(t, "Saw", rows[2][1])
	assert.Equal(t, "Inactive", rows[2][6])
}

func TestExportSummarySheets(t *testing.T) {
	svc := NewReportService(reportFixture())

	payload, _, err := svc.ExportSummary(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "By Category"}, f.GetSheetList())

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Equal(t, []string{"Total categories", "1"}, rows[1][:2])
	assert.Equal(t, []string{"Inventory value", "100.00"}, rows[6][:2])

	byCategory, err := f.GetRows("By Category")
	require.NoError(t, err)
	require.Len(t, byCategory, 2)
	assert.Equal(t, "Tools", byCategory[1][0])
	assert.Equal(t, "8", byCategory[1][5])
}

func TestOverviewFigures(t *testing.T) {
	fixture := reportFixture()
	fixture.daily = []models.DailyUserStat{{Date: time.Now(), Count: 4}}
	svc := NewReportService(fixture)

	overview, err := svc.GetOverview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, overview.TotalCategories)
	assert.Equal(t, 2, overview.TotalProducts)
	require.Len(t, overview.DailyNewUsers, 1)
	assert.Equal(t, 4, overview.DailyNewUsers[0].Count)
}
