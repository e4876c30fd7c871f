package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/streetserve/streetserve-backend/pkg/db/models"
	"github.com/streetserve/streetserve-backend/pkg/enums"
)

func setupDashboardTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  vendor_id TEXT NOT NULL,
  supplier_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  total_amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  order_date DATETIME NOT NULL,
  delivery_date DATETIME,
  group_buy_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	return db
}

func insertOrder(t *testing.T, db *gorm.DB, vendorID, supplierID uuid.UUID, amount int64, status enums.OrderStatus, orderDate time.Time) {
	t.Helper()

	order := &models.Order{
		ID:          uuid.New(),
		VendorID:    vendorID,
		SupplierID:  supplierID,
		ProductID:   uuid.New(),
		Quantity:    1,
		UnitPrice:   decimal.NewFromInt(amount),
		TotalAmount: decimal.NewFromInt(amount),
		Status:      status,
		OrderDate:   orderDate,
	}
	require.NoError(t, db.Create(order).Error)
}

func TestRepositoryVendorAggregates(t *testing.T) {
	db := setupDashboardTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	vendorID := uuid.New()
	supplierID := uuid.New()
	now := time.Now()
	monthStart := startOfMonth(now)

	insertOrder(t, db, vendorID, supplierID, 100, enums.OrderStatusDelivered, now)
	insertOrder(t, db, vendorID, supplierID, 50, enums.OrderStatusCancelled, now)
	insertOrder(t, db, vendorID, supplierID, 30, enums.OrderStatusPending, monthStart.AddDate(0, 0, -1))
	insertOrder(t, db, uuid.New(), supplierID, 999, enums.OrderStatusDelivered, now)

	total, err := repo.CountOrdersByVendor(ctx, vendorID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	// every status counts toward spend
	spent, err := repo.SumSpentByVendor(ctx, vendorID, nil)
	require.NoError(t, err)
	assert.True(t, spent.Equal(decimal.NewFromInt(180)), "got %s", spent)

	monthly, err := repo.CountOrdersByVendor(ctx, vendorID, &monthStart)
	require.NoError(t, err)
	assert.Equal(t, int64(2), monthly)

	monthlySpent, err := repo.SumSpentByVendor(ctx, vendorID, &monthStart)
	require.NoError(t, err)
	assert.True(t, monthlySpent.Equal(decimal.NewFromInt(150)), "got %s", monthlySpent)
}

func TestRepositorySupplierAggregates(t *testing.T) {
	db := setupDashboardTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	supplierID := uuid.New()
	firstVendor := uuid.New()
	secondVendor := uuid.New()
	now := time.Now()

	insertOrder(t, db, firstVendor, supplierID, 100, enums.OrderStatusDelivered, now)
	insertOrder(t, db, secondVendor, supplierID, 40, enums.OrderStatusPending, now)
	insertOrder(t, db, firstVendor, supplierID, 60, enums.OrderStatusConfirmed, now)

	total, err := repo.CountOrdersBySupplier(ctx, supplierID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	// revenue is delivered-only
	revenue, err := repo.SumRevenueBySupplier(ctx, supplierID, nil)
	require.NoError(t, err)
	assert.True(t, revenue.Equal(decimal.NewFromInt(100)), "got %s", revenue)

	pending := enums.OrderStatusPending
	pendingCount, err := repo.CountOrdersBySupplier(ctx, supplierID, &pending, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pendingCount)

	vendors, err := repo.CountDistinctVendors(ctx, supplierID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), vendors)
}

func TestRepositoryRecentOrdersLimitAndOrder(t *testing.T) {
	db := setupDashboardTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	vendorID := uuid.New()
	supplierID := uuid.New()
	base := time.Now().Add(-10 * time.Hour)
	for i := 0; i < 7; i++ {
		insertOrder(t, db, vendorID, supplierID, int64(i), enums.OrderStatusPending, base.Add(time.Duration(i)*time.Hour))
	}

	recent, err := repo.RecentOrdersByVendor(ctx, vendorID, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i-1].OrderDate.Before(recent[i].OrderDate))
	}

	bySupplier, err := repo.RecentOrdersBySupplier(ctx, supplierID, 5)
	require.NoError(t, err)
	require.Len(t, bySupplier, 5)
}
