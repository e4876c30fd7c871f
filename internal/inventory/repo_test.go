package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	items := `
CREATE TABLE IF NOT EXISTS inventory_items (
  id TEXT PRIMARY KEY,
  vendor_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  category TEXT NOT NULL,
  current_stock INTEGER NOT NULL DEFAULT 0,
  min_stock_level INTEGER NOT NULL DEFAULT 0,
  unit TEXT NOT NULL,
  last_restocked DATETIME NOT NULL,
  supplier_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(items).Error)
	return db
}

func createTestItem(t *testing.T, repo *Repository, vendorID uuid.UUID, stock, minLevel int) uuid.UUID {
	t.Helper()

	item, err := repo.Create(context.Background(), CreateInventoryItemDTO{
		VendorID:      vendorID,
		ProductName:   "Onions",
		Category:      "vegetables",
		CurrentStock:  stock,
		MinStockLevel: minLevel,
		Unit:          "kg",
		LastRestocked: time.Now().UTC(),
	})
	require.NoError(t, err)
	return item.ID
}

func TestRepositoryCountLowStock(t *testing.T) {
	repo := NewRepository(setupInventoryTestDB(t))
	vendorID := uuid.New()

	createTestItem(t, repo, vendorID, 3, 5)  // low
	createTestItem(t, repo, vendorID, 5, 5)  // at threshold counts as low
	createTestItem(t, repo, vendorID, 20, 5) // healthy
	createTestItem(t, repo, uuid.New(), 0, 5)

	count, err := repo.CountLowStock(context.Background(), vendorID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRepositoryUpdatePersistsStock(t *testing.T) {
	repo := NewRepository(setupInventoryTestDB(t))
	vendorID := uuid.New()
	itemID := createTestItem(t, repo, vendorID, 3, 5)

	item, err := repo.FindByID(context.Background(), itemID)
	require.NoError(t, err)
	item.CurrentStock = 40
	require.NoError(t, repo.Update(context.Background(), item))

	found, err := repo.FindByID(context.Background(), itemID)
	require.NoError(t, err)
	assert.Equal(t, 40, found.CurrentStock)

	list, err := repo.ListByVendor(context.Background(), vendorID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
