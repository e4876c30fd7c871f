package groupbuys

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

	"github.com/streetserve/streetserve-backend/pkg/db"
	"github.com/streetserve/streetserve-backend/pkg/db/models"
	"github.com/streetserve/streetserve-backend/pkg/enums"
)

func setupGroupBuysTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	groupBuys := `
CREATE TABLE IF NOT EXISTS group_buys (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  supplier_id TEXT NOT NULL,
  created_by TEXT NOT NULL,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  target_quantity INTEGER NOT NULL,
  current_quantity INTEGER NOT NULL DEFAULT 0,
  discount_percentage NUMERIC NOT NULL,
  original_price NUMERIC NOT NULL,
  discounted_price NUMERIC NOT NULL,
  min_participants INTEGER NOT NULL,
  max_participants INTEGER NOT NULL,
  current_participants INTEGER NOT NULL DEFAULT 0,
  deadline DATETIME NOT NULL,
  status TEXT NOT NULL DEFAULT 'active',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, gdb.Exec(groupBuys).Error)

	participants := `
CREATE TABLE IF NOT EXISTS group_participants (
  id TEXT PRIMARY KEY,
  group_buy_id TEXT NOT NULL,
  vendor_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  joined_at DATETIME NOT NULL,
  created_at DATETIME
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_group_participants_group_vendor
  ON group_participants (group_buy_id, vendor_id);`
	require.NoError(t, gdb.Exec(participants).Error)
	return gdb
}

func createTestGroupBuy(t *testing.T, repo *Repository, deadline time.Time) *models.GroupBuy {
	t.Helper()

	groupBuy, err := repo.Create(context.Background(), CreateGroupBuyDTO{
		ProductID:          uuid.New(),
		SupplierID:         uuid.New(),
		CreatedBy:          uuid.New(),
		Title:              "Bulk tomatoes",
		Description:        "Split a pallet",
		TargetQuantity:     100,
		DiscountPercentage: decimal.NewFromInt(15),
		OriginalPrice:      decimal.NewFromInt(20),
		DiscountedPrice:    decimal.NewFromInt(17),
		MinParticipants:    2,
		MaxParticipants:    5,
		Deadline:           deadline,
	})
	require.NoError(t, err)
	return groupBuy
}

func TestRepositoryCreateStartsEmptyAndActive(t *testing.T) {
	repo := NewRepository(setupGroupBuysTestDB(t))
	groupBuy := createTestGroupBuy(t, repo, time.Now().Add(48*time.Hour))

	found, err := repo.FindByID(context.Background(), groupBuy.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.GroupBuyStatusActive, found.Status)
	assert.Equal(t, 0, found.CurrentQuantity)
	assert.Equal(t, 0, found.CurrentParticipants)
	assert.True(t, found.DiscountedPrice.Equal(decimal.NewFromInt(17)))
}

func TestRepositoryJoinBumpsCounters(t *testing.T) {
	repo := NewRepository(setupGroupBuysTestDB(t))
	groupBuy := createTestGroupBuy(t, repo, time.Now().Add(48*time.Hour))
	ctx := context.Background()

	firstVendor := uuid.New()
	secondVendor := uuid.New()
	require.NoError(t, repo.Join(ctx, groupBuy.ID, firstVendor, 30, 0))
	require.NoError(t, repo.Join(ctx, groupBuy.ID, secondVendor, 25, 1))

	found, err := repo.FindByID(ctx, groupBuy.ID)
	require.NoError(t, err)
	assert.Equal(t, 55, found.CurrentQuantity)
	assert.Equal(t, 2, found.CurrentParticipants)

	participant, err := repo.FindParticipant(ctx, groupBuy.ID, firstVendor)
	require.NoError(t, err)
	assert.Equal(t, 30, participant.Quantity)
}

func TestRepositoryJoinStaleCounterRollsBack(t *testing.T) {
	repo := NewRepository(setupGroupBuysTestDB(t))
	groupBuy := createTestGroupBuy(t, repo, time.Now().Add(48*time.Hour))
	ctx := context.Background()

	vendorID := uuid.New()
	err := repo.Join(ctx, groupBuy.ID, vendorID, 30, 3)
	require.ErrorIs(t, err, ErrStaleCounters)

	// the participant insert must not survive the failed guard
	_, err = repo.FindParticipant(ctx, groupBuy.ID, vendorID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err := repo.FindByID(ctx, groupBuy.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, found.CurrentQuantity)
	assert.Equal(t, 0, found.CurrentParticipants)
}

func TestRepositoryJoinRejectsDuplicateVendor(t *testing.T) {
	repo := NewRepository(setupGroupBuysTestDB(t))
	groupBuy := createTestGroupBuy(t, repo, time.Now().Add(48*time.Hour))
	ctx := context.Background()

	vendorID := uuid.New()
	require.NoError(t, repo.Join(ctx, groupBuy.ID, vendorID, 10, 0))

	err := repo.Join(ctx, groupBuy.ID, vendorID, 10, 1)
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err))

	found, err := repo.FindByID(ctx, groupBuy.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, found.CurrentQuantity)
	assert.Equal(t, 1, found.CurrentParticipants)
}

func TestRepositoryListActiveFiltersStatusAndDeadline(t *testing.T) {
	repo := NewRepository(setupGroupBuysTestDB(t))
	ctx := context.Background()

	open := createTestGroupBuy(t, repo, time.Now().Add(48*time.Hour))
	createTestGroupBuy(t, repo, time.Now().Add(-time.Hour)) // past deadline
	cancelled := createTestGroupBuy(t, repo, time.Now().Add(48*time.Hour))
	require.NoError(t, repo.db.Model(&models.GroupBuy{}).
		Where("id = ?", cancelled.ID).
		Update("status", enums.GroupBuyStatusCancelled).Error)

	list, err := repo.ListActive(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, open.ID, list[0].ID)
}

func TestRepositoryListParticipationsScopedToVendor(t *testing.T) {
	repo := NewRepository(setupGroupBuysTestDB(t))
	ctx := context.Background()

	first := createTestGroupBuy(t, repo, time.Now().Add(48*time.Hour))
	second := createTestGroupBuy(t, repo, time.Now().Add(48*time.Hour))

	vendorID := uuid.New()
	otherVendor := uuid.New()
	require.NoError(t, repo.Join(ctx, first.ID, vendorID, 5, 0))
	require.NoError(t, repo.Join(ctx, second.ID, vendorID, 8, 0))
	require.NoError(t, repo.Join(ctx, second.ID, otherVendor, 3, 1))

	list, err := repo.ListParticipations(ctx, vendorID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, participant := range list {
		assert.Equal(t, vendorID, participant.VendorID)
	}
}
