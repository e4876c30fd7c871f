package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/streetserve/streetserve-backend/pkg/db/models"
)

// Repository handles inventory item persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to inventory operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new inventory item row.
func (r *Repository) Create(ctx context.Context, dto CreateInventoryItemDTO) (*models.InventoryItem, error) {
	item := dto.ToModel()
	item.ID = uuid.New()
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindByID loads an inventory item by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByVendor returns a vendor's items, most recently restocked first.
func (r *Repository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.InventoryItem, error) {
	var list []models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("last_restocked DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// CountLowStock counts a vendor's items at or below their minimum level.
func (r *Repository) CountLowStock(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("vendor_id = ? AND current_stock <= min_stock_level", vendorID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Update saves the full item row.
func (r *Repository) Update(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}
