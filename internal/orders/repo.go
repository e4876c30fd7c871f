package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/streetserve/streetserve-backend/pkg/db/models"
)

// Repository handles order persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to order operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new order row.
func (r *Repository) Create(ctx context.Context, dto CreateOrderDTO) (*models.Order, error) {
	order := dto.ToModel()
	order.ID = uuid.New()
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// FindByID loads an order by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByVendor returns the vendor's orders, newest first.
func (r *Repository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Order, error) {
	var list []models.Order
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("order_date DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListBySupplier returns the supplier's orders, newest first.
func (r *Repository) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.Order, error) {
	var list []models.Order
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("order_date DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Update saves the provided order.
func (r *Repository) Update(ctx context.Context, order *models.Order) error {
	if order == nil {
		return fmt.Errorf("order is required")
	}
	return r.db.WithContext(ctx).Save(order).Error
}
