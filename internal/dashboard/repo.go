package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/streetserve/streetserve-backend/pkg/db/models"
	"github.com/streetserve/streetserve-backend/pkg/enums"
)

// Repository runs the order aggregates behind both dashboards. Each
// method is a single indexed query; the service composes them.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to dashboard aggregation.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountOrdersByVendor counts a vendor's orders, optionally from a start
// date onward.
func (r *Repository) CountOrdersByVendor(ctx context.Context, vendorID uuid.UUID, since *time.Time) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("vendor_id = ?", vendorID)
	if since != nil {
		query = query.Where("order_date >= ?", *since)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumSpentByVendor totals a vendor's order amounts across every status,
// optionally from a start date onward.
func (r *Repository) SumSpentByVendor(ctx context.Context, vendorID uuid.UUID, since *time.Time) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("vendor_id = ?", vendorID)
	if since != nil {
		query = query.Where("order_date >= ?", *since)
	}
	var sum decimal.Decimal
	err := query.Select("COALESCE(SUM(total_amount), 0)").Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// CountOrdersBySupplier counts a supplier's incoming orders, optionally
// restricted to one status and/or a start date.
func (r *Repository) CountOrdersBySupplier(ctx context.Context, supplierID uuid.UUID, status *enums.OrderStatus, since *time.Time) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("supplier_id = ?", supplierID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if since != nil {
		query = query.Where("order_date >= ?", *since)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumRevenueBySupplier totals a supplier's delivered order amounts,
// optionally from a start date onward. Pending and cancelled orders
// never count as revenue.
func (r *Repository) SumRevenueBySupplier(ctx context.Context, supplierID uuid.UUID, since *time.Time) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("supplier_id = ? AND status = ?", supplierID, enums.OrderStatusDelivered)
	if since != nil {
		query = query.Where("order_date >= ?", *since)
	}
	var sum decimal.Decimal
	err := query.Select("COALESCE(SUM(total_amount), 0)").Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// CountDistinctVendors counts the distinct vendors that ever ordered
// from a supplier.
func (r *Repository) CountDistinctVendors(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("supplier_id = ?", supplierID).
		Distinct("vendor_id").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// RecentOrdersByVendor returns a vendor's most recent orders by order
// date.
func (r *Repository) RecentOrdersByVendor(ctx context.Context, vendorID uuid.UUID, limit int) ([]models.Order, error) {
	var list []models.Order
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("order_date DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// RecentOrdersBySupplier returns a supplier's most recent orders by
// order date.
func (r *Repository) RecentOrdersBySupplier(ctx context.Context, supplierID uuid.UUID, limit int) ([]models.Order, error) {
	var list []models.Order
	err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("order_date DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
