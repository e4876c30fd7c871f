package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a supplier-owned raw-material listing.
type Product struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SupplierID       uuid.UUID       `gorm:"column:supplier_id;type:uuid;not null;index"`
	Name             string          `gorm:"column:name;not null"`
	Category         string          `gorm:"column:category;not null;index"`
	Description      string          `gorm:"column:description;not null"`
	Price            decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Unit             string          `gorm:"column:unit;not null"`
	Quantity         int             `gorm:"column:quantity;not null;default:0"`
	MinOrderQuantity int             `gorm:"column:min_order_quantity;not null;default:1"`
	MaxOrderQuantity *int            `gorm:"column:max_order_quantity"`
	IsActive         bool            `gorm:"column:is_active;not null;default:true;index"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
