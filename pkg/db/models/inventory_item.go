package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem tracks a vendor's own stock of an ingredient, feeding
// the low-stock counter on the vendor dashboard.
type InventoryItem struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID      uuid.UUID  `gorm:"column:vendor_id;type:uuid;not null;index"`
	ProductName   string     `gorm:"column:product_name;not null"`
	Category      string     `gorm:"column:category;not null;index"`
	CurrentStock  int        `gorm:"column:current_stock;not null;default:0"`
	MinStockLevel int        `gorm:"column:min_stock_level;not null;default:0"`
	Unit          string     `gorm:"column:unit;not null"`
	LastRestocked time.Time  `gorm:"column:last_restocked;not null"`
	SupplierID    *uuid.UUID `gorm:"column:supplier_id;type:uuid"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
