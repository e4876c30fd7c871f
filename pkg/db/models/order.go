package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/streetserve/streetserve-backend/pkg/enums"
)

// Order is a single vendor purchase against one product.
//
// UnitPrice is a snapshot taken at creation time; later product or
// group-buy price changes never touch existing orders.
type Order struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID     uuid.UUID         `gorm:"column:vendor_id;type:uuid;not null;index"`
	SupplierID   uuid.UUID         `gorm:"column:supplier_id;type:uuid;not null;index"`
	ProductID    uuid.UUID         `gorm:"column:product_id;type:uuid;not null"`
	Quantity     int               `gorm:"column:quantity;not null"`
	UnitPrice    decimal.Decimal   `gorm:"column:unit_price;type:numeric(12,2);not null"`
	TotalAmount  decimal.Decimal   `gorm:"column:total_amount;type:numeric(14,2);not null"`
	Status       enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending';index"`
	OrderDate    time.Time         `gorm:"column:order_date;not null"`
	DeliveryDate *time.Time        `gorm:"column:delivery_date"`
	GroupBuyID   *uuid.UUID        `gorm:"column:group_buy_id;type:uuid;index"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
