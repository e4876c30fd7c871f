package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/streetserve/streetserve-backend/pkg/enums"
)

// GroupBuy is a vendor-initiated bulk-discount campaign on one product.
//
// OriginalPrice and DiscountedPrice are fixed at creation; the campaign
// keeps its pricing even if the product's price changes later.
// CurrentQuantity and CurrentParticipants are aggregate counters updated
// under a guarded SQL increment; see groupbuys.Repository.
type GroupBuy struct {
	ID                  uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID           uuid.UUID            `gorm:"column:product_id;type:uuid;not null;index"`
	SupplierID          uuid.UUID            `gorm:"column:supplier_id;type:uuid;not null;index"`
	CreatedBy           uuid.UUID            `gorm:"column:created_by;type:uuid;not null;index"`
	Title               string               `gorm:"column:title;not null"`
	Description         string               `gorm:"column:description;not null"`
	TargetQuantity      int                  `gorm:"column:target_quantity;not null"`
	CurrentQuantity     int                  `gorm:"column:current_quantity;not null;default:0"`
	DiscountPercentage  decimal.Decimal      `gorm:"column:discount_percentage;type:numeric(5,2);not null"`
	OriginalPrice       decimal.Decimal      `gorm:"column:original_price;type:numeric(12,2);not null"`
	DiscountedPrice     decimal.Decimal      `gorm:"column:discounted_price;type:numeric(12,2);not null"`
	MinParticipants     int                  `gorm:"column:min_participants;not null"`
	MaxParticipants     int                  `gorm:"column:max_participants;not null"`
	CurrentParticipants int                  `gorm:"column:current_participants;not null;default:0"`
	Deadline            time.Time            `gorm:"column:deadline;not null"`
	Status              enums.GroupBuyStatus `gorm:"column:status;type:text;not null;default:'active';index"`
	CreatedAt           time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
