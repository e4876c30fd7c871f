package models

import (
	"time"

	"github.com/google/uuid"
)

// GroupParticipant records one vendor's participation in a group buy.
// A vendor may join a given group buy at most once; the pair is unique.
type GroupParticipant struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GroupBuyID uuid.UUID `gorm:"column:group_buy_id;type:uuid;not null;uniqueIndex:idx_group_participants_group_vendor;index"`
	VendorID   uuid.UUID `gorm:"column:vendor_id;type:uuid;not null;uniqueIndex:idx_group_participants_group_vendor;index"`
	Quantity   int       `gorm:"column:quantity;not null"`
	JoinedAt   time.Time `gorm:"column:joined_at;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
