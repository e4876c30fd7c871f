package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/streetserve/streetserve-backend/pkg/enums"
)

// Profile is the business profile attached one-to-one to a user.
//
// Role is fixed at creation; nothing in the update path touches it.
// TrustScore is populated for vendors only.
type Profile struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID         `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Role         enums.ProfileRole `gorm:"column:role;type:text;not null;index"`
	BusinessName string            `gorm:"column:business_name;not null"`
	ContactPhone string            `gorm:"column:contact_phone;not null"`
	Address      string            `gorm:"column:address;not null"`
	City         string            `gorm:"column:city;not null"`
	TrustScore   *float64          `gorm:"column:trust_score;type:numeric(3,1)"`
	IsVerified   bool              `gorm:"column:is_verified;not null;default:false"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
