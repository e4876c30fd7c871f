package profiles

import (
	"time"

	"github.com/google/uuid"

	"github.com/streetserve/streetserve-backend/pkg/db/models"
	"github.com/streetserve/streetserve-backend/pkg/enums"
)

// ProfileDTO exposes the business profile in API responses. Email is
// merged in from the owning user row.
type ProfileDTO struct {
	ID           uuid.UUID         `json:"id"`
	UserID       uuid.UUID         `json:"user_id"`
	Email        string            `json:"email,omitempty"`
	Role         enums.ProfileRole `json:"role"`
	BusinessName string            `json:"business_name"`
	ContactPhone string            `json:"contact_phone"`
	Address      string            `json:"address"`
	City         string            `json:"city"`
	TrustScore   *float64          `json:"trust_score,omitempty"`
	IsVerified   bool              `json:"is_verified"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// CreateProfileDTO holds the data required by the repo to persist a new profile.
type CreateProfileDTO struct {
	UserID       uuid.UUID
	Role         enums.ProfileRole
	BusinessName string
	ContactPhone string
	Address      string
	City         string
	TrustScore   *float64
}

// FromModel maps the persisted profile into a DTO.
func FromModel(p *models.Profile) *ProfileDTO {
	if p == nil {
		return nil
	}

	return &ProfileDTO{
		ID:           p.ID,
		UserID:       p.UserID,
		Role:         p.Role,
		BusinessName: p.BusinessName,
		ContactPhone: p.ContactPhone,
		Address:      p.Address,
		City:         p.City,
		TrustScore:   p.TrustScore,
		IsVerified:   p.IsVerified,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToModel prepares the GORM model from the creation DTO.
func (c CreateProfileDTO) ToModel() *models.Profile {
	return &models.Profile{
		UserID:       c.UserID,
		Role:         c.Role,
		BusinessName: c.BusinessName,
		ContactPhone: c.ContactPhone,
		Address:      c.Address,
		City:         c.City,
		TrustScore:   c.TrustScore,
		IsVerified:   false,
	}
}
