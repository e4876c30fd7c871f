package groupbuys

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/streetserve/streetserve-backend/pkg/db/models"
	"github.com/streetserve/streetserve-backend/pkg/enums"
)

// GroupBuyDTO is the API representation of a group-buying campaign.
// ProductName, ProductUnit and SupplierName are join annotations filled
// by the service; MyQuantity carries the caller's own joined quantity on
// participation listings.
type GroupBuyDTO struct {
	ID                  uuid.UUID            `json:"id"`
	ProductID           uuid.UUID            `json:"product_id"`
	SupplierID          uuid.UUID            `json:"supplier_id"`
	CreatedBy           uuid.UUID            `json:"created_by"`
	Title               string               `json:"title"`
	Description         string               `json:"description"`
	TargetQuantity      int                  `json:"target_quantity"`
	CurrentQuantity     int                  `json:"current_quantity"`
	DiscountPercentage  decimal.Decimal      `json:"discount_percentage"`
	OriginalPrice       decimal.Decimal      `json:"original_price"`
	DiscountedPrice     decimal.Decimal      `json:"discounted_price"`
	MinParticipants     int                  `json:"min_participants"`
	MaxParticipants     int                  `json:"max_participants"`
	CurrentParticipants int                  `json:"current_participants"`
	Deadline            time.Time            `json:"deadline"`
	Status              enums.GroupBuyStatus `json:"status"`
	ProductName         string               `json:"product_name,omitempty"`
	ProductUnit         string               `json:"product_unit,omitempty"`
	SupplierName        string               `json:"supplier_name,omitempty"`
	MyQuantity          int                  `json:"my_quantity,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// CreateGroupBuyDTO carries a fully priced campaign into the repository.
type CreateGroupBuyDTO struct {
	ProductID          uuid.UUID
	SupplierID         uuid.UUID
	CreatedBy          uuid.UUID
	Title              string
	Description        string
	TargetQuantity     int
	DiscountPercentage decimal.Decimal
	OriginalPrice      decimal.Decimal
	DiscountedPrice    decimal.Decimal
	MinParticipants    int
	MaxParticipants    int
	Deadline           time.Time
}

// FromModel maps a group buy model to its DTO.
func FromModel(g *models.GroupBuy) *GroupBuyDTO {
	if g == nil {
		return nil
	}
	return &GroupBuyDTO{
		ID:                  g.ID,
		ProductID:           g.ProductID,
		SupplierID:          g.SupplierID,
		CreatedBy:           g.CreatedBy,
		Title:               g.Title,
		Description:         g.Description,
		TargetQuantity:      g.TargetQuantity,
		CurrentQuantity:     g.CurrentQuantity,
		DiscountPercentage:  g.DiscountPercentage,
		OriginalPrice:       g.OriginalPrice,
		DiscountedPrice:     g.DiscountedPrice,
		MinParticipants:     g.MinParticipants,
		MaxParticipants:     g.MaxParticipants,
		CurrentParticipants: g.CurrentParticipants,
		Deadline:            g.Deadline,
		Status:              g.Status,
		CreatedAt:           g.CreatedAt,
		UpdatedAt:           g.UpdatedAt,
	}
}

// ToModel builds a fresh campaign model. Counters start at zero and the
// status at active.
func (dto CreateGroupBuyDTO) ToModel() *models.GroupBuy {
	return &models.GroupBuy{
		ProductID:          dto.ProductID,
		SupplierID:         dto.SupplierID,
		CreatedBy:          dto.CreatedBy,
		Title:              dto.Title,
		Description:        dto.Description,
		TargetQuantity:     dto.TargetQuantity,
		DiscountPercentage: dto.DiscountPercentage,
		OriginalPrice:      dto.OriginalPrice,
		DiscountedPrice:    dto.DiscountedPrice,
		MinParticipants:    dto.MinParticipants,
		MaxParticipants:    dto.MaxParticipants,
		Deadline:           dto.Deadline,
		Status:             enums.GroupBuyStatusActive,
	}
}
