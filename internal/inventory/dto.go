package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/streetserve/streetserve-backend/pkg/db/models"
)

// InventoryItemDTO is the API representation of a tracked stock item.
type InventoryItemDTO struct {
	ID            uuid.UUID  `json:"id"`
	VendorID      uuid.UUID  `json:"vendor_id"`
	ProductName   string     `json:"product_name"`
	Category      string     `json:"category"`
	CurrentStock  int        `json:"current_stock"`
	MinStockLevel int        `json:"min_stock_level"`
	Unit          string     `json:"unit"`
	LastRestocked time.Time  `json:"last_restocked"`
	SupplierID    *uuid.UUID `json:"supplier_id,omitempty"`
	LowStock      bool       `json:"low_stock"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateInventoryItemDTO carries a new stock item into the repository.
type CreateInventoryItemDTO struct {
	VendorID      uuid.UUID
	ProductName   string
	Category      string
	CurrentStock  int
	MinStockLevel int
	Unit          string
	LastRestocked time.Time
	SupplierID    *uuid.UUID
}

// FromModel maps an inventory item model to its DTO. LowStock is derived
// here so clients never recompute the threshold.
func FromModel(item *models.InventoryItem) *InventoryItemDTO {
	if item == nil {
		return nil
	}
	return &InventoryItemDTO{
		ID:            item.ID,
		VendorID:      item.VendorID,
		ProductName:   item.ProductName,
		Category:      item.Category,
		CurrentStock:  item.CurrentStock,
		MinStockLevel: item.MinStockLevel,
		Unit:          item.Unit,
		LastRestocked: item.LastRestocked,
		SupplierID:    item.SupplierID,
		LowStock:      item.CurrentStock <= item.MinStockLevel,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

// ToModel builds a fresh inventory item model.
func (dto CreateInventoryItemDTO) ToModel() *models.InventoryItem {
	return &models.InventoryItem{
		VendorID:      dto.VendorID,
		ProductName:   dto.ProductName,
		Category:      dto.Category,
		CurrentStock:  dto.CurrentStock,
		MinStockLevel: dto.MinStockLevel,
		Unit:          dto.Unit,
		LastRestocked: dto.LastRestocked,
		SupplierID:    dto.SupplierID,
	}
}
