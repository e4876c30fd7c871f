package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/streetserve/streetserve-backend/pkg/db/models"
)

// ProductDTO exposes a supplier's listing in API responses.
type ProductDTO struct {
	ID               uuid.UUID       `json:"id"`
	SupplierID       uuid.UUID       `json:"supplier_id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	Unit             string          `json:"unit"`
	Quantity         int             `json:"quantity"`
	MinOrderQuantity int             `json:"min_order_quantity"`
	MaxOrderQuantity *int            `json:"max_order_quantity,omitempty"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// PublicProductDTO is the browse shape enriched with supplier identity.
type PublicProductDTO struct {
	ProductDTO
	SupplierName string `json:"supplier_name"`
	SupplierCity string `json:"supplier_city"`
}

// CreateProductDTO holds creation-time data for a new product.
type CreateProductDTO struct {
	SupplierID       uuid.UUID
	Name             string
	Category         string
	Description      string
	Price            decimal.Decimal
	Unit             string
	Quantity         int
	MinOrderQuantity int
	MaxOrderQuantity *int
}

// FromModel maps the persisted product into a DTO.
func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}

	return &ProductDTO{
		ID:               p.ID,
		SupplierID:       p.SupplierID,
		Name:             p.Name,
		Category:         p.Category,
		Description:      p.Description,
		Price:            p.Price,
		Unit:             p.Unit,
		Quantity:         p.Quantity,
		MinOrderQuantity: p.MinOrderQuantity,
		MaxOrderQuantity: p.MaxOrderQuantity,
		IsActive:         p.IsActive,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ToModel prepares the GORM model from the creation DTO, supplying defaults.
func (c CreateProductDTO) ToModel() *models.Product {
	minOrder := c.MinOrderQuantity
	if minOrder < 1 {
		minOrder = 1
	}

	return &models.Product{
		SupplierID:       c.SupplierID,
		Name:             c.Name,
		Category:         c.Category,
		Description:      c.Description,
		Price:            c.Price,
		Unit:             c.Unit,
		Quantity:         c.Quantity,
		MinOrderQuantity: minOrder,
		MaxOrderQuantity: c.MaxOrderQuantity,
		IsActive:         true,
	}
}
