package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/streetserve/streetserve-backend/pkg/db/models"
	"github.com/streetserve/streetserve-backend/pkg/enums"
)

// OrderDTO exposes an order in API responses, annotated with the
// product and counterpart identity resolved at read time.
type OrderDTO struct {
	ID           uuid.UUID         `json:"id"`
	VendorID     uuid.UUID         `json:"vendor_id"`
	SupplierID   uuid.UUID         `json:"supplier_id"`
	ProductID    uuid.UUID         `json:"product_id"`
	Quantity     int               `json:"quantity"`
	UnitPrice    decimal.Decimal   `json:"unit_price"`
	TotalAmount  decimal.Decimal   `json:"total_amount"`
	Status       enums.OrderStatus `json:"status"`
	OrderDate    time.Time         `json:"order_date"`
	DeliveryDate *time.Time        `json:"delivery_date,omitempty"`
	GroupBuyID   *uuid.UUID        `json:"group_buy_id,omitempty"`
	ProductName  string            `json:"product_name"`
	ProductUnit  string            `json:"product_unit"`
	SupplierName string            `json:"supplier_name,omitempty"`
	VendorName   string            `json:"vendor_name,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// CreateOrderDTO holds creation-time data for a new order. UnitPrice is
// the snapshot resolved by the service; it never changes afterwards.
type CreateOrderDTO struct {
	VendorID    uuid.UUID
	SupplierID  uuid.UUID
	ProductID   uuid.UUID
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalAmount decimal.Decimal
	GroupBuyID  *uuid.UUID
	OrderDate   time.Time
}

// FromModel maps the persisted order into a DTO without annotations.
func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}

	return &OrderDTO{
		ID:           o.ID,
		VendorID:     o.VendorID,
		SupplierID:   o.SupplierID,
		ProductID:    o.ProductID,
		Quantity:     o.Quantity,
		UnitPrice:    o.UnitPrice,
		TotalAmount:  o.TotalAmount,
		Status:       o.Status,
		OrderDate:    o.OrderDate,
		DeliveryDate: o.DeliveryDate,
		GroupBuyID:   o.GroupBuyID,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// ToModel prepares the GORM model from the creation DTO.
func (c CreateOrderDTO) ToModel() *models.Order {
	return &models.Order{
		VendorID:    c.VendorID,
		SupplierID:  c.SupplierID,
		ProductID:   c.ProductID,
		Quantity:    c.Quantity,
		UnitPrice:   c.UnitPrice,
		TotalAmount: c.TotalAmount,
		Status:      enums.OrderStatusPending,
		OrderDate:   c.OrderDate,
		GroupBuyID:  c.GroupBuyID,
	}
}
