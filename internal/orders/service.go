package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/streetserve/streetserve-backend/pkg/db/models"
	"github.com/streetserve/streetserve-backend/pkg/enums"
	pkgerrors "github.com/streetserve/streetserve-backend/pkg/errors"
)

const (
	unknownProductName  = "Unknown Product"
	unknownSupplierName = "Unknown Supplier"
	unknownVendorName   = "Unknown Vendor"
)

type orderRepository interface {
	Create(ctx context.Context, dto CreateOrderDTO) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Order, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
}

type productReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type profileReader interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]models.Profile, error)
}

type groupBuyReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.GroupBuy, error)
}

// Service exposes order operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*OrderDTO, error)
	ListForVendor(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	ListForSupplier(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	UpdateStatus(ctx context.Context, userID, orderID uuid.UUID, status string) (*OrderDTO, error)
}

type service struct {
	repo      orderRepository
	products  productReader
	profiles  profileReader
	groupBuys groupBuyReader
}

// ServiceParams bundles the dependencies required to build an order service.
type ServiceParams struct {
	Repo      orderRepository
	Products  productReader
	Profiles  profileReader
	GroupBuys groupBuyReader
}

// NewService builds an order service with the provided repositories.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if params.Profiles == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	if params.GroupBuys == nil {
		return nil, fmt.Errorf("group buy repository required")
	}
	return &service{
		repo:      params.Repo,
		products:  params.Products,
		profiles:  params.Profiles,
		groupBuys: params.GroupBuys,
	}, nil
}

// CreateOrderInput captures the fields accepted at order creation.
type CreateOrderInput struct {
	ProductID  uuid.UUID
	Quantity   int
	GroupBuyID *uuid.UUID
}

// Create places an order for the calling vendor. The unit price is the
// product's current price, or the group buy's discounted price when a
// group buy ID resolves; the snapshot is stored on the order and never
// revisited.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*OrderDTO, error) {
	if err := s.requireVendor(ctx, userID); err != nil {
		return nil, err
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	unitPrice := product.Price
	var groupBuyID *uuid.UUID
	if input.GroupBuyID != nil {
		groupBuy, err := s.groupBuys.FindByID(ctx, *input.GroupBuyID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load group buy")
			}
		} else {
			unitPrice = groupBuy.DiscountedPrice
			id := groupBuy.ID
			groupBuyID = &id
		}
	}

	order, err := s.repo.Create(ctx, CreateOrderDTO{
		VendorID:    userID,
		SupplierID:  product.SupplierID,
		ProductID:   product.ID,
		Quantity:    input.Quantity,
		UnitPrice:   unitPrice,
		TotalAmount: unitPrice.Mul(decimal.NewFromInt(int64(input.Quantity))),
		GroupBuyID:  groupBuyID,
		OrderDate:   time.Now().UTC(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	dto := FromModel(order)
	dto.ProductName = product.Name
	dto.ProductUnit = product.Unit
	return dto, nil
}

// ListForVendor returns the caller's orders annotated with product and
// supplier identity.
func (s *service) ListForVendor(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	list, err := s.repo.ListByVendor(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendor orders")
	}
	return s.annotate(ctx, list, true)
}

// ListForSupplier returns the caller's incoming orders annotated with
// product and vendor identity.
func (s *service) ListForSupplier(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	list, err := s.repo.ListBySupplier(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list supplier orders")
	}
	return s.annotate(ctx, list, false)
}

// UpdateStatus moves an order to the requested status. Only the owning
// supplier may do so. No transition graph is enforced; the delivery date
// follows the delivered status.
func (s *service) UpdateStatus(ctx context.Context, userID, orderID uuid.UUID, status string) (*OrderDTO, error) {
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.SupplierID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another supplier")
	}

	order.Status = parsed
	if parsed == enums.OrderStatusDelivered {
		now := time.Now().UTC()
		order.DeliveryDate = &now
	} else {
		order.DeliveryDate = nil
	}

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}
	return FromModel(order), nil
}

// annotate joins orders with their products and counterpart profiles in
// two batch lookups. Join misses degrade to placeholder strings.
func (s *service) annotate(ctx context.Context, list []models.Order, vendorView bool) ([]OrderDTO, error) {
	if len(list) == 0 {
		return []OrderDTO{}, nil
	}

	productIDs := make([]uuid.UUID, 0, len(list))
	counterpartIDs := make([]uuid.UUID, 0, len(list))
	seenProducts := make(map[uuid.UUID]struct{}, len(list))
	seenUsers := make(map[uuid.UUID]struct{}, len(list))
	for i := range list {
		if _, ok := seenProducts[list[i].ProductID]; !ok {
			seenProducts[list[i].ProductID] = struct{}{}
			productIDs = append(productIDs, list[i].ProductID)
		}
		counterpart := list[i].SupplierID
		if !vendorView {
			counterpart = list[i].VendorID
		}
		if _, ok := seenUsers[counterpart]; !ok {
			seenUsers[counterpart] = struct{}{}
			counterpartIDs = append(counterpartIDs, counterpart)
		}
	}

	productList, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	productByID := make(map[uuid.UUID]*models.Product, len(productList))
	for i := range productList {
		productByID[productList[i].ID] = &productList[i]
	}

	profileList, err := s.profiles.FindByUserIDs(ctx, counterpartIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profiles")
	}
	profileByUser := make(map[uuid.UUID]*models.Profile, len(profileList))
	for i := range profileList {
		profileByUser[profileList[i].UserID] = &profileList[i]
	}

	dtos := make([]OrderDTO, 0, len(list))
	for i := range list {
		dto := FromModel(&list[i])
		dto.ProductName = unknownProductName
		if product, ok := productByID[list[i].ProductID]; ok {
			dto.ProductName = product.Name
			dto.ProductUnit = product.Unit
		}
		if vendorView {
			dto.SupplierName = unknownSupplierName
			if profile, ok := profileByUser[list[i].SupplierID]; ok {
				dto.SupplierName = profile.BusinessName
			}
		} else {
			dto.VendorName = unknownVendorName
			if profile, ok := profileByUser[list[i].VendorID]; ok {
				dto.VendorName = profile.BusinessName
			}
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

func (s *service) requireVendor(ctx context.Context, userID uuid.UUID) error {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "vendor profile required")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	if profile.Role != enums.ProfileRoleVendor {
		return pkgerrors.New(pkgerrors.CodeForbidden, "vendor profile required")
	}
	return nil
}
