package groupbuys

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/streetserve/streetserve-backend/pkg/db"
	"github.com/streetserve/streetserve-backend/pkg/db/models"
	"github.com/streetserve/streetserve-backend/pkg/enums"
	pkgerrors "github.com/streetserve/streetserve-backend/pkg/errors"
)

const (
	unknownProductName  = "Unknown Product"
	unknownSupplierName = "Unknown Supplier"
)

type groupBuyRepository interface {
	Create(ctx context.Context, dto CreateGroupBuyDTO) (*models.GroupBuy, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.GroupBuy, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.GroupBuy, error)
	ListActive(ctx context.Context, now time.Time) ([]models.GroupBuy, error)
	ListByCreator(ctx context.Context, createdBy uuid.UUID) ([]models.GroupBuy, error)
	FindParticipant(ctx context.Context, groupBuyID, vendorID uuid.UUID) (*models.GroupParticipant, error)
	ListParticipations(ctx context.Context, vendorID uuid.UUID) ([]models.GroupParticipant, error)
	Join(ctx context.Context, groupBuyID, vendorID uuid.UUID, quantity, expectedParticipants int) error
}

type productReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type profileReader interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]models.Profile, error)
}

// MyGroupBuys splits a vendor's campaigns into the ones they started and
// the ones they joined.
type MyGroupBuys struct {
	Created       []GroupBuyDTO `json:"created"`
	Participating []GroupBuyDTO `json:"participating"`
}

// Service exposes group buy operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateGroupBuyInput) (*GroupBuyDTO, error)
	Join(ctx context.Context, userID, groupBuyID uuid.UUID, quantity int) (*GroupBuyDTO, error)
	ListActive(ctx context.Context) ([]GroupBuyDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID) (*MyGroupBuys, error)
}

type service struct {
	repo     groupBuyRepository
	products productReader
	profiles profileReader
}

// ServiceParams bundles the dependencies required to build a group buy
// service.
type ServiceParams struct {
	Repo     groupBuyRepository
	Products productReader
	Profiles profileReader
}

// NewService builds a group buy service with the provided repositories.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("group buy repository required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if params.Profiles == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	return &service{
		repo:     params.Repo,
		products: params.Products,
		profiles: params.Profiles,
	}, nil
}

// CreateGroupBuyInput captures the fields accepted at campaign creation.
type CreateGroupBuyInput struct {
	ProductID          uuid.UUID
	Title              string
	Description        string
	TargetQuantity     int
	DiscountPercentage decimal.Decimal
	MinParticipants    int
	MaxParticipants    int
	Deadline           time.Time
}

// Create starts a campaign for the calling vendor. The discounted price
// is computed once from the product's current price and stored; later
// product price changes never change it.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateGroupBuyInput) (*GroupBuyDTO, error) {
	if err := s.requireVendor(ctx, userID); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	discounted := product.Price.
		Mul(decimal.NewFromInt(100).Sub(input.DiscountPercentage)).
		Div(decimal.NewFromInt(100)).
		Round(2)

	groupBuy, err := s.repo.Create(ctx, CreateGroupBuyDTO{
		ProductID:          product.ID,
		SupplierID:         product.SupplierID,
		CreatedBy:          userID,
		Title:              input.Title,
		Description:        input.Description,
		TargetQuantity:     input.TargetQuantity,
		DiscountPercentage: input.DiscountPercentage,
		OriginalPrice:      product.Price,
		DiscountedPrice:    discounted,
		MinParticipants:    input.MinParticipants,
		MaxParticipants:    input.MaxParticipants,
		Deadline:           input.Deadline,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create group buy")
	}

	dto := FromModel(groupBuy)
	dto.ProductName = product.Name
	dto.ProductUnit = product.Unit
	return dto, nil
}

// Join adds the calling vendor to an active campaign. The counter bump is
// guarded on the participant count read here; a lost race surfaces as a
// conflict rather than a silent double-increment. Target quantity and
// deadline are deliberately not checked, so a join may overshoot the
// target.
func (s *service) Join(ctx context.Context, userID, groupBuyID uuid.UUID, quantity int) (*GroupBuyDTO, error) {
	if err := s.requireVendor(ctx, userID); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	groupBuy, err := s.repo.FindByID(ctx, groupBuyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "group buy not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load group buy")
	}
	if groupBuy.Status != enums.GroupBuyStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "group buy not found")
	}

	if _, err := s.repo.FindParticipant(ctx, groupBuyID, userID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "already joined this group buy")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load participant")
	}

	if groupBuy.CurrentParticipants >= groupBuy.MaxParticipants {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "group buy is full")
	}

	if err := s.repo.Join(ctx, groupBuyID, userID, quantity, groupBuy.CurrentParticipants); err != nil {
		switch {
		case errors.Is(err, ErrStaleCounters):
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "group buy changed, retry the join")
		case db.IsUniqueViolation(err):
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "already joined this group buy")
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "join group buy")
		}
	}

	updated, err := s.repo.FindByID(ctx, groupBuyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload group buy")
	}
	dto := FromModel(updated)
	dto.MyQuantity = quantity
	return dto, nil
}

// ListActive returns every active campaign still ahead of its deadline,
// annotated with product and supplier identity.
func (s *service) ListActive(ctx context.Context) ([]GroupBuyDTO, error) {
	list, err := s.repo.ListActive(ctx, time.Now().UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active group buys")
	}
	return s.annotate(ctx, list, nil)
}

// ListMine returns the campaigns the caller created and the ones they
// joined. Participations whose campaign no longer resolves are dropped.
func (s *service) ListMine(ctx context.Context, userID uuid.UUID) (*MyGroupBuys, error) {
	created, err := s.repo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list created group buys")
	}
	createdDTOs, err := s.annotate(ctx, created, nil)
	if err != nil {
		return nil, err
	}

	participations, err := s.repo.ListParticipations(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list participations")
	}
	groupBuyIDs := make([]uuid.UUID, 0, len(participations))
	quantityByGroup := make(map[uuid.UUID]int, len(participations))
	for i := range participations {
		groupBuyIDs = append(groupBuyIDs, participations[i].GroupBuyID)
		quantityByGroup[participations[i].GroupBuyID] = participations[i].Quantity
	}

	joined, err := s.repo.FindByIDs(ctx, groupBuyIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load joined group buys")
	}
	participatingDTOs, err := s.annotate(ctx, joined, quantityByGroup)
	if err != nil {
		return nil, err
	}

	return &MyGroupBuys{
		Created:       createdDTOs,
		Participating: participatingDTOs,
	}, nil
}

// annotate joins campaigns with their products and supplier profiles in
// two batch lookups. Join misses degrade to placeholder strings. When
// quantities is non-nil the caller's joined quantity is attached.
func (s *service) annotate(ctx context.Context, list []models.GroupBuy, quantities map[uuid.UUID]int) ([]GroupBuyDTO, error) {
	if len(list) == 0 {
		return []GroupBuyDTO{}, nil
	}

	productIDs := make([]uuid.UUID, 0, len(list))
	supplierIDs := make([]uuid.UUID, 0, len(list))
	seenProducts := make(map[uuid.UUID]struct{}, len(list))
	seenSuppliers := make(map[uuid.UUID]struct{}, len(list))
	for i := range list {
		if _, ok := seenProducts[list[i].ProductID]; !ok {
			seenProducts[list[i].ProductID] = struct{}{}
			productIDs = append(productIDs, list[i].ProductID)
		}
		if _, ok := seenSuppliers[list[i].SupplierID]; !ok {
			seenSuppliers[list[i].SupplierID] = struct{}{}
			supplierIDs = append(supplierIDs, list[i].SupplierID)
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

	profileList, err := s.profiles.FindByUserIDs(ctx, supplierIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profiles")
	}
	profileByUser := make(map[uuid.UUID]*models.Profile, len(profileList))
	for i := range profileList {
		profileByUser[profileList[i].UserID] = &profileList[i]
	}

	dtos := make([]GroupBuyDTO, 0, len(list))
	for i := range list {
		dto := FromModel(&list[i])
		dto.ProductName = unknownProductName
		if product, ok := productByID[list[i].ProductID]; ok {
			dto.ProductName = product.Name
			dto.ProductUnit = product.Unit
		}
		dto.SupplierName = unknownSupplierName
		if profile, ok := profileByUser[list[i].SupplierID]; ok {
			dto.SupplierName = profile.BusinessName
		}
		if quantities != nil {
			dto.MyQuantity = quantities[list[i].ID]
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
