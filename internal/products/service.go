package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/streetserve/streetserve-backend/pkg/db/models"
	"github.com/streetserve/streetserve-backend/pkg/enums"
	pkgerrors "github.com/streetserve/streetserve-backend/pkg/errors"
)

const (
	unknownSupplierName = "Unknown Supplier"
)

type productRepository interface {
	Create(ctx context.Context, dto CreateProductDTO) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.Product, error)
	ListActive(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type profileReader interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]models.Profile, error)
}

// Service exposes product operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]ProductDTO, error)
	ListActive(ctx context.Context) ([]PublicProductDTO, error)
	Update(ctx context.Context, userID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, userID, productID uuid.UUID) error
}

type service struct {
	repo     productRepository
	profiles profileReader
}

// NewService builds a product service with the provided repositories.
func NewService(repo productRepository, profilesRepo profileReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if profilesRepo == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	return &service{repo: repo, profiles: profilesRepo}, nil
}

// CreateProductInput captures the fields accepted at product creation.
type CreateProductInput struct {
	Name             string
	Category         string
	Description      string
	Price            decimal.Decimal
	Unit             string
	Quantity         int
	MinOrderQuantity int
	MaxOrderQuantity *int
}

// UpdateProductInput captures the allowed product fields for mutation.
// Nil pointers leave the stored value untouched.
type UpdateProductInput struct {
	Name             *string
	Category         *string
	Description      *string
	Price            *decimal.Decimal
	Unit             *string
	Quantity         *int
	MinOrderQuantity *int
	MaxOrderQuantity *int
	IsActive         *bool
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if err := s.requireSupplier(ctx, userID); err != nil {
		return nil, err
	}

	product, err := s.repo.Create(ctx, CreateProductDTO{
		SupplierID:       userID,
		Name:             input.Name,
		Category:         input.Category,
		Description:      input.Description,
		Price:            input.Price,
		Unit:             input.Unit,
		Quantity:         input.Quantity,
		MinOrderQuantity: input.MinOrderQuantity,
		MaxOrderQuantity: input.MaxOrderQuantity,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return FromModel(product), nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]ProductDTO, error) {
	list, err := s.repo.ListBySupplier(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	dtos := make([]ProductDTO, 0, len(list))
	for i := range list {
		dtos = append(dtos, *FromModel(&list[i]))
	}
	return dtos, nil
}

// ListActive returns every active product annotated with its supplier's
// business name and city. Supplier profiles are fetched in one batch and
// joined in memory; a missing profile degrades to placeholder strings.
func (s *service) ListActive(ctx context.Context) ([]PublicProductDTO, error) {
	list, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active products")
	}
	if len(list) == 0 {
		return []PublicProductDTO{}, nil
	}

	supplierIDs := make([]uuid.UUID, 0, len(list))
	seen := make(map[uuid.UUID]struct{}, len(list))
	for i := range list {
		if _, ok := seen[list[i].SupplierID]; ok {
			continue
		}
		seen[list[i].SupplierID] = struct{}{}
		supplierIDs = append(supplierIDs, list[i].SupplierID)
	}

	profiles, err := s.profiles.FindByUserIDs(ctx, supplierIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supplier profiles")
	}
	byUser := make(map[uuid.UUID]*models.Profile, len(profiles))
	for i := range profiles {
		byUser[profiles[i].UserID] = &profiles[i]
	}

	dtos := make([]PublicProductDTO, 0, len(list))
	for i := range list {
		dto := PublicProductDTO{
			ProductDTO:   *FromModel(&list[i]),
			SupplierName: unknownSupplierName,
		}
		if profile, ok := byUser[list[i].SupplierID]; ok {
			dto.SupplierName = profile.BusinessName
			dto.SupplierCity = profile.City
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

func (s *service) Update(ctx context.Context, userID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.loadOwned(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.MinOrderQuantity != nil {
		product.MinOrderQuantity = *input.MinOrderQuantity
	}
	if input.MaxOrderQuantity != nil {
		cpy := *input.MaxOrderQuantity
		product.MaxOrderQuantity = &cpy
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return FromModel(product), nil
}

func (s *service) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, productID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// loadOwned resolves the product and enforces ownership. Missing and
// non-owned collapse into the same NOT_FOUND so callers cannot probe
// for other suppliers' product IDs.
func (s *service) loadOwned(ctx context.Context, userID, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.SupplierID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

func (s *service) requireSupplier(ctx context.Context, userID uuid.UUID) error {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "supplier profile required")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	if profile.Role != enums.ProfileRoleSupplier {
		return pkgerrors.New(pkgerrors.CodeForbidden, "supplier profile required")
	}
	return nil
}
