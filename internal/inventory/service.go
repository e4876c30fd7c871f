package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/streetserve/streetserve-backend/pkg/db/models"
	"github.com/streetserve/streetserve-backend/pkg/enums"
	pkgerrors "github.com/streetserve/streetserve-backend/pkg/errors"
)

type inventoryRepository interface {
	Create(ctx context.Context, dto CreateInventoryItemDTO) (*models.InventoryItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.InventoryItem, error)
	Update(ctx context.Context, item *models.InventoryItem) error
}

type profileReader interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

// Service exposes vendor inventory operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateInventoryItemInput) (*InventoryItemDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]InventoryItemDTO, error)
	Update(ctx context.Context, userID, itemID uuid.UUID, input UpdateInventoryItemInput) (*InventoryItemDTO, error)
}

type service struct {
	repo     inventoryRepository
	profiles profileReader
}

// NewService builds an inventory service with the provided repositories.
func NewService(repo inventoryRepository, profiles profileReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	return &service{repo: repo, profiles: profiles}, nil
}

// CreateInventoryItemInput captures the fields accepted at item creation.
type CreateInventoryItemInput struct {
	ProductName   string
	Category      string
	CurrentStock  int
	MinStockLevel int
	Unit          string
	LastRestocked *time.Time
	SupplierID    *uuid.UUID
}

// UpdateInventoryItemInput carries the updatable item fields. Nil fields
// are left untouched.
type UpdateInventoryItemInput struct {
	CurrentStock  *int
	MinStockLevel *int
	LastRestocked *time.Time
}

// Create adds a tracked stock item for the calling vendor.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateInventoryItemInput) (*InventoryItemDTO, error) {
	if err := s.requireVendor(ctx, userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.ProductName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.CurrentStock < 0 || input.MinStockLevel < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock levels cannot be negative")
	}

	lastRestocked := time.Now().UTC()
	if input.LastRestocked != nil {
		lastRestocked = *input.LastRestocked
	}

	item, err := s.repo.Create(ctx, CreateInventoryItemDTO{
		VendorID:      userID,
		ProductName:   strings.TrimSpace(input.ProductName),
		Category:      input.Category,
		CurrentStock:  input.CurrentStock,
		MinStockLevel: input.MinStockLevel,
		Unit:          input.Unit,
		LastRestocked: lastRestocked,
		SupplierID:    input.SupplierID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inventory item")
	}
	return FromModel(item), nil
}

// ListMine returns the caller's tracked items.
func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]InventoryItemDTO, error) {
	list, err := s.repo.ListByVendor(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory items")
	}
	dtos := make([]InventoryItemDTO, 0, len(list))
	for i := range list {
		dtos = append(dtos, *FromModel(&list[i]))
	}
	return dtos, nil
}

// Update applies a partial update to a tracked item. Missing and
// non-owned collapse into the same NOT_FOUND so callers cannot probe for
// other vendors' item IDs.
func (s *service) Update(ctx context.Context, userID, itemID uuid.UUID, input UpdateInventoryItemInput) (*InventoryItemDTO, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
	}
	if item.VendorID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
	}

	if input.CurrentStock != nil {
		if *input.CurrentStock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock levels cannot be negative")
		}
		item.CurrentStock = *input.CurrentStock
	}
	if input.MinStockLevel != nil {
		if *input.MinStockLevel < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock levels cannot be negative")
		}
		item.MinStockLevel = *input.MinStockLevel
	}
	if input.LastRestocked != nil {
		item.LastRestocked = *input.LastRestocked
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inventory item")
	}
	return FromModel(item), nil
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
