package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/streetserve/streetserve-backend/pkg/db/models"
	"github.com/streetserve/streetserve-backend/pkg/enums"
	pkgerrors "github.com/streetserve/streetserve-backend/pkg/errors"
)

type stubProductRepo struct {
	products map[uuid.UUID]*models.Product
	active   []models.Product
	listErr  error
	deleted  []uuid.UUID
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: map[uuid.UUID]*models.Product{}}
}

func (s *stubProductRepo) Create(ctx context.Context, dto CreateProductDTO) (*models.Product, error) {
	product := dto.ToModel()
	product.ID = uuid.New()
	s.products[product.ID] = product
	return product, nil
}

func (s *stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if product, ok := s.products[id]; ok {
		return product, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProductRepo) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.Product, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var list []models.Product
	for _, p := range s.products {
		if p.SupplierID == supplierID {
			list = append(list, *p)
		}
	}
	return list, nil
}

func (s *stubProductRepo) ListActive(ctx context.Context) ([]models.Product, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.active, nil
}

func (s *stubProductRepo) Update(ctx context.Context, product *models.Product) error {
	s.products[product.ID] = product
	return nil
}

func (s *stubProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.products, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type stubProfileReader struct {
	profiles map[uuid.UUID]*models.Profile
	batchErr error
}

func newStubProfileReader() *stubProfileReader {
	return &stubProfileReader{profiles: map[uuid.UUID]*models.Profile{}}
}

func (s *stubProfileReader) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if profile, ok := s.profiles[userID]; ok {
		return profile, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProfileReader) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]models.Profile, error) {
	if s.batchErr != nil {
		return nil, s.batchErr
	}
	var list []models.Profile
	for _, id := range userIDs {
		if profile, ok := s.profiles[id]; ok {
			list = append(list, *profile)
		}
	}
	return list, nil
}

func (s *stubProfileReader) addSupplier(userID uuid.UUID, name, city string) {
	s.profiles[userID] = &models.Profile{
		ID:           uuid.New(),
		UserID:       userID,
		Role:         enums.ProfileRoleSupplier,
		BusinessName: name,
		City:         city,
	}
}

func (s *stubProfileReader) addVendor(userID uuid.UUID) {
	s.profiles[userID] = &models.Profile{
		ID:     uuid.New(),
		UserID: userID,
		Role:   enums.ProfileRoleVendor,
	}
}

func sampleInput(name string) CreateProductInput {
	return CreateProductInput{
		Name:        name,
		Category:    "vegetables",
		Description: "farm fresh",
		Price:       decimal.NewFromInt(100),
		Unit:        "kg",
		Quantity:    50,
	}
}

func TestServiceCreateRequiresSupplierRole(t *testing.T) {
	repo := newStubProductRepo()
	profiles := newStubProfileReader()
	vendorID := uuid.New()
	profiles.addVendor(vendorID)

	svc, err := NewService(repo, profiles)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Create(context.Background(), vendorID, sampleInput("Tomatoes"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	_, err = svc.Create(context.Background(), uuid.New(), sampleInput("Tomatoes"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden without profile, got %v", err)
	}
}

func TestServiceCreateSetsOwnerAndActive(t *testing.T) {
	repo := newStubProductRepo()
	profiles := newStubProfileReader()
	supplierID := uuid.New()
	profiles.addSupplier(supplierID, "Frescos del Valle", "Mexico City")

	svc, _ := NewService(repo, profiles)

	dto, err := svc.Create(context.Background(), supplierID, sampleInput("Tomatoes"))
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if dto.SupplierID != supplierID {
		t.Fatalf("expected supplier id %s, got %s", supplierID, dto.SupplierID)
	}
	if !dto.IsActive {
		t.Fatal("expected new product active")
	}
}

func TestServiceListActiveJoinsSupplierProfiles(t *testing.T) {
	repo := newStubProductRepo()
	profiles := newStubProfileReader()

	known := uuid.New()
	orphan := uuid.New()
	profiles.addSupplier(known, "Frescos del Valle", "Puebla")

	repo.active = []models.Product{
		{ID: uuid.New(), SupplierID: known, Name: "Tomatoes", Price: decimal.NewFromInt(10)},
		{ID: uuid.New(), SupplierID: orphan, Name: "Onions", Price: decimal.NewFromInt(8)},
	}

	svc, _ := NewService(repo, profiles)

	list, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 products, got %d", len(list))
	}
	if list[0].SupplierName != "Frescos del Valle" || list[0].SupplierCity != "Puebla" {
		t.Fatalf("expected supplier join, got %q/%q", list[0].SupplierName, list[0].SupplierCity)
	}
	if list[1].SupplierName != unknownSupplierName || list[1].SupplierCity != "" {
		t.Fatalf("expected placeholder for orphan, got %q/%q", list[1].SupplierName, list[1].SupplierCity)
	}
}

func TestServiceUpdateAppliesPartials(t *testing.T) {
	repo := newStubProductRepo()
	profiles := newStubProfileReader()
	supplierID := uuid.New()
	profiles.addSupplier(supplierID, "Frescos", "CDMX")

	svc, _ := NewService(repo, profiles)
	created, err := svc.Create(context.Background(), supplierID, sampleInput("Tomatoes"))
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	newPrice := decimal.NewFromInt(120)
	inactive := false
	dto, err := svc.Update(context.Background(), supplierID, created.ID, UpdateProductInput{
		Price:    &newPrice,
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("update product: %v", err)
	}
	if !dto.Price.Equal(newPrice) {
		t.Fatalf("expected price %s, got %s", newPrice, dto.Price)
	}
	if dto.IsActive {
		t.Fatal("expected product deactivated")
	}
	if dto.Name != "Tomatoes" {
		t.Fatalf("expected name untouched, got %q", dto.Name)
	}
}

func TestServiceUpdateNonOwnedIsNotFound(t *testing.T) {
	repo := newStubProductRepo()
	profiles := newStubProfileReader()
	owner := uuid.New()
	profiles.addSupplier(owner, "Frescos", "CDMX")

	svc, _ := NewService(repo, profiles)
	created, err := svc.Create(context.Background(), owner, sampleInput("Tomatoes"))
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	name := "Stolen"
	_, err = svc.Update(context.Background(), uuid.New(), created.ID, UpdateProductInput{Name: &name})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for non-owner, got %v", err)
	}
}

func TestServiceDeleteOwnedOnly(t *testing.T) {
	repo := newStubProductRepo()
	profiles := newStubProfileReader()
	owner := uuid.New()
	profiles.addSupplier(owner, "Frescos", "CDMX")

	svc, _ := NewService(repo, profiles)
	created, err := svc.Create(context.Background(), owner, sampleInput("Tomatoes"))
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	if err := svc.Delete(context.Background(), uuid.New(), created.ID); err == nil {
		t.Fatal("expected error deleting non-owned product")
	}

	if err := svc.Delete(context.Background(), owner, created.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != created.ID {
		t.Fatalf("expected hard delete of %s, got %v", created.ID, repo.deleted)
	}
}
