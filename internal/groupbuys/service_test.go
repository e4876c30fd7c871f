package groupbuys

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/streetserve/streetserve-backend/pkg/db/models"
	"github.com/streetserve/streetserve-backend/pkg/enums"
	pkgerrors "github.com/streetserve/streetserve-backend/pkg/errors"
)

type stubGroupBuyRepo struct {
	groupBuys    map[uuid.UUID]*models.GroupBuy
	participants map[uuid.UUID]map[uuid.UUID]*models.GroupParticipant
	joinErr      error
}

func newStubGroupBuyRepo() *stubGroupBuyRepo {
	return &stubGroupBuyRepo{
		groupBuys:    map[uuid.UUID]*models.GroupBuy{},
		participants: map[uuid.UUID]map[uuid.UUID]*models.GroupParticipant{},
	}
}

func (s *stubGroupBuyRepo) Create(ctx context.Context, dto CreateGroupBuyDTO) (*models.GroupBuy, error) {
	groupBuy := dto.ToModel()
	groupBuy.ID = uuid.New()
	s.groupBuys[groupBuy.ID] = groupBuy
	return groupBuy, nil
}

func (s *stubGroupBuyRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.GroupBuy, error) {
	if groupBuy, ok := s.groupBuys[id]; ok {
		return groupBuy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubGroupBuyRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.GroupBuy, error) {
	var list []models.GroupBuy
	for _, id := range ids {
		if groupBuy, ok := s.groupBuys[id]; ok {
			list = append(list, *groupBuy)
		}
	}
	return list, nil
}

func (s *stubGroupBuyRepo) ListActive(ctx context.Context, now time.Time) ([]models.GroupBuy, error) {
	var list []models.GroupBuy
	for _, groupBuy := range s.groupBuys {
		if groupBuy.Status == enums.GroupBuyStatusActive && groupBuy.Deadline.After(now) {
			list = append(list, *groupBuy)
		}
	}
	return list, nil
}

func (s *stubGroupBuyRepo) ListByCreator(ctx context.Context, createdBy uuid.UUID) ([]models.GroupBuy, error) {
	var list []models.GroupBuy
	for _, groupBuy := range s.groupBuys {
		if groupBuy.CreatedBy == createdBy {
			list = append(list, *groupBuy)
		}
	}
	return list, nil
}

func (s *stubGroupBuyRepo) FindParticipant(ctx context.Context, groupBuyID, vendorID uuid.UUID) (*models.GroupParticipant, error) {
	if participant, ok := s.participants[groupBuyID][vendorID]; ok {
		return participant, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubGroupBuyRepo) ListParticipations(ctx context.Context, vendorID uuid.UUID) ([]models.GroupParticipant, error) {
	var list []models.GroupParticipant
	for _, byVendor := range s.participants {
		if participant, ok := byVendor[vendorID]; ok {
			list = append(list, *participant)
		}
	}
	return list, nil
}

func (s *stubGroupBuyRepo) Join(ctx context.Context, groupBuyID, vendorID uuid.UUID, quantity, expectedParticipants int) error {
	if s.joinErr != nil {
		return s.joinErr
	}
	groupBuy, ok := s.groupBuys[groupBuyID]
	if !ok || groupBuy.CurrentParticipants != expectedParticipants {
		return ErrStaleCounters
	}
	if s.participants[groupBuyID] == nil {
		s.participants[groupBuyID] = map[uuid.UUID]*models.GroupParticipant{}
	}
	s.participants[groupBuyID][vendorID] = &models.GroupParticipant{
		ID:         uuid.New(),
		GroupBuyID: groupBuyID,
		VendorID:   vendorID,
		Quantity:   quantity,
		JoinedAt:   time.Now().UTC(),
	}
	groupBuy.CurrentQuantity += quantity
	groupBuy.CurrentParticipants++
	return nil
}

type stubProductReader struct {
	products map[uuid.UUID]*models.Product
}

func newStubProductReader() *stubProductReader {
	return &stubProductReader{products: map[uuid.UUID]*models.Product{}}
}

func (s *stubProductReader) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if product, ok := s.products[id]; ok {
		return product, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProductReader) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var list []models.Product
	for _, id := range ids {
		if product, ok := s.products[id]; ok {
			list = append(list, *product)
		}
	}
	return list, nil
}

func (s *stubProductReader) add(supplierID uuid.UUID, name, unit string, price decimal.Decimal) *models.Product {
	product := &models.Product{
		ID:         uuid.New(),
		SupplierID: supplierID,
		Name:       name,
		Unit:       unit,
		Price:      price,
		IsActive:   true,
	}
	s.products[product.ID] = product
	return product
}

type stubProfileReader struct {
	profiles map[uuid.UUID]*models.Profile
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
	var list []models.Profile
	for _, id := range userIDs {
		if profile, ok := s.profiles[id]; ok {
			list = append(list, *profile)
		}
	}
	return list, nil
}

func (s *stubProfileReader) add(userID uuid.UUID, role enums.ProfileRole, name string) {
	s.profiles[userID] = &models.Profile{
		ID:           uuid.New(),
		UserID:       userID,
		Role:         role,
		BusinessName: name,
	}
}

type groupBuyTestSetup struct {
	service  Service
	repo     *stubGroupBuyRepo
	products *stubProductReader
	profiles *stubProfileReader
}

func newGroupBuyTestSetup(t *testing.T) *groupBuyTestSetup {
	t.Helper()
	repo := newStubGroupBuyRepo()
	products := newStubProductReader()
	profiles := newStubProfileReader()
	svc, err := NewService(ServiceParams{
		Repo:     repo,
		Products: products,
		Profiles: profiles,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &groupBuyTestSetup{service: svc, repo: repo, products: products, profiles: profiles}
}

func validCreateInput(productID uuid.UUID) CreateGroupBuyInput {
	return CreateGroupBuyInput{
		ProductID:          productID,
		Title:              "Bulk tomatoes",
		Description:        "Split a pallet",
		TargetQuantity:     100,
		DiscountPercentage: decimal.NewFromInt(15),
		MinParticipants:    2,
		MaxParticipants:    5,
		Deadline:           time.Now().Add(72 * time.Hour),
	}
}

func TestServiceCreateComputesDiscountedPriceOnce(t *testing.T) {
	setup := newGroupBuyTestSetup(t)
	vendorID := uuid.New()
	setup.profiles.add(vendorID, enums.ProfileRoleVendor, "Tacos El Rey")
	supplierID := uuid.New()
	product := setup.products.add(supplierID, "Tomatoes", "kg", decimal.NewFromInt(20))

	dto, err := setup.service.Create(context.Background(), vendorID, validCreateInput(product.ID))
	if err != nil {
		t.Fatalf("create group buy: %v", err)
	}
	if !dto.OriginalPrice.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected original price 20, got %s", dto.OriginalPrice)
	}
	if !dto.DiscountedPrice.Equal(decimal.NewFromInt(17)) {
		t.Fatalf("expected discounted price 17, got %s", dto.DiscountedPrice)
	}
	if dto.SupplierID != supplierID {
		t.Fatalf("expected supplier derived from product, got %s", dto.SupplierID)
	}
	if dto.Status != enums.GroupBuyStatusActive || dto.CurrentQuantity != 0 || dto.CurrentParticipants != 0 {
		t.Fatalf("expected fresh active campaign, got %+v", dto)
	}

	// a later product price change never touches the stored price
	product.Price = decimal.NewFromInt(50)
	stored := setup.repo.groupBuys[dto.ID]
	if !stored.DiscountedPrice.Equal(decimal.NewFromInt(17)) {
		t.Fatalf("expected stored price 17, got %s", stored.DiscountedPrice)
	}
}

func TestServiceCreateRequiresVendorRole(t *testing.T) {
	setup := newGroupBuyTestSetup(t)
	supplierID := uuid.New()
	setup.profiles.add(supplierID, enums.ProfileRoleSupplier, "Frescos")
	product := setup.products.add(uuid.New(), "Tomatoes", "kg", decimal.NewFromInt(20))

	_, err := setup.service.Create(context.Background(), supplierID, validCreateInput(product.ID))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestServiceCreateMissingProduct(t *testing.T) {
	setup := newGroupBuyTestSetup(t)
	vendorID := uuid.New()
	setup.profiles.add(vendorID, enums.ProfileRoleVendor, "Tacos El Rey")

	_, err := setup.service.Create(context.Background(), vendorID, validCreateInput(uuid.New()))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceJoinHappyPath(t *testing.T) {
	setup := newGroupBuyTestSetup(t)
	creator := uuid.New()
	joiner := uuid.New()
	setup.profiles.add(creator, enums.ProfileRoleVendor, "Tacos El Rey")
	setup.profiles.add(joiner, enums.ProfileRoleVendor, "Arepas Doña Luz")
	product := setup.products.add(uuid.New(), "Tomatoes", "kg", decimal.NewFromInt(20))

	created, err := setup.service.Create(context.Background(), creator, validCreateInput(product.ID))
	if err != nil {
		t.Fatalf("create group buy: %v", err)
	}

	dto, err := setup.service.Join(context.Background(), joiner, created.ID, 40)
	if err != nil {
		t.Fatalf("join group buy: %v", err)
	}
	if dto.CurrentQuantity != 40 || dto.CurrentParticipants != 1 {
		t.Fatalf("expected counters bumped, got qty=%d participants=%d", dto.CurrentQuantity, dto.CurrentParticipants)
	}
	if dto.MyQuantity != 40 {
		t.Fatalf("expected joined quantity 40, got %d", dto.MyQuantity)
	}
}

func TestServiceJoinAllowsOvershootingTarget(t *testing.T) {
	setup := newGroupBuyTestSetup(t)
	joiner := uuid.New()
	setup.profiles.add(joiner, enums.ProfileRoleVendor, "Arepas Doña Luz")

	groupBuy := &models.GroupBuy{
		ID:              uuid.New(),
		ProductID:       uuid.New(),
		TargetQuantity:  10,
		CurrentQuantity: 9,
		MaxParticipants: 5,
		Status:          enums.GroupBuyStatusActive,
		Deadline:        time.Now().Add(time.Hour),
	}
	setup.repo.groupBuys[groupBuy.ID] = groupBuy

	dto, err := setup.service.Join(context.Background(), joiner, groupBuy.ID, 50)
	if err != nil {
		t.Fatalf("join group buy: %v", err)
	}
	if dto.CurrentQuantity != 59 {
		t.Fatalf("expected overshoot to 59, got %d", dto.CurrentQuantity)
	}
}

func TestServiceJoinRejectsDuplicateParticipant(t *testing.T) {
	setup := newGroupBuyTestSetup(t)
	joiner := uuid.New()
	setup.profiles.add(joiner, enums.ProfileRoleVendor, "Arepas Doña Luz")

	groupBuy := &models.GroupBuy{
		ID:              uuid.New(),
		MaxParticipants: 5,
		Status:          enums.GroupBuyStatusActive,
	}
	setup.repo.groupBuys[groupBuy.ID] = groupBuy

	if _, err := setup.service.Join(context.Background(), joiner, groupBuy.ID, 10); err != nil {
		t.Fatalf("first join: %v", err)
	}
	_, err := setup.service.Join(context.Background(), joiner, groupBuy.ID, 10)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestServiceJoinRejectsFullCampaign(t *testing.T) {
	setup := newGroupBuyTestSetup(t)
	joiner := uuid.New()
	setup.profiles.add(joiner, enums.ProfileRoleVendor, "Arepas Doña Luz")

	groupBuy := &models.GroupBuy{
		ID:                  uuid.New(),
		MaxParticipants:     2,
		CurrentParticipants: 2,
		Status:              enums.GroupBuyStatusActive,
	}
	setup.repo.groupBuys[groupBuy.ID] = groupBuy

	_, err := setup.service.Join(context.Background(), joiner, groupBuy.ID, 10)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestServiceJoinTreatsInactiveAsMissing(t *testing.T) {
	setup := newGroupBuyTestSetup(t)
	joiner := uuid.New()
	setup.profiles.add(joiner, enums.ProfileRoleVendor, "Arepas Doña Luz")

	groupBuy := &models.GroupBuy{
		ID:              uuid.New(),
		MaxParticipants: 5,
		Status:          enums.GroupBuyStatusCancelled,
	}
	setup.repo.groupBuys[groupBuy.ID] = groupBuy

	_, err := setup.service.Join(context.Background(), joiner, groupBuy.ID, 10)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceJoinMapsLostRaceToConflict(t *testing.T) {
	setup := newGroupBuyTestSetup(t)
	joiner := uuid.New()
	setup.profiles.add(joiner, enums.ProfileRoleVendor, "Arepas Doña Luz")

	groupBuy := &models.GroupBuy{
		ID:              uuid.New(),
		MaxParticipants: 5,
		Status:          enums.GroupBuyStatusActive,
	}
	setup.repo.groupBuys[groupBuy.ID] = groupBuy
	setup.repo.joinErr = ErrStaleCounters

	_, err := setup.service.Join(context.Background(), joiner, groupBuy.ID, 10)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestServiceJoinQuantityValidation(t *testing.T) {
	setup := newGroupBuyTestSetup(t)
	joiner := uuid.New()
	setup.profiles.add(joiner, enums.ProfileRoleVendor, "Arepas Doña Luz")

	_, err := setup.service.Join(context.Background(), joiner, uuid.New(), 0)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceListActiveAnnotates(t *testing.T) {
	setup := newGroupBuyTestSetup(t)
	supplierID := uuid.New()
	setup.profiles.add(supplierID, enums.ProfileRoleSupplier, "Frescos del Valle")
	product := setup.products.add(supplierID, "Tomatoes", "kg", decimal.NewFromInt(20))

	groupBuy := &models.GroupBuy{
		ID:         uuid.New(),
		ProductID:  product.ID,
		SupplierID: supplierID,
		Status:     enums.GroupBuyStatusActive,
		Deadline:   time.Now().Add(time.Hour),
	}
	orphan := &models.GroupBuy{
		ID:         uuid.New(),
		ProductID:  uuid.New(),
		SupplierID: uuid.New(),
		Status:     enums.GroupBuyStatusActive,
		Deadline:   time.Now().Add(time.Hour),
	}
	setup.repo.groupBuys[groupBuy.ID] = groupBuy
	setup.repo.groupBuys[orphan.ID] = orphan

	list, err := setup.service.ListActive(context.Background())
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 campaigns, got %d", len(list))
	}
	byID := map[uuid.UUID]GroupBuyDTO{}
	for _, dto := range list {
		byID[dto.ID] = dto
	}
	if byID[groupBuy.ID].ProductName != "Tomatoes" || byID[groupBuy.ID].SupplierName != "Frescos del Valle" {
		t.Fatalf("expected annotations, got %+v", byID[groupBuy.ID])
	}
	if byID[orphan.ID].ProductName != unknownProductName || byID[orphan.ID].SupplierName != unknownSupplierName {
		t.Fatalf("expected placeholders, got %+v", byID[orphan.ID])
	}
}

func TestServiceListMineSplitsAndFilters(t *testing.T) {
	setup := newGroupBuyTestSetup(t)
	creator := uuid.New()
	joiner := uuid.New()
	setup.profiles.add(creator, enums.ProfileRoleVendor, "Tacos El Rey")
	setup.profiles.add(joiner, enums.ProfileRoleVendor, "Arepas Doña Luz")
	product := setup.products.add(uuid.New(), "Tomatoes", "kg", decimal.NewFromInt(20))

	created, err := setup.service.Create(context.Background(), creator, validCreateInput(product.ID))
	if err != nil {
		t.Fatalf("create group buy: %v", err)
	}
	if _, err := setup.service.Join(context.Background(), joiner, created.ID, 12); err != nil {
		t.Fatalf("join group buy: %v", err)
	}

	// a participation pointing at a vanished campaign must be dropped
	ghost := uuid.New()
	setup.repo.participants[ghost] = map[uuid.UUID]*models.GroupParticipant{
		joiner: {ID: uuid.New(), GroupBuyID: ghost, VendorID: joiner, Quantity: 4},
	}

	mine, err := setup.service.ListMine(context.Background(), joiner)
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(mine.Created) != 0 {
		t.Fatalf("expected no created campaigns for joiner, got %d", len(mine.Created))
	}
	if len(mine.Participating) != 1 {
		t.Fatalf("expected 1 participation, got %d", len(mine.Participating))
	}
	if mine.Participating[0].MyQuantity != 12 {
		t.Fatalf("expected joined quantity 12, got %d", mine.Participating[0].MyQuantity)
	}

	creatorMine, err := setup.service.ListMine(context.Background(), creator)
	if err != nil {
		t.Fatalf("list mine for creator: %v", err)
	}
	if len(creatorMine.Created) != 1 {
		t.Fatalf("expected 1 created campaign, got %d", len(creatorMine.Created))
	}
}

func TestServiceListMineEmpty(t *testing.T) {
	setup := newGroupBuyTestSetup(t)

	mine, err := setup.service.ListMine(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(mine.Created) != 0 || len(mine.Participating) != 0 {
		t.Fatalf("expected empty result, got %+v", mine)
	}
}
