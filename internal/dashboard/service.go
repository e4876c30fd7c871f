package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/streetserve/streetserve-backend/internal/orders"
	"github.com/streetserve/streetserve-backend/pkg/db/models"
	"github.com/streetserve/streetserve-backend/pkg/enums"
	pkgerrors "github.com/streetserve/streetserve-backend/pkg/errors"
)

const (
	defaultTrustScore = 5.0
	recentOrderLimit  = 5
)

type statsRepository interface {
	CountOrdersByVendor(ctx context.Context, vendorID uuid.UUID, since *time.Time) (int64, error)
	SumSpentByVendor(ctx context.Context, vendorID uuid.UUID, since *time.Time) (decimal.Decimal, error)
	CountOrdersBySupplier(ctx context.Context, supplierID uuid.UUID, status *enums.OrderStatus, since *time.Time) (int64, error)
	SumRevenueBySupplier(ctx context.Context, supplierID uuid.UUID, since *time.Time) (decimal.Decimal, error)
	CountDistinctVendors(ctx context.Context, supplierID uuid.UUID) (int64, error)
	RecentOrdersByVendor(ctx context.Context, vendorID uuid.UUID, limit int) ([]models.Order, error)
	RecentOrdersBySupplier(ctx context.Context, supplierID uuid.UUID, limit int) ([]models.Order, error)
}

type profileReader interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

type inventoryCounter interface {
	CountLowStock(ctx context.Context, vendorID uuid.UUID) (int64, error)
}

type groupBuyCounter interface {
	CountActiveByCreator(ctx context.Context, createdBy uuid.UUID) (int64, error)
}

type productCounter interface {
	CountBySupplier(ctx context.Context, supplierID uuid.UUID, activeOnly bool) (int64, error)
}

// VendorDashboardDTO aggregates a vendor's activity.
type VendorDashboardDTO struct {
	TotalOrders     int64             `json:"total_orders"`
	TotalSpent      decimal.Decimal   `json:"total_spent"`
	MonthlyOrders   int64             `json:"monthly_orders"`
	MonthlySpent    decimal.Decimal   `json:"monthly_spent"`
	TrustScore      float64           `json:"trust_score"`
	LowStockItems   int64             `json:"low_stock_items"`
	ActiveGroupBuys int64             `json:"active_group_buys"`
	RecentOrders    []orders.OrderDTO `json:"recent_orders"`
}

// SupplierDashboardDTO aggregates a supplier's activity. Revenue counts
// delivered orders only; order counts span every status.
type SupplierDashboardDTO struct {
	TotalOrders    int64             `json:"total_orders"`
	TotalRevenue   decimal.Decimal   `json:"total_revenue"`
	MonthlyOrders  int64             `json:"monthly_orders"`
	MonthlyRevenue decimal.Decimal   `json:"monthly_revenue"`
	ActiveVendors  int64             `json:"active_vendors"`
	TotalProducts  int64             `json:"total_products"`
	ActiveProducts int64             `json:"active_products"`
	PendingOrders  int64             `json:"pending_orders"`
	RecentOrders   []orders.OrderDTO `json:"recent_orders"`
}

// Service exposes the per-role dashboards.
type Service interface {
	Vendor(ctx context.Context, userID uuid.UUID) (*VendorDashboardDTO, error)
	Supplier(ctx context.Context, userID uuid.UUID) (*SupplierDashboardDTO, error)
}

type service struct {
	stats     statsRepository
	profiles  profileReader
	inventory inventoryCounter
	groupBuys groupBuyCounter
	products  productCounter
}

// ServiceParams bundles the dependencies required to build a dashboard
// service.
type ServiceParams struct {
	Stats     statsRepository
	Profiles  profileReader
	Inventory inventoryCounter
	GroupBuys groupBuyCounter
	Products  productCounter
}

// NewService builds a dashboard service with the provided repositories.
func NewService(params ServiceParams) (Service, error) {
	if params.Stats == nil {
		return nil, fmt.Errorf("stats repository required")
	}
	if params.Profiles == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	if params.Inventory == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if params.GroupBuys == nil {
		return nil, fmt.Errorf("group buy repository required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{
		stats:     params.Stats,
		profiles:  params.Profiles,
		inventory: params.Inventory,
		groupBuys: params.GroupBuys,
		products:  params.Products,
	}, nil
}

// Vendor builds the vendor dashboard. Lifetime spend covers every order
// status; the monthly window starts at the local first-of-month
// midnight.
func (s *service) Vendor(ctx context.Context, userID uuid.UUID) (*VendorDashboardDTO, error) {
	profile, err := s.requireRole(ctx, userID, enums.ProfileRoleVendor)
	if err != nil {
		return nil, err
	}

	monthStart := startOfMonth(time.Now())

	totalOrders, err := s.stats.CountOrdersByVendor(ctx, userID, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}
	totalSpent, err := s.stats.SumSpentByVendor(ctx, userID, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum spend")
	}
	monthlyOrders, err := s.stats.CountOrdersByVendor(ctx, userID, &monthStart)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count monthly orders")
	}
	monthlySpent, err := s.stats.SumSpentByVendor(ctx, userID, &monthStart)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum monthly spend")
	}
	lowStock, err := s.inventory.CountLowStock(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count low stock items")
	}
	activeGroupBuys, err := s.groupBuys.CountActiveByCreator(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active group buys")
	}
	recent, err := s.stats.RecentOrdersByVendor(ctx, userID, recentOrderLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent orders")
	}

	trustScore := defaultTrustScore
	if profile.TrustScore != nil {
		trustScore = *profile.TrustScore
	}

	return &VendorDashboardDTO{
		TotalOrders:     totalOrders,
		TotalSpent:      totalSpent,
		MonthlyOrders:   monthlyOrders,
		MonthlySpent:    monthlySpent,
		TrustScore:      trustScore,
		LowStockItems:   lowStock,
		ActiveGroupBuys: activeGroupBuys,
		RecentOrders:    toOrderDTOs(recent),
	}, nil
}

// Supplier builds the supplier dashboard.
func (s *service) Supplier(ctx context.Context, userID uuid.UUID) (*SupplierDashboardDTO, error) {
	if _, err := s.requireRole(ctx, userID, enums.ProfileRoleSupplier); err != nil {
		return nil, err
	}

	monthStart := startOfMonth(time.Now())
	pending := enums.OrderStatusPending

	totalOrders, err := s.stats.CountOrdersBySupplier(ctx, userID, nil, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}
	totalRevenue, err := s.stats.SumRevenueBySupplier(ctx, userID, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum revenue")
	}
	monthlyOrders, err := s.stats.CountOrdersBySupplier(ctx, userID, nil, &monthStart)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count monthly orders")
	}
	monthlyRevenue, err := s.stats.SumRevenueBySupplier(ctx, userID, &monthStart)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum monthly revenue")
	}
	activeVendors, err := s.stats.CountDistinctVendors(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count vendors")
	}
	totalProducts, err := s.products.CountBySupplier(ctx, userID, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	activeProducts, err := s.products.CountBySupplier(ctx, userID, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active products")
	}
	pendingOrders, err := s.stats.CountOrdersBySupplier(ctx, userID, &pending, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending orders")
	}
	recent, err := s.stats.RecentOrdersBySupplier(ctx, userID, recentOrderLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent orders")
	}

	return &SupplierDashboardDTO{
		TotalOrders:    totalOrders,
		TotalRevenue:   totalRevenue,
		MonthlyOrders:  monthlyOrders,
		MonthlyRevenue: monthlyRevenue,
		ActiveVendors:  activeVendors,
		TotalProducts:  totalProducts,
		ActiveProducts: activeProducts,
		PendingOrders:  pendingOrders,
		RecentOrders:   toOrderDTOs(recent),
	}, nil
}

func (s *service) requireRole(ctx context.Context, userID uuid.UUID, role enums.ProfileRole) (*models.Profile, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, fmt.Sprintf("%s profile required", role))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	if profile.Role != role {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, fmt.Sprintf("%s profile required", role))
	}
	return profile, nil
}

// startOfMonth returns the local first-of-month midnight for t.
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func toOrderDTOs(list []models.Order) []orders.OrderDTO {
	dtos := make([]orders.OrderDTO, 0, len(list))
	for i := range list {
		dtos = append(dtos, *orders.FromModel(&list[i]))
	}
	return dtos
}
