package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/streetserve/streetserve-backend/api/controllers"
	"github.com/streetserve/streetserve-backend/api/middleware"
	"github.com/streetserve/streetserve-backend/internal/auth"
	"github.com/streetserve/streetserve-backend/internal/dashboard"
	"github.com/streetserve/streetserve-backend/internal/groupbuys"
	"github.com/streetserve/streetserve-backend/internal/inventory"
	"github.com/streetserve/streetserve-backend/internal/orders"
	"github.com/streetserve/streetserve-backend/internal/products"
	"github.com/streetserve/streetserve-backend/internal/profiles"
	"github.com/streetserve/streetserve-backend/pkg/auth/session"
	"github.com/streetserve/streetserve-backend/pkg/config"
	"github.com/streetserve/streetserve-backend/pkg/db"
	"github.com/streetserve/streetserve-backend/pkg/logger"
	"github.com/streetserve/streetserve-backend/pkg/metrics"
	"github.com/streetserve/streetserve-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	Sessions    sessionManager
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics

	AuthService      auth.Service
	RegisterService  auth.RegisterService
	ProfileService   profiles.Service
	ProductService   products.Service
	OrderService     orders.Service
	GroupBuyService  groupbuys.Service
	InventoryService inventory.Service
	DashboardService dashboard.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if p.HTTPMetrics != nil {
		r.Use(p.HTTPMetrics.Middleware)
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.DB, p.Redis, logg))
	})

	if p.Registry != nil {
		r.Handle("/metrics", metrics.Handler(p.Registry))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).Post("/register", controllers.AuthRegister(p.RegisterService, p.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(p.Sessions, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.Sessions, cfg.JWT, logg))
	})

	// Marketplace browsing stays public so vendors can window-shop
	// before registering.
	r.Get("/api/v1/products", controllers.ListActiveProducts(p.ProductService, logg))
	r.Get("/api/v1/group-buys", controllers.ListActiveGroupBuys(p.GroupBuyService, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))

		r.Route("/profiles", func(r chi.Router) {
			r.Post("/", controllers.CreateProfile(p.ProfileService, logg))
			r.Get("/me", controllers.GetCurrentProfile(p.ProfileService, logg))
			r.Patch("/me", controllers.UpdateProfile(p.ProfileService, logg))
		})

		r.Route("/supplier", func(r chi.Router) {
			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.SupplierCreateProduct(p.ProductService, logg))
				r.Get("/", controllers.SupplierListProducts(p.ProductService, logg))
				r.Patch("/{productID}", controllers.SupplierUpdateProduct(p.ProductService, logg))
				r.Delete("/{productID}", controllers.SupplierDeleteProduct(p.ProductService, logg))
			})
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.SupplierListOrders(p.OrderService, logg))
				r.Patch("/{orderID}/status", controllers.SupplierUpdateOrderStatus(p.OrderService, logg))
			})
			r.Get("/dashboard", controllers.SupplierDashboard(p.DashboardService, logg))
		})

		r.Route("/vendor", func(r chi.Router) {
			r.Route("/orders", func(r chi.Router) {
				r.Post("/", controllers.VendorCreateOrder(p.OrderService, logg))
				r.Get("/", controllers.VendorListOrders(p.OrderService, logg))
			})
			r.Route("/group-buys", func(r chi.Router) {
				r.Post("/", controllers.VendorCreateGroupBuy(p.GroupBuyService, logg))
				r.Get("/mine", controllers.VendorMyGroupBuys(p.GroupBuyService, logg))
				r.Post("/{groupBuyID}/join", controllers.VendorJoinGroupBuy(p.GroupBuyService, logg))
			})
			r.Route("/inventory", func(r chi.Router) {
				r.Post("/", controllers.VendorCreateInventoryItem(p.InventoryService, logg))
				r.Get("/", controllers.VendorListInventory(p.InventoryService, logg))
				r.Patch("/{itemID}", controllers.VendorUpdateInventoryItem(p.InventoryService, logg))
			})
			r.Get("/dashboard", controllers.VendorDashboard(p.DashboardService, logg))
		})
	})

	return r
}
