package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/streetserve/streetserve-backend/api/routes"
	"github.com/streetserve/streetserve-backend/internal/auth"
	"github.com/streetserve/streetserve-backend/internal/dashboard"
	"github.com/streetserve/streetserve-backend/internal/groupbuys"
	"github.com/streetserve/streetserve-backend/internal/inventory"
	"github.com/streetserve/streetserve-backend/internal/orders"
	"github.com/streetserve/streetserve-backend/internal/products"
	"github.com/streetserve/streetserve-backend/internal/profiles"
	"github.com/streetserve/streetserve-backend/internal/users"
	"github.com/streetserve/streetserve-backend/pkg/auth/session"
	"github.com/streetserve/streetserve-backend/pkg/config"
	"github.com/streetserve/streetserve-backend/pkg/db"
	"github.com/streetserve/streetserve-backend/pkg/logger"
	"github.com/streetserve/streetserve-backend/pkg/metrics"
	"github.com/streetserve/streetserve-backend/pkg/migrate"
	"github.com/streetserve/streetserve-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	usersRepo := users.NewRepository(gormDB)
	profilesRepo := profiles.NewRepository(gormDB)
	productsRepo := products.NewRepository(gormDB)
	ordersRepo := orders.NewRepository(gormDB)
	groupBuysRepo := groupbuys.NewRepository(gormDB)
	inventoryRepo := inventory.NewRepository(gormDB)
	statsRepo := dashboard.NewRepository(gormDB)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		TxRunner:       dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	profileService, err := profiles.NewService(profilesRepo, usersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(productsRepo, profilesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.ServiceParams{
		Repo:      ordersRepo,
		Products:  productsRepo,
		Profiles:  profilesRepo,
		GroupBuys: groupBuysRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	groupBuyService, err := groupbuys.NewService(groupbuys.ServiceParams{
		Repo:     groupBuysRepo,
		Products: productsRepo,
		Profiles: profilesRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create group buy service", err)
		os.Exit(1)
	}

	inventoryService, err := inventory.NewService(inventoryRepo, profilesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(dashboard.ServiceParams{
		Stats:     statsRepo,
		Profiles:  profilesRepo,
		Inventory: inventoryRepo,
		GroupBuys: groupBuysRepo,
		Products:  productsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:           cfg,
			Logger:           logg,
			DB:               dbClient,
			Redis:            redisClient,
			Sessions:         sessionManager,
			Registry:         registry,
			HTTPMetrics:      httpMetrics,
			AuthService:      authService,
			RegisterService:  registerService,
			ProfileService:   profileService,
			ProductService:   productService,
			OrderService:     orderService,
			GroupBuyService:  groupBuyService,
			InventoryService: inventoryService,
			DashboardService: dashboardService,
		}),
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
		}
	}
}
