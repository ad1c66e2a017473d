package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/electrostorehq/backend/api"
	"github.com/electrostorehq/backend/api/controllers"
	"github.com/electrostorehq/backend/api/routes"
	"github.com/electrostorehq/backend/internal/auth"
	"github.com/electrostorehq/backend/internal/cart"
	"github.com/electrostorehq/backend/internal/categories"
	"github.com/electrostorehq/backend/internal/orders"
	"github.com/electrostorehq/backend/internal/payments"
	"github.com/electrostorehq/backend/internal/products"
	"github.com/electrostorehq/backend/internal/users"
	"github.com/electrostorehq/backend/pkg/config"
	"github.com/electrostorehq/backend/pkg/db"
	"github.com/electrostorehq/backend/pkg/googleauth"
	"github.com/electrostorehq/backend/pkg/logger"
	"github.com/electrostorehq/backend/pkg/metrics"
	"github.com/electrostorehq/backend/pkg/migrate"
	"github.com/electrostorehq/backend/pkg/redis"
	"github.com/electrostorehq/backend/pkg/storage/local"
)

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

	gormDB := dbClient.DB()
	blobStore := local.New(cfg.Storage.BaseDir)

	userRepo := users.NewRepository(gormDB)
	refreshRepo := auth.NewRepository(gormDB)
	categoryRepo := categories.NewRepository(gormDB)
	productRepo := products.NewRepository(gormDB)
	cartRepo := cart.NewRepository(gormDB)
	orderRepo := orders.NewRepository(gormDB)

	userService, err := users.NewService(users.ServiceParams{
		Repo:           userRepo,
		Store:          blobStore,
		PasswordConfig: cfg.Password,
		StorageConfig:  cfg.Storage,
	})
	exitOnErr(logg, "failed to create users service", err)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:         userRepo,
		RefreshTokenRepo: refreshRepo,
		GoogleVerifier:   googleauth.New(cfg.Google),
		JWTConfig:        cfg.JWT,
		GoogleConfig:     cfg.Google,
		PasswordConfig:   cfg.Password,
	})
	exitOnErr(logg, "failed to create auth service", err)

	categoryService, err := categories.NewService(categories.ServiceParams{Repo: categoryRepo})
	exitOnErr(logg, "failed to create categories service", err)

	productService, err := products.NewService(products.ServiceParams{
		Repo:          productRepo,
		CategoryRepo:  categoryRepo,
		Store:         blobStore,
		StorageConfig: cfg.Storage,
	})
	exitOnErr(logg, "failed to create products service", err)

	cartService, err := cart.NewService(cart.ServiceParams{
		Repo:        cartRepo,
		ProductRepo: productRepo,
	})
	exitOnErr(logg, "failed to create cart service", err)

	orderService, err := orders.NewService(orders.ServiceParams{
		Repo:     orderRepo,
		UserRepo: userRepo,
	})
	exitOnErr(logg, "failed to create orders service", err)

	paymentService, err := payments.NewService(payments.ServiceParams{
		OrderRepo: orderRepo,
		Provider:  payments.NewProvider(cfg.Payment),
		Config:    cfg.Payment,
	})
	exitOnErr(logg, "failed to create payments service", err)

	router := routes.NewRouter(
		routes.Dependencies{
			Config:  cfg,
			Logger:  logg,
			Metrics: metrics.NewHTTPMetrics(),
			Redis:   redisClient,
			HealthProbe: map[string]controllers.Pinger{
				"database": dbClient,
				"redis":    redisClient,
			},
		},
		routes.Services{
			Auth:       authService,
			Users:      userService,
			Categories: categoryService,
			Products:   productService,
			Cart:       cartService,
			Orders:     orderService,
			Payments:   paymentService,
		},
	)

	port := os.Getenv("PORT")
	if port != "" {
		cfg.App.Port = port
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": ":" + cfg.App.Port,
	})
	logg.Info(ctx, "starting api server")

	server := api.NewServer(cfg, router)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func exitOnErr(logg *logger.Logger, msg string, err error) {
	if err != nil {
		logg.Error(context.Background(), msg, err)
		os.Exit(1)
	}
}
