package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ona-ui/catalog/internal/api"
	"github.com/ona-ui/catalog/internal/api/handlers"
	"github.com/ona-ui/catalog/internal/api/validators"
	"github.com/ona-ui/catalog/internal/platform"
	"github.com/ona-ui/catalog/internal/repository"
	"github.com/ona-ui/catalog/internal/services"
	"github.com/ona-ui/catalog/pkg/config"
	"github.com/ona-ui/catalog/pkg/database"
	"github.com/ona-ui/catalog/pkg/logger"
)

// @title           Ona UI Catalog API
// @version         1.0
// @description     Component marketplace catalog: products, categories, components and licenses.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("starting catalog api",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	log.Info("database connected")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	subcategoryRepo := repository.NewSubcategoryRepository(db)
	componentRepo := repository.NewComponentRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	licenseRepo := repository.NewLicenseRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Platform collaborators
	files, err := platform.NewDiskStore(cfg.UploadDir, cfg.PublicBaseURL+"/uploads")
	if err != nil {
		log.Fatal("failed to init upload store", zap.Error(err))
	}
	payments := platform.NewDevPayments(cfg.PublicBaseURL)

	// Services
	authSvc := services.NewAuthService(userRepo, []byte(cfg.AuthSecret))
	productSvc := services.NewProductService(productRepo, auditRepo)
	categorySvc := services.NewCategoryService(categoryRepo, auditRepo)
	subcategorySvc := services.NewSubcategoryService(subcategoryRepo, auditRepo)
	componentSvc := services.NewComponentService(componentRepo, auditRepo, files)
	versionSvc := services.NewVersionService(versionRepo, auditRepo)
	licenseSvc := services.NewLicenseService(licenseRepo, payments, auditRepo)
	favoriteSvc := services.NewFavoriteService(favoriteRepo, componentRepo)

	v := validators.New()

	router := api.NewRouter(api.Dependencies{
		Sessions:             authSvc,
		RateLimitRPS:         cfg.RateLimitRPS,
		RateLimitBurst:       cfg.RateLimitBurst,
		UploadDir:            cfg.UploadDir,
		AuthHandler:          handlers.NewAuthHandler(authSvc, v),
		ProductsHandler:      handlers.NewProductsHandler(productSvc, v),
		CategoriesHandler:    handlers.NewCategoriesHandler(categorySvc, productSvc, v),
		SubcategoriesHandler: handlers.NewSubcategoriesHandler(subcategorySvc, v),
		ComponentsHandler:    handlers.NewComponentsHandler(componentSvc, versionSvc, v),
		LicensesHandler:      handlers.NewLicensesHandler(licenseSvc, v),
		FavoritesHandler:     handlers.NewFavoritesHandler(favoriteSvc),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
