package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mySmartShop/app/echo-server/router"
	"mySmartShop/business/batch"
	"mySmartShop/business/catalog"
	"mySmartShop/business/category"
	"mySmartShop/business/customer"
	"mySmartShop/business/feedback"
	"mySmartShop/business/product"
	"mySmartShop/business/recommend"
	userService "mySmartShop/business/user"
	"mySmartShop/internal/middleware"
	"mySmartShop/internal/repository/ollama"
	psqlRepo "mySmartShop/internal/repository/postgres"
	redisRepo "mySmartShop/internal/repository/redis"
	"mySmartShop/internal/rest"
	"mySmartShop/pkg/config"
	"mySmartShop/pkg/database"
	redisDB "mySmartShop/pkg/database/redis"
	"mySmartShop/pkg/logger"
	"mySmartShop/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting MySmartShop", "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Init recommendation result cache (optional)
	var recoCache *redisRepo.RecommendationCache
	if cfg.Redis.Enabled {
		redisClient, err := redisDB.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer redisDB.CloseRedisClient(redisClient)

		recoCache = redisRepo.NewRecommendationCache(redisClient, time.Duration(cfg.Redis.CacheTTLSec)*time.Second)
		logger.Info("Redis cache enabled")
	}

	// Init narration from ollama
	ollamaNarrator := ollama.NewOllamaRepository(
		ollama.OllamaConfig{
			OllamaBaseURL: cfg.Ollama.BaseURL,
			OllamaModel:   cfg.Ollama.Model,
			OllamaTimeout: time.Duration(cfg.Ollama.TimeoutSec) * time.Second,
		},
	)

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	customerRepo := psqlRepo.NewCustomerRepository(db)
	recoRepo := psqlRepo.NewRecommendationRepository(db)

	// Init service
	catalogService := catalog.NewService(productRepo, customerRepo)
	usrService := userService.NewUserService(userRepo)
	productService := product.NewProductService(productRepo, catalogService)
	customerService := customer.NewCustomerService(customerRepo)
	categoryService := category.NewCategoryService(catalogService)
	feedbackService := feedback.NewFeedbackService(productRepo, ollamaNarrator, catalogService, cfg.Recommend.FeedbackTokenKey)
	batchService := batch.NewService(customerRepo, recoRepo, catalogService, cacheOrNil(recoCache), cfg.Batch.Workers, cfg.Batch.ProgressInterval)
	recoService := recommend.NewService(customerRepo, recoRepo, catalogService, resultCacheOrNil(recoCache), ollamaNarrator, cfg.Recommend.FeedbackTokenKey, cfg.Recommend.DefaultN)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	productHandler := rest.NewProductHandler(productService)
	customerHandler := rest.NewCustomerHandler(customerService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	feedbackHandler := rest.NewFeedbackHandler(feedbackService)
	recoHandler := rest.NewRecommendationHandler(recoService, batchService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler)
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetupCustomerRoutes(api, customerHandler, authRequired)
	router.SetupCategoryRoutes(api, categoryHandler)
	router.SetupRecommendationRoutes(api, recoHandler, feedbackHandler, authRequired, adminOnly)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

// A nil *RecommendationCache wrapped in a non-nil interface would defeat the
// services' nil checks, so convert explicitly.
func cacheOrNil(c *redisRepo.RecommendationCache) batch.ResultCache {
	if c == nil {
		return nil
	}
	return c
}

func resultCacheOrNil(c *redisRepo.RecommendationCache) recommend.ResultCache {
	if c == nil {
		return nil
	}
	return c
}
