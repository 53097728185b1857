package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"mySmartShop/business/catalog"
	"mySmartShop/business/ingest"
	psqlRepo "mySmartShop/internal/repository/postgres"
	"mySmartShop/pkg/config"
	"mySmartShop/pkg/database"
	"mySmartShop/pkg/logger"
)

// data-loader seeds the database from the product and customer CSV exports.
// Each load replaces the whole table.
func main() {
	productsPath := flag.String("products", "", "path to the products CSV")
	customersPath := flag.String("customers", "", "path to the customers CSV")
	flag.Parse()

	if *productsPath == "" && *customersPath == "" {
		log.Fatal("nothing to load: pass -products and/or -customers")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	productRepo := psqlRepo.NewProductRepository(db)
	customerRepo := psqlRepo.NewCustomerRepository(db)

	catalogService := catalog.NewService(productRepo, customerRepo)
	ingestService := ingest.NewIngestService(productRepo, customerRepo, catalogService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *productsPath != "" {
		count, err := ingestService.LoadProductsCSV(ctx, *productsPath)
		if err != nil {
			logger.Fatal("Failed to load products", "error", err)
		}
		logger.Info("products loaded", "count", count)
	}

	if *customersPath != "" {
		count, err := ingestService.LoadCustomersCSV(ctx, *customersPath)
		if err != nil {
			logger.Fatal("Failed to load customers", "error", err)
		}
		logger.Info("customers loaded", "count", count)
	}
}
