package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"mySmartShop/business/batch"
	"mySmartShop/business/catalog"
	psqlRepo "mySmartShop/internal/repository/postgres"
	"mySmartShop/pkg/config"
	"mySmartShop/pkg/database"
	"mySmartShop/pkg/logger"
	"mySmartShop/pkg/metrics"
)

// batch-updater recomputes and persists the stored recommendation rows for
// every customer. Intended to run from cron or by hand after a data refresh.
func main() {
	n := flag.Int("n", 0, "recommendations per customer (default: row width)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	productRepo := psqlRepo.NewProductRepository(db)
	customerRepo := psqlRepo.NewCustomerRepository(db)
	recoRepo := psqlRepo.NewRecommendationRepository(db)

	catalogService := catalog.NewService(productRepo, customerRepo)
	batchService := batch.NewService(customerRepo, recoRepo, catalogService, nil, cfg.Batch.Workers, cfg.Batch.ProgressInterval)

	// SIGINT/SIGTERM stops scheduling; in-flight customers finish
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := batchService.RunAll(ctx, *n)
	if err != nil {
		logger.Fatal("Batch run failed", "error", err)
	}

	logger.Info("batch update complete",
		"run_id", result.RunID,
		"total", result.Total,
		"processed", result.Processed,
		"skipped", result.Skipped,
		"elapsed", result.Elapsed.String(),
	)
}
