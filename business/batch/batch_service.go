package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"mySmartShop/business/catalog"
	"mySmartShop/business/recommend"
	"mySmartShop/domain"
	"mySmartShop/pkg/logger"
	"mySmartShop/pkg/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// CustomerRepository contract interface
type CustomerRepository interface {
	FindAll(ctx context.Context) ([]domain.Customer, error)
}

// RecommendationRepository contract interface
type RecommendationRepository interface {
	Upsert(ctx context.Context, rec *domain.CustomerRecommendation) error
	SaveBatchRun(ctx context.Context, run *domain.BatchRun) error
}

// ResultCache is invalidated per customer after a batch write. Optional.
type ResultCache interface {
	Invalidate(ctx context.Context, customerID string) error
}

type Service struct {
	customerRepo     CustomerRepository
	recoRepo         RecommendationRepository
	catalog          *catalog.Service
	cache            ResultCache
	workers          int
	progressInterval int
}

func NewService(
	customerRepo CustomerRepository,
	recoRepo RecommendationRepository,
	catalogService *catalog.Service,
	cache ResultCache,
	workers int,
	progressInterval int,
) *Service {
	if workers <= 0 {
		workers = 1
	}
	if progressInterval <= 0 {
		progressInterval = 100
	}

	return &Service{
		customerRepo:     customerRepo,
		recoRepo:         recoRepo,
		catalog:          catalogService,
		cache:            cache,
		workers:          workers,
		progressInterval: progressInterval,
	}
}

// RunAll ranks every customer with the fast variant and persists the padded
// five-slot rows. Ranking is a pure read over the shared index, so customers
// fan out over a bounded worker group.
//
// A customer without candidates is counted as skipped and never aborts the
// run. Cancellation stops scheduling new customers; in-flight customers
// finish and their writes are kept, since each write is independent. The
// final statistics emission happens regardless of how the run ends.
func (s *Service) RunAll(ctx context.Context, n int) (domain.BatchResult, error) {
	if n <= 0 {
		n = domain.RecommendationSlots
	}

	start := time.Now()
	runID := uuid.NewString()

	// batch runs always rank against a fresh index
	idx, err := s.catalog.Rebuild(ctx)
	if err != nil {
		return domain.BatchResult{}, fmt.Errorf("rebuild catalog index: %w", err)
	}

	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return domain.BatchResult{}, fmt.Errorf("load customers: %w", err)
	}

	logger.Info("batch run started",
		"run_id", runID,
		"customers", len(customers),
		"workers", s.workers,
	)

	var (
		mu          sync.Mutex
		perCustomer = make(map[string][]string, len(customers))

		processed atomic.Int64
		skipped   atomic.Int64
		done      atomic.Int64
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.workers)

	for _, customer := range customers {
		if egCtx.Err() != nil {
			break
		}

		c := customer
		eg.Go(func() error {
			ranked := recommend.Rank(c, idx, n, recommend.VariantFast)

			if len(ranked) == 0 {
				skipped.Add(1)
				metrics.BatchCustomersSkipped.Inc()
			} else if err := s.recoRepo.Upsert(egCtx, buildRow(c.CustomerID, ranked)); err != nil {
				logger.Error("Failed to persist recommendations",
					"customer_id", c.CustomerID,
					"error", err,
				)
				skipped.Add(1)
				metrics.BatchCustomersSkipped.Inc()
			} else {
				processed.Add(1)
				metrics.BatchCustomersProcessed.Inc()

				if s.cache != nil {
					if err := s.cache.Invalidate(egCtx, c.CustomerID); err != nil {
						logger.Warn("Failed to invalidate cached recommendations", err)
					}
				}

				ids := make([]string, 0, len(ranked))
				for _, sc := range ranked {
					ids = append(ids, sc.Product.ProductID)
				}

				mu.Lock()
				perCustomer[c.CustomerID] = ids
				mu.Unlock()
			}

			if d := done.Add(1); d%int64(s.progressInterval) == 0 {
				s.logProgress(runID, d, processed.Load(), skipped.Load(), start)
			}

			return nil
		})
	}

	_ = eg.Wait()

	elapsed := time.Since(start)
	metrics.BatchRunDuration.Set(elapsed.Seconds())

	result := domain.BatchResult{
		RunID:       runID,
		Total:       len(customers),
		Processed:   int(processed.Load()),
		Skipped:     int(skipped.Load()),
		Elapsed:     elapsed,
		ElapsedMS:   elapsed.Milliseconds(),
		PerCustomer: perCustomer,
	}

	if ctx.Err() != nil {
		logger.Warn("batch run canceled, partial results kept", "run_id", runID)
	}

	// mandatory final emission
	logger.Info("batch run finished",
		"run_id", runID,
		"total", result.Total,
		"processed", result.Processed,
		"skipped", result.Skipped,
		"elapsed", elapsed.String(),
		"rate_per_sec", rate(result.Processed, elapsed),
	)

	s.saveRun(context.WithoutCancel(ctx), runID, result)

	return result, nil
}

func (s *Service) logProgress(runID string, done, processed, skipped int64, start time.Time) {
	elapsed := time.Since(start)
	logger.Info("batch progress",
		"run_id", runID,
		"done", done,
		"processed", processed,
		"skipped", skipped,
		"elapsed", elapsed.String(),
		"rate_per_sec", rate(int(processed), elapsed),
	)
}

func (s *Service) saveRun(ctx context.Context, runID string, result domain.BatchResult) {
	summary, err := json.Marshal(result)
	if err != nil {
		logger.Error("Failed to marshal batch summary", err)
		summary = nil
	}

	run := &domain.BatchRun{
		ID:        runID,
		Total:     result.Total,
		Processed: result.Processed,
		Skipped:   result.Skipped,
		ElapsedMS: result.ElapsedMS,
		Summary:   summary,
		CreatedAt: time.Now(),
	}

	if err := s.recoRepo.SaveBatchRun(ctx, run); err != nil {
		logger.Error("Failed to save batch run summary", err)
	}
}

// buildRow pads the ranked list to the fixed five-slot row; empty slots stay
// NULL as the explicit "none" marker.
func buildRow(customerID string, ranked []domain.ScoredProduct) *domain.CustomerRecommendation {
	var slots [domain.RecommendationSlots]*string
	for i := 0; i < domain.RecommendationSlots && i < len(ranked); i++ {
		id := ranked[i].Product.ProductID
		slots[i] = &id
	}

	return &domain.CustomerRecommendation{
		CustomerID:      customerID,
		Recommendation1: slots[0],
		Recommendation2: slots[1],
		Recommendation3: slots[2],
		Recommendation4: slots[3],
		Recommendation5: slots[4],
		GeneratedAt:     time.Now(),
	}
}

func rate(processed int, elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(processed) / secs
}
