package recommend

import (
	"context"
	"fmt"
	"time"

	"mySmartShop/business/catalog"
	"mySmartShop/domain"
	"mySmartShop/pkg/logger"
	"mySmartShop/pkg/metrics"
)

// CustomerRepository contract interface
type CustomerRepository interface {
	FindByCustomerID(ctx context.Context, customerID string) (domain.Customer, error)
}

// RecommendationRepository contract interface
type RecommendationRepository interface {
	GetByCustomerID(ctx context.Context, customerID string) (domain.CustomerRecommendation, error)
}

// ResultCache caches served recommendation results per customer. Optional:
// a nil cache disables caching without changing behavior.
type ResultCache interface {
	Get(ctx context.Context, customerID string, n int, variant string) (*domain.RecommendationResult, error)
	Set(ctx context.Context, result *domain.RecommendationResult, n int, variant string) error
	Invalidate(ctx context.Context, customerID string) error
}

// NarrationRepository generates free-text explanations. It is an opaque
// external collaborator; failures never affect ranking results.
type NarrationRepository interface {
	Explain(ctx context.Context, customer domain.Customer, prefs domain.PreferenceSummary, items []domain.RecommendationItem) (string, error)
}

type Service struct {
	customerRepo     CustomerRepository
	recoRepo         RecommendationRepository
	catalog          *catalog.Service
	cache            ResultCache
	narrator         NarrationRepository
	feedbackTokenKey string
	defaultN         int
}

func NewService(
	customerRepo CustomerRepository,
	recoRepo RecommendationRepository,
	catalogService *catalog.Service,
	cache ResultCache,
	narrator NarrationRepository,
	feedbackTokenKey string,
	defaultN int,
) *Service {
	if defaultN <= 0 {
		defaultN = domain.RecommendationSlots
	}

	return &Service{
		customerRepo:     customerRepo,
		recoRepo:         recoRepo,
		catalog:          catalogService,
		cache:            cache,
		narrator:         narrator,
		feedbackTokenKey: feedbackTokenKey,
		defaultN:         defaultN,
	}
}

// RecommendForCustomer is the interactive entry point: it resolves the
// customer, ranks the candidate pool and returns the served result.
//
// An unknown customer yields domain.ErrCustomerNotFound; a known customer
// with no candidate products yields a result with an empty item list.
func (s *Service) RecommendForCustomer(ctx context.Context, customerID string, n int, variant Variant) (*domain.RecommendationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if customerID == "" {
		return nil, domain.ErrCustomerNotFound
	}
	if n <= 0 {
		n = s.defaultN
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, customerID, n, string(variant))
		if err == nil && cached != nil {
			metrics.RecommendCacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.RecommendCacheLookups.WithLabelValues("miss").Inc()
	}

	customer, err := s.customerRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	idx, err := s.catalog.Index(ctx)
	if err != nil {
		return nil, err
	}

	prefs := ResolvePreferences(customer, idx)
	ranked := RankWithPreferences(customer, prefs, idx, n, variant)

	result := &domain.RecommendationResult{
		CustomerID:  customerID,
		Preferences: prefs,
		Items:       make([]domain.RecommendationItem, 0, len(ranked)),
		GeneratedAt: time.Now(),
	}

	for _, sc := range ranked {
		item := domain.RecommendationItem{
			ProductID: sc.Product.ProductID,
			Category:  sc.Product.Category,
			Price:     sc.Product.Price,
			Rating:    sc.Product.Rating,
			Score:     sc.Score,
		}

		if s.feedbackTokenKey != "" {
			token, err := BuildFeedbackToken(customerID, sc.Product.ProductID, s.feedbackTokenKey)
			if err != nil {
				logger.Warn("Failed to build feedback token", err)
			} else {
				item.FeedbackToken = token
			}
		}

		result.Items = append(result.Items, item)
	}

	logger.Debug("recommendations served",
		"customer_id", customerID,
		"variant", string(variant),
		"candidates", len(ranked),
		"preferred_categories", prefs.PreferredCategories,
	)

	if s.cache != nil && len(result.Items) > 0 {
		if err := s.cache.Set(ctx, result, n, string(variant)); err != nil {
			logger.Warn("Failed to cache recommendation result", err)
		}
	}

	return result, nil
}

// ExplainRecommendations serves the narration for a customer's current
// recommendation list. Narration failures degrade the response (Available
// false, empty text) instead of failing the call.
func (s *Service) ExplainRecommendations(ctx context.Context, customerID string, n int) (*domain.Explanation, error) {
	result, err := s.RecommendForCustomer(ctx, customerID, n, VariantFull)
	if err != nil {
		return nil, err
	}

	explanation := &domain.Explanation{CustomerID: customerID}

	if s.narrator == nil || len(result.Items) == 0 {
		return explanation, nil
	}

	customer, err := s.customerRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	text, err := s.narrator.Explain(ctx, customer, result.Preferences, result.Items)
	if err != nil {
		metrics.NarrationFailures.Inc()
		logger.Warn("Narration service failed, serving degraded response", err)
		return explanation, nil
	}

	explanation.Text = text
	explanation.Available = true

	return explanation, nil
}

// StoredRecommendations returns the persisted fixed-width row written by the
// last batch run for this customer.
func (s *Service) StoredRecommendations(ctx context.Context, customerID string) (domain.CustomerRecommendation, error) {
	if err := ctx.Err(); err != nil {
		return domain.CustomerRecommendation{}, fmt.Errorf("context error: %w", err)
	}

	return s.recoRepo.GetByCustomerID(ctx, customerID)
}
