package catalog

import (
	"context"
	"fmt"
	"sync"

	"mySmartShop/domain"
	"mySmartShop/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
}

// CustomerRepository contract interface
type CustomerRepository interface {
	FindAll(ctx context.Context) ([]domain.Customer, error)
}

// Service is the catalog provider: it loads the full product and customer
// collections and caches the built Index until invalidated.
type Service struct {
	productRepo  ProductRepository
	customerRepo CustomerRepository

	mu    sync.RWMutex
	index *Index
}

func NewService(productRepo ProductRepository, customerRepo CustomerRepository) *Service {
	return &Service{
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// Index returns the cached catalog index, building it on first use.
func (s *Service) Index(ctx context.Context) (*Index, error) {
	s.mu.RLock()
	idx := s.index
	s.mu.RUnlock()

	if idx != nil {
		return idx, nil
	}

	return s.Rebuild(ctx)
}

// Rebuild constructs a fresh index from the store and replaces the cached one.
func (s *Service) Rebuild(ctx context.Context) (*Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to load products for catalog index", err)
		return nil, fmt.Errorf("load products: %w", err)
	}

	idx := BuildIndex(products)

	s.mu.Lock()
	s.index = idx
	s.mu.Unlock()

	logger.Info("catalog index built",
		"products", idx.Len(),
		"categories", len(idx.Categories()),
	)

	return idx, nil
}

// Invalidate drops the cached index; the next Index call rebuilds it.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.index = nil
	s.mu.Unlock()
}

// Customers loads the full customer collection.
func (s *Service) Customers(ctx context.Context) ([]domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to load customers", err)
		return nil, fmt.Errorf("load customers: %w", err)
	}

	return customers, nil
}
