package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mySmartShop/business/catalog"
	"mySmartShop/domain"
	"mySmartShop/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByProductID(ctx context.Context, productID string) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, productID string) error
}

type productService struct {
	productRepo ProductRepository
	catalog     *catalog.Service
}

func NewProductService(productRepo ProductRepository, catalogService *catalog.Service) *productService {
	return &productService{
		productRepo: productRepo,
		catalog:     catalogService,
	}
}

func (s *productService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all products")
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all products", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	if productID == "" {
		logger.Error("invalid product id")
		return nil, domain.ErrProductNotFound
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByProductID(ctx, productID)
	if err != nil {
		logger.Error("failed to find product by id", err)
		return nil, err
	}

	return &product, nil
}

// GetSimilarProducts resolves a product's similar-product list against the
// catalog. Unknown entries in the list are dropped silently.
func (s *productService) GetSimilarProducts(ctx context.Context, productID string) ([]domain.Product, error) {
	product, err := s.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	var similarIDs []string
	if len(product.SimilarProducts) > 0 {
		if err := json.Unmarshal(product.SimilarProducts, &similarIDs); err != nil {
			logger.Warn("Malformed similar products list", "product_id", productID)
			return []domain.Product{}, nil
		}
	}

	idx, err := s.catalog.Index(ctx)
	if err != nil {
		return nil, err
	}

	similar := make([]domain.Product, 0, len(similarIDs))
	for _, id := range similarIDs {
		if p, ok := idx.ProductByID(id); ok {
			similar = append(similar, p)
		}
	}

	return similar, nil
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if product.ProductID == "" {
		logger.Error("Invalid product data: product id is required")
		return nil, errors.New("product id is required")
	}

	if product.Category == "" {
		logger.Error("Invalid product data: category is required")
		return nil, errors.New("category is required")
	}

	if product.Price < 0 {
		logger.Error("Invalid product data: price cannot be negative")
		return nil, errors.New("price cannot be negative")
	}

	if product.Rating < 0 || product.Rating > 5 {
		logger.Error("Invalid product data: rating must be between 0 and 5")
		return nil, errors.New("rating must be between 0 and 5")
	}

	if product.SentimentScore < -1 || product.SentimentScore > 1 {
		logger.Error("Invalid product data: sentiment score must be between -1 and 1")
		return nil, errors.New("sentiment score must be between -1 and 1")
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create new product", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.catalog.Invalidate()
	logger.Info("product created successfully", "product_id", product.ProductID)

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.ProductID == "" {
		logger.Error("Invalid product data: product id is required")
		return nil, errors.New("product id is required")
	}

	// Verify product exists
	if _, err := s.productRepo.FindByProductID(ctx, product.ProductID); err != nil {
		logger.Error("product not found", err)
		return nil, domain.ErrProductNotFound
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("failed to update product", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.catalog.Invalidate()

	// Get updated product from database
	updatedProduct, err := s.productRepo.FindByProductID(ctx, product.ProductID)
	if err != nil {
		logger.Error("failed to fetch updated product", err)
		return nil, fmt.Errorf("failed to fetch updated product: %w", err)
	}

	logger.Info("product updated success", "product_id", product.ProductID)

	return &updatedProduct, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	if productID == "" {
		logger.Error("Invalid product id when deleting product")
		return domain.ErrProductNotFound
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting product")
		return fmt.Errorf("context error: %w", err)
	}

	// Verify product exists
	if _, err := s.productRepo.FindByProductID(ctx, productID); err != nil {
		logger.Error("product not found", err)
		return domain.ErrProductNotFound
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		logger.Error("failed to delete product", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.catalog.Invalidate()
	logger.Info("product deleted success", "product_id", productID)

	return nil
}
