package postgres

import (
	"context"
	"errors"
	"fmt"

	"mySmartShop/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) FindByProductID(ctx context.Context, productID string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product

	err := r.DB.WithContext(ctx).Where("product_id = ?", productID).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).Order("id").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	// Cek apakah product exists
	var existingProduct domain.Product
	if err := r.DB.WithContext(ctx).Where("product_id = ?", product.ProductID).First(&existingProduct).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("failed to find product: %w", err)
	}

	// Update semua field yang bisa diubah
	updateData := map[string]interface{}{
		"category":                   product.Category,
		"subcategory":                product.Subcategory,
		"price":                      product.Price,
		"brand":                      product.Brand,
		"average_rating_similar":     product.AverageRatingSimilar,
		"rating":                     product.Rating,
		"sentiment_score":            product.SentimentScore,
		"holiday":                    product.Holiday,
		"season":                     product.Season,
		"geographical_location":      product.GeographicalLocation,
		"similar_products":           product.SimilarProducts,
		"recommendation_probability": product.RecommendationProbability,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Product{}).Where("product_id = ?", product.ProductID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, productID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("product_id = ?", productID).Delete(&domain.Product{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

// ReplaceAll swaps the whole products table for the given set in one
// transaction. Used by CSV ingestion.
func (r *ProductRepository) ReplaceAll(ctx context.Context, products []domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.Product{}).Error; err != nil {
			return fmt.Errorf("failed to clear products: %w", err)
		}

		if len(products) == 0 {
			return nil
		}

		if err := tx.CreateInBatches(products, 500).Error; err != nil {
			return fmt.Errorf("failed to insert products: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace products: %w", err)
	}

	return nil
}
