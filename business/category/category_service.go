package category

import (
	"context"
	"fmt"

	"mySmartShop/business/catalog"
	"mySmartShop/pkg/logger"
)

// Categories are derived from the product catalog; there is no separate
// categories table.

type categoryService struct {
	catalog *catalog.Service
}

func NewCategoryService(catalogService *catalog.Service) *categoryService {
	return &categoryService{
		catalog: catalogService,
	}
}

// GetAllCategories lists the valid category names in catalog order.
func (s *categoryService) GetAllCategories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all categories")
		return nil, fmt.Errorf("context error: %w", err)
	}

	idx, err := s.catalog.Index(ctx)
	if err != nil {
		logger.Error("Failed to load catalog index", err)
		return nil, err
	}

	return idx.Categories(), nil
}
