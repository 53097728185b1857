package postgres

import (
	"context"
	"errors"
	"fmt"

	"mySmartShop/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecommendationRepository struct {
	DB *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{
		DB: db,
	}
}

// Upsert writes the fixed-width row for one customer, replacing any previous
// row. customer_id is the conflict key.
func (r *RecommendationRepository) Upsert(ctx context.Context, rec *domain.CustomerRecommendation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"recommendation1",
			"recommendation2",
			"recommendation3",
			"recommendation4",
			"recommendation5",
			"generated_at",
		}),
	}).Create(rec).Error
	if err != nil {
		return fmt.Errorf("failed to upsert recommendations: %w", err)
	}

	return nil
}

func (r *RecommendationRepository) GetByCustomerID(ctx context.Context, customerID string) (domain.CustomerRecommendation, error) {
	if err := ctx.Err(); err != nil {
		return domain.CustomerRecommendation{}, fmt.Errorf("context error: %w", err)
	}

	var rec domain.CustomerRecommendation

	err := r.DB.WithContext(ctx).Where("customer_id = ?", customerID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CustomerRecommendation{}, domain.ErrRecommendationNotFound
		}
		return domain.CustomerRecommendation{}, fmt.Errorf("failed to find recommendations: %w", err)
	}

	return rec, nil
}

func (r *RecommendationRepository) SaveBatchRun(ctx context.Context, run *domain.BatchRun) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to save batch run: %w", err)
	}

	return nil
}
