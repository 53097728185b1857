package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mySmartShop/business/catalog"
	"mySmartShop/business/recommend"
	"mySmartShop/domain"
	"mySmartShop/pkg/logger"
)

// sentimentAlpha is the EWMA weight of a single new feedback against the
// product's accumulated sentiment score.
const sentimentAlpha = 0.3

// ProductRepository contract interface
type ProductRepository interface {
	FindByProductID(ctx context.Context, productID string) (domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
}

// SentimentRepository scores free-text comments in [-1, 1]. It is an opaque
// external collaborator; failures fall back to a neutral score.
type SentimentRepository interface {
	SentimentScore(ctx context.Context, text string) (float64, error)
}

type feedbackService struct {
	productRepo ProductRepository
	sentiment   SentimentRepository
	catalog     *catalog.Service
	tokenKey    string
}

func NewFeedbackService(productRepo ProductRepository, sentiment SentimentRepository, catalogService *catalog.Service, tokenKey string) *feedbackService {
	return &feedbackService{
		productRepo: productRepo,
		sentiment:   sentiment,
		catalog:     catalogService,
		tokenKey:    tokenKey,
	}
}

// SubmitFeedback verifies the feedback token, scores the comment and folds
// the result into the product's sentiment score. The token is the only
// accepted proof that the product was actually recommended to this customer.
func (s *feedbackService) SubmitFeedback(ctx context.Context, fb domain.Feedback) (*domain.FeedbackAck, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if fb.Rating < 0 || fb.Rating > 5 {
		logger.Error("Invalid feedback data: rating must be between 0 and 5")
		return nil, errors.New("rating must be between 0 and 5")
	}

	customerID, productID, err := recommend.ParseFeedbackToken(fb.Token, s.tokenKey)
	if err != nil {
		logger.Error("rejected feedback with invalid token", err)
		return nil, err
	}

	// Cek apakah product exists
	product, err := s.productRepo.FindByProductID(ctx, productID)
	if err != nil {
		logger.Error("feedback for unknown product", err)
		return nil, err
	}

	score := s.scoreComment(ctx, fb.Comment)

	product.SentimentScore = clampSentiment((1-sentimentAlpha)*product.SentimentScore + sentimentAlpha*score)

	if err := s.productRepo.Update(ctx, &product); err != nil {
		logger.Error("failed to update product sentiment", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.catalog.Invalidate()

	logger.Info("feedback recorded",
		"customer_id", customerID,
		"product_id", productID,
		"rating", fb.Rating,
		"sentiment", score,
	)

	return &domain.FeedbackAck{
		CustomerID: customerID,
		ProductID:  productID,
		Sentiment:  score,
		ReceivedAt: time.Now(),
	}, nil
}

func (s *feedbackService) scoreComment(ctx context.Context, comment string) float64 {
	if comment == "" || s.sentiment == nil {
		return 0
	}

	score, err := s.sentiment.SentimentScore(ctx, comment)
	if err != nil {
		logger.Warn("Sentiment service failed, using neutral score", err)
		return 0
	}

	return clampSentiment(score)
}

func clampSentiment(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
