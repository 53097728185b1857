package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"mySmartShop/business/recommend"
	"mySmartShop/domain"
	"mySmartShop/pkg/logger"
	"mySmartShop/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate     *validator.Validate
		recoService  RecommendationService
		batchService BatchService
		timeout      time.Duration
		batchTimeout time.Duration
	}

	RecommendationService interface {
		RecommendForCustomer(ctx context.Context, customerID string, n int, variant recommend.Variant) (*domain.RecommendationResult, error)
		ExplainRecommendations(ctx context.Context, customerID string, n int) (*domain.Explanation, error)
		StoredRecommendations(ctx context.Context, customerID string) (domain.CustomerRecommendation, error)
	}

	BatchService interface {
		RunAll(ctx context.Context, n int) (domain.BatchResult, error)
	}

	RecommendationQuery struct {
		N       int    `query:"n" validate:"gte=0,lte=100"`
		Variant string `query:"variant" validate:"omitempty,oneof=fast full"`
	}

	BatchRequest struct {
		N int `json:"n" validate:"gte=0,lte=100"`
	}
)

func NewRecommendationHandler(recoService RecommendationService, batchService BatchService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:     validator.New(),
		recoService:  recoService,
		batchService: batchService,
		timeout:      10 * time.Second,
		batchTimeout: 10 * time.Minute,
	}
}

// GET /api/v1/recommendations/:customer_id?n=5&variant=full
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	customerID := c.Param("customer_id")

	var q RecommendationQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	variant, err := recommend.ParseVariant(q.Variant)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	start := time.Now()
	result, err := h.recoService.RecommendForCustomer(ctx, customerID, q.N, variant)
	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			metrics.RecommendRequests.WithLabelValues(string(variant), "not_found").Inc()
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		metrics.RecommendRequests.WithLabelValues(string(variant), "error").Inc()
		logger.Error("Failed to recommend for customer", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	// a known customer with no candidates is a valid empty result, not an error
	if len(result.Items) == 0 {
		metrics.RecommendRequests.WithLabelValues(string(variant), "empty").Inc()
		return c.JSON(http.StatusOK, map[string]interface{}{
			"message": "no recommendations available for this customer",
			"result":  result,
		})
	}

	metrics.RecommendRequests.WithLabelValues(string(variant), "served").Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// GET /api/v1/recommendations/:customer_id/explanation
func (h *RecommendationHandler) Explain(c echo.Context) error {
	customerID := c.Param("customer_id")

	var q RecommendationQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	explanation, err := h.recoService.ExplainRecommendations(ctx, customerID, q.N)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to explain recommendations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(explanation))
}

// GET /api/v1/recommendations/:customer_id/stored
func (h *RecommendationHandler) Stored(c echo.Context) error {
	customerID := c.Param("customer_id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stored, err := h.recoService.StoredRecommendations(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrRecommendationNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to get stored recommendations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stored))
}

// POST /api/v1/admin/batch runs the full batch pass synchronously and
// returns the run statistics.
func (h *RecommendationHandler) RunBatch(c echo.Context) error {
	var req BatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.batchTimeout)
	defer cancel()

	result, err := h.batchService.RunAll(ctx, req.N)
	if err != nil {
		logger.Error("Batch run failed", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	// per-customer detail is for logs, not API payloads
	result.PerCustomer = nil

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}
