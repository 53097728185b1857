package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"mySmartShop/domain"
	"mySmartShop/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type FeedbackService interface {
	SubmitFeedback(ctx context.Context, fb domain.Feedback) (*domain.FeedbackAck, error)
}

type FeedbackHandler struct {
	feedbackService FeedbackService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewFeedbackHandler(feedbackService FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		validator:       validator.New(),
		// sentiment scoring may call out to the language model
		timeout: 60 * time.Second,
	}
}

// POST /api/v1/recommendations/feedback
func (h *FeedbackHandler) SubmitFeedback(c echo.Context) error {
	var req domain.Feedback

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate feedback request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ack, err := h.feedbackService.SubmitFeedback(ctx, req)
	if err != nil {
		logger.Error("Failed to submit feedback", err)
		if strings.Contains(err.Error(), "invalid feedback token") {
			return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
		}
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if isValidationError(err) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(ack))
}
