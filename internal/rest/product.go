package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"mySmartShop/domain"
	"mySmartShop/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type ProductService interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	GetSimilarProducts(ctx context.Context, productID string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type CreateProductRequest struct {
	ProductID                 string   `json:"product_id" validate:"required"`
	Category                  string   `json:"category" validate:"required"`
	Subcategory               string   `json:"subcategory"`
	Price                     float64  `json:"price" validate:"gte=0"`
	Brand                     string   `json:"brand"`
	AverageRatingSimilar      float64  `json:"average_rating_similar" validate:"gte=0,lte=5"`
	Rating                    float64  `json:"rating" validate:"gte=0,lte=5"`
	SentimentScore            float64  `json:"sentiment_score" validate:"gte=-1,lte=1"`
	Holiday                   string   `json:"holiday"`
	Season                    string   `json:"season"`
	GeographicalLocation      string   `json:"geographical_location"`
	SimilarProducts           []string `json:"similar_products"`
	RecommendationProbability float64  `json:"recommendation_probability" validate:"gte=0,lte=1"`
}

type UpdateProductRequest struct {
	Category                  string   `json:"category" validate:"required"`
	Subcategory               string   `json:"subcategory"`
	Price                     float64  `json:"price" validate:"gte=0"`
	Brand                     string   `json:"brand"`
	AverageRatingSimilar      float64  `json:"average_rating_similar" validate:"gte=0,lte=5"`
	Rating                    float64  `json:"rating" validate:"gte=0,lte=5"`
	SentimentScore            float64  `json:"sentiment_score" validate:"gte=-1,lte=1"`
	Holiday                   string   `json:"holiday"`
	Season                    string   `json:"season"`
	GeographicalLocation      string   `json:"geographical_location"`
	SimilarProducts           []string `json:"similar_products"`
	RecommendationProbability float64  `json:"recommendation_probability" validate:"gte=0,lte=1"`
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetAllProducts(ctx)
	if err != nil {
		logger.Error("Failed to find all products", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	productID := c.Param("product_id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(product))
}

// GetSimilarProducts resolves the product's similar-product list.
func (h *ProductHandler) GetSimilarProducts(c echo.Context) error {
	productID := c.Param("product_id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	similar, err := h.productService.GetSimilarProducts(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(similar))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product := &domain.Product{
		ProductID:                 req.ProductID,
		Category:                  req.Category,
		Subcategory:               req.Subcategory,
		Price:                     req.Price,
		Brand:                     req.Brand,
		AverageRatingSimilar:      req.AverageRatingSimilar,
		Rating:                    req.Rating,
		SentimentScore:            req.SentimentScore,
		Holiday:                   req.Holiday,
		Season:                    req.Season,
		GeographicalLocation:      req.GeographicalLocation,
		SimilarProducts:           encodeStringList(req.SimilarProducts),
		RecommendationProbability: req.RecommendationProbability,
	}

	newProduct, err := h.productService.CreateProduct(ctx, product)
	if err != nil {
		logger.Error("Failed to create product", err)
		if isValidationError(err) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(newProduct))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	productID := c.Param("product_id")

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product := &domain.Product{
		ProductID:                 productID,
		Category:                  req.Category,
		Subcategory:               req.Subcategory,
		Price:                     req.Price,
		Brand:                     req.Brand,
		AverageRatingSimilar:      req.AverageRatingSimilar,
		Rating:                    req.Rating,
		SentimentScore:            req.SentimentScore,
		Holiday:                   req.Holiday,
		Season:                    req.Season,
		GeographicalLocation:      req.GeographicalLocation,
		SimilarProducts:           encodeStringList(req.SimilarProducts),
		RecommendationProbability: req.RecommendationProbability,
	}

	updatedProduct, err := h.productService.UpdateProduct(ctx, product)
	if err != nil {
		logger.Error("Failed to update product", err)
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if isValidationError(err) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updatedProduct))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	productID := c.Param("product_id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err := h.productService.DeleteProduct(ctx, productID)
	if err != nil {
		logger.Error("Failed to delete product", err)
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "product successfully deleted",
		"product_id": productID,
	})
}

func encodeStringList(list []string) datatypes.JSON {
	if list == nil {
		list = []string{}
	}

	encoded, err := json.Marshal(list)
	if err != nil {
		return datatypes.JSON("[]")
	}

	return datatypes.JSON(encoded)
}

func isValidationError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "is required") ||
		strings.Contains(msg, "cannot be negative") ||
		strings.Contains(msg, "must be between")
}
