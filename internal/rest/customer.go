package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"mySmartShop/domain"
	"mySmartShop/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CustomerService interface {
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	GetAllCustomers(ctx context.Context) ([]domain.Customer, error)
	CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	AppendHistory(ctx context.Context, customerID string, browsed, purchased []string) (*domain.Customer, error)
}

type CustomerHandler struct {
	customerService CustomerService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewCustomerHandler(customerService CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type CreateCustomerRequest struct {
	CustomerID      string   `json:"customer_id" validate:"required"`
	Age             int      `json:"age" validate:"gte=0"`
	Gender          string   `json:"gender"`
	Location        string   `json:"location"`
	BrowsingHistory []string `json:"browsing_history"`
	PurchaseHistory []string `json:"purchase_history"`
	CustomerSegment string   `json:"customer_segment"`
	AvgOrderValue   float64  `json:"avg_order_value" validate:"gte=0"`
	Holiday         string   `json:"holiday"`
	Season          string   `json:"season"`
}

type AppendHistoryRequest struct {
	Browsed   []string `json:"browsed"`
	Purchased []string `json:"purchased"`
}

func (h *CustomerHandler) GetAllCustomers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	customers, err := h.customerService.GetAllCustomers(ctx)
	if err != nil {
		logger.Error("Failed to find all customers", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(customers))
}

func (h *CustomerHandler) GetCustomerByID(c echo.Context) error {
	customerID := c.Param("customer_id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	customer, err := h.customerService.GetCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(customer))
}

func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	var req CreateCustomerRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate customer request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	customer := &domain.Customer{
		CustomerID:      req.CustomerID,
		Age:             req.Age,
		Gender:          req.Gender,
		Location:        req.Location,
		BrowsingHistory: encodeStringList(req.BrowsingHistory),
		PurchaseHistory: encodeStringList(req.PurchaseHistory),
		CustomerSegment: req.CustomerSegment,
		AvgOrderValue:   req.AvgOrderValue,
		Holiday:         req.Holiday,
		Season:          req.Season,
	}

	newCustomer, err := h.customerService.CreateCustomer(ctx, customer)
	if err != nil {
		logger.Error("Failed to create customer", err)
		if isValidationError(err) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(newCustomer))
}

// AppendHistory records browsed or purchased category tokens for a customer.
func (h *CustomerHandler) AppendHistory(c echo.Context) error {
	customerID := c.Param("customer_id")

	var req AppendHistoryRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if len(req.Browsed) == 0 && len(req.Purchased) == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "nothing to append"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	customer, err := h.customerService.AppendHistory(ctx, customerID, req.Browsed, req.Purchased)
	if err != nil {
		logger.Error("Failed to append customer history", err)
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(customer))
}
