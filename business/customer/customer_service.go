package customer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mySmartShop/domain"
	"mySmartShop/pkg/logger"
)

// CustomerRepository contract interface
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	FindByCustomerID(ctx context.Context, customerID string) (domain.Customer, error)
	FindAll(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
}

type customerService struct {
	customerRepo CustomerRepository
}

func NewCustomerService(customerRepo CustomerRepository) *customerService {
	return &customerService{
		customerRepo: customerRepo,
	}
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	if customerID == "" {
		logger.Error("invalid customer id")
		return nil, domain.ErrCustomerNotFound
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get customer")
		return nil, fmt.Errorf("context error: %w", err)
	}

	customer, err := s.customerRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		logger.Error("failed to find customer by id", err)
		return nil, err
	}

	return &customer, nil
}

func (s *customerService) GetAllCustomers(ctx context.Context) ([]domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all customers")
		return nil, fmt.Errorf("context error: %w", err)
	}

	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all customers", err)
		return nil, err
	}

	return customers, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create customer")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if customer.CustomerID == "" {
		logger.Error("Invalid customer data: customer id is required")
		return nil, errors.New("customer id is required")
	}

	if customer.AvgOrderValue < 0 {
		logger.Error("Invalid customer data: avg order value cannot be negative")
		return nil, errors.New("avg order value cannot be negative")
	}

	// histories default to empty JSON arrays so downstream parsing stays strict
	if len(customer.BrowsingHistory) == 0 {
		customer.BrowsingHistory = []byte("[]")
	}
	if len(customer.PurchaseHistory) == 0 {
		customer.PurchaseHistory = []byte("[]")
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		logger.Error("failed to create new customer", err)
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	logger.Info("customer created successfully", "customer_id", customer.CustomerID)

	return customer, nil
}

// AppendHistory appends new browsing or purchase tokens to a customer's
// history fields, keeping them strict JSON arrays.
func (s *customerService) AppendHistory(ctx context.Context, customerID string, browsed, purchased []string) (*domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when appending history")
		return nil, fmt.Errorf("context error: %w", err)
	}

	customer, err := s.customerRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		logger.Error("customer not found", err)
		return nil, err
	}

	if len(browsed) > 0 {
		updated, err := appendTokens(customer.BrowsingHistory, browsed)
		if err != nil {
			logger.Error("failed to append browsing history", err)
			return nil, err
		}
		customer.BrowsingHistory = updated
	}

	if len(purchased) > 0 {
		updated, err := appendTokens(customer.PurchaseHistory, purchased)
		if err != nil {
			logger.Error("failed to append purchase history", err)
			return nil, err
		}
		customer.PurchaseHistory = updated
	}

	if err := s.customerRepo.Update(ctx, &customer); err != nil {
		logger.Error("failed to update customer history", err)
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return &customer, nil
}

func appendTokens(raw []byte, tokens []string) ([]byte, error) {
	existing := []string{}
	if len(raw) > 0 {
		// malformed stored history is replaced, not propagated
		_ = json.Unmarshal(raw, &existing)
	}

	existing = append(existing, tokens...)

	return json.Marshal(existing)
}
