package postgres

import (
	"context"
	"errors"
	"fmt"

	"mySmartShop/domain"

	"gorm.io/gorm"
)

type CustomerRepository struct {
	DB *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{
		DB: db,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

func (r *CustomerRepository) FindByCustomerID(ctx context.Context, customerID string) (domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Customer{}, fmt.Errorf("context error: %w", err)
	}

	var customer domain.Customer

	err := r.DB.WithContext(ctx).Where("customer_id = ?", customerID).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("failed to find customer: %w", err)
	}

	return customer, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var customers []domain.Customer
	err := r.DB.WithContext(ctx).Order("id").Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find customers: %w", err)
	}

	return customers, nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"age":              customer.Age,
		"gender":           customer.Gender,
		"location":         customer.Location,
		"browsing_history": customer.BrowsingHistory,
		"purchase_history": customer.PurchaseHistory,
		"customer_segment": customer.CustomerSegment,
		"avg_order_value":  customer.AvgOrderValue,
		"holiday":          customer.Holiday,
		"season":           customer.Season,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Customer{}).Where("customer_id = ?", customer.CustomerID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCustomerNotFound
	}

	return nil
}

// ReplaceAll swaps the whole customers table for the given set in one
// transaction. Used by CSV ingestion.
func (r *CustomerRepository) ReplaceAll(ctx context.Context, customers []domain.Customer) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.Customer{}).Error; err != nil {
			return fmt.Errorf("failed to clear customers: %w", err)
		}

		if len(customers) == 0 {
			return nil
		}

		if err := tx.CreateInBatches(customers, 500).Error; err != nil {
			return fmt.Errorf("failed to insert customers: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace customers: %w", err)
	}

	return nil
}
