package repository

import (
	"log/slog"
	"strings"

	"bank-ledger/internal/domain"
	"bank-ledger/internal/errors"
)

type customerRepository struct {
	rows   *table[domain.Customer]
	logger *slog.Logger
}

func NewCustomerRepository(logger *slog.Logger) domain.CustomerRepository {
	return newCustomerRepository(logger)
}

func newCustomerRepository(logger *slog.Logger) *customerRepository {
	return &customerRepository{
		rows:   newTable[domain.Customer](),
		logger: logger,
	}
}

func (r *customerRepository) Save(customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, errors.NewAppError(errors.InternalError, "cannot save nil customer")
	}
	if customer.ID == "" {
		return nil, errors.NewAppError(errors.InvalidIdentifier, "customer ID is required")
	}

	stored := r.rows.put(customer.ID, *customer)
	r.logger.Debug("Customer saved", "customer_id", stored.ID)
	return &stored, nil
}

func (r *customerRepository) FindByID(id string) (*domain.Customer, bool) {
	customer, ok := r.rows.get(id)
	if !ok {
		return nil, false
	}
	return &customer, true
}

// FindByEmail matches case-insensitively.
func (r *customerRepository) FindByEmail(email string) (*domain.Customer, bool) {
	matches := r.rows.filter(func(c domain.Customer) bool {
		return strings.EqualFold(c.Email, email)
	})
	if len(matches) == 0 {
		return nil, false
	}
	return &matches[0], true
}

func (r *customerRepository) FindAll() []*domain.Customer {
	return pointers(r.rows.filter(nil))
}

func (r *customerRepository) FindAllActive() []*domain.Customer {
	return pointers(r.rows.filter(func(c domain.Customer) bool {
		return c.Active
	}))
}

func (r *customerRepository) ExistsByID(id string) bool {
	return r.rows.has(id)
}

func (r *customerRepository) ExistsByEmail(email string) bool {
	_, ok := r.FindByEmail(email)
	return ok
}

func (r *customerRepository) Count() int {
	return r.rows.len()
}
