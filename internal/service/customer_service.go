package service

import (
	"log/slog"
	"time"

	"bank-ledger/internal/domain"
	"bank-ledger/internal/errors"
	"bank-ledger/internal/repository"
)

type CustomerService struct {
	store  *repository.Store
	logger *slog.Logger
}

func NewCustomerService(store *repository.Store, logger *slog.Logger) *CustomerService {
	return &CustomerService{
		store:  store,
		logger: logger,
	}
}

type CreateCustomerRequest struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	DateOfBirth time.Time
	Address     string
}

// CreateCustomer registers a new customer. The email uniqueness check runs
// before field validation and ignores case.
func (s *CustomerService) CreateCustomer(req *CreateCustomerRequest) (*domain.Customer, error) {
	if req == nil {
		return nil, errors.NewAppError(errors.InvalidInput, "customer request is required")
	}

	s.logger.Info("Creating customer", "email", req.Email)

	var saved *domain.Customer
	err := s.store.WithLocks([]string{repository.EmailLockKey(req.Email)}, func(store *repository.Store) error {
		if store.Customer().ExistsByEmail(req.Email) {
			return errors.ErrDuplicateEmail.WithDetails("email: " + req.Email)
		}

		customer, err := domain.NewCustomer(
			req.FirstName,
			req.LastName,
			req.Email,
			req.PhoneNumber,
			req.DateOfBirth,
			req.Address,
		)
		if err != nil {
			return err
		}

		saved, err = store.Customer().Save(customer)
		return err
	})
	if err != nil {
		s.logger.Warn("Customer creation failed", "email", req.Email, "error", err)
		return nil, err
	}

	s.logger.Info("Customer created successfully", "customer_id", saved.ID)
	return saved, nil
}

func (s *CustomerService) GetCustomer(customerID string) (*domain.Customer, error) {
	customer, ok := s.store.Customer().FindByID(customerID)
	if !ok {
		return nil, errors.ErrCustomerNotFound.WithDetails("customer ID: " + customerID)
	}
	return customer, nil
}

func (s *CustomerService) GetCustomerByEmail(email string) (*domain.Customer, error) {
	customer, ok := s.store.Customer().FindByEmail(email)
	if !ok {
		return nil, errors.ErrCustomerNotFound.WithDetails("email: " + email)
	}
	return customer, nil
}

func (s *CustomerService) GetAllCustomers() []*domain.Customer {
	return s.store.Customer().FindAll()
}

func (s *CustomerService) GetAllActiveCustomers() []*domain.Customer {
	return s.store.Customer().FindAllActive()
}

func (s *CustomerService) ActivateCustomer(customerID string) (*domain.Customer, error) {
	return s.setActive(customerID, true)
}

func (s *CustomerService) DeactivateCustomer(customerID string) (*domain.Customer, error) {
	return s.setActive(customerID, false)
}

func (s *CustomerService) ExistsByID(customerID string) bool {
	return s.store.Customer().ExistsByID(customerID)
}

func (s *CustomerService) GetTotalCustomerCount() int {
	return s.store.Customer().Count()
}

func (s *CustomerService) setActive(customerID string, active bool) (*domain.Customer, error) {
	customer, err := s.GetCustomer(customerID)
	if err != nil {
		return nil, err
	}

	// Same lock as creation so a status change cannot race a duplicate check.
	var saved *domain.Customer
	err = s.store.WithLocks([]string{repository.EmailLockKey(customer.Email)}, func(store *repository.Store) error {
		current, ok := store.Customer().FindByID(customerID)
		if !ok {
			return errors.ErrCustomerNotFound.WithDetails("customer ID: " + customerID)
		}
		if active {
			current.Activate()
		} else {
			current.Deactivate()
		}
		saved, err = store.Customer().Save(current)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Customer status changed", "customer_id", customerID, "active", active)
	return saved, nil
}
