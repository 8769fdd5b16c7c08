package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"bank-ledger/internal/errors"
)

const MinimumCustomerAge = 18

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

type Customer struct {
	ID          string    `json:"customer_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Address     string    `json:"address"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCustomer validates the contact fields and the minimum age and
// returns an active customer with a generated ID.
func NewCustomer(firstName, lastName, email, phoneNumber string, dateOfBirth time.Time, address string) (*Customer, error) {
	switch {
	case strings.TrimSpace(firstName) == "":
		return nil, errors.NewAppError(errors.InvalidInput, "first name is required")
	case strings.TrimSpace(lastName) == "":
		return nil, errors.NewAppError(errors.InvalidInput, "last name is required")
	case !emailPattern.MatchString(email):
		return nil, errors.NewAppError(errors.InvalidInput, "valid email is required")
	case !phonePattern.MatchString(phoneNumber):
		return nil, errors.NewAppError(errors.InvalidInput, "valid phone number is required")
	case dateOfBirth.IsZero():
		return nil, errors.NewAppError(errors.InvalidInput, "date of birth is required")
	}

	now := time.Now()
	if dateOfBirth.After(now.AddDate(-MinimumCustomerAge, 0, 0)) {
		return nil, errors.NewAppErrorf(errors.InvalidInput, "customer must be at least %d years old", MinimumCustomerAge)
	}

	return &Customer{
		ID:          uuid.NewString(),
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		PhoneNumber: phoneNumber,
		DateOfBirth: dateOfBirth,
		Address:     address,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Age returns completed years at the given instant.
func (c *Customer) Age(at time.Time) int {
	years := at.Year() - c.DateOfBirth.Year()
	month, day := c.DateOfBirth.Month(), c.DateOfBirth.Day()
	if at.Month() < month || (at.Month() == month && at.Day() < day) {
		years--
	}
	return years
}

func (c *Customer) Activate() {
	c.Active = true
	c.UpdatedAt = time.Now()
}

func (c *Customer) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now()
}

type CustomerRepository interface {
	Save(customer *Customer) (*Customer, error)
	FindByID(id string) (*Customer, bool)
	FindByEmail(email string) (*Customer, bool)
	FindAll() []*Customer
	FindAllActive() []*Customer
	ExistsByID(id string) bool
	ExistsByEmail(email string) bool
	Count() int
}
