package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bank-ledger/internal/errors"
)

type AccountType string

const (
	AccountTypeSavings      AccountType = "SAVINGS"
	AccountTypeChecking     AccountType = "CHECKING"
	AccountTypeFixedDeposit AccountType = "FIXED_DEPOSIT"
	AccountTypeMoneyMarket  AccountType = "MONEY_MARKET"
)

type accountTypeInfo struct {
	displayName  string
	interestRate decimal.Decimal
}

var accountTypes = map[AccountType]accountTypeInfo{
	AccountTypeSavings:      {"Savings Account", decimal.RequireFromString("0.03")},
	AccountTypeChecking:     {"Checking Account", decimal.RequireFromString("0.01")},
	AccountTypeFixedDeposit: {"Fixed Deposit", decimal.RequireFromString("0.06")},
	AccountTypeMoneyMarket:  {"Money Market Account", decimal.RequireFromString("0.04")},
}

func (t AccountType) IsValid() bool {
	_, ok := accountTypes[t]
	return ok
}

// InterestRate is the fixed per-type rate applied by a single interest run.
func (t AccountType) InterestRate() decimal.Decimal {
	return accountTypes[t].interestRate
}

func (t AccountType) DisplayName() string {
	return accountTypes[t].displayName
}

func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", errors.NewAppErrorf(errors.InvalidInput, "unknown account type %q", s)
	}
	return t, nil
}

type Account struct {
	ID         string          `json:"account_id"`
	CustomerID string          `json:"customer_id"`
	Type       AccountType     `json:"account_type"`
	Balance    decimal.Decimal `json:"balance"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewAccount builds an active account with a generated ID.
func NewAccount(customerID string, accountType AccountType, initialBalance decimal.Decimal) (*Account, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, errors.NewAppError(errors.InvalidInput, "customer ID is required")
	}
	if !accountType.IsValid() {
		return nil, errors.NewAppError(errors.InvalidInput, "account type is required")
	}
	if initialBalance.IsNegative() {
		return nil, errors.NewAppError(errors.InvalidAmount, "initial balance cannot be negative")
	}

	now := time.Now()
	return &Account{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Type:       accountType,
		Balance:    initialBalance,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.NewAppError(errors.InvalidAmount, "deposit amount must be positive")
	}
	a.Balance = a.Balance.Add(amount)
	a.UpdatedAt = time.Now()
	return nil
}

func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.NewAppError(errors.InvalidAmount, "withdrawal amount must be positive")
	}
	if a.Balance.LessThan(amount) {
		return errors.NewInsufficientFunds(a.ID, amount, a.Balance)
	}
	a.Balance = a.Balance.Sub(amount)
	a.UpdatedAt = time.Now()
	return nil
}

func (a *Account) Activate() {
	a.Active = true
	a.UpdatedAt = time.Now()
}

func (a *Account) Deactivate() {
	a.Active = false
	a.UpdatedAt = time.Now()
}

type AccountRepository interface {
	Save(account *Account) (*Account, error)
	SaveAll(accounts ...*Account) ([]*Account, error)
	FindByID(id string) (*Account, bool)
	FindByCustomerID(customerID string) []*Account
	FindAll() []*Account
	FindAllActive() []*Account
	ExistsByID(id string) bool
	Count() int
}
