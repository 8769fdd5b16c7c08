package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bank-ledger/internal/errors"
)

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeTransfer   TransactionType = "TRANSFER"
	TransactionTypeInterest   TransactionType = "INTEREST"
	TransactionTypeFee        TransactionType = "FEE"
)

var transactionTypeNames = map[TransactionType]string{
	TransactionTypeDeposit:    "Deposit",
	TransactionTypeWithdrawal: "Withdrawal",
	TransactionTypeTransfer:   "Transfer",
	TransactionTypeInterest:   "Interest Credit",
	TransactionTypeFee:        "Fee Deduction",
}

func (t TransactionType) IsValid() bool {
	_, ok := transactionTypeNames[t]
	return ok
}

func (t TransactionType) DisplayName() string {
	return transactionTypeNames[t]
}

func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", errors.NewAppErrorf(errors.InvalidInput, "unknown transaction type %q", s)
	}
	return t, nil
}

// Transaction is an immutable audit record of one balance change.
type Transaction struct {
	ID              string          `json:"transaction_id"`
	AccountID       string          `json:"account_id"`
	Type            TransactionType `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	BalanceAfter    decimal.Decimal `json:"balance_after"`
	Description     string          `json:"description"`
	Timestamp       time.Time       `json:"timestamp"`
	ReferenceNumber string          `json:"reference_number"`
}

func NewTransaction(
	accountID string,
	txType TransactionType,
	amount decimal.Decimal,
	balanceAfter decimal.Decimal,
	description string,
	referenceNumber string,
) (*Transaction, error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, errors.NewAppError(errors.InvalidTransaction, "account ID is required")
	}
	if !txType.IsValid() {
		return nil, errors.NewAppError(errors.InvalidTransaction, "transaction type is required")
	}
	if !amount.IsPositive() {
		return nil, errors.NewAppError(errors.InvalidTransaction, "amount must be positive")
	}

	return &Transaction{
		ID:              uuid.NewString(),
		AccountID:       accountID,
		Type:            txType,
		Amount:          amount,
		BalanceAfter:    balanceAfter,
		Description:     description,
		Timestamp:       time.Now(),
		ReferenceNumber: referenceNumber,
	}, nil
}

type TransactionRepository interface {
	Save(tx *Transaction) (*Transaction, error)
	FindByID(id string) (*Transaction, bool)
	FindByAccountID(accountID string) []*Transaction
	FindByAccountIDAndDateRange(accountID string, start, end time.Time) []*Transaction
	FindByDateRange(start, end time.Time) []*Transaction
	FindByType(txType TransactionType) []*Transaction
	FindByReference(referenceNumber string) []*Transaction
	FindAll() []*Transaction
	Count() int
}
