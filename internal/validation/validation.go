// Package validation holds the amount and identifier checks shared by the ledger services.
package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"bank-ledger/internal/errors"
)

var (
	MinTransactionAmount = decimal.RequireFromString("0.01")
	MaxTransactionAmount = decimal.RequireFromString("1000000.00")
)

// ValidateAmount rejects nil, non-positive and out-of-range amounts.
// The label prefixes the error message, e.g. "Deposit amount must be positive".
func ValidateAmount(amount *decimal.Decimal, label string) error {
	if amount == nil {
		return errors.NewAppErrorf(errors.InvalidAmount, "%s amount cannot be null", label)
	}
	if !amount.IsPositive() {
		return errors.NewAppErrorf(errors.InvalidAmount, "%s amount must be positive", label)
	}
	if amount.LessThan(MinTransactionAmount) {
		return errors.NewAppErrorf(errors.InvalidAmount, "%s amount must be at least %s", label, MinTransactionAmount.StringFixed(2))
	}
	if amount.GreaterThan(MaxTransactionAmount) {
		return errors.NewAppErrorf(errors.InvalidAmount, "%s amount cannot exceed %s", label, MaxTransactionAmount.StringFixed(2))
	}
	return nil
}

// ValidateID rejects empty and whitespace-only identifiers.
func ValidateID(id, label string) error {
	if strings.TrimSpace(id) == "" {
		return errors.NewAppErrorf(errors.InvalidIdentifier, "%s cannot be null or empty", label)
	}
	return nil
}
