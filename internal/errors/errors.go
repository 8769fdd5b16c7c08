package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

type ErrorCode string

const (
	InvalidAmount       ErrorCode = "invalid_amount"
	InvalidIdentifier   ErrorCode = "invalid_identifier"
	InvalidTransaction  ErrorCode = "invalid_transaction"
	InvalidInput        ErrorCode = "invalid_input"
	InactiveAccount     ErrorCode = "inactive_account"
	SameAccountTransfer ErrorCode = "same_account_transfer"
	AccountNotFound     ErrorCode = "account_not_found"
	CustomerNotFound    ErrorCode = "customer_not_found"
	TransactionNotFound ErrorCode = "transaction_not_found"
	InsufficientFunds   ErrorCode = "insufficient_funds"
	DuplicateEmail      ErrorCode = "duplicate_email"
	InvalidRequest      ErrorCode = "invalid_request"
	InternalError       ErrorCode = "internal_error"
)

// families groups business-rule codes under invalid_transaction so callers
// can match the broad category or the specific rule.
var families = map[ErrorCode]ErrorCode{
	InvalidInput:        InvalidTransaction,
	InactiveAccount:     InvalidTransaction,
	SameAccountTransfer: InvalidTransaction,
}

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target carries the same code as e, or is the family e belongs to.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || t == nil {
		return false
	}
	return e.Code == t.Code || families[e.Code] == t.Code
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetails returns a copy of e carrying details, leaving shared sentinels untouched.
func (e *AppError) WithDetails(details string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case InvalidAmount, InvalidIdentifier, InvalidTransaction, InvalidInput, SameAccountTransfer, InvalidRequest:
		return http.StatusBadRequest
	case AccountNotFound, CustomerNotFound, TransactionNotFound:
		return http.StatusNotFound
	case DuplicateEmail:
		return http.StatusConflict
	case InsufficientFunds, InactiveAccount:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// AsAppError unwraps err to the AppError it carries, if any.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// InsufficientFundsError carries the amounts involved in a rejected debit.
type InsufficientFundsError struct {
	*AppError
	AccountID string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func NewInsufficientFunds(accountID string, requested, available decimal.Decimal) *InsufficientFundsError {
	appErr := NewAppErrorf(InsufficientFunds, "insufficient funds in account %s", accountID).
		WithDetails(fmt.Sprintf("requested: %s, available: %s", requested.StringFixed(2), available.StringFixed(2)))
	return &InsufficientFundsError{
		AppError:  appErr,
		AccountID: accountID,
		Requested: requested,
		Available: available,
	}
}

func (e *InsufficientFundsError) Unwrap() error {
	return e.AppError
}

// Predefined errors for common cases
var (
	ErrInvalidAmount       = NewAppError(InvalidAmount, "invalid amount")
	ErrInvalidIdentifier   = NewAppError(InvalidIdentifier, "invalid identifier")
	ErrInvalidTransaction  = NewAppError(InvalidTransaction, "invalid transaction")
	ErrInvalidInput        = NewAppError(InvalidInput, "invalid input")
	ErrInactiveAccount     = NewAppError(InactiveAccount, "account is inactive")
	ErrSameAccountTransfer = NewAppError(SameAccountTransfer, "cannot transfer to the same account")
	ErrAccountNotFound     = NewAppError(AccountNotFound, "account not found")
	ErrCustomerNotFound    = NewAppError(CustomerNotFound, "customer not found")
	ErrTransactionNotFound = NewAppError(TransactionNotFound, "transaction not found")
	ErrInsufficientFunds   = NewAppError(InsufficientFunds, "insufficient funds")
	ErrDuplicateEmail      = NewAppError(DuplicateEmail, "customer with this email already exists")
)
