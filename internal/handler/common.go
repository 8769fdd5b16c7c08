package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bank-ledger/internal/domain"
	"bank-ledger/internal/errors"
)

type Response struct {
	Data  interface{} `json:"data,omitempty"`
	Error *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// TransactionResponse carries amounts as exact decimal strings, never rounded.
type TransactionResponse struct {
	TransactionID   string    `json:"transaction_id"`
	AccountID       string    `json:"account_id"`
	Type            string    `json:"type"`
	Amount          string    `json:"amount"`
	BalanceAfter    string    `json:"balance_after"`
	Description     string    `json:"description"`
	ReferenceNumber string    `json:"reference_number"`
	Timestamp       time.Time `json:"timestamp"`
}

func toTransactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   tx.ID,
		AccountID:       tx.AccountID,
		Type:            string(tx.Type),
		Amount:          tx.Amount.String(),
		BalanceAfter:    tx.BalanceAfter.String(),
		Description:     tx.Description,
		ReferenceNumber: tx.ReferenceNumber,
		Timestamp:       tx.Timestamp,
	}
}

func toTransactionResponses(txs []*domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	return out
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := Response{Data: data}
	json.NewEncoder(w).Encode(response)
}

// writeError renders err as an error envelope. Errors that carry no AppError
// are reported as internal errors.
func writeError(w http.ResponseWriter, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.NewAppError(errors.InternalError, "an unexpected error occurred")
	}

	w.Header().Set("Content-Type", "application/json")

	statusCode := appErr.HTTPStatus()
	errResponse := Error{
		Code:    string(appErr.Code),
		Message: appErr.Message,
		Details: appErr.Details,
	}

	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(Response{Error: &errResponse})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewAppError(errors.InvalidRequest, "invalid request body").WithDetails(err.Error())
	}
	return nil
}

// parseAmount reads a decimal string such as "125.50".
func parseAmount(raw, field string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, errors.NewAppErrorf(errors.InvalidAmount, "invalid %s format", field).WithDetails(err.Error())
	}
	return amount, nil
}
