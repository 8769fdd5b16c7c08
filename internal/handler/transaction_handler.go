package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"bank-ledger/internal/domain"
	"bank-ledger/internal/errors"
	"bank-ledger/internal/service"
)

type TransactionHandler struct {
	accountService     *service.AccountService
	transactionService *service.TransactionService
}

func NewTransactionHandler(accountService *service.AccountService, transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		accountService:     accountService,
		transactionService: transactionService,
	}
}

type TransferRequest struct {
	SourceAccountID      string `json:"source_account_id"`
	DestinationAccountID string `json:"destination_account_id"`
	Amount               string `json:"amount"`
}

type TransferResponse struct {
	ReferenceNumber string              `json:"reference_number"`
	Amount          string              `json:"amount"`
	Debit           TransactionResponse `json:"debit"`
	Credit          TransactionResponse `json:"credit"`
}

func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	amount, err := parseAmount(req.Amount, "amount")
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.accountService.Transfer(&service.TransferRequest{
		SourceAccountID:      req.SourceAccountID,
		DestinationAccountID: req.DestinationAccountID,
		Amount:               amount,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, TransferResponse{
		ReferenceNumber: result.ReferenceNumber,
		Amount:          amount.String(),
		Debit:           toTransactionResponse(result.Debit),
		Credit:          toTransactionResponse(result.Credit),
	})
}

func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := h.transactionService.GetTransaction(mux.Vars(r)["transaction_id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(tx))
}

// ListTransactions filters the ledger by ?type= or ?reference=.
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	switch {
	case query.Get("reference") != "":
		txs := h.transactionService.GetTransactionsByReference(query.Get("reference"))
		writeJSON(w, http.StatusOK, toTransactionResponses(txs))
	case query.Get("type") != "":
		txType, err := domain.ParseTransactionType(query.Get("type"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTransactionResponses(h.transactionService.GetTransactionsByType(txType)))
	default:
		writeError(w, errors.NewAppError(errors.InvalidRequest, "type or reference query parameter is required"))
	}
}
