package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"bank-ledger/internal/domain"
	"bank-ledger/internal/errors"
	"bank-ledger/internal/service"
)

type AccountHandler struct {
	accountService     *service.AccountService
	transactionService *service.TransactionService
}

func NewAccountHandler(accountService *service.AccountService, transactionService *service.TransactionService) *AccountHandler {
	return &AccountHandler{
		accountService:     accountService,
		transactionService: transactionService,
	}
}

type CreateAccountRequest struct {
	CustomerID     string `json:"customer_id"`
	AccountType    string `json:"account_type"`
	InitialDeposit string `json:"initial_deposit"`
}

type AmountRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
}

type AccountResponse struct {
	AccountID    string    `json:"account_id"`
	CustomerID   string    `json:"customer_id"`
	AccountType  string    `json:"account_type"`
	Balance      string    `json:"balance"`
	InterestRate string    `json:"interest_rate"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

type InterestResponse struct {
	Applied     bool                 `json:"applied"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

func toAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    a.ID,
		CustomerID:   a.CustomerID,
		AccountType:  string(a.Type),
		Balance:      a.Balance.String(),
		InterestRate: a.Type.InterestRate().String(),
		Active:       a.Active,
		CreatedAt:    a.CreatedAt,
	}
}

func toAccountResponses(accounts []*domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	return out
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	accountType, err := domain.ParseAccountType(req.AccountType)
	if err != nil {
		writeError(w, err)
		return
	}

	initialDeposit, err := parseAmount(req.InitialDeposit, "initial_deposit")
	if err != nil {
		writeError(w, err)
		return
	}

	account, err := h.accountService.CreateAccount(req.CustomerID, accountType, initialDeposit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAccountResponse(account))
}

// ListAccounts returns every account, or only active ones with ?active=true.
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if raw := r.URL.Query().Get("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, errors.NewAppError(errors.InvalidRequest, "active must be a boolean"))
			return
		}
		activeOnly = parsed
	}

	accounts := h.accountService.GetAllAccounts()
	if activeOnly {
		accounts = h.accountService.GetActiveAccounts()
	}
	writeJSON(w, http.StatusOK, toAccountResponses(accounts))
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountService.GetAccount(mux.Vars(r)["account_id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

// GetAccountTransactions lists the account history, newest first. Optional
// from/to query parameters (RFC 3339) bound the range inclusively.
func (h *AccountHandler) GetAccountTransactions(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["account_id"]
	if _, err := h.accountService.GetAccount(accountID); err != nil {
		writeError(w, err)
		return
	}

	query := r.URL.Query()
	if query.Get("from") == "" && query.Get("to") == "" {
		writeJSON(w, http.StatusOK, toTransactionResponses(h.transactionService.GetAccountTransactions(accountID)))
		return
	}

	start, err := parseTime(query.Get("from"), time.Time{})
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseTime(query.Get("to"), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}

	txs := h.transactionService.GetAccountTransactionsByDateRange(accountID, start, end)
	writeJSON(w, http.StatusOK, toTransactionResponses(txs))
}

func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.handleAmount(w, r, h.accountService.Deposit)
}

func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.handleAmount(w, r, h.accountService.Withdraw)
}

func (h *AccountHandler) ChargeFee(w http.ResponseWriter, r *http.Request) {
	h.handleAmount(w, r, h.accountService.ChargeFee)
}

func (h *AccountHandler) ApplyInterest(w http.ResponseWriter, r *http.Request) {
	tx, err := h.accountService.ApplyInterest(mux.Vars(r)["account_id"])
	if err != nil {
		writeError(w, err)
		return
	}

	response := InterestResponse{Applied: tx != nil}
	if tx != nil {
		txResponse := toTransactionResponse(tx)
		response.Transaction = &txResponse
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *AccountHandler) ActivateAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountService.ActivateAccount(mux.Vars(r)["account_id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

func (h *AccountHandler) DeactivateAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountService.DeactivateAccount(mux.Vars(r)["account_id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

type amountOperation func(accountID string, amount decimal.Decimal, description string) (*domain.Transaction, error)

func (h *AccountHandler) handleAmount(w http.ResponseWriter, r *http.Request, op amountOperation) {
	var req AmountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	amount, err := parseAmount(req.Amount, "amount")
	if err != nil {
		writeError(w, err)
		return
	}

	tx, err := op(mux.Vars(r)["account_id"], amount, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func parseTime(raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.InvalidRequest, "timestamps must be RFC 3339").WithDetails(err.Error())
	}
	return t, nil
}
