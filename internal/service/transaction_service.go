package service

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"bank-ledger/internal/domain"
	"bank-ledger/internal/errors"
	"bank-ledger/internal/repository"
)

const (
	referencePrefixDefault  = "REF"
	referencePrefixTransfer = "TRF"
)

type TransactionService struct {
	store  *repository.Store
	refs   *ReferenceGenerator
	logger *slog.Logger
}

func NewTransactionService(store *repository.Store, logger *slog.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		refs:   NewReferenceGenerator(),
		logger: logger,
	}
}

// NewReference returns a fresh reference number with the given prefix.
func (s *TransactionService) NewReference(prefix string) string {
	return s.refs.Next(prefix)
}

// RecordTransaction appends an immutable transaction under its own reference number.
func (s *TransactionService) RecordTransaction(
	accountID string,
	txType domain.TransactionType,
	amount decimal.Decimal,
	balanceAfter decimal.Decimal,
	description string,
) (*domain.Transaction, error) {
	return s.RecordLinkedTransaction(s.refs.Next(referencePrefixDefault), accountID, txType, amount, balanceAfter, description)
}

// RecordLinkedTransaction appends a transaction that shares referenceNumber
// with other records, such as the two legs of a transfer.
func (s *TransactionService) RecordLinkedTransaction(
	referenceNumber string,
	accountID string,
	txType domain.TransactionType,
	amount decimal.Decimal,
	balanceAfter decimal.Decimal,
	description string,
) (*domain.Transaction, error) {
	tx, err := domain.NewTransaction(accountID, txType, amount, balanceAfter, description, referenceNumber)
	if err != nil {
		s.logger.Warn("Rejected transaction record",
			"account_id", accountID,
			"type", txType,
			"amount", amount,
			"error", err)
		return nil, err
	}

	saved, err := s.store.Transaction().Save(tx)
	if err != nil {
		s.logger.Error("Failed to record transaction", "account_id", accountID, "error", err)
		return nil, err
	}

	s.logger.Info("Transaction recorded",
		"transaction_id", saved.ID,
		"account_id", saved.AccountID,
		"type", saved.Type,
		"reference_number", saved.ReferenceNumber)
	return saved, nil
}

func (s *TransactionService) GetTransaction(transactionID string) (*domain.Transaction, error) {
	tx, ok := s.store.Transaction().FindByID(transactionID)
	if !ok {
		return nil, errors.ErrTransactionNotFound.WithDetails("transaction ID: " + transactionID)
	}
	return tx, nil
}

// GetAccountTransactions returns the account history, most recent first.
func (s *TransactionService) GetAccountTransactions(accountID string) []*domain.Transaction {
	return s.store.Transaction().FindByAccountID(accountID)
}

func (s *TransactionService) GetAccountTransactionsByDateRange(accountID string, start, end time.Time) []*domain.Transaction {
	return s.store.Transaction().FindByAccountIDAndDateRange(accountID, start, end)
}

func (s *TransactionService) GetTransactionsByDateRange(start, end time.Time) []*domain.Transaction {
	return s.store.Transaction().FindByDateRange(start, end)
}

func (s *TransactionService) GetTransactionsByType(txType domain.TransactionType) []*domain.Transaction {
	return s.store.Transaction().FindByType(txType)
}

func (s *TransactionService) GetTransactionsByReference(referenceNumber string) []*domain.Transaction {
	return s.store.Transaction().FindByReference(referenceNumber)
}

func (s *TransactionService) GetTotalDeposits(accountID string) decimal.Decimal {
	return s.sumByType(accountID, domain.TransactionTypeDeposit)
}

func (s *TransactionService) GetTotalWithdrawals(accountID string) decimal.Decimal {
	return s.sumByType(accountID, domain.TransactionTypeWithdrawal)
}

func (s *TransactionService) GetTransactionCount(accountID string) int {
	return len(s.store.Transaction().FindByAccountID(accountID))
}

func (s *TransactionService) sumByType(accountID string, txType domain.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range s.store.Transaction().FindByAccountID(accountID) {
		if tx.Type == txType {
			total = total.Add(tx.Amount)
		}
	}
	return total
}
