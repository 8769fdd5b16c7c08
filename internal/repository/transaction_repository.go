package repository

import (
	"log/slog"
	"slices"
	"time"

	"bank-ledger/internal/domain"
	"bank-ledger/internal/errors"
)

type transactionRepository struct {
	rows   *table[domain.Transaction]
	logger *slog.Logger
}

func NewTransactionRepository(logger *slog.Logger) domain.TransactionRepository {
	return newTransactionRepository(logger)
}

func newTransactionRepository(logger *slog.Logger) *transactionRepository {
	return &transactionRepository{
		rows:   newTable[domain.Transaction](),
		logger: logger,
	}
}

func (r *transactionRepository) Save(tx *domain.Transaction) (*domain.Transaction, error) {
	if tx == nil {
		return nil, errors.NewAppError(errors.InternalError, "cannot save nil transaction")
	}
	if tx.ID == "" {
		return nil, errors.NewAppError(errors.InvalidIdentifier, "transaction ID is required")
	}

	stored := r.rows.put(tx.ID, *tx)
	r.logger.Debug("Transaction saved",
		"transaction_id", stored.ID,
		"account_id", stored.AccountID,
		"type", stored.Type,
		"amount", stored.Amount)
	return &stored, nil
}

func (r *transactionRepository) FindByID(id string) (*domain.Transaction, bool) {
	tx, ok := r.rows.get(id)
	if !ok {
		return nil, false
	}
	return &tx, true
}

// FindByAccountID returns the account's transactions, most recent first.
func (r *transactionRepository) FindByAccountID(accountID string) []*domain.Transaction {
	return newestFirst(r.rows.filter(func(t domain.Transaction) bool {
		return t.AccountID == accountID
	}))
}

// FindByAccountIDAndDateRange matches timestamps within [start, end], most recent first.
func (r *transactionRepository) FindByAccountIDAndDateRange(accountID string, start, end time.Time) []*domain.Transaction {
	return newestFirst(r.rows.filter(func(t domain.Transaction) bool {
		return t.AccountID == accountID && inRange(t.Timestamp, start, end)
	}))
}

func (r *transactionRepository) FindByDateRange(start, end time.Time) []*domain.Transaction {
	return newestFirst(r.rows.filter(func(t domain.Transaction) bool {
		return inRange(t.Timestamp, start, end)
	}))
}

func (r *transactionRepository) FindByType(txType domain.TransactionType) []*domain.Transaction {
	return pointers(r.rows.filter(func(t domain.Transaction) bool {
		return t.Type == txType
	}))
}

func (r *transactionRepository) FindByReference(referenceNumber string) []*domain.Transaction {
	return pointers(r.rows.filter(func(t domain.Transaction) bool {
		return t.ReferenceNumber == referenceNumber
	}))
}

func (r *transactionRepository) FindAll() []*domain.Transaction {
	return pointers(r.rows.filter(nil))
}

func (r *transactionRepository) Count() int {
	return r.rows.len()
}

func inRange(ts, start, end time.Time) bool {
	return !ts.Before(start) && !ts.After(end)
}

// newestFirst orders by timestamp descending; equal timestamps keep the
// later insertion first.
func newestFirst(txs []domain.Transaction) []*domain.Transaction {
	slices.Reverse(txs)
	slices.SortStableFunc(txs, func(a, b domain.Transaction) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return pointers(txs)
}
