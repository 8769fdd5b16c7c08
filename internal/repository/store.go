package repository

import (
	"log/slog"
	"strings"

	"bank-ledger/internal/domain"
)

// Store provides a unified interface for all repository operations with per-key locking
type Store struct {
	accounts     *accountRepository
	customers    *customerRepository
	transactions *transactionRepository
	locker       *KeyLocker
	logger       *slog.Logger
}

// NewStore creates a new, empty in-memory Store
func NewStore(logger *slog.Logger) *Store {
	return &Store{
		accounts:     newAccountRepository(logger),
		customers:    newCustomerRepository(logger),
		transactions: newTransactionRepository(logger),
		locker:       NewKeyLocker(),
		logger:       logger,
	}
}

// Account returns the AccountRepository
func (s *Store) Account() domain.AccountRepository {
	return s.accounts
}

// Customer returns the CustomerRepository
func (s *Store) Customer() domain.CustomerRepository {
	return s.customers
}

// Transaction returns the TransactionRepository
func (s *Store) Transaction() domain.TransactionRepository {
	return s.transactions
}

// WithLocks executes fn while holding the lock of every key. Keys are acquired
// in sorted order; operations on disjoint keys run in parallel.
func (s *Store) WithLocks(keys []string, fn func(*Store) error) error {
	unlock := s.locker.Lock(keys...)
	defer unlock()

	return fn(s)
}

func AccountLockKey(accountID string) string {
	return "account:" + accountID
}

func EmailLockKey(email string) string {
	return "customer-email:" + strings.ToLower(strings.TrimSpace(email))
}
