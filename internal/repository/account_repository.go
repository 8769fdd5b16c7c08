package repository

import (
	"log/slog"

	"bank-ledger/internal/domain"
	"bank-ledger/internal/errors"
)

type accountRepository struct {
	rows   *table[domain.Account]
	logger *slog.Logger
}

func NewAccountRepository(logger *slog.Logger) domain.AccountRepository {
	return newAccountRepository(logger)
}

func newAccountRepository(logger *slog.Logger) *accountRepository {
	return &accountRepository{
		rows:   newTable[domain.Account](),
		logger: logger,
	}
}

func (r *accountRepository) Save(account *domain.Account) (*domain.Account, error) {
	if account == nil {
		return nil, errors.NewAppError(errors.InternalError, "cannot save nil account")
	}
	if account.ID == "" {
		return nil, errors.NewAppError(errors.InvalidIdentifier, "account ID is required")
	}

	stored := r.rows.put(account.ID, *account)
	r.logger.Debug("Account saved", "account_id", stored.ID, "balance", stored.Balance)
	return &stored, nil
}

// SaveAll stores the accounts as one unit: concurrent readers never observe
// some of them updated and others not.
func (r *accountRepository) SaveAll(accounts ...*domain.Account) ([]*domain.Account, error) {
	values := make([]domain.Account, 0, len(accounts))
	for _, account := range accounts {
		if account == nil {
			return nil, errors.NewAppError(errors.InternalError, "cannot save nil account")
		}
		if account.ID == "" {
			return nil, errors.NewAppError(errors.InvalidIdentifier, "account ID is required")
		}
		values = append(values, *account)
	}

	stored := r.rows.putAll(func(a domain.Account) string { return a.ID }, values...)
	for _, a := range stored {
		r.logger.Debug("Account saved", "account_id", a.ID, "balance", a.Balance)
	}
	return pointers(stored), nil
}

func (r *accountRepository) FindByID(id string) (*domain.Account, bool) {
	account, ok := r.rows.get(id)
	if !ok {
		return nil, false
	}
	return &account, true
}

func (r *accountRepository) FindByCustomerID(customerID string) []*domain.Account {
	return pointers(r.rows.filter(func(a domain.Account) bool {
		return a.CustomerID == customerID
	}))
}

func (r *accountRepository) FindAll() []*domain.Account {
	return pointers(r.rows.filter(nil))
}

func (r *accountRepository) FindAllActive() []*domain.Account {
	return pointers(r.rows.filter(func(a domain.Account) bool {
		return a.Active
	}))
}

func (r *accountRepository) ExistsByID(id string) bool {
	return r.rows.has(id)
}

func (r *accountRepository) Count() int {
	return r.rows.len()
}
