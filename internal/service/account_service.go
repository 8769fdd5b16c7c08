package service

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"bank-ledger/internal/domain"
	"bank-ledger/internal/errors"
	"bank-ledger/internal/repository"
	"bank-ledger/internal/validation"
)

type AccountService struct {
	store        *repository.Store
	transactions *TransactionService
	logger       *slog.Logger
}

func NewAccountService(store *repository.Store, transactions *TransactionService, logger *slog.Logger) *AccountService {
	return &AccountService{
		store:        store,
		transactions: transactions,
		logger:       logger,
	}
}

type TransferRequest struct {
	SourceAccountID      string
	DestinationAccountID string
	Amount               decimal.Decimal
}

// TransferResult holds the two linked TRANSFER records of one transfer.
type TransferResult struct {
	ReferenceNumber string
	Debit           *domain.Transaction
	Credit          *domain.Transaction
}

func (s *AccountService) CreateAccount(customerID string, accountType domain.AccountType, initialDeposit decimal.Decimal) (*domain.Account, error) {
	s.logger.Info("Creating account",
		"customer_id", customerID,
		"account_type", accountType,
		"initial_deposit", initialDeposit)

	if err := validation.ValidateID(customerID, "Customer ID"); err != nil {
		return nil, err
	}
	if err := validation.ValidateAmount(&initialDeposit, "Initial deposit"); err != nil {
		return nil, err
	}

	account, err := domain.NewAccount(customerID, accountType, initialDeposit)
	if err != nil {
		return nil, err
	}

	var saved *domain.Account
	err = s.store.WithLocks(accountKeys(account.ID), func(store *repository.Store) error {
		saved, err = store.Account().Save(account)
		if err != nil {
			return err
		}

		_, err = s.transactions.RecordTransaction(
			saved.ID,
			domain.TransactionTypeDeposit,
			initialDeposit,
			saved.Balance,
			"Initial deposit",
		)
		return err
	})
	if err != nil {
		s.logger.Error("Failed to create account", "customer_id", customerID, "error", err)
		return nil, err
	}

	s.logger.Info("Account created successfully", "account_id", saved.ID)
	return saved, nil
}

func (s *AccountService) GetAccount(accountID string) (*domain.Account, error) {
	return findAccount(s.store, accountID)
}

func (s *AccountService) GetBalance(accountID string) (decimal.Decimal, error) {
	account, err := findAccount(s.store, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

func (s *AccountService) GetCustomerAccounts(customerID string) []*domain.Account {
	return s.store.Account().FindByCustomerID(customerID)
}

func (s *AccountService) GetAllAccounts() []*domain.Account {
	return s.store.Account().FindAll()
}

func (s *AccountService) GetActiveAccounts() []*domain.Account {
	return s.store.Account().FindAllActive()
}

// GetTotalBalance sums the balances of every account, active or not.
func (s *AccountService) GetTotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, account := range s.store.Account().FindAll() {
		total = total.Add(account.Balance)
	}
	return total
}

func (s *AccountService) Deposit(accountID string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	s.logger.Info("Processing deposit", "account_id", accountID, "amount", amount)

	if err := validation.ValidateAmount(&amount, "Deposit"); err != nil {
		return nil, err
	}
	return s.credit(accountID, amount, domain.TransactionTypeDeposit, withDefault(description, "Deposit"))
}

func (s *AccountService) Withdraw(accountID string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	s.logger.Info("Processing withdrawal", "account_id", accountID, "amount", amount)

	if err := validation.ValidateAmount(&amount, "Withdrawal"); err != nil {
		return nil, err
	}
	return s.debit(accountID, amount, domain.TransactionTypeWithdrawal, withDefault(description, "Withdrawal"))
}

// ChargeFee debits a fee and records it as a FEE transaction.
func (s *AccountService) ChargeFee(accountID string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	s.logger.Info("Charging fee", "account_id", accountID, "amount", amount)

	if err := validation.ValidateAmount(&amount, "Fee"); err != nil {
		return nil, err
	}
	return s.debit(accountID, amount, domain.TransactionTypeFee, withDefault(description, "Fee"))
}

func (s *AccountService) Transfer(req *TransferRequest) (*TransferResult, error) {
	if req == nil {
		return nil, errors.NewAppError(errors.InvalidTransaction, "transfer request is required")
	}

	s.logger.Info("Processing transfer",
		"source_account_id", req.SourceAccountID,
		"destination_account_id", req.DestinationAccountID,
		"amount", req.Amount)

	if err := s.validateTransfer(req); err != nil {
		return nil, err
	}

	var result *TransferResult
	keys := accountKeys(req.SourceAccountID, req.DestinationAccountID)
	err := s.store.WithLocks(keys, func(store *repository.Store) error {
		source, err := findAccount(store, req.SourceAccountID)
		if err != nil {
			return err
		}
		destination, err := findAccount(store, req.DestinationAccountID)
		if err != nil {
			return err
		}

		if !source.Active || !destination.Active {
			return errors.ErrInactiveAccount.WithDetails("both accounts must be active for transfer")
		}

		// Withdraw checks funds before touching the balance; nothing is saved until both legs succeed.
		if err := source.Withdraw(req.Amount); err != nil {
			return err
		}
		if err := destination.Deposit(req.Amount); err != nil {
			return err
		}

		saved, err := store.Account().SaveAll(source, destination)
		if err != nil {
			return err
		}
		savedSource, savedDestination := saved[0], saved[1]

		reference := s.transactions.NewReference(referencePrefixTransfer)
		debit, err := s.transactions.RecordLinkedTransaction(
			reference,
			savedSource.ID,
			domain.TransactionTypeTransfer,
			req.Amount,
			savedSource.Balance,
			fmt.Sprintf("Transfer to %s - Ref: %s", savedDestination.ID, reference),
		)
		if err != nil {
			return err
		}
		credit, err := s.transactions.RecordLinkedTransaction(
			reference,
			savedDestination.ID,
			domain.TransactionTypeTransfer,
			req.Amount,
			savedDestination.Balance,
			fmt.Sprintf("Transfer from %s - Ref: %s", savedSource.ID, reference),
		)
		if err != nil {
			return err
		}

		result = &TransferResult{
			ReferenceNumber: reference,
			Debit:           debit,
			Credit:          credit,
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Transfer failed",
			"source_account_id", req.SourceAccountID,
			"destination_account_id", req.DestinationAccountID,
			"error", err)
		return nil, err
	}

	s.logger.Info("Transfer completed successfully", "reference_number", result.ReferenceNumber)
	return result, nil
}

// ApplyInterest credits balance * rate(type), computed exactly.
// It returns a nil transaction when no interest accrues.
func (s *AccountService) ApplyInterest(accountID string) (*domain.Transaction, error) {
	s.logger.Info("Applying interest", "account_id", accountID)

	if err := validation.ValidateID(accountID, "Account ID"); err != nil {
		return nil, err
	}

	var recorded *domain.Transaction
	err := s.store.WithLocks(accountKeys(accountID), func(store *repository.Store) error {
		account, err := findActiveAccount(store, accountID)
		if err != nil {
			return err
		}

		rate := account.Type.InterestRate()
		interest := account.Balance.Mul(rate)
		if !interest.IsPositive() {
			return nil
		}

		if err := account.Deposit(interest); err != nil {
			return err
		}
		saved, err := store.Account().Save(account)
		if err != nil {
			return err
		}

		recorded, err = s.transactions.RecordTransaction(
			accountID,
			domain.TransactionTypeInterest,
			interest,
			saved.Balance,
			fmt.Sprintf("Interest credit at %s%%", rate.Shift(2).String()),
		)
		return err
	})
	if err != nil {
		s.logger.Warn("Interest application failed", "account_id", accountID, "error", err)
		return nil, err
	}

	if recorded != nil {
		s.logger.Info("Interest applied", "account_id", accountID, "interest", recorded.Amount)
	}
	return recorded, nil
}

func (s *AccountService) ActivateAccount(accountID string) (*domain.Account, error) {
	return s.setActive(accountID, true)
}

func (s *AccountService) DeactivateAccount(accountID string) (*domain.Account, error) {
	return s.setActive(accountID, false)
}

func (s *AccountService) setActive(accountID string, active bool) (*domain.Account, error) {
	var saved *domain.Account
	err := s.store.WithLocks(accountKeys(accountID), func(store *repository.Store) error {
		account, err := findAccount(store, accountID)
		if err != nil {
			return err
		}

		if active {
			account.Activate()
		} else {
			account.Deactivate()
		}
		saved, err = store.Account().Save(account)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Account status changed", "account_id", accountID, "active", active)
	return saved, nil
}

func (s *AccountService) credit(accountID string, amount decimal.Decimal, txType domain.TransactionType, description string) (*domain.Transaction, error) {
	return s.applyToAccount(accountID, amount, txType, description, (*domain.Account).Deposit)
}

func (s *AccountService) debit(accountID string, amount decimal.Decimal, txType domain.TransactionType, description string) (*domain.Transaction, error) {
	return s.applyToAccount(accountID, amount, txType, description, (*domain.Account).Withdraw)
}

// applyToAccount runs one single-account balance change and its audit record
// under the account lock.
func (s *AccountService) applyToAccount(
	accountID string,
	amount decimal.Decimal,
	txType domain.TransactionType,
	description string,
	apply func(*domain.Account, decimal.Decimal) error,
) (*domain.Transaction, error) {
	if err := validation.ValidateID(accountID, "Account ID"); err != nil {
		return nil, err
	}

	var recorded *domain.Transaction
	err := s.store.WithLocks(accountKeys(accountID), func(store *repository.Store) error {
		account, err := findActiveAccount(store, accountID)
		if err != nil {
			return err
		}

		if err := apply(account, amount); err != nil {
			return err
		}
		saved, err := store.Account().Save(account)
		if err != nil {
			return err
		}

		recorded, err = s.transactions.RecordTransaction(accountID, txType, amount, saved.Balance, description)
		return err
	})
	if err != nil {
		s.logger.Warn("Balance update failed",
			"account_id", accountID,
			"type", txType,
			"amount", amount,
			"error", err)
		return nil, err
	}

	s.logger.Info("Balance updated",
		"account_id", accountID,
		"type", txType,
		"transaction_id", recorded.ID,
		"balance_after", recorded.BalanceAfter)
	return recorded, nil
}

func (s *AccountService) validateTransfer(req *TransferRequest) error {
	if err := validation.ValidateAmount(&req.Amount, "Transfer"); err != nil {
		return err
	}
	if err := validation.ValidateID(req.SourceAccountID, "Source account ID"); err != nil {
		return err
	}
	if err := validation.ValidateID(req.DestinationAccountID, "Destination account ID"); err != nil {
		return err
	}
	if req.SourceAccountID == req.DestinationAccountID {
		return errors.ErrSameAccountTransfer
	}
	return nil
}

func findAccount(store *repository.Store, accountID string) (*domain.Account, error) {
	account, ok := store.Account().FindByID(accountID)
	if !ok {
		return nil, errors.ErrAccountNotFound.WithDetails("account ID: " + accountID)
	}
	return account, nil
}

func findActiveAccount(store *repository.Store, accountID string) (*domain.Account, error) {
	account, err := findAccount(store, accountID)
	if err != nil {
		return nil, err
	}
	if !account.Active {
		return nil, errors.ErrInactiveAccount.WithDetails("account ID: " + accountID)
	}
	return account, nil
}

func accountKeys(accountIDs ...string) []string {
	keys := make([]string, len(accountIDs))
	for i, id := range accountIDs {
		keys[i] = repository.AccountLockKey(id)
	}
	return keys
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
