package service

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"bank-ledger/internal/domain"
	"bank-ledger/internal/errors"
	"bank-ledger/internal/repository"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type LedgerTestSuite struct {
	suite.Suite
	store        *repository.Store
	accounts     *AccountService
	transactions *TransactionService
	customers    *CustomerService
}

func (s *LedgerTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.store = repository.NewStore(logger)
	s.transactions = NewTransactionService(s.store, logger)
	s.accounts = NewAccountService(s.store, s.transactions, logger)
	s.customers = NewCustomerService(s.store, logger)
}

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (s *LedgerTestSuite) openAccount(accountType domain.AccountType, initial string) *domain.Account {
	account, err := s.accounts.CreateAccount("CUST-001", accountType, dec(initial))
	s.Require().NoError(err)
	return account
}

func (s *LedgerTestSuite) balance(accountID string) decimal.Decimal {
	balance, err := s.accounts.GetBalance(accountID)
	s.Require().NoError(err)
	return balance
}

func (s *LedgerTestSuite) TestCreateAccount_RecordsInitialDeposit() {
	account := s.openAccount(domain.AccountTypeChecking, "250.00")

	s.True(account.Balance.Equal(dec("250.00")))
	s.True(account.Active)

	history := s.transactions.GetAccountTransactions(account.ID)
	s.Require().Len(history, 1)
	s.Equal(domain.TransactionTypeDeposit, history[0].Type)
	s.Equal("Initial deposit", history[0].Description)
	s.True(history[0].BalanceAfter.Equal(dec("250.00")))
	s.True(strings.HasPrefix(history[0].ReferenceNumber, "REF-"))
}

func (s *LedgerTestSuite) TestCreateAccount_RejectsZeroInitialDeposit() {
	_, err := s.accounts.CreateAccount("CUST-001", domain.AccountTypeSavings, dec("0"))
	s.ErrorIs(err, errors.ErrInvalidAmount)

	_, err = s.accounts.CreateAccount("CUST-001", domain.AccountTypeSavings, dec("0.00"))
	s.ErrorIs(err, errors.ErrInvalidAmount)

	s.Empty(s.accounts.GetAllAccounts())
	s.Zero(s.store.Transaction().Count())
}

func (s *LedgerTestSuite) TestCreateAccount_InvalidInput() {
	_, err := s.accounts.CreateAccount("  ", domain.AccountTypeSavings, dec("10"))
	s.ErrorIs(err, errors.ErrInvalidIdentifier)

	_, err = s.accounts.CreateAccount("CUST-001", domain.AccountTypeSavings, dec("-5"))
	s.ErrorIs(err, errors.ErrInvalidAmount)

	_, err = s.accounts.CreateAccount("CUST-001", domain.AccountTypeSavings, dec("1000000.01"))
	s.ErrorIs(err, errors.ErrInvalidAmount)

	_, err = s.accounts.CreateAccount("CUST-001", domain.AccountType("GOLD"), dec("10"))
	s.ErrorIs(err, errors.ErrInvalidTransaction)

	s.Empty(s.accounts.GetAllAccounts())
}

func (s *LedgerTestSuite) TestDeposit_UpdatesBalanceAndHistory() {
	account := s.openAccount(domain.AccountTypeSavings, "100.00")
	before := s.transactions.GetTransactionCount(account.ID)

	tx, err := s.accounts.Deposit(account.ID, dec("25.50"), "")
	s.Require().NoError(err)

	s.True(s.balance(account.ID).Equal(dec("125.50")))
	s.Equal(before+1, s.transactions.GetTransactionCount(account.ID))
	s.Equal("Deposit", tx.Description)
	s.True(tx.BalanceAfter.Equal(dec("125.50")))

	latest := s.transactions.GetAccountTransactions(account.ID)[0]
	s.Equal(tx.ID, latest.ID)
}

func (s *LedgerTestSuite) TestDeposit_Failures() {
	account := s.openAccount(domain.AccountTypeSavings, "100.00")

	_, err := s.accounts.Deposit(account.ID, dec("0"), "")
	s.ErrorIs(err, errors.ErrInvalidAmount)

	_, err = s.accounts.Deposit("missing", dec("10"), "")
	s.ErrorIs(err, errors.ErrAccountNotFound)

	_, err = s.accounts.DeactivateAccount(account.ID)
	s.Require().NoError(err)
	_, err = s.accounts.Deposit(account.ID, dec("10"), "")
	s.ErrorIs(err, errors.ErrInactiveAccount)
	s.ErrorIs(err, errors.ErrInvalidTransaction)

	s.True(s.balance(account.ID).Equal(dec("100.00")))
	s.Equal(1, s.transactions.GetTransactionCount(account.ID))
}

func (s *LedgerTestSuite) TestWithdraw() {
	account := s.openAccount(domain.AccountTypeChecking, "100.00")

	tx, err := s.accounts.Withdraw(account.ID, dec("40.00"), "ATM")
	s.Require().NoError(err)
	s.Equal("ATM", tx.Description)
	s.Equal(domain.TransactionTypeWithdrawal, tx.Type)
	s.True(s.balance(account.ID).Equal(dec("60.00")))

	_, err = s.accounts.Withdraw(account.ID, dec("60.01"), "")
	s.ErrorIs(err, errors.ErrInsufficientFunds)

	var funds *errors.InsufficientFundsError
	s.Require().ErrorAs(err, &funds)
	s.Equal(account.ID, funds.AccountID)
	s.True(funds.Requested.Equal(dec("60.01")))
	s.True(funds.Available.Equal(dec("60.00")))

	s.True(s.balance(account.ID).Equal(dec("60.00")))
	s.Equal(2, s.transactions.GetTransactionCount(account.ID))

	// withdrawing the full balance is allowed
	_, err = s.accounts.Withdraw(account.ID, dec("60.00"), "")
	s.Require().NoError(err)
	s.True(s.balance(account.ID).IsZero())
}

func (s *LedgerTestSuite) TestMinimumAmountBoundary() {
	account := s.openAccount(domain.AccountTypeChecking, "1.00")

	_, err := s.accounts.Deposit(account.ID, dec("0.01"), "")
	s.NoError(err)
	_, err = s.accounts.Withdraw(account.ID, dec("0.01"), "")
	s.NoError(err)

	for _, amount := range []string{"0.00", "-0.01", "0.009"} {
		_, err = s.accounts.Deposit(account.ID, dec(amount), "")
		s.ErrorIs(err, errors.ErrInvalidAmount, amount)
	}
	s.True(s.balance(account.ID).Equal(dec("1.00")))
}

func (s *LedgerTestSuite) TestChargeFee() {
	account := s.openAccount(domain.AccountTypeChecking, "20.00")

	tx, err := s.accounts.ChargeFee(account.ID, dec("2.50"), "Monthly maintenance")
	s.Require().NoError(err)
	s.Equal(domain.TransactionTypeFee, tx.Type)
	s.True(tx.BalanceAfter.Equal(dec("17.50")))

	_, err = s.accounts.ChargeFee(account.ID, dec("50"), "")
	s.ErrorIs(err, errors.ErrInsufficientFunds)
}

func (s *LedgerTestSuite) TestTransfer_ConservesBalance() {
	source := s.openAccount(domain.AccountTypeSavings, "500.00")
	destination := s.openAccount(domain.AccountTypeChecking, "100.00")

	result, err := s.accounts.Transfer(&TransferRequest{
		SourceAccountID:      source.ID,
		DestinationAccountID: destination.ID,
		Amount:               dec("125.25"),
	})
	s.Require().NoError(err)

	s.True(s.balance(source.ID).Equal(dec("374.75")))
	s.True(s.balance(destination.ID).Equal(dec("225.25")))
	s.True(s.balance(source.ID).Add(s.balance(destination.ID)).Equal(dec("600.00")))

	s.True(strings.HasPrefix(result.ReferenceNumber, "TRF-"))
	s.Equal(source.ID, result.Debit.AccountID)
	s.Equal(destination.ID, result.Credit.AccountID)
	s.True(result.Debit.BalanceAfter.Equal(dec("374.75")))
	s.True(result.Credit.BalanceAfter.Equal(dec("225.25")))
	s.Contains(result.Debit.Description, "Transfer to "+destination.ID)
	s.Contains(result.Credit.Description, "Transfer from "+source.ID)

	legs := s.transactions.GetTransactionsByReference(result.ReferenceNumber)
	s.Require().Len(legs, 2)
	for _, leg := range legs {
		s.Equal(domain.TransactionTypeTransfer, leg.Type)
		s.True(leg.Amount.Equal(dec("125.25")))
	}
	s.Equal(2, s.transactions.GetTransactionCount(source.ID))
	s.Equal(2, s.transactions.GetTransactionCount(destination.ID))
}

func (s *LedgerTestSuite) TestTransfer_Rejections() {
	source := s.openAccount(domain.AccountTypeSavings, "50.00")
	destination := s.openAccount(domain.AccountTypeChecking, "10.00")
	total := len(s.store.Transaction().FindAll())

	cases := []struct {
		name string
		req  *TransferRequest
		want error
	}{
		{"self transfer", &TransferRequest{source.ID, source.ID, dec("1")}, errors.ErrSameAccountTransfer},
		{"missing source", &TransferRequest{"missing", destination.ID, dec("1")}, errors.ErrAccountNotFound},
		{"missing destination", &TransferRequest{source.ID, "missing", dec("1")}, errors.ErrAccountNotFound},
		{"insufficient funds", &TransferRequest{source.ID, destination.ID, dec("50.01")}, errors.ErrInsufficientFunds},
		{"zero amount", &TransferRequest{source.ID, destination.ID, dec("0")}, errors.ErrInvalidAmount},
		{"blank source", &TransferRequest{"", destination.ID, dec("1")}, errors.ErrInvalidIdentifier},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.accounts.Transfer(tc.req)
			s.ErrorIs(err, tc.want)
		})
	}

	_, err := s.accounts.Transfer(&TransferRequest{source.ID, source.ID, dec("1")})
	s.ErrorIs(err, errors.ErrInvalidTransaction)

	_, err = s.accounts.DeactivateAccount(destination.ID)
	s.Require().NoError(err)
	_, err = s.accounts.Transfer(&TransferRequest{source.ID, destination.ID, dec("1")})
	s.ErrorIs(err, errors.ErrInactiveAccount)

	s.True(s.balance(source.ID).Equal(dec("50.00")))
	s.True(s.balance(destination.ID).Equal(dec("10.00")))
	s.Len(s.store.Transaction().FindAll(), total)
}

func (s *LedgerTestSuite) TestApplyInterest() {
	savings := s.openAccount(domain.AccountTypeSavings, "1000.00")

	tx, err := s.accounts.ApplyInterest(savings.ID)
	s.Require().NoError(err)
	s.Require().NotNil(tx)
	s.Equal(domain.TransactionTypeInterest, tx.Type)
	s.True(tx.Amount.Equal(dec("30.00")))
	s.True(tx.BalanceAfter.Equal(dec("1030.00")))
	s.Equal("Interest credit at 3%", tx.Description)
	s.True(s.balance(savings.ID).Equal(dec("1030.00")))
	s.Len(s.transactions.GetTransactionsByType(domain.TransactionTypeInterest), 1)
}

func (s *LedgerTestSuite) TestApplyInterest_IsExact() {
	moneyMarket := s.openAccount(domain.AccountTypeMoneyMarket, "10.10")

	tx, err := s.accounts.ApplyInterest(moneyMarket.ID)
	s.Require().NoError(err)
	s.True(tx.Amount.Equal(dec("0.404")), tx.Amount.String())
	s.True(s.balance(moneyMarket.ID).Equal(dec("10.504")))
	s.Equal("Interest credit at 4%", tx.Description)

	small := s.openAccount(domain.AccountTypeChecking, "0.10")
	tx, err = s.accounts.ApplyInterest(small.ID)
	s.Require().NoError(err)
	s.Require().NotNil(tx)
	s.True(tx.Amount.Equal(dec("0.001")))
	s.True(s.balance(small.ID).Equal(dec("0.101")))
}

func (s *LedgerTestSuite) TestApplyInterest_NothingToCredit() {
	empty := s.openAccount(domain.AccountTypeFixedDeposit, "10.00")
	_, err := s.accounts.Withdraw(empty.ID, dec("10.00"), "")
	s.Require().NoError(err)

	tx, err := s.accounts.ApplyInterest(empty.ID)
	s.Require().NoError(err)
	s.Nil(tx)
	s.Equal(2, s.transactions.GetTransactionCount(empty.ID))

	_, err = s.accounts.ApplyInterest("missing")
	s.ErrorIs(err, errors.ErrAccountNotFound)
}

func (s *LedgerTestSuite) TestAccountStatusIsIdempotent() {
	account := s.openAccount(domain.AccountTypeSavings, "1.00")

	for i := 0; i < 2; i++ {
		updated, err := s.accounts.DeactivateAccount(account.ID)
		s.Require().NoError(err)
		s.False(updated.Active)
	}
	s.Empty(s.accounts.GetActiveAccounts())

	updated, err := s.accounts.ActivateAccount(account.ID)
	s.Require().NoError(err)
	s.True(updated.Active)

	_, err = s.accounts.ActivateAccount("missing")
	s.ErrorIs(err, errors.ErrAccountNotFound)
}

func (s *LedgerTestSuite) TestTotalsAndQueries() {
	a := s.openAccount(domain.AccountTypeSavings, "100.00")
	b := s.openAccount(domain.AccountTypeChecking, "50.00")

	_, err := s.accounts.Deposit(a.ID, dec("20"), "")
	s.Require().NoError(err)
	_, err = s.accounts.Withdraw(a.ID, dec("5"), "")
	s.Require().NoError(err)
	_, err = s.accounts.Withdraw(a.ID, dec("7.5"), "")
	s.Require().NoError(err)

	s.True(s.transactions.GetTotalDeposits(a.ID).Equal(dec("120")))
	s.True(s.transactions.GetTotalWithdrawals(a.ID).Equal(dec("12.5")))
	s.True(s.accounts.GetTotalBalance().Equal(dec("157.50")))
	s.Len(s.accounts.GetCustomerAccounts("CUST-001"), 2)
	s.Empty(s.accounts.GetCustomerAccounts("CUST-404"))

	first := s.transactions.GetAccountTransactions(b.ID)[0]
	found, err := s.transactions.GetTransaction(first.ID)
	s.Require().NoError(err)
	s.Equal(first, found)

	_, err = s.transactions.GetTransaction("missing")
	s.ErrorIs(err, errors.ErrTransactionNotFound)

	now := time.Now()
	s.Len(s.transactions.GetTransactionsByDateRange(now.Add(-time.Minute), now.Add(time.Minute)), 5)
	s.Len(s.transactions.GetAccountTransactionsByDateRange(a.ID, now.Add(-time.Minute), now.Add(time.Minute)), 4)
	s.Empty(s.transactions.GetTransactionsByDateRange(now.Add(time.Hour), now.Add(2*time.Hour)))
}

func (s *LedgerTestSuite) TestRecordTransaction_Validation() {
	_, err := s.transactions.RecordTransaction("", domain.TransactionTypeDeposit, dec("1"), dec("1"), "")
	s.ErrorIs(err, errors.ErrInvalidTransaction)

	_, err = s.transactions.RecordTransaction("ACC-1", "", dec("1"), dec("1"), "")
	s.ErrorIs(err, errors.ErrInvalidTransaction)

	_, err = s.transactions.RecordTransaction("ACC-1", domain.TransactionTypeDeposit, dec("0"), dec("1"), "")
	s.ErrorIs(err, errors.ErrInvalidTransaction)

	s.Zero(s.store.Transaction().Count())
}

func (s *LedgerTestSuite) validCustomer(email string) *CreateCustomerRequest {
	return &CreateCustomerRequest{
		FirstName:   "John",
		LastName:    "Doe",
		Email:       email,
		PhoneNumber: "+1234567890",
		DateOfBirth: time.Date(1990, time.January, 15, 0, 0, 0, 0, time.UTC),
		Address:     "123 Main St, Anytown, USA",
	}
}

func (s *LedgerTestSuite) TestCreateCustomer() {
	customer, err := s.customers.CreateCustomer(s.validCustomer("john.doe@email.com"))
	s.Require().NoError(err)
	s.Equal("John Doe", customer.FullName())
	s.True(s.customers.ExistsByID(customer.ID))

	found, err := s.customers.GetCustomerByEmail("JOHN.DOE@email.com")
	s.Require().NoError(err)
	s.Equal(customer.ID, found.ID)

	_, err = s.customers.CreateCustomer(s.validCustomer("John.Doe@Email.com"))
	s.ErrorIs(err, errors.ErrDuplicateEmail)

	// inactive customers still own their email
	_, err = s.customers.DeactivateCustomer(customer.ID)
	s.Require().NoError(err)
	_, err = s.customers.CreateCustomer(s.validCustomer("john.doe@email.com"))
	s.ErrorIs(err, errors.ErrDuplicateEmail)

	s.Equal(1, s.customers.GetTotalCustomerCount())
	s.Empty(s.customers.GetAllActiveCustomers())

	_, err = s.customers.ActivateCustomer(customer.ID)
	s.Require().NoError(err)
	s.Len(s.customers.GetAllActiveCustomers(), 1)
	s.Len(s.customers.GetAllCustomers(), 1)
}

func (s *LedgerTestSuite) TestCreateCustomer_Validation() {
	young := s.validCustomer("young@email.com")
	young.DateOfBirth = time.Now().AddDate(-17, 0, 0)
	_, err := s.customers.CreateCustomer(young)
	s.ErrorIs(err, errors.ErrInvalidTransaction)

	badPhone := s.validCustomer("phone@email.com")
	badPhone.PhoneNumber = "0123"
	_, err = s.customers.CreateCustomer(badPhone)
	s.ErrorIs(err, errors.ErrInvalidInput)

	_, err = s.customers.CreateCustomer(nil)
	s.Error(err)

	_, err = s.customers.GetCustomer("missing")
	s.ErrorIs(err, errors.ErrCustomerNotFound)
	_, err = s.customers.DeactivateCustomer("missing")
	s.ErrorIs(err, errors.ErrCustomerNotFound)

	s.Zero(s.customers.GetTotalCustomerCount())
}

func (s *LedgerTestSuite) TestJohnDoeScenario() {
	customer, err := s.customers.CreateCustomer(s.validCustomer("john.doe@email.com"))
	s.Require().NoError(err)

	savings, err := s.accounts.CreateAccount(customer.ID, domain.AccountTypeSavings, dec("5000.00"))
	s.Require().NoError(err)
	checking, err := s.accounts.CreateAccount(customer.ID, domain.AccountTypeChecking, dec("1000.00"))
	s.Require().NoError(err)

	_, err = s.accounts.Deposit(savings.ID, dec("500.00"), "Salary deposit")
	s.Require().NoError(err)
	s.True(s.balance(savings.ID).Equal(dec("5500.00")))

	_, err = s.accounts.Withdraw(savings.ID, dec("200.00"), "ATM withdrawal")
	s.Require().NoError(err)
	s.True(s.balance(savings.ID).Equal(dec("5300.00")))

	_, err = s.accounts.Transfer(&TransferRequest{
		SourceAccountID:      savings.ID,
		DestinationAccountID: checking.ID,
		Amount:               dec("1000.00"),
	})
	s.Require().NoError(err)
	s.True(s.balance(savings.ID).Equal(dec("4300.00")))
	s.True(s.balance(checking.ID).Equal(dec("2000.00")))

	_, err = s.accounts.ApplyInterest(savings.ID)
	s.Require().NoError(err)
	s.True(s.balance(savings.ID).Equal(dec("4429.00")))

	s.Len(s.accounts.GetCustomerAccounts(customer.ID), 2)
	s.Equal(5, s.transactions.GetTransactionCount(savings.ID))
}

func TestTransfer_ConcurrentReciprocal(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewStore(logger)
	transactions := NewTransactionService(store, logger)
	accounts := NewAccountService(store, transactions, logger)

	a, err := accounts.CreateAccount("CUST-001", domain.AccountTypeChecking, dec("1000.00"))
	require.NoError(t, err)
	b, err := accounts.CreateAccount("CUST-002", domain.AccountTypeChecking, dec("1000.00"))
	require.NoError(t, err)

	var g errgroup.Group
	for i := 0; i < 100; i++ {
		from, to := a.ID, b.ID
		if i%2 == 1 {
			from, to = to, from
		}
		g.Go(func() error {
			_, err := accounts.Transfer(&TransferRequest{
				SourceAccountID:      from,
				DestinationAccountID: to,
				Amount:               dec("3.00"),
			})
			return err
		})
	}
	require.NoError(t, g.Wait())

	balanceA, _ := accounts.GetBalance(a.ID)
	balanceB, _ := accounts.GetBalance(b.ID)
	assert.True(t, balanceA.Add(balanceB).Equal(dec("2000.00")))
	assert.True(t, balanceA.Equal(dec("1000.00")))
	assert.Len(t, transactions.GetTransactionsByType(domain.TransactionTypeTransfer), 200)
}

func TestTransfer_ConcurrentDrainNeverOverdraws(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewStore(logger)
	transactions := NewTransactionService(store, logger)
	accounts := NewAccountService(store, transactions, logger)

	source, err := accounts.CreateAccount("CUST-001", domain.AccountTypeChecking, dec("100.00"))
	require.NoError(t, err)
	sink, err := accounts.CreateAccount("CUST-002", domain.AccountTypeChecking, dec("1.00"))
	require.NoError(t, err)

	var g errgroup.Group
	results := make([]error, 30)
	for i := range results {
		i := i
		g.Go(func() error {
			_, results[i] = accounts.Transfer(&TransferRequest{
				SourceAccountID:      source.ID,
				DestinationAccountID: sink.ID,
				Amount:               dec("10.00"),
			})
			return nil
		})
	}
	require.NoError(t, g.Wait())

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, errors.ErrInsufficientFunds)
	}
	assert.Equal(t, 10, succeeded)

	balance, _ := accounts.GetBalance(source.ID)
	assert.True(t, balance.IsZero())
}

func TestReferenceGenerator_Unique(t *testing.T) {
	refs := NewReferenceGenerator()
	seen := make(map[string]struct{})

	var g errgroup.Group
	out := make(chan string, 500)
	for i := 0; i < 500; i++ {
		g.Go(func() error {
			out <- refs.Next("TRF")
			return nil
		})
	}
	require.NoError(t, g.Wait())
	close(out)

	for ref := range out {
		assert.True(t, strings.HasPrefix(ref, "TRF-"))
		assert.Len(t, ref, len("TRF-")+26)
		seen[ref] = struct{}{}
	}
	assert.Len(t, seen, 500)
}

func TestTransfer_ConcurrentReadersSeeWholeTransfers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewStore(logger)
	transactions := NewTransactionService(store, logger)
	accounts := NewAccountService(store, transactions, logger)

	a, err := accounts.CreateAccount("CUST-001", domain.AccountTypeChecking, dec("1000.00"))
	require.NoError(t, err)
	b, err := accounts.CreateAccount("CUST-002", domain.AccountTypeChecking, dec("1000.00"))
	require.NoError(t, err)

	done := make(chan struct{})
	var readers errgroup.Group
	for r := 0; r < 4; r++ {
		readers.Go(func() error {
			for {
				select {
				case <-done:
					return nil
				default:
				}
				if total := accounts.GetTotalBalance(); !total.Equal(dec("2000.00")) {
					return fmt.Errorf("observed partial transfer: total %s", total)
				}
			}
		})
	}

	var writers errgroup.Group
	for i := 0; i < 2000; i++ {
		from, to := a.ID, b.ID
		if i%2 == 1 {
			from, to = to, from
		}
		writers.Go(func() error {
			_, err := accounts.Transfer(&TransferRequest{
				SourceAccountID:      from,
				DestinationAccountID: to,
				Amount:               dec("1.00"),
			})
			return err
		})
	}
	require.NoError(t, writers.Wait())
	close(done)
	require.NoError(t, readers.Wait())
}
