// Command bankdemo drives the ledger through a fixed customer scenario and
// prints the resulting balances and history.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"bank-ledger/internal/config"
	"bank-ledger/internal/domain"
	"bank-ledger/internal/money"
	"bank-ledger/internal/repository"
	"bank-ledger/internal/service"
)

func main() {
	cfg := config.Load()
	logger := cfg.NewLogger(os.Stderr)

	logger.Info("Starting bank demo")
	if err := run(os.Stdout, cfg.DisplayCurrency, logger); err != nil {
		logger.Error("Demo failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Bank demo finished")
}

type demo struct {
	out          io.Writer
	currency     string
	accounts     *service.AccountService
	customers    *service.CustomerService
	transactions *service.TransactionService
}

func run(out io.Writer, currencyCode string, logger *slog.Logger) error {
	store := repository.NewStore(logger)
	transactions := service.NewTransactionService(store, logger)
	d := &demo{
		out:          out,
		currency:     currencyCode,
		accounts:     service.NewAccountService(store, transactions, logger),
		customers:    service.NewCustomerService(store, logger),
		transactions: transactions,
	}
	return d.scenario()
}

func (d *demo) scenario() error {
	d.println("===========================================")
	d.println("  BANK LEDGER DEMO")
	d.println("===========================================")

	d.println("1. Creating customers...")
	john, err := d.createCustomer("John", "Doe", "john.doe@email.com")
	if err != nil {
		return err
	}
	jane, err := d.createCustomer("Jane", "Smith", "jane.smith@email.com")
	if err != nil {
		return err
	}

	d.println("2. Creating accounts...")
	savings, err := d.accounts.CreateAccount(john.ID, domain.AccountTypeSavings, decimal.RequireFromString("5000.00"))
	if err != nil {
		return err
	}
	checking, err := d.accounts.CreateAccount(john.ID, domain.AccountTypeChecking, decimal.RequireFromString("2000.00"))
	if err != nil {
		return err
	}
	janeSavings, err := d.accounts.CreateAccount(jane.ID, domain.AccountTypeSavings, decimal.RequireFromString("3000.00"))
	if err != nil {
		return err
	}
	for _, account := range []*domain.Account{savings, checking, janeSavings} {
		d.printf("   %s  %-20s %s at %s\n",
			account.ID,
			account.Type.DisplayName(),
			d.format(account.Balance),
			money.Percent(account.Type.InterestRate()))
	}

	d.println("3. Performing transactions...")
	if _, err := d.accounts.Deposit(savings.ID, decimal.RequireFromString("500.00"), "Salary deposit"); err != nil {
		return err
	}
	if err := d.printBalance("after deposit", savings.ID); err != nil {
		return err
	}

	if _, err := d.accounts.Withdraw(savings.ID, decimal.RequireFromString("200.00"), "ATM withdrawal"); err != nil {
		return err
	}
	if err := d.printBalance("after withdrawal", savings.ID); err != nil {
		return err
	}

	transfer, err := d.accounts.Transfer(&service.TransferRequest{
		SourceAccountID:      savings.ID,
		DestinationAccountID: checking.ID,
		Amount:               decimal.RequireFromString("1000.00"),
	})
	if err != nil {
		return err
	}
	d.printf("   Transfer %s\n", transfer.ReferenceNumber)
	if err := d.printBalance("savings after transfer", savings.ID); err != nil {
		return err
	}
	if err := d.printBalance("checking after transfer", checking.ID); err != nil {
		return err
	}

	d.println("4. Applying interest...")
	if _, err := d.accounts.ApplyInterest(savings.ID); err != nil {
		return err
	}
	if err := d.printBalance("savings after interest", savings.ID); err != nil {
		return err
	}

	d.println("5. Savings history:")
	for _, tx := range d.transactions.GetAccountTransactions(savings.ID) {
		d.printf("   %s | %-15s | %14s | balance %s\n",
			tx.Timestamp.Format(time.DateTime),
			tx.Type.DisplayName(),
			d.format(tx.Amount),
			d.format(tx.BalanceAfter))
	}

	d.println("6. Statistics:")
	d.printf("   Customers:       %d\n", d.customers.GetTotalCustomerCount())
	d.printf("   Accounts:        %d\n", len(d.accounts.GetAllAccounts()))
	d.printf("   Active accounts: %d\n", len(d.accounts.GetActiveAccounts()))
	d.printf("   Total balance:   %s\n", d.format(d.accounts.GetTotalBalance()))

	d.println("Demo completed successfully")
	return nil
}

func (d *demo) createCustomer(first, last, email string) (*domain.Customer, error) {
	customer, err := d.customers.CreateCustomer(&service.CreateCustomerRequest{
		FirstName:   first,
		LastName:    last,
		Email:       email,
		PhoneNumber: "+1234567890",
		DateOfBirth: time.Date(1990, time.January, 15, 0, 0, 0, 0, time.UTC),
		Address:     "123 Main St, City, State 12345",
	})
	if err != nil {
		return nil, err
	}
	d.printf("   Created %s (%s)\n", customer.FullName(), customer.ID)
	return customer, nil
}

func (d *demo) printBalance(label, accountID string) error {
	balance, err := d.accounts.GetBalance(accountID)
	if err != nil {
		return err
	}
	d.printf("   Balance %s: %s\n", label, d.format(balance))
	return nil
}

func (d *demo) format(amount decimal.Decimal) string {
	return money.Format(amount, d.currency)
}

func (d *demo) println(s string) {
	fmt.Fprintln(d.out, s)
}

func (d *demo) printf(format string, args ...interface{}) {
	fmt.Fprintf(d.out, format, args...)
}
