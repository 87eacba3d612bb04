// file: service/account_service.go

package service

import (
	"errors"
	"fmt"

	"go-atm-cli/common"
	"go-atm-cli/logger"
	"go-atm-cli/model"
	"go-atm-cli/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrAuthFailed        = errors.New("account number or PIN incorrect")
	ErrStoreFull         = errors.New("system full, cannot create more accounts")
	ErrInvalidPIN        = errors.New("PIN must be exactly 4 digits")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNoHistory is re-exported so callers depend on the service alone.
	ErrNoHistory = repository.ErrNoHistory
)

// firstAccountNumber is assigned to the first account ever created; later
// accounts get the highest existing number plus one.
const firstAccountNumber = 1001

// seedAccounts are written to an empty store on first start so the terminal
// is usable out of the box.
var seedAccounts = []struct {
	number  int
	pin     int
	balance string
}{
	{1001, 1234, "5000.00"},
	{1002, 5678, "2500.00"},
	{1003, 9090, "750.75"},
}

// AccountService owns the business rules of the terminal: authentication,
// account creation and the money operations. Every mutation persists the
// full store and, where the rules say so, appends a history entry.
type AccountService struct {
	repo    repository.IAccountRepository
	history repository.IHistoryRepository
}

func NewAccountService(repo repository.IAccountRepository, history repository.IHistoryRepository) *AccountService {
	return &AccountService{
		repo:    repo,
		history: history,
	}
}

// Initialize loads the persisted store and seeds the demo accounts when the
// store comes up empty, persisting them immediately.
func (s *AccountService) Initialize() error {
	if err := s.repo.Load(); err != nil {
		return fmt.Errorf("could not load account store: %w", err)
	}

	if s.repo.Count() == 0 {
		for _, seed := range seedAccounts {
			balance, err := decimal.NewFromString(seed.balance)
			if err != nil {
				return fmt.Errorf("bad seed balance %q: %w", seed.balance, err)
			}
			s.repo.Append(&model.Account{Number: seed.number, PIN: seed.pin, Balance: balance})
		}
		logger.Log.WithField("count", len(seedAccounts)).Info("Empty store seeded with demo accounts")
	}
	return nil
}

// Authenticate scans the store in storage order and returns the first
// account matching both number and PIN.
func (s *AccountService) Authenticate(number, pin int) (*model.Account, error) {
	account := s.repo.Find(number, pin)
	if account == nil {
		logger.Log.WithField("account_number", number).Info("Authentication failed")
		return nil, ErrAuthFailed
	}
	logger.Log.WithField("account_number", number).Info("Authentication succeeded")
	return account, nil
}

// CreateAccount opens a new account with the next sequential number.
// The store capacity and the PIN range are checked before anything mutates;
// account creation itself writes no history entry.
func (s *AccountService) CreateAccount(pin int, initialBalance decimal.Decimal) (*model.Account, error) {
	if s.repo.Count() >= s.repo.MaxAccounts() {
		return nil, ErrStoreFull
	}

	if err := common.ValidateStruct(model.CreateAccountRequest{PIN: pin}); err != nil {
		return nil, ErrInvalidPIN
	}
	if initialBalance.IsNegative() {
		return nil, ErrInvalidAmount
	}

	number := firstAccountNumber
	if last := s.repo.LastNumber(); last != 0 {
		number = last + 1
	}

	account := &model.Account{Number: number, PIN: pin, Balance: initialBalance}
	s.repo.Append(account)

	logger.Log.WithFields(logrus.Fields{
		"account_number": number,
		"balance":        initialBalance.StringFixed(2),
	}).Info("Account created")
	return account, nil
}

// Deposit adds a strictly positive amount to the account, persists the
// store and appends a history entry.
func (s *AccountService) Deposit(account *model.Account, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	account.Balance = account.Balance.Add(amount)
	s.repo.Save()
	s.history.Append(account.Number, fmt.Sprintf(
		"Deposited: Rs. %s | Balance: Rs. %s", amount.StringFixed(2), account.Balance.StringFixed(2)))

	logger.Log.WithFields(logrus.Fields{
		"account_number": account.Number,
		"amount":         amount.StringFixed(2),
		"new_balance":    account.Balance.StringFixed(2),
	}).Info("Deposit completed")
	return nil
}

// Withdraw removes a strictly positive amount not exceeding the balance.
// On an insufficient balance nothing mutates and no history is written.
func (s *AccountService) Withdraw(account *model.Account, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(account.Balance) {
		return ErrInsufficientFunds
	}

	account.Balance = account.Balance.Sub(amount)
	s.repo.Save()
	s.history.Append(account.Number, fmt.Sprintf(
		"Withdrew: Rs. %s | Balance: Rs. %s", amount.StringFixed(2), account.Balance.StringFixed(2)))

	logger.Log.WithFields(logrus.Fields{
		"account_number": account.Number,
		"amount":         amount.StringFixed(2),
		"new_balance":    account.Balance.StringFixed(2),
	}).Info("Withdrawal completed")
	return nil
}

// ChangePIN replaces the account's PIN after range validation, persists the
// store and appends a history entry.
func (s *AccountService) ChangePIN(account *model.Account, newPIN int) error {
	if err := common.ValidateStruct(model.ChangePINRequest{NewPIN: newPIN}); err != nil {
		return ErrInvalidPIN
	}

	account.PIN = newPIN
	s.repo.Save()
	s.history.Append(account.Number, "Action: PIN changed.")

	logger.Log.WithField("account_number", account.Number).Info("PIN changed")
	return nil
}

// History returns the account's full transaction log, verbatim and in file
// order. Read-only; repeated calls never mutate anything.
func (s *AccountService) History(accountNumber int) ([]string, error) {
	return s.history.ReadAll(accountNumber)
}
