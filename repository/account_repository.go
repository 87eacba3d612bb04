package repository

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go-atm-cli/logger"
	"go-atm-cli/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// IAccountRepository defines the contract for account store operations.
type IAccountRepository interface {
	Load() error
	Save()
	All() []*model.Account
	Count() int
	MaxAccounts() int
	LastNumber() int
	Append(account *model.Account)
	Find(number, pin int) *model.Account
}

// AccountRepository keeps the ordered account list in memory and mirrors it
// to a flat text file, one `number pin balance` record per line.
type AccountRepository struct {
	path        string
	maxAccounts int
	accounts    []*model.Account
}

func NewAccountRepository(path string, maxAccounts int) *AccountRepository {
	return &AccountRepository{path: path, maxAccounts: maxAccounts}
}

// Load replaces the in-memory list with the records in the accounts file.
// Reading stops at end of file, at the store capacity, or at the first
// malformed record; records parsed before a malformed one are kept.
// A missing file simply yields an empty store.
func (r *AccountRepository) Load() error {
	log := logger.Log.WithField("path", r.path)

	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.accounts = nil
			return nil
		}
		log.WithError(err).Warn("Could not open accounts file for reading")
		r.accounts = nil
		return nil
	}
	defer f.Close()

	r.accounts = nil
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if len(r.accounts) >= r.maxAccounts {
			break
		}
		account, ok := parseRecord(scanner.Text())
		if !ok {
			break
		}
		r.accounts = append(r.accounts, account)
	}

	log.WithField("count", len(r.accounts)).Info("Accounts loaded from file")
	return scanner.Err()
}

// Save rewrites the accounts file wholesale with the current list.
// A failure to open the destination is logged but not surfaced; the
// interactive loop continues with in-memory state.
func (r *AccountRepository) Save() {
	log := logger.Log.WithFields(logrus.Fields{
		"path":  r.path,
		"count": len(r.accounts),
	})

	f, err := os.Create(r.path)
	if err != nil {
		log.WithError(err).Warn("Could not open accounts file for writing; in-memory state not persisted")
		return
	}
	defer f.Close()

	for _, a := range r.accounts {
		fmt.Fprintf(f, "%d %d %s\n", a.Number, a.PIN, a.Balance.StringFixed(2))
	}
	log.Info("Accounts saved to file")
}

// All returns the accounts in storage order. Callers share the underlying
// records; mutations must be followed by Save.
func (r *AccountRepository) All() []*model.Account {
	return r.accounts
}

func (r *AccountRepository) Count() int {
	return len(r.accounts)
}

// MaxAccounts reports the capacity the store was configured with.
func (r *AccountRepository) MaxAccounts() int {
	return r.maxAccounts
}

// LastNumber returns the most recently assigned account number, or 0 when
// the store is empty.
func (r *AccountRepository) LastNumber() int {
	if len(r.accounts) == 0 {
		return 0
	}
	return r.accounts[len(r.accounts)-1].Number
}

// Append adds the account to the list and persists the whole store.
func (r *AccountRepository) Append(account *model.Account) {
	r.accounts = append(r.accounts, account)
	r.Save()
}

// Find scans the store in storage order for a matching number and PIN.
// It returns nil when no account matches.
func (r *AccountRepository) Find(number, pin int) *model.Account {
	for _, a := range r.accounts {
		if a.Number == number && a.PIN == pin {
			return a
		}
	}
	return nil
}

// parseRecord parses one `number pin balance` line.
func parseRecord(line string) (*model.Account, bool) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return nil, false
	}
	number, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, false
	}
	pin, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, false
	}
	balance, err := decimal.NewFromString(fields[2])
	if err != nil {
		return nil, false
	}
	return &model.Account{Number: number, PIN: pin, Balance: balance}, true
}
