package repository

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go-atm-cli/logger"

	"github.com/sirupsen/logrus"
)

// ErrNoHistory reports that an account has no transaction history file yet.
var ErrNoHistory = errors.New("no transaction history found")

// IHistoryRepository defines the contract for per-account transaction logs.
type IHistoryRepository interface {
	Append(accountNumber int, entry string)
	ReadAll(accountNumber int) ([]string, error)
}

// HistoryRepository maintains one append-only text file per account,
// named history_<number>.txt under the configured directory.
type HistoryRepository struct {
	dir string
}

func NewHistoryRepository(dir string) *HistoryRepository {
	return &HistoryRepository{dir: dir}
}

func (r *HistoryRepository) filename(accountNumber int) string {
	return filepath.Join(r.dir, fmt.Sprintf("history_%d.txt", accountNumber))
}

// Append writes one event line to the account's history file, creating it
// on first use. Entries must not contain a newline. An open failure is
// logged but not surfaced.
func (r *HistoryRepository) Append(accountNumber int, entry string) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_number": accountNumber,
		"entry":          entry,
	})

	f, err := os.OpenFile(r.filename(accountNumber), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.WithError(err).Warn("Could not open history file for appending; entry dropped")
		return
	}
	defer f.Close()

	fmt.Fprintln(f, entry)
	log.Info("History entry appended")
}

// ReadAll returns every history line for the account, verbatim and in file
// order. It returns ErrNoHistory when the account has no history file.
func (r *HistoryRepository) ReadAll(accountNumber int) ([]string, error) {
	f, err := os.Open(r.filename(accountNumber))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoHistory
		}
		logger.Log.WithError(err).WithField("account_number", accountNumber).
			Error("Failed to open history file for reading")
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
