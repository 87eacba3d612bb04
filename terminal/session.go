// Package terminal implements the interactive login and menu loops of the
// ATM. Input arrives as whitespace-separated numeric tokens from an injected
// reader; a token that fails to parse is consumed, so one bad entry never
// wedges the prompt loop.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"go-atm-cli/logger"
	"go-atm-cli/model"
	"go-atm-cli/service"

	"github.com/shopspring/decimal"
)

// ErrLockedOut reports that the configured login attempts were exhausted.
// The caller is expected to terminate the process.
var ErrLockedOut = errors.New("too many failed login attempts")

// errNotNumeric marks a consumed token that did not parse as a number.
var errNotNumeric = errors.New("input is not numeric")

// errInputClosed marks end of input; the session ends cleanly.
var errInputClosed = errors.New("input closed")

// Session drives one user through the login and menu state machine.
// current is the authenticated account, or nil while logged out.
type Session struct {
	svc         *service.AccountService
	in          *bufio.Scanner
	out         io.Writer
	maxAttempts int
	current     *model.Account
}

func NewSession(svc *service.AccountService, in io.Reader, out io.Writer, maxAttempts int) *Session {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	return &Session{
		svc:         svc,
		in:          scanner,
		out:         out,
		maxAttempts: maxAttempts,
	}
}

// Run loops login rounds until the input ends or the attempt budget of a
// round is exhausted. Each completed round (logout) starts a fresh one with
// a full attempt budget.
func (s *Session) Run() error {
	fmt.Fprintln(s.out, "Welcome to the Secure ATM System")
	for {
		err := s.login()
		if errors.Is(err, errInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// login prompts for credentials until authentication succeeds or the
// attempts run out. Account number 0 branches into account creation without
// touching the attempt budget, as does any non-numeric entry.
func (s *Session) login() error {
	tries := s.maxAttempts
	for tries > 0 {
		fmt.Fprint(s.out, "\n--- Login ---\nEnter Account Number (0 to create new): ")
		number, err := s.readInt()
		if errors.Is(err, errNotNumeric) {
			fmt.Fprintln(s.out, "Invalid input. Please enter numbers only.")
			continue
		}
		if err != nil {
			return err
		}

		if number == 0 {
			if err := s.createAccount(); err != nil {
				return err
			}
			continue
		}

		fmt.Fprint(s.out, "Enter PIN: ")
		pin, err := s.readInt()
		if errors.Is(err, errNotNumeric) {
			fmt.Fprintln(s.out, "Invalid input.")
			continue
		}
		if err != nil {
			return err
		}

		account, authErr := s.svc.Authenticate(number, pin)
		if authErr == nil {
			fmt.Fprintf(s.out, "\nLogin successful! Welcome, Account %d.\n", number)
			s.current = account
			err := s.menu()
			s.current = nil
			return err
		}

		tries--
		fmt.Fprintf(s.out, "Login failed. Tries left: %d\n", tries)
	}

	fmt.Fprintln(s.out, "Too many failed attempts. System Locking.")
	logger.Log.Warn("Login attempts exhausted, locking terminal")
	return ErrLockedOut
}

// menu dispatches logged-in operations until logout.
func (s *Session) menu() error {
	for {
		fmt.Fprintf(s.out, "\n== ATM Menu (Acc: %d) ==\n", s.current.Number)
		fmt.Fprint(s.out, "1. Balance Inquiry\n2. Deposit\n3. Withdraw\n4. Change PIN\n5. Transaction History\n6. Logout\n7. Create Additional Account\nChoice: ")

		choice, err := s.readInt()
		if errors.Is(err, errNotNumeric) {
			fmt.Fprintln(s.out, "Invalid input. Use numbers 1-7.")
			continue
		}
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			fmt.Fprintf(s.out, "Current Balance: Rs. %s\n", s.current.Balance.StringFixed(2))
		case 2:
			err = s.deposit()
		case 3:
			err = s.withdraw()
		case 4:
			err = s.changePIN()
		case 5:
			s.showHistory()
		case 6:
			fmt.Fprintln(s.out, "Logged out successfully.")
			return nil
		case 7:
			err = s.createAccount()
		default:
			fmt.Fprintln(s.out, "Invalid choice.")
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) deposit() error {
	fmt.Fprint(s.out, "Deposit amount (0 to cancel): Rs. ")
	amount, err := s.readAmount()
	if errors.Is(err, errNotNumeric) {
		fmt.Fprintln(s.out, "Invalid amount.")
		return nil
	}
	if err != nil {
		return err
	}
	if amount.IsNegative() {
		fmt.Fprintln(s.out, "Invalid amount.")
		return nil
	}
	if amount.IsZero() {
		return nil
	}

	if err := s.svc.Deposit(s.current, amount); err != nil {
		fmt.Fprintf(s.out, "Error: %s\n", err)
		return nil
	}
	fmt.Fprintln(s.out, "Deposit successful.")
	return nil
}

func (s *Session) withdraw() error {
	fmt.Fprint(s.out, "Withdraw amount (0 to cancel): Rs. ")
	amount, err := s.readAmount()
	if errors.Is(err, errNotNumeric) {
		fmt.Fprintln(s.out, "Invalid amount.")
		return nil
	}
	if err != nil {
		return err
	}
	if amount.IsNegative() {
		fmt.Fprintln(s.out, "Invalid amount.")
		return nil
	}
	if amount.IsZero() {
		return nil
	}

	if err := s.svc.Withdraw(s.current, amount); err != nil {
		fmt.Fprintf(s.out, "Error: %s\n", err)
		return nil
	}
	fmt.Fprintln(s.out, "Withdrawal successful.")
	return nil
}

func (s *Session) changePIN() error {
	fmt.Fprint(s.out, "Enter new 4-digit PIN (0 to cancel): ")
	newPIN, err := s.readInt()
	if errors.Is(err, errNotNumeric) {
		return nil
	}
	if err != nil {
		return err
	}
	if newPIN == 0 {
		return nil
	}

	if err := s.svc.ChangePIN(s.current, newPIN); err != nil {
		fmt.Fprintf(s.out, "Error: %s\n", err)
		return nil
	}
	fmt.Fprintln(s.out, "PIN updated successfully.")
	return nil
}

func (s *Session) showHistory() {
	lines, err := s.svc.History(s.current.Number)
	if err != nil {
		fmt.Fprintln(s.out, "No transaction history found.")
		return
	}
	fmt.Fprintln(s.out, "\n--- Transaction History ---")
	for _, line := range lines {
		fmt.Fprintln(s.out, line)
	}
}

// createAccount runs the create-account dialog. A newly created account
// never becomes the logged-in account. Validation failures abort the
// dialog without mutating the store.
func (s *Session) createAccount() error {
	fmt.Fprint(s.out, "\nSet 4-digit PIN: ")
	pin, err := s.readInt()
	if errors.Is(err, errNotNumeric) {
		fmt.Fprintln(s.out, "Invalid PIN. Creation aborted.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprint(s.out, "Initial deposit amount: Rs. ")
	balance, err := s.readAmount()
	if errors.Is(err, errNotNumeric) {
		fmt.Fprintln(s.out, "Invalid amount. Creation aborted.")
		return nil
	}
	if err != nil {
		return err
	}

	account, createErr := s.svc.CreateAccount(pin, balance)
	if createErr != nil {
		fmt.Fprintf(s.out, "Error: %s\n", createErr)
		return nil
	}
	fmt.Fprintf(s.out, "Account %d created successfully!\n", account.Number)
	return nil
}

// readInt consumes the next token and parses it as an integer.
func (s *Session) readInt() (int, error) {
	if !s.in.Scan() {
		return 0, errInputClosed
	}
	n, err := strconv.Atoi(s.in.Text())
	if err != nil {
		return 0, errNotNumeric
	}
	return n, nil
}

// readAmount consumes the next token and parses it as a decimal amount.
func (s *Session) readAmount() (decimal.Decimal, error) {
	if !s.in.Scan() {
		return decimal.Zero, errInputClosed
	}
	amount, err := decimal.NewFromString(s.in.Text())
	if err != nil {
		return decimal.Zero, errNotNumeric
	}
	return amount, nil
}
