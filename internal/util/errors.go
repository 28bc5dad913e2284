// internal/util/errors.go
package util

import "errors"

// Common application-specific errors. Callers distinguish failure kinds with
// errors.Is (or the IsError helper) rather than by parsing message text.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input provided")

	// Transfer precondition failures. None of these ever produce a
	// persisted transaction record.
	ErrInvalidAmount       = errors.New("transfer amount must be a positive decimal")
	ErrSourceNotFound      = errors.New("source account not found")
	ErrDestinationNotFound = errors.New("destination account not found")
	ErrSameAccount         = errors.New("cannot transfer to the same account")
	ErrInsufficientFunds   = errors.New("insufficient funds")

	// ErrStoreFault marks a failure of the atomic balance+status update after
	// a transaction was already persisted in PENDING state.
	ErrStoreFault = errors.New("store fault during transfer")

	// ErrNotAuthorizedOrNotFound is deliberately ambiguous so account
	// existence does not leak across users.
	ErrNotAuthorizedOrNotFound = errors.New("account not found or unauthorized")

	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrDuplicateEntry         = errors.New("duplicate entry")
	ErrAccountHasTransactions = errors.New("account has transaction history and cannot be deleted")
)

// IsError reports whether err matches the given sentinel error.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
