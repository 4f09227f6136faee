// Package ledger holds the account-ledger business rules: customer and account
// creation, debit, credit and transfer, enforced against injected stores.
package ledger

import "errors"

// Domain errors. All are recoverable-by-caller conditions; the HTTP layer maps
// each to a status code.
var (
	// ErrCustomerNotFound is returned when a customer id does not resolve.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrAccountNotFound is returned when a bank account id does not resolve.
	ErrAccountNotFound = errors.New("bank account not found")

	// ErrBalanceNotSufficient is returned when a debit exceeds the current
	// balance. Debiting the exact balance succeeds.
	ErrBalanceNotSufficient = errors.New("balance not sufficient")

	// ErrAmountNotPositive is returned when a debit or credit amount is zero
	// or negative.
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
)
