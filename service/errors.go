package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Validation failures: the request itself is malformed and must be corrected
// by the caller.
var (
	ErrInvalidAmount           = errors.New("transaction amount must be greater than zero")
	ErrUnknownTransactionType  = errors.New("unknown transaction type")
	ErrMissingAccountReference = errors.New("required account reference is missing")
)

// Business-rule and not-found failures.
var (
	ErrFeeAlreadyCharged     = errors.New("monthly fee already charged for this account this month")
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrCustomerAlreadyExists = errors.New("customer with this name already exists")
	ErrUnknownAccountType    = errors.New("unknown account type")
)

// AccountNotFoundError identifies which referenced account failed to resolve.
type AccountNotFoundError struct {
	AccountID int
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %d not found", e.AccountID)
}

// InsufficientFundsError reports how much was needed against what was
// available. Fee is non-zero when a surcharge contributed to the required
// amount, so callers can see the fee was the cause.
type InsufficientFundsError struct {
	AccountID int
	Required  decimal.Decimal
	Available decimal.Decimal
	Fee       decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	if e.Fee.IsPositive() {
		return fmt.Sprintf("not enough money in account %d: need %s (including %s fee), have %s",
			e.AccountID, e.Required.String(), e.Fee.String(), e.Available.String())
	}
	return fmt.Sprintf("not enough money in account %d: need %s, have %s",
		e.AccountID, e.Required.String(), e.Available.String())
}
