package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType tags the rule set that applies to an account.
type AccountType string

const (
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeStudent  AccountType = "STUDENT"
)

type Account struct {
	ID          int             `json:"id"`
	CustomerID  int             `json:"customer_id"`
	AccountType AccountType     `json:"account_type"`
	Balance     decimal.Decimal `json:"balance"`
	Currency    string          `json:"currency"`
	CreatedAt   time.Time       `json:"created_at"`
}
