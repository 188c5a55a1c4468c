package model

import "github.com/shopspring/decimal"

// TransactionRequest is the transient value describing a requested money
// movement. Currency and Priority are accepted but not load-bearing.
type TransactionRequest struct {
	FromAccountID *int            `json:"from"`
	ToAccountID   *int            `json:"to"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type" validate:"required"`
	Currency      string          `json:"currency"`
	Description   string          `json:"details"`
	Priority      bool            `json:"is_priority"`
}

type CustomerCreationRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

type AccountCreationRequest struct {
	CustomerID  int    `json:"customer_id" validate:"required"`
	AccountType string `json:"account_type" validate:"required"`
	Currency    string `json:"currency"`
}
