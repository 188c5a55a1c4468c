package model

import "github.com/shopspring/decimal"

// FeeResult is the output of the fee policy computation. It is transient and
// consumed immediately by the fee assessment engine.
type FeeResult struct {
	Amount      decimal.Decimal
	Waived      bool
	Description string
}

// FeeAssessment is the outcome of a monthly fee assessment that was not
// rejected: either the account was charged Amount, or the fee was waived.
type FeeAssessment struct {
	Charged     bool            `json:"charged"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}
