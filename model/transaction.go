package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tags a ledger entry. FEE entries are produced by the
// engines themselves and are not a valid requested kind.
type TransactionType string

const (
	TransactionDeposit       TransactionType = "DEPOSIT"
	TransactionWithdrawal    TransactionType = "WITHDRAWAL"
	TransactionTransfer      TransactionType = "TRANSFER"
	TransactionInternational TransactionType = "INTERNATIONAL_TRANSFER"
	TransactionFee           TransactionType = "FEE"
)

// Transaction is an append-only ledger entry. A nil account reference means
// the money moved to or from an external party; the surcharge on an
// international transfer, for example, is collected by the bank and carries
// no destination. Entries belonging to one logical transfer share a
// TransferGroupID.
type Transaction struct {
	ID              int             `json:"id"`
	FromAccountID   *int            `json:"from_account_id,omitempty"`
	ToAccountID     *int            `json:"to_account_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Type            TransactionType `json:"type"`
	TransferGroupID *string         `json:"transfer_group_id,omitempty"`
	Description     string          `json:"description"`
	CreatedAt       time.Time       `json:"created_at"`
}
