package policy

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"go-banking-core/model"
)

var (
	// ErrOverdraftNotSupported signals that the account type does not offer
	// overdrafts at all. It is deliberately distinct from insufficient-funds
	// errors so callers can tell "feature not offered" apart from "feature
	// offered but short of funds".
	ErrOverdraftNotSupported = errors.New("overdraft processing is not supported for this account type")

	// ErrInterestNotSupported signals that interest accrual does not apply
	// to the account type.
	ErrInterestNotSupported = errors.New("interest accrual is not supported for this account type")
)

// BalanceLimitError is returned when a balance-increasing mutation would push
// an account past its ceiling. It is a business-rule rejection distinct from
// insufficient funds.
type BalanceLimitError struct {
	AccountID int
	Limit     decimal.Decimal
	Attempted decimal.Decimal
}

func (e *BalanceLimitError) Error() string {
	return fmt.Sprintf("balance for account %d cannot exceed %s (attempted %s)",
		e.AccountID, e.Limit.String(), e.Attempted.String())
}

// AccountPolicy captures the per-account-type rules consulted by the
// transaction engine before any mutation. CheckBalanceIncrease guards
// deposits and transfer credits only; fee debits never consult the policy.
type AccountPolicy interface {
	// CheckBalanceIncrease validates that crediting amount onto the current
	// balance keeps the account within its ceiling.
	CheckBalanceIncrease(account *model.Account, amount decimal.Decimal) error
	// ApplyInterest returns the new balance after one interest accrual.
	ApplyInterest(balance decimal.Decimal) (decimal.Decimal, error)
	// ProcessOverdraft reports whether the account type offers overdrafts.
	ProcessOverdraft(account *model.Account) error
}

var (
	studentBalanceLimit = decimal.NewFromInt(10000)
	savingsInterestRate = decimal.NewFromFloat(0.02)
)

// ForAccountType selects the policy for an account type. Unknown types get
// the unrestricted policy, matching checking-account behavior.
func ForAccountType(accountType model.AccountType) AccountPolicy {
	switch accountType {
	case model.AccountTypeStudent:
		return &CeilingPolicy{Limit: studentBalanceLimit}
	case model.AccountTypeSavings:
		return &InterestPolicy{Rate: savingsInterestRate}
	default:
		return &UnrestrictedPolicy{}
	}
}

// UnrestrictedPolicy applies to checking accounts: no ceiling, no interest.
type UnrestrictedPolicy struct{}

func (p *UnrestrictedPolicy) CheckBalanceIncrease(*model.Account, decimal.Decimal) error {
	return nil
}

func (p *UnrestrictedPolicy) ApplyInterest(decimal.Decimal) (decimal.Decimal, error) {
	return decimal.Zero, ErrInterestNotSupported
}

func (p *UnrestrictedPolicy) ProcessOverdraft(*model.Account) error {
	return nil
}

// CeilingPolicy caps the balance of limited account types such as student
// accounts.
type CeilingPolicy struct {
	Limit decimal.Decimal
}

func (p *CeilingPolicy) CheckBalanceIncrease(account *model.Account, amount decimal.Decimal) error {
	newBalance := account.Balance.Add(amount)
	if newBalance.GreaterThan(p.Limit) {
		return &BalanceLimitError{
			AccountID: account.ID,
			Limit:     p.Limit,
			Attempted: newBalance,
		}
	}
	return nil
}

func (p *CeilingPolicy) ApplyInterest(decimal.Decimal) (decimal.Decimal, error) {
	return decimal.Zero, ErrInterestNotSupported
}

func (p *CeilingPolicy) ProcessOverdraft(*model.Account) error {
	return ErrOverdraftNotSupported
}

// InterestPolicy applies to savings accounts. Interest accrual is an explicit
// operation invoked by an external scheduler, never part of the transaction
// path.
type InterestPolicy struct {
	Rate decimal.Decimal
}

func (p *InterestPolicy) CheckBalanceIncrease(*model.Account, decimal.Decimal) error {
	return nil
}

func (p *InterestPolicy) ApplyInterest(balance decimal.Decimal) (decimal.Decimal, error) {
	return balance.Add(balance.Mul(p.Rate)), nil
}

func (p *InterestPolicy) ProcessOverdraft(*model.Account) error {
	return ErrOverdraftNotSupported
}
