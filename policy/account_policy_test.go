// policy/account_policy_test.go
package policy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-banking-core/model"
)

func TestForAccountType(t *testing.T) {
	assert.IsType(t, &UnrestrictedPolicy{}, ForAccountType(model.AccountTypeChecking))
	assert.IsType(t, &InterestPolicy{}, ForAccountType(model.AccountTypeSavings))
	assert.IsType(t, &CeilingPolicy{}, ForAccountType(model.AccountTypeStudent))
	assert.IsType(t, &UnrestrictedPolicy{}, ForAccountType(model.AccountType("UNKNOWN")))
}

func TestCeilingPolicy_CheckBalanceIncrease(t *testing.T) {
	p := &CeilingPolicy{Limit: decimal.NewFromInt(10000)}
	account := &model.Account{ID: 1, AccountType: model.AccountTypeStudent, Balance: decimal.NewFromInt(9990)}

	t.Run("reaching the limit exactly is allowed", func(t *testing.T) {
		assert.NoError(t, p.CheckBalanceIncrease(account, decimal.NewFromInt(10)))
	})

	t.Run("exceeding the limit is rejected", func(t *testing.T) {
		err := p.CheckBalanceIncrease(account, decimal.NewFromInt(11))

		var limit *BalanceLimitError
		assert.ErrorAs(t, err, &limit)
		assert.Equal(t, 1, limit.AccountID)
		assert.True(t, limit.Limit.Equal(decimal.NewFromInt(10000)))
		assert.True(t, limit.Attempted.Equal(decimal.NewFromInt(10001)))
	})

	t.Run("rejection leaves the balance untouched", func(t *testing.T) {
		_ = p.CheckBalanceIncrease(account, decimal.NewFromInt(500))
		assert.True(t, account.Balance.Equal(decimal.NewFromInt(9990)))
	})
}

func TestInterestPolicy_ApplyInterest(t *testing.T) {
	p := &InterestPolicy{Rate: decimal.NewFromFloat(0.02)}

	newBalance, err := p.ApplyInterest(decimal.NewFromInt(1000))

	assert.NoError(t, err)
	assert.True(t, newBalance.Equal(decimal.NewFromInt(1020)))
}

func TestInterestNotSupported(t *testing.T) {
	_, err := (&UnrestrictedPolicy{}).ApplyInterest(decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrInterestNotSupported)

	_, err = (&CeilingPolicy{Limit: decimal.NewFromInt(10000)}).ApplyInterest(decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrInterestNotSupported)
}

func TestProcessOverdraftByPolicy(t *testing.T) {
	account := &model.Account{ID: 1, Balance: decimal.NewFromInt(0)}

	assert.NoError(t, (&UnrestrictedPolicy{}).ProcessOverdraft(account))
	assert.ErrorIs(t, (&InterestPolicy{}).ProcessOverdraft(account), ErrOverdraftNotSupported)
	assert.ErrorIs(t, (&CeilingPolicy{}).ProcessOverdraft(account), ErrOverdraftNotSupported)
}
