package policy

import (
	"github.com/shopspring/decimal"

	"go-banking-core/model"
)

var (
	baseMonthlyFee         = decimal.RequireFromString("10.00")
	silverDiscount         = decimal.RequireFromString("0.5")
	savingsWaiverThreshold = decimal.NewFromInt(5000)
)

// CalculateFee computes the monthly maintenance fee for an account given the
// owning customer's tier. Pure: no I/O, no mutation.
//
// The savings waiver is applied after the tier computation and takes
// precedence over it.
func CalculateFee(account *model.Account, tier model.CustomerTier) model.FeeResult {
	res := model.FeeResult{
		Amount:      baseMonthlyFee,
		Description: "Monthly account fee",
	}

	switch tier {
	case model.TierGold:
		res.Waived = true
		res.Amount = decimal.Zero
		res.Description = "No fee for Gold customers"
	case model.TierSilver:
		res.Amount = baseMonthlyFee.Mul(silverDiscount)
		res.Description = "Half price for Silver customers"
	default:
		// Bronze and unrecognized tiers pay the full fee.
	}

	if account.AccountType == model.AccountTypeSavings && account.Balance.GreaterThan(savingsWaiverThreshold) {
		res.Waived = true
		res.Description = "No fee for savings accounts with more than $5000"
	}

	return res
}
