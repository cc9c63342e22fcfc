package accounting

import (
	"fmt"

	"github.com/poslite/poslite_backend/internal/apperrors"
	"github.com/poslite/poslite_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Decimal scales used across the ledger. Posted and equivalent amounts carry
// two decimal places; stored exchange rates carry six.
const (
	AmountScale int32 = 2
	RateScale   int32 = 6
)

// Convert returns amount x rate rounded half-up to the given scale. Rate must
// be strictly positive; amounts are expected to be non-negative, for which
// decimal.Round (half away from zero) behaves as round-half-up.
func Convert(amount, rate decimal.Decimal, scale int32) (decimal.Decimal, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: got %s", apperrors.ErrInvalidRate, rate.String())
	}
	return amount.Mul(rate).Round(scale), nil
}

// RoundAmount rounds a posted amount to the ledger's two decimal places.
func RoundAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(AmountScale)
}

// BalanceTolerance is the maximum absolute debit/credit delta a batch may
// carry and still count as balanced (0.01 currency units).
var BalanceTolerance = decimal.New(1, -AmountScale)

// CalculateSignedAmount applies the correct sign to an entry amount based on
// account category and entry nature.
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func CalculateSignedAmount(amount decimal.Decimal, nature domain.EntryNature, category domain.AccountCategory) (decimal.Decimal, error) {
	signedAmount := amount
	isDebit := nature == domain.NatureDebit

	switch category {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account category '%s'", category)
	}
	return signedAmount, nil
}

// SumByNature totals entry amounts per side.
func SumByNature(entries []domain.LedgerEntry) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, entry := range entries {
		if entry.Nature == domain.NatureDebit {
			totalDebit = totalDebit.Add(entry.Amount)
		} else {
			totalCredit = totalCredit.Add(entry.Amount)
		}
	}
	return totalDebit, totalCredit
}

// IsBalanced reports whether the debit/credit delta is within tolerance.
func IsBalanced(totalDebit, totalCredit decimal.Decimal) bool {
	return totalDebit.Sub(totalCredit).Abs().LessThanOrEqual(BalanceTolerance)
}
