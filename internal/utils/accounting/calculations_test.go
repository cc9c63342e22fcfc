package accounting_test

import (
	"testing"

	"github.com/poslite/poslite_backend/internal/apperrors"
	"github.com/poslite/poslite_backend/internal/core/domain"
	"github.com/poslite/poslite_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	testCases := []struct {
		name     string
		amount   string
		rate     string
		scale    int32
		expected string
	}{
		{"identity rate", "118.00", "1", 2, "118"},
		{"simple conversion", "100.00", "1.18", 2, "118"},
		{"rounds half up", "10.005", "1", 2, "10.01"},
		{"redemption rate divides", "3500", "0.01", 2, "35"},
		{"rate scale", "1", "0.8912345", 6, "0.891235"},
		{"zero amount", "0", "1.5", 2, "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tc.amount)
			rate := decimal.RequireFromString(tc.rate)
			got, err := accounting.Convert(amount, rate, tc.scale)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.expected)),
				"expected %s, got %s", tc.expected, got.String())
		})
	}
}

func TestConvertRateDirection(t *testing.T) {
	// Rates are stored as direct from-to multipliers. A quote expressed as
	// a divisor, such as a loyalty redemption rate of 100 points per
	// currency unit, must be inverted before storage: 3500 points at that
	// rate is worth 35.00, not 350000.00.
	points := decimal.NewFromInt(3500)
	pointsPerUnit := decimal.NewFromInt(100)

	storedRate := decimal.NewFromInt(1).Div(pointsPerUnit)
	got, err := accounting.Convert(points, storedRate, 2)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(35)), "expected 35, got %s", got.String())

	multiplied, err := accounting.Convert(points, pointsPerUnit, 2)
	require.NoError(t, err)
	assert.False(t, multiplied.Equal(decimal.NewFromInt(35)),
		"multiplying by the divisor-form rate must not be mistaken for the stored direction")
}

func TestConvertRejectsNonPositiveRate(t *testing.T) {
	_, err := accounting.Convert(decimal.NewFromInt(100), decimal.Zero, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRate)

	_, err = accounting.Convert(decimal.NewFromInt(100), decimal.NewFromInt(-1), 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRate)
}

func TestConvertRoundTrip(t *testing.T) {
	// convert(convert(x, r), 1/r) must come back to x within tolerance.
	rates := []string{"1.18", "0.85", "36.5", "0.0075", "100"}
	amount := decimal.RequireFromString("1234.56")

	for _, r := range rates {
		rate := decimal.RequireFromString(r)
		converted, err := accounting.Convert(amount, rate, 4)
		require.NoError(t, err)

		inverse := decimal.NewFromInt(1).DivRound(rate, 12)
		back, err := accounting.Convert(converted, inverse, 2)
		require.NoError(t, err)

		diff := back.Sub(amount).Abs()
		assert.True(t, diff.LessThanOrEqual(accounting.BalanceTolerance),
			"rate %s: round trip drifted by %s", r, diff.String())
	}
}

func TestCalculateSignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(50)

	testCases := []struct {
		category domain.AccountCategory
		nature   domain.EntryNature
		expected decimal.Decimal
	}{
		{domain.Asset, domain.NatureDebit, amount},
		{domain.Asset, domain.NatureCredit, amount.Neg()},
		{domain.Expense, domain.NatureDebit, amount},
		{domain.Liability, domain.NatureDebit, amount.Neg()},
		{domain.Liability, domain.NatureCredit, amount},
		{domain.Revenue, domain.NatureCredit, amount},
		{domain.Equity, domain.NatureDebit, amount.Neg()},
	}

	for _, tc := range testCases {
		got, err := accounting.CalculateSignedAmount(amount, tc.nature, tc.category)
		require.NoError(t, err)
		assert.True(t, got.Equal(tc.expected), "%s %s: expected %s got %s", tc.category, tc.nature, tc.expected, got)
	}

	_, err := accounting.CalculateSignedAmount(amount, domain.NatureDebit, domain.AccountCategory("BOGUS"))
	assert.Error(t, err)
}

func TestIsBalanced(t *testing.T) {
	assert.True(t, accounting.IsBalanced(decimal.RequireFromString("118.00"), decimal.RequireFromString("118.00")))
	assert.True(t, accounting.IsBalanced(decimal.RequireFromString("118.00"), decimal.RequireFromString("118.01")))
	assert.False(t, accounting.IsBalanced(decimal.RequireFromString("118.00"), decimal.RequireFromString("118.02")))
}
