package services

import (
	"context"
	"time"

	"github.com/poslite/poslite_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencySvcFacade defines operations for currency reference data.
type CurrencySvcFacade interface {
	CreateCurrency(ctx context.Context, currency domain.Currency) (*domain.Currency, error)
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// ExchangeRateSvcFacade defines operations for exchange rate management and
// lookup.
type ExchangeRateSvcFacade interface {
	// CreateExchangeRate validates and persists a rate. Rates must be
	// strictly positive; zero and negative rates are rejected with
	// ErrInvalidRate.
	CreateExchangeRate(ctx context.Context, rate domain.ExchangeRate, userID string) (*domain.ExchangeRate, error)

	// GetExchangeRateByID retrieves a rate by its ID.
	GetExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error)

	// ResolveRate returns the conversion rate from one currency to another as
	// of a date. Identical currencies resolve to 1 without a lookup.
	ResolveRate(ctx context.Context, fromCode, toCode string, asOf time.Time) (decimal.Decimal, error)
}
