package repositories

import (
	"context"
	"time"

	"github.com/poslite/poslite_backend/internal/core/domain"
)

// CurrencyRepositoryFacade defines operations for currency reference data.
type CurrencyRepositoryFacade interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// FindCurrencyByCode retrieves a currency by its 3-letter code.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListCurrencies retrieves all known currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// ExchangeRateRepositoryFacade defines operations for exchange rates.
type ExchangeRateRepositoryFacade interface {
	// SaveExchangeRate inserts or updates the rate for a currency pair and
	// effective date.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// FindExchangeRateByID retrieves an exchange rate by its ID.
	FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error)

	// FindRateForDate retrieves the rate for a currency pair with the nearest
	// effective date on or before the given date.
	FindRateForDate(ctx context.Context, fromCode, toCode string, onOrBefore time.Time) (*domain.ExchangeRate, error)
}
