package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/poslite/poslite_backend/internal/apperrors"
	"github.com/poslite/poslite_backend/internal/core/domain"
	portsrepo "github.com/poslite/poslite_backend/internal/core/ports/repositories"
	portssvc "github.com/poslite/poslite_backend/internal/core/ports/services"
)

// currencyService manages currency reference data.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency validates and persists a currency.
func (s *currencyService) CreateCurrency(ctx context.Context, currency domain.Currency) (*domain.Currency, error) {
	if len(currency.CurrencyCode) != 3 {
		return nil, apperrors.NewValidationError("currency code must be 3 characters")
	}
	if currency.Name == "" {
		return nil, apperrors.NewValidationError("currency name is required")
	}

	existing, err := s.currencyRepo.FindCurrencyByCode(ctx, currency.CurrencyCode)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check currency: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewAppError(409, "currency already exists", apperrors.ErrDuplicate)
	}

	now := time.Now()
	currency.CreatedAt = now
	currency.LastUpdatedAt = now

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to save currency: %w", err)
	}
	return &currency, nil
}

// GetCurrencyByCode retrieves a currency.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	return s.currencyRepo.FindCurrencyByCode(ctx, code)
}

// ListCurrencies retrieves all currencies.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.currencyRepo.ListCurrencies(ctx)
}
