package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/poslite/poslite_backend/internal/apperrors"
	"github.com/poslite/poslite_backend/internal/core/domain"
	portsrepo "github.com/poslite/poslite_backend/internal/core/ports/repositories"
	portssvc "github.com/poslite/poslite_backend/internal/core/ports/services"
	"github.com/poslite/poslite_backend/internal/middleware"
)

// exchangeRateService manages exchange rates and rate resolution.
type exchangeRateService struct {
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		rateRepo:     rateRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// CreateExchangeRate validates and persists a rate.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, rate domain.ExchangeRate, userID string) (*domain.ExchangeRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !rate.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidRate, rate.Rate)
	}
	if rate.FromCurrencyCode == rate.ToCurrencyCode {
		return nil, apperrors.NewValidationError("from and to currency must differ")
	}
	for _, code := range []string{rate.FromCurrencyCode, rate.ToCurrencyCode} {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError(fmt.Sprintf("unknown currency %q", code))
			}
			return nil, fmt.Errorf("failed to check currency %s: %w", code, err)
		}
	}

	now := time.Now()
	rate.ExchangeRateID = uuid.NewString()
	rate.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to save exchange rate: %w", err)
	}

	logger.Info("Exchange rate created", "from", rate.FromCurrencyCode, "to", rate.ToCurrencyCode, "rate", rate.Rate)
	return &rate, nil
}

// GetExchangeRateByID retrieves a rate by its ID.
func (s *exchangeRateService) GetExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	return s.rateRepo.FindExchangeRateByID(ctx, rateID)
}

// ResolveRate returns the conversion rate from one currency to another as of
// a date. Identical currencies resolve to 1 without a lookup; a stored
// non-positive rate is rejected rather than silently used.
func (s *exchangeRateService) ResolveRate(ctx context.Context, fromCode, toCode string, asOf time.Time) (decimal.Decimal, error) {
	if fromCode == toCode {
		return decimal.NewFromInt(1), nil
	}

	rate, err := s.rateRepo.FindRateForDate(ctx, fromCode, toCode, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: no rate from %s to %s on or before %s", apperrors.ErrInvalidRate, fromCode, toCode, asOf.Format("2006-01-02"))
		}
		return decimal.Zero, fmt.Errorf("failed to look up exchange rate: %w", err)
	}
	if !rate.Rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: stored rate from %s to %s is %s", apperrors.ErrInvalidRate, fromCode, toCode, rate.Rate)
	}
	return rate.Rate, nil
}
