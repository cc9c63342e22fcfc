package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/poslite/poslite_backend/internal/apperrors"
	"github.com/poslite/poslite_backend/internal/core/domain"
	portssvc "github.com/poslite/poslite_backend/internal/core/ports/services"
	"github.com/poslite/poslite_backend/internal/core/services"
)

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.ExchangeRateSvcFacade

	ctx    context.Context
	userID string
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo, suite.mockCurrencyRepo)

	suite.ctx = context.Background()
	suite.userID = uuid.NewString()
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Success() {
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "USD").
		Return(&domain.Currency{CurrencyCode: "USD"}, nil)
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "EUR").
		Return(&domain.Currency{CurrencyCode: "EUR"}, nil)
	suite.mockRateRepo.On("SaveExchangeRate", mock.Anything, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.ExchangeRateID != "" && r.CreatedBy == suite.userID
	})).Return(nil)

	created, err := suite.service.CreateExchangeRate(suite.ctx, domain.ExchangeRate{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
		Rate:             decimal.RequireFromString("0.912345"),
		DateEffective:    time.Now(),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(created.ExchangeRateID)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_NonPositiveRate() {
	for _, raw := range []string{"0", "-1.5"} {
		_, err := suite.service.CreateExchangeRate(suite.ctx, domain.ExchangeRate{
			FromCurrencyCode: "USD",
			ToCurrencyCode:   "EUR",
			Rate:             decimal.RequireFromString(raw),
		}, suite.userID)

		suite.ErrorIs(err, apperrors.ErrInvalidRate, "rate %s must be rejected", raw)
	}
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_SameCurrency() {
	_, err := suite.service.CreateExchangeRate(suite.ctx, domain.ExchangeRate{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "USD",
		Rate:             decimal.NewFromInt(1),
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_UnknownCurrency() {
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "USD").
		Return(&domain.Currency{CurrencyCode: "USD"}, nil)
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "XXX").
		Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.CreateExchangeRate(suite.ctx, domain.ExchangeRate{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "XXX",
		Rate:             decimal.NewFromInt(2),
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_SameCurrencySkipsLookup() {
	rate, err := suite.service.ResolveRate(suite.ctx, "USD", "USD", time.Now())

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindRateForDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_UsesRateOnOrBeforeDate() {
	asOf := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	suite.mockRateRepo.On("FindRateForDate", mock.Anything, "EUR", "USD", asOf).
		Return(&domain.ExchangeRate{Rate: decimal.RequireFromString("1.0825")}, nil)

	rate, err := suite.service.ResolveRate(suite.ctx, "EUR", "USD", asOf)

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.RequireFromString("1.0825")))
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_NoRateFound() {
	asOf := time.Now()
	suite.mockRateRepo.On("FindRateForDate", mock.Anything, "EUR", "JPY", asOf).
		Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.ResolveRate(suite.ctx, "EUR", "JPY", asOf)

	suite.ErrorIs(err, apperrors.ErrInvalidRate)
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_StoredNonPositiveRate() {
	asOf := time.Now()
	suite.mockRateRepo.On("FindRateForDate", mock.Anything, "EUR", "USD", asOf).
		Return(&domain.ExchangeRate{Rate: decimal.Zero}, nil)

	_, err := suite.service.ResolveRate(suite.ctx, "EUR", "USD", asOf)

	suite.ErrorIs(err, apperrors.ErrInvalidRate)
}

func TestExchangeRateService(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
