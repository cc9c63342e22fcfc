package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/poslite/poslite_backend/internal/apperrors"
	"github.com/poslite/poslite_backend/internal/core/domain"
	portssvc "github.com/poslite/poslite_backend/internal/core/ports/services"
	"github.com/poslite/poslite_backend/internal/dto"
	"github.com/poslite/poslite_backend/internal/handlers"
	"github.com/poslite/poslite_backend/internal/middleware"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, companyID string, account domain.Account, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, account, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, companyID string, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, companyID string, code string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, companyID string, limit int, offset int, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, limit, offset, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, companyID string, account domain.Account, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, account, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, companyID string, accountID string, userID string) error {
	args := m.Called(ctx, companyID, accountID, userID)
	return args.Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
}

// generateTestToken creates a signed JWT accepted by the auth middleware.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "poslite-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockAccountService = new(MockAccountService)

	v1 := suite.router.Group("/api/v1/companies/:company_id")
	handlers.RegisterAccountRoutes(v1, suite.mockAccountService)
}

func (suite *AccountHandlerTestSuite) doRequest(method, url string, body []byte, userID string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	created := &domain.Account{
		AccountID:    uuid.NewString(),
		CompanyID:    companyID,
		Code:         "1000",
		Name:         "Cash on Hand",
		Category:     domain.Asset,
		Nature:       domain.NatureDebit,
		CurrencyCode: "USD",
		IsActive:     true,
	}

	suite.mockAccountService.On("CreateAccount", mock.Anything, companyID,
		mock.MatchedBy(func(a domain.Account) bool { return a.Code == "1000" && a.Category == domain.Asset }),
		userID,
	).Return(created, nil).Once()

	body, _ := json.Marshal(dto.CreateAccountRequest{
		Code:         "1000",
		Name:         "Cash on Hand",
		Category:     domain.Asset,
		CurrencyCode: "USD",
	})
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/accounts", companyID), body, userID)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.Equal(domain.NatureDebit, resp.Nature)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateCode() {
	companyID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("CreateAccount", mock.Anything, companyID, mock.Anything, userID).
		Return(nil, apperrors.NewAppError(409, "account code already in use", apperrors.ErrDuplicate)).Once()

	body, _ := json.Marshal(dto.CreateAccountRequest{
		Code:         "1000",
		Name:         "Cash on Hand",
		Category:     domain.Asset,
		CurrencyCode: "USD",
	})
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/accounts", companyID), body, userID)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidBody() {
	companyID := uuid.NewString()
	userID := uuid.NewString()

	// Category fails the oneof binding.
	body := []byte(`{"code":"1000","name":"Cash","category":"GOODWILL","currencyCode":"USD"}`)
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/accounts", companyID), body, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	companyID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID", mock.Anything, companyID, accountID, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/accounts/%s", companyID, accountID), nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccountByCode_Success() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	account := &domain.Account{
		AccountID: uuid.NewString(),
		CompanyID: companyID,
		Code:      "4000",
		Name:      "Sales Income",
		Category:  domain.Revenue,
		Nature:    domain.NatureCredit,
		IsActive:  true,
	}

	suite.mockAccountService.On("GetAccountByCode", mock.Anything, companyID, "4000", userID).
		Return(account, nil).Once()

	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/accounts/by-code/4000", companyID), nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("4000", resp.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_MissingToken() {
	companyID := uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/accounts", companyID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_Success() {
	companyID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("DeactivateAccount", mock.Anything, companyID, accountID, userID).
		Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, fmt.Sprintf("/api/v1/companies/%s/accounts/%s", companyID, accountID), nil, userID)

	suite.Equal(http.StatusNoContent, w.Code)
}

func TestAccountHandlerSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
