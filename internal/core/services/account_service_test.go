package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/poslite/poslite_backend/internal/apperrors"
	"github.com/poslite/poslite_backend/internal/core/domain"
	portssvc "github.com/poslite/poslite_backend/internal/core/ports/services"
	"github.com/poslite/poslite_backend/internal/core/services"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockCompanySvc  *MockCompanyService
	service         portssvc.AccountSvcFacade

	ctx       context.Context
	companyID string
	userID    string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCompanySvc = new(MockCompanyService)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockCompanySvc)

	suite.ctx = context.Background()
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.companyID, suite.userID, mock.Anything).Return(nil)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DefaultsNatureFromCategory() {
	suite.mockAccountRepo.On("FindAccountByCode", mock.Anything, suite.companyID, "1000").
		Return(nil, apperrors.ErrNotFound)
	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.Nature == domain.NatureDebit && a.IsActive && a.CompanyID == suite.companyID
	})).Return(nil)

	created, err := suite.service.CreateAccount(suite.ctx, suite.companyID, domain.Account{
		Code:     "1000",
		Name:     "Cash on Hand",
		Category: domain.Asset,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.NatureDebit, created.Nature)
	suite.NotEmpty(created.AccountID)
	suite.Equal(suite.userID, created.CreatedBy)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	suite.mockAccountRepo.On("FindAccountByCode", mock.Anything, suite.companyID, "1000").
		Return(&domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, Code: "1000"}, nil)

	_, err := suite.service.CreateAccount(suite.ctx, suite.companyID, domain.Account{
		Code:     "1000",
		Name:     "Cash on Hand",
		Category: domain.Asset,
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidCategory() {
	_, err := suite.service.CreateAccount(suite.ctx, suite.companyID, domain.Account{
		Code:     "9999",
		Name:     "Mystery",
		Category: "GOODWILL",
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentFromOtherCompany() {
	parentID := uuid.NewString()
	suite.mockAccountRepo.On("FindAccountByCode", mock.Anything, suite.companyID, "1100").
		Return(nil, apperrors.ErrNotFound)
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, parentID).
		Return(&domain.Account{AccountID: parentID, CompanyID: uuid.NewString()}, nil)

	_, err := suite.service.CreateAccount(suite.ctx, suite.companyID, domain.Account{
		Code:            "1100",
		Name:            "Receivables",
		Category:        domain.Asset,
		ParentAccountID: parentID,
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RejectsParentCycle() {
	accountID := uuid.NewString()
	childID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, CompanyID: suite.companyID, Code: "1000", Name: "Cash"}
	// The proposed parent is a descendant of the account being updated.
	child := &domain.Account{AccountID: childID, CompanyID: suite.companyID, ParentAccountID: accountID}

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, accountID).Return(existing, nil)
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, childID).Return(child, nil)

	_, err := suite.service.UpdateAccount(suite.ctx, suite.companyID, domain.Account{
		AccountID:       accountID,
		ParentAccountID: childID,
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_OtherTenant() {
	accountID := uuid.NewString()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, accountID).
		Return(&domain.Account{AccountID: accountID, CompanyID: uuid.NewString()}, nil)

	_, err := suite.service.GetAccountByID(suite.ctx, suite.companyID, accountID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts_ClampsPaging() {
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.companyID, 20, 0).
		Return([]domain.Account{}, nil)

	_, err := suite.service.ListAccounts(suite.ctx, suite.companyID, 500, -3, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount() {
	accountID := uuid.NewString()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, accountID).
		Return(&domain.Account{AccountID: accountID, CompanyID: suite.companyID, IsActive: true}, nil)
	suite.mockAccountRepo.On("DeactivateAccount", mock.Anything, accountID, suite.userID, mock.Anything).
		Return(nil)

	err := suite.service.DeactivateAccount(suite.ctx, suite.companyID, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
