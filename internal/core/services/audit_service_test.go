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

type AuditServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	mockCompanySvc *MockCompanyService
	service        portssvc.AuditSvcFacade

	ctx       context.Context
	companyID string
	userID    string
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockCompanySvc = new(MockCompanyService)
	suite.service = services.NewAuditService(suite.mockLedgerRepo, suite.mockCompanySvc)

	suite.ctx = context.Background()
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.companyID, suite.userID, domain.RoleReadOnly).Return(nil)
}

func (suite *AuditServiceTestSuite) TestVerifyBatch_Balanced() {
	batchID := uuid.NewString()
	suite.mockLedgerRepo.On("FindBatchByID", mock.Anything, batchID).
		Return(&domain.PostingBatch{BatchID: batchID, CompanyID: suite.companyID}, nil)
	suite.mockLedgerRepo.On("FindEntriesByBatchID", mock.Anything, batchID).Return([]domain.LedgerEntry{
		{Nature: domain.NatureDebit, Amount: decimal.NewFromInt(100)},
		{Nature: domain.NatureCredit, Amount: decimal.NewFromInt(100)},
	}, nil)

	result, err := suite.service.VerifyBatch(suite.ctx, suite.companyID, batchID, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.Balanced)
	suite.True(result.Delta.IsZero())
}

func (suite *AuditServiceTestSuite) TestVerifyBatch_OtherTenant() {
	batchID := uuid.NewString()
	suite.mockLedgerRepo.On("FindBatchByID", mock.Anything, batchID).
		Return(&domain.PostingBatch{BatchID: batchID, CompanyID: uuid.NewString()}, nil)

	_, err := suite.service.VerifyBatch(suite.ctx, suite.companyID, batchID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindEntriesByBatchID", mock.Anything, mock.Anything)
}

func (suite *AuditServiceTestSuite) TestVerifyEntries_ToleranceBoundary() {
	balanced := services.VerifyEntries("b1", []domain.LedgerEntry{
		{Nature: domain.NatureDebit, Amount: decimal.NewFromFloat(100.01)},
		{Nature: domain.NatureCredit, Amount: decimal.NewFromInt(100)},
	})
	suite.True(balanced.Balanced, "a one cent difference is within tolerance")

	unbalanced := services.VerifyEntries("b2", []domain.LedgerEntry{
		{Nature: domain.NatureDebit, Amount: decimal.NewFromFloat(100.02)},
		{Nature: domain.NatureCredit, Amount: decimal.NewFromInt(100)},
	})
	suite.False(unbalanced.Balanced)
	suite.True(unbalanced.Delta.Equal(decimal.NewFromFloat(0.02)))
}

func (suite *AuditServiceTestSuite) TestScanForImbalance_ReportsAllCheckTypes() {
	since := time.Now().AddDate(0, 0, -30)
	badBatchID := uuid.NewString()
	driftBatchID := uuid.NewString()

	suite.mockLedgerRepo.On("ListBatchTotalsSince", mock.Anything, suite.companyID, since).Return([]domain.BatchTotals{
		{
			BatchID:         uuid.NewString(),
			ReferenceNumber: "INV-OK",
			TotalDebit:      decimal.NewFromInt(500),
			TotalCredit:     decimal.NewFromInt(500),
		},
		{
			BatchID:         badBatchID,
			ReferenceNumber: "INV-BAD",
			TotalDebit:      decimal.NewFromInt(500),
			TotalCredit:     decimal.NewFromInt(450),
		},
	}, nil)
	suite.mockLedgerRepo.On("ListSalesPostingSummaries", mock.Anything, suite.companyID, since).Return([]domain.SalesPostingSummary{
		{
			// revenue - discount + tax - wht = 1000 - 100 + 70 - 20 = 950
			BatchID:         driftBatchID,
			ReferenceNumber: "INV-DRIFT",
			Revenue:         decimal.NewFromInt(1000),
			Discount:        decimal.NewFromInt(100),
			Tax:             decimal.NewFromInt(70),
			WHT:             decimal.NewFromInt(20),
			ReceivableGross: decimal.NewFromInt(900),
		},
	}, nil)
	suite.mockLedgerRepo.On("ListTaxConfigurationGaps", mock.Anything, suite.companyID, since).
		Return([]string{"INV-NOTAX"}, nil)

	findings, err := suite.service.ScanForImbalance(suite.ctx, suite.companyID, since, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(findings, 3)

	suite.Equal(domain.CheckBatchBalance, findings[0].CheckType)
	suite.Equal(domain.SeverityHigh, findings[0].Severity)
	suite.Equal(badBatchID, findings[0].BatchID)
	suite.True(findings[0].Delta.Equal(decimal.NewFromInt(50)))

	suite.Equal(domain.CheckReceivableConsistency, findings[1].CheckType)
	suite.Equal(domain.SeverityMedium, findings[1].Severity)
	suite.Equal(driftBatchID, findings[1].BatchID)
	suite.True(findings[1].Delta.Equal(decimal.NewFromInt(-50)))

	suite.Equal(domain.CheckTaxConfiguration, findings[2].CheckType)
	suite.Equal(domain.SeverityMedium, findings[2].Severity)
	suite.Equal("INV-NOTAX", findings[2].ReferenceNumber)
}

func (suite *AuditServiceTestSuite) TestScanForImbalance_CleanLedger() {
	since := time.Now().AddDate(0, 0, -7)
	suite.mockLedgerRepo.On("ListBatchTotalsSince", mock.Anything, suite.companyID, since).Return([]domain.BatchTotals{
		{BatchID: uuid.NewString(), TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.NewFromInt(100)},
	}, nil)
	suite.mockLedgerRepo.On("ListSalesPostingSummaries", mock.Anything, suite.companyID, since).
		Return([]domain.SalesPostingSummary{}, nil)
	suite.mockLedgerRepo.On("ListTaxConfigurationGaps", mock.Anything, suite.companyID, since).
		Return([]string{}, nil)

	findings, err := suite.service.ScanForImbalance(suite.ctx, suite.companyID, since, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(findings)
}

func TestAuditService(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}
