package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/poslite/poslite_backend/internal/apperrors"
	"github.com/poslite/poslite_backend/internal/core/domain"
	portssvc "github.com/poslite/poslite_backend/internal/core/ports/services"
	"github.com/poslite/poslite_backend/internal/core/services"
)

type PostingServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo   *MockLedgerRepository
	mockAccountRepo  *MockAccountRepository
	mockDocumentRepo *MockDocumentRepository
	mockRateSvc      *MockExchangeRateService
	mockCompanySvc   *MockCompanyService
	service          portssvc.PostingSvcFacade

	ctx       context.Context
	companyID string
	userID    string

	cogsAccount       domain.Account
	inventoryAccount  domain.Account
	incomeAccount     domain.Account
	receivableAccount domain.Account
	cashAccount       domain.Account
	taxAccount        domain.Account
	whtAccount        domain.Account
	discountAccount   domain.Account
	shrinkageAccount  domain.Account

	savedBatch      domain.PostingBatch
	savedEntries    []domain.LedgerEntry
	savedChanges    map[string]decimal.Decimal
	savedTransition domain.StatusTransition
	savedEffects    domain.PostingEffects
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockDocumentRepo = new(MockDocumentRepository)
	suite.mockRateSvc = new(MockExchangeRateService)
	suite.mockCompanySvc = new(MockCompanyService)
	suite.service = services.NewPostingService(suite.mockLedgerRepo, suite.mockAccountRepo, suite.mockDocumentRepo, suite.mockRateSvc, suite.mockCompanySvc)

	suite.ctx = context.Background()
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	newAccount := func(code string, category domain.AccountCategory) domain.Account {
		return domain.Account{
			AccountID:    uuid.NewString(),
			CompanyID:    suite.companyID,
			Code:         code,
			Name:         code,
			Category:     category,
			Nature:       domain.NormalNature(category),
			CurrencyCode: "USD",
			IsActive:     true,
		}
	}
	suite.cogsAccount = newAccount("5000", domain.Expense)
	suite.inventoryAccount = newAccount("1200", domain.Asset)
	suite.incomeAccount = newAccount("4000", domain.Revenue)
	suite.receivableAccount = newAccount("1100", domain.Asset)
	suite.cashAccount = newAccount("1000", domain.Asset)
	suite.taxAccount = newAccount("2100", domain.Liability)
	suite.whtAccount = newAccount("1150", domain.Asset)
	suite.discountAccount = newAccount("5100", domain.Expense)
	suite.shrinkageAccount = newAccount("5200", domain.Expense)
}

// expectPostingPath wires the mocks every successful posting needs.
func (suite *PostingServiceTestSuite) expectPostingPath() {
	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.companyID, suite.userID, domain.RoleMember).Return(nil)
	suite.mockCompanySvc.On("GetCompanyByID", mock.Anything, suite.companyID, suite.userID).
		Return(&domain.Company{CompanyID: suite.companyID, BaseCurrencyCode: "USD"}, nil)
	suite.mockRateSvc.On("ResolveRate", mock.Anything, "USD", "USD", mock.Anything).
		Return(decimal.NewFromInt(1), nil)

	allAccounts := map[string]domain.Account{
		suite.cogsAccount.AccountID:       suite.cogsAccount,
		suite.inventoryAccount.AccountID:  suite.inventoryAccount,
		suite.incomeAccount.AccountID:     suite.incomeAccount,
		suite.receivableAccount.AccountID: suite.receivableAccount,
		suite.cashAccount.AccountID:       suite.cashAccount,
		suite.taxAccount.AccountID:        suite.taxAccount,
		suite.whtAccount.AccountID:        suite.whtAccount,
		suite.discountAccount.AccountID:   suite.discountAccount,
		suite.shrinkageAccount.AccountID:  suite.shrinkageAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(allAccounts, nil)

	suite.mockLedgerRepo.On("SaveBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			suite.savedBatch = args.Get(1).(domain.PostingBatch)
			suite.savedEntries = args.Get(2).([]domain.LedgerEntry)
			suite.savedChanges = args.Get(3).(map[string]decimal.Decimal)
			suite.savedTransition = args.Get(4).(domain.StatusTransition)
			suite.savedEffects = args.Get(5).(domain.PostingEffects)
		}).Return(nil)
}

// findEntry returns the first saved entry matching account and nature.
func (suite *PostingServiceTestSuite) findEntry(accountID string, nature domain.EntryNature) *domain.LedgerEntry {
	for i := range suite.savedEntries {
		if suite.savedEntries[i].AccountID == accountID && suite.savedEntries[i].Nature == nature {
			return &suite.savedEntries[i]
		}
	}
	return nil
}

func (suite *PostingServiceTestSuite) draftInvoice() *domain.SalesInvoice {
	return &domain.SalesInvoice{
		InvoiceID:       uuid.NewString(),
		CompanyID:       suite.companyID,
		CustomerID:      uuid.NewString(),
		ReferenceNumber: "INV-001",
		Status:          domain.StatusDraft,
		InvoiceDate:     time.Now(),
		CurrencyCode:    "USD",
		Subtotal:        decimal.NewFromInt(1000),
		TaxAmount:       decimal.NewFromInt(70),
		LineItems: []domain.InvoiceLineItem{
			{
				LineItemID:         uuid.NewString(),
				ProductID:          "prod-1",
				ProductName:        "Widget",
				Quantity:           decimal.NewFromInt(2),
				UnitPrice:          decimal.NewFromInt(500),
				AverageCost:        decimal.NewFromInt(300),
				COGSAccountID:      suite.cogsAccount.AccountID,
				InventoryAccountID: suite.inventoryAccount.AccountID,
			},
		},
		ReceivableAccountID: suite.receivableAccount.AccountID,
		IncomeAccountID:     suite.incomeAccount.AccountID,
		CashAccountID:       suite.cashAccount.AccountID,
		TaxAccountID:        suite.taxAccount.AccountID,
	}
}

func (suite *PostingServiceTestSuite) TestApproveSalesInvoice_Success() {
	invoice := suite.draftInvoice()
	suite.expectPostingPath()
	suite.mockDocumentRepo.On("FindSalesInvoiceByID", mock.Anything, invoice.InvoiceID).Return(invoice, nil)

	batch, err := suite.service.ApproveSalesInvoice(suite.ctx, suite.companyID, invoice.InvoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(batch)
	suite.Equal(domain.DocSalesInvoice, batch.TransactionType)
	suite.Len(suite.savedEntries, 5)

	cogs := suite.findEntry(suite.cogsAccount.AccountID, domain.NatureDebit)
	suite.Require().NotNil(cogs)
	suite.True(cogs.Amount.Equal(decimal.NewFromInt(600)), "COGS should be quantity x average cost")

	inventory := suite.findEntry(suite.inventoryAccount.AccountID, domain.NatureCredit)
	suite.Require().NotNil(inventory)
	suite.True(inventory.Amount.Equal(decimal.NewFromInt(600)))

	receivable := suite.findEntry(suite.receivableAccount.AccountID, domain.NatureDebit)
	suite.Require().NotNil(receivable)
	suite.True(receivable.Amount.Equal(decimal.NewFromInt(1070)), "receivable should be the tax-inclusive total")

	income := suite.findEntry(suite.incomeAccount.AccountID, domain.NatureCredit)
	suite.Require().NotNil(income)
	suite.True(income.Amount.Equal(decimal.NewFromInt(1000)), "income should be the pre-tax subtotal")

	tax := suite.findEntry(suite.taxAccount.AccountID, domain.NatureCredit)
	suite.Require().NotNil(tax)
	suite.True(tax.Amount.Equal(decimal.NewFromInt(70)))

	// All entries share the batch id and tenant.
	for _, entry := range suite.savedEntries {
		suite.Equal(batch.BatchID, entry.BatchID)
		suite.Equal(suite.companyID, entry.CompanyID)
	}

	suite.Equal(domain.StatusDraft, suite.savedTransition.From)
	suite.Equal(domain.StatusApproved, suite.savedTransition.To)
	suite.Equal(invoice.InvoiceID, suite.savedTransition.DocumentID)

	suite.Equal(invoice.CustomerID, suite.savedEffects.CustomerID)
	suite.True(suite.savedEffects.CustomerBalanceDelta.Equal(decimal.NewFromInt(1070)))
	suite.True(suite.savedEffects.StockDeltas["prod-1"].Equal(decimal.NewFromInt(-2)))
}

func (suite *PostingServiceTestSuite) TestApproveSalesInvoice_PartialPayment() {
	invoice := suite.draftInvoice()
	invoice.PaidAmount = decimal.NewFromInt(270)
	suite.expectPostingPath()
	suite.mockDocumentRepo.On("FindSalesInvoiceByID", mock.Anything, invoice.InvoiceID).Return(invoice, nil)

	_, err := suite.service.ApproveSalesInvoice(suite.ctx, suite.companyID, invoice.InvoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.Len(suite.savedEntries, 6)

	receivableDebit := suite.findEntry(suite.receivableAccount.AccountID, domain.NatureDebit)
	suite.Require().NotNil(receivableDebit)
	suite.True(receivableDebit.Amount.Equal(decimal.NewFromInt(800)), "receivable debit should be the open balance only")

	cash := suite.findEntry(suite.cashAccount.AccountID, domain.NatureDebit)
	suite.Require().NotNil(cash)
	suite.True(cash.Amount.Equal(decimal.NewFromInt(270)))

	// The receivable debit already excludes the paid portion; a receivable
	// credit here would double-count the payment and unbalance the batch.
	suite.Nil(suite.findEntry(suite.receivableAccount.AccountID, domain.NatureCredit))

	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, entry := range suite.savedEntries {
		if entry.Nature == domain.NatureDebit {
			totalDebit = totalDebit.Add(entry.Amount)
		} else {
			totalCredit = totalCredit.Add(entry.Amount)
		}
	}
	suite.True(totalDebit.Equal(totalCredit), "debits %s should equal credits %s", totalDebit, totalCredit)
	suite.True(totalDebit.Equal(decimal.NewFromInt(1670)))

	suite.True(suite.savedEffects.CustomerBalanceDelta.Equal(decimal.NewFromInt(800)))
}

func (suite *PostingServiceTestSuite) TestApproveSalesInvoice_MissingTaxAccountFails() {
	invoice := suite.draftInvoice()
	invoice.TaxAccountID = ""
	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.companyID, suite.userID, domain.RoleMember).Return(nil)
	suite.mockDocumentRepo.On("FindSalesInvoiceByID", mock.Anything, invoice.InvoiceID).Return(invoice, nil)

	_, err := suite.service.ApproveSalesInvoice(suite.ctx, suite.companyID, invoice.InvoiceID, suite.userID)

	suite.Require().Error(err)
	var missing *apperrors.MissingAccountConfigError
	suite.ErrorAs(err, &missing)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestApproveSalesInvoice_DiscountNettedWhenUnconfigured() {
	invoice := suite.draftInvoice()
	invoice.DiscountAmount = decimal.NewFromInt(100)
	invoice.DiscountAccountID = ""
	suite.expectPostingPath()
	suite.mockDocumentRepo.On("FindSalesInvoiceByID", mock.Anything, invoice.InvoiceID).Return(invoice, nil)

	_, err := suite.service.ApproveSalesInvoice(suite.ctx, suite.companyID, invoice.InvoiceID, suite.userID)

	suite.Require().NoError(err)

	income := suite.findEntry(suite.incomeAccount.AccountID, domain.NatureCredit)
	suite.Require().NotNil(income)
	suite.True(income.Amount.Equal(decimal.NewFromInt(900)), "unconfigured discount should net against income")

	receivable := suite.findEntry(suite.receivableAccount.AccountID, domain.NatureDebit)
	suite.Require().NotNil(receivable)
	suite.True(receivable.Amount.Equal(decimal.NewFromInt(970)))

	// The netted batch still balances exactly.
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, entry := range suite.savedEntries {
		if entry.Nature == domain.NatureDebit {
			totalDebit = totalDebit.Add(entry.Amount)
		} else {
			totalCredit = totalCredit.Add(entry.Amount)
		}
	}
	suite.True(totalDebit.Equal(totalCredit))
}

func (suite *PostingServiceTestSuite) TestApproveSalesInvoice_DiscountPostedWhenConfigured() {
	invoice := suite.draftInvoice()
	invoice.DiscountAmount = decimal.NewFromInt(100)
	invoice.DiscountAccountID = suite.discountAccount.AccountID
	suite.expectPostingPath()
	suite.mockDocumentRepo.On("FindSalesInvoiceByID", mock.Anything, invoice.InvoiceID).Return(invoice, nil)

	_, err := suite.service.ApproveSalesInvoice(suite.ctx, suite.companyID, invoice.InvoiceID, suite.userID)

	suite.Require().NoError(err)

	discount := suite.findEntry(suite.discountAccount.AccountID, domain.NatureDebit)
	suite.Require().NotNil(discount)
	suite.True(discount.Amount.Equal(decimal.NewFromInt(100)))

	income := suite.findEntry(suite.incomeAccount.AccountID, domain.NatureCredit)
	suite.Require().NotNil(income)
	suite.True(income.Amount.Equal(decimal.NewFromInt(1000)), "configured discount should not touch the income credit")
}

func (suite *PostingServiceTestSuite) TestApproveSalesInvoice_NotDraft() {
	invoice := suite.draftInvoice()
	invoice.Status = domain.StatusApproved
	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.companyID, suite.userID, domain.RoleMember).Return(nil)
	suite.mockDocumentRepo.On("FindSalesInvoiceByID", mock.Anything, invoice.InvoiceID).Return(invoice, nil)

	_, err := suite.service.ApproveSalesInvoice(suite.ctx, suite.companyID, invoice.InvoiceID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PostingServiceTestSuite) TestApproveSalesInvoice_WrongCompany() {
	invoice := suite.draftInvoice()
	invoice.CompanyID = uuid.NewString()
	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.companyID, suite.userID, domain.RoleMember).Return(nil)
	suite.mockDocumentRepo.On("FindSalesInvoiceByID", mock.Anything, invoice.InvoiceID).Return(invoice, nil)

	_, err := suite.service.ApproveSalesInvoice(suite.ctx, suite.companyID, invoice.InvoiceID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PostingServiceTestSuite) TestApproveSalesInvoice_ConcurrentApprovalConflict() {
	invoice := suite.draftInvoice()
	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.companyID, suite.userID, domain.RoleMember).Return(nil)
	suite.mockCompanySvc.On("GetCompanyByID", mock.Anything, suite.companyID, suite.userID).
		Return(&domain.Company{CompanyID: suite.companyID, BaseCurrencyCode: "USD"}, nil)
	suite.mockRateSvc.On("ResolveRate", mock.Anything, "USD", "USD", mock.Anything).
		Return(decimal.NewFromInt(1), nil)
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(map[string]domain.Account{
		suite.cogsAccount.AccountID:       suite.cogsAccount,
		suite.inventoryAccount.AccountID:  suite.inventoryAccount,
		suite.incomeAccount.AccountID:     suite.incomeAccount,
		suite.receivableAccount.AccountID: suite.receivableAccount,
		suite.taxAccount.AccountID:        suite.taxAccount,
	}, nil)
	suite.mockDocumentRepo.On("FindSalesInvoiceByID", mock.Anything, invoice.InvoiceID).Return(invoice, nil)

	// The conditional status update hit zero rows: someone else won the race.
	suite.mockLedgerRepo.On("SaveBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(apperrors.NewAppError(409, "document already transitioned", apperrors.ErrConflict))

	_, err := suite.service.ApproveSalesInvoice(suite.ctx, suite.companyID, invoice.InvoiceID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PostingServiceTestSuite) TestApproveReceipt_WithWithholding() {
	receipt := &domain.Receipt{
		ReceiptID:           uuid.NewString(),
		CompanyID:           suite.companyID,
		CustomerID:          uuid.NewString(),
		ReferenceNumber:     "RCP-001",
		Status:              domain.StatusDraft,
		ReceiptDate:         time.Now(),
		CurrencyCode:        "USD",
		Amount:              decimal.NewFromInt(500),
		WHTAmount:           decimal.NewFromInt(20),
		ReceivableAccountID: suite.receivableAccount.AccountID,
		CashAccountID:       suite.cashAccount.AccountID,
		WHTAccountID:        suite.whtAccount.AccountID,
	}
	suite.expectPostingPath()
	suite.mockDocumentRepo.On("FindReceiptByID", mock.Anything, receipt.ReceiptID).Return(receipt, nil)

	batch, err := suite.service.ApproveReceipt(suite.ctx, suite.companyID, receipt.ReceiptID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.DocReceipt, batch.TransactionType)

	cash := suite.findEntry(suite.cashAccount.AccountID, domain.NatureDebit)
	suite.Require().NotNil(cash)
	suite.True(cash.Amount.Equal(decimal.NewFromInt(500)))

	wht := suite.findEntry(suite.whtAccount.AccountID, domain.NatureDebit)
	suite.Require().NotNil(wht)
	suite.True(wht.Amount.Equal(decimal.NewFromInt(20)))

	receivable := suite.findEntry(suite.receivableAccount.AccountID, domain.NatureCredit)
	suite.Require().NotNil(receivable)
	suite.True(receivable.Amount.Equal(decimal.NewFromInt(520)), "receivable cleared by cash plus withholding")

	suite.True(suite.savedEffects.CustomerBalanceDelta.Equal(decimal.NewFromInt(-520)))
}

func (suite *PostingServiceTestSuite) TestApproveReceipt_WithholdingUnconfiguredClearsCashOnly() {
	receipt := &domain.Receipt{
		ReceiptID:           uuid.NewString(),
		CompanyID:           suite.companyID,
		CustomerID:          uuid.NewString(),
		ReferenceNumber:     "RCP-002",
		Status:              domain.StatusDraft,
		ReceiptDate:         time.Now(),
		CurrencyCode:        "USD",
		Amount:              decimal.NewFromInt(500),
		WHTAmount:           decimal.NewFromInt(20),
		ReceivableAccountID: suite.receivableAccount.AccountID,
		CashAccountID:       suite.cashAccount.AccountID,
	}
	suite.expectPostingPath()
	suite.mockDocumentRepo.On("FindReceiptByID", mock.Anything, receipt.ReceiptID).Return(receipt, nil)

	_, err := suite.service.ApproveReceipt(suite.ctx, suite.companyID, receipt.ReceiptID, suite.userID)

	suite.Require().NoError(err)
	suite.Len(suite.savedEntries, 2)

	receivable := suite.findEntry(suite.receivableAccount.AccountID, domain.NatureCredit)
	suite.Require().NotNil(receivable)
	suite.True(receivable.Amount.Equal(decimal.NewFromInt(500)))
	suite.True(suite.savedEffects.CustomerBalanceDelta.Equal(decimal.NewFromInt(-500)))
}

func (suite *PostingServiceTestSuite) TestApproveStockAdjustment_Loss() {
	adjustment := &domain.StockAdjustment{
		AdjustmentID:    uuid.NewString(),
		CompanyID:       suite.companyID,
		ReferenceNumber: "ADJ-001",
		Status:          domain.StatusDraft,
		AdjustmentDate:  time.Now(),
		CurrencyCode:    "USD",
		Reason:          "Stock count shrinkage",
		Lines: []domain.AdjustmentLine{
			{
				LineID:             uuid.NewString(),
				ProductID:          "prod-9",
				ProductName:        "Gadget",
				QuantityDelta:      decimal.NewFromInt(-3),
				UnitCost:           decimal.NewFromInt(25),
				InventoryAccountID: suite.inventoryAccount.AccountID,
			},
		},
		AdjustmentAccountID: suite.shrinkageAccount.AccountID,
	}
	suite.expectPostingPath()
	suite.mockDocumentRepo.On("FindStockAdjustmentByID", mock.Anything, adjustment.AdjustmentID).Return(adjustment, nil)

	batch, err := suite.service.ApproveStockAdjustment(suite.ctx, suite.companyID, adjustment.AdjustmentID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.DocStockAdjustment, batch.TransactionType)

	inventory := suite.findEntry(suite.inventoryAccount.AccountID, domain.NatureCredit)
	suite.Require().NotNil(inventory)
	suite.True(inventory.Amount.Equal(decimal.NewFromInt(75)), "loss credits inventory at quantity x unit cost")

	expense := suite.findEntry(suite.shrinkageAccount.AccountID, domain.NatureDebit)
	suite.Require().NotNil(expense)
	suite.True(expense.Amount.Equal(decimal.NewFromInt(75)))

	suite.True(suite.savedEffects.StockDeltas["prod-9"].Equal(decimal.NewFromInt(-3)))
}

func (suite *PostingServiceTestSuite) TestPostManualJournal_Success() {
	journal := domain.ManualJournal{
		ReferenceNumber: "JRN-001",
		JournalDate:     time.Now(),
		CurrencyCode:    "USD",
		Lines: []domain.ManualJournalLine{
			{AccountID: suite.cashAccount.AccountID, Nature: domain.NatureDebit, Amount: decimal.NewFromInt(50)},
			{AccountID: suite.incomeAccount.AccountID, Nature: domain.NatureCredit, Amount: decimal.NewFromInt(50)},
		},
	}
	suite.expectPostingPath()

	batch, err := suite.service.PostManualJournal(suite.ctx, suite.companyID, journal, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.DocJournalEntry, batch.TransactionType)
	suite.Len(suite.savedEntries, 2)
	// No document to transition: the zero value skips the status update.
	suite.Equal(domain.StatusTransition{}, suite.savedTransition)
}

func (suite *PostingServiceTestSuite) TestPostManualJournal_Unbalanced() {
	journal := domain.ManualJournal{
		ReferenceNumber: "JRN-002",
		JournalDate:     time.Now(),
		CurrencyCode:    "USD",
		Lines: []domain.ManualJournalLine{
			{AccountID: suite.cashAccount.AccountID, Nature: domain.NatureDebit, Amount: decimal.NewFromInt(50)},
			{AccountID: suite.incomeAccount.AccountID, Nature: domain.NatureCredit, Amount: decimal.NewFromInt(49)},
		},
	}
	suite.expectPostingPath()

	_, err := suite.service.PostManualJournal(suite.ctx, suite.companyID, journal, suite.userID)

	suite.Require().Error(err)
	var unbalanced *apperrors.UnbalancedBatchError
	suite.ErrorAs(err, &unbalanced)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostManualJournal_TooFewLines() {
	journal := domain.ManualJournal{
		ReferenceNumber: "JRN-003",
		CurrencyCode:    "USD",
		Lines: []domain.ManualJournalLine{
			{AccountID: suite.cashAccount.AccountID, Nature: domain.NatureDebit, Amount: decimal.NewFromInt(50)},
		},
	}
	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.companyID, suite.userID, domain.RoleMember).Return(nil)

	_, err := suite.service.PostManualJournal(suite.ctx, suite.companyID, journal, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestPostManualJournal_SingleAccount() {
	journal := domain.ManualJournal{
		ReferenceNumber: "JRN-004",
		CurrencyCode:    "USD",
		Lines: []domain.ManualJournalLine{
			{AccountID: suite.cashAccount.AccountID, Nature: domain.NatureDebit, Amount: decimal.NewFromInt(50)},
			{AccountID: suite.cashAccount.AccountID, Nature: domain.NatureCredit, Amount: decimal.NewFromInt(50)},
		},
	}
	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.companyID, suite.userID, domain.RoleMember).Return(nil)

	_, err := suite.service.PostManualJournal(suite.ctx, suite.companyID, journal, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestReverseBatch_FlipsPersistedEntries() {
	invoice := suite.draftInvoice()
	invoice.Status = domain.StatusApproved
	originalBatchID := uuid.NewString()
	original := &domain.PostingBatch{
		BatchID:         originalBatchID,
		CompanyID:       suite.companyID,
		DocumentID:      invoice.InvoiceID,
		ReferenceNumber: "INV-001",
		TransactionType: domain.DocSalesInvoice,
		TransactionDate: time.Now().Add(-24 * time.Hour),
		CurrencyCode:    "USD",
		ExchangeRate:    decimal.NewFromInt(1),
	}
	originalEntries := []domain.LedgerEntry{
		{
			EntryID: uuid.NewString(), BatchID: originalBatchID, CompanyID: suite.companyID,
			AccountID: suite.receivableAccount.AccountID, AccountRole: domain.RoleReceivable,
			Nature: domain.NatureDebit, Amount: decimal.NewFromInt(1070),
			ExchangeRate: decimal.NewFromInt(1), EquivalentDebitAmount: decimal.NewFromInt(1070),
		},
		{
			EntryID: uuid.NewString(), BatchID: originalBatchID, CompanyID: suite.companyID,
			AccountID: suite.incomeAccount.AccountID, AccountRole: domain.RoleIncome,
			Nature: domain.NatureCredit, Amount: decimal.NewFromInt(1000),
			ExchangeRate: decimal.NewFromInt(1), EquivalentCreditAmount: decimal.NewFromInt(1000),
		},
		{
			EntryID: uuid.NewString(), BatchID: originalBatchID, CompanyID: suite.companyID,
			AccountID: suite.taxAccount.AccountID, AccountRole: domain.RoleTaxPayable,
			Nature: domain.NatureCredit, Amount: decimal.NewFromInt(70),
			ExchangeRate: decimal.NewFromInt(1), EquivalentCreditAmount: decimal.NewFromInt(70),
		},
	}
	suite.expectPostingPath()
	suite.mockLedgerRepo.On("FindBatchByID", mock.Anything, originalBatchID).Return(original, nil)
	suite.mockLedgerRepo.On("FindEntriesByBatchID", mock.Anything, originalBatchID).Return(originalEntries, nil)
	suite.mockDocumentRepo.On("FindSalesInvoiceByID", mock.Anything, invoice.InvoiceID).Return(invoice, nil)

	reversal, err := suite.service.ReverseBatch(suite.ctx, suite.companyID, originalBatchID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal.OriginalBatchID)
	suite.Equal(originalBatchID, *reversal.OriginalBatchID)
	suite.Len(suite.savedEntries, 3)

	flippedReceivable := suite.findEntry(suite.receivableAccount.AccountID, domain.NatureCredit)
	suite.Require().NotNil(flippedReceivable)
	suite.True(flippedReceivable.Amount.Equal(decimal.NewFromInt(1070)), "reversal mirrors the persisted amount")
	suite.True(flippedReceivable.EquivalentCreditAmount.Equal(decimal.NewFromInt(1070)), "equivalent amount moves to the flipped side")
	suite.True(flippedReceivable.EquivalentDebitAmount.IsZero())

	suite.Require().NotNil(suite.findEntry(suite.incomeAccount.AccountID, domain.NatureDebit))
	suite.Require().NotNil(suite.findEntry(suite.taxAccount.AccountID, domain.NatureDebit))

	suite.Equal(domain.StatusApproved, suite.savedTransition.From)
	suite.Equal(domain.StatusVoided, suite.savedTransition.To)

	suite.True(suite.savedEffects.CustomerBalanceDelta.Equal(decimal.NewFromInt(-1070)))
	suite.True(suite.savedEffects.StockDeltas["prod-1"].Equal(decimal.NewFromInt(2)), "reversal restores the sold stock")
}

func (suite *PostingServiceTestSuite) TestReverseBatch_AlreadyReversed() {
	originalBatchID := uuid.NewString()
	reversingID := uuid.NewString()
	original := &domain.PostingBatch{
		BatchID:          originalBatchID,
		CompanyID:        suite.companyID,
		TransactionType:  domain.DocSalesInvoice,
		ReversingBatchID: &reversingID,
	}
	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.companyID, suite.userID, domain.RoleMember).Return(nil)
	suite.mockLedgerRepo.On("FindBatchByID", mock.Anything, originalBatchID).Return(original, nil)

	_, err := suite.service.ReverseBatch(suite.ctx, suite.companyID, originalBatchID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PostingServiceTestSuite) TestReverseBatch_RejectsReversalOfReversal() {
	batchID := uuid.NewString()
	sourceID := uuid.NewString()
	reversalBatch := &domain.PostingBatch{
		BatchID:         batchID,
		CompanyID:       suite.companyID,
		TransactionType: domain.DocSalesInvoice,
		OriginalBatchID: &sourceID,
	}
	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.companyID, suite.userID, domain.RoleMember).Return(nil)
	suite.mockLedgerRepo.On("FindBatchByID", mock.Anything, batchID).Return(reversalBatch, nil)

	_, err := suite.service.ReverseBatch(suite.ctx, suite.companyID, batchID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestApproveSalesInvoice_Forbidden() {
	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.companyID, suite.userID, domain.RoleMember).
		Return(apperrors.ErrForbidden)

	_, err := suite.service.ApproveSalesInvoice(suite.ctx, suite.companyID, uuid.NewString(), suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "FindSalesInvoiceByID", mock.Anything, mock.Anything)
}

func TestPostingService(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
