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
	"github.com/poslite/poslite_backend/internal/utils/accounting"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrDocumentNotDraft   = errors.New("document is not in draft status")
	ErrBatchAlreadyVoided = errors.New("batch is already reversed")
	ErrJournalMinEntries  = errors.New("journal must have at least two lines")
	ErrJournalMinAccounts = errors.New("journal must affect at least two different accounts")
)

// plannedLine is a resolved posting line before account details are attached.
type plannedLine struct {
	Role      domain.AccountRole
	AccountID string
	Nature    domain.EntryNature
	Amount    decimal.Decimal
	Notes     string
}

// postingService turns approved documents into balanced ledger batches.
type postingService struct {
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	documentRepo portsrepo.DocumentRepositoryFacade
	rateSvc      portssvc.ExchangeRateSvcFacade
	companySvc   portssvc.CompanySvcFacade
}

// NewPostingService creates a new posting service.
func NewPostingService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, documentRepo portsrepo.DocumentRepositoryFacade, rateSvc portssvc.ExchangeRateSvcFacade, companySvc portssvc.CompanySvcFacade) portssvc.PostingSvcFacade {
	return &postingService{
		ledgerRepo:   ledgerRepo,
		accountRepo:  accountRepo,
		documentRepo: documentRepo,
		rateSvc:      rateSvc,
		companySvc:   companySvc,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// ApproveSalesInvoice posts a draft sales invoice.
func (s *postingService) ApproveSalesInvoice(ctx context.Context, companyID string, invoiceID string, userID string) (*domain.PostingBatch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	invoice, err := s.documentRepo.FindSalesInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	if invoice.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	if invoice.Status != domain.StatusDraft {
		return nil, apperrors.NewAppError(409, "invoice is not in draft status", apperrors.ErrConflict)
	}

	planned, err := s.planInvoiceLines(ctx, *invoice)
	if err != nil {
		return nil, err
	}

	effects := domain.PostingEffects{
		CustomerID:           invoice.CustomerID,
		CustomerBalanceDelta: invoice.BalanceAmount(),
	}
	for _, item := range invoice.LineItems {
		if item.IsService || item.Quantity.IsZero() {
			continue
		}
		if effects.StockDeltas == nil {
			effects.StockDeltas = make(map[string]decimal.Decimal)
		}
		effects.StockDeltas[item.ProductID] = effects.StockDeltas[item.ProductID].Sub(item.Quantity)
	}

	transition := domain.StatusTransition{
		DocumentType: domain.DocSalesInvoice,
		DocumentID:   invoice.InvoiceID,
		From:         domain.StatusDraft,
		To:           domain.StatusApproved,
	}

	batch, err := s.post(ctx, companyID, invoice, planned, transition, effects, userID)
	if err != nil {
		return nil, err
	}
	logger.Info("Sales invoice posted", "invoiceID", invoiceID, "batchID", batch.BatchID)
	return batch, nil
}

// planInvoiceLines builds the posting lines for a sales invoice.
//
// Per product line (services excluded): DR COGS / CR Inventory at quantity
// times average cost. Then DR Receivable for the open balance, CR Income for
// the pre-tax subtotal, CR Tax Payable, DR WHT Receivable, DR Discount
// Allowed, and DR Cash for any amount already paid. Cash plus the open
// balance covers the total, so the batch balances on its own.
//
// Tax with no resolvable account fails the posting; discount and withholding
// with no account are skipped with their amounts netted against the income
// credit, which keeps the batch balanced and is flagged by the offline audit.
func (s *postingService) planInvoiceLines(ctx context.Context, invoice domain.SalesInvoice) ([]plannedLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	var planned []plannedLine

	for _, item := range invoice.LineItems {
		if item.IsService {
			continue
		}
		cost := accounting.RoundAmount(item.Quantity.Mul(item.AverageCost))
		if cost.IsZero() {
			continue
		}
		lineLabel := fmt.Sprintf("line item %s (%s)", item.LineItemID, item.ProductName)

		cogsID, err := resolveAccountID(domain.RoleCOGS, domain.LineContext{
			Line:              lineLabel,
			ItemAccountID:     item.COGSAccountID,
			CategoryAccountID: item.CategoryCOGSAccountID,
		})
		if err != nil {
			return nil, err
		}
		inventoryID, err := resolveAccountID(domain.RoleInventory, domain.LineContext{
			Line:              lineLabel,
			ItemAccountID:     item.InventoryAccountID,
			CategoryAccountID: item.CategoryInventoryAccountID,
		})
		if err != nil {
			return nil, err
		}

		planned = append(planned,
			plannedLine{Role: domain.RoleCOGS, AccountID: cogsID, Nature: domain.NatureDebit, Amount: cost, Notes: "Cost of goods sold: " + item.ProductName},
			plannedLine{Role: domain.RoleInventory, AccountID: inventoryID, Nature: domain.NatureCredit, Amount: cost, Notes: "Inventory out: " + item.ProductName},
		)
	}

	// The receivable debit is the open balance, not the full total. Posting
	// the total double-counts any amount already settled.
	balance := invoice.BalanceAmount()
	if balance.IsPositive() {
		receivableID, err := resolveAccountID(domain.RoleReceivable, domain.LineContext{
			Line:              "receivable",
			CustomerAccountID: invoice.CustomerReceivableAccountID,
			DocumentAccountID: invoice.ReceivableAccountID,
		})
		if err != nil {
			return nil, err
		}
		planned = append(planned, plannedLine{Role: domain.RoleReceivable, AccountID: receivableID, Nature: domain.NatureDebit, Amount: balance, Notes: "Accounts receivable"})
	}

	// The income credit is the pre-tax subtotal. Amounts of skipped optional
	// roles are netted against it below.
	incomeCredit := invoice.Subtotal

	if invoice.TaxAmount.IsPositive() {
		taxID, err := resolveAccountID(domain.RoleTaxPayable, domain.LineContext{
			Line:              "tax",
			DocumentAccountID: invoice.TaxAccountID,
		})
		if err != nil {
			return nil, err
		}
		if taxID == "" {
			// Tax owed to the authority must never go untracked.
			return nil, &apperrors.MissingAccountConfigError{Role: string(domain.RoleTaxPayable), Line: invoice.ReferenceNumber}
		}
		planned = append(planned, plannedLine{Role: domain.RoleTaxPayable, AccountID: taxID, Nature: domain.NatureCredit, Amount: invoice.TaxAmount, Notes: "Sales tax payable"})
	}

	if invoice.WHTAmount.IsPositive() {
		whtID, err := resolveAccountID(domain.RoleWHTReceivable, domain.LineContext{
			Line:              "withholding",
			DocumentAccountID: invoice.WHTAccountID,
		})
		if err != nil {
			return nil, err
		}
		if whtID == "" {
			// Skipping the line outright would leave the batch unbalanced by
			// the withheld amount; netting it against income understates
			// revenue but keeps debits equal to credits, and the receivable
			// consistency audit still accounts for it.
			logger.Warn("No withholding tax account configured, netting against income", "reference", invoice.ReferenceNumber, "amount", invoice.WHTAmount)
			incomeCredit = incomeCredit.Sub(invoice.WHTAmount)
		} else {
			planned = append(planned, plannedLine{Role: domain.RoleWHTReceivable, AccountID: whtID, Nature: domain.NatureDebit, Amount: invoice.WHTAmount, Notes: "Withholding tax receivable"})
		}
	}

	if invoice.DiscountAmount.IsPositive() {
		discountID, err := resolveAccountID(domain.RoleDiscountAllowed, domain.LineContext{
			Line:              "discount",
			DocumentAccountID: invoice.DiscountAccountID,
		})
		if err != nil {
			return nil, err
		}
		if discountID == "" {
			logger.Warn("No discount account configured, netting against income", "reference", invoice.ReferenceNumber, "amount", invoice.DiscountAmount)
			incomeCredit = incomeCredit.Sub(invoice.DiscountAmount)
		} else {
			planned = append(planned, plannedLine{Role: domain.RoleDiscountAllowed, AccountID: discountID, Nature: domain.NatureDebit, Amount: invoice.DiscountAmount, Notes: "Discount allowed"})
		}
	}

	if incomeCredit.IsPositive() {
		incomeID, err := resolveAccountID(domain.RoleIncome, domain.LineContext{
			Line:              "income",
			DocumentAccountID: invoice.IncomeAccountID,
		})
		if err != nil {
			return nil, err
		}
		planned = append(planned, plannedLine{Role: domain.RoleIncome, AccountID: incomeID, Nature: domain.NatureCredit, Amount: incomeCredit, Notes: "Sales income"})
	}

	// Payment applied at posting time is recorded as a cash debit. The
	// receivable debit above already excludes the paid portion, so an
	// offsetting receivable credit here would count the payment twice.
	if invoice.PaidAmount.IsPositive() {
		cashID, err := resolveAccountID(domain.RoleCash, domain.LineContext{
			Line:              "payment",
			DocumentAccountID: invoice.CashAccountID,
		})
		if err != nil {
			return nil, err
		}
		planned = append(planned, plannedLine{Role: domain.RoleCash, AccountID: cashID, Nature: domain.NatureDebit, Amount: invoice.PaidAmount, Notes: "Payment received at invoicing"})
	}

	return planned, nil
}

// ApproveReceipt posts a draft receipt against the customer balance.
func (s *postingService) ApproveReceipt(ctx context.Context, companyID string, receiptID string, userID string) (*domain.PostingBatch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	receipt, err := s.documentRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to find receipt %s: %w", receiptID, err)
	}
	if receipt.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	if receipt.Status != domain.StatusDraft {
		return nil, apperrors.NewAppError(409, "receipt is not in draft status", apperrors.ErrConflict)
	}

	var planned []plannedLine

	cashID, err := resolveAccountID(domain.RoleCash, domain.LineContext{
		Line:              "cash",
		DocumentAccountID: receipt.CashAccountID,
	})
	if err != nil {
		return nil, err
	}
	planned = append(planned, plannedLine{Role: domain.RoleCash, AccountID: cashID, Nature: domain.NatureDebit, Amount: receipt.Amount, Notes: "Cash received"})

	// If no withholding account resolves the receivable is only cleared by the
	// cash portion, keeping the batch balanced.
	cleared := receipt.Amount
	if receipt.WHTAmount.IsPositive() {
		whtID, err := resolveAccountID(domain.RoleWHTReceivable, domain.LineContext{
			Line:              "withholding",
			DocumentAccountID: receipt.WHTAccountID,
		})
		if err != nil {
			return nil, err
		}
		if whtID == "" {
			logger.Warn("No withholding tax account configured, clearing cash portion only", "reference", receipt.ReferenceNumber)
		} else {
			planned = append(planned, plannedLine{Role: domain.RoleWHTReceivable, AccountID: whtID, Nature: domain.NatureDebit, Amount: receipt.WHTAmount, Notes: "Withholding tax receivable"})
			cleared = cleared.Add(receipt.WHTAmount)
		}
	}

	receivableID, err := resolveAccountID(domain.RoleReceivable, domain.LineContext{
		Line:              "receivable",
		CustomerAccountID: receipt.CustomerReceivableAccountID,
		DocumentAccountID: receipt.ReceivableAccountID,
	})
	if err != nil {
		return nil, err
	}
	planned = append(planned, plannedLine{Role: domain.RoleReceivable, AccountID: receivableID, Nature: domain.NatureCredit, Amount: cleared, Notes: "Receivable settled"})

	effects := domain.PostingEffects{
		CustomerID:           receipt.CustomerID,
		CustomerBalanceDelta: cleared.Neg(),
	}
	transition := domain.StatusTransition{
		DocumentType: domain.DocReceipt,
		DocumentID:   receipt.ReceiptID,
		From:         domain.StatusDraft,
		To:           domain.StatusApproved,
	}

	batch, err := s.post(ctx, companyID, receipt, planned, transition, effects, userID)
	if err != nil {
		return nil, err
	}
	logger.Info("Receipt posted", "receiptID", receiptID, "batchID", batch.BatchID)
	return batch, nil
}

// ApproveStockAdjustment posts a draft stock adjustment.
func (s *postingService) ApproveStockAdjustment(ctx context.Context, companyID string, adjustmentID string, userID string) (*domain.PostingBatch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	adjustment, err := s.documentRepo.FindStockAdjustmentByID(ctx, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find stock adjustment %s: %w", adjustmentID, err)
	}
	if adjustment.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	if adjustment.Status != domain.StatusDraft {
		return nil, apperrors.NewAppError(409, "stock adjustment is not in draft status", apperrors.ErrConflict)
	}

	var planned []plannedLine
	effects := domain.PostingEffects{}

	for _, line := range adjustment.Lines {
		value := accounting.RoundAmount(line.QuantityDelta.Abs().Mul(line.UnitCost))
		if line.QuantityDelta.IsZero() {
			continue
		}

		if effects.StockDeltas == nil {
			effects.StockDeltas = make(map[string]decimal.Decimal)
		}
		effects.StockDeltas[line.ProductID] = effects.StockDeltas[line.ProductID].Add(line.QuantityDelta)

		if value.IsZero() {
			continue
		}
		lineLabel := fmt.Sprintf("adjustment line %s (%s)", line.LineID, line.ProductName)

		inventoryID, err := resolveAccountID(domain.RoleInventory, domain.LineContext{
			Line:              lineLabel,
			ItemAccountID:     line.InventoryAccountID,
			CategoryAccountID: line.CategoryInventoryAccountID,
		})
		if err != nil {
			return nil, err
		}
		adjustmentAccountID, err := resolveAccountID(domain.RoleStockAdjustment, domain.LineContext{
			Line:              lineLabel,
			DocumentAccountID: adjustment.AdjustmentAccountID,
		})
		if err != nil {
			return nil, err
		}

		inventoryNature := domain.NatureDebit
		if line.QuantityDelta.IsNegative() {
			inventoryNature = domain.NatureCredit
		}
		planned = append(planned,
			plannedLine{Role: domain.RoleInventory, AccountID: inventoryID, Nature: inventoryNature, Amount: value, Notes: "Stock adjustment: " + line.ProductName},
			plannedLine{Role: domain.RoleStockAdjustment, AccountID: adjustmentAccountID, Nature: inventoryNature.Opposite(), Amount: value, Notes: adjustment.Reason},
		)
	}

	transition := domain.StatusTransition{
		DocumentType: domain.DocStockAdjustment,
		DocumentID:   adjustment.AdjustmentID,
		From:         domain.StatusDraft,
		To:           domain.StatusApproved,
	}

	batch, err := s.post(ctx, companyID, adjustment, planned, transition, effects, userID)
	if err != nil {
		return nil, err
	}
	logger.Info("Stock adjustment posted", "adjustmentID", adjustmentID, "batchID", batch.BatchID)
	return batch, nil
}

// PostManualJournal posts a caller-supplied journal entry.
func (s *postingService) PostManualJournal(ctx context.Context, companyID string, journal domain.ManualJournal, userID string) (*domain.PostingBatch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	if len(journal.Lines) < 2 {
		return nil, apperrors.NewValidationError(ErrJournalMinEntries.Error())
	}
	distinct := make(map[string]struct{}, len(journal.Lines))
	var planned []plannedLine
	for _, line := range journal.Lines {
		if !line.Amount.IsPositive() {
			return nil, apperrors.NewValidationError("journal line amounts must be positive")
		}
		if line.Nature != domain.NatureDebit && line.Nature != domain.NatureCredit {
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid entry nature %q", line.Nature))
		}
		distinct[line.AccountID] = struct{}{}
		planned = append(planned, plannedLine{AccountID: line.AccountID, Nature: line.Nature, Amount: line.Amount, Notes: line.Notes})
	}
	if len(distinct) < 2 {
		return nil, apperrors.NewValidationError(ErrJournalMinAccounts.Error())
	}

	doc := manualJournalDoc{companyID: companyID, journal: journal, docID: uuid.NewString()}
	batch, err := s.post(ctx, companyID, doc, planned, domain.StatusTransition{}, domain.PostingEffects{}, userID)
	if err != nil {
		return nil, err
	}
	logger.Info("Manual journal posted", "batchID", batch.BatchID)
	return batch, nil
}

// manualJournalDoc adapts a manual journal to the document contract. Manual
// journals have no stored draft; the batch id doubles as the document id.
type manualJournalDoc struct {
	companyID string
	docID     string
	journal   domain.ManualJournal
}

func (d manualJournalDoc) DocType() domain.DocumentType     { return domain.DocJournalEntry }
func (d manualJournalDoc) DocID() string                    { return d.docID }
func (d manualJournalDoc) Company() string                  { return d.companyID }
func (d manualJournalDoc) Reference() string                { return d.journal.ReferenceNumber }
func (d manualJournalDoc) Date() time.Time                  { return d.journal.JournalDate }
func (d manualJournalDoc) Currency() string                 { return d.journal.CurrencyCode }
func (d manualJournalDoc) DocStatus() domain.DocumentStatus { return domain.StatusDraft }

// post is the shared write path: resolve the exchange rate, load and validate
// the accounts, materialize the entries, verify the balance and hand
// everything to the ledger writer in one transaction.
func (s *postingService) post(ctx context.Context, companyID string, doc domain.Document, planned []plannedLine, transition domain.StatusTransition, effects domain.PostingEffects, userID string) (*domain.PostingBatch, error) {
	if len(planned) == 0 {
		return nil, apperrors.NewValidationError("document produces no posting lines")
	}

	company, err := s.companySvc.GetCompanyByID(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}

	rate, err := s.rateSvc.ResolveRate(ctx, doc.Currency(), company.BaseCurrencyCode, doc.Date())
	if err != nil {
		return nil, err
	}

	accountIDs := make([]string, 0, len(planned))
	seen := make(map[string]struct{}, len(planned))
	for _, line := range planned {
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			accountIDs = append(accountIDs, line.AccountID)
		}
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	for _, id := range accountIDs {
		account, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
		}
		if account.CompanyID != companyID {
			return nil, apperrors.NewValidationError(fmt.Sprintf("account %s belongs to another company", account.Code))
		}
		if !account.IsActive {
			return nil, apperrors.NewValidationError(fmt.Sprintf("%v: %s", ErrAccountInactive, account.Code))
		}
	}

	now := time.Now()
	batch := domain.PostingBatch{
		BatchID:         uuid.NewString(),
		CompanyID:       companyID,
		DocumentID:      doc.DocID(),
		ReferenceNumber: doc.Reference(),
		TransactionType: doc.DocType(),
		TransactionDate: doc.Date(),
		CurrencyCode:    doc.Currency(),
		ExchangeRate:    rate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	entries := make([]domain.LedgerEntry, 0, len(planned))
	for _, line := range planned {
		account := accounts[line.AccountID]
		entry, err := buildEntry(batch, line, account, userID, now)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	// Pre-commit balance check: reject before anything is written.
	totalDebit, totalCredit := accounting.SumByNature(entries)
	if !accounting.IsBalanced(totalDebit, totalCredit) {
		return nil, &apperrors.UnbalancedBatchError{
			ReferenceNumber: batch.ReferenceNumber,
			TotalDebit:      totalDebit,
			TotalCredit:     totalCredit,
		}
	}

	balanceChanges, err := computeBalanceChanges(entries, accounts)
	if err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.SaveBatch(ctx, batch, entries, balanceChanges, transition, effects); err != nil {
		return nil, err
	}
	return &batch, nil
}

// buildEntry materializes one ledger entry, converting the amount to its base
// currency equivalent on the side matching the nature.
func buildEntry(batch domain.PostingBatch, line plannedLine, account domain.Account, userID string, now time.Time) (domain.LedgerEntry, error) {
	amount := accounting.RoundAmount(line.Amount)
	equivalent, err := accounting.Convert(amount, batch.ExchangeRate, accounting.AmountScale)
	if err != nil {
		return domain.LedgerEntry{}, err
	}

	entry := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		BatchID:         batch.BatchID,
		CompanyID:       batch.CompanyID,
		AccountID:       account.AccountID,
		AccountCode:     account.Code,
		AccountName:     account.Name,
		AccountRole:     line.Role,
		Nature:          line.Nature,
		Amount:          amount,
		ExchangeRate:    batch.ExchangeRate,
		ReferenceNumber: batch.ReferenceNumber,
		TransactionType: batch.TransactionType,
		TransactionDate: batch.TransactionDate,
		Notes:           line.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if line.Nature == domain.NatureDebit {
		entry.EquivalentDebitAmount = equivalent
	} else {
		entry.EquivalentCreditAmount = equivalent
	}
	return entry, nil
}

// computeBalanceChanges aggregates the signed base-currency delta per account.
func computeBalanceChanges(entries []domain.LedgerEntry, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, len(accounts))
	for _, entry := range entries {
		account, ok := accounts[entry.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, entry.AccountID)
		}
		signed, err := accounting.CalculateSignedAmount(entry.EquivalentAmount(), entry.Nature, account.Category)
		if err != nil {
			return nil, err
		}
		changes[entry.AccountID] = changes[entry.AccountID].Add(signed)
	}
	return changes, nil
}

// ReverseBatch voids a posted document by writing a mirror batch. The
// reversing entries flip the natures of the persisted originals with
// identical amounts; nothing is recomputed from current document state.
func (s *postingService) ReverseBatch(ctx context.Context, companyID string, batchID string, userID string) (*domain.PostingBatch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	original, err := s.ledgerRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to find batch %s: %w", batchID, err)
	}
	if original.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	if original.IsReversal() {
		return nil, apperrors.NewValidationError("cannot reverse a reversal batch")
	}
	if original.ReversingBatchID != nil {
		return nil, apperrors.NewAppError(409, ErrBatchAlreadyVoided.Error(), apperrors.ErrConflict)
	}

	originalEntries, err := s.ledgerRepo.FindEntriesByBatchID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for batch %s: %w", batchID, err)
	}
	if len(originalEntries) == 0 {
		return nil, apperrors.ErrNotFound
	}

	now := time.Now()
	originalID := original.BatchID
	reversal := domain.PostingBatch{
		BatchID:         uuid.NewString(),
		CompanyID:       companyID,
		DocumentID:      original.DocumentID,
		ReferenceNumber: original.ReferenceNumber,
		TransactionType: original.TransactionType,
		TransactionDate: now,
		CurrencyCode:    original.CurrencyCode,
		ExchangeRate:    original.ExchangeRate,
		Description:     "Reversal of " + original.ReferenceNumber,
		OriginalBatchID: &originalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	entries := make([]domain.LedgerEntry, 0, len(originalEntries))
	accountIDs := make([]string, 0, len(originalEntries))
	seen := make(map[string]struct{}, len(originalEntries))
	for _, orig := range originalEntries {
		entries = append(entries, flipEntry(orig, reversal, userID, now))
		if _, ok := seen[orig.AccountID]; !ok {
			seen[orig.AccountID] = struct{}{}
			accountIDs = append(accountIDs, orig.AccountID)
		}
	}

	totalDebit, totalCredit := accounting.SumByNature(entries)
	if !accounting.IsBalanced(totalDebit, totalCredit) {
		return nil, &apperrors.UnbalancedBatchError{
			ReferenceNumber: reversal.ReferenceNumber,
			TotalDebit:      totalDebit,
			TotalCredit:     totalCredit,
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	balanceChanges, err := computeBalanceChanges(entries, accounts)
	if err != nil {
		return nil, err
	}

	transition, effects, err := s.reversalSideEffects(ctx, *original, entries)
	if err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.SaveBatch(ctx, reversal, entries, balanceChanges, transition, effects); err != nil {
		return nil, err
	}
	logger.Info("Batch reversed", "originalBatchID", batchID, "reversalBatchID", reversal.BatchID)
	return &reversal, nil
}

// flipEntry mirrors one persisted entry into the reversal batch, swapping the
// nature and the equivalent side while keeping the amounts identical.
func flipEntry(orig domain.LedgerEntry, reversal domain.PostingBatch, userID string, now time.Time) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:                uuid.NewString(),
		BatchID:                reversal.BatchID,
		CompanyID:              orig.CompanyID,
		AccountID:              orig.AccountID,
		AccountCode:            orig.AccountCode,
		AccountName:            orig.AccountName,
		AccountRole:            orig.AccountRole,
		Nature:                 orig.Nature.Opposite(),
		Amount:                 orig.Amount,
		ExchangeRate:           orig.ExchangeRate,
		EquivalentDebitAmount:  orig.EquivalentCreditAmount,
		EquivalentCreditAmount: orig.EquivalentDebitAmount,
		ReferenceNumber:        reversal.ReferenceNumber,
		TransactionType:        reversal.TransactionType,
		TransactionDate:        reversal.TransactionDate,
		Notes:                  "Reversal: " + orig.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}

// reversalSideEffects derives the document status transition and the inverse
// customer/stock effects for a reversal. The customer delta comes from the
// receivable entries of the reversal itself; stock deltas come from the
// frozen document lines, inverted.
func (s *postingService) reversalSideEffects(ctx context.Context, original domain.PostingBatch, reversalEntries []domain.LedgerEntry) (domain.StatusTransition, domain.PostingEffects, error) {
	customerDelta := decimal.Zero
	for _, entry := range reversalEntries {
		if entry.AccountRole != domain.RoleReceivable {
			continue
		}
		if entry.Nature == domain.NatureDebit {
			customerDelta = customerDelta.Add(entry.Amount)
		} else {
			customerDelta = customerDelta.Sub(entry.Amount)
		}
	}

	effects := domain.PostingEffects{CustomerBalanceDelta: customerDelta}
	transition := domain.StatusTransition{
		DocumentType: original.TransactionType,
		DocumentID:   original.DocumentID,
		From:         domain.StatusApproved,
		To:           domain.StatusVoided,
	}

	switch original.TransactionType {
	case domain.DocSalesInvoice:
		invoice, err := s.documentRepo.FindSalesInvoiceByID(ctx, original.DocumentID)
		if err != nil {
			return domain.StatusTransition{}, domain.PostingEffects{}, fmt.Errorf("failed to find invoice %s: %w", original.DocumentID, err)
		}
		effects.CustomerID = invoice.CustomerID
		for _, item := range invoice.LineItems {
			if item.IsService || item.Quantity.IsZero() {
				continue
			}
			if effects.StockDeltas == nil {
				effects.StockDeltas = make(map[string]decimal.Decimal)
			}
			effects.StockDeltas[item.ProductID] = effects.StockDeltas[item.ProductID].Add(item.Quantity)
		}
	case domain.DocReceipt:
		receipt, err := s.documentRepo.FindReceiptByID(ctx, original.DocumentID)
		if err != nil {
			return domain.StatusTransition{}, domain.PostingEffects{}, fmt.Errorf("failed to find receipt %s: %w", original.DocumentID, err)
		}
		effects.CustomerID = receipt.CustomerID
	case domain.DocStockAdjustment:
		adjustment, err := s.documentRepo.FindStockAdjustmentByID(ctx, original.DocumentID)
		if err != nil {
			return domain.StatusTransition{}, domain.PostingEffects{}, fmt.Errorf("failed to find stock adjustment %s: %w", original.DocumentID, err)
		}
		for _, line := range adjustment.Lines {
			if line.QuantityDelta.IsZero() {
				continue
			}
			if effects.StockDeltas == nil {
				effects.StockDeltas = make(map[string]decimal.Decimal)
			}
			effects.StockDeltas[line.ProductID] = effects.StockDeltas[line.ProductID].Sub(line.QuantityDelta)
		}
	case domain.DocJournalEntry:
		// Manual journals have no stored document; skip the status flip.
		transition = domain.StatusTransition{}
	}

	return transition, effects, nil
}
