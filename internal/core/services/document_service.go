package services

import (
	"context"
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

// documentService manages draft commercial documents.
type documentService struct {
	documentRepo portsrepo.DocumentRepositoryFacade
	companySvc   portssvc.CompanySvcFacade
}

// NewDocumentService creates a new document service.
func NewDocumentService(documentRepo portsrepo.DocumentRepositoryFacade, companySvc portssvc.CompanySvcFacade) portssvc.DocumentSvcFacade {
	return &documentService{
		documentRepo: documentRepo,
		companySvc:   companySvc,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// CreateSalesInvoice validates and persists a draft invoice.
func (s *documentService) CreateSalesInvoice(ctx context.Context, companyID string, invoice domain.SalesInvoice, userID string) (*domain.SalesInvoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	if invoice.ReferenceNumber == "" {
		return nil, apperrors.NewValidationError("reference number is required")
	}
	if len(invoice.LineItems) == 0 {
		return nil, apperrors.NewValidationError("invoice must have at least one line item")
	}
	for _, amount := range []decimal.Decimal{invoice.Subtotal, invoice.TaxAmount, invoice.DiscountAmount, invoice.WHTAmount, invoice.PaidAmount} {
		if amount.IsNegative() {
			return nil, apperrors.NewValidationError("invoice amounts must not be negative")
		}
	}
	if invoice.DiscountAmount.Add(invoice.WHTAmount).GreaterThan(invoice.Subtotal) {
		return nil, apperrors.NewValidationError("discount and withholding cannot exceed the subtotal")
	}
	if invoice.PaidAmount.GreaterThan(invoice.Total()) {
		return nil, apperrors.NewValidationError("paid amount cannot exceed the invoice total")
	}
	for i := range invoice.LineItems {
		item := &invoice.LineItems[i]
		if item.Quantity.IsNegative() || item.UnitPrice.IsNegative() || item.AverageCost.IsNegative() {
			return nil, apperrors.NewValidationError("line item quantities and amounts must not be negative")
		}
		if item.LineItemID == "" {
			item.LineItemID = uuid.NewString()
		}
	}

	now := time.Now()
	invoice.InvoiceID = uuid.NewString()
	invoice.CompanyID = companyID
	invoice.Status = domain.StatusDraft
	if invoice.InvoiceDate.IsZero() {
		invoice.InvoiceDate = now
	}
	invoice.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	if err := s.documentRepo.SaveSalesInvoice(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	logger.Info("Sales invoice created", "invoiceID", invoice.InvoiceID, "reference", invoice.ReferenceNumber)
	return &invoice, nil
}

// GetSalesInvoiceByID retrieves an invoice with its line items.
func (s *documentService) GetSalesInvoiceByID(ctx context.Context, companyID string, invoiceID string, userID string) (*domain.SalesInvoice, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	invoice, err := s.documentRepo.FindSalesInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return invoice, nil
}

// ListSalesInvoices retrieves a paginated list of a company's invoices.
func (s *documentService) ListSalesInvoices(ctx context.Context, companyID string, limit int, nextToken *string, userID string) ([]domain.SalesInvoice, *string, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.documentRepo.ListSalesInvoices(ctx, companyID, limit, nextToken)
}

// CreateReceipt validates and persists a draft receipt.
func (s *documentService) CreateReceipt(ctx context.Context, companyID string, receipt domain.Receipt, userID string) (*domain.Receipt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	if receipt.ReferenceNumber == "" {
		return nil, apperrors.NewValidationError("reference number is required")
	}
	if !receipt.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("receipt amount must be positive")
	}
	if receipt.WHTAmount.IsNegative() {
		return nil, apperrors.NewValidationError("withholding amount must not be negative")
	}

	now := time.Now()
	receipt.ReceiptID = uuid.NewString()
	receipt.CompanyID = companyID
	receipt.Status = domain.StatusDraft
	if receipt.ReceiptDate.IsZero() {
		receipt.ReceiptDate = now
	}
	receipt.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	if err := s.documentRepo.SaveReceipt(ctx, receipt); err != nil {
		return nil, fmt.Errorf("failed to save receipt: %w", err)
	}

	logger.Info("Receipt created", "receiptID", receipt.ReceiptID, "reference", receipt.ReferenceNumber)
	return &receipt, nil
}

// GetReceiptByID retrieves a receipt.
func (s *documentService) GetReceiptByID(ctx context.Context, companyID string, receiptID string, userID string) (*domain.Receipt, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	receipt, err := s.documentRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return receipt, nil
}

// CreateStockAdjustment validates and persists a draft adjustment.
func (s *documentService) CreateStockAdjustment(ctx context.Context, companyID string, adjustment domain.StockAdjustment, userID string) (*domain.StockAdjustment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	if adjustment.ReferenceNumber == "" {
		return nil, apperrors.NewValidationError("reference number is required")
	}
	if len(adjustment.Lines) == 0 {
		return nil, apperrors.NewValidationError("adjustment must have at least one line")
	}
	for i := range adjustment.Lines {
		line := &adjustment.Lines[i]
		if line.UnitCost.IsNegative() {
			return nil, apperrors.NewValidationError("unit cost must not be negative")
		}
		if line.LineID == "" {
			line.LineID = uuid.NewString()
		}
	}

	now := time.Now()
	adjustment.AdjustmentID = uuid.NewString()
	adjustment.CompanyID = companyID
	adjustment.Status = domain.StatusDraft
	if adjustment.AdjustmentDate.IsZero() {
		adjustment.AdjustmentDate = now
	}
	adjustment.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	if err := s.documentRepo.SaveStockAdjustment(ctx, adjustment); err != nil {
		return nil, fmt.Errorf("failed to save stock adjustment: %w", err)
	}

	logger.Info("Stock adjustment created", "adjustmentID", adjustment.AdjustmentID, "reference", adjustment.ReferenceNumber)
	return &adjustment, nil
}

// GetStockAdjustmentByID retrieves a stock adjustment with its lines.
func (s *documentService) GetStockAdjustmentByID(ctx context.Context, companyID string, adjustmentID string, userID string) (*domain.StockAdjustment, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	adjustment, err := s.documentRepo.FindStockAdjustmentByID(ctx, adjustmentID)
	if err != nil {
		return nil, err
	}
	if adjustment.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return adjustment, nil
}
