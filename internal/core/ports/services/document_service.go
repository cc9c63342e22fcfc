package services

import (
	"context"

	"github.com/poslite/poslite_backend/internal/core/domain"
)

// DocumentSvcFacade defines operations for creating and reading draft
// commercial documents. Posting them is the posting service's job.
type DocumentSvcFacade interface {
	// CreateSalesInvoice validates and persists a draft invoice.
	CreateSalesInvoice(ctx context.Context, companyID string, invoice domain.SalesInvoice, userID string) (*domain.SalesInvoice, error)

	// GetSalesInvoiceByID retrieves an invoice with its line items.
	GetSalesInvoiceByID(ctx context.Context, companyID string, invoiceID string, userID string) (*domain.SalesInvoice, error)

	// ListSalesInvoices retrieves a paginated list of a company's invoices.
	ListSalesInvoices(ctx context.Context, companyID string, limit int, nextToken *string, userID string) ([]domain.SalesInvoice, *string, error)

	// CreateReceipt validates and persists a draft receipt.
	CreateReceipt(ctx context.Context, companyID string, receipt domain.Receipt, userID string) (*domain.Receipt, error)

	// GetReceiptByID retrieves a receipt.
	GetReceiptByID(ctx context.Context, companyID string, receiptID string, userID string) (*domain.Receipt, error)

	// CreateStockAdjustment validates and persists a draft adjustment.
	CreateStockAdjustment(ctx context.Context, companyID string, adjustment domain.StockAdjustment, userID string) (*domain.StockAdjustment, error)

	// GetStockAdjustmentByID retrieves a stock adjustment with its lines.
	GetStockAdjustmentByID(ctx context.Context, companyID string, adjustmentID string, userID string) (*domain.StockAdjustment, error)
}

// LedgerSvcFacade defines the read side of the posted ledger.
type LedgerSvcFacade interface {
	// GetBatchByID retrieves a posting batch header.
	GetBatchByID(ctx context.Context, companyID string, batchID string, userID string) (*domain.PostingBatch, error)

	// GetBatchEntries retrieves the entries of one batch.
	GetBatchEntries(ctx context.Context, companyID string, batchID string, userID string) ([]domain.LedgerEntry, error)

	// ListEntriesByAccount retrieves a paginated account statement.
	ListEntriesByAccount(ctx context.Context, companyID string, accountID string, limit int, nextToken *string, userID string) ([]domain.LedgerEntry, *string, error)
}
